package entity

import (
	"mime/multipart"
	"time"
)

// FileStatus represents the processing state of a single file in a batch
type FileStatus string

const (
	FileStatusUploaded   FileStatus = "uploaded"
	FileStatusProcessing FileStatus = "processing"
	FileStatusCompleted  FileStatus = "completed"
	FileStatusFailed     FileStatus = "failed"
)

// BatchStatus represents the aggregate state of a batch
type BatchStatus string

const (
	BatchStatusCreated    BatchStatus = "created"
	BatchStatusProcessing BatchStatus = "processing"
	BatchStatusCompleted  BatchStatus = "completed"
	BatchStatusFailed     BatchStatus = "failed"
)

// Batch is a set of SQL files submitted together for translation
type Batch struct {
	ID            string
	Name          string
	SourceDialect string
	TargetDialect string
	Status        BatchStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BatchFile is a single SQL file within a batch
type BatchFile struct {
	ID         string
	BatchID    string
	Name       string
	Size       int64
	Content    string
	Translated string
	Status     FileStatus
	Error      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateBatchRequest carries a multipart batch upload
type CreateBatchRequest struct {
	Name  string
	Files []*multipart.FileHeader
}

// BatchSummary aggregates per-file outcomes for reporting
type BatchSummary struct {
	Batch     *Batch
	Files     []*BatchFile
	Completed int
	Failed    int
}
