package batch

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/config"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var allowedExtensions = map[string]bool{
	".sql": true,
	".ddl": true,
	".txt": true,
}

// Usecase implements batch translation business logic
type Usecase struct {
	batchRepo repository.BatchRepository
	fileRepo  repository.FileRepository
	agentSrc  AgentSource
	uploadCfg config.FileUploadConfig
	logger    *zap.Logger
}

func NewUsecase(
	batchRepo repository.BatchRepository,
	fileRepo repository.FileRepository,
	agentSrc AgentSource,
	uploadCfg config.FileUploadConfig,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		batchRepo: batchRepo,
		fileRepo:  fileRepo,
		agentSrc:  agentSrc,
		uploadCfg: uploadCfg,
		logger:    logger,
	}
}

// CreateBatch validates and persists an uploaded batch of SQL files. The
// dialect pair is stamped from the active agent set when present, otherwise
// left to the stored defaults of the request.
func (uc *Usecase) CreateBatch(ctx context.Context, req *entity.CreateBatchRequest, sourceDialect, targetDialect string) (*entity.Batch, error) {
	if len(req.Files) == 0 {
		return nil, entity.ErrBatchEmpty
	}
	if len(req.Files) > uc.uploadCfg.MaxFileCount {
		return nil, entity.ErrTooManyFiles
	}

	for _, fh := range req.Files {
		if fh.Size > uc.uploadCfg.MaxFileSize {
			return nil, fmt.Errorf("%w: %s (%d bytes)", entity.ErrFileTooLarge, fh.Filename, fh.Size)
		}
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedExtensions[ext] {
			return nil, fmt.Errorf("%w: %s", entity.ErrInvalidExtension, fh.Filename)
		}
	}

	batch, err := uc.batchRepo.Create(ctx, &entity.Batch{
		ID:            uuid.New().String(),
		Name:          req.Name,
		SourceDialect: sourceDialect,
		TargetDialect: targetDialect,
	})
	if err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}

	for _, fh := range req.Files {
		content, err := readFileHeader(fh)
		if err != nil {
			uc.batchRepo.Delete(ctx, batch.ID)
			return nil, fmt.Errorf("read uploaded file %s: %w", fh.Filename, err)
		}

		_, err = uc.fileRepo.Create(ctx, &entity.BatchFile{
			ID:      uuid.New().String(),
			BatchID: batch.ID,
			Name:    fh.Filename,
			Size:    fh.Size,
			Content: content,
		})
		if err != nil {
			uc.batchRepo.Delete(ctx, batch.ID)
			return nil, fmt.Errorf("store uploaded file %s: %w", fh.Filename, err)
		}
	}

	ctxzap.Info(ctx, "batch created",
		zap.String("batch_id", batch.ID),
		zap.Int("file_count", len(req.Files)),
	)

	return batch, nil
}

// GetBatch returns one batch by ID
func (uc *Usecase) GetBatch(ctx context.Context, id string) (*entity.Batch, error) {
	return uc.batchRepo.Get(ctx, id)
}

// ListBatches returns a page of batches
func (uc *Usecase) ListBatches(ctx context.Context, skip, limit int) ([]*entity.Batch, error) {
	return uc.batchRepo.List(ctx, skip, limit)
}

// DeleteBatch removes a batch and its files
func (uc *Usecase) DeleteBatch(ctx context.Context, id string) error {
	return uc.batchRepo.Delete(ctx, id)
}

// Summary collects the batch and its files with per-status counts
func (uc *Usecase) Summary(ctx context.Context, id string) (*entity.BatchSummary, error) {
	batch, err := uc.batchRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	files, err := uc.fileRepo.ListByBatch(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := &entity.BatchSummary{Batch: batch, Files: files}
	for _, f := range files {
		switch f.Status {
		case entity.FileStatusCompleted:
			summary.Completed++
		case entity.FileStatusFailed:
			summary.Failed++
		}
	}

	return summary, nil
}

// ProcessBatch translates every file of the batch through the agent set.
// When the agent set is absent the caller gets ErrAgentsUnavailable; a
// per-file translation failure marks that file failed and continues with
// the rest.
func (uc *Usecase) ProcessBatch(ctx context.Context, id string) (*entity.BatchSummary, error) {
	set, ok := uc.agentSrc.Agents()
	if !ok {
		return nil, entity.ErrAgentsUnavailable
	}

	batch, err := uc.batchRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	files, err := uc.fileRepo.ListByBatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, entity.ErrBatchEmpty
	}

	if err := uc.batchRepo.UpdateStatus(ctx, batch.ID, entity.BatchStatusProcessing); err != nil {
		return nil, err
	}

	summary := &entity.BatchSummary{Batch: batch, Files: files}

	for _, file := range files {
		if err := uc.fileRepo.SetResult(ctx, file.ID, "", entity.FileStatusProcessing, ""); err != nil {
			ctxzap.Error(ctx, "failed to mark file processing", zap.String("file_id", file.ID), zap.Error(err))
		}

		translated, err := set.Translate(ctx, file.Content)
		if err != nil {
			ctxzap.Error(ctx, "file translation failed",
				zap.String("file_id", file.ID),
				zap.String("file_name", file.Name),
				zap.Error(err),
			)
			file.Status = entity.FileStatusFailed
			file.Error = err.Error()
			summary.Failed++
			uc.fileRepo.SetResult(ctx, file.ID, "", entity.FileStatusFailed, err.Error())
			continue
		}

		file.Status = entity.FileStatusCompleted
		file.Translated = translated
		summary.Completed++
		if err := uc.fileRepo.SetResult(ctx, file.ID, translated, entity.FileStatusCompleted, ""); err != nil {
			ctxzap.Error(ctx, "failed to store translation", zap.String("file_id", file.ID), zap.Error(err))
		}
	}

	finalStatus := entity.BatchStatusCompleted
	if summary.Failed == len(files) {
		finalStatus = entity.BatchStatusFailed
	}
	if err := uc.batchRepo.UpdateStatus(ctx, batch.ID, finalStatus); err != nil {
		ctxzap.Error(ctx, "failed to update batch status", zap.String("batch_id", batch.ID), zap.Error(err))
	}
	batch.Status = finalStatus

	ctxzap.Info(ctx, "batch processed",
		zap.String("batch_id", batch.ID),
		zap.Int("completed", summary.Completed),
		zap.Int("failed", summary.Failed),
	)

	return summary, nil
}

func readFileHeader(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
