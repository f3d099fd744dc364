package entity

import "errors"

// Domain errors
var (
	// Batch errors
	ErrBatchNotFound = errors.New("batch not found")
	ErrBatchEmpty    = errors.New("batch contains no files")

	// File errors
	ErrFileNotFound     = errors.New("file not found")
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrTooManyFiles     = errors.New("too many files")
	ErrInvalidExtension = errors.New("invalid file extension")

	// Agent errors
	ErrAgentsUnavailable = errors.New("translation agents unavailable")
	ErrAgentNotFound     = errors.New("agent not found in set")

	// Credential errors
	ErrCredentialExpired = errors.New("credential expired")
)
