package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FileRepository defines the interface for batch file persistence
type FileRepository interface {
	Create(ctx context.Context, file *entity.BatchFile) (*entity.BatchFile, error)
	Get(ctx context.Context, id string) (*entity.BatchFile, error)
	ListByBatch(ctx context.Context, batchID string) ([]*entity.BatchFile, error)
	SetResult(ctx context.Context, id string, translated string, status entity.FileStatus, fileErr string) error
}

var _ FileRepository = &FilePostgres{}

// FilePostgres implements FileRepository using PostgreSQL
type FilePostgres struct {
	db *pgxpool.Pool
}

func NewFilePostgres(db *pgxpool.Pool) *FilePostgres {
	return &FilePostgres{db: db}
}

func (r *FilePostgres) Create(ctx context.Context, file *entity.BatchFile) (*entity.BatchFile, error) {
	fileID, err := uuid.Parse(file.ID)
	if err != nil {
		return nil, fmt.Errorf("parse file ID: %w", err)
	}

	batchID, err := uuid.Parse(file.BatchID)
	if err != nil {
		return nil, fmt.Errorf("parse batch ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO batch_files (id, batch_id, name, size, content, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, batch_id, name, size, content, translated, status, error, created_at, updated_at`,
		fileID, batchID, file.Name, file.Size, file.Content, entity.FileStatusUploaded,
	)

	created, err := scanFile(row)
	if err != nil {
		return nil, fmt.Errorf("create batch file: %w", err)
	}

	return created, nil
}

func (r *FilePostgres) Get(ctx context.Context, id string) (*entity.BatchFile, error) {
	fileID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse file ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		SELECT id, batch_id, name, size, content, translated, status, error, created_at, updated_at
		FROM batch_files WHERE id = $1`,
		fileID,
	)

	file, err := scanFile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrFileNotFound
		}
		return nil, fmt.Errorf("get batch file: %w", err)
	}

	return file, nil
}

func (r *FilePostgres) ListByBatch(ctx context.Context, batchID string) ([]*entity.BatchFile, error) {
	id, err := uuid.Parse(batchID)
	if err != nil {
		return nil, fmt.Errorf("parse batch ID: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, batch_id, name, size, content, translated, status, error, created_at, updated_at
		FROM batch_files WHERE batch_id = $1 ORDER BY created_at`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("list batch files: %w", err)
	}
	defer rows.Close()

	var files []*entity.BatchFile
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch file: %w", err)
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

func (r *FilePostgres) SetResult(ctx context.Context, id string, translated string, status entity.FileStatus, fileErr string) error {
	fileID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("parse file ID: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE batch_files
		SET translated = $2, status = $3, error = $4, updated_at = now()
		WHERE id = $1`,
		fileID, translated, status, fileErr,
	)
	if err != nil {
		return fmt.Errorf("set file result: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrFileNotFound
	}

	return nil
}
