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

// BatchRepository defines the interface for batch persistence
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) (*entity.Batch, error)
	Get(ctx context.Context, id string) (*entity.Batch, error)
	List(ctx context.Context, skip, limit int) ([]*entity.Batch, error)
	UpdateStatus(ctx context.Context, id string, status entity.BatchStatus) error
	Delete(ctx context.Context, id string) error
}

var _ BatchRepository = &BatchPostgres{}

// BatchPostgres implements BatchRepository using PostgreSQL
type BatchPostgres struct {
	db *pgxpool.Pool
}

func NewBatchPostgres(db *pgxpool.Pool) *BatchPostgres {
	return &BatchPostgres{db: db}
}

func (r *BatchPostgres) Create(ctx context.Context, batch *entity.Batch) (*entity.Batch, error) {
	batchID, err := uuid.Parse(batch.ID)
	if err != nil {
		return nil, fmt.Errorf("parse batch ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO batches (id, name, source_dialect, target_dialect, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, source_dialect, target_dialect, status, created_at, updated_at`,
		batchID, batch.Name, batch.SourceDialect, batch.TargetDialect, entity.BatchStatusCreated,
	)

	created, err := scanBatch(row)
	if err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}

	return created, nil
}

func (r *BatchPostgres) Get(ctx context.Context, id string) (*entity.Batch, error) {
	batchID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse batch ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		SELECT id, name, source_dialect, target_dialect, status, created_at, updated_at
		FROM batches WHERE id = $1`,
		batchID,
	)

	batch, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrBatchNotFound
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}

	return batch, nil
}

func (r *BatchPostgres) List(ctx context.Context, skip, limit int) ([]*entity.Batch, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, source_dialect, target_dialect, status, created_at, updated_at
		FROM batches ORDER BY created_at DESC OFFSET $1 LIMIT $2`,
		skip, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var batches []*entity.Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, batch)
	}

	return batches, rows.Err()
}

func (r *BatchPostgres) UpdateStatus(ctx context.Context, id string, status entity.BatchStatus) error {
	batchID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("parse batch ID: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE batches SET status = $2, updated_at = now() WHERE id = $1`,
		batchID, status,
	)
	if err != nil {
		return fmt.Errorf("update batch status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrBatchNotFound
	}

	return nil
}

func (r *BatchPostgres) Delete(ctx context.Context, id string) error {
	batchID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("parse batch ID: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM batches WHERE id = $1`, batchID)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return entity.ErrBatchNotFound
	}

	return nil
}
