package batch

import (
	"context"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/lifecycle"
)

// BatchUsecase is the business logic consumed by the batch handlers
type BatchUsecase interface {
	CreateBatch(ctx context.Context, req *entity.CreateBatchRequest, sourceDialect, targetDialect string) (*entity.Batch, error)
	GetBatch(ctx context.Context, id string) (*entity.Batch, error)
	ListBatches(ctx context.Context, skip, limit int) ([]*entity.Batch, error)
	DeleteBatch(ctx context.Context, id string) error
	Summary(ctx context.Context, id string) (*entity.BatchSummary, error)
	ProcessBatch(ctx context.Context, id string) (*entity.BatchSummary, error)
}

// LifecycleReader exposes the lifecycle state to the status endpoint
type LifecycleReader interface {
	State() lifecycle.State
	StageResults() []lifecycle.StageResult
}
