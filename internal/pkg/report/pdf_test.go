package report

import (
	"testing"
	"time"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchPDF(t *testing.T) {
	now := time.Now()
	summary := &entity.BatchSummary{
		Batch: &entity.Batch{
			ID:            "6f1f9a2e-0000-0000-0000-000000000001",
			Name:          "migration-1",
			SourceDialect: "informix",
			TargetDialect: "tsql",
			Status:        entity.BatchStatusCompleted,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		Files: []*entity.BatchFile{
			{ID: "f1", Name: "orders.sql", Size: 120, Status: entity.FileStatusCompleted},
			{ID: "f2", Name: "legacy.sql", Size: 44, Status: entity.FileStatusFailed, Error: "unsupported construct"},
		},
		Completed: 1,
		Failed:    1,
	}

	pdf, err := BatchPDF(summary)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)

	// A valid PDF starts with the %PDF marker
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
