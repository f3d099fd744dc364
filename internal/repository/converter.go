package repository

import (
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
)

// rowScanner abstracts pgx.Row and pgx.Rows for shared scanning
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.SourceDialect,
		&b.TargetDialect,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanFile(row rowScanner) (*entity.BatchFile, error) {
	var f entity.BatchFile
	err := row.Scan(
		&f.ID,
		&f.BatchID,
		&f.Name,
		&f.Size,
		&f.Content,
		&f.Translated,
		&f.Status,
		&f.Error,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
