package report

import (
	"bytes"
	"fmt"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
	"github.com/jung-kurt/gofpdf"
)

// BatchPDF renders a translation summary report for one batch.
func BatchPDF(summary *entity.BatchSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("SQL Conversion Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "SQL Conversion Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Batch: %s (%s)", summary.Batch.Name, summary.Batch.ID))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Conversion: %s to %s", summary.Batch.SourceDialect, summary.Batch.TargetDialect))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s", summary.Batch.Status))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Files: %d total, %d completed, %d failed",
		len(summary.Files), summary.Completed, summary.Failed))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(90, 8, "File", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Size", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Status", "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, file := range summary.Files {
		pdf.CellFormat(90, 8, file.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d B", file.Size), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, string(file.Status), "1", 1, "L", false, 0, "")

		if file.Error != "" {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(160, 6, "error: "+file.Error, "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render batch report: %w", err)
	}

	return buf.Bytes(), nil
}
