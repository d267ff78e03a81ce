// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/domain/entity"
)

// pdfReportRenderer renders finance reports as A4 PDF documents.
type pdfReportRenderer struct {
	title string
	now   func() time.Time
}

// NewPDFReportRenderer creates a gofpdf based report renderer.
func NewPDFReportRenderer(clock adapter.Clock) adapter.ReportRenderer {
	return &pdfReportRenderer{
		title: "FABRIE Finance Report",
		now:   clock.Now,
	}
}

// Render lays out the totals followed by the category breakdown table.
func (r *pdfReportRenderer) Render(report *entity.FinanceReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(r.title, false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, r.title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, "Period: "+describePeriod(report.Period), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Generated: "+r.now().UTC().Format("2006-01-02 15:04 UTC"), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(60, 8, "Total income", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, report.TotalIncome.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.CellFormat(60, 8, "Total expenses", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, report.TotalExpenses.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.CellFormat(60, 8, "Net profit", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, report.NetProfit.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(90, 8, "Category", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 8, "Total", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	if len(report.CategoryBreakdown) == 0 {
		pdf.CellFormat(180, 8, "No transactions in this period", "1", 1, "C", false, 0, "")
	}
	for _, row := range report.CategoryBreakdown {
		pdf.CellFormat(90, 8, row.CategoryName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, string(row.CategoryType), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 8, row.TotalAmount.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func describePeriod(period entity.DateRange) string {
	start, end := "beginning", "today"
	if period.Start != nil {
		start = period.Start.Format(time.DateOnly)
	}
	if period.End != nil {
		end = period.End.Format(time.DateOnly)
	}
	return fmt.Sprintf("%s to %s", start, end)
}
