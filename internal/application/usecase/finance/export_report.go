package finance

import (
	"context"
	"fmt"
	"strings"

	"github.com/fabrie/backend/internal/application/adapter"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

// ExportReportOutput is a rendered report document.
type ExportReportOutput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportReportUseCase renders the finance report as a PDF document.
type ExportReportUseCase struct {
	getReport *GetReportUseCase
	renderer  adapter.ReportRenderer
}

// NewExportReportUseCase creates a new ExportReportUseCase instance.
func NewExportReportUseCase(getReport *GetReportUseCase, renderer adapter.ReportRenderer) *ExportReportUseCase {
	return &ExportReportUseCase{
		getReport: getReport,
		renderer:  renderer,
	}
}

// Execute builds the report for the period and renders it.
func (uc *ExportReportUseCase) Execute(ctx context.Context, input GetReportInput) (*ExportReportOutput, error) {
	out, err := uc.getReport.Execute(ctx, input)
	if err != nil {
		return nil, err
	}

	content, err := uc.renderer.Render(out.Report)
	if err != nil {
		return nil, domainerror.NewFinanceError(
			domainerror.ErrCodeReportRender,
			"failed to render report",
			fmt.Errorf("%w: %w", domainerror.ErrReportRender, err),
		)
	}

	return &ExportReportOutput{
		Filename:    reportFilename(input),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

func reportFilename(input GetReportInput) string {
	start, end := strings.TrimSpace(input.StartDate), strings.TrimSpace(input.EndDate)
	switch {
	case start != "" && end != "":
		return fmt.Sprintf("finance-report_%s_%s.pdf", start, end)
	case start != "":
		return fmt.Sprintf("finance-report_from_%s.pdf", start)
	case end != "":
		return fmt.Sprintf("finance-report_until_%s.pdf", end)
	}
	return "finance-report.pdf"
}
