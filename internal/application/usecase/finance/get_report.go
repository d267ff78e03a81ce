package finance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/application/usecase/period"
	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

// GetReportInput holds the optional YYYY-MM-DD bounds. Blank values leave the bound open.
type GetReportInput struct {
	StartDate string
	EndDate   string
}

// GetReportOutput represents the output of report generation.
type GetReportOutput struct {
	Report *entity.FinanceReport
}

// GetReportUseCase builds the finance report, serving repeated requests from the cache.
type GetReportUseCase struct {
	reportRepo  ReportRepository
	reportCache adapter.ReportCache
}

// NewGetReportUseCase creates a new GetReportUseCase instance.
func NewGetReportUseCase(reportRepo ReportRepository, reportCache adapter.ReportCache) *GetReportUseCase {
	return &GetReportUseCase{
		reportRepo:  reportRepo,
		reportCache: reportCache,
	}
}

// Execute validates the period and returns its report.
func (uc *GetReportUseCase) Execute(ctx context.Context, input GetReportInput) (*GetReportOutput, error) {
	rng, err := parsePeriod(input)
	if err != nil {
		return nil, err
	}

	cached, slot, err := uc.reportCache.Get(ctx, rng)
	if err != nil {
		slog.WarnContext(ctx, "Report cache read failed", "error", err)
	}
	if cached != nil {
		return &GetReportOutput{Report: cached}, nil
	}

	totals, err := uc.reportRepo.SumByCategory(ctx, rng)
	if err != nil {
		return nil, domainerror.NewFinanceError(
			domainerror.ErrCodeReportFailed,
			"failed to aggregate transactions",
			err,
		)
	}

	report := BuildReport(totals, rng)
	if err := uc.reportCache.Set(ctx, slot, report); err != nil {
		slog.WarnContext(ctx, "Report cache write failed", "error", err)
	}

	return &GetReportOutput{Report: report}, nil
}

func parsePeriod(input GetReportInput) (entity.DateRange, error) {
	rng, formatErrs, reversed := period.Parse(input.StartDate, input.EndDate)
	if len(formatErrs) > 0 {
		return entity.DateRange{}, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidDateFormat,
			fmt.Sprintf("%s: %s", domainerror.ErrInvalidDateFormat, period.MsgInvalidFormat),
			formatErrs,
		)
	}
	if reversed {
		return entity.DateRange{}, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidDateRange,
			period.MsgReversed,
			map[string]string{period.FieldStartDate: period.MsgReversed},
		)
	}
	return rng, nil
}
