package finance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func total(name string, t entity.CategoryType, amount string) entity.CategoryTotal {
	return entity.CategoryTotal{CategoryName: name, CategoryType: t, TotalAmount: money(amount)}
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2))
}

func TestBuildReportEmpty(t *testing.T) {
	report := BuildReport(nil, entity.DateRange{})

	assertMoney(t, "0.00", report.TotalIncome)
	assertMoney(t, "0.00", report.TotalExpenses)
	assertMoney(t, "0.00", report.NetProfit)
	assert.Empty(t, report.CategoryBreakdown)
	assert.NotNil(t, report.CategoryBreakdown)
}

func TestBuildReportIncomeAndExpense(t *testing.T) {
	report := BuildReport([]entity.CategoryTotal{
		total("Rent", entity.CategoryTypeExpense, "200"),
		total("Sales", entity.CategoryTypeIncome, "1000"),
	}, entity.DateRange{})

	assertMoney(t, "1000.00", report.TotalIncome)
	assertMoney(t, "200.00", report.TotalExpenses)
	assertMoney(t, "800.00", report.NetProfit)
	require.Len(t, report.CategoryBreakdown, 2)
	assert.Equal(t, "Sales", report.CategoryBreakdown[0].CategoryName)
	assert.Equal(t, "Rent", report.CategoryBreakdown[1].CategoryName)
}

func TestBuildReportNegativeProfit(t *testing.T) {
	report := BuildReport([]entity.CategoryTotal{
		total("Sales", entity.CategoryTypeIncome, "10.10"),
		total("Fabric", entity.CategoryTypeExpense, "25.25"),
	}, entity.DateRange{})

	assertMoney(t, "-15.15", report.NetProfit)
}

func TestBuildReportRoundsHalfUp(t *testing.T) {
	report := BuildReport([]entity.CategoryTotal{
		total("Sales", entity.CategoryTypeIncome, "0.125"),
		total("Fees", entity.CategoryTypeExpense, "0.0049"),
	}, entity.DateRange{})

	assertMoney(t, "0.13", report.TotalIncome)
	assertMoney(t, "0.00", report.TotalExpenses)
	assertMoney(t, "0.12", report.NetProfit)
}

func TestBuildReportBreakdownOrdering(t *testing.T) {
	report := BuildReport([]entity.CategoryTotal{
		total("Fabric", entity.CategoryTypeExpense, "50"),
		total("Wages", entity.CategoryTypeExpense, "300"),
		total("Sales", entity.CategoryTypeIncome, "100"),
		total("Alterations", entity.CategoryTypeIncome, "100"),
		total("Export", entity.CategoryTypeIncome, "900"),
		total("Fabric", entity.CategoryTypeExpense, "25"),
	}, entity.DateRange{})

	var names []string
	for _, row := range report.CategoryBreakdown {
		names = append(names, row.CategoryName)
	}
	assert.Equal(t, []string{"Export", "Alterations", "Sales", "Wages", "Fabric"}, names)
	assertMoney(t, "75.00", report.CategoryBreakdown[4].TotalAmount)
	assertMoney(t, "1100.00", report.TotalIncome)
	assertMoney(t, "375.00", report.TotalExpenses)
}

func TestBuildReportKeepsSameNameAcrossTypes(t *testing.T) {
	report := BuildReport([]entity.CategoryTotal{
		total("Misc", entity.CategoryTypeIncome, "5"),
		total("Misc", entity.CategoryTypeExpense, "3"),
	}, entity.DateRange{})

	require.Len(t, report.CategoryBreakdown, 2)
	assert.Equal(t, entity.CategoryTypeIncome, report.CategoryBreakdown[0].CategoryType)
	assert.Equal(t, entity.CategoryTypeExpense, report.CategoryBreakdown[1].CategoryType)
}

type mockReportRepository struct {
	totals []entity.CategoryTotal
	err    error
	calls  int
	last   entity.DateRange
}

func (m *mockReportRepository) SumByCategory(_ context.Context, period entity.DateRange) ([]entity.CategoryTotal, error) {
	m.calls++
	m.last = period
	return m.totals, m.err
}

type memoryReportCache struct {
	reports    map[adapter.ReportCacheSlot]*entity.FinanceReport
	generation int
	getErr     error
}

func newMemoryReportCache() *memoryReportCache {
	return &memoryReportCache{reports: map[adapter.ReportCacheSlot]*entity.FinanceReport{}}
}

func (m *memoryReportCache) slot(p entity.DateRange) adapter.ReportCacheSlot {
	key := fmt.Sprintf("v%d|", m.generation)
	for _, b := range []*time.Time{p.Start, p.End} {
		if b == nil {
			key += "*|"
			continue
		}
		key += b.Format("2006-01-02") + "|"
	}
	return adapter.ReportCacheSlot(key)
}

func (m *memoryReportCache) Get(_ context.Context, p entity.DateRange) (*entity.FinanceReport, adapter.ReportCacheSlot, error) {
	if m.getErr != nil {
		return nil, "", m.getErr
	}
	slot := m.slot(p)
	return m.reports[slot], slot, nil
}

func (m *memoryReportCache) Set(_ context.Context, slot adapter.ReportCacheSlot, r *entity.FinanceReport) error {
	if slot != "" {
		m.reports[slot] = r
	}
	return nil
}

func (m *memoryReportCache) Invalidate(context.Context) error {
	m.generation++
	return nil
}

// invalidateOnFirstCall simulates a transaction write landing while the first report is aggregated.
type invalidateOnFirstCall struct {
	mockReportRepository
	cache *memoryReportCache
}

func (r *invalidateOnFirstCall) SumByCategory(ctx context.Context, period entity.DateRange) ([]entity.CategoryTotal, error) {
	totals, err := r.mockReportRepository.SumByCategory(ctx, period)
	if r.calls == 1 {
		r.totals = []entity.CategoryTotal{total("Sales", entity.CategoryTypeIncome, "1500")}
		_ = r.cache.Invalidate(ctx)
	}
	return totals, err
}

func TestGetReportDoesNotCacheReportSupersededDuringAggregation(t *testing.T) {
	cache := newMemoryReportCache()
	repo := &invalidateOnFirstCall{cache: cache}
	repo.totals = []entity.CategoryTotal{total("Sales", entity.CategoryTypeIncome, "1000")}
	uc := NewGetReportUseCase(repo, cache)

	first, err := uc.Execute(context.Background(), GetReportInput{})
	require.NoError(t, err)
	assertMoney(t, "1000.00", first.Report.TotalIncome)

	second, err := uc.Execute(context.Background(), GetReportInput{})
	require.NoError(t, err)
	assertMoney(t, "1500.00", second.Report.TotalIncome)
	assert.Equal(t, 2, repo.calls)
}

func TestGetReportUsesCache(t *testing.T) {
	repo := &mockReportRepository{totals: []entity.CategoryTotal{total("Sales", entity.CategoryTypeIncome, "1000")}}
	cache := newMemoryReportCache()
	uc := NewGetReportUseCase(repo, cache)
	input := GetReportInput{StartDate: "2024-01-01", EndDate: "2024-01-31"}

	first, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Same(t, first.Report, second.Report)
	require.NotNil(t, repo.last.Start)
	assert.Equal(t, "2024-01-01", repo.last.Start.Format("2006-01-02"))

	require.NoError(t, cache.Invalidate(context.Background()))
	_, err = uc.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestGetReportFallsBackWhenCacheFails(t *testing.T) {
	repo := &mockReportRepository{}
	cache := newMemoryReportCache()
	cache.getErr = errors.New("redis unavailable")
	uc := NewGetReportUseCase(repo, cache)

	out, err := uc.Execute(context.Background(), GetReportInput{})

	require.NoError(t, err)
	assertMoney(t, "0.00", out.Report.NetProfit)
	assert.Nil(t, out.Report.Period.Start)
	assert.Nil(t, out.Report.Period.End)
}

func TestGetReportValidatesDates(t *testing.T) {
	uc := NewGetReportUseCase(&mockReportRepository{}, newMemoryReportCache())

	tests := []struct {
		name  string
		input GetReportInput
		code  domainerror.FinanceErrorCode
		field string
	}{
		{name: "bad start", input: GetReportInput{StartDate: "2024/01/01"}, code: domainerror.ErrCodeInvalidDateFormat, field: "start_date"},
		{name: "bad end", input: GetReportInput{EndDate: "yesterday"}, code: domainerror.ErrCodeInvalidDateFormat, field: "end_date"},
		{name: "reversed", input: GetReportInput{StartDate: "2024-02-02", EndDate: "2024-02-01"}, code: domainerror.ErrCodeInvalidDateRange, field: "start_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)

			var verr *domainerror.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, string(tt.code), verr.Code)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestGetReportRepositoryFailure(t *testing.T) {
	uc := NewGetReportUseCase(&mockReportRepository{err: errors.New("db down")}, newMemoryReportCache())

	_, err := uc.Execute(context.Background(), GetReportInput{})

	var finErr *domainerror.FinanceError
	require.True(t, errors.As(err, &finErr))
	assert.Equal(t, domainerror.ErrCodeReportFailed, finErr.Code)
}

type stubRenderer struct {
	err error
}

func (s stubRenderer) Render(r *entity.FinanceReport) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-" + r.NetProfit.StringFixed(2)), nil
}

func TestExportReport(t *testing.T) {
	repo := &mockReportRepository{totals: []entity.CategoryTotal{total("Sales", entity.CategoryTypeIncome, "12.5")}}
	uc := NewExportReportUseCase(NewGetReportUseCase(repo, newMemoryReportCache()), stubRenderer{})

	out, err := uc.Execute(context.Background(), GetReportInput{StartDate: "2024-01-01", EndDate: "2024-03-31"})

	require.NoError(t, err)
	assert.Equal(t, "finance-report_2024-01-01_2024-03-31.pdf", out.Filename)
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.Equal(t, "%PDF-12.50", string(out.Content))
}

func TestExportReportRenderFailure(t *testing.T) {
	uc := NewExportReportUseCase(
		NewGetReportUseCase(&mockReportRepository{}, newMemoryReportCache()),
		stubRenderer{err: errors.New("font missing")},
	)

	_, err := uc.Execute(context.Background(), GetReportInput{})

	assert.ErrorIs(t, err, domainerror.ErrReportRender)
}

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "finance-report.pdf", reportFilename(GetReportInput{}))
	assert.Equal(t, "finance-report_from_2024-01-01.pdf", reportFilename(GetReportInput{StartDate: " 2024-01-01 "}))
	assert.Equal(t, "finance-report_until_2024-01-31.pdf", reportFilename(GetReportInput{EndDate: "2024-01-31"}))
}
