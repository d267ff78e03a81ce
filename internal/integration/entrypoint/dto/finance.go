package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fabrie/backend/internal/domain/entity"
)

// Money is a decimal serialized as a JSON number with exactly two decimals.
type Money decimal.Decimal

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

// CategoryTotalResponse is one row of the report breakdown.
type CategoryTotalResponse struct {
	CategoryName string `json:"category_name"`
	CategoryType string `json:"category_type"`
	TotalAmount  Money  `json:"total_amount"`
}

// TimePeriodResponse holds the report bounds; nil means unbounded.
type TimePeriodResponse struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// FinanceReportResponse represents the finance report.
type FinanceReportResponse struct {
	TotalIncome       Money                   `json:"total_income"`
	TotalExpenses     Money                   `json:"total_expenses"`
	NetProfit         Money                   `json:"net_profit"`
	CategoryBreakdown []CategoryTotalResponse `json:"category_breakdown"`
	TimePeriod        TimePeriodResponse      `json:"time_period"`
}

// ToFinanceReportResponse converts a FinanceReport to its response DTO.
func ToFinanceReportResponse(report *entity.FinanceReport) FinanceReportResponse {
	breakdown := make([]CategoryTotalResponse, len(report.CategoryBreakdown))
	for i, row := range report.CategoryBreakdown {
		breakdown[i] = CategoryTotalResponse{
			CategoryName: row.CategoryName,
			CategoryType: string(row.CategoryType),
			TotalAmount:  Money(row.TotalAmount),
		}
	}

	return FinanceReportResponse{
		TotalIncome:       Money(report.TotalIncome),
		TotalExpenses:     Money(report.TotalExpenses),
		NetProfit:         Money(report.NetProfit),
		CategoryBreakdown: breakdown,
		TimePeriod: TimePeriodResponse{
			StartDate: formatDay(report.Period.Start),
			EndDate:   formatDay(report.Period.End),
		},
	}
}

func formatDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}
