package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange is an inclusive range of calendar days; a nil bound is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether day falls inside the range.
func (r DateRange) Contains(day time.Time) bool {
	if r.Start != nil && day.Before(*r.Start) {
		return false
	}
	if r.End != nil && day.After(*r.End) {
		return false
	}
	return true
}

// CategoryTotal is the summed amount of one category inside a report period.
type CategoryTotal struct {
	CategoryName string
	CategoryType CategoryType
	TotalAmount  decimal.Decimal
}

// FinanceReport summarizes transactions over a period.
type FinanceReport struct {
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	NetProfit         decimal.Decimal
	CategoryBreakdown []CategoryTotal
	Period            DateRange
}
