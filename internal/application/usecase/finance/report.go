package finance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fabrie/backend/internal/domain/entity"
)

const moneyScale = 2

// BuildReport computes totals, net profit and the ordered breakdown from per-category sums.
// Monetary values are rounded half away from zero to two decimals.
func BuildReport(totals []entity.CategoryTotal, period entity.DateRange) *entity.FinanceReport {
	type key struct {
		name string
		kind entity.CategoryType
	}

	merged := make(map[key]decimal.Decimal, len(totals))
	order := make([]key, 0, len(totals))
	income, expenses := decimal.Zero, decimal.Zero

	for _, row := range totals {
		k := key{name: row.CategoryName, kind: row.CategoryType}
		if _, seen := merged[k]; !seen {
			order = append(order, k)
		}
		merged[k] = merged[k].Add(row.TotalAmount)

		switch row.CategoryType {
		case entity.CategoryTypeIncome:
			income = income.Add(row.TotalAmount)
		case entity.CategoryTypeExpense:
			expenses = expenses.Add(row.TotalAmount)
		}
	}

	breakdown := make([]entity.CategoryTotal, 0, len(order))
	for _, k := range order {
		breakdown = append(breakdown, entity.CategoryTotal{
			CategoryName: k.name,
			CategoryType: k.kind,
			TotalAmount:  merged[k].Round(moneyScale),
		})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		a, b := breakdown[i], breakdown[j]
		if a.CategoryType != b.CategoryType {
			return a.CategoryType > b.CategoryType
		}
		if cmp := a.TotalAmount.Cmp(b.TotalAmount); cmp != 0 {
			return cmp > 0
		}
		return a.CategoryName < b.CategoryName
	})

	return &entity.FinanceReport{
		TotalIncome:       income.Round(moneyScale),
		TotalExpenses:     expenses.Round(moneyScale),
		NetProfit:         income.Sub(expenses).Round(moneyScale),
		CategoryBreakdown: breakdown,
		Period:            period,
	}
}
