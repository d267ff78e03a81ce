package adapters

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrie/backend/internal/domain/entity"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestPDFReportRenderer_Render(t *testing.T) {
	renderer := NewPDFReportRenderer(fixedClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)})
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	out, err := renderer.Render(&entity.FinanceReport{
		TotalIncome:   decimal.RequireFromString("1000.00"),
		TotalExpenses: decimal.RequireFromString("200.00"),
		NetProfit:     decimal.RequireFromString("800.00"),
		CategoryBreakdown: []entity.CategoryTotal{
			{CategoryName: "Sales", CategoryType: entity.CategoryTypeIncome, TotalAmount: decimal.RequireFromString("1000.00")},
		},
		Period: entity.DateRange{Start: &start},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFReportRenderer_EmptyReport(t *testing.T) {
	renderer := NewPDFReportRenderer(NewSystemClock())

	out, err := renderer.Render(&entity.FinanceReport{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestDescribePeriod(t *testing.T) {
	end := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "beginning to 2024-02-29", describePeriod(entity.DateRange{End: &end}))
	assert.Equal(t, "beginning to today", describePeriod(entity.DateRange{}))
}
