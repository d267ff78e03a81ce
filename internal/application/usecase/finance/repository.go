// Package finance contains the finance report use cases.
package finance

import (
	"context"

	"github.com/fabrie/backend/internal/domain/entity"
)

// ReportRepository aggregates transaction amounts for reports.
type ReportRepository interface {
	// SumByCategory returns the summed amount per (category name, category type) inside period.
	SumByCategory(ctx context.Context, period entity.DateRange) ([]entity.CategoryTotal, error)
}
