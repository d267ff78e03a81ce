package persistence

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fabrie/backend/internal/application/usecase/finance"
	"github.com/fabrie/backend/internal/domain/entity"
)

// reportRepository implements the finance.ReportRepository interface.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance.
func NewReportRepository(db *gorm.DB) finance.ReportRepository {
	return &reportRepository{
		db: db,
	}
}

// SumByCategory returns the summed transaction amount per category name and type.
func (r *reportRepository) SumByCategory(ctx context.Context, period entity.DateRange) ([]entity.CategoryTotal, error) {
	var results []struct {
		CategoryName string          `gorm:"column:category_name"`
		CategoryType string          `gorm:"column:category_type"`
		TotalAmount  decimal.Decimal `gorm:"column:total_amount"`
	}

	query := r.db.WithContext(ctx).
		Table("transactions t").
		Select("c.name AS category_name, c.type AS category_type, COALESCE(SUM(t.amount), 0) AS total_amount").
		Joins("JOIN categories c ON c.id = t.category_id")

	if period.Start != nil {
		query = query.Where("t.date >= ?", *period.Start)
	}
	if period.End != nil {
		query = query.Where("t.date <= ?", *period.End)
	}

	err := query.
		Group("c.name, c.type").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions by category: %w", err)
	}

	totals := make([]entity.CategoryTotal, len(results))
	for i, res := range results {
		totals[i] = entity.CategoryTotal{
			CategoryName: res.CategoryName,
			CategoryType: entity.CategoryType(res.CategoryType),
			TotalAmount:  res.TotalAmount,
		}
	}
	return totals, nil
}
