package adapter

import "github.com/fabrie/backend/internal/domain/entity"

// ReportRenderer renders a finance report as a downloadable document.
type ReportRenderer interface {
	Render(report *entity.FinanceReport) ([]byte, error)
}
