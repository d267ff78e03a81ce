package adapter

import (
	"context"

	"github.com/fabrie/backend/internal/domain/entity"
)

// ReportCacheSlot identifies where a report for one period and one cache generation lives.
// An empty slot is never written.
type ReportCacheSlot string

// ReportCache caches computed finance reports per period.
type ReportCache interface {
	// Get returns the cached report for period, or nil on a miss, together with the slot a freshly
	// computed report must be stored in.
	Get(ctx context.Context, period entity.DateRange) (*entity.FinanceReport, ReportCacheSlot, error)

	// Set stores report in slot. A slot resolved before an Invalidate is never read again.
	Set(ctx context.Context, slot ReportCacheSlot, report *entity.FinanceReport) error

	// Invalidate drops every cached report.
	Invalidate(ctx context.Context) error
}
