// Package cache implements the finance report cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/domain/entity"
)

const openBound = "all"

// redisReportCache stores reports under a versioned key. Invalidate bumps the version so
// every previously cached period becomes unreachable and expires through its TTL.
type redisReportCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisReportCache creates a Redis backed report cache.
func NewRedisReportCache(client *redis.Client, prefix string, ttl time.Duration) adapter.ReportCache {
	return &redisReportCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

type cachedTotal struct {
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

type cachedReport struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	Breakdown     []cachedTotal   `json:"breakdown"`
	Start         *time.Time      `json:"start,omitempty"`
	End           *time.Time      `json:"end,omitempty"`
}

func (c *redisReportCache) versionKey() string {
	return c.prefix + "report:version"
}

// slot resolves the key of period under the current version.
func (c *redisReportCache) slot(ctx context.Context, period entity.DateRange) (adapter.ReportCacheSlot, error) {
	version, err := c.client.Get(ctx, c.versionKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("failed to read report cache version: %w", err)
	}
	key := fmt.Sprintf("%sreport:v%d:%s:%s", c.prefix, version, bound(period.Start), bound(period.End))
	return adapter.ReportCacheSlot(key), nil
}

func bound(t *time.Time) string {
	if t == nil {
		return openBound
	}
	return t.Format(time.DateOnly)
}

// Get returns the cached report for period, or nil on a miss. The slot is resolved once so a
// report computed after an Invalidate lands under the superseded version.
func (c *redisReportCache) Get(ctx context.Context, period entity.DateRange) (*entity.FinanceReport, adapter.ReportCacheSlot, error) {
	slot, err := c.slot(ctx, period)
	if err != nil {
		return nil, "", err
	}

	data, err := c.client.Get(ctx, string(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, slot, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read cached report: %w", err)
	}

	var cached cachedReport
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, slot, fmt.Errorf("failed to decode cached report: %w", err)
	}

	report := &entity.FinanceReport{
		TotalIncome:       cached.TotalIncome,
		TotalExpenses:     cached.TotalExpenses,
		NetProfit:         cached.NetProfit,
		CategoryBreakdown: make([]entity.CategoryTotal, len(cached.Breakdown)),
		Period:            entity.DateRange{Start: cached.Start, End: cached.End},
	}
	for i, total := range cached.Breakdown {
		report.CategoryBreakdown[i] = entity.CategoryTotal{
			CategoryName: total.Name,
			CategoryType: entity.CategoryType(total.Type),
			TotalAmount:  total.Amount,
		}
	}
	return report, slot, nil
}

// Set stores report in slot.
func (c *redisReportCache) Set(ctx context.Context, slot adapter.ReportCacheSlot, report *entity.FinanceReport) error {
	if slot == "" {
		return nil
	}

	cached := cachedReport{
		TotalIncome:   report.TotalIncome,
		TotalExpenses: report.TotalExpenses,
		NetProfit:     report.NetProfit,
		Breakdown:     make([]cachedTotal, len(report.CategoryBreakdown)),
		Start:         report.Period.Start,
		End:           report.Period.End,
	}
	for i, total := range report.CategoryBreakdown {
		cached.Breakdown[i] = cachedTotal{
			Name:   total.CategoryName,
			Type:   string(total.CategoryType),
			Amount: total.TotalAmount,
		}
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := c.client.Set(ctx, string(slot), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// Invalidate drops every cached report by bumping the version key.
func (c *redisReportCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.versionKey()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate report cache: %w", err)
	}
	return nil
}

// noopReportCache is used when Redis is not configured.
type noopReportCache struct{}

// NewNoopReportCache creates a cache that never stores anything.
func NewNoopReportCache() adapter.ReportCache {
	return noopReportCache{}
}

func (noopReportCache) Get(context.Context, entity.DateRange) (*entity.FinanceReport, adapter.ReportCacheSlot, error) {
	return nil, "", nil
}

func (noopReportCache) Set(context.Context, adapter.ReportCacheSlot, *entity.FinanceReport) error {
	return nil
}

func (noopReportCache) Invalidate(context.Context) error {
	return nil
}
