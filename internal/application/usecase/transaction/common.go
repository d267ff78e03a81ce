// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

// maxAmount is the first value that no longer fits decimal(12,2).
var maxAmount = decimal.New(1, entity.TransactionAmountDigits-entity.TransactionAmountScale)

func validateAmount(amount decimal.Decimal) error {
	var msg string
	switch {
	case amount.IsNegative():
		msg = "amount must not be negative"
	case !amount.Equal(amount.Truncate(entity.TransactionAmountScale)):
		msg = fmt.Sprintf("amount must have at most %d decimal places", entity.TransactionAmountScale)
	case amount.GreaterThanOrEqual(maxAmount):
		msg = fmt.Sprintf("amount must have at most %d digits", entity.TransactionAmountDigits)
	default:
		return nil
	}
	return domainerror.NewTransactionError(
		domainerror.ErrCodeInvalidTransactionAmount,
		msg,
		domainerror.ErrInvalidTransactionAmount,
	)
}

func findCategory(ctx context.Context, repo adapter.CategoryRepository, id uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFoundForTransaction,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}

func findTransaction(ctx context.Context, repo adapter.TransactionRepository, id uuid.UUID) (*entity.TransactionWithCategory, error) {
	found, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return found, nil
}

func notFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}

// invalidateReports drops cached finance reports; a cache failure never fails the write.
func invalidateReports(ctx context.Context, cache adapter.ReportCache) {
	if err := cache.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "Failed to invalidate report cache", "error", err)
	}
}
