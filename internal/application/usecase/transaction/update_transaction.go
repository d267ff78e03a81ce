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

// UpdateTransactionInput represents the input for transaction update. Nil fields are left unchanged.
// The transaction date is fixed at creation and cannot be changed.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	CategoryID    *uuid.UUID
	Amount        *decimal.Decimal
	Description   *string
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.TransactionWithCategory
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	reportCache     adapter.ReportCache
	clock           adapter.Clock
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	reportCache adapter.ReportCache,
	clock adapter.Clock,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		reportCache:     reportCache,
		clock:           clock,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	found, err := findTransaction(ctx, uc.transactionRepo, input.TransactionID)
	if err != nil {
		return nil, err
	}
	txn, category := found.Transaction, found.Category

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		txn.Amount = *input.Amount
	}

	if input.CategoryID != nil && *input.CategoryID != txn.CategoryID {
		category, err = findCategory(ctx, uc.categoryRepo, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		txn.CategoryID = category.ID
	}

	if input.Description != nil {
		txn.Description = *input.Description
	}

	txn.UpdatedAt = uc.clock.Now().UTC()
	if err := uc.transactionRepo.Update(ctx, txn); err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	invalidateReports(ctx, uc.reportCache)

	slog.InfoContext(ctx, "Transaction updated", "transaction_id", txn.ID)

	return &UpdateTransactionOutput{
		Transaction: &entity.TransactionWithCategory{Transaction: txn, Category: category},
	}, nil
}
