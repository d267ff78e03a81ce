package transaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/application/usecase/period"
	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

// ListTransactionsInput holds the raw query filters. Blank values disable a filter.
type ListTransactionsInput struct {
	StartDate  string
	EndDate    string
	CategoryID string
	Type       string
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.TransactionWithCategory
}

// ListTransactionsUseCase handles transaction listing.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute lists transactions newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	rng, fieldErrs, reversed := period.Parse(input.StartDate, input.EndDate)
	if reversed {
		fieldErrs[period.FieldStartDate] = period.MsgReversed
	}

	filter := adapter.TransactionFilter{Period: rng}

	if raw := strings.TrimSpace(input.CategoryID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			fieldErrs["category"] = "Must be a valid UUID."
		} else {
			filter.CategoryID = &id
		}
	}

	if raw := strings.TrimSpace(input.Type); raw != "" {
		t := entity.CategoryType(strings.ToUpper(raw))
		if t.IsValid() {
			filter.CategoryType = &t
		} else {
			fieldErrs["type"] = fmt.Sprintf("%q is not a valid choice.", raw)
		}
	}

	if len(fieldErrs) > 0 {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidTransactionFilter,
			"invalid transaction filter",
			fieldErrs,
		)
	}

	transactions, err := uc.transactionRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &ListTransactionsOutput{Transactions: transactions}, nil
}
