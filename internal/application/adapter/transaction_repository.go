package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/fabrie/backend/internal/domain/entity"
)

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	Period       entity.DateRange
	CategoryID   *uuid.UUID
	CategoryType *entity.CategoryType
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction together with its category.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error)

	// List retrieves transactions ordered by date descending, then creation order.
	List(ctx context.Context, filter TransactionFilter) ([]*entity.TransactionWithCategory, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
