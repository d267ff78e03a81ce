// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/fabrie/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByName retrieves a category by name, returning nil when none exists.
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// List retrieves all categories, optionally filtered by type.
	List(ctx context.Context, categoryType *entity.CategoryType) ([]*entity.Category, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category. It fails with ErrCategoryInUse while transactions reference it.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountTransactions returns how many transactions reference the category.
	CountTransactions(ctx context.Context, id uuid.UUID) (int64, error)
}
