package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

// GetCategoryInput represents the input for retrieving a category.
type GetCategoryInput struct {
	CategoryID uuid.UUID
}

// GetCategoryOutput represents the output of retrieving a category.
type GetCategoryOutput struct {
	Category *entity.Category
}

// GetCategoryUseCase handles category retrieval.
type GetCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewGetCategoryUseCase creates a new GetCategoryUseCase instance.
func NewGetCategoryUseCase(categoryRepo adapter.CategoryRepository) *GetCategoryUseCase {
	return &GetCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute retrieves the category.
func (uc *GetCategoryUseCase) Execute(ctx context.Context, input GetCategoryInput) (*GetCategoryOutput, error) {
	category, err := findCategory(ctx, uc.categoryRepo, input.CategoryID)
	if err != nil {
		return nil, err
	}
	return &GetCategoryOutput{Category: category}, nil
}

func findCategory(ctx context.Context, repo adapter.CategoryRepository, id uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}
