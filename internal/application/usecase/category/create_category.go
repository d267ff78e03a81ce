package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name string
	Type string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	categoryType, err := parseType(input.Type)
	if err != nil {
		return nil, err
	}

	existing, err := uc.categoryRepo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if existing != nil {
		return nil, nameTaken(name)
	}

	category := entity.NewCategory(name, categoryType)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		// A concurrent insert can still hit the unique index.
		if errors.Is(err, domainerror.ErrCategoryNameExists) {
			return nil, nameTaken(name)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	slog.InfoContext(ctx, "Category created", "category_id", category.ID, "type", category.Type)

	return &CreateCategoryOutput{Category: category}, nil
}
