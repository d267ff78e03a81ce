package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update. Nil fields are left unchanged.
type UpdateCategoryInput struct {
	CategoryID uuid.UUID
	Name       *string
	Type       *string
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	reportCache  adapter.ReportCache
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository, reportCache adapter.ReportCache) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
		reportCache:  reportCache,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := findCategory(ctx, uc.categoryRepo, input.CategoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := normalizeName(*input.Name)
		if err != nil {
			return nil, err
		}

		if name != category.Name {
			existing, err := uc.categoryRepo.FindByName(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("failed to check category name: %w", err)
			}
			if existing != nil && existing.ID != category.ID {
				return nil, nameTaken(name)
			}
		}
		category.Name = name
	}

	if input.Type != nil {
		categoryType, err := parseType(*input.Type)
		if err != nil {
			return nil, err
		}
		category.Type = categoryType
	}

	category.UpdatedAt = time.Now().UTC()
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, domainerror.ErrCategoryNameExists):
			return nil, nameTaken(category.Name)
		case errors.Is(err, domainerror.ErrCategoryNotFound):
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	invalidateReports(ctx, uc.reportCache)

	slog.InfoContext(ctx, "Category updated", "category_id", category.ID)

	return &UpdateCategoryOutput{Category: category}, nil
}
