package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fabrie/backend/internal/application/adapter"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	reportCache  adapter.ReportCache
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, reportCache adapter.ReportCache) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		reportCache:  reportCache,
	}
}

// Execute deletes the category unless transactions still reference it.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	if _, err := findCategory(ctx, uc.categoryRepo, input.CategoryID); err != nil {
		return err
	}

	count, err := uc.categoryRepo.CountTransactions(ctx, input.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to count category transactions: %w", err)
	}
	if count > 0 {
		return inUse(count)
	}

	if err := uc.categoryRepo.Delete(ctx, input.CategoryID); err != nil {
		switch {
		case errors.Is(err, domainerror.ErrCategoryInUse):
			// A transaction was added between the count and the delete.
			return inUse(1)
		case errors.Is(err, domainerror.ErrCategoryNotFound):
			return notFound()
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	invalidateReports(ctx, uc.reportCache)

	slog.InfoContext(ctx, "Category deleted", "category_id", input.CategoryID)
	return nil
}

func inUse(count int64) error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryInUse,
		fmt.Sprintf("category is used by %d transaction(s) and cannot be deleted", count),
		domainerror.ErrCategoryInUse,
	)
}
