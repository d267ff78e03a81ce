// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"category name is required",
			nil,
		)
	}
	if utf8.RuneCountInString(name) > entity.MaxCategoryNameLength {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", entity.MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return name, nil
}

func parseType(value string) (entity.CategoryType, error) {
	t := entity.CategoryType(strings.ToUpper(strings.TrimSpace(value)))
	if !t.IsValid() {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be INCOME or EXPENSE",
			domainerror.ErrInvalidCategoryType,
		)
	}
	return t, nil
}

func nameTaken(name string) error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNameExists,
		fmt.Sprintf("category %q already exists", name),
		domainerror.ErrCategoryNameExists,
	)
}

func notFound() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotFound,
		"category not found",
		domainerror.ErrCategoryNotFound,
	)
}

// invalidateReports drops cached finance reports; a cache failure never fails the write.
func invalidateReports(ctx context.Context, cache adapter.ReportCache) {
	if err := cache.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "Failed to invalidate report cache", "error", err)
	}
}
