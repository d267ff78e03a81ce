package dto

import (
	"github.com/fabrie/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// UpdateCategoryRequest represents the request body for category update.
// PUT requires both fields; PATCH accepts either.
type UpdateCategoryRequest struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:   cat.ID.String(),
		Name: cat.Name,
		Type: string(cat.Type),
	}
}

// ToCategoryListResponse converts categories to a plain list of responses.
func ToCategoryListResponse(categories []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		out[i] = ToCategoryResponse(cat)
	}
	return out
}
