package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fabrie/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
// The amount accepts a JSON number or a numeric string.
type CreateTransactionRequest struct {
	Category    string           `json:"category" binding:"required,uuid"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description string           `json:"description"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Category    *string          `json:"category" binding:"omitempty,uuid"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	CategoryName string `json:"category_name"`
	CategoryType string `json:"category_type"`
	Amount       string `json:"amount"`
	Date         string `json:"date"`
	Description  string `json:"description"`
}

// ToTransactionResponse converts a transaction with its category to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.TransactionWithCategory) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.Transaction.ID.String(),
		Category:    t.Transaction.CategoryID.String(),
		Amount:      t.Transaction.Amount.StringFixed(entity.TransactionAmountScale),
		Date:        t.Transaction.Date.Format(time.DateOnly),
		Description: t.Transaction.Description,
	}
	if t.Category != nil {
		resp.CategoryName = t.Category.Name
		resp.CategoryType = string(t.Category.Type)
	}
	return resp
}

// ToTransactionListResponse converts transactions to a plain list of responses.
func ToTransactionListResponse(transactions []*entity.TransactionWithCategory) []TransactionResponse {
	out := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		out[i] = ToTransactionResponse(t)
	}
	return out
}
