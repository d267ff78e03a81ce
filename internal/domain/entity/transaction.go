package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction amounts are stored as decimal(12,2).
const (
	TransactionAmountDigits = 12
	TransactionAmountScale  = 2
)

// Transaction represents a single income or expense movement.
type Transaction struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction dated on the calendar day of now.
func NewTransaction(categoryID uuid.UUID, amount decimal.Decimal, description string, now time.Time) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		CategoryID:  categoryID,
		Amount:      amount,
		Date:        DateOf(now),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransactionWithCategory is a transaction joined with its category.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}
