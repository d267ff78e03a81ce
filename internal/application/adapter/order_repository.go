package adapter

import (
	"context"

	"github.com/fabrie/backend/internal/domain/entity"
)

// OrderFilter narrows an order listing. Zero values disable a filter.
type OrderFilter struct {
	Status   *entity.OrderStatus
	Customer string
	IsSet    *bool
	Period   entity.DateRange
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create inserts a new order. It fails with ErrOrderCodeTaken when the product_id already exists.
	Create(ctx context.Context, order *entity.Order) error

	// FindByCode retrieves an order by product_id.
	FindByCode(ctx context.Context, code string) (*entity.Order, error)

	// List retrieves orders matching the filter.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)

	// Update persists every field of an existing order.
	Update(ctx context.Context, order *entity.Order) error

	// Delete removes an order by product_id.
	Delete(ctx context.Context, code string) error
}
