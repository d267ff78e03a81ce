package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

// GetOrderInput represents the input for retrieving an order.
type GetOrderInput struct {
	Code string
}

// GetOrderOutput represents the output of retrieving an order.
type GetOrderOutput struct {
	Order *entity.Order
}

// GetOrderUseCase handles order retrieval.
type GetOrderUseCase struct {
	orderRepo adapter.OrderRepository
}

// NewGetOrderUseCase creates a new GetOrderUseCase instance.
func NewGetOrderUseCase(orderRepo adapter.OrderRepository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

// Execute retrieves the order.
func (uc *GetOrderUseCase) Execute(ctx context.Context, input GetOrderInput) (*GetOrderOutput, error) {
	order, err := findOrder(ctx, uc.orderRepo, input.Code)
	if err != nil {
		return nil, err
	}
	return &GetOrderOutput{Order: order}, nil
}

func findOrder(ctx context.Context, repo adapter.OrderRepository, code string) (*entity.Order, error) {
	order, err := repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainerror.ErrOrderNotFound) {
			return nil, notFound(code)
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return order, nil
}

func notFound(code string) error {
	return domainerror.NewOrderError(
		domainerror.ErrCodeOrderNotFound,
		fmt.Sprintf("order %s not found", code),
		domainerror.ErrOrderNotFound,
	)
}
