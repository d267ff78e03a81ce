package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fabrie/backend/internal/application/adapter"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

// DeleteOrderInput represents the input for order deletion.
type DeleteOrderInput struct {
	Code string
}

// DeleteOrderUseCase handles order deletion together with its stored image.
type DeleteOrderUseCase struct {
	orderRepo adapter.OrderRepository
	images    imageStore
}

// NewDeleteOrderUseCase creates a new DeleteOrderUseCase instance.
func NewDeleteOrderUseCase(orderRepo adapter.OrderRepository, storage adapter.ImageStorage) *DeleteOrderUseCase {
	return &DeleteOrderUseCase{
		orderRepo: orderRepo,
		images:    imageStore{storage: storage},
	}
}

// Execute deletes the order.
func (uc *DeleteOrderUseCase) Execute(ctx context.Context, input DeleteOrderInput) error {
	order, err := findOrder(ctx, uc.orderRepo, input.Code)
	if err != nil {
		return err
	}

	if err := uc.orderRepo.Delete(ctx, order.ProductID); err != nil {
		if errors.Is(err, domainerror.ErrOrderNotFound) {
			return notFound(input.Code)
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	uc.images.remove(ctx, order.ProductImage)

	slog.InfoContext(ctx, "Order deleted", "product_id", order.ProductID)
	return nil
}
