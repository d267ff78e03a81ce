package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

// UpdateOrderInput represents the input for a full (PUT) or partial (PATCH) order update.
type UpdateOrderInput struct {
	Code    string
	Payload Payload
	Image   *ImageUpload
	Partial bool
}

// UpdateOrderOutput represents the output of an order update.
type UpdateOrderOutput struct {
	Order *entity.Order
}

// UpdateOrderUseCase handles order updates.
type UpdateOrderUseCase struct {
	orderRepo adapter.OrderRepository
	images    imageStore
	clock     adapter.Clock
}

// NewUpdateOrderUseCase creates a new UpdateOrderUseCase instance.
func NewUpdateOrderUseCase(
	orderRepo adapter.OrderRepository,
	storage adapter.ImageStorage,
	clock adapter.Clock,
	maxImageBytes int64,
) *UpdateOrderUseCase {
	return &UpdateOrderUseCase{
		orderRepo: orderRepo,
		images:    imageStore{storage: storage, maxBytes: maxImageBytes},
		clock:     clock,
	}
}

// Execute merges the payload into the stored order, validates the result and recomputes the quantity.
func (uc *UpdateOrderUseCase) Execute(ctx context.Context, input UpdateOrderInput) (*UpdateOrderOutput, error) {
	order, err := findOrder(ctx, uc.orderRepo, input.Code)
	if err != nil {
		return nil, err
	}
	previousImage := order.ProductImage

	fieldErrs := input.Payload.ApplyTo(order, input.Partial)
	if err := validateOrder(order, fieldErrs); err != nil {
		return nil, err
	}
	order.RecomputeQuantity()

	var storedImage string
	switch {
	case input.Image != nil:
		storedImage, err = uc.images.put(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		order.ProductImage = storedImage
	case input.Payload.ClearImage:
		order.ProductImage = ""
	}
	order.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		uc.images.remove(ctx, storedImage)
		if errors.Is(err, domainerror.ErrOrderNotFound) {
			return nil, notFound(input.Code)
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if previousImage != order.ProductImage {
		uc.images.remove(ctx, previousImage)
	}

	slog.InfoContext(ctx, "Order updated",
		"product_id", order.ProductID,
		"partial", input.Partial,
		"quantity", order.Quantity,
	)

	return &UpdateOrderOutput{Order: order}, nil
}
