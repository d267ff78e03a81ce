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

// CreateOrderInput represents the input for order creation.
type CreateOrderInput struct {
	Payload Payload
	Image   *ImageUpload
}

// CreateOrderOutput represents the output of order creation.
type CreateOrderOutput struct {
	Order *entity.Order
}

// CreateOrderUseCase handles order creation logic.
type CreateOrderUseCase struct {
	orderRepo    adapter.OrderRepository
	images       imageStore
	clock        adapter.Clock
	generateCode CodeGenerator
}

// NewCreateOrderUseCase creates a new CreateOrderUseCase instance.
func NewCreateOrderUseCase(
	orderRepo adapter.OrderRepository,
	storage adapter.ImageStorage,
	clock adapter.Clock,
	maxImageBytes int64,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:    orderRepo,
		images:       imageStore{storage: storage, maxBytes: maxImageBytes},
		clock:        clock,
		generateCode: RandomCode,
	}
}

// Execute validates the payload, derives the quantity and stores the order under a fresh code.
func (uc *CreateOrderUseCase) Execute(ctx context.Context, input CreateOrderInput) (*CreateOrderOutput, error) {
	order := entity.NewOrder(uc.clock.Now().UTC())

	fieldErrs := input.Payload.ApplyTo(order, false)
	if err := validateOrder(order, fieldErrs); err != nil {
		return nil, err
	}
	order.RecomputeQuantity()

	if input.Image != nil {
		key, err := uc.images.put(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		order.ProductImage = key
	}

	if err := insertWithFreshCode(ctx, uc.orderRepo, uc.generateCode, order); err != nil {
		uc.images.remove(ctx, order.ProductImage)

		var orderErr *domainerror.OrderError
		if errors.As(err, &orderErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	slog.InfoContext(ctx, "Order created",
		"product_id", order.ProductID,
		"quantity", order.Quantity,
		"is_set", order.IsSet,
	)

	return &CreateOrderOutput{Order: order}, nil
}
