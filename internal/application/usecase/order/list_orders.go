package order

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/application/usecase/period"
	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

// ListOrdersInput holds the raw query filters. Blank values disable a filter.
type ListOrdersInput struct {
	Status    string
	Customer  string
	IsSet     string
	StartDate string
	EndDate   string
}

// ListOrdersOutput represents the output of listing orders.
type ListOrdersOutput struct {
	Orders []*entity.Order
}

// ListOrdersUseCase handles order listing.
type ListOrdersUseCase struct {
	orderRepo adapter.OrderRepository
}

// NewListOrdersUseCase creates a new ListOrdersUseCase instance.
func NewListOrdersUseCase(orderRepo adapter.OrderRepository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// Execute lists orders matching the filters.
func (uc *ListOrdersUseCase) Execute(ctx context.Context, input ListOrdersInput) (*ListOrdersOutput, error) {
	filter, err := parseFilter(input)
	if err != nil {
		return nil, err
	}

	orders, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return &ListOrdersOutput{Orders: orders}, nil
}

func parseFilter(input ListOrdersInput) (adapter.OrderFilter, error) {
	rng, fieldErrs, reversed := period.Parse(input.StartDate, input.EndDate)
	if reversed {
		fieldErrs[period.FieldStartDate] = period.MsgReversed
	}

	filter := adapter.OrderFilter{
		Customer: strings.TrimSpace(input.Customer),
		Period:   rng,
	}

	if status := strings.TrimSpace(input.Status); status != "" {
		if entity.IsValidOrderStatus(status) {
			s := entity.OrderStatus(status)
			filter.Status = &s
		} else {
			fieldErrs[FieldStatus] = fmt.Sprintf("%q is not a valid choice.", status)
		}
	}

	if isSet := strings.TrimSpace(input.IsSet); isSet != "" {
		b, err := strconv.ParseBool(isSet)
		if err != nil {
			fieldErrs[FieldIsSet] = "Must be a valid boolean."
		} else {
			filter.IsSet = &b
		}
	}

	if len(fieldErrs) > 0 {
		return adapter.OrderFilter{}, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidOrderFilter,
			"invalid order filter",
			fieldErrs,
		)
	}
	return filter, nil
}
