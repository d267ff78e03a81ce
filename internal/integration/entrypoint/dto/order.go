package dto

import (
	"time"

	"github.com/fabrie/backend/internal/domain/entity"
)

// OrderResponse represents a single order in API responses.
type OrderResponse struct {
	ProductID      string          `json:"product_id"`
	CustomerName   string          `json:"customer_name"`
	ProductName    string          `json:"product_name"`
	ProductImage   *string         `json:"product_image"`
	FabricType     *string         `json:"fabric_type"`
	FabricWeight   *string         `json:"fabric_weight"`
	Description    *string         `json:"description"`
	Colours        []string        `json:"colours"`
	Size           []string        `json:"size"`
	SizeQuantities map[string]*int `json:"size_quantities"`
	OrderDate      string          `json:"order_date"`
	DeliveryDate   string          `json:"delivery_date"`
	Status         string          `json:"status"`
	Quantity       int             `json:"quantity"`
	IsSet          bool            `json:"is_set"`
	SetMultiplier  int             `json:"set_multiplier"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToOrderResponse converts a domain Order entity to an OrderResponse DTO.
// imageURL resolves a storage key to its public URL.
func ToOrderResponse(o *entity.Order, imageURL func(string) string) OrderResponse {
	var image *string
	if o.ProductImage != "" {
		url := imageURL(o.ProductImage)
		image = &url
	}

	colours := o.Colours
	if colours == nil {
		colours = []string{}
	}
	sizes := o.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	quantities := o.SizeQuantities
	if quantities == nil {
		quantities = map[string]*int{}
	}

	return OrderResponse{
		ProductID:      o.ProductID,
		CustomerName:   o.CustomerName,
		ProductName:    o.ProductName,
		ProductImage:   image,
		FabricType:     o.FabricType,
		FabricWeight:   o.FabricWeight,
		Description:    o.Description,
		Colours:        colours,
		Size:           sizes,
		SizeQuantities: quantities,
		OrderDate:      o.OrderDate.Format(time.DateOnly),
		DeliveryDate:   o.DeliveryDate.Format(time.DateOnly),
		Status:         string(o.Status),
		Quantity:       o.Quantity,
		IsSet:          o.IsSet,
		SetMultiplier:  o.SetMultiplier,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// ToOrderListResponse converts orders to a plain list of responses.
func ToOrderListResponse(orders []*entity.Order, imageURL func(string) string) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToOrderResponse(o, imageURL)
	}
	return out
}
