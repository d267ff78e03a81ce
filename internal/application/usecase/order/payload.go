// Package order contains order-related use cases.
package order

import (
	"strings"
	"time"

	"github.com/fabrie/backend/internal/application/usecase/period"
	"github.com/fabrie/backend/internal/domain/entity"
)

// Order field names as they appear on the wire.
const (
	FieldCustomerName   = "customer_name"
	FieldProductName    = "product_name"
	FieldProductImage   = "product_image"
	FieldFabricType     = "fabric_type"
	FieldFabricWeight   = "fabric_weight"
	FieldDescription    = "description"
	FieldColours        = "colours"
	FieldSize           = "size"
	FieldSizeQuantities = "size_quantities"
	FieldOrderDate      = "order_date"
	FieldDeliveryDate   = "delivery_date"
	FieldStatus         = "status"
	FieldQuantity       = "quantity"
	FieldIsSet          = "is_set"
	FieldSetMultiplier  = "set_multiplier"
)

// Payload is normalized client input for an order. Fields left out by the client keep their
// defaults and are reported absent by Has.
type Payload struct {
	CustomerName   *string
	ProductName    *string
	FabricType     *string
	FabricWeight   *string
	Description    *string
	Colours        []string
	Sizes          []string
	SizeQuantities map[string]*int
	OrderDate      *string
	DeliveryDate   *string
	Status         *string
	Quantity       int // advisory, always recomputed
	IsSet          bool
	SetMultiplier  int
	ClearImage     bool

	present    map[string]bool
	typeErrors map[string]string
}

func newPayload() Payload {
	return Payload{
		Colours:        []string{},
		Sizes:          []string{},
		SizeQuantities: map[string]*int{},
		SetMultiplier:  1,
		present:        map[string]bool{},
		typeErrors:     map[string]string{},
	}
}

// Has reports whether the client supplied field.
func (p Payload) Has(field string) bool {
	return p.present[field]
}

// ApplyTo writes the payload onto o and returns per-field errors found while doing so.
// When partial is set only supplied fields change. Otherwise required names are always taken
// and list, flag and multiplier fields are reset to their normalized values.
func (p Payload) ApplyTo(o *entity.Order, partial bool) map[string]string {
	errs := make(map[string]string, len(p.typeErrors))
	for field, msg := range p.typeErrors {
		errs[field] = msg
	}

	full := !partial
	if full || p.Has(FieldCustomerName) {
		o.CustomerName = deref(p.CustomerName)
	}
	if full || p.Has(FieldProductName) {
		o.ProductName = deref(p.ProductName)
	}
	if p.Has(FieldFabricType) {
		o.FabricType = p.FabricType
	}
	if p.Has(FieldFabricWeight) {
		o.FabricWeight = p.FabricWeight
	}
	if p.Has(FieldDescription) {
		o.Description = p.Description
	}
	if full || p.Has(FieldColours) {
		o.Colours = p.Colours
	}
	if full || p.Has(FieldSize) {
		o.Sizes = p.Sizes
	}
	if full || p.Has(FieldSizeQuantities) {
		o.SizeQuantities = p.SizeQuantities
	}
	if full || p.Has(FieldIsSet) {
		o.IsSet = p.IsSet
	}
	if full || p.Has(FieldSetMultiplier) {
		o.SetMultiplier = p.SetMultiplier
	}
	if p.Has(FieldStatus) {
		o.Status = entity.OrderStatus(deref(p.Status))
	}
	if p.Has(FieldOrderDate) {
		applyDate(&o.OrderDate, FieldOrderDate, p.OrderDate, errs)
	}
	if p.Has(FieldDeliveryDate) {
		applyDate(&o.DeliveryDate, FieldDeliveryDate, p.DeliveryDate, errs)
	}

	return errs
}

const (
	msgNullDate    = "This field may not be null."
	msgInvalidDate = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
)

func applyDate(dst *time.Time, field string, value *string, errs map[string]string) {
	if value == nil || strings.TrimSpace(*value) == "" {
		errs[field] = msgNullDate
		return
	}

	day, err := period.ParseDay(*value)
	if err != nil {
		errs[field] = msgInvalidDate
		return
	}
	*dst = *day
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
