// Package entity defines the core business entities for the domain layer.
package entity

import (
	"math"
	"time"
)

// Size is a garment size code.
type Size string

const (
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	Size2XL Size = "2XL"
	Size3XL Size = "3XL"
)

// Sizes lists every accepted size code in display order.
var Sizes = []Size{SizeS, SizeM, SizeL, SizeXL, Size2XL, Size3XL}

// IsValidSize reports whether code is one of the accepted size codes.
func IsValidSize(code string) bool {
	for _, s := range Sizes {
		if string(s) == code {
			return true
		}
	}
	return false
}

// OrderStatus is the production stage of an order.
type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "Pending"
	OrderStatusCutting          OrderStatus = "cutting"
	OrderStatusStitching        OrderStatus = "stitching"
	OrderStatusFinishing        OrderStatus = "finishing"
	OrderStatusReadyForDelivery OrderStatus = "Ready for Delivery"
	OrderStatusDelivered        OrderStatus = "Delivered"
	OrderStatusCancelled        OrderStatus = "Cancelled"
)

// OrderStatuses lists every accepted status.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusCutting,
	OrderStatusStitching,
	OrderStatusFinishing,
	OrderStatusReadyForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValidOrderStatus reports whether status is one of the accepted statuses.
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if string(s) == status {
			return true
		}
	}
	return false
}

// OrderCodeLength is the length of the generated product_id.
const OrderCodeLength = 5

// OrderCodeAlphabet holds the characters a product_id is drawn from.
const OrderCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Order is a fabric production order.
type Order struct {
	ProductID      string
	CustomerName   string
	ProductName    string
	ProductImage   string // storage key, empty when no image is attached
	FabricType     *string
	FabricWeight   *string
	Description    *string
	Colours        []string
	Sizes          []string
	SizeQuantities map[string]*int
	OrderDate      time.Time
	DeliveryDate   time.Time
	Status         OrderStatus
	Quantity       int
	IsSet          bool
	SetMultiplier  int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewOrder creates an Order carrying the default field values.
func NewOrder(now time.Time) *Order {
	today := DateOf(now)

	return &Order{
		Colours:        []string{},
		Sizes:          []string{},
		SizeQuantities: map[string]*int{},
		OrderDate:      today,
		DeliveryDate:   today,
		Status:         OrderStatusPending,
		SetMultiplier:  1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// RecomputeQuantity overwrites Quantity with the value derived from SizeQuantities.
func (o *Order) RecomputeQuantity() {
	o.Quantity = DeriveQuantity(o.SizeQuantities, o.IsSet, o.SetMultiplier)
}

// DeriveQuantity sums the present per-size counts and applies the set multiplier when isSet.
func DeriveQuantity(sizeQuantities map[string]*int, isSet bool, setMultiplier int) int {
	total := 0
	for _, q := range sizeQuantities {
		if q != nil {
			total += *q
		}
	}
	if isSet {
		total *= setMultiplier
	}
	return total
}

// MaxOrderQuantity is the largest derived quantity an order can store.
const MaxOrderQuantity = math.MaxInt32

// QuantityWithinLimit reports whether the quantity DeriveQuantity would return for these inputs
// stays between 0 and MaxOrderQuantity.
func QuantityWithinLimit(sizeQuantities map[string]*int, isSet bool, setMultiplier int) bool {
	var total int64
	for _, q := range sizeQuantities {
		if q == nil {
			continue
		}
		if *q < 0 || int64(*q) > MaxOrderQuantity-total {
			return false
		}
		total += int64(*q)
	}
	if !isSet || total == 0 {
		return true
	}
	if setMultiplier < 1 {
		return false
	}
	return total <= MaxOrderQuantity/int64(setMultiplier)
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
