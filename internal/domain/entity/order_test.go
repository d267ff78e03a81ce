package entity

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestDeriveQuantity(t *testing.T) {
	tests := []struct {
		name       string
		quantities map[string]*int
		isSet      bool
		multiplier int
		want       int
	}{
		{name: "empty", quantities: map[string]*int{}, multiplier: 1, want: 0},
		{name: "nil map", quantities: nil, isSet: true, multiplier: 3, want: 0},
		{name: "sum ignores absent", quantities: map[string]*int{"S": intPtr(2), "M": nil, "L": intPtr(5)}, multiplier: 1, want: 7},
		{name: "multiplier ignored when not a set", quantities: map[string]*int{"S": intPtr(2)}, multiplier: 4, want: 2},
		{name: "set applies multiplier", quantities: map[string]*int{"S": intPtr(2), "XL": intPtr(3)}, isSet: true, multiplier: 4, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveQuantity(tt.quantities, tt.isSet, tt.multiplier))
		})
	}
}

func TestDeriveQuantityProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		quantities := map[string]*int{}
		sum := 0
		for _, size := range Sizes {
			switch rng.Intn(3) {
			case 0:
				continue
			case 1:
				quantities[string(size)] = nil
			default:
				q := rng.Intn(1000)
				quantities[string(size)] = intPtr(q)
				sum += q
			}
		}
		isSet := rng.Intn(2) == 0
		multiplier := 1 + rng.Intn(10)

		want := sum
		if isSet {
			want = sum * multiplier
		}
		assert.Equal(t, want, DeriveQuantity(quantities, isSet, multiplier))
	}
}

func TestQuantityWithinLimit(t *testing.T) {
	maxInt32 := MaxOrderQuantity

	assert.True(t, QuantityWithinLimit(map[string]*int{"S": intPtr(maxInt32)}, false, 1))
	assert.True(t, QuantityWithinLimit(map[string]*int{"S": intPtr(maxInt32), "M": nil}, true, 1))
	assert.False(t, QuantityWithinLimit(map[string]*int{"S": intPtr(maxInt32), "M": intPtr(1)}, false, 1))
	assert.False(t, QuantityWithinLimit(map[string]*int{"S": intPtr(2)}, true, maxInt32))
	assert.True(t, QuantityWithinLimit(map[string]*int{}, true, maxInt32))
	assert.False(t, QuantityWithinLimit(map[string]*int{
		"S": intPtr(maxInt32), "M": intPtr(maxInt32), "L": intPtr(maxInt32),
	}, true, maxInt32))
}

func TestNewOrderDefaults(t *testing.T) {
	now := time.Date(2024, 3, 9, 17, 45, 0, 0, time.UTC)

	order := NewOrder(now)

	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, 1, order.SetMultiplier)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), order.OrderDate)
	assert.Equal(t, order.OrderDate, order.DeliveryDate)
	assert.NotNil(t, order.SizeQuantities)
	assert.Empty(t, order.Colours)
}

func TestSizeAndStatusValidity(t *testing.T) {
	assert.True(t, IsValidSize("2XL"))
	assert.False(t, IsValidSize("xl"))
	assert.False(t, IsValidSize("XXL"))
	assert.True(t, IsValidOrderStatus("Ready for Delivery"))
	assert.False(t, IsValidOrderStatus("pending"))
}

func TestDateRangeContains(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.True(t, DateRange{}.Contains(start))
	assert.True(t, DateRange{Start: &start, End: &end}.Contains(end))
	assert.False(t, DateRange{Start: &start}.Contains(start.AddDate(0, 0, -1)))
	assert.False(t, DateRange{End: &end}.Contains(end.AddDate(0, 0, 1)))
}
