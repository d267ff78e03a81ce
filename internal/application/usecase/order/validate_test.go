package order

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

func validOrder() *entity.Order {
	o := entity.NewOrder(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	o.CustomerName = "Acme"
	o.ProductName = "Hoodie"
	return o
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *domainerror.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	assert.Equal(t, string(domainerror.ErrCodeInvalidOrderData), verr.Code)
	return verr.Fields
}

func TestValidateOrderAcceptsValidOrder(t *testing.T) {
	o := validOrder()
	o.Sizes = []string{"S", "3XL"}
	o.SizeQuantities = map[string]*int{"S": intPtr(0), "3XL": nil}
	o.Colours = []string{"Red"}

	assert.NoError(t, validateOrder(o, map[string]string{}))
}

func TestValidateOrderRejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *entity.Order)
		field   string
		message string
	}{
		{
			name:    "missing customer",
			mutate:  func(o *entity.Order) { o.CustomerName = "" },
			field:   FieldCustomerName,
			message: "This field is required.",
		},
		{
			name:    "long product name",
			mutate:  func(o *entity.Order) { o.ProductName = strings.Repeat("x", 256) },
			field:   FieldProductName,
			message: "Ensure this field has no more than 255 characters.",
		},
		{
			name:    "long fabric weight",
			mutate:  func(o *entity.Order) { o.FabricWeight = strPtr(strings.Repeat("g", 51)) },
			field:   FieldFabricWeight,
			message: "Ensure this field has no more than 50 characters.",
		},
		{
			name:    "unknown size key",
			mutate:  func(o *entity.Order) { o.SizeQuantities = map[string]*int{"XXL": intPtr(1)} },
			field:   FieldSizeQuantities,
			message: "Invalid size: XXL",
		},
		{
			name:    "negative quantity",
			mutate:  func(o *entity.Order) { o.SizeQuantities = map[string]*int{"M": intPtr(-1)} },
			field:   FieldSizeQuantities,
			message: "Quantity for size M must be a non-negative integer.",
		},
		{
			name:    "unknown size in list",
			mutate:  func(o *entity.Order) { o.Sizes = []string{"S", "xs"} },
			field:   FieldSize,
			message: `"xs" is not a valid choice.`,
		},
		{
			name:    "unknown status",
			mutate:  func(o *entity.Order) { o.Status = "shipped" },
			field:   FieldStatus,
			message: `"shipped" is not a valid choice.`,
		},
		{
			name:    "zero multiplier",
			mutate:  func(o *entity.Order) { o.SetMultiplier = 0 },
			field:   FieldSetMultiplier,
			message: "Ensure this value is greater than or equal to 1.",
		},
		{
			name:    "long colour",
			mutate:  func(o *entity.Order) { o.Colours = []string{strings.Repeat("c", 51)} },
			field:   FieldColours,
			message: "Ensure this field has no more than 50 characters.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOrder()
			tt.mutate(o)

			fields := fieldErrors(t, validateOrder(o, map[string]string{}))
			assert.Equal(t, tt.message, fields[tt.field])
		})
	}
}

func TestValidateOrderUnknownSizeKeyAlwaysFails(t *testing.T) {
	for _, key := range []string{"", "s", "XXL", "4XL", " S", "M "} {
		o := validOrder()
		o.SizeQuantities = map[string]*int{"S": intPtr(1), key: intPtr(1)}

		fields := fieldErrors(t, validateOrder(o, map[string]string{}))
		assert.Contains(t, fields, FieldSizeQuantities, "key %q", key)
	}
}

func TestValidateOrderKeepsApplyErrors(t *testing.T) {
	o := validOrder()

	fields := fieldErrors(t, validateOrder(o, map[string]string{FieldOrderDate: msgInvalidDate}))
	assert.Equal(t, msgInvalidDate, fields[FieldOrderDate])
}

func TestApplyToDates(t *testing.T) {
	o := validOrder()
	p := Normalize(map[string]any{
		FieldOrderDate:    "2024-06-01",
		FieldDeliveryDate: "06/30/2024",
	})

	errs := p.ApplyTo(o, true)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), o.OrderDate)
	assert.Equal(t, msgInvalidDate, errs[FieldDeliveryDate])
}
