package order

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

// orderRules mirrors the persisted order for validation.
type orderRules struct {
	CustomerName   string          `json:"customer_name" validate:"required,max=255"`
	ProductName    string          `json:"product_name" validate:"required,max=255"`
	FabricType     string          `json:"fabric_type" validate:"max=100"`
	FabricWeight   string          `json:"fabric_weight" validate:"max=50"`
	Colours        []string        `json:"colours" validate:"dive,max=50"`
	Sizes          []string        `json:"size" validate:"dive,size_code"`
	SizeQuantities map[string]*int `json:"size_quantities" validate:"dive,keys,size_code,endkeys,omitempty,min=0"`
	Status         string          `json:"status" validate:"required,order_status"`
	SetMultiplier  int             `json:"set_multiplier" validate:"min=1"`
}

var orderValidator = newOrderValidator()

func newOrderValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("size_code", func(fl validator.FieldLevel) bool {
		return entity.IsValidSize(fl.Field().String())
	})
	_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return entity.IsValidOrderStatus(fl.Field().String())
	})
	return v
}

// validateOrder checks o and merges the result with errors already collected while applying
// the payload. It returns a *ValidationError when any field is invalid.
func validateOrder(o *entity.Order, fieldErrs map[string]string) error {
	rules := orderRules{
		CustomerName:   o.CustomerName,
		ProductName:    o.ProductName,
		FabricType:     deref(o.FabricType),
		FabricWeight:   deref(o.FabricWeight),
		Colours:        o.Colours,
		Sizes:          o.Sizes,
		SizeQuantities: o.SizeQuantities,
		Status:         string(o.Status),
		SetMultiplier:  o.SetMultiplier,
	}

	if err := orderValidator.Struct(rules); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("failed to validate order: %w", err)
		}
		for _, fe := range verrs {
			field, msg := describe(fe)
			if _, exists := fieldErrs[field]; !exists {
				fieldErrs[field] = msg
			}
		}
	}

	_, badQuantities := fieldErrs[FieldSizeQuantities]
	_, badMultiplier := fieldErrs[FieldSetMultiplier]
	if !badQuantities && !badMultiplier && !entity.QuantityWithinLimit(o.SizeQuantities, o.IsSet, o.SetMultiplier) {
		fieldErrs[FieldQuantity] = fmt.Sprintf("Ensure this value is less than or equal to %d.", entity.MaxOrderQuantity)
	}

	if len(fieldErrs) > 0 {
		return domainerror.NewValidationError(domainerror.ErrCodeInvalidOrderData, "invalid order data", fieldErrs)
	}
	return nil
}

// describe maps a validator error to its top level JSON field and a client facing message.
func describe(fe validator.FieldError) (string, string) {
	name := fe.Field()
	field, index := name, ""
	if i := strings.Index(name, "["); i >= 0 {
		field = name[:i]
		index = strings.TrimSuffix(name[i+1:], "]")
	}

	switch fe.Tag() {
	case "required":
		return field, "This field is required."
	case "max":
		return field, fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "size_code":
		if field == FieldSizeQuantities {
			return field, fmt.Sprintf("Invalid size: %v", fe.Value())
		}
		return field, fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "order_status":
		return field, fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "min":
		if field == FieldSizeQuantities {
			return field, fmt.Sprintf("Quantity for size %s must be a non-negative integer.", index)
		}
		return field, fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	}
	return field, fmt.Sprintf("Failed on the %s rule.", fe.Tag())
}
