package error

import "errors"

// Order domain errors.
var (
	// ErrOrderNotFound is returned when no order has the requested product_id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderCodeTaken is returned by the store when a generated product_id already exists.
	ErrOrderCodeTaken = errors.New("order code already taken")

	// ErrOrderCodeExhausted is returned when no free product_id was found within the retry budget.
	ErrOrderCodeExhausted = errors.New("could not allocate a unique order code")

	// ErrInvalidOrderImage is returned when the uploaded file is not an image.
	ErrInvalidOrderImage = errors.New("uploaded file is not a valid image")

	// ErrOrderImageTooLarge is returned when the uploaded image exceeds the size limit.
	ErrOrderImageTooLarge = errors.New("uploaded image is too large")

	// ErrImageStorage is returned when the image store fails.
	ErrImageStorage = errors.New("image storage failure")
)

// OrderErrorCode defines error codes for order errors.
// Format: ORD-XXYYYY where XX is category and YYYY is specific error.
type OrderErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidOrderData   OrderErrorCode = "ORD-010001"
	ErrCodeOrderNotFound      OrderErrorCode = "ORD-010002"
	ErrCodeInvalidOrderImage  OrderErrorCode = "ORD-010003"
	ErrCodeOrderImageTooLarge OrderErrorCode = "ORD-010004"
	ErrCodeInvalidOrderFilter OrderErrorCode = "ORD-010005"

	// Internal errors (99XXXX)
	ErrCodeOrderCodeExhausted OrderErrorCode = "ORD-990001"
	ErrCodeImageStorage       OrderErrorCode = "ORD-990002"
)

// OrderError represents an order error with code and message.
type OrderError struct {
	Code    OrderErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *OrderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *OrderError) Unwrap() error {
	return e.Err
}

// NewOrderError creates a new OrderError with the given code and message.
func NewOrderError(code OrderErrorCode, message string, err error) *OrderError {
	return &OrderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
