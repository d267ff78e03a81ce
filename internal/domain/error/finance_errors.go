package error

import "errors"

// Finance report errors.
var (
	// ErrInvalidDateFormat is returned when a date parameter is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidDateRange is returned when start_date is after end_date.
	ErrInvalidDateRange = errors.New("start_date must be <= end_date")

	// ErrReportRender is returned when the report document cannot be produced.
	ErrReportRender = errors.New("report rendering failed")
)

// FinanceErrorCode defines error codes for finance report errors.
// Format: FIN-XXYYYY where XX is category and YYYY is specific error.
type FinanceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDateFormat FinanceErrorCode = "FIN-010001"
	ErrCodeInvalidDateRange  FinanceErrorCode = "FIN-010002"

	// Internal errors (99XXXX)
	ErrCodeReportFailed FinanceErrorCode = "FIN-990001"
	ErrCodeReportRender FinanceErrorCode = "FIN-990002"
)

// FinanceError represents a finance report error with code and message.
type FinanceError struct {
	Code    FinanceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FinanceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FinanceError) Unwrap() error {
	return e.Err
}

// NewFinanceError creates a new FinanceError with the given code and message.
func NewFinanceError(code FinanceErrorCode, message string, err error) *FinanceError {
	return &FinanceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
