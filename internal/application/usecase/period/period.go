// Package period parses the optional start_date/end_date bounds shared by listing and report endpoints.
package period

import (
	"strings"
	"time"

	"github.com/fabrie/backend/internal/domain/entity"
)

// Layout is the accepted calendar day format.
const Layout = "2006-01-02"

// Field names and messages reported for invalid bounds.
const (
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"

	MsgInvalidFormat = "Invalid date format. Use YYYY-MM-DD."
	MsgReversed      = "start_date must be <= end_date."
)

// ParseDay parses an optional calendar day. Blank input yields nil.
func ParseDay(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	day, err := time.ParseInLocation(Layout, value, time.UTC)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// Parse reads both bounds. formatErrs holds a message per malformed field; reversed is set when both
// bounds are valid and start is after end.
func Parse(startDate, endDate string) (rng entity.DateRange, formatErrs map[string]string, reversed bool) {
	formatErrs = map[string]string{}

	start, err := ParseDay(startDate)
	if err != nil {
		formatErrs[FieldStartDate] = MsgInvalidFormat
	}
	end, err := ParseDay(endDate)
	if err != nil {
		formatErrs[FieldEndDate] = MsgInvalidFormat
	}
	if len(formatErrs) > 0 {
		return entity.DateRange{}, formatErrs, false
	}

	if start != nil && end != nil && start.After(*end) {
		return entity.DateRange{}, formatErrs, true
	}
	return entity.DateRange{Start: start, End: end}, formatErrs, false
}
