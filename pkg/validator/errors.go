package validator

import "errors"

var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidDate is returned by ParseDate for values that are not calendar dates.
	ErrInvalidDate = errors.New("invalid date")
)
