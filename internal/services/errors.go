// Package services defines the validation and workflow rules for everything
// that writes to the collections: public submissions (applications,
// inspections, support tickets) and admin edits (listings, agents, statuses).
// This file centralizes the service-level error values so handlers can map
// them to HTTP results consistently.
package services

import "errors"

var (
	// ErrMissingField is returned when a required field is blank.
	ErrMissingField = errors.New("field is required")

	// ErrInvalidPhone is returned for numbers that are not +234XXXXXXXXXX,
	// 234XXXXXXXXXX or 0XXXXXXXXXX.
	ErrInvalidPhone = errors.New("please enter a valid Nigerian phone number")

	// ErrInvalidEmail is returned for a non-empty, malformed e-mail address.
	ErrInvalidEmail = errors.New("please enter a valid email address")

	// ErrInvalidDate is returned when a calendar day is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

	// ErrMoveInPast is returned when the move-in date is before today.
	ErrMoveInPast = errors.New("move-in date cannot be in the past")

	// ErrDateInPast is returned when an inspection day is before today.
	ErrDateInPast = errors.New("date cannot be in the past")

	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("unknown status")

	// ErrInvalidValue is returned for out-of-range numbers such as a
	// negative price.
	ErrInvalidValue = errors.New("value out of range")

	// ErrListingUnavailable is returned when a submission names a listing
	// that does not exist or is not available.
	ErrListingUnavailable = errors.New("listing is not available")

	// ErrUnknownKind is returned for a listing kind other than rent or sale.
	ErrUnknownKind = errors.New("unknown listing kind")
)

// FieldError ties a validation failure to the input field that caused it.
// It unwraps to one of the sentinels above.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}
