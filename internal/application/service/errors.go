package service

import "errors"

// Typed failures surfaced at the action boundary. Handlers map these to
// response codes; callers test them with errors.Is.
var (
	// ErrValidation is returned for malformed or missing input fields
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an invoice or user id cannot be resolved
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned on an actor role or ownership mismatch
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInsufficientCredits is returned when a submission would overdraw the owner's credits
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrConfigurationMissing is returned when no tax configuration has been created yet
	ErrConfigurationMissing = errors.New("tax configuration missing")
)
