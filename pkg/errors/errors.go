package errors

import (
	"errors"
	"fmt"
)

// Application error kinds. Services wrap these with context and handlers
// map them to HTTP status codes with errors.Is.

var (
	// ErrUnauthenticated indicates a missing, invalid or expired credential
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates a role mismatch or a resource the caller does not own
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateEmail indicates the email is already registered
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicatePending indicates a pending request to the same mentor already exists
	ErrDuplicatePending = errors.New("request already sent to this mentor")

	// ErrInvalidTarget indicates the addressed user is not a mentor
	ErrInvalidTarget = errors.New("mentor not found")

	// ErrInvalidTransition indicates a status change not allowed from the current status
	ErrInvalidTransition = errors.New("invalid status transition")
)

// NotFoundError creates a not found error with context
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// ForbiddenError creates a forbidden error with context
func ForbiddenError(reason string) error {
	if reason != "" {
		return fmt.Errorf("%s: %w", reason, ErrForbidden)
	}
	return ErrForbidden
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// InvalidTransitionError describes a rejected status change
func InvalidTransitionError(from, to string) error {
	return fmt.Errorf("%w: cannot transition from '%s' to '%s'", ErrInvalidTransition, from, to)
}

// IsClientError reports whether err is one of the 400-class input errors
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrDuplicatePending) ||
		errors.Is(err, ErrInvalidTarget) ||
		errors.Is(err, ErrInvalidTransition)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
