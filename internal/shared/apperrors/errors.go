// Package apperrors defines the sentinel error values shared across the
// booking core. Services wrap these with context via fmt.Errorf("...: %w", ...)
// and controllers translate them into HTTP status codes, so no layer below the
// controller ever deals in status codes directly.
package apperrors

import "errors"

// ErrInvalidInput is returned for missing or malformed parameters, empty
// batches, past booking dates, and recurrence window or count violations.
// Controllers translate it into HTTP 400.
var ErrInvalidInput = errors.New("invalid input")

// ErrUnauthenticated is returned when no caller identity is present.
// Controllers translate it into HTTP 401.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own and they are not an admin. HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when a booking, group, seat, or allocation does
// not exist. HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when the storage layer rejects a write due to the
// active-booking uniqueness invariant, or when state transitions collide
// (overlapping approved allocations, duplicate seat codes). HTTP 409.
var ErrConflict = errors.New("conflict")

// Invalid wraps ErrInvalidInput with a human-readable reason.
func Invalid(reason string) error {
	return wrap(ErrInvalidInput, reason)
}

// Conflict wraps ErrConflict with a human-readable reason.
func Conflict(reason string) error {
	return wrap(ErrConflict, reason)
}

// NotFound wraps ErrNotFound with the missing resource name.
func NotFound(resource string) error {
	return wrap(ErrNotFound, resource)
}

// Forbidden wraps ErrForbidden with a human-readable reason.
func Forbidden(reason string) error {
	return wrap(ErrForbidden, reason)
}

type wrapped struct {
	sentinel error
	reason   string
}

func wrap(sentinel error, reason string) error {
	return &wrapped{sentinel: sentinel, reason: reason}
}

func (w *wrapped) Error() string {
	return w.sentinel.Error() + ": " + w.reason
}

func (w *wrapped) Unwrap() error {
	return w.sentinel
}
