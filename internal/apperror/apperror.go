// Package apperror defines the typed errors services return to the HTTP layer.
// Each error carries the HTTP status it maps to and a message that is safe to
// show to the caller.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a classified application error.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Label is the HTTP reason phrase for the status, e.g. "Conflict".
func (e *Error) Label() string { return http.StatusText(e.Status) }

func newf(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

// BadRequest reports malformed input.
func BadRequest(format string, args ...any) *Error {
	return newf(http.StatusBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return newf(http.StatusUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return newf(http.StatusForbidden, format, args...)
}

// NotFound reports a referenced entity that does not exist.
func NotFound(format string, args ...any) *Error {
	return newf(http.StatusNotFound, format, args...)
}

// Conflict reports uniqueness violations, limits out of range and blocked deletions.
func Conflict(format string, args ...any) *Error {
	return newf(http.StatusConflict, format, args...)
}

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Message: "Unexpected error, check server logs",
		Err:     err,
	}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// StatusOf returns the HTTP status carried by err, or 500 for unclassified errors.
func StatusOf(err error) int {
	if e, ok := As(err); ok {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Is reports whether err is an *Error with the given status.
func Is(err error, status int) bool {
	e, ok := As(err)
	return ok && e.Status == status
}
