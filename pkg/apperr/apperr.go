// Package apperr contains the error taxonomy shared across layers for stable
// error mapping at the HTTP boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates the requested record does not exist. It stays below
// the HTTP boundary; callers translate it before responding.
var ErrNotFound = errors.New("not found")

// Error codes rendered in the response envelope.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodePayload      = "PAYLOAD_ERROR"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL"
)

// Error is a client-renderable failure with a stable code and HTTP status.
type Error struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Status  int               `json:"-"`
}

func (e *Error) Error() string { return e.Message }

// Validation reports malformed or out-of-range input with per-field details.
func Validation(details map[string]string) *Error {
	return &Error{
		Code:    CodeValidation,
		Status:  http.StatusUnprocessableEntity,
		Message: "Invalid input data",
		Details: details,
	}
}

// Conflict reports a uniqueness violation on the given field.
func Conflict(field string) *Error {
	return &Error{
		Code:    CodeConflict,
		Status:  http.StatusConflict,
		Message: fmt.Sprintf("An account with this %s already exists", field),
		Details: map[string]string{"field": field},
	}
}

// Unauthorized covers bad credentials, bad or expired tokens, and missing
// accounts alike. The message is deliberately identical for every cause.
func Unauthorized() *Error {
	return &Error{
		Code:    CodeUnauthorized,
		Status:  http.StatusUnauthorized,
		Message: "Invalid credentials or token",
	}
}

// Payload reports an unacceptable upload body (bad type, empty, oversized).
func Payload(status int, message string) *Error {
	return &Error{Code: CodePayload, Status: status, Message: message}
}

// RateLimited reports a denied admission.
func RateLimited() *Error {
	return &Error{
		Code:    CodeRateLimited,
		Status:  http.StatusTooManyRequests,
		Message: "Too many requests",
	}
}

// Internal hides store and infrastructure failures behind a generic message.
func Internal() *Error {
	return &Error{
		Code:    CodeInternal,
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
	}
}
