// Package apperr defines the error taxonomy shared by every layer of the
// API.  Each error carries a user-facing message, a suggested action and the
// HTTP status it maps to; the central error handler serializes them as-is.
// Causes are kept for server-side logging and are never sent to the client.
package apperr

import (
	"errors"
	"net/http"
)

// Error is the single error type exchanged between repositories, services
// and handlers.  The JSON shape mirrors what the API returns to clients.
type Error struct {
	Name       string `json:"name"`
	Message    string `json:"message"`
	Action     string `json:"action"`
	StatusCode int    `json:"status_code"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is/errors.As chains.
func (e *Error) Unwrap() error { return e.cause }

// Cause returns the wrapped error, if any.  Used by the boundary to log the
// original failure without leaking it to the caller.
func (e *Error) Cause() error { return e.cause }

// As extracts an *Error from err, unwrapping as needed.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// NewValidation reports bad or duplicate input (HTTP 400).
func NewValidation(message, action string) *Error {
	if message == "" {
		message = "Validation error"
	}
	if action == "" {
		action = "Check the request parameters"
	}
	return &Error{
		Name:       "ValidationError",
		Message:    message,
		Action:     action,
		StatusCode: http.StatusBadRequest,
	}
}

// NewNotFound reports a missing resource (HTTP 404).
func NewNotFound(message, action string) *Error {
	if message == "" {
		message = "Not found"
	}
	if action == "" {
		action = "Check the request parameters"
	}
	return &Error{
		Name:       "NotFoundError",
		Message:    message,
		Action:     action,
		StatusCode: http.StatusNotFound,
	}
}

// NewUnauthorized reports a failed authentication check (HTTP 401).
func NewUnauthorized(message, action string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	if action == "" {
		action = "Login again to continue"
	}
	return &Error{
		Name:       "UnauthorizedError",
		Message:    message,
		Action:     action,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewMethodNotAllowed reports an HTTP method the endpoint does not accept.
func NewMethodNotAllowed() *Error {
	return &Error{
		Name:       "MethodNotAllowedError",
		Message:    "Method not allowed to this endpoint",
		Action:     "Check if the HTTP method is valid for this endpoint",
		StatusCode: http.StatusMethodNotAllowed,
	}
}

// NewServiceUnavailable reports an unreachable dependency such as the
// database or an upstream API (HTTP 503).
func NewServiceUnavailable(message string, cause error) *Error {
	if message == "" {
		message = "Service unavailable"
	}
	return &Error{
		Name:       "ServiceError",
		Message:    message,
		Action:     "Try again in 5 minutes. Check if the service is currently available",
		StatusCode: http.StatusServiceUnavailable,
		cause:      cause,
	}
}

// NewInternal wraps an unexpected error (HTTP 500).  The cause is logged by
// the boundary and never serialized.
func NewInternal(cause error) *Error {
	return &Error{
		Name:       "InternalServerError",
		Message:    "An unexpected error occurred",
		Action:     "Try again in 5 minutes. If the error continues, please contact our support",
		StatusCode: http.StatusInternalServerError,
		cause:      cause,
	}
}
