package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed application error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for the failure classes the navigator distinguishes.
var (
	// ErrValidation marks field-level, user-correctable input failures.
	ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	// ErrServerRejection marks a non-success backend response carrying a message.
	ErrServerRejection = New("SERVER_REJECTION", http.StatusBadGateway, "server rejected the request")
	// ErrMalformedResponse marks a response body that is not the expected shape.
	ErrMalformedResponse = New("MALFORMED_RESPONSE", http.StatusBadGateway, "unexpected response shape")
	// ErrNetwork marks a request that could not complete at all.
	ErrNetwork = New("NETWORK_FAILURE", http.StatusServiceUnavailable, "request could not complete")
	// ErrResourceUnavailable marks a missing secondary resource (floorplan probe,
	// building directory load); callers degrade instead of surfacing a dialog.
	ErrResourceUnavailable = New("RESOURCE_UNAVAILABLE", http.StatusNotFound, "resource unavailable")
	ErrNotFound            = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrInternal            = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// HasCode reports whether err carries the given predefined code.
func HasCode(err error, target *Error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return target != nil && e.Code == target.Code
}

// Blocking reports whether the error must interrupt the primary flow and be
// acknowledged by the user. Unavailable secondary resources degrade silently.
func Blocking(err error) bool {
	e := FromError(err)
	if e == nil {
		return false
	}
	return e.Code != ErrResourceUnavailable.Code
}
