// Package apierror defines the error kinds the HTTP layer knows how to render.
//
// Anything that is not an *Error reaching the response writer is treated as an
// unexpected failure and reported as a generic internal error.
package apierror

import (
	"errors"
	"net/http"
)

// Code and message of the generic internal error
const (
	CodeInternal    = "internal_error"
	MessageInternal = "Internal Error"
)

// Error is a client-visible failure with a stable machine code
type Error struct {
	Status  int
	Code    string
	Message string
	Details any
	Err     error // underlying cause, logged but never rendered
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy of e carrying details
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// BadRequest is a 400: the caller's input is invalid
func BadRequest(code, message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Message: message}
}

// NotFound is a 404
func NotFound(code, message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: code, Message: message}
}

// TooManyRequests is a 429 returned by the rate limiter
func TooManyRequests(code, message string) *Error {
	return &Error{Status: http.StatusTooManyRequests, Code: code, Message: message}
}

// Internal is a 500 wrapping cause
func Internal(code, message string, cause error) *Error {
	if message == "" {
		message = MessageInternal
	}
	return &Error{Status: http.StatusInternalServerError, Code: code, Message: message, Err: cause}
}

// From returns err as an *Error, coercing unknown errors to a generic internal error.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(CodeInternal, MessageInternal, err)
}
