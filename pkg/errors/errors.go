// Package errors defines the structured application error type and the error
// codes exposed on the HTTP surface.
package errors

import (
	"fmt"
	"net/http"
)

const (
	ErrCodeInternal       = "internal_error"
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeNotFound       = "not_found"
)

// AppError is a structured application error carrying a stable error code and
// the HTTP status it maps to.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	cause      error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap supports errors.Is / errors.As over the cause chain.
func (e *AppError) Unwrap() error { return e.cause }

// WithError attaches a cause to a copy of the error.
func (e *AppError) WithError(cause error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		HTTPStatus: e.HTTPStatus,
		cause:      cause,
	}
}

// New creates an internal-error AppError with the given message.
func New(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message, HTTPStatus: http.StatusInternalServerError}
}

// NewNotFound creates a not-found AppError with a formatted message.
func NewNotFound(format string, args ...interface{}) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...), HTTPStatus: http.StatusNotFound}
}

// NewInvalidRequest creates a bad-request AppError.
func NewInvalidRequest(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidRequest, Message: message, HTTPStatus: http.StatusBadRequest}
}

var (
	// ErrInternalServer is the generic fallback for unexpected faults.
	ErrInternalServer = New("internal server error")
)
