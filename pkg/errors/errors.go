package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an application error.
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "VALIDATION"
	ErrorTypeNotFound    ErrorType = "NOT_FOUND"
	ErrorTypeInternal    ErrorType = "INTERNAL"
	ErrorTypeDatabase    ErrorType = "DATABASE"
	ErrorTypeExternal    ErrorType = "EXTERNAL"
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"
)

// StatusAssistantFailure is returned when the relay itself fails while
// talking to the assistant backend, to distinguish transport problems
// from assistant-side run failures (plain 500).
const StatusAssistantFailure = 509

// AppError is an application error with an HTTP mapping.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Cause      error     `json:"-"`
	HTTPStatus int       `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error.
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewValidationError creates a validation error (HTTP 400).
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a not-found error (HTTP 404).
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewInternalError creates an internal error (HTTP 500).
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewDatabaseError creates a storage-layer error (HTTP 500).
func NewDatabaseError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeDatabase,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewAssistantRunError describes a run the assistant backend reported as
// not completed (failed, cancelled or expired).
func NewAssistantRunError(status string) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Message:    fmt.Sprintf("Run Status: %s", status),
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewAssistantUnavailableError describes a failure to reach or drive the
// assistant backend at all.
func NewAssistantUnavailableError(err error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnavailable,
		Message:    err.Error(),
		Cause:      err,
		HTTPStatus: StatusAssistantFailure,
	}
}

// GetAppError extracts an AppError from an error chain, if present.
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HTTPStatusOf maps any error to an HTTP status code.
func HTTPStatusOf(err error) int {
	if appErr, ok := GetAppError(err); ok && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
