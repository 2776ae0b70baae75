// Package errors defines custom error types and error handling utilities for
// the delinquency risk service. Errors carry a machine-readable code and the
// HTTP status they map to; user-facing responses expose only a detail string.
package errors

import (
	"fmt"
	"net/http"
)

// ================================================================================
// Error Codes
// ================================================================================

// Code is a machine-readable error code.
type Code string

const (
	// CodeValidation indicates a malformed or out-of-range request field.
	CodeValidation Code = "validation_error"

	// CodeInvalidFilter indicates an unknown filter value, e.g. an unknown tier.
	CodeInvalidFilter Code = "invalid_filter"

	// CodeModelUnavailable indicates the classifier is not loaded.
	CodeModelUnavailable Code = "model_unavailable"

	// CodeDataUnavailable indicates the customer table is not loaded.
	CodeDataUnavailable Code = "data_unavailable"

	// CodeNotFound indicates a missing resource or route.
	CodeNotFound Code = "not_found"

	// CodeInternal indicates an unexpected server-side failure.
	CodeInternal Code = "internal_error"
)

// ================================================================================
// AppError
// ================================================================================

// AppError is a structured application error with an HTTP status mapping.
type AppError struct {
	code       Code
	httpStatus int
	detail     string
	cause      error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.detail, e.cause)
	}
	return e.detail
}

// Code returns the machine-readable error code.
func (e *AppError) Code() Code {
	return e.code
}

// HTTPStatus returns the HTTP status code this error maps to.
func (e *AppError) HTTPStatus() int {
	return e.httpStatus
}

// Detail returns the user-facing detail string. It never contains internal
// stack traces or wrapped-cause text.
func (e *AppError) Detail() string {
	return e.detail
}

// Unwrap returns the underlying cause for error-chain support.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause attaches a cause error to the chain.
func (e *AppError) WithCause(cause error) *AppError {
	e.cause = cause
	return e
}

// New creates a new AppError with the given code, status and detail.
func New(code Code, httpStatus int, detail string) *AppError {
	return &AppError{code: code, httpStatus: httpStatus, detail: detail}
}

// ================================================================================
// Predefined Constructors
// ================================================================================

// ErrValidation creates a validation error (HTTP 400).
func ErrValidation(detail string) *AppError {
	return New(CodeValidation, http.StatusBadRequest, detail)
}

// ErrValidationf creates a formatted validation error (HTTP 400).
func ErrValidationf(format string, args ...interface{}) *AppError {
	return ErrValidation(fmt.Sprintf(format, args...))
}

// ErrInvalidFilter creates an invalid filter error (HTTP 400).
func ErrInvalidFilter(field, value string) *AppError {
	return New(CodeInvalidFilter, http.StatusBadRequest,
		fmt.Sprintf("invalid %s filter: %q", field, value))
}

// ErrModelUnavailable creates a model unavailable error (HTTP 500). Callers
// decide whether to degrade to rule-based tiering; this error is never
// replaced with a silent default probability.
func ErrModelUnavailable(reason string) *AppError {
	return New(CodeModelUnavailable, http.StatusInternalServerError,
		fmt.Sprintf("delinquency model unavailable: %s", reason))
}

// ErrDataUnavailable creates a data unavailable error (HTTP 503).
func ErrDataUnavailable() *AppError {
	return New(CodeDataUnavailable, http.StatusServiceUnavailable,
		"customer data not loaded")
}

// ErrNotFound creates a not found error (HTTP 404).
func ErrNotFound(resource string) *AppError {
	return New(CodeNotFound, http.StatusNotFound, resource+" not found")
}

// ErrInternal creates an internal error (HTTP 500).
func ErrInternal(detail string) *AppError {
	return New(CodeInternal, http.StatusInternalServerError, detail)
}

// ================================================================================
// Utilities
// ================================================================================

// AsAppError attempts to cast an error to *AppError.
func AsAppError(err error) (*AppError, bool) {
	appErr, ok := err.(*AppError)
	return appErr, ok
}

// HTTPStatus returns the status for any error, defaulting to 500.
func HTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// Detail returns the user-facing detail for any error. Non-AppError values
// collapse to a generic message so internals never leak into responses.
func Detail(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Detail()
	}
	return "an unexpected error occurred"
}

// IsModelUnavailable reports whether the error is a model-unavailable condition.
func IsModelUnavailable(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code() == CodeModelUnavailable
}

// Wrap wraps a generic error into an AppError with the given code and detail.
func Wrap(err error, code Code, detail string) *AppError {
	status := http.StatusInternalServerError
	switch code {
	case CodeValidation, CodeInvalidFilter:
		status = http.StatusBadRequest
	case CodeNotFound:
		status = http.StatusNotFound
	case CodeDataUnavailable:
		status = http.StatusServiceUnavailable
	}
	return New(code, status, detail).WithCause(err)
}
