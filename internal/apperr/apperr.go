// Package apperr provides the unified error type for the voicenote service.
// Every failure a handler can produce is classified with a machine-readable
// code and an HTTP status, so the HTTP surface never has to guess and never
// leaks internal detail to the caller.
package apperr

import (
	"fmt"
	"net/http"
)

// ErrorCode is a machine-readable error code.
type ErrorCode string

const (
	// ErrCodeInvalidInput indicates malformed or missing request input.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeUnprocessableAudio indicates an upload that could not be
	// decoded or re-encoded into the provider's accepted format.
	ErrCodeUnprocessableAudio ErrorCode = "UNPROCESSABLE_AUDIO"
	// ErrCodeUnauthorized indicates missing or incorrect credentials.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeRateLimited indicates the caller exceeded a request budget.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeUpstream indicates a failure of the external model provider,
	// including timeouts.
	ErrCodeUpstream ErrorCode = "UPSTREAM_ERROR"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// AppError is the application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message, safe to show to callers.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error. Never serialized to callers.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// --- Constructors ---

// Validation creates an AppError for malformed or missing input.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingField creates an AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field},
	}
}

// UnprocessableAudio creates an AppError for an upload that could not be
// decoded and re-encoded.
func UnprocessableAudio(cause error) *AppError {
	return &AppError{
		Code: ErrCodeUnprocessableAudio, Message: "The audio file could not be decoded. Please upload a valid audio file.",
		HTTPStatus: http.StatusBadRequest, Cause: cause,
	}
}

// Unauthorized creates an AppError for missing or incorrect credentials.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// RateLimited creates an AppError for an exceeded request budget. The reason
// names the budget that was hit, e.g. "10 per minute".
func RateLimited(reason string) *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: fmt.Sprintf("Rate limit exceeded: %s", reason),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// Upstream creates an AppError for a failure of the external provider.
func Upstream(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeUpstream, Message: fmt.Sprintf("The %s service encountered an error. Please try again.", operation),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"operation": operation},
		Cause:      cause,
	}
}

// Internal creates an AppError for an unexpected failure. The cause is kept
// for logging but never reaches the caller.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "Internal server error",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
