// Package apperrors provides unified error handling for the transcription
// service. It implements structured error types with error codes, HTTP status
// mapping, and retryable detection.
package apperrors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
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

// WithCause sets the underlying cause of the error and returns the receiver.
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

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// MissingField creates a new AppError for a missing required field. The
// message is the exact caller-visible validation text.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("%s is required", field),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"field": field},
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// DownloadFailed creates a new AppError for a failed audio fetch. The message
// carries the upstream HTTP status so it surfaces verbatim to the caller.
func DownloadFailed(status int, statusText string) *AppError {
	return &AppError{
		Code: ErrCodeDownloadFailed, Message: fmt.Sprintf("Failed to download audio: %d %s", status, statusText),
		HTTPStatus: http.StatusBadGateway, Retryable: true,
		Details: map[string]any{"status": status},
	}
}

// DownloadError creates a new AppError for a transport failure while
// fetching audio, where no upstream HTTP status exists.
func DownloadError(cause error) *AppError {
	return &AppError{
		Code: ErrCodeDownloadFailed, Message: fmt.Sprintf("Failed to download audio: %v", cause),
		HTTPStatus: http.StatusBadGateway, Retryable: true, Cause: cause,
	}
}

// TranscriptionFailed creates a new AppError for a speech-to-text failure.
func TranscriptionFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeTranscriptionFailed, Message: cause.Error(),
		HTTPStatus: http.StatusBadGateway, Retryable: true, Cause: cause,
	}
}

// SummarizationFailed creates a new AppError for a language-model failure
// during summarization.
func SummarizationFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeSummarizationFailed, Message: cause.Error(),
		HTTPStatus: http.StatusBadGateway, Retryable: true, Cause: cause,
	}
}

// AttributionFailed creates a new AppError for a language-model failure
// during speaker attribution.
func AttributionFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeAttributionFailed, Message: cause.Error(),
		HTTPStatus: http.StatusBadGateway, Retryable: true, Cause: cause,
	}
}

// Timeout creates a new AppError for a request that timed out.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The request took too long. Please try again.",
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
		Details: map[string]any{"operation": operation},
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again or contact support.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
