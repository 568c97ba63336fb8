package apperrors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Pipeline errors
const (
	// ErrCodeDownloadFailed indicates the audio payload could not be fetched.
	ErrCodeDownloadFailed ErrorCode = "DOWNLOAD_FAILED"
	// ErrCodeTranscriptionFailed indicates the speech-to-text call failed.
	ErrCodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_FAILED"
	// ErrCodeSummarizationFailed indicates the summarization call failed.
	ErrCodeSummarizationFailed ErrorCode = "SUMMARIZATION_FAILED"
	// ErrCodeAttributionFailed indicates the speaker-attribution call failed.
	ErrCodeAttributionFailed ErrorCode = "ATTRIBUTION_FAILED"
)

// Internal errors
const (
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeDownloadFailed:      true,
	ErrCodeTranscriptionFailed: true,
	ErrCodeSummarizationFailed: true,
	ErrCodeAttributionFailed:   true,
	ErrCodeTimeout:             true,
	ErrCodeInternal:            false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
