package apperrors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMissingField(t *testing.T) {
	err := MissingField("audioUrl")
	if err.Message != "audioUrl is required" {
		t.Errorf("Message = %q, want %q", err.Message, "audioUrl is required")
	}
	if err.HTTPStatus != 400 {
		t.Errorf("HTTPStatus = %d, want 400", err.HTTPStatus)
	}
	if !IsValidation(err) {
		t.Error("MissingField should be a validation error")
	}
	if err.Retryable {
		t.Error("MissingField should not be retryable")
	}
}

func TestDownloadFailed(t *testing.T) {
	err := DownloadFailed(404, "Not Found")
	if want := "Failed to download audio: 404 Not Found"; err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
	if !err.Retryable {
		t.Error("DownloadFailed should be retryable")
	}
	if IsValidation(err) {
		t.Error("DownloadFailed should not be a validation error")
	}
}

func TestTranscriptionFailedCarriesCauseText(t *testing.T) {
	cause := errors.New("transcription error (status 401): bad key")
	err := TranscriptionFailed(cause)
	if err.Message != cause.Error() {
		t.Errorf("Message = %q, want the cause text", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestAsAppErrorThroughWrapping(t *testing.T) {
	inner := Validation("something is off")
	wrapped := fmt.Errorf("pipeline: %w", inner)

	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("AsAppError failed on wrapped error")
	}
	if appErr != inner {
		t.Error("AsAppError returned a different instance")
	}
	if !IsAppError(wrapped) {
		t.Error("IsAppError failed on wrapped error")
	}
	if _, ok := AsAppError(errors.New("plain")); ok {
		t.Error("AsAppError matched a plain error")
	}
}

func TestErrorString(t *testing.T) {
	err := New(ErrCodeInternal, "boom", 500).WithCause(errors.New("root"))
	s := err.Error()
	if !strings.Contains(s, "boom") || !strings.Contains(s, "root") {
		t.Errorf("Error() = %q, want message and cause", s)
	}
}

func TestWithDetail(t *testing.T) {
	err := Validation("bad input").WithDetail("field", "audioUrl")
	if err.Details["field"] != "audioUrl" {
		t.Errorf("Details = %v", err.Details)
	}
}

func TestRetryableCodes(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{ErrCodeDownloadFailed, true},
		{ErrCodeTranscriptionFailed, true},
		{ErrCodeTimeout, true},
		{ErrCodeMissingField, false},
		{ErrCodeInvalidInput, false},
		{ErrCodeInternal, false},
	}
	for _, tt := range tests {
		if got := IsRetryableCode(tt.code); got != tt.want {
			t.Errorf("IsRetryableCode(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
