package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeIngestion, "source %q: bad metadata", "prod.json")

	if err.Code != ErrCodeIngestion {
		t.Errorf("code = %s, want %s", err.Code, ErrCodeIngestion)
	}
	if want := `source "prod.json": bad metadata`; err.Message != want {
		t.Errorf("message = %q, want %q", err.Message, want)
	}
	if !strings.Contains(err.Error(), "INGESTION_FAILED") {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := fmt.Errorf("unexpected EOF")
	err := Wrap(ErrCodeInvalidDocument, cause, "decode upload")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "unexpected EOF") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"Match", New(ErrCodeStateTransition, "remove index 9"), ErrCodeStateTransition, true},
		{"Mismatch", New(ErrCodeStateTransition, "remove index 9"), ErrCodeIngestion, false},
		{"Wrapped", fmt.Errorf("handler: %w", New(ErrCodeNotFound, "node gone")), ErrCodeNotFound, true},
		{"Plain", fmt.Errorf("plain"), ErrCodeNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnknownType, "x")); got != ErrCodeUnknownType {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeUnknownType)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeSourceNotFound, "no source at index 3")
	if got := UserMessage(err); got != "no source at index 3" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(fmt.Errorf("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage = %q", got)
	}
}
