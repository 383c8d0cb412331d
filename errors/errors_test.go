package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New(t *testing.T) {
	err := New(ErrCodeNotFound, "not found")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.Error() != "NOT_FOUND: not found" {
		t.Errorf("unexpected error string %q", err.Error())
	}
}

func TestAppError_Newf(t *testing.T) {
	err := Newf(ErrCodeDuplicateID, "descriptor %q already registered", "address")
	if !strings.Contains(err.Message, `"address"`) {
		t.Errorf("expected formatted message, got %q", err.Message)
	}
}

func TestAppError_ErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := New(ErrCodeInstantiationFailed, "factory failed").WithCause(cause)
	if !strings.Contains(err.Error(), "cause: boom") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
	if stderrors.Unwrap(err) != cause {
		t.Error("expected Unwrap to return cause")
	}
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	sentinel := New(ErrCodeCircularDependency, "circular dependency")
	err := Newf(ErrCodeCircularDependency, "cycle a -> b -> a")

	if !stderrors.Is(err, sentinel) {
		t.Error("expected errors.Is to match errors with the same code")
	}
	if stderrors.Is(err, New(ErrCodeAmbiguousMatch, "x")) {
		t.Error("expected errors.Is to reject a different code")
	}

	wrapped := fmt.Errorf("startup: %w", err)
	if !stderrors.Is(wrapped, sentinel) {
		t.Error("expected errors.Is to see through fmt wrapping")
	}
}

func TestAppError_IsNonAppTarget(t *testing.T) {
	err := New(ErrCodeInternal, "x")
	if err.Is(fmt.Errorf("plain")) {
		t.Error("expected Is to be false for non-AppError target")
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := New(ErrCodeAmbiguousMatch, "ambiguous").
		WithDetail("type", "Address").
		WithDetails(map[string]any{"candidates": []string{"a", "b"}})

	if err.Details["type"] != "Address" {
		t.Errorf("expected type detail, got %v", err.Details["type"])
	}
	if _, ok := err.Details["candidates"]; !ok {
		t.Error("expected candidates detail")
	}
}

func TestCodeOfAndDetailOf(t *testing.T) {
	err := fmt.Errorf("wrap: %w", New(ErrCodeCircularDependency, "c").WithDetail("path", []string{"a", "b", "a"}))

	if CodeOf(err) != ErrCodeCircularDependency {
		t.Errorf("expected CIRCULAR_DEPENDENCY, got %s", CodeOf(err))
	}
	path, ok := DetailOf(err, "path").([]string)
	if !ok || len(path) != 3 {
		t.Errorf("expected path detail, got %v", DetailOf(err, "path"))
	}
	if CodeOf(fmt.Errorf("plain")) != "" {
		t.Error("expected empty code for plain error")
	}
	if DetailOf(fmt.Errorf("plain"), "path") != nil {
		t.Error("expected nil detail for plain error")
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("descriptor", "shapeRunner")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if err.Details["id"] != "shapeRunner" {
		t.Errorf("expected id detail, got %v", err.Details["id"])
	}

	empty := NotFound("descriptor", "")
	if _, ok := empty.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
}

func TestInvalidInputAndValidation(t *testing.T) {
	err := InvalidInput("id", "must not be empty")
	if err.Code != ErrCodeInvalidInput || err.Details["field"] != "id" {
		t.Errorf("unexpected error %+v", err)
	}
	if Validation("bad").Code != ErrCodeInvalidInput {
		t.Error("expected INVALID_INPUT for Validation")
	}
}

func TestInternal(t *testing.T) {
	cause := fmt.Errorf("lost")
	err := Internal(cause)
	if err.Code != ErrCodeInternal || err.Cause != cause {
		t.Errorf("unexpected error %+v", err)
	}
}

func TestIsConfigurationCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{ErrCodeCircularDependency, true},
		{ErrCodeAmbiguousMatch, true},
		{ErrCodeUnsatisfiedDependency, true},
		{ErrCodeInstantiationFailed, false},
		{ErrCodeContainerClosed, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			if got := IsConfigurationCode(tc.code); got != tc.want {
				t.Errorf("IsConfigurationCode(%s) = %v, want %v", tc.code, got, tc.want)
			}
		})
	}
}

func TestFormatPath(t *testing.T) {
	if got := FormatPath([]string{"a", "b", "a"}); got != "a -> b -> a" {
		t.Errorf("unexpected path %q", got)
	}
}
