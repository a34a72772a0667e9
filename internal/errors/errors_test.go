package apperrors

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errOverflow = errors.New("bigint: mul: overflow")

func TestConfigError(t *testing.T) {
	t.Parallel()
	err := NewConfigError("invalid capacity %d for flag %s", 1, "--capacity")
	if err.Error() != "invalid capacity 1 for flag --capacity" {
		t.Errorf("unexpected message %q", err.Error())
	}
	var configErr ConfigError
	if !errors.As(err, &configErr) {
		t.Error("expected error to be ConfigError type")
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         CalculationError
		expectedMsg string
		checkIs     error
	}{
		{
			name:        "message without operation",
			err:         CalculationError{Cause: errOverflow},
			expectedMsg: "bigint: mul: overflow",
			checkIs:     errOverflow,
		},
		{
			name:        "message with operation",
			err:         CalculationError{Operation: "modinv", Cause: errors.New("no modular inverse")},
			expectedMsg: "modinv: no modular inverse",
		},
		{
			name:        "errors.Is reaches context errors",
			err:         CalculationError{Operation: "modpow", Cause: context.Canceled},
			expectedMsg: "modpow: context canceled",
			checkIs:     context.Canceled,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, tt.err.Error())
			}
			if tt.err.Unwrap() != tt.err.Cause {
				t.Error("Unwrap should return the original cause")
			}
			if tt.checkIs != nil && !errors.Is(tt.err, tt.checkIs) {
				t.Errorf("errors.Is should find %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestTimeoutAndValidationErrors(t *testing.T) {
	t.Parallel()
	timeout := TimeoutError{Operation: "batch", Limit: 30 * time.Second}
	if timeout.Error() != `operation "batch" timed out after 30s` {
		t.Errorf("unexpected message %q", timeout.Error())
	}

	cause := errors.New("bigint: parse: invalid digit")
	validation := ValidationError{Field: "operand 2", Message: "not a base-10 integer", Cause: cause}
	if validation.Error() != `validation error for "operand 2": not a base-10 integer` {
		t.Errorf("unexpected message %q", validation.Error())
	}
	if !errors.Is(WrapError(validation, "line %d", 4), cause) {
		t.Error("errors.Is should reach the validation cause through WrapError")
	}
	var target ValidationError
	if !errors.As(WrapError(validation, "line %d", 4), &target) || target.Field != "operand 2" {
		t.Error("errors.As should find ValidationError through WrapError")
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil, ...) should return nil")
	}
	wrapped := WrapError(context.DeadlineExceeded, "task %s on line %d", "modpow", 7)
	if wrapped.Error() != "task modpow on line 7: context deadline exceeded" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
	if !IsContextError(wrapped) {
		t.Error("wrapped deadline should be a context error")
	}
	if IsContextError(errOverflow) || IsContextError(nil) {
		t.Error("plain errors are not context errors")
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"timeout type", TimeoutError{Operation: "run", Limit: time.Second}, ExitErrorTimeout},
		{"deadline", WrapError(context.DeadlineExceeded, "batch"), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"config", NewConfigError("bad radix"), ExitErrorConfig},
		{"validation", ValidationError{Field: "op", Message: "unknown"}, ExitErrorConfig},
		{"arithmetic", WrapError(CalculationError{Operation: "mul", Cause: errOverflow}, "line 2"), ExitErrorArithmetic},
		{"generic", errors.New("disk full"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodesDistinct(t *testing.T) {
	t.Parallel()
	codes := []int{ExitSuccess, ExitErrorGeneric, ExitErrorTimeout, ExitErrorArithmetic, ExitErrorConfig, ExitErrorCanceled}
	seen := make(map[int]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}
}
