package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeInvalidArgument, "step size must be positive, got %g", -1.0), "INVALID_ARGUMENT: step size must be positive, got -1"},
		{Wrap(ErrCodeFileNotFound, errors.New("no such file"), "open %s", "floor.json"), "FILE_NOT_FOUND: open floor.json: no such file"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWrapChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("placing: %w", Wrap(ErrCodeNetwork, cause, "cache get"))

	if !errors.Is(err, cause) {
		t.Error("cause lost through Wrap")
	}
	if !errors.Is(err, &Error{Code: ErrCodeNetwork}) {
		t.Error("errors.Is does not match by code")
	}
	if errors.Is(err, &Error{Code: ErrCodeInternal}) {
		t.Error("errors.Is matched a different code")
	}
	if got := UserMessage(err); got != "cache get" {
		t.Errorf("UserMessage = %q, want %q", got, "cache get")
	}
}

func TestOutermostCodeWins(t *testing.T) {
	inner := New(ErrCodeInvalidInput, "bad coordinate")
	err := Wrap(ErrCodeDegenerateGeometry, inner, "resolve")

	if got := GetCode(err); got != ErrCodeDegenerateGeometry {
		t.Errorf("GetCode = %s, want DEGENERATE_GEOMETRY", got)
	}
	if Is(err, ErrCodeInvalidInput) {
		t.Error("Is matched the inner code")
	}
	if IsInvalid(err) {
		t.Error("IsInvalid looked past the outer code")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"argument", New(ErrCodeInvalidArgument, "x"), KindInvalid},
		{"region", New(ErrCodeInvalidRegion, "x"), KindInvalid},
		{"config", New(ErrCodeInvalidConfig, "x"), KindInvalid},
		{"family", New(ErrCodeFamilyNotFound, "x"), KindNotFound},
		{"file", New(ErrCodeFileNotFound, "x"), KindNotFound},
		{"degenerate", New(ErrCodeDegenerateGeometry, "x"), KindGeometry},
		{"network", New(ErrCodeNetwork, "x"), KindNetwork},
		{"internal", New(ErrCodeInternal, "x"), KindInternal},
		{"unregistered", New("SOMETHING_ELSE", "x"), KindUnknown},
		{"plain", errors.New("plain"), KindUnknown},
		{"nil", nil, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	if !IsInvalid(Wrap(ErrCodeInvalidInput, errors.New("eof"), "decode")) {
		t.Error("IsInvalid(INVALID_INPUT) = false")
	}
	if IsInvalid(New(ErrCodeSymbolNotFound, "no symbols")) || IsInvalid(nil) {
		t.Error("predicate matched the wrong kind")
	}
	if Is(nil, ErrCodeInternal) || GetCode(errors.New("plain")) != "" {
		t.Error("uncoded errors should carry no code")
	}
}

func TestUserMessagePlain(t *testing.T) {
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage = %q", got)
	}
}
