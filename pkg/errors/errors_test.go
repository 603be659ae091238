package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	e := New(ErrInvalidHex, "invalid hex")
	if e.Code != ErrInvalidHex || e.Message != "invalid hex" {
		t.Fatalf("unexpected Error fields: %+v", e)
	}
	if e.Suggestion == "" {
		t.Error("expected default suggestion")
	}
	if len(e.Stack) == 0 {
		t.Error("expected stack frames captured")
	}
	if e.Error() != "invalid hex" {
		t.Errorf("Error() = %q, want message only", e.Error())
	}

	// Wrap a std error
	base := stdErrors.New("boom")
	w := Wrap(base, ErrUnknown, "Something happened")
	if w.Cause == nil || !strings.Contains(w.Error(), "boom") {
		t.Error("wrapped error should include cause")
	}
	if strings.Contains(w.Error(), "\n") {
		t.Errorf("Error() should be a single line, got %q", w.Error())
	}
	if !stdErrors.Is(w, base) {
		t.Error("wrapped error should unwrap to its cause")
	}
}

func TestWrapKeepsCode(t *testing.T) {
	inner := New(ErrInvalidLength, "key must be 16 bytes")
	w := Wrap(fmt.Errorf("aes: %w", inner), ErrUnknown, "encrypt")
	if w.Code != ErrInvalidLength {
		t.Errorf("Wrap code = %s, want %s", w.Code, ErrInvalidLength)
	}
	if !strings.HasPrefix(w.Message, "encrypt: ") {
		t.Errorf("Wrap message = %q", w.Message)
	}
	if Wrap(nil, ErrUnknown, "x") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestCodeOfAndContext(t *testing.T) {
	e := Newf(ErrUnsupported, "unsupported algorithm %q", "md4").WithContext("flag", "algo")
	if e.Context["flag"] != "algo" {
		t.Error("context key not set")
	}
	if got := CodeOf(fmt.Errorf("wrapped: %w", e)); got != ErrUnsupported {
		t.Errorf("CodeOf = %s, want %s", got, ErrUnsupported)
	}
	if got := CodeOf(stdErrors.New("plain")); got != ErrUnknown {
		t.Errorf("CodeOf(plain) = %s, want %s", got, ErrUnknown)
	}
	if _, ok := As(stdErrors.New("plain")); ok {
		t.Error("As should not match a plain error")
	}
	if !strings.Contains(e.Message, `"md4"`) {
		t.Errorf("Newf message = %q", e.Message)
	}
}
