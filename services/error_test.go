package services

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestError_Is(t *testing.T) {
	derived := ErrMalformedPort.
		Wrap(errors.New("cause")).
		With(slog.String("name", "svc"))

	if !errors.Is(derived, ErrMalformedPort) {
		t.Error("derived error does not match its sentinel")
	}

	for _, sentinel := range []*Error{
		ErrInvalidSource, ErrOpenFailed, ErrReadFailed, ErrMalformedInput,
		ErrMissingPortProtocolField, ErrMissingProtocolField,
	} {
		if errors.Is(derived, sentinel) {
			t.Errorf("derived error matches %v", sentinel.Kind())
		}
	}

	wrapped := fmt.Errorf("context: %w", derived)
	if !errors.Is(wrapped, ErrMalformedPort) {
		t.Error("wrapped error does not match its sentinel")
	}

	if errors.Is(NewError(KindUnknown, "a"), NewError(KindUnknown, "b")) {
		t.Error("unknown kinds must not match each other")
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{ErrMalformedInput, "malformed input"},
		{ErrOpenFailed.Wrap(errors.New("denied")), "could not open file: denied"},
		{NewError(KindUnknown, "").Wrap(errors.New("bare")), "bare"},
		{NewError(KindUnknown, ""), ""},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestError_WithDoesNotAlias(t *testing.T) {
	base := ErrMalformedPort.With(slog.String("a", "1"))
	left := base.With(slog.String("b", "2"))
	right := base.With(slog.String("c", "3"))

	if got := len(base.Attrs()); got != 1 {
		t.Errorf("base attrs = %d, want 1", got)
	}

	if left.Attrs()[1].Key != "b" || right.Attrs()[1].Key != "c" {
		t.Errorf("derived attrs alias: %v / %v", left.Attrs(), right.Attrs())
	}

	if len(ErrMalformedPort.Attrs()) != 0 {
		t.Error("sentinel was modified")
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrMalformedPort.
		Wrap(errors.New("invalid syntax")).
		With(slog.String("port", "x"))

	got := map[string]string{}
	for _, a := range err.LogValue().Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"kind":  "malformed port",
		"error": "malformed port",
		"cause": "invalid syntax",
		"port":  "x",
	}

	for k, v := range want {
		if got[k] != v {
			t.Errorf("LogValue[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindUnknown},
		{errors.New("plain"), KindUnknown},
		{ErrReadFailed, KindReadFailed},
		{fmt.Errorf("x: %w", ErrMissingProtocolField.With()), KindMissingProtocolField},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestKind_String(t *testing.T) {
	want := map[Kind]string{
		KindUnknown:                  "unknown",
		KindInvalidSource:            "invalid source",
		KindOpenFailed:               "open failed",
		KindReadFailed:               "read failed",
		KindMalformedInput:           "malformed input",
		KindMissingPortProtocolField: "missing port/protocol field",
		KindMalformedPort:            "malformed port",
		KindMissingProtocolField:     "missing protocol field",
		Kind(42):                     "Kind(42)",
	}

	for k, s := range want {
		if got := k.String(); got != s {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, s)
		}
	}
}

func TestKind_IsFormat(t *testing.T) {
	format := 0

	for _, k := range Kinds() {
		if k.IsFormat() {
			format++
		}
	}

	if format != 4 {
		t.Errorf("format kinds = %d, want 4", format)
	}

	if KindReadFailed.IsFormat() || KindUnknown.IsFormat() {
		t.Error("I/O kinds classified as format")
	}
}
