package services

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values), one per [Kind]. Errors returned by
// this package match exactly one of them with [errors.Is].
var (
	ErrInvalidSource = NewError(
		KindInvalidSource, "file does not exist or is not a regular file",
	)
	ErrOpenFailed = NewError(
		KindOpenFailed, "could not open file",
	)
	ErrReadFailed = NewError(
		KindReadFailed, "error reading file",
	)
	ErrMalformedInput = NewError(
		KindMalformedInput, "malformed input",
	)
	ErrMissingPortProtocolField = NewError(
		KindMissingPortProtocolField, "could not find port and protocol field",
	)
	ErrMalformedPort = NewError(
		KindMalformedPort, "malformed port",
	)
	ErrMissingProtocolField = NewError(
		KindMissingProtocolField, "could not find protocol",
	)
)

// Error is a classified failure with optional structured logging attributes.
// It implements both error and [slog.LogValuer].
type Error struct {
	kind  Kind
	msg   string
	err   error       // wrapped cause
	attrs []slog.Attr // attributes for structured logging
}

// NewError creates a new Error of the given kind.
func NewError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Kind returns the classification of the error.
func (e *Error) Kind() Kind { return e.kind }

// Attrs returns a copy of the structured attributes attached to the error.
func (e *Error) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), e.attrs...)
}

// Error implements the error interface.
func (e *Error) Error() string {
	// "<msg>: <err>", "<msg>", "<err>", or "".
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for [errors.Is] and [errors.As].
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error of the same kind, so that derived
// errors still match the sentinel they were built from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.kind == e.kind && e.kind != KindUnknown
}

// LogValue implements [slog.LogValuer].
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	attrs = append(attrs, slog.String("kind", e.kind.String()))

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of the error wrapping cause.
func (e *Error) Wrap(cause error) *Error {
	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		err:   cause,
		attrs: e.attrs,
	}
}

// With returns a copy of the error with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	merged := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(merged, e.attrs)
	copy(merged[len(e.attrs):], attrs)

	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		err:   e.err,
		attrs: merged,
	}
}

// KindOf returns the [Kind] of the first *Error in err's chain, or
// [KindUnknown] if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}

	return KindUnknown
}
