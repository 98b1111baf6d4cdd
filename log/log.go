package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger is an immutable structured logger. The zero value discards all
// messages.
type Logger struct {
	handler  slog.Handler
	settings settings
}

// Make creates a new [Logger] that writes to w. The defaults are
// [DefaultFormat], [DefaultLevel], [DefaultTimeLayout], and no caller info;
// opts override them.
func Make(w io.Writer, opts ...Option) Logger {
	s := makeSettings(w, opts...)

	return Logger{handler: s.handler(), settings: s}
}

// Discard returns a Logger that drops every message.
func Discard() Logger { return Logger{} }

// Wrap returns a new [Logger] based on the receiver's settings with opts
// applied. Attributes added with [Logger.With] are not carried over.
func (l Logger) Wrap(opts ...Option) Logger {
	s := l.settings
	if s.output == nil {
		s = makeSettings(nil)
	}

	s = apply(s, opts...)

	return Logger{handler: s.handler(), settings: s}
}

// With returns a new [Logger] that includes attrs in each log message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.handler == nil || len(attrs) == 0 {
		return l
	}

	return Logger{handler: l.handler.WithAttrs(attrs), settings: l.settings}
}

// Level returns the minimum level of messages written by the logger.
func (l Logger) Level() Level {
	if l.handler == nil {
		return DefaultLevel
	}

	return l.settings.level
}

// Format returns the output format of the logger.
func (l Logger) Format() Format {
	if l.handler == nil {
		return DefaultFormat
	}

	return l.settings.format
}

// Enabled reports whether a message at level would be written.
func (l Logger) Enabled(ctx context.Context, level Level) bool {
	return l.handler != nil && l.handler.Enabled(ctx, slog.Level(level))
}

// Slog returns a [slog.Logger] sharing the receiver's handler, for APIs that
// require one.
func (l Logger) Slog() *slog.Logger {
	if l.handler == nil {
		return slog.New(slog.DiscardHandler)
	}

	return slog.New(l.handler)
}

// TraceContext logs a message at Trace level with the provided context.
func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelTrace, msg, attrs)
}

// Trace logs a message at Trace level.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelTrace, msg, attrs)
}

// DebugContext logs a message at Debug level with the provided context.
func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelDebug, msg, attrs)
}

// Debug logs a message at Debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelDebug, msg, attrs)
}

// InfoContext logs a message at Info level with the provided context.
func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelInfo, msg, attrs)
}

// Info logs a message at Info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelInfo, msg, attrs)
}

// WarnContext logs a message at Warn level with the provided context.
func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelWarn, msg, attrs)
}

// Warn logs a message at Warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelWarn, msg, attrs)
}

// ErrorContext logs a message at Error level with the provided context.
func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelError, msg, attrs)
}

// Error logs a message at Error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelError, msg, attrs)
}

// log writes a record, attributing it to the caller of the exported method.
func (l Logger) log(ctx context.Context, level Level, msg string, attrs []slog.Attr) {
	l.logDepth(ctx, 1, level, msg, attrs)
}

// logDepth writes a record attributed to the function depth frames above
// logDepth's immediate caller.
func (l Logger) logDepth(
	ctx context.Context,
	depth int,
	level Level,
	msg string,
	attrs []slog.Attr,
) {
	if !l.Enabled(ctx, level) {
		return
	}

	var pcs [1]uintptr
	// 0=runtime.Callers, 1=logDepth, 2=caller of logDepth, +depth wrappers.
	runtime.Callers(3+depth, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = l.handler.Handle(ctx, r)
}
