package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// FormatTime formats a log timestamp. An empty result omits the timestamp.
type FormatTime func(time.Time) string

// DefaultTimeLayout is the default used when no valid time layout is provided.
const DefaultTimeLayout = time.RFC3339

// DefaultCaller is the default setting for including caller information
// in log output.
const DefaultCaller = false

// DefaultPretty is the default setting for pretty printing log output.
const DefaultPretty = false

// settings holds the configuration of a Logger. It is copied by value and
// never mutated after a Logger is built from it.
type settings struct {
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

func makeSettings(w io.Writer, opts ...Option) settings {
	return apply(settings{}, append([]Option{WithDefaults(w)}, opts...)...)
}

// handlerOptions builds the slog options shared by every handler.
func (s settings) handlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource: s.caller,
		Level:     slog.Level(s.level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				if t, ok := a.Value.Any().(time.Time); ok {
					formatted := s.formatTime(t)
					if formatted == "" {
						return slog.Attr{}
					}

					a.Value = slog.StringValue(formatted)
				}

			case slog.LevelKey:
				if level, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(
						strings.ToUpper(Level(level).String()),
					)
				}
			}

			return a
		},
	}
}

// handler creates a slog.Handler for the settings.
func (s settings) handler() slog.Handler {
	opts := s.handlerOptions()

	switch {
	case s.format != FormatJSON && s.format != FormatText:
		return slog.DiscardHandler

	case s.pretty:
		return newPrettyHandler(s.output, opts, s.format, s.formatTime)

	case s.format == FormatJSON:
		return slog.NewJSONHandler(s.output, opts)

	default:
		return slog.NewTextHandler(s.output, opts)
	}
}

// WithDefaults returns a functional option that resets every setting to its
// default and writes to w. A nil writer discards output.
func WithDefaults(w io.Writer) Option {
	return func(settings) settings {
		if w == nil {
			w = io.Discard
		}

		return settings{
			output:     w,
			formatTime: makeFormatTimeFunc(DefaultTimeLayout),
			level:      DefaultLevel,
			format:     DefaultFormat,
			caller:     DefaultCaller,
			pretty:     DefaultPretty,
		}
	}
}

// WithOutput returns a functional option that sets the output writer.
// If a nil writer is provided, [io.Discard] is used instead.
func WithOutput(w io.Writer) Option {
	return func(s settings) settings {
		if w == nil {
			w = io.Discard
		}

		s.output = w

		return s
	}
}

// WithLevel returns a functional option that sets the minimum log level.
func WithLevel(level Level) Option {
	return func(s settings) settings {
		s.level = level

		return s
	}
}

// WithFormat returns a functional option that sets the output format.
func WithFormat(format Format) Option {
	return func(s settings) settings {
		s.format = format

		return s
	}
}

// WithTimeLayout returns a functional option that sets the layout used to
// format log timestamps.
//
// The layout may name one of the layouts of the [time] package, matched
// case-insensitively and ignoring punctuation ("RFC3339", "rfc-3339-nano",
// "kitchen", "ms", ...). Any other value is passed verbatim to
// [time.Time.Format]. A blank layout or "none" disables timestamps.
func WithTimeLayout(layout string) Option {
	return func(s settings) settings {
		s.formatTime = makeFormatTimeFunc(layout)

		return s
	}
}

// WithCaller returns a functional option that controls whether the source
// location of the log call is included.
func WithCaller(enable bool) Option {
	return func(s settings) settings {
		s.caller = enable

		return s
	}
}

// WithPretty returns a functional option that enables colorized output.
func WithPretty(enable bool) Option {
	return func(s settings) settings {
		s.pretty = enable

		return s
	}
}

var timeLayout = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rubydate":    time.RubyDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"rfc1123":     time.RFC1123,
	"rfc1123z":    time.RFC1123Z,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,

	"stamp": time.Stamp,
	"none":  "",

	"stampmilli": time.StampMilli,
	"milli":      time.StampMilli,
	"ms":         time.StampMilli,

	"stampmicro": time.StampMicro,
	"micro":      time.StampMicro,
	"us":         time.StampMicro,

	"stampnano": time.StampNano,
	"nano":      time.StampNano,
	"ns":        time.StampNano,
}

func makeFormatTimeFunc(layout string) FormatTime {
	// Normalized only for lookup; custom layouts are used verbatim.
	key := strings.Map(
		func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}

			return -1
		},
		strings.ToLower(layout),
	)

	if key == "" {
		return func(time.Time) string { return "" }
	}

	if std, ok := timeLayout[key]; ok {
		layout = std
	}

	if layout == "" {
		return func(time.Time) string { return "" }
	}

	return func(t time.Time) string { return t.Format(layout) }
}
