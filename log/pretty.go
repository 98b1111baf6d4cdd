package log

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyHandler writes colorized records, either as key=value pairs on one
// line or as indented JSON objects.
type prettyHandler struct {
	opts       slog.HandlerOptions
	mu         *sync.Mutex
	w          io.Writer
	format     Format
	formatTime FormatTime
	attrs      []slog.Attr
	prefix     string
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	format Format,
	formatTime FormatTime,
) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		mu:         &sync.Mutex{},
		w:          w,
		format:     format,
		formatTime: formatTime,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], h.qualify(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

// qualify prefixes attribute keys with the currently open groups.
func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if h.prefix == "" {
		return attrs
	}

	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.prefix + a.Key, Value: a.Value}
	}

	return out
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() && h.formatTime != nil {
		if ts := h.formatTime(r.Time); ts != "" {
			fields = append(fields, slog.String(slog.TimeKey, ts))
		}
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			fields = append(fields, slog.String(
				slog.SourceKey, src.File+":"+strconv.Itoa(src.Line),
			))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	var recAttrs []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		recAttrs = append(recAttrs, a)

		return true
	})

	fields = append(fields, h.qualify(recAttrs)...)

	buf := new(bytes.Buffer)
	if h.format == FormatJSON {
		h.writeJSON(buf, fields)
	} else {
		h.writeText(buf, fields)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) writeText(buf *bytes.Buffer, fields []slog.Attr) {
	for i, a := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(colorGray)
		buf.WriteString(a.Key)
		buf.WriteString(colorReset)
		buf.WriteByte('=')
		writeColored(buf, a.Value, func(v slog.Value) string { return v.String() })
	}

	buf.WriteByte('\n')
}

func (h *prettyHandler) writeJSON(buf *bytes.Buffer, fields []slog.Attr) {
	buf.WriteString("{\n")

	for i, a := range fields {
		key, _ := json.Marshal(a.Key)

		buf.WriteString("  ")
		buf.WriteString(colorGray)
		buf.Write(key)
		buf.WriteString(colorReset)
		buf.WriteString(": ")
		writeColored(buf, a.Value, jsonValue)

		if i < len(fields)-1 {
			buf.WriteByte(',')
		}

		buf.WriteByte('\n')
	}

	buf.WriteString("}\n")
}

// jsonValue renders a resolved slog value as a JSON literal.
func jsonValue(v slog.Value) string {
	var x any

	switch v.Kind() {
	case slog.KindInt64:
		x = v.Int64()
	case slog.KindUint64:
		x = v.Uint64()
	case slog.KindFloat64:
		x = v.Float64()
	case slog.KindBool:
		x = v.Bool()
	case slog.KindGroup:
		m := make(map[string]any, len(v.Group()))
		for _, a := range v.Group() {
			m[a.Key] = a.Value.Resolve().Any()
		}

		x = m
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			x = err.Error()
		} else {
			x = v.Any()
		}
	default:
		x = v.String()
	}

	data, err := json.Marshal(x)
	if err != nil {
		return strconv.Quote(v.String())
	}

	return string(data)
}

// writeColored writes v using render, colored by its kind. Levels are
// colored by severity.
func writeColored(buf *bytes.Buffer, v slog.Value, render func(slog.Value) string) {
	v = v.Resolve()

	color := colorCyan

	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		color = colorYellow
	case slog.KindBool:
		color = colorRed
		if v.Bool() {
			color = colorGreen
		}
	case slog.KindDuration:
		color = colorMagenta
	case slog.KindTime:
		color = colorBlue
	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			color = levelColor(level)
			v = slog.StringValue(strings.ToUpper(Level(level).String()))
		}
	}

	buf.WriteString(color)
	buf.WriteString(render(v))
	buf.WriteString(colorReset)
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}
