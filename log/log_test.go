package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}
	if logger.settings.caller {
		t.Error("expected caller disabled by default")
	}
	if logger.Format() != FormatJSON {
		t.Errorf("expected default format json, got %v", logger.Format())
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelDebug))

	logger.Debug("debug message")
	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged after setting level to debug")
	}

	buf.Reset()
	logger = Make(&buf, WithLevel(LevelError))
	logger.Info("info message")
	if buf.Len() > 0 {
		t.Error("info message logged when level is error")
	}

	logger.Error("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at error level")
	}
}

func TestLogger_Trace_RequiresTraceLevel(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithLevel(LevelDebug)).Trace("hidden")
	if buf.Len() > 0 {
		t.Errorf("trace message logged at debug level: %s", buf.String())
	}

	Make(&buf, WithLevel(LevelTrace)).Trace("shown")
	if !strings.Contains(buf.String(), `"level":"TRACE"`) {
		t.Errorf("expected TRACE level in output, got: %s", buf.String())
	}
}

func TestLogger_WithFormat_SetsOutputFormat(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithFormat(FormatJSON)).Info("json message", slog.Int("n", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("json output did not decode: %v: %s", err, buf.String())
	}
	if record["msg"] != "json message" || record["n"] != float64(3) {
		t.Errorf("unexpected json record: %v", record)
	}

	buf.Reset()
	Make(&buf, WithFormat(FormatText), WithTimeLayout("none")).
		Info("text message", slog.String("k", "v"))

	if got, want := buf.String(), "level=INFO msg=\"text message\" k=v\n"; got != want {
		t.Errorf("text output = %q, want %q", got, want)
	}
}

func TestLogger_WithCaller_ReportsCallSite(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithFormat(FormatText)).Info("where")
	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller file in output, got: %s", buf.String())
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf).With(slog.String("component", "parser"))
	logger.Info("message")

	if !strings.Contains(buf.String(), `"component":"parser"`) {
		t.Errorf("expected attribute in output, got: %s", buf.String())
	}
}

func TestLogger_Wrap_KeepsSettings(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText)).Wrap(WithLevel(LevelWarn))
	if logger.Format() != FormatText {
		t.Errorf("Wrap lost format: got %v", logger.Format())
	}
	if logger.Level() != LevelWarn {
		t.Errorf("Wrap did not apply level: got %v", logger.Level())
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var logger Logger

	logger.Info("discarded")
	logger.With(slog.String("k", "v")).Error("discarded")

	if logger.Enabled(context.Background(), LevelError) {
		t.Error("zero logger reports enabled")
	}
	if Discard().Enabled(context.Background(), LevelError) {
		t.Error("Discard logger reports enabled")
	}
	if logger.Slog() == nil {
		t.Error("Slog returned nil for zero logger")
	}
}

func TestLogger_Pretty_Formats(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithPretty(true), WithFormat(FormatText)).
		Info("pretty", slog.Bool("ok", true))

	out := buf.String()
	if !strings.Contains(out, colorGreen+"true"+colorReset) {
		t.Errorf("expected colored boolean, got %q", out)
	}

	buf.Reset()
	Make(&buf, WithPretty(true), WithFormat(FormatJSON)).
		With(slog.String("src", "test")).
		Info("pretty", slog.Int("n", 7))

	out = buf.String()
	for _, want := range []string{"{\n", `"msg"`, `"src"`, "7", "}\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in pretty json output %q", want, out)
		}
	}
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithPretty(true))

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)

		go func(id int) {
			defer wg.Done()
			logger.With(slog.Int("id", id)).Info("concurrent")
		}(i)
	}

	wg.Wait()

	if got := strings.Count(buf.String(), "concurrent"); got != 10 {
		t.Errorf("expected 10 records, got %d", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"trace":   LevelTrace,
		"TRACE":   LevelTrace,
		"debug":   LevelDebug,
		"info":    LevelInfo,
		" warn ":  LevelWarn,
		"error":   LevelError,
		"bogus":   DefaultLevel,
		"":        DefaultLevel,
		"info+2":  Level(slog.LevelInfo + 2),
		"WARNING": DefaultLevel,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"json":  FormatJSON,
		"TEXT":  FormatText,
		" text": FormatText,
		"xml":   DefaultFormat,
	}

	for in, want := range tests {
		if got := ParseFormat(in); got != want {
			t.Errorf("ParseFormat(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelsAndFormats_Names(t *testing.T) {
	var levels []string
	for l := range Levels() {
		levels = append(levels, l)
	}

	if got := strings.Join(levels, ","); got != "trace,debug,info,warn,error" {
		t.Errorf("Levels() = %s", got)
	}

	var formats []string
	for f := range Formats() {
		formats = append(formats, f)
	}

	if got := strings.Join(formats, ","); got != "json,text" {
		t.Errorf("Formats() = %s", got)
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := Make(&bytes.Buffer{})

	b.ResetTimer()
	for b.Loop() {
		logger.Info("benchmark message", slog.Int("entries", 42))
	}
}
