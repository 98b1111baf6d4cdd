package log

import (
	"testing"
	"time"
)

func TestMakeFormatTimeFunc(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 123456789, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2024-03-05T14:07:09Z"},
		{"rfc-3339-nano", "2024-03-05T14:07:09.123456789Z"},
		{"Kitchen", "2:07PM"},
		{"ms", "Mar  5 14:07:09.123"},
		{"none", ""},
		{"   ", ""},
		{"2006/01/02", "2024/03/05"},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := makeFormatTimeFunc(tt.layout)(ts); got != tt.want {
				t.Errorf("layout %q: got %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func TestWithDefaults_NilWriterDiscards(t *testing.T) {
	s := makeSettings(nil)
	if s.output == nil {
		t.Fatal("expected non-nil output for nil writer")
	}

	s = apply(s, WithOutput(nil))
	if s.output == nil {
		t.Fatal("WithOutput(nil) produced nil output")
	}
}

func TestOptions_ApplyInOrder(t *testing.T) {
	s := makeSettings(nil,
		WithLevel(LevelDebug),
		WithLevel(LevelError),
		WithCaller(true),
		WithPretty(true),
		nil,
	)

	if s.level != LevelError {
		t.Errorf("expected last level option to win, got %v", s.level)
	}
	if !s.caller || !s.pretty {
		t.Errorf("expected caller and pretty enabled: %+v", s)
	}
}
