package services

import "log/slog"

// Diagnostic describes one malformed entry line.
type Diagnostic struct {
	// Line is the 1-based line number in the source.
	Line int
	// Text is the content of the line.
	Text string
	// Err is the parse failure, an [*Error].
	Err error
}

// Kind returns the classification of the diagnostic's error.
func (d Diagnostic) Kind() Kind { return KindOf(d.Err) }

// Report summarizes a parse of a whole source.
type Report struct {
	// Source identifies the parsed source, e.g. its path.
	Source string
	// Lines is the number of lines read.
	Lines int
	// Skipped is the number of blank and comment lines.
	Skipped int
	// Entries is the number of entries parsed successfully.
	Entries int
	// Diagnostics lists the malformed lines in source order.
	Diagnostics []Diagnostic
}

// Malformed returns the number of malformed lines.
func (r *Report) Malformed() int { return len(r.Diagnostics) }

// OK reports whether every entry line was well-formed.
func (r *Report) OK() bool { return len(r.Diagnostics) == 0 }

// LogValue implements [slog.LogValuer].
func (r *Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("source", r.Source),
		slog.Int("lines", r.Lines),
		slog.Int("skipped", r.Skipped),
		slog.Int("entries", r.Entries),
		slog.Int("malformed", r.Malformed()),
	)
}

func (r *Report) reset(source string) {
	if r != nil {
		*r = Report{Source: source}
	}
}
