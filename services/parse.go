package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"
)

// DefaultPath is the well-known location of the services database.
const DefaultPath = "/etc/services"

// sourceReader identifies sources read with ParseReader in diagnostics.
const sourceReader = "reader"

// ParseDefault parses the services database at [DefaultPath].
// See [ParseFile].
func ParseDefault(ignoreErrors bool, opts ...Option) ([]Entry, error) {
	return ParseFile(DefaultPath, ignoreErrors, opts...)
}

// ParseFile parses the services database at path.
//
// The path must name an existing regular file (after following symbolic
// links), otherwise [ErrInvalidSource] is returned before anything is read.
// [ErrOpenFailed] is returned if the file cannot be opened, and
// [ErrReadFailed] if reading fails part way; read failures are fatal
// regardless of ignoreErrors.
//
// Blank lines and lines whose first non-whitespace character is '#' are
// skipped. Every other line is parsed with [ParseLine]. If ignoreErrors is
// true, malformed lines are dropped; otherwise the first malformed line
// aborts the parse with its error and no entries are returned.
//
// Some systems ship databases that do not entirely respect services(5), for
// example by omitting a service name; ignoreErrors allows them to be read.
func ParseFile(path string, ignoreErrors bool, opts ...Option) ([]Entry, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, ErrInvalidSource.Wrap(err).
			With(slog.String("path", path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrOpenFailed.Wrap(err).
			With(slog.String("path", path))
	}
	defer file.Close()

	return parse(file, path, ignoreErrors, makeOptions(opts...))
}

// ParseReader parses a services database read from r. It behaves like
// [ParseFile] without the file preconditions.
func ParseReader(r io.Reader, ignoreErrors bool, opts ...Option) ([]Entry, error) {
	return parse(r, sourceReader, ignoreErrors, makeOptions(opts...))
}

// entryText returns line without leading whitespace, and whether it holds an
// entry rather than being blank or a comment.
func entryText(line string) (string, bool) {
	text := strings.TrimLeftFunc(line, unicode.IsSpace)

	return text, text != "" && !isComment(text)
}

func parse(r io.Reader, source string, ignoreErrors bool, o options) ([]Entry, error) {
	ctx := context.Background()
	logger := o.logger.With(slog.String("source", source))
	report := o.report
	report.reset(source)

	entries := make([]Entry, 0)

	for line, err := range Lines(r) {
		if err != nil {
			return nil, ErrReadFailed.Wrap(err).With(
				slog.String("source", source),
				slog.Int("line", line.Number),
			)
		}

		if report != nil {
			report.Lines++
		}

		text, ok := entryText(line.Text)
		if !ok {
			if report != nil {
				report.Skipped++
			}

			continue
		}

		entry, err := ParseLine(text)
		if err != nil {
			err = annotate(err, source, line.Number)

			if report != nil {
				report.Diagnostics = append(report.Diagnostics, Diagnostic{
					Line: line.Number,
					Text: line.Text,
					Err:  err,
				})
			}

			if !ignoreErrors {
				return nil, err
			}

			logger.DebugContext(ctx, "dropped malformed line",
				slog.Int("line", line.Number),
				slog.Any("error", err),
			)

			continue
		}

		if report != nil {
			report.Entries++
		}

		entries = append(entries, entry)
	}

	logger.DebugContext(ctx, "parsed services database",
		slog.Int("entries", len(entries)),
	)

	return entries, nil
}

// annotate attaches the source location to a parse error.
func annotate(err error, source string, line int) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}

	return e.With(slog.String("source", source), slog.Int("line", line))
}
