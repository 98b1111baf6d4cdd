package services

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/ardnew/svcdb/log"
)

const wellKnown = `# WELL KNOWN PORT NUMBERS
#
rtmp              1/ddp    #Routing Table Maintenance Protocol
tcpmux            1/udp     # TCP Port Service Multiplexer
tcpmux            1/tcp     # TCP Port Service Multiplexer
#                          Mark Lottor <MKL@nisc.sri.com>
nbp               2/ddp    #Name Binding Protocol
compressnet       2/udp     # Management Utility
compressnet       2/tcp     # Management Utility
compressnet       3/udp     # Compression Process
compressnet       3/tcp     # Compression Process
`

func entry(name string, port uint, protocol string, aliases ...string) Entry {
	if aliases == nil {
		aliases = []string{}
	}

	return Entry{Name: name, Port: port, Protocol: protocol, Aliases: aliases}
}

var wellKnownEntries = []Entry{
	entry("rtmp", 1, "ddp"),
	entry("tcpmux", 1, "udp"),
	entry("tcpmux", 1, "tcp"),
	entry("nbp", 2, "ddp"),
	entry("compressnet", 2, "udp"),
	entry("compressnet", 2, "tcp"),
	entry("compressnet", 3, "udp"),
	entry("compressnet", 3, "tcp"),
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "services")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	return path
}

func equalEntries(a, b []Entry) bool {
	return slices.EqualFunc(a, b, Entry.Equal)
}

func TestParseFile(t *testing.T) {
	path := writeFile(t, wellKnown)

	for _, ignore := range []bool{false, true} {
		got, err := ParseFile(path, ignore)
		if err != nil {
			t.Fatalf("ParseFile(ignore=%v) error: %v", ignore, err)
		}

		if !equalEntries(got, wellKnownEntries) {
			t.Errorf("ParseFile(ignore=%v) =\n%+v\nwant\n%+v", ignore, got, wellKnownEntries)
		}
	}
}

func TestParseFile_Idempotent(t *testing.T) {
	path := writeFile(t, wellKnown)

	first, err := ParseFile(path, false)
	if err != nil {
		t.Fatal(err)
	}

	second, err := ParseFile(path, false)
	if err != nil {
		t.Fatal(err)
	}

	if !equalEntries(first, second) {
		t.Error("repeated parses differ")
	}
}

func TestParseFile_Symlink(t *testing.T) {
	target := writeFile(t, "echo 7/tcp\n")
	link := filepath.Join(t.TempDir(), "link")

	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got, err := ParseFile(link, false)
	if err != nil {
		t.Fatalf("ParseFile(symlink) error: %v", err)
	}

	if !equalEntries(got, []Entry{entry("echo", 7, "tcp")}) {
		t.Errorf("got %+v", got)
	}
}

func TestParseFile_InvalidSource(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
		},
		{
			name: "directory",
			path: func(t *testing.T) string { return t.TempDir() },
		},
		{
			name: "empty path",
			path: func(*testing.T) string { return "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, ignore := range []bool{false, true} {
				got, err := ParseFile(tt.path(t), ignore)
				if !errors.Is(err, ErrInvalidSource) {
					t.Errorf("ParseFile(ignore=%v) error = %v, want %v",
						ignore, err, ErrInvalidSource)
				}

				if got != nil {
					t.Errorf("ParseFile(ignore=%v) returned entries %+v", ignore, got)
				}
			}
		})
	}
}

func TestParseDefault(t *testing.T) {
	_, statErr := os.Stat(DefaultPath)

	for _, ignore := range []bool{false, true} {
		got, err := ParseDefault(ignore)

		if statErr != nil {
			if !errors.Is(err, ErrInvalidSource) {
				t.Errorf("ParseDefault(%v) error = %v, want %v", ignore, err, ErrInvalidSource)
			}

			continue
		}

		want, wantErr := ParseFile(DefaultPath, ignore)
		if KindOf(err) != KindOf(wantErr) {
			t.Errorf("ParseDefault(%v) error = %v, want %v", ignore, err, wantErr)
		}

		if !equalEntries(got, want) {
			t.Errorf("ParseDefault(%v) returned %d entries, want %d", ignore, len(got), len(want))
		}
	}
}

func TestParseFile_OpenFailed(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	path := writeFile(t, wellKnown)
	if err := os.Chmod(path, 0); err != nil {
		t.Fatal(err)
	}

	_, err := ParseFile(path, true)
	if !errors.Is(err, ErrOpenFailed) {
		t.Errorf("error = %v, want %v", err, ErrOpenFailed)
	}
}

func TestParseReader_EmptyAndComments(t *testing.T) {
	for _, input := range []string{
		"",
		"\n\n\n",
		"# only comments\n   # indented comment\n\t\n",
		"#",
	} {
		got, err := ParseReader(strings.NewReader(input), false)
		if err != nil {
			t.Errorf("ParseReader(%q) error: %v", input, err)
		}

		if got == nil || len(got) != 0 {
			t.Errorf("ParseReader(%q) = %#v, want empty non-nil", input, got)
		}
	}
}

func TestParseReader_AbortOnFirstError(t *testing.T) {
	const input = "echo 7/tcp\nbroken\nsvc x/tcp\n"

	var report Report

	got, err := ParseReader(strings.NewReader(input), false, WithReport(&report))
	if got != nil {
		t.Errorf("expected no entries, got %+v", got)
	}

	if !errors.Is(err, ErrMissingPortProtocolField) {
		t.Fatalf("error = %v, want %v", err, ErrMissingPortProtocolField)
	}

	if errors.Is(err, ErrMalformedPort) {
		t.Error("error must describe the first malformed line only")
	}

	if report.Malformed() != 1 || report.Diagnostics[0].Line != 2 {
		t.Errorf("unexpected diagnostics %+v", report.Diagnostics)
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}

	var line int64
	for _, a := range e.Attrs() {
		if a.Key == "line" {
			line = a.Value.Int64()
		}
	}

	if line != 2 {
		t.Errorf("line attribute = %d, want 2", line)
	}
}

func TestParseReader_IgnoreErrors(t *testing.T) {
	const input = "" +
		"echo 7/tcp\n" +
		"broken\n" +
		"svc x/tcp\n" +
		"svc 80/\n" +
		"discard 9/udp sink null\n"

	var report Report

	got, err := ParseReader(strings.NewReader(input), true,
		WithReport(&report),
		WithLogger(log.Discard()),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Entry{
		entry("echo", 7, "tcp"),
		entry("discard", 9, "udp", "sink", "null"),
	}
	if !equalEntries(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if report.Lines != 5 || report.Entries != 2 || report.Skipped != 0 {
		t.Errorf("unexpected report %+v", report)
	}

	kinds := make([]Kind, 0, report.Malformed())
	for _, d := range report.Diagnostics {
		kinds = append(kinds, d.Kind())
	}

	wantKinds := []Kind{
		KindMissingPortProtocolField,
		KindMalformedPort,
		KindMissingProtocolField,
	}
	if !slices.Equal(kinds, wantKinds) {
		t.Errorf("diagnostic kinds = %v, want %v", kinds, wantKinds)
	}

	if report.OK() {
		t.Error("report.OK() = true with diagnostics")
	}
}

func TestParseReader_AllMalformedIgnored(t *testing.T) {
	got, err := ParseReader(strings.NewReader("a\nb\nc\n"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty non-nil", got)
	}
}

func TestParseReader_LineEndings(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated", "echo 7/tcp\ndiscard 9/udp sink"},
		{"crlf", "echo 7/tcp\r\ndiscard 9/udp sink\r\n"},
		{"mixed", "echo 7/tcp\ndiscard 9/udp sink\r\n"},
	}

	want := []Entry{entry("echo", 7, "tcp"), entry("discard", 9, "udp", "sink")}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReader(strings.NewReader(tt.input), false)
			if err != nil {
				t.Fatal(err)
			}

			if !equalEntries(got, want) {
				t.Errorf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestParseReader_ReadFailed(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name   string
		reader func() io.Reader
	}{
		{
			name: "io error",
			reader: func() io.Reader {
				return io.MultiReader(
					strings.NewReader("echo 7/tcp\n"),
					iotest.ErrReader(boom),
				)
			},
		},
		{
			name: "invalid utf-8",
			reader: func() io.Reader {
				return bytes.NewReader([]byte("echo 7/tcp\nbad\xff 9/udp\n"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, ignore := range []bool{false, true} {
				got, err := ParseReader(tt.reader(), ignore)
				if !errors.Is(err, ErrReadFailed) {
					t.Errorf("ignore=%v: error = %v, want %v", ignore, err, ErrReadFailed)
				}

				if got != nil {
					t.Errorf("ignore=%v: returned entries %+v", ignore, got)
				}
			}
		})
	}

	_, err := ParseReader(tests[0].reader(), true)
	if !errors.Is(err, boom) {
		t.Errorf("error %v does not wrap the read failure", err)
	}
}

func TestParseReader_Report(t *testing.T) {
	var report Report

	_, err := ParseReader(strings.NewReader(wellKnown), false, WithReport(&report))
	if err != nil {
		t.Fatal(err)
	}

	want := Report{Source: "reader", Lines: 11, Skipped: 3, Entries: 8}
	if report.Source != want.Source || report.Lines != want.Lines ||
		report.Skipped != want.Skipped || report.Entries != want.Entries ||
		!report.OK() {
		t.Errorf("report = %+v, want %+v", report, want)
	}

	// Reports are reset by each parse.
	path := writeFile(t, "broken\n")

	_, _ = ParseFile(path, true, WithReport(&report))
	if report.Source != path || report.Lines != 1 || report.Malformed() != 1 {
		t.Errorf("report after second parse = %+v", report)
	}
}

func TestLines(t *testing.T) {
	input := "one\r\n\ntwo\nthree"

	var got []Line
	for line, err := range Lines(strings.NewReader(input)) {
		if err != nil {
			t.Fatal(err)
		}

		got = append(got, line)
	}

	want := []Line{{1, "one"}, {2, ""}, {3, "two"}, {4, "three"}}
	if !slices.Equal(got, want) {
		t.Errorf("Lines = %+v, want %+v", got, want)
	}
}

func TestLines_Break(t *testing.T) {
	n := 0
	for range Lines(strings.NewReader("a\nb\nc\n")) {
		n++
		if n == 2 {
			break
		}
	}

	if n != 2 {
		t.Errorf("iterated %d lines, want 2", n)
	}
}

func BenchmarkParseReader(b *testing.B) {
	content := strings.Repeat(wellKnown, 64)

	for b.Loop() {
		if _, err := ParseReader(strings.NewReader(content), false); err != nil {
			b.Fatal(err)
		}
	}
}
