package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
)

// Format selects how [Encode] renders a list of entries.
type Format int

const (
	FormatTable Format = iota // table
	FormatJSON                // json
	FormatYAML                // yaml
)

var formatNames = map[Format]string{
	FormatTable: "table",
	FormatJSON:  "json",
	FormatYAML:  "yaml",
}

// String returns the name of the format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}

	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// Formats returns an iterator over the names of all output formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range []Format{FormatTable, FormatJSON, FormatYAML} {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the format named s (case-insensitive).
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}

	return 0, fmt.Errorf("unknown format %q", s)
}

// Encode writes entries to w in the given format. Indent is the indentation
// width of JSON and YAML output; zero selects compact (JSON) or flow (YAML)
// style. The table format ignores indent.
func Encode(
	ctx context.Context,
	w io.Writer,
	entries []Entry,
	format Format,
	indent int,
) error {
	if entries == nil {
		entries = []Entry{}
	}

	switch format {
	case FormatTable:
		return encodeTable(w, entries)

	case FormatJSON:
		enc := json.NewEncoder(w)
		if indent > 0 {
			enc.SetIndent("", strings.Repeat(" ", indent))
		}

		return enc.Encode(entries)

	case FormatYAML:
		var opts []yaml.EncodeOption
		if indent > 0 {
			opts = append(opts, yaml.Indent(indent))
		} else {
			opts = append(opts, yaml.Flow(true))
		}

		data, err := yaml.MarshalContext(ctx, entries, opts...)
		if err != nil {
			return err
		}

		_, err = w.Write(data)

		return err

	default:
		return fmt.Errorf("unknown format %v", format)
	}
}

func encodeTable(w io.Writer, entries []Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "NAME\tPORT\tPROTOCOL\tALIASES"); err != nil {
		return err
	}

	for _, e := range entries {
		_, err := fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			e.Name, e.Port, e.Protocol, strings.Join(e.Aliases, " "))
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}
