package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ardnew/svcdb/query"
)

// Search prints the entries whose names fuzzy-match a pattern, best first.
type Search struct {
	Pattern string `arg:""         help:"Fuzzy pattern matched against names and aliases"`
	Limit   int    `default:"10"   help:"Maximum number of results (0 for all)"            short:"n"`
}

// Run executes the search command.
func (s *Search) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	entries, err := sourceFrom(ctx).Load(ctx)
	if err != nil {
		return err
	}

	matches := query.Search(entries, s.Pattern)
	if s.Limit > 0 && len(matches) > s.Limit {
		matches = matches[:s.Limit]
	}

	tw := tabwriter.NewWriter(stdout(ctx), 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "SCORE\tMATCH\tNAME\tPORT\tPROTOCOL\tALIASES")

	for _, m := range matches {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			m.Score, m.Name, m.Entry.Name, m.Entry.Port, m.Entry.Protocol,
			strings.Join(m.Entry.Aliases, " "))
	}

	return tw.Flush()
}
