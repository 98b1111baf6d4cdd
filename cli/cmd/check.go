package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/svcdb/log"
	"github.com/ardnew/svcdb/services"
)

// Check reports every malformed line of the databases.
type Check struct {
	Quiet bool `help:"Only set the exit status" short:"q"`
}

// Run executes the check command. Malformed lines are printed as
// "path:line: kind: text"; the command fails with [ErrMalformed] if there
// are any. I/O failures abort the check.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	w := stdout(ctx)
	malformed := 0

	for _, path := range sourceFrom(ctx).paths() {
		var report services.Report

		_, err := services.ParseFile(path, true,
			services.WithLogger(log.Default()),
			services.WithReport(&report),
		)
		if err != nil {
			return err
		}

		log.InfoContext(ctx, "checked services database", slog.Any("report", &report))

		malformed += report.Malformed()

		if c.Quiet {
			continue
		}

		for _, d := range report.Diagnostics {
			fmt.Fprintf(w, "%s:%d: %v: %s\n", path, d.Line, d.Kind(), d.Text)
		}
	}

	if malformed > 0 {
		return ErrMalformed.With(slog.Int("lines", malformed))
	}

	return nil
}
