package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/svcdb/log"
	"github.com/ardnew/svcdb/query"
	"github.com/ardnew/svcdb/services"
)

// formatFlag selects an output format by name.
type formatFlag string

func (f formatFlag) format() (services.Format, error) {
	return services.ParseFormat(string(f))
}

// List prints every entry of the database, optionally filtered.
type List struct {
	Filter string     `help:"Keep entries matching an expr-lang expression over name, port, protocol, aliases" placeholder:"EXPR" short:"f"`
	Format formatFlag `default:"table" enum:"table,json,yaml" help:"Output format"                                                            short:"o"`
	Indent int        `default:"2"                            help:"Indent width of JSON and YAML output (0 for compact)"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := l.Format.format()
	if err != nil {
		return ErrInvalidQuery.Wrap(err)
	}

	entries, err := sourceFrom(ctx).Load(ctx)
	if err != nil {
		return err
	}

	entries, err = query.Filter(entries, l.Filter)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "list",
		slog.String("filter", l.Filter),
		slog.String("format", format.String()),
		slog.Int("entries", len(entries)),
	)

	return services.Encode(ctx, stdout(ctx), entries, format, l.Indent)
}
