package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/svcdb/query"
	"github.com/ardnew/svcdb/services"
)

// Lookup prints the entries with a given name, alias, or port.
type Lookup struct {
	Key      string     `arg:""          help:"Service name, alias, or port number" name:"name|port"`
	Protocol string     `help:"Restrict results to a protocol" placeholder:"PROTO"  short:"p"`
	Format   formatFlag `default:"table" enum:"table,json,yaml"                     help:"Output format" short:"o"`
	Indent   int        `default:"2"     help:"Indent width of JSON and YAML output"`
}

// Run executes the lookup command. It fails with [ErrNotFound] when nothing
// matches.
func (l *Lookup) Run(ctx context.Context) (err error) {
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

	found := query.Lookup(entries, l.Key, l.Protocol)
	if len(found) == 0 {
		return ErrNotFound.With(
			slog.String("key", l.Key),
			slog.String("protocol", l.Protocol),
		)
	}

	return services.Encode(ctx, stdout(ctx), found, format, l.Indent)
}
