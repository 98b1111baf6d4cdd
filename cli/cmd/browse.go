package cmd

import (
	"context"

	"github.com/ardnew/svcdb/cli/cmd/browse"
	"github.com/ardnew/svcdb/log"
	"github.com/ardnew/svcdb/services"
)

// Browse opens an interactive fuzzy finder and prints the chosen entry.
type Browse struct {
	Format formatFlag `default:"table" enum:"table,json,yaml" help:"Output format of the chosen entry" short:"o"`
	Indent int        `default:"2"     help:"Indent width of JSON and YAML output"`
}

// Run executes the browse command.
func (b *Browse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := b.Format.format()
	if err != nil {
		return ErrInvalidQuery.Wrap(err)
	}

	entries, err := sourceFrom(ctx).Load(ctx)
	if err != nil {
		return err
	}

	chosen, ok, err := browse.Run(ctx, entries, kongVar(ctx, CacheIdentifier), log.Default())
	if err != nil || !ok {
		return err
	}

	return services.Encode(ctx, stdout(ctx), []services.Entry{chosen}, format, b.Indent)
}
