package cli

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ardnew/svcdb/cli/cmd"
	"github.com/ardnew/svcdb/log"
	"github.com/ardnew/svcdb/pkg"
)

// CLI is the top-level command-line interface for svcdb.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Database     []string `help:"Services database file(s); default: first regular file of ${pathEnvar}, else ${defaultDatabase}" placeholder:"PATH" short:"d" type:"path"`
	IgnoreErrors bool     `default:"true" help:"Drop malformed lines instead of failing"                                                 negatable:"" short:"i"`

	List   cmd.List   `cmd:"" default:"1" help:"List services (default)"`
	Lookup cmd.Lookup `cmd:""             help:"Look up services by name, alias, or port"`
	Search cmd.Search `cmd:""             help:"Fuzzy search service names and aliases"`
	Check  cmd.Check  `cmd:""             help:"Report malformed lines"`
	Browse cmd.Browse `cmd:""             help:"Browse services interactively"`
	Watch  cmd.Watch  `cmd:""             help:"Reload the database whenever it changes"`
	Serve  cmd.Serve  `cmd:""             help:"Serve the database over HTTP"`
	Init   cmd.Init   `cmd:""             help:"Initialize configuration file"`
}

// Run executes the svcdb CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath + ".yaml",
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"pathEnvar":          pkg.EnvPrefix() + pathEnvar,
		"defaultDatabase":    resolveDatabases(nil)[0],
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.DefaultEnvars(pkg.Prefix()),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve, configFilePath+".yaml"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	databases := resolveDatabases(cli.Database)

	log.DebugContext(ctx, "resolved services databases",
		slog.Any("paths", databases),
		slog.Bool("ignore_errors", cli.IgnoreErrors),
	)

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSource(ctx, cmd.Source{
		Paths:        databases,
		IgnoreErrors: cli.IgnoreErrors,
	})

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
