// Package cmd implements the svcdb subcommands.
//
// Every command reads the services databases selected by the global
// --database and --ignore-errors flags, which the cli package stores in the
// command context with [WithSource]. Output is written to the kong context's
// stdout so commands can be exercised in tests with [kong.Writers].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
