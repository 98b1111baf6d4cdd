// Package cli contains the command line interface for svcdb.
//
// # Usage
//
//	svcdb [flags] <command> [args]
//
// The default command lists every entry of the services database. Other
// commands look up, search, check, browse, watch, or serve the database;
// run svcdb --help for the full tree.
//
// # Database Selection
//
// The --database (-d) flag names one or more database files, read in order.
// Without it, the first regular file listed in $SVCDB_PATH (a path list) is
// used, falling back to /etc/services.
//
// Malformed lines are dropped by default since some systems ship databases
// that do not entirely respect services(5); --no-ignore-errors makes the
// first malformed line fatal.
//
// # Configuration
//
// Flag defaults are read, in increasing precedence, from
//
//   - <config dir>/svcdb/config.json
//   - <config dir>/svcdb/config.yaml (written by svcdb init)
//   - SVCDB_<FLAG> environment variables
//   - the command line
//
// YAML keys may nest: "log: {level: debug}" sets --log-level.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: <cache dir>/svcdb/pprof)
//
// # Examples
//
//	svcdb list --filter 'port < 1024 && protocol == "udp"'
//	svcdb lookup 443 -p tcp -o json
//	svcdb search postgres
//	svcdb -d ./services check
//	svcdb serve --listen :8053
package cli
