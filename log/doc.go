// Package log provides structured logging for svcdb built on [log/slog].
//
// A [Logger] is an immutable value: every configuration change made with
// [Logger.Wrap] or [Logger.With] returns a new Logger, so a Logger may be
// shared freely between goroutines. The zero Logger discards everything,
// which makes it a safe default for library code that accepts an optional
// logger.
//
// # Usage
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//	)
//	logger.Info("parsed database", slog.Int("entries", n))
//
// # Default logger
//
// The package-level functions ([Info], [Debug], [Config], ...) operate on a
// process-wide default logger writing JSON to standard error. The CLI
// reconfigures it from command-line flags with [Config].
//
// # Levels and formats
//
// Levels are [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and
// [LevelError]. Output is [FormatJSON] (default) or [FormatText]; either can
// be pretty-printed with [WithPretty].
package log
