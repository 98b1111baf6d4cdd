package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

//nolint:gochecknoglobals
var (
	debugBinary = regexp.MustCompile(`^__debug_bin\d*$`) // default output from dlv
	leadingDots = regexp.MustCompile(`^\.+`)
)

// Prefix returns the base prefix string used to construct the path to the
// configuration directory and the prefix for environment variable identifiers.
//
// It is the base name of the executable without extension, except that
// go test binaries ("*.test") and dlv output ("__debug_bin*") yield [Name],
// and leading dots are removed. An empty result also yields [Name].
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	return prefixOf(exe)
})

func prefixOf(exe string) string {
	id := filepath.Base(exe)
	if strings.HasSuffix(id, ".test") || debugBinary.MatchString(id) {
		return Name
	}

	id = leadingDots.ReplaceAllString(strings.TrimSuffix(id, filepath.Ext(id)), "")
	if id == "" {
		return Name
	}

	return id
}

// EnvPrefix returns the prefix of environment variables recognized by the
// command-line interface, e.g. "SVCDB_".
func EnvPrefix() string {
	return strings.ToUpper(strings.ReplaceAll(Prefix(), "-", "_")) + "_"
}

// ConfigDir returns the directory holding svcdb configuration files.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the directory holding transient files such as the browse
// history.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// userDir returns the [Prefix] subdirectory of the directory reported by
// base. If base fails, hidden is used under the home directory, or under the
// working directory as a last resort.
func userDir(base func() (string, error), hidden string) string {
	dir, err := base()
	if err != nil {
		if dir, err = os.UserHomeDir(); err == nil {
			dir = filepath.Join(dir, hidden)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
