package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/mung"

	"github.com/ardnew/svcdb/pkg"
	"github.com/ardnew/svcdb/services"
)

// pathEnvar is the name of the environment variable, after [pkg.EnvPrefix],
// holding a list of candidate database paths.
const pathEnvar = "PATH"

// searchPath returns the candidate databases: the regular files listed in
// the search path environment variable, followed by [services.DefaultPath].
func searchPath() []string {
	list := mung.Make(
		mung.WithSubjectItems(services.DefaultPath),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(filepath.SplitList(os.Getenv(pkg.EnvPrefix()+pathEnvar))...),
		mung.WithFilter(isRegular),
	).String()

	return filepath.SplitList(list)
}

// resolveDatabases returns the databases to read. Explicit paths are used
// as given. Otherwise the first regular file of [searchPath] is selected,
// falling back to [services.DefaultPath] so that a missing database is
// reported when it is parsed.
func resolveDatabases(explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}

	for _, path := range searchPath() {
		if isRegular(path) {
			return []string{path}
		}
	}

	return []string{services.DefaultPath}
}

func isRegular(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
