package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/svcdb/log"
	"github.com/ardnew/svcdb/services"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer commands print results to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// kongVar returns the kong variable named id, or the empty string.
func kongVar(ctx context.Context, id string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[id]
}

type sourceKey struct{}

// Source identifies the services databases to read and the policy for
// malformed lines.
type Source struct {
	// Paths are the database files, read in order. Paths naming the same file
	// (through symlinks or relative paths) are read once.
	Paths []string
	// IgnoreErrors drops malformed lines instead of failing.
	IgnoreErrors bool
}

// WithSource returns a new context.Context containing src.
func WithSource(ctx context.Context, src Source) context.Context {
	return context.WithValue(ctx, sourceKey{}, src)
}

// sourceFrom retrieves the Source stored in ctx by WithSource. The zero
// Source reads [services.DefaultPath] with the abort policy.
func sourceFrom(ctx context.Context) Source {
	src, _ := ctx.Value(sourceKey{}).(Source)

	return src
}

// paths returns the deduplicated database paths of s.
func (s Source) paths() []string {
	if len(s.Paths) == 0 {
		return []string{services.DefaultPath}
	}

	return uniquePaths(s.Paths)
}

// Load parses every database of s and returns their entries concatenated in
// path order.
func (s Source) Load(ctx context.Context, opts ...services.Option) ([]services.Entry, error) {
	var all []services.Entry

	for _, path := range s.paths() {
		entries, err := services.ParseFile(path, s.IgnoreErrors,
			slices.Concat([]services.Option{services.WithLogger(log.Default())}, opts)...,
		)
		if err != nil {
			return nil, err
		}

		log.DebugContext(ctx, "loaded services database",
			slog.String("path", path),
			slog.Int("entries", len(entries)),
		)

		all = append(all, entries...)
	}

	if all == nil {
		all = []services.Entry{}
	}

	return all, nil
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// uniquePaths removes paths that refer to a file already listed, preserving
// order. Paths that cannot be resolved are kept so that parsing reports them.
func uniquePaths(paths []string) []string {
	seen := make(map[fileKey]struct{}, len(paths))
	unique := make([]string, 0, len(paths))

	for _, path := range paths {
		key, ok := resolveFileKey(path)
		if ok {
			if _, exists := seen[key]; exists {
				continue
			}

			seen[key] = struct{}{}
		}

		unique = append(unique, path)
	}

	return unique
}

// resolveFileKey follows symlinks from path and returns the identity of the
// file it names.
func resolveFileKey(path string) (fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false
	}

	return makeFileKey(info)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
