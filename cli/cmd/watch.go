package cmd

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/svcdb/log"
	"github.com/ardnew/svcdb/services"
)

// defaultDebounce is the quiet period after a file event before reloading.
const defaultDebounce = 250 * time.Millisecond

// store holds the most recently loaded entries of a [Source].
// It is safe for concurrent use.
type store struct {
	source Source

	mu      sync.RWMutex
	entries []services.Entry
	loaded  time.Time
}

func newStore(src Source) *store {
	return &store{source: src}
}

// Entries returns the current entries. The slice must not be modified.
func (s *store) Entries() []services.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.entries
}

// Loaded returns the time of the last successful load.
func (s *store) Loaded() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

// load re-parses the source. On failure the previous entries are kept.
func (s *store) load(ctx context.Context) error {
	entries, err := s.source.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = entries
	s.loaded = time.Now()
	s.mu.Unlock()

	return nil
}

// watch reloads s whenever one of its database files is written, created,
// or renamed, until ctx is done. Events within delay of each other cause a
// single reload. reloaded, if not nil, is called after every reload attempt.
func (s *store) watch(
	ctx context.Context,
	delay time.Duration,
	reloaded func(error),
) error {
	if delay <= 0 {
		delay = defaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer watcher.Close()

	// Directories are watched so that files replaced by rename are followed.
	files := make(map[string]struct{})
	dirs := make(map[string]struct{})

	for _, path := range s.source.paths() {
		abs, err := filepath.Abs(path)
		if err != nil {
			return ErrWatch.Wrap(err).With(slog.String("path", path))
		}

		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return ErrWatch.Wrap(err).With(slog.String("dir", dir))
		}
	}

	timer := time.NewTimer(delay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if _, ok := files[filepath.Clean(event.Name)]; !ok {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) {
				continue
			}

			log.DebugContext(ctx, "database changed",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()),
			)

			timer.Reset(delay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.WarnContext(ctx, "watch error", slog.Any("error", err))

		case <-timer.C:
			err := s.load(ctx)
			if err != nil {
				log.WarnContext(ctx, "reload failed", slog.Any("error", err))
			} else {
				log.InfoContext(ctx, "reloaded services database",
					slog.Int("entries", len(s.Entries())),
				)
			}

			if reloaded != nil {
				reloaded(err)
			}
		}
	}
}

// Watch parses the databases and re-parses them whenever they change.
type Watch struct {
	Debounce time.Duration `default:"250ms" help:"Quiet period after a change before reloading"`
}

// Run executes the watch command. It returns when ctx is cancelled.
func (w *Watch) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := newStore(sourceFrom(ctx))

	if err := s.load(ctx); err != nil {
		return err
	}

	log.InfoContext(ctx, "loaded services database",
		slog.Int("entries", len(s.Entries())),
	)

	return s.watch(ctx, w.Debounce, nil)
}
