package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ardnew/svcdb/log"
	"github.com/ardnew/svcdb/query"
	"github.com/ardnew/svcdb/services"
)

// shutdownTimeout bounds the graceful shutdown of the HTTP server.
const shutdownTimeout = 5 * time.Second

// Serve exposes the database over HTTP as JSON.
type Serve struct {
	Listen   string        `default:"localhost:8053" help:"Address to listen on"                          short:"l"`
	Watch    bool          `default:"true"           help:"Reload the database when it changes"          negatable:""`
	Debounce time.Duration `default:"250ms"          help:"Quiet period after a change before reloading"`
}

// Run executes the serve command. It returns when ctx is cancelled or the
// listener fails.
func (s *Serve) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	db := newStore(sourceFrom(ctx))
	if err := db.load(ctx); err != nil {
		return err
	}

	if s.Watch {
		go func() {
			if err := db.watch(ctx, s.Debounce, nil); err != nil {
				log.WarnContext(ctx, "watch stopped", slog.Any("error", err))
			}
		}()
	}

	srv := &http.Server{
		Addr:              s.Listen,
		Handler:           newRouter(db, log.Default()),
		BaseContext:       func(net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errs := make(chan error, 1)

	go func() {
		log.InfoContext(ctx, "HTTP server listening", slog.String("addr", s.Listen))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return ErrServe.Wrap(err).With(slog.String("addr", s.Listen))

	case <-ctx.Done():
	}

	log.InfoContext(ctx, "HTTP server shutting down")

	shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer stop()

	return srv.Shutdown(shutdownCtx)
}

// entrySource provides the entries served by the router.
type entrySource interface {
	Entries() []services.Entry
	Loaded() time.Time
}

// newRouter returns the HTTP handler serving db.
func newRouter(db entrySource, logger log.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"entries": len(db.Entries()),
			"loaded":  db.Loaded().UTC().Format(time.RFC3339),
		})
	})

	r.Get("/services", func(w http.ResponseWriter, req *http.Request) {
		entries, err := query.Filter(db.Entries(), req.URL.Query().Get("filter"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)

			return
		}

		writeJSON(w, http.StatusOK, entries)
	})

	r.Get("/services/{name}", func(w http.ResponseWriter, req *http.Request) {
		found := query.ByName(db.Entries(),
			chi.URLParam(req, "name"), req.URL.Query().Get("protocol"))

		writeFound(w, found)
	})

	r.Get("/ports/{port}", func(w http.ResponseWriter, req *http.Request) {
		port, err := strconv.ParseUint(chi.URLParam(req, "port"), 10, strconv.IntSize)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrInvalidQuery.Wrap(err))

			return
		}

		writeFound(w, query.ByPort(db.Entries(), uint(port), req.URL.Query().Get("protocol")))
	})

	return r
}

func writeFound(w http.ResponseWriter, found []services.Entry) {
	if len(found) == 0 {
		writeError(w, http.StatusNotFound, ErrNotFound)

		return
	}

	writeJSON(w, http.StatusOK, found)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusWriter captures status code and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n

	return n, err
}

// accessLog returns a middleware that logs one line per HTTP request.
func accessLog(logger log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Int("bytes", ww.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("remote_ip", r.RemoteAddr),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
