// Package server exposes the alignment pipeline over HTTP.
//
// # Routes
//
//	POST /api/v1/align                      align two sequences and store the result
//	GET  /api/v1/alignments                 list stored alignments, newest first
//	GET  /api/v1/alignments/{id}            one stored alignment as JSON
//	GET  /api/v1/alignments/{id}/{format}   render a stored alignment
//	GET  /healthz                           liveness probe
//	GET  /metrics                           Prometheus metrics
//
// Errors are returned as {"error": "...", "code": "..."} with a status
// derived from the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/seqalign/pkg/align"
	"github.com/matzehuels/seqalign/pkg/observability"
	"github.com/matzehuels/seqalign/pkg/pipeline"
	"github.com/matzehuels/seqalign/pkg/store"
)

// Timeouts.
const (
	// RequestTimeout cancels the request context. The pipeline checks the
	// context between fill and traceback; pipeline.MaxAlignments bounds
	// the traceback itself.
	RequestTimeout = 60 * time.Second

	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout = 10 * time.Second
)

// MaxBodyBytes bounds a request body.
const MaxBodyBytes = 1 << 20

// Options configures a Server.
type Options struct {
	Runner   *pipeline.Runner
	Store    store.Store
	Logger   *log.Logger
	Scoring  align.Scoring // Applied when a request names no scoring
	Gatherer prometheus.Gatherer
}

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	scoring align.Scoring
	router  chi.Router
}

// New builds a server and its routes. A nil runner gets a cache-less
// runner, a nil store a MemoryStore and a nil gatherer the default
// Prometheus registry.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		runner:  opts.Runner,
		store:   opts.Store,
		logger:  opts.Logger,
		scoring: opts.Scoring,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/align", s.handleAlign)
		r.Get("/alignments", s.handleList)
		r.Get("/alignments/{id}", s.handleGet)
		r.Get("/alignments/{id}/{format}", s.handleRender)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// observe logs every request and reports it to the HTTP hooks under its
// route pattern. Requests that match no route share one label.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}
