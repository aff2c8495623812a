// Package server exposes tag placement over HTTP.
//
// # Endpoints
//
//	POST /v1/place    {"scene": {...}, "options": {...}}  → {"report": {...}, "scene": {...}}
//	POST /v1/spiral   {"anchor": {...}, "step": 5, "count": 9} → {"candidates": [...]}
//	POST /v1/resolve  {"anchor": {...}, "obstacles": [...], "clearance": 5} → correction
//	GET  /healthz
//	GET  /version
//
// Scenes are validated against the same JSON Schema as scene files. Options
// left out of a request fall back to the server's configured defaults.
//
// # Errors
//
// Failures are written as {"code": "...", "message": "...", "request_id": "..."}.
// INVALID_* codes map to 400, *_NOT_FOUND codes to 404, DEGENERATE_GEOMETRY to
// 422 and everything else to 500.
//
// Every response carries an X-Request-Id header; a UUID is generated when the
// client did not send one.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/tagplacer/pkg/observability"
	"github.com/matzehuels/tagplacer/pkg/pipeline"
)

const (
	// maxBodyBytes limits request bodies.
	maxBodyBytes = 10 << 20

	// maxCount caps the spiral length a request may ask for.
	maxCount = 10_000

	// shutdownTimeout bounds graceful shutdown.
	shutdownTimeout = 30 * time.Second
)

// Server serves the placement API.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
	router   chi.Router
}

// New creates a server running placements on runner. defaults supplies
// option values that requests leave out; its Logger and ChooseFamily are
// ignored.
func New(runner *pipeline.Runner, logger *log.Logger, defaults pipeline.Options) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	defaults.Logger = nil
	defaults.ChooseFamily = nil

	s := &Server{
		runner:   runner,
		logger:   logger,
		defaults: defaults,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(stampRequestID)
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/place", s.handlePlace)
		r.Post("/spiral", s.handleSpiral)
		r.Post("/resolve", s.handleResolve)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorStatus(w, r, http.StatusNotFound, "NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorStatus(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

// stampRequestID sets a UUID X-Request-Id on requests that lack one, so the
// chi RequestID middleware adopts it.
func stampRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(middleware.RequestIDHeader) == "" {
			r.Header.Set(middleware.RequestIDHeader, uuid.NewString())
		}
		w.Header().Set(middleware.RequestIDHeader, r.Header.Get(middleware.RequestIDHeader))
		next.ServeHTTP(w, r)
	})
}

// logRequests logs every request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := middleware.GetReqID(r.Context())
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, d)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", d,
			"request_id", id)
	})
}
