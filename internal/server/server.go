// Package server implements the optional render-as-a-service HTTP API:
// a stateless wrapper around the same pkg/diagram pipeline the CLI
// drives, backed by a Redis-shared render cache and a Mongo-backed
// render history store.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/orthogram/orthogram/pkg/cache"
	"github.com/orthogram/orthogram/pkg/ddf"
	"github.com/orthogram/orthogram/pkg/diagram"
)

// Server holds the dependencies every handler needs.
type Server struct {
	Runner *diagram.Runner
	Store  *Store // nil disables render history persistence
	Logger *log.Logger
}

// New wires a chi router exposing the render API's three routes.
func New(runner *diagram.Runner, store *Store, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{Runner: runner, Store: store, Logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealthz)
	r.Post("/v1/render", s.handleRender)
	r.Get("/v1/renders/{id}", s.handleGetRender)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		s.Logger.Debugf("%s %s (%s)", req.Method, req.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleRender accepts a DDF document as the request body and returns
// the rendered artifact, looking up the cache by a content hash of the
// body plus format and scale before re-running the pipeline.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}
	scale := 1.0

	body, err := io.ReadAll(io.LimitReader(r.Body, 8<<20))
	if err != nil {
		http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	start := time.Now()

	doc, err := ddf.LoadWith("request.yaml", requestReader(body))
	if err != nil {
		s.recordFailure(r.Context(), id, body, format, err, time.Since(start))
		http.Error(w, "parse ddf: "+err.Error(), http.StatusBadRequest)
		return
	}

	ddfHash := cache.Hash(body)
	opts := diagram.DefaultOptions()
	opts.Scale = scale

	d, _, err := s.Runner.BuildWithCacheInfo(r.Context(), doc, ddfHash, opts)
	if err != nil {
		s.recordFailure(r.Context(), id, body, format, err, time.Since(start))
		http.Error(w, "build diagram: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	data, hit, err := s.Runner.RenderWithCacheInfo(r.Context(), d, format, scale)
	if err != nil {
		s.recordFailure(r.Context(), id, body, format, err, time.Since(start))
		http.Error(w, "render: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.recordSuccess(r.Context(), id, body, format, time.Since(start), hit)

	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Render-Id", id)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleGetRender(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "render history is not configured", http.StatusNotImplemented)
		return
	}
	id := chi.URLParam(r, "id")
	rec, err := s.Store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) recordSuccess(ctx context.Context, id string, body []byte, format string, dur time.Duration, cached bool) {
	if s.Store == nil {
		return
	}
	rec := Record{
		ID:        id,
		InputHash: cache.Hash(body),
		Format:    format,
		Duration:  dur,
		Cached:    cached,
		CreatedAt: time.Now(),
	}
	if err := s.Store.Insert(ctx, rec); err != nil {
		s.Logger.Warnf("record render history: %v", err)
	}
}

func (s *Server) recordFailure(ctx context.Context, id string, body []byte, format string, cause error, dur time.Duration) {
	if s.Store == nil {
		return
	}
	rec := Record{
		ID:        id,
		InputHash: cache.Hash(body),
		Format:    format,
		Duration:  dur,
		Error:     cause.Error(),
		CreatedAt: time.Now(),
	}
	if err := s.Store.Insert(ctx, rec); err != nil {
		s.Logger.Warnf("record render history: %v", err)
	}
}

func contentType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "pdf":
		return "application/pdf"
	default:
		return "image/svg+xml"
	}
}

// requestReader builds a ddf.ReadFile that serves body for the
// synthetic "request.yaml" entry path and fails any include reference,
// since a stateless POST body has no filesystem to include from.
func requestReader(body []byte) ddf.ReadFile {
	return func(p string) ([]byte, error) {
		if p == "request.yaml" {
			return body, nil
		}
		return nil, errUnsupportedInclude(p)
	}
}

type errUnsupportedInclude string

func (e errUnsupportedInclude) Error() string {
	return "include " + string(e) + " is not supported in render API requests"
}
