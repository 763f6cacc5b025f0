// Package http exposes a Lumen engine over HTTP: sample generation, graph
// introspection and health, plus an optional metrics endpoint.
package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/lumen/pkg/domain"
	"github.com/aretw0/lumen/pkg/feature"
)

// Engine defines the interface for the Lumen generation core.
type Engine interface {
	Generate(ctx context.Context, count int) ([]domain.Sample, error)
	Inspect() *feature.Info
}

// Server handles the HTTP surface for an engine.
type Server struct {
	engine  Engine
	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts a metrics handler (e.g. promhttp.Handler())
// at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		engine: engine,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/v1/pipeline", s.inspect)
	r.Post("/v1/generate", s.generate)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return r
}

type generateRequest struct {
	Count int `json:"count"`
}

type generateResponse struct {
	Samples []domain.Sample `json:"samples"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Count <= 0 || req.Count > 1024 {
		s.writeError(w, http.StatusBadRequest, "count must be in [1, 1024]")
		return
	}

	samples, err := s.engine.Generate(r.Context(), req.Count)
	if err != nil {
		s.logger.Error("generation failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, generateResponse{Samples: samples})
}

func (s *Server) inspect(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Inspect())
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
