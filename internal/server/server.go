// Package server provides the HTTP API for shaping prompts and asking questions.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tinkerloft/promptshape/internal/generate"
	"github.com/tinkerloft/promptshape/internal/model"
	"github.com/tinkerloft/promptshape/internal/prompt"
)

// AnswerNotifier publishes generated answers, e.g. *notify.SlackNotifier.
type AnswerNotifier interface {
	PostAnswer(ctx context.Context, question string, strategy model.Strategy, answer string) error
}

// Server is the HTTP API server.
type Server struct {
	router     chi.Router
	dispatcher *prompt.Dispatcher
	generator  generate.Generator // nil disables /ask
	gatherer   prometheus.Gatherer
	notifier   AnswerNotifier
}

// Option configures a Server.
type Option func(*Server)

// WithNotifier posts every answer from /api/v1/ask through n.
func WithNotifier(n AnswerNotifier) Option {
	return func(s *Server) { s.notifier = n }
}

// New creates a new Server. A nil dispatcher uses the built-in corpus; a nil
// generator makes /api/v1/ask return 503; a nil gatherer disables /metrics.
func New(d *prompt.Dispatcher, g generate.Generator, gatherer prometheus.Gatherer, opts ...Option) *Server {
	if d == nil {
		d = prompt.NewDispatcher(nil)
	}
	s := &Server{dispatcher: d, generator: g, gatherer: gatherer}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.buildRouter()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/api/v1/health", s.handleHealth)

	r.Get("/api/v1/strategies", s.handleListStrategies)
	r.Get("/api/v1/samples", s.handleListSamples)
	r.Post("/api/v1/prompt", s.handlePrompt)
	r.Post("/api/v1/ask", s.handleAsk)

	r.Get("/api/v1/knowledge", s.handleListKnowledge)
	r.Get("/api/v1/knowledge/search", s.handleSearchKnowledge)

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
