// Package server exposes the layout pipeline and the family store over HTTP.
//
// Routes:
//
//	POST   /layout                 lay out a family sent in the body
//	GET    /families               list stored family ids
//	POST   /families               store a family under a generated id
//	GET    /families/{id}          fetch a stored family
//	PUT    /families/{id}          create or replace a stored family
//	DELETE /families/{id}          remove a stored family
//	GET    /families/{id}/layout   lay out a stored family
//	GET    /healthz                liveness check
//	GET    /metrics                Prometheus metrics, when configured
//
// Errors are JSON bodies of the form {"error": "...", "code": "..."} with a
// status derived from the error code.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Andre-Pham/FamApp-sub000/pkg/pipeline"
	"github.com/Andre-Pham/FamApp-sub000/pkg/store"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 4 << 20

// Config wires a Server.
type Config struct {
	Store  store.Store
	Runner *pipeline.Runner
	Logger *log.Logger

	// Metrics serves /metrics. The route is omitted when nil.
	Metrics http.Handler

	// Timeout bounds each request. Zero means 30 seconds.
	Timeout time.Duration
}

// Server holds the HTTP handlers.
type Server struct {
	store   store.Store
	runner  *pipeline.Runner
	logger  *log.Logger
	metrics http.Handler
	timeout time.Duration
}

// New creates a server. A nil runner or logger gets a default.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Server{
		store:   cfg.Store,
		runner:  cfg.Runner,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		timeout: cfg.Timeout,
	}
}

// Router builds the chi router with all middleware and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Post("/layout", s.handleLayout)

	r.Route("/families", func(r chi.Router) {
		r.Get("/", s.handleListFamilies)
		r.Post("/", s.handleCreateFamily)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetFamily)
			r.Put("/", s.handlePutFamily)
			r.Delete("/", s.handleDeleteFamily)
			r.Get("/layout", s.handleFamilyLayout)
		})
	})

	return r
}
