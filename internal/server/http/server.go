// Package httpserver provides the HTTP REST API server for the article service.
package httpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pressroom/article-service/internal/database"
	"github.com/pressroom/article-service/internal/observability"
)

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MetricsEnabled  bool
	MetricsPath     string
	OpenAPIPath     string
}

// Server is the HTTP REST API server. Every mutating route runs inside one
// transaction opened by the transactional wrapper; the pool handle is only
// used directly by the health endpoints.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	db         *database.DB
	txRunner   database.TxRunner
	logger     zerolog.Logger
	metrics    *observability.Metrics
	cfg        Config
}

// NewServer creates a new HTTP server over the given database.
func NewServer(
	cfg Config,
	db *database.DB,
	txRunner database.TxRunner,
	logger zerolog.Logger,
	metrics *observability.Metrics,
) *Server {
	s := &Server{
		db:       db,
		txRunner: txRunner,
		logger:   logger.With().Str("component", "http-server").Logger(),
		metrics:  metrics,
		cfg:      cfg,
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Router exposes the handler tree for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.correlationIDMiddleware)
	r.Use(jsonContentTypeMiddleware)
	r.Use(s.requestLoggingMiddleware)
	if s.metrics != nil {
		r.Use(s.metricsMiddleware)
	}

	// chi's defaults write text/plain; keep the JSON envelope on every response.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "resource not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	// Operational endpoints
	r.Get("/healthz", s.healthHandler)
	r.Get("/readyz", s.readinessHandler)
	if s.cfg.MetricsEnabled {
		path := s.cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.Handler())
	}
	if s.cfg.OpenAPIPath != "" {
		r.Get("/openapi.yaml", s.openAPIHandler)
	}

	r.Route("/authors", func(r chi.Router) {
		r.Get("/", s.transactional(s.listAuthors))
		r.Post("/", s.transactional(s.createAuthor))
		r.Get("/with-stats", s.transactional(s.listAuthorsWithStats))
		r.Get("/{id}", s.transactional(s.getAuthor))
		r.Put("/{id}", s.transactional(s.updateAuthor))
		r.Delete("/{id}", s.transactional(s.deleteAuthor))
	})

	r.Route("/regions", func(r chi.Router) {
		r.Get("/", s.transactional(s.listRegions))
		r.Post("/", s.transactional(s.createRegion))
		r.Get("/{id}", s.transactional(s.getRegion))
		r.Put("/{id}", s.transactional(s.updateRegion))
		r.Delete("/{id}", s.transactional(s.deleteRegion))
	})

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", s.transactional(s.listArticles))
		r.Post("/", s.transactional(s.createArticle))
		r.Get("/{id}", s.transactional(s.getArticle))
		r.Put("/{id}", s.transactional(s.updateArticle))
		r.Delete("/{id}", s.transactional(s.deleteArticle))
	})

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// healthHandler returns basic liveness status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := s.db.Health(r.Context())
	if health.Status == "healthy" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": health.Status})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{
		"status":   "unhealthy",
		"database": health.Status,
		"error":    health.Error,
	})
}

// readinessHandler reports whether the service can take traffic.
func (s *Server) readinessHandler(w http.ResponseWriter, r *http.Request) {
	health := s.db.Health(r.Context())
	if health.Status != "healthy" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "not_ready",
			"database": health.Status,
			"error":    health.Error,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": "healthy",
	})
}

// openAPIHandler serves the static API document.
func (s *Server) openAPIHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	http.ServeFile(w, r, s.cfg.OpenAPIPath)
}
