// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/eduardoklosowski/madr/internal/core/author"
	"github.com/eduardoklosowski/madr/internal/core/book"
	"github.com/eduardoklosowski/madr/internal/platform/config"
	"github.com/eduardoklosowski/madr/internal/platform/constants"
	"github.com/eduardoklosowski/madr/internal/platform/metrics"
	"github.com/eduardoklosowski/madr/internal/platform/middleware"
	"github.com/eduardoklosowski/madr/internal/platform/respond"
	"github.com/eduardoklosowski/madr/internal/users/account"
	"github.com/eduardoklosowski/madr/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Info is the GET / handler.
	Info http.HandlerFunc

	// Liveness is the /health handler. It fails when the database is unreachable.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It reports every dependency.
	Readiness http.HandlerFunc

	// Metrics instruments every request and serves /metrics.
	Metrics *metrics.Metrics

	// Token exchanges credentials for bearer tokens.
	Token *auth.Handler

	// Account handles registration and self-service account changes.
	Account *account.Handler

	// Author manages romancistas.
	Author *author.Handler

	// Book manages livros.
	Book *book.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// The context bounds background work started by the middleware (rate limiter cleanup).
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, resolver middleware.TokenResolver, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(h.Metrics.Instrument)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx, middleware.DefaultRateLimitOptions()))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	r.NotFound(respond.NotFound)
	r.MethodNotAllowed(respond.MethodNotAllowed)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/", h.Info)
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())

	// # Application API
	requireAuth := middleware.RequireAuth(resolver)

	r.Route("/token", h.Token.RegisterRoutes)
	r.Route("/conta", func(router chi.Router) {
		h.Account.RegisterRoutes(router, requireAuth)
	})
	r.Route("/romancista", func(router chi.Router) {
		h.Author.RegisterRoutes(router, requireAuth)
	})
	r.Route("/livro", func(router chi.Router) {
		h.Book.RegisterRoutes(router, requireAuth)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler returns the root router. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
