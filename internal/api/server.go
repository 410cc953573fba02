// Copyright (c) 2026 RevenueGear. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost presentation boundary.
  - It is the composition root for the chi router.
  - Only this package and cmd/api import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/revenuegear/internal/admin"
	"github.com/taibuivan/revenuegear/internal/contact"
	"github.com/taibuivan/revenuegear/internal/deck"
	"github.com/taibuivan/revenuegear/internal/platform/constants"
	"github.com/taibuivan/revenuegear/internal/platform/middleware"
	"github.com/taibuivan/revenuegear/internal/platform/sec"
	"github.com/taibuivan/revenuegear/internal/session"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when Postgres and Redis answer.
	Readiness http.HandlerFunc

	// Decks serves the deck catalogue.
	Decks *deck.Handler

	// Readers drives reader sessions.
	Readers *session.Handler

	// Contact composes mailto links and relays demo requests.
	Contact *contact.Handler

	// Admin issues back-office tokens.
	Admin *admin.Handler
}

// Settings holds the server's environment-derived inputs.
type Settings struct {
	Port string
	CORS middleware.AppConfig
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, settings Settings, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(settings.CORS))
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Original relay path kept for the existing site
	r.Method(http.MethodPost, "/api/send-email", h.Contact.SendEmail())

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/decks", h.Decks.Routes())
		api.Mount("/readers", h.Readers.Routes())
		api.Mount("/contact", h.Contact.Routes())

		// ## Back office: login is public, everything else needs a role.
		adminAPI := h.Admin.Routes()
		adminAPI.With(middleware.RequireRole(sec.RoleAdmin)).Mount("/leads", h.Contact.AdminRoutes())
		adminAPI.With(middleware.RequireRole(sec.RoleEditor)).Mount("/decks", h.Decks.AdminRoutes())
		api.Mount("/admin", adminAPI)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + settings.Port,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, for tests.
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
