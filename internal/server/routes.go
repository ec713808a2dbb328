package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"helpdesk/internal/agent"
	"helpdesk/internal/db"
	"helpdesk/internal/handlers"
	"helpdesk/internal/handlers/api"
	"helpdesk/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, a *agent.Agent) error {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(database, s.Cfg)

	// Initialize handlers
	callHandler := api.NewCallHandler(a)
	requestHandler := api.NewRequestHandler(database, a)
	knowledgeHandler := api.NewKnowledgeHandler(database)
	healthHandler := api.NewHealthHandler(database)
	panelHandler := handlers.NewPanelHandler(database, a)

	// JSON API
	s.App.Post("/api/calls/simulate", callHandler.Simulate)
	s.App.Get("/api/requests/pending", requestHandler.Pending)
	s.App.Get("/api/requests", requestHandler.List)
	s.App.Get("/api/requests/:id", requestHandler.Get)
	s.App.Post("/api/requests/:id/resolve", requestHandler.Resolve)
	s.App.Get("/api/knowledge", knowledgeHandler.List)
	s.App.Get("/api/health", healthHandler.Check)

	// Prometheus exposition
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Supervisor login - OIDC when configured, open panel otherwise
	if s.Cfg.IsOIDCEnabled() {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
		if err != nil {
			return err
		}
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	} else {
		log.Println("OIDC is not configured; supervisor panel is open (set OIDC_ISSUER to require login)")
	}

	s.App.Get("/login", panelHandler.Login)

	// Supervisor panel
	s.App.Get("/", authMiddleware.RequireSupervisor, panelHandler.Dashboard)
	s.App.Get("/requests/:id", authMiddleware.RequireSupervisor, panelHandler.ShowRequest)
	s.App.Post("/requests/:id/resolve", authMiddleware.RequireSupervisor, panelHandler.ResolveRequest)
	s.App.Get("/knowledge", authMiddleware.RequireSupervisor, panelHandler.Knowledge)

	return nil
}
