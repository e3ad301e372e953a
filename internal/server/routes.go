package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"grimoire/internal/alerts"
	"grimoire/internal/config"
	"grimoire/internal/grimoire"
	"grimoire/internal/handlers"
	"grimoire/internal/handlers/api"
	"grimoire/internal/middleware"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the components the routes are served from. Misses and Health are
// nil when no database is configured.
type Deps struct {
	Index    *grimoire.Index
	Catalog  *config.Catalog
	Pipeline *alerts.Pipeline
	Misses   api.MissStore
	Health   Pinger
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	ingestAuth := middleware.NewIngestAuth(s.Cfg)

	resolveHandler := api.NewResolveHandler(deps.Index, deps.Misses, s.Cfg)
	captionHandler := api.NewCaptionHandler(deps.Catalog)
	logHandler := api.NewLogHandler(deps.Pipeline)
	grimoireHandler := handlers.NewGrimoireHandler(deps.Index, deps.Catalog, s.Cfg)

	// Operational routes
	s.App.Get("/healthz", healthz(deps.Health))
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Get("/grimoire/resolve", resolveHandler.Resolve)
	apiGroup.Get("/grimoire/entries", resolveHandler.Entries)
	apiGroup.Get("/grimoire/misses", ingestAuth.RequireToken, resolveHandler.Misses)
	apiGroup.Post("/captions/hook", captionHandler.ValidateHook)
	apiGroup.Post("/captions/validate", captionHandler.ValidateCaption)
	apiGroup.Post("/captions/redact", captionHandler.Redact)
	apiGroup.Post("/logs", ingestAuth.RequireToken, logHandler.Ingest)

	// Pages
	s.App.Get("/", grimoireHandler.Index)
	s.App.Get("/search", grimoireHandler.Search)
	s.App.Get("/grimoire/*", grimoireHandler.Show)
}

func healthz(db Pinger) fiber.Handler {
	return func(c fiber.Ctx) error {
		status := fiber.Map{"status": "ok", "database": "disabled"}
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				status["status"] = "degraded"
				status["database"] = err.Error()
				return c.Status(fiber.StatusServiceUnavailable).JSON(status)
			}
			status["database"] = "ok"
		}
		return c.JSON(status)
	}
}
