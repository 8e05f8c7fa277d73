package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/api/http/handlers"
	"github.com/spec-kit/issue-tracker/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Catalog        *handlers.CatalogHandler
	Issues         *handlers.IssuesHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Ids are constrained to uuids so that
// malformed ids fall through to the not found handler.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/status", cfg.Health.Status)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	catalog := app.Group("/catalog", cfg.AuthMiddleware.Handle)
	catalog.Get("", cfg.Catalog.List)
	catalog.Get("/:id<guid>", cfg.Catalog.Get).Name(handlers.RouteCatalogGetByID)
	catalog.Post("", cfg.Catalog.Create)
	catalog.Put("/:id<guid>", cfg.Catalog.Replace)
	catalog.Delete("/:id<guid>", cfg.Catalog.Delete)

	catalog.Post("/:id<guid>/issues", cfg.Issues.Create)
	catalog.Get("/:id<guid>/issues/:issueId<guid>", cfg.Issues.Get)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/:id<guid>", cfg.Users.Get).Name(handlers.RouteUsersGetByID)
}
