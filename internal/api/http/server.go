package http

import (
	"github.com/gofiber/fiber/v2"
)

// ServerConfig bundles everything needed to build the HTTP application.
type ServerConfig struct {
	AppName     string
	Middlewares MiddlewareConfig
	Routes      RouteConfig
}

// NewServer builds a fiber application with middlewares and routes attached.
func NewServer(cfg ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, cfg.Middlewares)
	RegisterRoutes(app, cfg.Routes)
	return app
}
