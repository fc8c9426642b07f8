package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rabiijabrour/workers-production-system/internal/api/http/handlers"
	"github.com/rabiijabrour/workers-production-system/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Workers        *handlers.WorkersHandler
	Productions    *handlers.ProductionsHandler
	AuthMiddleware *auth.Middleware
	StaticDir      string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/register", cfg.Auth.Register)
	api.Post("/login", cfg.Auth.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/me", cfg.Auth.Me)

	users := protected.Group("/users")
	users.Get("/", auth.RequireAdmin(), cfg.Users.List)
	users.Post("/", auth.RequireAdmin(), cfg.Users.Create)
	users.Get("/:id", auth.RequireAdmin(), cfg.Users.Get)
	// PUT allows self-service updates; ownership is checked in the service.
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", auth.RequireAdmin(), cfg.Users.Delete)

	protected.Get("/workers", cfg.Workers.List)
	protected.Post("/workers", cfg.Workers.Create)
	protected.Delete("/workers/:id", cfg.Workers.Delete)

	protected.Get("/productions", cfg.Productions.List)
	protected.Post("/productions", cfg.Productions.Create)
	protected.Get("/summary", cfg.Productions.Summary)
	protected.Get("/production/summary", cfg.Productions.Dashboard)

	if cfg.StaticDir != "" {
		// Login page at the root, dashboard behind /dashboard.
		app.Get("/", func(c *fiber.Ctx) error {
			return c.SendFile(cfg.StaticDir + "/login.html")
		})
		app.Get("/dashboard", func(c *fiber.Ctx) error {
			return c.SendFile(cfg.StaticDir + "/index.html")
		})
		app.Static("/", cfg.StaticDir)
	}
}
