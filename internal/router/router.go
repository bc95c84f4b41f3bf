package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/praxis-ed/praxis-api/internal/config"
	"github.com/praxis-ed/praxis-api/internal/handler"
	"github.com/praxis-ed/praxis-api/internal/middleware"
	"github.com/praxis-ed/praxis-api/internal/models"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler     *handler.AuthHandler
	ScenarioHandler *handler.ScenarioHandler
	TeacherHandler  *handler.TeacherHandler
	JWTMiddleware   fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtMiddleware))
	}

	if deps.ScenarioHandler != nil {
		scenarios := api.Group("/scenarios", jwtMiddleware)
		deps.ScenarioHandler.Register(scenarios)
	}

	if deps.TeacherHandler != nil {
		teachers := api.Group("/teachers", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
		deps.TeacherHandler.Register(teachers)
	}
}
