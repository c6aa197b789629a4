package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localassist/leads-api/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, auth *handlers.AuthHandler, leads *handlers.LeadHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	a := app.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Get("/me", authMW, auth.Me)

	// Every lead route is tenant-scoped through the auth middleware.
	lg := app.Group("/leads", authMW)
	lg.Post("/", leads.Create)
	lg.Get("/", leads.List)
	lg.Get("/:id", leads.Get)
	lg.Patch("/:id", leads.Update)
	lg.Delete("/:id", leads.Delete)
}
