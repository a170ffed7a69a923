package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dshop/shop/api/http/handlers"
)

// Register wires all HTTP routes onto the given Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	users *handlers.UsersHandler,
	health *handlers.HealthHandler,
	authMW fiber.Handler,
	adminMW fiber.Handler,
	rateLimitMW fiber.Handler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth", rateLimitMW)
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	u := v1.Group("/users", authMW)
	u.Get("/me", users.Me)
	u.Get("/:id", adminMW, users.Get)
}
