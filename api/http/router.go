package http

import (
	"github.com/gofiber/fiber/v2"

	"taskdeck/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, auth *handlers.AuthHandler, tasks *handlers.TaskHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	v1.Post("/register", auth.Register)
	v1.Post("/login", auth.Login)
	v1.Post("/logout", authMW, auth.Logout)

	tg := v1.Group("/tasks", authMW)
	tg.Get("/", tasks.List)
	tg.Post("/", tasks.Create)
	tg.Patch("/:id", tasks.Update)
	tg.Delete("/:id", tasks.Delete)
}
