package setup

import (
	"myposts/app"
	"myposts/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	fiberApp.Get("/", handlers.HomePage(application))
	fiberApp.Get("/health", handlers.Health)
	fiberApp.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(application.Registry, promhttp.HandlerOpts{})))

	api := fiberApp.Group("/api")
	api.Get("/info", handlers.Info(application))
	api.Get("/events", handlers.Events(application))

	ipc := api.Group("/ipc", requestLimiter())
	ipc.Post("/", handlers.Dispatch(application))
	ipc.Post("/:name", handlers.DispatchNamed(application))
}
