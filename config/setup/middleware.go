package setup

import (
	"time"

	"myposts/app"
	"myposts/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// ApplyMiddleware applies all global middleware to the Fiber app
func ApplyMiddleware(fiberApp *fiber.App, application *app.App) {
	fiberApp.Use(
		recover.New(),
		middleware.StructuredLogger(application.Logger),
		middleware.Security(),
		cors.New(cors.Config{
			AllowOrigins:     application.Config.CORSOrigins,
			AllowMethods:     "GET,POST,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept," + middleware.RequestIDHeader,
			ExposeHeaders:    middleware.RequestIDHeader,
			AllowCredentials: false,
			MaxAge:           86400,
		}),
	)
}

// requestLimiter guards the request channel against a runaway UI loop
func requestLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        600,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":      "Rate limit exceeded",
				"request_id": middleware.GetRequestID(c),
			})
		},
	})
}
