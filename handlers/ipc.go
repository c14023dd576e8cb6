package handlers

import (
	"encoding/json"

	"myposts/app"
	"myposts/gateway"
	"myposts/middleware"

	"github.com/gofiber/fiber/v2"
)

// Dispatch handles a request envelope {id, name, payload} and answers with
// the gateway reply
func Dispatch(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req gateway.Request
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if req.Name == "" {
			return badRequest(c, "name is required")
		}
		if req.ID == "" {
			req.ID = middleware.GetRequestID(c)
		}

		return reply(c, a, req)
	}
}

// DispatchNamed handles POST /api/ipc/:name where the body is the bare payload
func DispatchNamed(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := gateway.Request{
			ID:   middleware.GetRequestID(c),
			Name: c.Params("name"),
		}
		if body := c.Body(); len(body) > 0 {
			if !json.Valid(body) {
				return badRequest(c, "Invalid request body")
			}
			// fasthttp reuses the body buffer once the handler returns
			req.Payload = append(json.RawMessage(nil), body...)
		}

		return reply(c, a, req)
	}
}

func reply(c *fiber.Ctx, a *app.App, req gateway.Request) error {
	c.Locals("requestName", req.Name)

	r := a.Gateway.Dispatch(c.UserContext(), req)
	if r.Name == gateway.ReplyError {
		return c.Status(fiber.StatusNotFound).JSON(r)
	}
	return success(c, r)
}
