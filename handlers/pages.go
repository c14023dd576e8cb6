package handlers

import (
	"myposts/app"
	"myposts/models"
	"myposts/templates/pages"

	"github.com/gofiber/fiber/v2"
)

// HomePage shows the database location, like the desktop app's
// "show database path" menu entry
func HomePage(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := storeInfo(c, a)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to read store info", err)
		}

		c.Set("Content-Type", "text/html; charset=utf-8")
		return pages.Info(info).Render(c.UserContext(), c.Response().BodyWriter())
	}
}

// Info returns the database location and post count as JSON
func Info(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := storeInfo(c, a)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to read store info", err)
		}
		return success(c, info)
	}
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func storeInfo(c *fiber.Ctx, a *app.App) (models.StoreInfo, error) {
	count, err := a.Repo.CountPosts(c.UserContext())
	if err != nil {
		return models.StoreInfo{}, err
	}

	return models.StoreInfo{
		DataDir:     a.Config.DataDir,
		DBPath:      a.DB.Path(),
		Posts:       count,
		Subscribers: a.Hub.Subscribers(),
	}, nil
}
