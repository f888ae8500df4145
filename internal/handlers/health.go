package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bradshjg/prubot/internal/bot"
)

func Health(app *bot.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if app == nil || !app.IsConfigured() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"ok":         false,
				"configured": false,
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"ok":         true,
			"configured": true,
			"handlers":   app.Registry().Len(),
		})
	}
}
