package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/bradshjg/prubot/internal/bot"
	"github.com/bradshjg/prubot/internal/bus"
	"github.com/bradshjg/prubot/internal/config"
	"github.com/bradshjg/prubot/internal/handlers"
)

type Deps struct {
	App *bot.App
	Bus bus.Bus
}

func New(cfg config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "prubot",
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Baseline middleware.
	app.Use(requestid.New())
	app.Use(recover.New())
	if cfg.Env != "test" {
		app.Use(logger.New())
	}

	app.Get("/health", handlers.Health(deps.App))

	webhooks := handlers.NewWebhookHandler(deps.App.Dispatcher(), deps.Bus)
	app.Post("/", webhooks.Receive())

	return app
}
