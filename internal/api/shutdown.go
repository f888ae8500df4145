package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Shutdown stops accepting deliveries and waits for in-flight handlers until
// ctx expires.
func Shutdown(ctx context.Context, app *fiber.App) error {
	err := app.ShutdownWithContext(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.New("shutdown timed out waiting for in-flight deliveries")
	}
	return err
}
