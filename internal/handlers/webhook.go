package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bradshjg/prubot/internal/bot"
	"github.com/bradshjg/prubot/internal/bus"
	"github.com/bradshjg/prubot/internal/events"
)

type WebhookHandler struct {
	dispatcher *bot.Dispatcher
	bus        bus.Bus
}

func NewWebhookHandler(d *bot.Dispatcher, b bus.Bus) *WebhookHandler {
	return &WebhookHandler{dispatcher: d, bus: b}
}

func (h *WebhookHandler) Receive() fiber.Handler {
	return func(c *fiber.Ctx) error {
		delivery := strings.TrimSpace(c.Get(bot.DeliveryHeader))
		if delivery == "" {
			delivery = uuid.NewString()
		}

		res, err := h.dispatcher.Dispatch(c.UserContext(), bot.Request{
			Header:     fiberHeader{c: c},
			Body:       c.Body(),
			DeliveryID: delivery,
		})
		if err != nil {
			if status, code, ok := validationStatus(err); ok {
				slog.Warn("webhook rejected",
					"delivery_id", delivery,
					"event", c.Get(bot.EventHeader),
					"error", err,
				)
				return c.Status(status).JSON(fiber.Map{"error": code})
			}
			// Handler failures carry no response contract.
			return err
		}

		if h.bus != nil {
			ev := events.DispatchCompleted{
				DeliveryID: delivery,
				Event:      res.Event,
				Matched:    res.Matched(),
				Handlers:   res.Results.Names(),
				StatusCode: res.StatusCode(),
			}
			if res.Action != nil {
				ev.Action = *res.Action
			}
			if err := bus.PublishJSON(c.UserContext(), h.bus, events.SubjectDispatchCompleted, ev); err != nil {
				slog.Error("failed to publish dispatch notice",
					"delivery_id", delivery,
					"error", err,
				)
			}
		}

		return c.Status(res.StatusCode()).JSON(res)
	}
}

func validationStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, bot.ErrInvalidContentType):
		return fiber.StatusUnsupportedMediaType, "invalid_content_type", true
	case errors.Is(err, bot.ErrInvalidBody):
		return fiber.StatusBadRequest, "invalid_json", true
	case errors.Is(err, bot.ErrMissingEventHeader):
		return fiber.StatusBadRequest, "missing_event_header", true
	case errors.Is(err, bot.ErrSignatureMismatch):
		return fiber.StatusUnauthorized, "invalid_signature", true
	case errors.Is(err, bot.ErrNotConfigured):
		return fiber.StatusServiceUnavailable, "app_not_configured", true
	}
	return 0, "", false
}

// fiberHeader distinguishes an absent header from an empty one.
type fiberHeader struct {
	c *fiber.Ctx
}

func (h fiberHeader) Lookup(name string) (string, bool) {
	v := h.c.Request().Header.Peek(name)
	if v == nil {
		return "", false
	}
	return string(v), true
}
