package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bradshjg/prubot/internal/bot"
	"github.com/bradshjg/prubot/internal/config"
)

func TestRoutes(t *testing.T) {
	b := bot.New()
	require.NoError(t, b.On("ping", "pong", func(context.Context, *bot.Context) (any, error) { return "pong", nil }))
	app := New(config.Config{Env: "test"}, Deps{App: b})

	// Unconfigured: health reports it and deliveries are refused.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"zen":"Keep it logically awesome."}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", "ping")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestHealthBody(t *testing.T) {
	app := New(config.Config{Env: "test"}, Deps{App: bot.New()})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":false,"configured":false}`, string(b))
}
