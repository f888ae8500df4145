package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

type App struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// GetApp returns the app the client's token was minted for.
func (c *Client) GetApp(ctx context.Context) (App, error) {
	var a App
	if err := c.do(ctx, http.MethodGet, "/app", nil, &a); err != nil {
		return App{}, err
	}
	if a.ID == 0 {
		return App{}, fmt.Errorf("invalid github app response")
	}
	return a, nil
}

type InstallationToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateInstallationToken exchanges the app token for an installation token.
func (c *Client) CreateInstallationToken(ctx context.Context, installationID int64) (InstallationToken, error) {
	if installationID <= 0 {
		return InstallationToken{}, fmt.Errorf("installation id is required")
	}
	path := "/app/installations/" + strconv.FormatInt(installationID, 10) + "/access_tokens"

	var t InstallationToken
	if err := c.do(ctx, http.MethodPost, path, nil, &t); err != nil {
		return InstallationToken{}, err
	}
	if t.Token == "" {
		return InstallationToken{}, fmt.Errorf("invalid github installation token response")
	}
	return t, nil
}

// Installation returns a client authenticated as the installation.
func (c *Client) Installation(ctx context.Context, installationID int64) (*Client, error) {
	t, err := c.CreateInstallationToken(ctx, installationID)
	if err != nil {
		return nil, err
	}
	return c.with(t.Token), nil
}
