package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.github.com"

// Client calls the GitHub REST API with a bearer token. A client built from
// an app token can only reach app endpoints; use Installation for repository
// calls.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
	Limiter   *rate.Limiter

	token string
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if strings.TrimSpace(u) != "" {
			c.BaseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.HTTP = h }
}

// WithLimiter makes every request wait on l. Share one limiter across the
// per-delivery clients of a process.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.Limiter = l }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.UserAgent = ua }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		HTTP:      &http.Client{Timeout: 10 * time.Second},
		BaseURL:   DefaultBaseURL,
		UserAgent: "prubot",
		token:     token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token the client authenticates with.
func (c *Client) Token() string {
	return c.token
}

// with returns a copy of c authenticated with token.
func (c *Client) with(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github %s %s failed: status %d", e.Method, e.Path, e.StatusCode)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
