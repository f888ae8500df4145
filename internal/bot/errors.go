package bot

import (
	"errors"
	"fmt"
)

// Validation failures. Each aborts a delivery before any handler is resolved.
var (
	ErrInvalidContentType = errors.New("invalid Content-Type HTTP header (must be application/json)")
	ErrInvalidBody        = errors.New("invalid HTTP body (must be a JSON object)")
	ErrSignatureMismatch  = errors.New("webhook signature mismatch")
	ErrMissingEventHeader = errors.New("missing GitHub event HTTP header")
)

// ErrMissingRepoData is returned by the repository accessors when the payload
// has no repository object.
var ErrMissingRepoData = errors.New("repo is not supported for the event")

// ErrNotConfigured is returned when a delivery arrives before the app has an
// id and private key.
var ErrNotConfigured = errors.New("app is not configured")

// ConfigError reports an invalid or missing configuration key.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return "config: " + e.Reason
	}
	return fmt.Sprintf("config %q: %s", e.Key, e.Reason)
}
