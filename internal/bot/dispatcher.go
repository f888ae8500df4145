package bot

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bradshjg/prubot/internal/github"
	"github.com/bradshjg/prubot/internal/token"
)

const (
	EventHeader    = "X-GitHub-Event"
	DeliveryHeader = "X-GitHub-Delivery"

	jsonContentType = "application/json"
)

// Header is an optional-returning header lookup.
type Header interface {
	Lookup(name string) (string, bool)
}

// HTTPHeader adapts net/http headers.
type HTTPHeader http.Header

func (h HTTPHeader) Lookup(name string) (string, bool) {
	v := http.Header(h).Values(name)
	if len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// Request is one inbound webhook delivery.
type Request struct {
	Header Header
	Body   []byte
	// DeliveryID correlates log lines. Defaults to the X-GitHub-Delivery header.
	DeliveryID string
}

// Minter mints app bearer tokens.
type Minter interface {
	Mint(appID int64, key *rsa.PrivateKey) (token.Token, error)
}

// ClientFactory builds the outbound API client handed to handlers.
type ClientFactory func(bearer string) *github.Client

// Dispatcher validates deliveries and runs the handlers registered for them.
type Dispatcher struct {
	config    *AppConfig
	registry  *Registry
	minter    Minter
	newClient ClientFactory
	timeout   time.Duration
	logger    *slog.Logger
}

// Dispatch runs the pipeline for one delivery. Validation and handler
// failures are returned as errors and no partial result is produced.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Result, error) {
	cfg := *d.config
	if !cfg.IsConfigured() {
		return Result{}, ErrNotConfigured
	}

	event, payload, err := d.validate(cfg, req)
	if err != nil {
		return Result{}, err
	}
	action := payloadAction(payload)

	handlers := d.registry.Resolve(event, action)

	res := Result{Event: event, matched: len(handlers) > 0}
	if action != "" {
		res.Action = &action
	}

	delivery := req.DeliveryID
	if delivery == "" {
		delivery, _ = lookup(req.Header, DeliveryHeader)
	}
	log := d.logger.With("delivery_id", delivery, "event", event, "action", action)

	if len(handlers) == 0 {
		// Unmatched deliveries skip minting; no handler would see the client.
		log.Info("no matching handlers")
		return res, nil
	}

	tok, err := d.minter.Mint(cfg.ID, cfg.SigningKey())
	if err != nil {
		return Result{}, fmt.Errorf("mint app token: %w", err)
	}
	client := d.newClient(tok.Value)

	for _, h := range handlers {
		v, err := d.run(ctx, h, event, payload, client)
		if err != nil {
			log.Error("handler failed", "handler", h.Name, "error", err)
			return Result{}, fmt.Errorf("handler %q: %w", h.Name, err)
		}
		res.Results.Set(h.Name, v)
	}

	log.Info("delivery handled", "handlers", res.Results.Names())
	return res, nil
}

func (d *Dispatcher) run(ctx context.Context, h *Handler, event string, payload map[string]any, client *github.Client) (any, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	return h.Run(ctx, event, payload, client)
}

func (d *Dispatcher) validate(cfg AppConfig, req Request) (string, map[string]any, error) {
	ct, _ := lookup(req.Header, "Content-Type")
	if ct != jsonContentType {
		return "", nil, ErrInvalidContentType
	}

	payload, err := decodePayload(req.Body)
	if err != nil {
		return "", nil, err
	}

	if secret, ok := cfg.Secret(); ok {
		sig, present := lookup(req.Header, SignatureHeader)
		if !verifySignature(secret, req.Body, sig, present) {
			return "", nil, ErrSignatureMismatch
		}
	}

	event, _ := lookup(req.Header, EventHeader)
	event = strings.TrimSpace(event)
	if event == "" {
		return "", nil, ErrMissingEventHeader
	}

	return event, payload, nil
}

func decodePayload(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if payload == nil {
		return nil, ErrInvalidBody
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after JSON object", ErrInvalidBody)
	}
	return payload, nil
}

func lookup(h Header, name string) (string, bool) {
	if h == nil {
		return "", false
	}
	return h.Lookup(name)
}
