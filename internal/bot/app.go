package bot

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bradshjg/prubot/internal/github"
	"github.com/bradshjg/prubot/internal/token"
)

// App owns the configuration, the handler registry and the dispatcher for one
// GitHub App. Configure and Register are meant to be called before serving.
type App struct {
	config     AppConfig
	registry   *Registry
	dispatcher *Dispatcher
}

type Option func(*Dispatcher)

// WithMinter replaces the default token minter.
func WithMinter(m Minter) Option {
	return func(d *Dispatcher) { d.minter = m }
}

// WithClientFactory replaces the default GitHub client constructor.
func WithClientFactory(f ClientFactory) Option {
	return func(d *Dispatcher) { d.newClient = f }
}

// WithHandlerTimeout sets a deadline on the context passed to each handler.
// Zero means no deadline.
func WithHandlerTimeout(t time.Duration) Option {
	return func(d *Dispatcher) { d.timeout = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

func New(opts ...Option) *App {
	a := &App{registry: NewRegistry()}
	a.dispatcher = &Dispatcher{
		config:   &a.config,
		registry: a.registry,
		minter:   &token.Minter{},
		newClient: func(bearer string) *github.Client {
			return github.NewClient(bearer)
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a.dispatcher)
	}
	return a
}

// Configure validates and installs a full configuration set.
func (a *App) Configure(fields map[string]string) error {
	cfg, err := ParseAppConfig(fields)
	if err != nil {
		return err
	}
	a.config = cfg
	return nil
}

// SetConfig installs an already validated configuration.
func (a *App) SetConfig(cfg AppConfig) {
	a.config = cfg
}

func (a *App) Config() AppConfig {
	return a.config
}

func (a *App) IsConfigured() bool {
	return a.config.IsConfigured()
}

// Register adds a named callback for event. An empty action fires the
// callback for every delivery of event.
func (a *App) Register(event, action, name string, cb Callback) error {
	if strings.TrimSpace(event) == "" {
		return fmt.Errorf("register %q: event is required", name)
	}
	if cb == nil {
		return fmt.Errorf("register %q: callback is required", name)
	}
	a.registry.Add(event, action, NewHandler(name, cb))
	return nil
}

// On registers an event-wide callback.
func (a *App) On(event, name string, cb Callback) error {
	return a.Register(event, "", name, cb)
}

func (a *App) Registry() *Registry {
	return a.registry
}

func (a *App) Dispatcher() *Dispatcher {
	return a.dispatcher
}
