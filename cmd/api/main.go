package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/bradshjg/prubot/internal/api"
	"github.com/bradshjg/prubot/internal/bot"
	"github.com/bradshjg/prubot/internal/bus"
	"github.com/bradshjg/prubot/internal/bus/natsbus"
	"github.com/bradshjg/prubot/internal/config"
	"github.com/bradshjg/prubot/internal/github"
	"github.com/bradshjg/prubot/internal/token"
	"github.com/bradshjg/prubot/internal/welcome"
)

func main() {
	config.LoadDotenv()
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))
	slog.SetDefault(logger)

	app := bot.New(botOptions(cfg, logger)...)
	if err := app.Configure(cfg.AppFields()); err != nil {
		if cfg.Env != "dev" {
			slog.Error("app configuration invalid", "error", err)
			os.Exit(1)
		}
		slog.Warn("app not configured; deliveries will be rejected until PRUBOT_ID and PRUBOT_KEY are set", "error", err)
	} else if !app.Config().VerifiesSignatures() {
		slog.Warn("webhook signature verification disabled")
	}

	if err := welcome.Register(app); err != nil {
		slog.Error("register handlers failed", "error", err)
		os.Exit(1)
	}
	slog.Info("handlers registered", "count", app.Registry().Len())

	var eventBus bus.Bus
	if cfg.NATSURL != "" {
		b, err := natsbus.Connect(cfg.NATSURL, "prubot-api")
		if err != nil {
			slog.Error("nats connect failed", "error", err)
			os.Exit(1)
		}
		eventBus = b
		defer eventBus.Close()
	}

	server := api.New(cfg, api.Deps{App: app, Bus: eventBus})

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting http server", "addr", cfg.HTTPAddr)
		errCh <- server.Listen(cfg.HTTPAddr)
	}()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		// Fiber returns nil only on clean shutdown; treat any error as fatal.
		slog.Error("http server exited", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := api.Shutdown(ctx, server); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("shutdown complete")
}

func botOptions(cfg config.Config, logger *slog.Logger) []bot.Option {
	clientOpts := []github.Option{github.WithBaseURL(cfg.GitHubAPIURL)}
	if cfg.GitHubRatePerSec > 0 {
		// One limiter for every per-delivery client.
		limiter := rate.NewLimiter(rate.Limit(cfg.GitHubRatePerSec), 2)
		clientOpts = append(clientOpts, github.WithLimiter(limiter))
	}

	opts := []bot.Option{
		bot.WithLogger(logger),
		bot.WithHandlerTimeout(cfg.HandlerTimeout),
		bot.WithClientFactory(func(bearer string) *github.Client {
			return github.NewClient(bearer, clientOpts...)
		}),
	}
	if cfg.TokenCache {
		opts = append(opts, bot.WithMinter(token.NewCache(&token.Minter{})))
	}
	return opts
}
