package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env      string
	HTTPAddr string
	Log      string

	NATSURL string

	// GitHub App identity. Handed to bot.ParseAppConfig via AppFields.
	AppID  string
	AppKey string
	// Empty or "disabled" turns off X-Hub-Signature-256 verification.
	AppSecret string

	// Reuse a minted app token until shortly before it expires.
	TokenCache bool
	// Deadline applied to the context each handler receives. Zero means none.
	HandlerTimeout time.Duration

	GitHubAPIURL string
	// Outbound request rate shared by all handlers. Zero disables limiting.
	GitHubRatePerSec float64
}

func Load() Config {
	env := getEnv("APP_ENV", "dev")
	logLevel := getEnv("LOG_LEVEL", "info")

	// Prefer HTTP_ADDR if provided, otherwise build it from PORT.
	httpAddr := os.Getenv("HTTP_ADDR")
	if strings.TrimSpace(httpAddr) == "" {
		port := getEnv("PORT", "8080")
		httpAddr = ":" + port
	}

	return Config{
		Env:      env,
		HTTPAddr: httpAddr,
		Log:      logLevel,

		NATSURL: getEnv("NATS_URL", ""),

		AppID:     getEnv("PRUBOT_ID", ""),
		AppKey:    unescapeNewlines(getEnv("PRUBOT_KEY", "")),
		AppSecret: getEnv("PRUBOT_SECRET", ""),

		TokenCache:     getEnvBool("PRUBOT_TOKEN_CACHE", false),
		HandlerTimeout: getEnvDuration("PRUBOT_HANDLER_TIMEOUT", 0),

		GitHubAPIURL:     getEnv("GITHUB_API_URL", "https://api.github.com"),
		GitHubRatePerSec: getEnvFloat("GITHUB_RATE_PER_SEC", 4),
	}
}

// AppFields returns the app identity as the id/key/secret field set. Unset
// values are omitted.
func (c Config) AppFields() map[string]string {
	out := map[string]string{}
	if v := strings.TrimSpace(c.AppID); v != "" {
		out["id"] = v
	}
	if strings.TrimSpace(c.AppKey) != "" {
		out["key"] = c.AppKey
	}
	if v := strings.TrimSpace(c.AppSecret); v != "" {
		out["secret"] = v
	}
	return out
}

func (c Config) LogLevel() slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(c.Log)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		// Allow numeric levels for easy tweaking (-4 debug, 0 info, 4 warn, 8 error).
		if n, err := strconv.Atoi(c.Log); err == nil {
			return slog.Level(n)
		}
		return slog.LevelInfo
	}
}

// unescapeNewlines lets a PEM key be passed on a single line with literal \n.
func unescapeNewlines(s string) string {
	if strings.Contains(s, "\n") {
		return s
	}
	return strings.ReplaceAll(s, `\n`, "\n")
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return fallback
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func getEnvFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return fallback
	}
	return f
}
