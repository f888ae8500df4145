package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotenv loads environment variables from a local .env file if present.
//
// It does NOT override already-exported environment variables.
func LoadDotenv() {
	// Allow an explicit env file path (or comma-separated list).
	if v := strings.TrimSpace(os.Getenv("ENV_FILE")); v != "" {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		_ = godotenv.Load(parts...)
		return
	}

	candidates := []string{".env"}
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(wd, ".env"))
		// Started from cmd/api.
		candidates = append(candidates, filepath.Join(wd, "..", "..", ".env"))
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}
