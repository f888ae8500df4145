package bot

import (
	"crypto/rsa"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Keys accepted by ParseAppConfig.
const (
	KeyID     = "id"
	KeyKey    = "key"
	KeySecret = "secret"
)

// SecretDisabled is the explicit opt-out value for webhook signature checks.
const SecretDisabled = "disabled"

// AppConfig identifies the GitHub App. The zero value is unconfigured.
type AppConfig struct {
	ID         int64
	PrivateKey string

	secret string
	key    *rsa.PrivateKey
}

// NewAppConfig validates the app id and PEM private key. An empty secret or
// SecretDisabled turns signature verification off.
func NewAppConfig(id int64, privateKey, secret string) (AppConfig, error) {
	if id <= 0 {
		return AppConfig{}, &ConfigError{Key: KeyID, Reason: "must be a positive integer"}
	}
	if strings.TrimSpace(privateKey) == "" {
		return AppConfig{}, &ConfigError{Key: KeyKey, Reason: "is required"}
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKey))
	if err != nil {
		return AppConfig{}, &ConfigError{Key: KeyKey, Reason: fmt.Sprintf("invalid RSA private key: %v", err)}
	}

	secret = strings.TrimSpace(secret)
	if strings.EqualFold(secret, SecretDisabled) {
		secret = ""
	}

	return AppConfig{
		ID:         id,
		PrivateKey: privateKey,
		secret:     secret,
		key:        key,
	}, nil
}

// ParseAppConfig builds an AppConfig from string fields, as produced by an
// env or dotenv loader. Only id, key and secret are accepted.
func ParseAppConfig(fields map[string]string) (AppConfig, error) {
	var unknown []string
	for k := range fields {
		switch k {
		case KeyID, KeyKey, KeySecret:
		default:
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return AppConfig{}, &ConfigError{
			Key:    unknown[0],
			Reason: fmt.Sprintf("unknown key (valid keys are %s, %s, %s)", KeyID, KeyKey, KeySecret),
		}
	}

	rawID := strings.TrimSpace(fields[KeyID])
	if rawID == "" {
		return AppConfig{}, &ConfigError{Key: KeyID, Reason: "is required"}
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return AppConfig{}, &ConfigError{Key: KeyID, Reason: "must be a positive integer"}
	}

	return NewAppConfig(id, fields[KeyKey], fields[KeySecret])
}

// IsConfigured reports whether the id and private key are both usable.
func (c AppConfig) IsConfigured() bool {
	return c.ID > 0 && c.key != nil
}

// VerifiesSignatures reports whether deliveries must carry a valid
// X-Hub-Signature-256 header.
func (c AppConfig) VerifiesSignatures() bool {
	return c.secret != ""
}

// Secret returns the webhook secret and whether verification is enabled.
func (c AppConfig) Secret() (string, bool) {
	return c.secret, c.secret != ""
}

// SigningKey returns the parsed app private key.
func (c AppConfig) SigningKey() *rsa.PrivateKey {
	return c.key
}
