package bot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppConfig(t *testing.T) {
	key := testKeyPEM(t)

	tests := []struct {
		name       string
		fields     map[string]string
		wantKey    string
		wantVerify bool
	}{
		{name: "all keys", fields: map[string]string{"id": "1", "key": key, "secret": "s3cret"}, wantVerify: true},
		{name: "secret omitted", fields: map[string]string{"id": "1", "key": key}},
		{name: "secret disabled", fields: map[string]string{"id": "1", "key": key, "secret": "DISABLED"}},
		{name: "unknown key", fields: map[string]string{"id": "1", "key": key, "token": "x"}, wantKey: "token"},
		{name: "missing id", fields: map[string]string{"key": key}, wantKey: "id"},
		{name: "missing key", fields: map[string]string{"id": "1"}, wantKey: "key"},
		{name: "non numeric id", fields: map[string]string{"id": "abc", "key": key}, wantKey: "id"},
		{name: "zero id", fields: map[string]string{"id": "0", "key": key}, wantKey: "id"},
		{name: "bad pem", fields: map[string]string{"id": "1", "key": "not a key"}, wantKey: "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseAppConfig(tt.fields)
			if tt.wantKey != "" {
				var cerr *ConfigError
				require.True(t, errors.As(err, &cerr), "expected ConfigError, got %v", err)
				assert.Equal(t, tt.wantKey, cerr.Key)
				assert.False(t, cfg.IsConfigured())
				return
			}
			require.NoError(t, err)
			assert.True(t, cfg.IsConfigured())
			assert.Equal(t, int64(1), cfg.ID)
			assert.Equal(t, tt.wantVerify, cfg.VerifiesSignatures())
		})
	}
}

func TestAppConfigZeroValueIsUnconfigured(t *testing.T) {
	var cfg AppConfig
	assert.False(t, cfg.IsConfigured())
	assert.False(t, cfg.VerifiesSignatures())
	assert.Nil(t, cfg.SigningKey())
}

func TestAppConfigure(t *testing.T) {
	app := New()
	assert.False(t, app.IsConfigured())

	require.NoError(t, app.Configure(map[string]string{"id": "42", "key": testKeyPEM(t), "secret": "s"}))
	assert.True(t, app.IsConfigured())
	assert.Equal(t, int64(42), app.Config().ID)

	// A rejected reconfiguration leaves the previous config in place.
	require.Error(t, app.Configure(map[string]string{"id": "7"}))
	assert.Equal(t, int64(42), app.Config().ID)
	secret, ok := app.Config().Secret()
	assert.True(t, ok)
	assert.Equal(t, "s", secret)
}
