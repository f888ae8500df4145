package bot

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	keyOnce sync.Once
	keyPEM  string
	keyErr  error
)

// testKeyPEM returns a PKCS#1 PEM private key shared by the package tests.
func testKeyPEM(t *testing.T) string {
	t.Helper()
	keyOnce.Do(func() {
		var k *rsa.PrivateKey
		k, keyErr = rsa.GenerateKey(rand.Reader, 2048)
		if keyErr != nil {
			return
		}
		keyPEM = string(pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(k),
		}))
	})
	require.NoError(t, keyErr)
	return keyPEM
}

func testConfig(t *testing.T, secret string) AppConfig {
	t.Helper()
	cfg, err := NewAppConfig(1, testKeyPEM(t), secret)
	require.NoError(t, err)
	return cfg
}
