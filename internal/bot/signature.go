package bot

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

const (
	SignatureHeader = "X-Hub-Signature-256"
	signaturePrefix = "sha256="
)

// Sign returns the X-Hub-Signature-256 value GitHub sends for body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// verifySignature compares header against the expected signature of the raw
// body in constant time.
func verifySignature(secret string, body []byte, header string, present bool) bool {
	if !present {
		return false
	}
	want := Sign(secret, body)
	return subtle.ConstantTimeCompare([]byte(header), []byte(want)) == 1
}
