// Package token mints GitHub App bearer tokens.
package token

import (
	"crypto/rsa"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the lifetime of a minted token. GitHub rejects app tokens valid for
// longer than ten minutes.
const TTL = 600 * time.Second

type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Minter signs app tokens with RS256. The zero value is ready to use.
type Minter struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

func (m *Minter) Mint(appID int64, key *rsa.PrivateKey) (Token, error) {
	if appID <= 0 {
		return Token{}, fmt.Errorf("app id is required")
	}
	if key == nil {
		return Token{}, fmt.Errorf("app private key is required")
	}

	now := time.Now
	if m != nil && m.Now != nil {
		now = m.Now
	}
	// JWT timestamps have second precision.
	iat := now().UTC().Truncate(time.Second)
	exp := iat.Add(TTL)

	claims := jwt.RegisteredClaims{
		Issuer:    strconv.FormatInt(appID, 10),
		IssuedAt:  jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return Token{}, fmt.Errorf("sign app token: %w", err)
	}
	return Token{Value: signed, IssuedAt: iat, ExpiresAt: exp}, nil
}

// Cache reuses a minted token until it is within Margin of expiring.
type Cache struct {
	Minter *Minter
	// Margin defaults to one minute.
	Margin time.Duration

	mu    sync.Mutex
	appID int64
	key   *rsa.PrivateKey
	tok   Token
}

func NewCache(m *Minter) *Cache {
	if m == nil {
		m = &Minter{}
	}
	return &Cache{Minter: m, Margin: time.Minute}
}

func (c *Cache) Mint(appID int64, key *rsa.PrivateKey) (Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now
	if c.Minter != nil && c.Minter.Now != nil {
		now = c.Minter.Now
	}
	margin := c.Margin
	if margin <= 0 {
		margin = time.Minute
	}

	if c.tok.Value != "" && c.appID == appID && c.key == key && now().Add(margin).Before(c.tok.ExpiresAt) {
		return c.tok, nil
	}

	tok, err := c.Minter.Mint(appID, key)
	if err != nil {
		return Token{}, err
	}
	c.appID, c.key, c.tok = appID, key, tok
	return tok, nil
}
