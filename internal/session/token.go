package session

import (
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

var (
	ErrInvalidCookie = errors.New("invalid session cookie")
	ErrExpiredCookie = errors.New("session cookie has expired")
)

// Sealer wraps session tokens in PASETO v4.local so the cookie cannot be
// forged or altered. Uses XChaCha20-Poly1305 under the hood.
type Sealer struct {
	symmetricKey paseto.V4SymmetricKey
}

func NewSealer(symmetricKey []byte) (*Sealer, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("symmetric key must be exactly 32 bytes, got %d", len(symmetricKey))
	}

	key, err := paseto.V4SymmetricKeyFromBytes(symmetricKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	return &Sealer{symmetricKey: key}, nil
}

// Seal encrypts the session token together with its expiry.
func (s *Sealer) Seal(token string, issuedAt, expiresAt time.Time) string {
	t := paseto.NewToken()
	t.SetIssuedAt(issuedAt)
	t.SetExpiration(expiresAt)
	t.SetString("sid", token)

	return t.V4Encrypt(s.symmetricKey, nil)
}

// Open decrypts a cookie value and returns the session token it carries.
// Expiry is checked against now; an expired cookie still yields its token
// alongside ErrExpiredCookie.
func (s *Sealer) Open(value string, now time.Time) (string, error) {
	parser := paseto.NewParserWithoutExpiryCheck()

	t, err := parser.ParseV4Local(s.symmetricKey, value, nil)
	if err != nil {
		return "", ErrInvalidCookie
	}

	token, err := t.GetString("sid")
	if err != nil || token == "" {
		return "", ErrInvalidCookie
	}

	expiresAt, err := t.GetExpiration()
	if err != nil {
		return "", ErrInvalidCookie
	}
	if !now.Before(expiresAt) {
		return token, ErrExpiredCookie
	}

	return token, nil
}
