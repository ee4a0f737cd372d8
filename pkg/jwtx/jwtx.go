// Package jwtx signs and verifies the short-lived HS256 bearer tokens that
// gate the admin API (invite minting, listing, revocation). These are
// service-to-service credentials derived from a shared secret; end-user
// sessions are opaque cookie tokens and never go through here.
package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAdminTokenTTL bounds how long a minted admin token stays valid.
const DefaultAdminTokenTTL = 15 * time.Minute

var (
	ErrInvalidToken = errors.New("jwtx: invalid token")
	ErrNoSecret     = errors.New("jwtx: signing secret not configured")
)

// Claims carried by an admin token.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Signer mints and verifies HS256 admin tokens with a shared secret.
type Signer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Sign mints a token for the given subject (the admin's identity).
func (s *Signer) Sign(subject, role string) (string, error) {
	if len(s.Secret) == 0 {
		return "", ErrNoSecret
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultAdminTokenTTL
	}

	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: signing failed: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, enforcing the HS256 method, the
// issuer, and expiry. Returns the claims on success.
func (s *Signer) Verify(raw string) (Claims, error) {
	if len(s.Secret) == 0 {
		return Claims{}, ErrNoSecret
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return s.Secret, nil
		},
		jwt.WithIssuer(s.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}
