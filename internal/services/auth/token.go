package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/transferhub/transferhub-go/internal/dependencies/clock"
)

// TokenIssuer mints and verifies signed bearer tokens. Tokens are HS256
// JWTs carrying the username as subject and a fixed expiry window; there is
// no revocation, a token stays valid until it expires.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

// NewTokenIssuer creates a TokenIssuer with a process-wide immutable secret
func NewTokenIssuer(secret []byte, ttl time.Duration, clk clock.Clock) *TokenIssuer {
	return &TokenIssuer{
		secret: secret,
		ttl:    ttl,
		clock:  clk,
	}
}

// Mint issues a token asserting the given subject until now+ttl
func (i *TokenIssuer) Mint(subject string) (string, error) {
	now := i.clock.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	})
	return token.SignedString(i.secret)
}

// Verify checks signature and expiry and returns the embedded subject.
// Malformed, expired, or tampered tokens all yield ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.clock.Now),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
