// Package auth issues and validates the administrator session credential.
// The credential is stateless: validity is signature plus expiry, and there
// is no server-side revocation.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession covers a missing, malformed, tampered or expired credential.
var ErrInvalidSession = errors.New("invalid session")

type Claims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

type SessionGuard struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionGuard(secret string, ttl time.Duration) *SessionGuard {
	return &SessionGuard{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (g *SessionGuard) TTL() time.Duration { return g.ttl }

// Issue signs a credential for identity that expires after the guard's TTL.
func (g *SessionGuard) Issue(identity string, admin bool) (string, time.Time, error) {
	now := g.now()
	exp := now.Add(g.ttl)
	claims := Claims{
		Email:   identity,
		IsAdmin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, exp, nil
}

func (g *SessionGuard) Validate(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return claims, nil
}
