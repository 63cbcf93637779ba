package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionGuard_IssueValidate(t *testing.T) {
	g := NewSessionGuard("test-secret", 24*time.Hour)

	tok, exp, err := g.Issue("admin@sophies-tours.com", true)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)

	claims, err := g.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin@sophies-tours.com", claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestSessionGuard_RejectsExpired(t *testing.T) {
	g := NewSessionGuard("test-secret", time.Hour)
	tok, _, err := g.Issue("admin@sophies-tours.com", true)
	require.NoError(t, err)

	g.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = g.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionGuard_RejectsWrongSecret(t *testing.T) {
	tok, _, err := NewSessionGuard("one", time.Hour).Issue("a@b.co", true)
	require.NoError(t, err)

	_, err = NewSessionGuard("two", time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionGuard_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		Email:   "a@b.co",
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewSessionGuard("test-secret", time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionGuard_RejectsMissingExpiry(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: "a@b.co"}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewSessionGuard("test-secret", time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = NewSessionGuard("test-secret", time.Hour).Validate("")
	assert.ErrorIs(t, err, ErrInvalidSession)
}
