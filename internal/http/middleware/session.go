package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/diagnosis/sophies-tours/internal/http/response"
	"github.com/diagnosis/sophies-tours/pkg/auth"
	"github.com/diagnosis/sophies-tours/pkg/logger"
)

// CookieName carries the admin session credential.
const CookieName = "auth-token"

type ctxKey string

const CtxClaims ctxKey = "claims"

// SessionValidator checks a raw credential and returns admin claims.
type SessionValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// SetSessionCookie writes the credential as an HttpOnly strict cookie.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookie overwrites the credential with an expired empty value.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// RequireAdminAPI answers 401 JSON when the session cookie is missing or invalid.
func RequireAdminAPI(v SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := authenticate(r, v)
			if !ok {
				response.Unauthorized(w, "authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// RequireAdminPage redirects unauthenticated browsers to /login.
func RequireAdminPage(v SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := authenticate(r, v)
			if !ok {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

func authenticate(r *http.Request, v SessionValidator) (*auth.Claims, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	claims, err := v.Validate(c.Value)
	if err != nil {
		logger.DebugContext(r.Context(), "Session rejected", "error", err)
		return nil, false
	}
	return claims, true
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxClaims, claims)
	return context.WithValue(ctx, logger.UserKey, claims.Email)
}

func Claims(r *http.Request) *auth.Claims {
	v := r.Context().Value(CtxClaims)
	if v == nil {
		return nil
	}
	return v.(*auth.Claims)
}
