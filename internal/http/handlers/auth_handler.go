package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/sophies-tours/internal/http/middleware"
	"github.com/diagnosis/sophies-tours/internal/http/response"
	"github.com/diagnosis/sophies-tours/internal/service"
)

type AuthHandler struct {
	Auth          service.AuthService
	SessionTTL    time.Duration
	SecureCookies bool
}

func NewAuthHandler(auth service.AuthService, ttl time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{Auth: auth, SessionTTL: ttl, SecureCookies: secure}
}

// Routes mounts login and logout. limit throttles login attempts.
func (h *AuthHandler) Routes(limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(limit).Post("/login", h.login)
	r.Delete("/login", h.logout)
	return r
}

type loginResponse struct {
	Success   bool      `json:"success"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &in) {
		return
	}
	sess, err := h.Auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		response.FromError(r.Context(), w, err)
		return
	}
	middleware.SetSessionCookie(w, sess.Token, h.SessionTTL, h.SecureCookies)
	response.WriteJSON(w, http.StatusOK, loginResponse{Success: true, Email: sess.Email, ExpiresAt: sess.ExpiresAt})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, h.SecureCookies)
	response.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
