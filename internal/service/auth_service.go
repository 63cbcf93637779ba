package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/diagnosis/sophies-tours/internal/domain"
	"github.com/diagnosis/sophies-tours/internal/utils"
	"github.com/diagnosis/sophies-tours/pkg/auth"
	"github.com/diagnosis/sophies-tours/pkg/config"
	"github.com/diagnosis/sophies-tours/pkg/logger"
	"github.com/diagnosis/sophies-tours/pkg/metrics"
)

type Session struct {
	Token     string
	ExpiresAt time.Time
	Email     string
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (Session, error)
	Validate(token string) (*auth.Claims, error)
}

type authService struct {
	guard     *auth.SessionGuard
	email     string
	adminHash string
}

func NewAuthService(guard *auth.SessionGuard, adminEmail, adminHash string) AuthService {
	return &authService{guard: guard, email: utils.NormalizeEmail(adminEmail), adminHash: adminHash}
}

// AdminPasswordHash returns the configured argon2id hash, hashing the
// plaintext fallback when none is set.
func AdminPasswordHash(cfg config.AuthConfig, params *argon2id.Params) (string, error) {
	if cfg.AdminPasswordHash != "" {
		return cfg.AdminPasswordHash, nil
	}
	if params == nil {
		params = argon2id.DefaultParams
	}
	hash, err := argon2id.CreateHash(cfg.AdminPassword, params)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}
	return hash, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (Session, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return Session{}, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	// hash is compared even when the email is wrong
	match, err := argon2id.ComparePasswordAndHash(password, s.adminHash)
	if err != nil {
		logger.ErrorContext(ctx, "Admin hash comparison failed", "error", err)
		return Session{}, fmt.Errorf("compare password: %w", err)
	}
	if !match || email != s.email {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		logger.WarnContext(ctx, "Admin login rejected", "email", email)
		return Session{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	token, exp, err := s.guard.Issue(email, true)
	if err != nil {
		return Session{}, err
	}
	metrics.LoginAttempts.WithLabelValues("accepted").Inc()
	logger.InfoContext(ctx, "Admin logged in", "email", email)
	return Session{Token: token, ExpiresAt: exp, Email: email}, nil
}

func (s *authService) Validate(token string) (*auth.Claims, error) {
	claims, err := s.guard.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !claims.IsAdmin {
		return nil, fmt.Errorf("%w: not an administrator", domain.ErrUnauthorized)
	}
	return claims, nil
}
