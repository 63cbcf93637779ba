package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/diagnosis/sophies-tours/internal/http/response"
	"github.com/diagnosis/sophies-tours/pkg/logger"
)

// Counter increments a windowed counter and returns the new count.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimitConfig defines rate limiting parameters
type RateLimitConfig struct {
	Requests int                            // Max requests per window
	Window   time.Duration                  // Time window duration
	KeyFunc  func(r *http.Request) []string // Function to generate rate limit keys
	SkipFunc func(r *http.Request) bool     // Function to skip rate limiting
}

// RateLimiter provides rate limiting functionality
type RateLimiter struct {
	counter Counter
	config  RateLimitConfig
}

func NewRateLimiter(counter Counter, config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = ClientIPKeyFunc
	}
	return &RateLimiter{counter: counter, config: config}
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rl.config.SkipFunc != nil && rl.config.SkipFunc(r) {
				next.ServeHTTP(w, r)
				return
			}
			for _, key := range rl.config.KeyFunc(r) {
				if !rl.allow(r.Context(), key) {
					logger.WarnContext(r.Context(), "Rate limit exceeded", "path", r.URL.Path)
					response.RateLimit(w, "Too many requests. Try again later.")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	hashedKey := fmt.Sprintf("ratelimit:%x", sha256.Sum256([]byte(key)))
	count, err := rl.counter.Hit(ctx, hashedKey, rl.config.Window)
	if err != nil {
		// fail open
		logger.WarnContext(ctx, "Rate limit check failed", "error", err)
		return true
	}
	return count <= int64(rl.config.Requests)
}

// ClientIPKeyFunc keys requests by client IP and path.
func ClientIPKeyFunc(r *http.Request) []string {
	ip := getClientIP(r)
	if ip == "" {
		return nil
	}
	return []string{"ip:" + ip + ":" + r.URL.Path}
}

// getClientIP extracts the real client IP from the request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
