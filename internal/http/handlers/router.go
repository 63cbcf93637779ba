package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/diagnosis/sophies-tours/internal/http/middleware"
	"github.com/diagnosis/sophies-tours/internal/service"
	mw "github.com/diagnosis/sophies-tours/pkg/middleware"
)

// Deps wires the router. Idempotency and LoginLimiter are optional.
type Deps struct {
	Trips    service.TripService
	Bookings service.BookingService
	Auth     service.AuthService

	SessionTTL     time.Duration
	SecureCookies  bool
	AllowedOrigins []string

	Idempotency    mw.IdempotencyStore
	IdempotencyTTL time.Duration
	LoginLimiter   *middleware.RateLimiter
	Health         map[string]mw.Checker
}

func passthrough(next http.Handler) http.Handler { return next }

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("sophies-tours"))
	r.Use(mw.Logging)
	r.Use(chimw.Recoverer)
	r.Use(mw.Health(d.Health))
	r.Use(mw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Idempotent-Replayed"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	apiGate := middleware.RequireAdminAPI(d.Auth)
	pageGate := middleware.RequireAdminPage(d.Auth)

	submit := passthrough
	if d.Idempotency != nil {
		ttl := d.IdempotencyTTL
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		submit = mw.IdempotencyMiddleware(d.Idempotency, ttl)
	}
	limit := passthrough
	if d.LoginLimiter != nil {
		limit = d.LoginLimiter.Middleware()
	}

	admin := NewAdminHandler(d.Trips, d.Bookings)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/trips", NewTripHandler(d.Trips).Routes(apiGate))
		r.Mount("/bookings", NewBookingHandler(d.Bookings).Routes(apiGate, submit))
		r.Mount("/auth", NewAuthHandler(d.Auth, d.SessionTTL, d.SecureCookies).Routes(limit))
		r.With(apiGate).Mount("/admin", admin.APIRoutes())
	})
	r.With(pageGate).Mount("/admin", admin.PageRoutes())

	return r
}
