package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diagnosis/sophies-tours/internal/http/handlers"
	"github.com/diagnosis/sophies-tours/internal/http/middleware"
	"github.com/diagnosis/sophies-tours/internal/notify"
	"github.com/diagnosis/sophies-tours/internal/platform/mailer"
	"github.com/diagnosis/sophies-tours/internal/repo"
	"github.com/diagnosis/sophies-tours/internal/repo/memory"
	"github.com/diagnosis/sophies-tours/internal/repo/postgres"
	"github.com/diagnosis/sophies-tours/internal/service"
	"github.com/diagnosis/sophies-tours/migrations"
	"github.com/diagnosis/sophies-tours/pkg/auth"
	"github.com/diagnosis/sophies-tours/pkg/cache"
	"github.com/diagnosis/sophies-tours/pkg/config"
	"github.com/diagnosis/sophies-tours/pkg/database"
	"github.com/diagnosis/sophies-tours/pkg/events"
	"github.com/diagnosis/sophies-tours/pkg/logger"
	mw "github.com/diagnosis/sophies-tours/pkg/middleware"
)

func main() {
	if err := run(); err != nil {
		logger.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logCloser := logger.Setup(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	health := map[string]mw.Checker{}

	// Storage
	var (
		trips    repo.TripRepo
		bookings repo.BookingRepo
	)
	if cfg.Database.URL != "" {
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool, migrations.FS); err != nil {
			return err
		}
		trips = postgres.NewTripRepo(pool)
		bookings = postgres.NewBookingRepo(pool)
		health["postgres"] = pool.Ping
		logger.Info("Using Postgres store")
	} else {
		trips = memory.NewTripStore(memory.SeedTrips()...)
		bookings = memory.NewBookingStore()
		logger.Warn("DATABASE_URL not set, using in-memory store")
	}

	// Redis backs idempotency replay and login throttling
	var (
		idem    mw.IdempotencyStore
		limiter *middleware.RateLimiter
	)
	if cfg.Redis.URL != "" {
		store, err := cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer store.Close()
		idem = store
		limiter = middleware.NewRateLimiter(store, middleware.RateLimitConfig{
			Requests: cfg.Auth.LoginRateLimit,
			Window:   cfg.Auth.LoginRateWindow,
		})
		health["redis"] = store.Ping
	} else {
		logger.Warn("REDIS_URL not set, idempotency and login rate limiting disabled")
	}

	// Events
	var eventBus events.Publisher = events.NoopBus{}
	if cfg.NATS.URL != "" {
		bus, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			return err
		}
		defer bus.Close()
		eventBus = bus
	}

	mail := mailer.New(cfg.Email)
	logger.Info("Mail transport selected", "transport", mail.Name())
	dispatcher := notify.NewDispatcher(mail, cfg.Notify.AdminEmail, cfg.Notify.Timeout)

	hash, err := service.AdminPasswordHash(cfg.Auth, nil)
	if err != nil {
		return err
	}
	guard := auth.NewSessionGuard(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)

	router := handlers.NewRouter(handlers.Deps{
		Trips:          service.NewTripService(trips, eventBus),
		Bookings:       service.NewBookingService(trips, bookings, dispatcher, eventBus, nil),
		Auth:           service.NewAuthService(guard, cfg.Auth.AdminEmail, hash),
		SessionTTL:     guard.TTL(),
		SecureCookies:  cfg.Production(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Idempotency:    idem,
		LoginLimiter:   limiter,
		Health:         health,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting sophies-tours API", "port", cfg.Server.Port, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down sophies-tours API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	if err := dispatcher.Wait(shutdownCtx); err != nil {
		logger.Warn("Notifications still in flight at shutdown", "error", err)
	}
	return nil
}
