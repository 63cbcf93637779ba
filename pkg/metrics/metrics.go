// Package metrics holds the Prometheus collectors for the booking lifecycle
// and the HTTP layer. Collectors register with the default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BookingsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_submitted_total",
			Help: "Booking submissions by outcome",
		},
		[]string{"outcome"},
	)

	SeatsReserved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_seats_reserved_total",
			Help: "Participants admitted across all bookings",
		},
	)

	CodeCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_code_collisions_total",
			Help: "Confirmation codes regenerated after a collision",
		},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notification dispatches by kind and result",
		},
		[]string{"kind", "result"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_login_attempts_total",
			Help: "Admin login attempts by result",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}
