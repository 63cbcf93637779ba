package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/diagnosis/sophies-tours/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
	Close() error
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url,
		nats.Name("sophies-tours-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	logger.DebugContext(ctx, "Publishing event", "subject", subject, "bytes", len(payload))
	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Close() error {
	return n.conn.Drain()
}

// NoopBus stands in when NATS_URL is not configured.
type NoopBus struct{}

func (NoopBus) Publish(ctx context.Context, subject string, _ any) error {
	logger.DebugContext(ctx, "Event dropped, no bus configured", "subject", subject)
	return nil
}

func (NoopBus) Close() error { return nil }

const (
	BookingCreated = "booking.created"
	BookingUpdated = "booking.updated"

	TripCreated = "trip.created"
	TripUpdated = "trip.updated"
	TripDeleted = "trip.deleted"
)

type BookingCreatedEvent struct {
	BookingID        string    `json:"booking_id"`
	TripID           string    `json:"trip_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	Participants     int       `json:"participants"`
	TotalPrice       float64   `json:"total_price"`
	IncludesZinzino  bool      `json:"includes_zinzino"`
	CreatedAt        time.Time `json:"created_at"`
}

type BookingUpdatedEvent struct {
	BookingID     string    `json:"booking_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Changes       []string  `json:"changes"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type TripEvent struct {
	TripID    string    `json:"trip_id"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
