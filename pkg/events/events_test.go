package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopBus(t *testing.T) {
	var p Publisher = NoopBus{}
	assert.NoError(t, p.Publish(context.Background(), BookingCreated, BookingCreatedEvent{BookingID: "b1"}))
	assert.NoError(t, p.Close())
}

func TestNATSEventBus_ConnectFailure(t *testing.T) {
	_, err := NewNATSEventBus("nats://127.0.0.1:1")
	assert.Error(t, err)
}
