package mailer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/diagnosis/sophies-tours/pkg/logger"
)

// DevMailer logs messages instead of delivering them.
type DevMailer struct{}

func NewDevMailer() *DevMailer { return &DevMailer{} }

func (d *DevMailer) Name() string { return "dev" }

func (d *DevMailer) Send(ctx context.Context, m Message) (string, error) {
	if m.ToEmail == "" {
		return "", fmt.Errorf("empty recipient email")
	}
	id := "dev-" + uuid.NewString()
	logger.InfoContext(ctx, "[DEV MAIL]",
		"message_id", id,
		"to", m.ToEmail,
		"subject", m.Subject,
		"text", m.Text,
	)
	return id, nil
}
