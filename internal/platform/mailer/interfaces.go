// Package mailer holds the outbound mail transports. Exactly one is active,
// chosen from configuration by New.
package mailer

import (
	"context"
	"errors"

	"github.com/diagnosis/sophies-tours/pkg/config"
)

// ErrNotConfigured is returned by the fallback transport.
var ErrNotConfigured = errors.New("email service not configured")

type Message struct {
	ToEmail string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

type Service interface {
	// Send delivers m and returns the provider message id when one exists.
	Send(ctx context.Context, m Message) (string, error)
	Name() string
}

// New picks MailerSend, then SMTP, then the dev log sink, then Unconfigured.
func New(cfg config.EmailConfig) Service {
	switch {
	case cfg.MailerSendKey != "" && cfg.SMTPFrom != "":
		return NewMailerSend(cfg.MailerSendKey, cfg.FromName, cfg.SMTPFrom)
	case cfg.SMTPUser != "" && cfg.SMTPPass != "":
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.FromName, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass)
	case cfg.DevMode:
		return NewDevMailer()
	default:
		return Unconfigured{}
	}
}

type Unconfigured struct{}

func (Unconfigured) Send(context.Context, Message) (string, error) { return "", ErrNotConfigured }

func (Unconfigured) Name() string { return "unconfigured" }
