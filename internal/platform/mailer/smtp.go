package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTPMailer(host string, port int, fromName, from, user, pass string) *SMTPMailer {
	host = strings.TrimSpace(host)
	d := gomail.NewDialer(host, port, strings.TrimSpace(user), strings.TrimSpace(pass))
	d.TLSConfig = &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}
	return &SMTPMailer{dialer: d, from: strings.TrimSpace(from), fromName: fromName}
}

func (s *SMTPMailer) Name() string { return "smtp" }

func (s *SMTPMailer) build(m Message) (*gomail.Message, error) {
	to := strings.TrimSpace(m.ToEmail)
	if to == "" {
		return nil, fmt.Errorf("empty recipient email")
	}
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.from, s.fromName)
	if m.ToName != "" {
		msg.SetAddressHeader("To", to, m.ToName)
	} else {
		msg.SetHeader("To", to)
	}
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Text)
	if strings.TrimSpace(m.HTML) != "" {
		msg.AddAlternative("text/html", m.HTML)
	}
	return msg, nil
}

// Send gives up waiting when ctx ends; the SMTP exchange itself cannot be
// interrupted and finishes in the background.
func (s *SMTPMailer) Send(ctx context.Context, m Message) (string, error) {
	msg, err := s.build(m)
	if err != nil {
		return "", err
	}
	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("smtp send: %w", err)
		}
		return "", nil
	case <-ctx.Done():
		return "", fmt.Errorf("smtp send: %w", ctx.Err())
	}
}
