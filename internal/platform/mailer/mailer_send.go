package mailer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mailersend/mailersend-go"
)

type MailerSend struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSend {
	return &MailerSend{
		client: mailersend.NewMailersend(apiKey),
		from:   mailersend.From{Name: fromName, Email: fromEmail},
	}
}

func (m *MailerSend) Name() string { return "mailersend" }

func (m *MailerSend) Send(ctx context.Context, in Message) (string, error) {
	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: in.ToName, Email: in.ToEmail}})
	msg.SetSubject(in.Subject)
	if strings.TrimSpace(in.Text) != "" {
		msg.SetText(in.Text)
	}
	if strings.TrimSpace(in.HTML) != "" {
		msg.SetHTML(in.HTML)
	}

	res, err := m.client.Email.Send(ctx, msg)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("mailersend error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return res.Header.Get("X-Message-Id"), nil
}
