// Package notify sends the booking confirmation to the guest and the new
// booking alert to the operator. Delivery is best effort and at most once:
// failures become a Result, never an error for the caller.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/diagnosis/sophies-tours/internal/domain"
	"github.com/diagnosis/sophies-tours/internal/platform/mailer"
	"github.com/diagnosis/sophies-tours/pkg/logger"
	"github.com/diagnosis/sophies-tours/pkg/metrics"
)

type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Dispatcher struct {
	mail       mailer.Service
	adminEmail string
	timeout    time.Duration
	wg         sync.WaitGroup
}

func NewDispatcher(mail mailer.Service, adminEmail string, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{mail: mail, adminEmail: adminEmail, timeout: timeout}
}

func (d *Dispatcher) SendConfirmation(ctx context.Context, b domain.Booking, tripTitle string) Result {
	v := newView(b, tripTitle)
	html, text, err := render(confirmationHTMLTmpl, confirmationTextTmpl, v)
	if err != nil {
		return d.finish(ctx, "confirmation", b, "", err)
	}
	id, err := d.send(ctx, mailer.Message{
		ToEmail: b.GuestEmail,
		ToName:  b.GuestName,
		Subject: "Booking Confirmation - " + tripTitle + " | Sophie's Tours",
		Text:    text,
		HTML:    html,
	})
	return d.finish(ctx, "confirmation", b, id, err)
}

func (d *Dispatcher) SendAdminAlert(ctx context.Context, b domain.Booking, tripTitle string) Result {
	v := newView(b, tripTitle)
	html, text, err := render(adminHTMLTmpl, adminTextTmpl, v)
	if err != nil {
		return d.finish(ctx, "admin_alert", b, "", err)
	}
	id, err := d.send(ctx, mailer.Message{
		ToEmail: d.adminEmail,
		Subject: "New Booking: " + tripTitle + " | " + b.ConfirmationCode,
		Text:    text,
		HTML:    html,
	})
	return d.finish(ctx, "admin_alert", b, id, err)
}

// Dispatch sends both messages in the background. The request context only
// contributes its values; cancellation of the request does not stop delivery.
func (d *Dispatcher) Dispatch(ctx context.Context, b domain.Booking, tripTitle string) {
	bg := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.SendConfirmation(bg, b, tripTitle)
		d.SendAdminAlert(bg, b, tripTitle)
	}()
}

// Wait blocks until in-flight dispatches finish or ctx ends.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) send(ctx context.Context, m mailer.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.mail.Send(ctx, m)
}

func (d *Dispatcher) finish(ctx context.Context, kind string, b domain.Booking, id string, err error) Result {
	if err != nil {
		result := "failed"
		if errors.Is(err, mailer.ErrNotConfigured) {
			result = "skipped"
		}
		metrics.NotificationsSent.WithLabelValues(kind, result).Inc()
		logger.WarnContext(ctx, "notification not sent",
			"kind", kind,
			"confirmation_code", b.ConfirmationCode,
			"transport", d.mail.Name(),
			"error", err,
		)
		return Result{Success: false, Error: err.Error()}
	}
	metrics.NotificationsSent.WithLabelValues(kind, "sent").Inc()
	logger.InfoContext(ctx, "notification sent",
		"kind", kind,
		"confirmation_code", b.ConfirmationCode,
		"transport", d.mail.Name(),
		"message_id", id,
	)
	return Result{Success: true, MessageID: id}
}
