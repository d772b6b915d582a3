// Package mailer sends the association's notification emails over SMTP.
// Sending is always best-effort; callers fire messages through the task
// helper and never block a response on delivery.
package mailer

import (
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/ddka-tech/ddka-backend/internal/metrics"
)

// Sender delivers one message.
type Sender interface {
	Send(to, subject, textBody, htmlBody string) error
}

// SMTPSender delivers through a configured SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, user, pass string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   user,
	}
}

func (s *SMTPSender) Send(to, subject, textBody, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}
	return s.dialer.DialAndSend(m)
}

// DisabledSender is the EMAIL_ENABLED=false implementation. It drops every
// message and records the skip.
type DisabledSender struct{}

func (DisabledSender) Send(to, subject, _, _ string) error {
	slog.Debug("email sending disabled, dropping message", "to", to, "subject", subject)
	return nil
}

// FromConfig picks the real or the disabled sender.
func FromConfig(enabled bool, host string, port int, user, pass string) Sender {
	if !enabled || host == "" || user == "" {
		slog.Info("email notifications disabled")
		return DisabledSender{}
	}
	return NewSMTPSender(host, port, user, pass)
}

// instrument wraps a send with the outcome counter.
func instrument(template string, sender Sender, to, subject, text, html string) error {
	if _, disabled := sender.(DisabledSender); disabled {
		metrics.EmailsSent.WithLabelValues(template, "skipped").Inc()
		return sender.Send(to, subject, text, html)
	}
	if err := sender.Send(to, subject, text, html); err != nil {
		metrics.EmailsSent.WithLabelValues(template, "failed").Inc()
		return err
	}
	metrics.EmailsSent.WithLabelValues(template, "sent").Inc()
	return nil
}
