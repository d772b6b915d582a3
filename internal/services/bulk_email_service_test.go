package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddka-tech/ddka-backend/internal/mailer"
)

type recordingSender struct {
	failFor string
	sent    []string
}

func (s *recordingSender) Send(to, subject, textBody, htmlBody string) error {
	if to == s.failFor {
		return errors.New("mailbox unavailable")
	}
	s.sent = append(s.sent, to)
	return nil
}

func TestBulkSendTalliesOutcomes(t *testing.T) {
	sender := &recordingSender{failFor: "down@example.com"}
	svc := NewBulkEmailService(nil, mailer.NewNotifier(sender, "https://ddka.example"))

	result := svc.Send("Trial announcement", "District trials start next month.", []BulkRecipient{
		{Email: "Ravi@Example.com", Name: "Ravi"},
		{Email: "down@example.com", Name: "Asha"},
		{Email: "   "},
	})

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "down@example.com", result.Failures[0].Email)

	// Addresses are normalized before sending.
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ravi@example.com", sender.sent[0])
}

func TestBulkSendContinuesPastFailures(t *testing.T) {
	sender := &recordingSender{failFor: "first@example.com"}
	svc := NewBulkEmailService(nil, mailer.NewNotifier(sender, "https://ddka.example"))

	result := svc.Send("Subject", "Body", []BulkRecipient{
		{Email: "first@example.com"},
		{Email: "second@example.com"},
		{Email: "third@example.com"},
	})

	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"second@example.com", "third@example.com"}, sender.sent)
}
