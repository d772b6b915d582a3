package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingSender struct {
	to, subject, text, html string
}

func (s *capturingSender) Send(to, subject, textBody, htmlBody string) error {
	s.to, s.subject, s.text, s.html = to, subject, textBody, htmlBody
	return nil
}

func TestSendCustomGreetsByName(t *testing.T) {
	sender := &capturingSender{}
	n := NewNotifier(sender, "https://ddka.example")

	require.NoError(t, n.SendCustom("ravi@example.com", "Ravi Kumar", "Trials", "Report at 9am.", false))

	assert.Equal(t, "ravi@example.com", sender.to)
	assert.Equal(t, "Trials", sender.subject)
	assert.Contains(t, sender.text, "Dear Ravi Kumar,")
	assert.Contains(t, sender.text, "Report at 9am.")
	assert.Contains(t, sender.html, "Report at 9am.")
}

func TestSendCustomWithoutGreeting(t *testing.T) {
	sender := &capturingSender{}
	n := NewNotifier(sender, "https://ddka.example")

	require.NoError(t, n.SendCustom("ravi@example.com", "Ravi", "Trials", "Namaste players,\nsee you soon.", true))

	assert.NotContains(t, sender.text, "Dear")
	assert.Contains(t, sender.html, "Namaste players,<br>see you soon.")
}

func TestSendCustomDefaultsMissingName(t *testing.T) {
	sender := &capturingSender{}
	n := NewNotifier(sender, "https://ddka.example")

	require.NoError(t, n.SendCustom("x@example.com", "", "S", "Body", false))
	assert.Contains(t, sender.text, "Dear Member,")
}

func TestSendCustomEscapesHTML(t *testing.T) {
	sender := &capturingSender{}
	n := NewNotifier(sender, "https://ddka.example")

	require.NoError(t, n.SendCustom("x@example.com", "<b>Ravi</b>", "S", "1 < 2", false))
	assert.Contains(t, sender.html, "&lt;b&gt;Ravi&lt;/b&gt;")
	assert.Contains(t, sender.html, "1 &lt; 2")
}
