package mailer

import (
	"fmt"
	"html"
	"strings"
)

// Notifier renders and sends the association's notification messages.
type Notifier struct {
	sender      Sender
	frontendURL string
}

func NewNotifier(sender Sender, frontendURL string) *Notifier {
	return &Notifier{sender: sender, frontendURL: frontendURL}
}

// SendMembershipApproval congratulates an approved player or institution and
// tells them their card number.
func (n *Notifier) SendMembershipApproval(to, name, role, idNumber string) error {
	subject := "Your DDKA membership has been approved"

	text := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your %s registration with the Dhanbad District Kabaddi Association has been approved.\n"+
			"Your ID number is %s. You can verify your membership anytime at %s/verify.\n\n"+
			"Regards,\nDhanbad District Kabaddi Association",
		name, role, idNumber, n.frontendURL)

	htmlBody := fmt.Sprintf(
		`<p>Dear %s,</p>`+
			`<p>Your %s registration with the <b>Dhanbad District Kabaddi Association</b> has been approved.</p>`+
			`<p>Your ID number is <b>%s</b>. You can verify your membership anytime at <a href="%s/verify">%s/verify</a>.</p>`+
			`<p>Regards,<br>Dhanbad District Kabaddi Association</p>`,
		html.EscapeString(name), html.EscapeString(role), html.EscapeString(idNumber), n.frontendURL, n.frontendURL)

	return instrument("membership_approval", n.sender, to, subject, text, htmlBody)
}

// SendOfficialResult informs an examinee of their result and grade.
func (n *Notifier) SendOfficialResult(to, name, registrationCode, grade string) error {
	subject := "Your DDKA technical official application result"

	gradeLine := "Your result has been recorded."
	if grade != "" {
		gradeLine = fmt.Sprintf("You have been awarded grade %s.", grade)
	}

	text := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your technical official application with the Dhanbad District Kabaddi Association has been approved.\n"+
			"%s Your registration number is %s.\n\n"+
			"Regards,\nDhanbad District Kabaddi Association",
		name, gradeLine, registrationCode)

	htmlBody := fmt.Sprintf(
		`<p>Dear %s,</p>`+
			`<p>Your technical official application with the <b>Dhanbad District Kabaddi Association</b> has been approved.</p>`+
			`<p>%s Your registration number is <b>%s</b>.</p>`+
			`<p>Regards,<br>Dhanbad District Kabaddi Association</p>`,
		html.EscapeString(name), html.EscapeString(gradeLine), html.EscapeString(registrationCode))

	return instrument("official_result", n.sender, to, subject, text, htmlBody)
}

// SendDonationReceipt thanks a donor after their donation is confirmed.
func (n *Notifier) SendDonationReceipt(to, name string, amount float64, receiptNumber string) error {
	subject := "Thank you for supporting DDKA"

	text := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Thank you for your donation of Rs. %.2f to the Dhanbad District Kabaddi Association.\n"+
			"Your receipt number is %s.\n\n"+
			"Regards,\nDhanbad District Kabaddi Association",
		name, amount, receiptNumber)

	htmlBody := fmt.Sprintf(
		`<p>Dear %s,</p>`+
			`<p>Thank you for your donation of <b>Rs. %.2f</b> to the Dhanbad District Kabaddi Association.</p>`+
			`<p>Your receipt number is <b>%s</b>.</p>`+
			`<p>Regards,<br>Dhanbad District Kabaddi Association</p>`,
		html.EscapeString(name), amount, html.EscapeString(receiptNumber))

	return instrument("donation_receipt", n.sender, to, subject, text, htmlBody)
}

// SendCustom delivers an admin-composed message to one recipient. The name
// personalizes the greeting; noGreeting drops it for copy that carries its
// own salutation.
func (n *Notifier) SendCustom(to, name, subject, message string, noGreeting bool) error {
	display := name
	if display == "" {
		display = "Member"
	}

	var greetText, greetHTML string
	if !noGreeting {
		greetText = fmt.Sprintf("Dear %s,\n\n", display)
		greetHTML = fmt.Sprintf("<p>Dear %s,</p>", html.EscapeString(display))
	}

	text := greetText + message +
		"\n\nRegards,\nDhanbad District Kabaddi Association"

	htmlBody := greetHTML +
		"<p>" + strings.ReplaceAll(html.EscapeString(message), "\n", "<br>") + "</p>" +
		"<p>Regards,<br>Dhanbad District Kabaddi Association</p>"

	return instrument("custom", n.sender, to, subject, text, htmlBody)
}
