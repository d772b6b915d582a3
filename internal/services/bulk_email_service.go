package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ddka-tech/ddka-backend/internal/mailer"
	"github.com/ddka-tech/ddka-backend/internal/models"
)

// BulkEmailService lets admins compose one message and send it to a selection
// of everyone the association knows an address for.
type BulkEmailService struct {
	db       *gorm.DB
	notifier *mailer.Notifier
}

func NewBulkEmailService(db *gorm.DB, notifier *mailer.Notifier) *BulkEmailService {
	return &BulkEmailService{db: db, notifier: notifier}
}

// Recipient is one addressable account or enquiry for the composer's list.
type Recipient struct {
	ID     uuid.UUID `json:"id"`
	Type   string    `json:"type"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Status string    `json:"status"`
}

// Recipients gathers every record with a usable email address across members,
// newsletter subscribers and contact-form senders.
func (s *BulkEmailService) Recipients(ctx context.Context) ([]Recipient, error) {
	var recipients []Recipient

	var players []models.Player
	if err := s.db.WithContext(ctx).Where("email <> ''").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to load player recipients: %w", err)
	}
	for _, p := range players {
		recipients = append(recipients, Recipient{
			ID: p.ID, Type: "Player", Name: displayName(p.FullName), Email: p.Email, Status: p.Status,
		})
	}

	var institutions []models.Institution
	if err := s.db.WithContext(ctx).Where("email <> ''").Find(&institutions).Error; err != nil {
		return nil, fmt.Errorf("failed to load institution recipients: %w", err)
	}
	for _, i := range institutions {
		recipients = append(recipients, Recipient{
			ID: i.ID, Type: "Institution", Name: displayName(i.InstName), Email: i.Email, Status: i.Status,
		})
	}

	var officials []models.TechnicalOfficial
	if err := s.db.WithContext(ctx).Where("email <> ''").Find(&officials).Error; err != nil {
		return nil, fmt.Errorf("failed to load official recipients: %w", err)
	}
	for _, o := range officials {
		recipients = append(recipients, Recipient{
			ID: o.ID, Type: "Technical Official", Name: displayName(o.CandidateName), Email: o.Email, Status: o.Status,
		})
	}

	var subscriptions []models.NewsletterSubscription
	if err := s.db.WithContext(ctx).Where("email <> ''").Find(&subscriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to load newsletter recipients: %w", err)
	}
	for _, n := range subscriptions {
		recipients = append(recipients, Recipient{
			ID: n.ID, Type: "Newsletter", Name: "Subscriber", Email: n.Email, Status: "Subscribed",
		})
	}

	var contacts []models.ContactMessage
	if err := s.db.WithContext(ctx).Where("email <> ''").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to load contact recipients: %w", err)
	}
	for _, c := range contacts {
		recipients = append(recipients, Recipient{
			ID: c.ID, Type: "Contact", Name: displayName(c.Name), Email: c.Email, Status: c.Status,
		})
	}

	return recipients, nil
}

func displayName(name string) string {
	if name == "" {
		return "-"
	}
	return name
}

// BulkRecipient is one selected target of a bulk send.
type BulkRecipient struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	NoGreeting bool   `json:"noGreeting"`
}

// BulkFailure records one recipient the send could not reach.
type BulkFailure struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

// BulkSendResult tallies a bulk send. Skipped counts selections with no
// usable address.
type BulkSendResult struct {
	Total    int           `json:"total"`
	Sent     int           `json:"sent"`
	Failed   int           `json:"failed"`
	Skipped  int           `json:"skipped"`
	Failures []BulkFailure `json:"failures"`
}

// Send delivers the composed message to every selected recipient, one at a
// time. A failure for one address never stops the rest; the result reports
// the per-recipient outcomes.
func (s *BulkEmailService) Send(subject, message string, recipients []BulkRecipient) *BulkSendResult {
	result := &BulkSendResult{Total: len(recipients)}

	for _, r := range recipients {
		email := strings.ToLower(strings.TrimSpace(r.Email))
		if email == "" {
			result.Skipped++
			continue
		}
		if err := s.notifier.SendCustom(email, r.Name, subject, message, r.NoGreeting); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, BulkFailure{Email: email, Error: err.Error()})
			continue
		}
		result.Sent++
	}
	return result
}
