package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ddka-tech/ddka-backend/internal/mailer"
	"github.com/ddka-tech/ddka-backend/internal/models"
	"github.com/ddka-tech/ddka-backend/internal/tasks"
	"github.com/ddka-tech/ddka-backend/internal/uploads"
)

var ErrDonationNotFound = errors.New("donation not found")

type DonationService struct {
	db       *gorm.DB
	uploader uploads.Uploader
	notifier *mailer.Notifier
}

func NewDonationService(db *gorm.DB, uploader uploads.Uploader, notifier *mailer.Notifier) *DonationService {
	return &DonationService{db: db, uploader: uploader, notifier: notifier}
}

// Create records a donation, storing the optional receipt image first. An
// acknowledgement email goes out best-effort.
func (s *DonationService) Create(ctx context.Context, donation models.Donation, receipt *uploads.File) (*models.Donation, error) {
	if donation.Name == "" || donation.Amount <= 0 {
		return nil, errors.New("name and amount are required")
	}
	if donation.Method == "" {
		donation.Method = "upi"
	}
	donation.Status = models.DonationPending

	if receipt != nil {
		url, err := s.uploader.Upload(ctx, "ddka/donations", receipt.Name, receipt.Content)
		if err != nil {
			return nil, fmt.Errorf("receipt upload failed: %w", err)
		}
		donation.ReceiptURL = url
	}

	if err := s.db.WithContext(ctx).Create(&donation).Error; err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}

	if donation.Email != "" {
		to, name, amount, receiptNo := donation.Email, donation.Name, donation.Amount, donation.ReceiptNumber
		tasks.BestEffortAsync("donation-ack-email", func() error {
			return s.notifier.SendDonationReceipt(to, name, amount, receiptNo)
		})
	}
	return &donation, nil
}

func (s *DonationService) List(ctx context.Context) ([]models.Donation, error) {
	var donations []models.Donation
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return donations, nil
}

func (s *DonationService) Get(ctx context.Context, id uuid.UUID) (*models.Donation, error) {
	var donation models.Donation
	if err := s.db.WithContext(ctx).First(&donation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to load donation: %w", err)
	}
	return &donation, nil
}

// UpdateStatus moves a donation to pending/confirmed/failed. Confirmation
// re-sends the receipt email best-effort.
func (s *DonationService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Donation, error) {
	switch status {
	case models.DonationPending, models.DonationConfirmed, models.DonationFailed:
	default:
		return nil, fmt.Errorf("invalid donation status %q", status)
	}

	donation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	donation.Status = status
	if err := s.db.WithContext(ctx).Save(donation).Error; err != nil {
		return nil, fmt.Errorf("failed to update donation status: %w", err)
	}

	if status == models.DonationConfirmed && donation.Email != "" {
		to, name, amount, receiptNo := donation.Email, donation.Name, donation.Amount, donation.ReceiptNumber
		tasks.BestEffortAsync("donation-receipt-email", func() error {
			return s.notifier.SendDonationReceipt(to, name, amount, receiptNo)
		})
	}
	return donation, nil
}

// DonationUpdate is a partial edit of payment bookkeeping fields.
type DonationUpdate struct {
	TxID          *string
	ReceiptNumber *string
	Phone         *string
	Notify        bool
}

func (s *DonationService) UpdateDetails(ctx context.Context, id uuid.UUID, upd *DonationUpdate, receipt *uploads.File) (*models.Donation, error) {
	donation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if receipt != nil {
		url, err := s.uploader.Upload(ctx, "ddka/donations", receipt.Name, receipt.Content)
		if err != nil {
			return nil, fmt.Errorf("receipt upload failed: %w", err)
		}
		donation.ReceiptURL = url
	}
	if upd.TxID != nil {
		donation.TxID = *upd.TxID
	}
	if upd.ReceiptNumber != nil {
		donation.ReceiptNumber = *upd.ReceiptNumber
	}
	if upd.Phone != nil {
		donation.Phone = *upd.Phone
	}

	if err := s.db.WithContext(ctx).Save(donation).Error; err != nil {
		return nil, fmt.Errorf("failed to update donation: %w", err)
	}

	if upd.Notify && donation.Email != "" {
		to, name, amount, receiptNo := donation.Email, donation.Name, donation.Amount, donation.ReceiptNumber
		tasks.BestEffortAsync("donation-notify-email", func() error {
			return s.notifier.SendDonationReceipt(to, name, amount, receiptNo)
		})
	}
	return donation, nil
}

func (s *DonationService) Delete(ctx context.Context, id uuid.UUID) error {
	donation, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(donation).Error; err != nil {
		return fmt.Errorf("failed to delete donation: %w", err)
	}
	if donation.ReceiptURL != "" {
		url := donation.ReceiptURL
		tasks.BestEffortAsync("donation-receipt-cleanup", func() error {
			return s.uploader.Destroy(context.Background(), url)
		})
	}
	return nil
}
