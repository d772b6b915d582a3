package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ddka-tech/ddka-backend/internal/mailer"
	"github.com/ddka-tech/ddka-backend/internal/models"
	"github.com/ddka-tech/ddka-backend/internal/tasks"
	"github.com/ddka-tech/ddka-backend/internal/uploads"
)

var (
	ErrInstitutionNotFound  = errors.New("institution not found")
	ErrDuplicateInstitution = errors.New("reg no or transaction ID already exists")
)

type InstitutionService struct {
	db       *gorm.DB
	uploader uploads.Uploader
	notifier *mailer.Notifier
}

func NewInstitutionService(db *gorm.DB, uploader uploads.Uploader, notifier *mailer.Notifier) *InstitutionService {
	return &InstitutionService{db: db, uploader: uploader, notifier: notifier}
}

// InstitutionRegistration is the affiliation application plus its payment
// screenshot and optional logo.
type InstitutionRegistration struct {
	Institution models.Institution
	Documents   []uploads.File
}

func (s *InstitutionService) Register(ctx context.Context, reg *InstitutionRegistration) (*models.Institution, error) {
	inst := reg.Institution
	inst.TransactionID = strings.ToUpper(strings.TrimSpace(inst.TransactionID))
	inst.Status = models.StatusPending

	var existing models.Institution
	err := s.db.WithContext(ctx).
		Where("reg_no = ? OR transaction_id = ?", inst.RegNo, inst.TransactionID).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateInstitution
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing institutions: %w", err)
	}

	urls, err := uploads.UploadAll(ctx, s.uploader, "ddka/institutions", reg.Documents)
	if err != nil {
		return nil, fmt.Errorf("document upload failed: %w", err)
	}
	inst.ScreenshotURL = urls["screenshot"]
	if logo, ok := urls["logo"]; ok {
		inst.InstLogoURL = logo
	}

	if err := s.db.WithContext(ctx).Create(&inst).Error; err != nil {
		return nil, fmt.Errorf("failed to create institution: %w", err)
	}
	return &inst, nil
}

func (s *InstitutionService) List(ctx context.Context) ([]models.Institution, error) {
	var institutions []models.Institution
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&institutions).Error; err != nil {
		return nil, fmt.Errorf("failed to list institutions: %w", err)
	}
	return institutions, nil
}

func (s *InstitutionService) Get(ctx context.Context, id uuid.UUID) (*models.Institution, error) {
	var inst models.Institution
	if err := s.db.WithContext(ctx).First(&inst, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("failed to load institution: %w", err)
	}
	return &inst, nil
}

// UpdateStatus moves an application through the review lifecycle. The first
// approval sends the affiliation email best-effort.
func (s *InstitutionService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Institution, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	inst, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	wasApproved := inst.Status == models.StatusApproved
	inst.Status = status
	if err := s.db.WithContext(ctx).Save(inst).Error; err != nil {
		return nil, fmt.Errorf("failed to update institution status: %w", err)
	}

	if status == models.StatusApproved && !wasApproved && inst.Email != "" {
		to, name, regNo := inst.Email, inst.InstName, inst.RegNo
		tasks.BestEffortAsync("institution-approval-email", func() error {
			return s.notifier.SendMembershipApproval(to, name, "institution", regNo)
		})
	}
	return inst, nil
}

func (s *InstitutionService) Delete(ctx context.Context, id uuid.UUID) error {
	inst, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(inst).Error; err != nil {
		return fmt.Errorf("failed to delete institution: %w", err)
	}

	urls := []string{inst.ScreenshotURL, inst.InstLogoURL}
	tasks.BestEffortAsync("institution-document-cleanup", func() error {
		uploads.DestroyAll(context.Background(), s.uploader, urls...)
		return nil
	})
	return nil
}
