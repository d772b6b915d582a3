package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ddka-tech/ddka-backend/internal/config"
	"github.com/ddka-tech/ddka-backend/internal/mailer"
	"github.com/ddka-tech/ddka-backend/internal/models"
	"github.com/ddka-tech/ddka-backend/internal/tasks"
	"github.com/ddka-tech/ddka-backend/internal/uploads"
	"github.com/ddka-tech/ddka-backend/internal/verify"
)

var (
	ErrOfficialNotFound  = errors.New("technical official not found")
	ErrDuplicateOfficial = errors.New("aadhar number, email or transaction ID already registered as technical official")
)

const examFee = 1000

type OfficialService struct {
	db       *gorm.DB
	cfg      *config.Config
	uploader uploads.Uploader
	notifier *mailer.Notifier
}

func NewOfficialService(db *gorm.DB, cfg *config.Config, uploader uploads.Uploader, notifier *mailer.Notifier) *OfficialService {
	return &OfficialService{db: db, cfg: cfg, uploader: uploader, notifier: notifier}
}

// OfficialRegistration is the validated application form plus the three
// mandatory files (signature, photo, payment screenshot).
type OfficialRegistration struct {
	Official  models.TechnicalOfficial
	Documents []uploads.File
}

func (s *OfficialService) Register(ctx context.Context, reg *OfficialRegistration) (*models.TechnicalOfficial, error) {
	official := reg.Official
	official.TransactionID = strings.ToUpper(strings.TrimSpace(official.TransactionID))
	official.Status = models.StatusPending
	official.ExamFee = examFee
	if official.BloodGroup == "" {
		official.BloodGroup = "NA"
	}

	var existing models.TechnicalOfficial
	err := s.db.WithContext(ctx).
		Where("aadhar_number = ? OR email = ? OR transaction_id = ?",
			official.AadharNumber, official.Email, official.TransactionID).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateOfficial
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing officials: %w", err)
	}

	urls, err := uploads.UploadAll(ctx, s.uploader, "ddka/technical-officials", reg.Documents)
	if err != nil {
		return nil, fmt.Errorf("document upload failed: %w", err)
	}
	official.SignatureURL = urls["signature"]
	official.PhotoURL = urls["photo"]
	official.ReceiptURL = urls["receipt"]

	if err := s.db.WithContext(ctx).Create(&official).Error; err != nil {
		return nil, fmt.Errorf("failed to create technical official: %w", err)
	}
	return &official, nil
}

func (s *OfficialService) List(ctx context.Context) ([]models.TechnicalOfficial, error) {
	var officials []models.TechnicalOfficial
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&officials).Error; err != nil {
		return nil, fmt.Errorf("failed to list officials: %w", err)
	}
	return officials, nil
}

func (s *OfficialService) Get(ctx context.Context, id uuid.UUID) (*models.TechnicalOfficial, error) {
	var official models.TechnicalOfficial
	if err := s.db.WithContext(ctx).First(&official, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfficialNotFound
		}
		return nil, fmt.Errorf("failed to load official: %w", err)
	}
	return &official, nil
}

// UpdateStatus approves/rejects an application, optionally carrying review
// remarks. Approval sends the result email best-effort.
func (s *OfficialService) UpdateStatus(ctx context.Context, id uuid.UUID, status string, remarks *string) (*models.TechnicalOfficial, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	official, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	wasApproved := official.Status == models.StatusApproved
	official.Status = status
	if remarks != nil {
		official.Remarks = *remarks
	}
	if err := s.db.WithContext(ctx).Save(official).Error; err != nil {
		return nil, fmt.Errorf("failed to update official status: %w", err)
	}

	if status == models.StatusApproved && !wasApproved && official.Email != "" {
		to, name := official.Email, official.CandidateName
		code := verify.RegistrationCode(s.cfg.RegistrationCodePrefix, official)
		grade := official.Grade
		tasks.BestEffortAsync("official-result-email", func() error {
			return s.notifier.SendOfficialResult(to, name, code, grade)
		})
	}
	return official, nil
}

// OfficialUpdate is a partial edit of an application's core details.
type OfficialUpdate struct {
	CandidateName *string
	ParentName    *string
	DOB           *time.Time
	Address       *string
	AadharNumber  *string
	Gender        *string
	PlayerLevel   *string
	Work          *string
	Mobile        *string
	Education     *string
	Email         *string
	Remarks       *string
}

func (s *OfficialService) Update(ctx context.Context, id uuid.UUID, upd *OfficialUpdate) (*models.TechnicalOfficial, error) {
	official, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&official.CandidateName, upd.CandidateName)
	setStr(&official.ParentName, upd.ParentName)
	setStr(&official.Address, upd.Address)
	setStr(&official.AadharNumber, upd.AadharNumber)
	setStr(&official.Gender, upd.Gender)
	setStr(&official.PlayerLevel, upd.PlayerLevel)
	setStr(&official.Work, upd.Work)
	setStr(&official.Mobile, upd.Mobile)
	setStr(&official.Education, upd.Education)
	setStr(&official.Email, upd.Email)
	setStr(&official.Remarks, upd.Remarks)
	if upd.DOB != nil {
		official.DOB = *upd.DOB
	}

	if err := s.db.WithContext(ctx).Save(official).Error; err != nil {
		return nil, fmt.Errorf("failed to update official: %w", err)
	}
	return official, nil
}

// SetExamScore records the exam result and derives the letter grade. A nil
// score clears both.
func (s *OfficialService) SetExamScore(ctx context.Context, id uuid.UUID, score *int) (*models.TechnicalOfficial, error) {
	if score != nil && (*score < 0 || *score > 100) {
		return nil, errors.New("exam score must be between 0 and 100")
	}

	official, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	official.ExamScore = score
	if score != nil {
		official.Grade = GradeForScore(*score)
	} else {
		official.Grade = ""
	}

	if err := s.db.WithContext(ctx).Save(official).Error; err != nil {
		return nil, fmt.Errorf("failed to record exam score: %w", err)
	}
	return official, nil
}

func (s *OfficialService) Delete(ctx context.Context, id uuid.UUID) error {
	official, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(official).Error; err != nil {
		return fmt.Errorf("failed to delete official: %w", err)
	}

	urls := []string{official.SignatureURL, official.PhotoURL, official.ReceiptURL}
	tasks.BestEffortAsync("official-document-cleanup", func() error {
		uploads.DestroyAll(context.Background(), s.uploader, urls...)
		return nil
	})
	return nil
}

// GradeForScore maps an exam score to the printed letter grade. Scores below
// the C band carry no grade.
func GradeForScore(score int) string {
	switch {
	case score >= 71 && score <= 100:
		return "A"
	case score >= 61:
		return "B"
	case score >= 50:
		return "C"
	}
	return ""
}
