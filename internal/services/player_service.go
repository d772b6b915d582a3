package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ddka-tech/ddka-backend/internal/config"
	"github.com/ddka-tech/ddka-backend/internal/mailer"
	"github.com/ddka-tech/ddka-backend/internal/models"
	"github.com/ddka-tech/ddka-backend/internal/tasks"
	"github.com/ddka-tech/ddka-backend/internal/uploads"
)

var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrDuplicatePlayer = errors.New("aadhar number or transaction ID already registered")
	ErrCardExhausted   = errors.New("could not generate a unique card number")
)

const cardNumberAttempts = 25

type PlayerService struct {
	db       *gorm.DB
	cfg      *config.Config
	uploader uploads.Uploader
	notifier *mailer.Notifier
}

func NewPlayerService(db *gorm.DB, cfg *config.Config, uploader uploads.Uploader, notifier *mailer.Notifier) *PlayerService {
	return &PlayerService{db: db, cfg: cfg, uploader: uploader, notifier: notifier}
}

// PlayerRegistration is the validated multipart form of a public player
// registration. Documents holds the four mandatory files.
type PlayerRegistration struct {
	Player    models.Player
	Documents []uploads.File
}

// Register checks for duplicates, stores the four documents concurrently and
// creates the pending record.
func (s *PlayerService) Register(ctx context.Context, reg *PlayerRegistration) (*models.Player, error) {
	player := reg.Player
	player.TransactionID = strings.ToUpper(strings.TrimSpace(player.TransactionID))
	player.Status = models.StatusPending
	player.MemberRole = "Player"

	var existing models.Player
	err := s.db.WithContext(ctx).
		Where("aadhar_number = ? OR transaction_id = ?", player.AadharNumber, player.TransactionID).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicatePlayer
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing players: %w", err)
	}

	urls, err := uploads.UploadAll(ctx, s.uploader, "ddka/players", reg.Documents)
	if err != nil {
		return nil, fmt.Errorf("document upload failed: %w", err)
	}
	player.PhotoURL = urls["photo"]
	player.AadharFrontURL = urls["front"]
	player.AadharBackURL = urls["back"]
	player.ReceiptURL = urls["receipt"]

	if err := s.db.WithContext(ctx).Create(&player).Error; err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return &player, nil
}

func (s *PlayerService) List(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *PlayerService) Get(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	var player models.Player
	if err := s.db.WithContext(ctx).First(&player, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player: %w", err)
	}
	return &player, nil
}

func (s *PlayerService) GetByCardNumber(ctx context.Context, idNo string) (*models.Player, error) {
	var player models.Player
	if err := s.db.WithContext(ctx).First(&player, "id_no = ?", idNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player: %w", err)
	}
	return &player, nil
}

// UpdateStatus moves a player through the review lifecycle. The first
// transition into Approved assigns the card number, exactly once; the
// approval email goes out best-effort.
func (s *PlayerService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Player, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	player, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	assigned, err := ApplyReviewStatus(player, status, func() (string, error) {
		return NewCardNumber(s.cfg.CardNumberPrefix, func(candidate string) (bool, error) {
			return s.cardNumberExists(ctx, candidate)
		})
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(player).Error; err != nil {
		return nil, fmt.Errorf("failed to update player status: %w", err)
	}

	if assigned && player.Email != "" {
		to, name, idNo := player.Email, player.FullName, player.IDNo
		tasks.BestEffortAsync("player-approval-email", func() error {
			return s.notifier.SendMembershipApproval(to, name, "player", idNo)
		})
	}
	return player, nil
}

// AssignCard sets an explicit card number, looked up by id or transaction
// reference.
func (s *PlayerService) AssignCard(ctx context.Context, id, transactionID, idNo, memberRole string) (*models.Player, error) {
	if idNo == "" {
		return nil, errors.New("idNo is required")
	}
	player, err := s.findByIDOrTransaction(ctx, id, transactionID)
	if err != nil {
		return nil, err
	}

	player.IDNo = idNo
	if memberRole != "" {
		player.MemberRole = memberRole
	}
	if err := s.db.WithContext(ctx).Save(player).Error; err != nil {
		return nil, fmt.Errorf("failed to assign card number: %w", err)
	}
	return player, nil
}

// ClearCard removes the card number and resets the printed role.
func (s *PlayerService) ClearCard(ctx context.Context, id, transactionID string) (*models.Player, error) {
	player, err := s.findByIDOrTransaction(ctx, id, transactionID)
	if err != nil {
		return nil, err
	}

	player.IDNo = ""
	player.MemberRole = "Player"
	if err := s.db.WithContext(ctx).Save(player).Error; err != nil {
		return nil, fmt.Errorf("failed to clear card number: %w", err)
	}
	return player, nil
}

// Delete removes the record and its hosted documents. Document removal is
// best-effort; the database row always goes first.
func (s *PlayerService) Delete(ctx context.Context, id uuid.UUID) error {
	player, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(player).Error; err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}

	urls := []string{player.PhotoURL, player.AadharFrontURL, player.AadharBackURL, player.ReceiptURL}
	tasks.BestEffortAsync("player-document-cleanup", func() error {
		uploads.DestroyAll(context.Background(), s.uploader, urls...)
		return nil
	})
	return nil
}

func (s *PlayerService) findByIDOrTransaction(ctx context.Context, id, transactionID string) (*models.Player, error) {
	if id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, ErrPlayerNotFound
		}
		return s.Get(ctx, parsed)
	}
	if transactionID == "" {
		return nil, errors.New("player id or transactionId is required")
	}

	var player models.Player
	err := s.db.WithContext(ctx).
		First(&player, "transaction_id = ?", strings.ToUpper(strings.TrimSpace(transactionID))).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player: %w", err)
	}
	return &player, nil
}

func (s *PlayerService) cardNumberExists(ctx context.Context, idNo string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Player{}).
		Where("id_no = ?", idNo).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check card number: %w", err)
	}
	return count > 0, nil
}

// ApplyReviewStatus moves a player to the given status and assigns a card
// number on the first transition into Approved only: a player that already
// carries a number keeps it, no matter how often they are re-approved.
// Reports whether a number was assigned by this call.
func ApplyReviewStatus(player *models.Player, status string, newNumber func() (string, error)) (bool, error) {
	player.Status = status
	if status != models.StatusApproved || player.IDNo != "" {
		return false, nil
	}

	idNo, err := newNumber()
	if err != nil {
		return false, err
	}
	player.IDNo = idNo
	return true, nil
}

// NewCardNumber generates a PREFIX-NNNN card number, retrying on collision
// against the exists check for a bounded number of attempts.
func NewCardNumber(prefix string, exists func(string) (bool, error)) (string, error) {
	for attempt := 0; attempt < cardNumberAttempts; attempt++ {
		candidate := fmt.Sprintf("%s-%04d", prefix, 1000+rand.Intn(9000))
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrCardExhausted
}
