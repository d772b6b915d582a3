package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ddka-tech/ddka-backend/internal/activity"
	"github.com/ddka-tech/ddka-backend/internal/config"
	"github.com/ddka-tech/ddka-backend/internal/dto"
	"github.com/ddka-tech/ddka-backend/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or credentials")
	ErrNotApproved        = errors.New("registration not approved yet")
	ErrCardNotAssigned    = errors.New("player ID not generated yet")
	ErrNoDonations        = errors.New("no donations found for this email")
	ErrNoConfirmed        = errors.New("no confirmed donations found")
	ErrMemberNotFound     = errors.New("user not found")
)

// RoleDonor is the token role for donor self-service. Donors are not an
// account table; their identity is the donation email scoped by phone.
const RoleDonor = "donor"

// AuthService authenticates members. The login credential convention is
// email plus the registered phone number, compared on its last 10 digits.
type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	recorder *activity.Recorder
}

func NewAuthService(db *gorm.DB, cfg *config.Config, recorder *activity.Recorder) *AuthService {
	return &AuthService{db: db, cfg: cfg, recorder: recorder}
}

// LoginResult carries the token and sanitized profile of an authenticated
// member.
type LoginResult struct {
	Token   string
	Role    string
	Profile any
}

// Login authenticates one of the four member types and records the login
// activity for the three account-backed roles.
func (s *AuthService) Login(ctx context.Context, req *dto.MemberLoginRequest, reqInfo activity.RequestInfo) (*LoginResult, error) {
	if req.Type == "" || req.Email == "" || req.Password == "" {
		return nil, errors.New("type, email and password (registered mobile) are required")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	provided := digitsOnly(req.Password)

	var coords *activity.ClientCoords
	if req.Latitude != nil && req.Longitude != nil {
		coords = &activity.ClientCoords{Latitude: *req.Latitude, Longitude: *req.Longitude}
		if req.Accuracy != nil {
			coords.Accuracy = *req.Accuracy
		}
	}

	switch req.Type {
	case string(models.RolePlayer):
		return s.loginPlayer(ctx, email, provided, reqInfo, coords)
	case string(models.RoleInstitution):
		return s.loginInstitution(ctx, email, provided, reqInfo, coords)
	case string(models.RoleOfficial):
		return s.loginOfficial(ctx, email, provided, reqInfo, coords)
	case RoleDonor:
		return s.loginDonor(ctx, email, provided)
	}
	return nil, errors.New("invalid user type")
}

func (s *AuthService) loginPlayer(ctx context.Context, email, provided string, reqInfo activity.RequestInfo, coords *activity.ClientCoords) (*LoginResult, error) {
	var player models.Player
	if err := s.db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&player).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if player.IDNo == "" {
		return nil, ErrCardNotAssigned
	}
	if player.Status != models.StatusApproved {
		return nil, ErrNotApproved
	}
	if !phoneMatches(provided, player.Phone) {
		return nil, ErrInvalidCredentials
	}

	s.recorder.Record(ctx, player.ID, models.RolePlayer, email, string(models.RolePlayer), reqInfo, coords)
	return s.result(player.ID.String(), string(models.RolePlayer), nil, PlayerProfile(&player, nil))
}

func (s *AuthService) loginInstitution(ctx context.Context, email, provided string, reqInfo activity.RequestInfo, coords *activity.ClientCoords) (*LoginResult, error) {
	var inst models.Institution
	if err := s.db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&inst).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if inst.Status != models.StatusApproved {
		return nil, ErrNotApproved
	}
	stored := inst.OfficePhone
	if stored == "" {
		stored = inst.AltPhone
	}
	if !phoneMatches(provided, stored) {
		return nil, ErrInvalidCredentials
	}

	s.recorder.Record(ctx, inst.ID, models.RoleInstitution, email, string(models.RoleInstitution), reqInfo, coords)
	return s.result(inst.ID.String(), string(models.RoleInstitution), nil, InstitutionProfile(&inst, nil))
}

func (s *AuthService) loginOfficial(ctx context.Context, email, provided string, reqInfo activity.RequestInfo, coords *activity.ClientCoords) (*LoginResult, error) {
	var official models.TechnicalOfficial
	if err := s.db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&official).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if official.Status != models.StatusApproved {
		return nil, ErrNotApproved
	}
	if !phoneMatches(provided, official.Mobile) {
		return nil, ErrInvalidCredentials
	}

	s.recorder.Record(ctx, official.ID, models.RoleOfficial, email, string(models.RoleOfficial), reqInfo, coords)
	return s.result(official.ID.String(), string(models.RoleOfficial), nil, OfficialProfile(&official, nil))
}

func (s *AuthService) loginDonor(ctx context.Context, email, provided string) (*LoginResult, error) {
	if provided == "" {
		return nil, ErrInvalidCredentials
	}

	var donations []models.Donation
	if err := s.db.WithContext(ctx).
		Where("LOWER(email) = ?", email).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("failed to load donations: %w", err)
	}
	if len(donations) == 0 {
		return nil, ErrNoDonations
	}

	var matched *models.Donation
	var confirmed []models.Donation
	for i := range donations {
		if !phoneMatches(provided, donations[i].Phone) {
			continue
		}
		if matched == nil {
			matched = &donations[i]
		}
		if donations[i].Status == models.DonationConfirmed {
			confirmed = append(confirmed, donations[i])
		}
	}
	if matched == nil {
		return nil, ErrInvalidCredentials
	}
	if len(confirmed) == 0 {
		return nil, ErrNoConfirmed
	}

	profile := DonorProfile(email, matched.Phone, len(donations), confirmed)
	extra := map[string]any{"donorPhone": lastN(provided, 10)}
	return s.result(email, RoleDonor, extra, profile)
}

func (s *AuthService) result(id, role string, extra map[string]any, profile any) (*LoginResult, error) {
	token, err := generateToken(s.cfg.JWTSecret, s.cfg.JWTExpiry, id, role, extra)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &LoginResult{Token: token, Role: role, Profile: profile}, nil
}

// Me loads the authenticated member's profile. Account-backed roles embed
// their recent login activity, newest first.
func (s *AuthService) Me(ctx context.Context, claims *TokenClaims) (string, any, error) {
	switch claims.Role {
	case string(models.RolePlayer):
		id, err := uuid.Parse(claims.ID)
		if err != nil {
			return "", nil, ErrMemberNotFound
		}
		var player models.Player
		if err := s.db.WithContext(ctx).First(&player, "id = ?", id).Error; err != nil {
			return "", nil, ErrMemberNotFound
		}
		activities, _ := s.recorder.Recent(ctx, id, models.RolePlayer, 0)
		return claims.Role, PlayerProfile(&player, activities), nil

	case string(models.RoleInstitution):
		id, err := uuid.Parse(claims.ID)
		if err != nil {
			return "", nil, ErrMemberNotFound
		}
		var inst models.Institution
		if err := s.db.WithContext(ctx).First(&inst, "id = ?", id).Error; err != nil {
			return "", nil, ErrMemberNotFound
		}
		activities, _ := s.recorder.Recent(ctx, id, models.RoleInstitution, 0)
		return claims.Role, InstitutionProfile(&inst, activities), nil

	case string(models.RoleOfficial):
		id, err := uuid.Parse(claims.ID)
		if err != nil {
			return "", nil, ErrMemberNotFound
		}
		var official models.TechnicalOfficial
		if err := s.db.WithContext(ctx).First(&official, "id = ?", id).Error; err != nil {
			return "", nil, ErrMemberNotFound
		}
		activities, _ := s.recorder.Recent(ctx, id, models.RoleOfficial, 0)
		return claims.Role, OfficialProfile(&official, activities), nil

	case RoleDonor:
		email := strings.ToLower(claims.ID)
		var donations []models.Donation
		if err := s.db.WithContext(ctx).
			Where("LOWER(email) = ?", email).
			Order("created_at DESC").
			Find(&donations).Error; err != nil {
			return "", nil, fmt.Errorf("failed to load donations: %w", err)
		}
		if len(donations) == 0 {
			return "", nil, ErrMemberNotFound
		}

		var confirmed []models.Donation
		for _, d := range donations {
			if d.Status != models.DonationConfirmed {
				continue
			}
			if claims.DonorPhone != "" && !phoneMatches(claims.DonorPhone, d.Phone) {
				continue
			}
			confirmed = append(confirmed, d)
		}
		phone := donations[0].Phone
		if len(confirmed) > 0 {
			phone = confirmed[0].Phone
		}
		return claims.Role, DonorProfile(email, phone, len(donations), confirmed), nil
	}

	return "", nil, ErrMemberNotFound
}

// digitsOnly strips every non-digit character.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// phoneMatches compares the last 10 digits of a provided credential against a
// stored phone value. Both sides must contain digits.
func phoneMatches(provided, stored string) bool {
	p := digitsOnly(provided)
	st := digitsOnly(stored)
	if p == "" || st == "" {
		return false
	}
	return lastN(p, 10) == lastN(st, 10)
}

// donationSummary is the slice of a donation exposed to the donor themself.
type donationSummary struct {
	ID            uuid.UUID `json:"id"`
	Amount        float64   `json:"amount"`
	ReceiptNumber string    `json:"receiptNumber"`
	CreatedAt     time.Time `json:"createdAt"`
	Status        string    `json:"status"`
}

func summarize(donations []models.Donation) []donationSummary {
	out := make([]donationSummary, 0, len(donations))
	for _, d := range donations {
		out = append(out, donationSummary{
			ID:            d.ID,
			Amount:        d.Amount,
			ReceiptNumber: d.ReceiptNumber,
			CreatedAt:     d.CreatedAt,
			Status:        d.Status,
		})
	}
	return out
}
