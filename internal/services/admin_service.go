package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ddka-tech/ddka-backend/internal/activity"
	"github.com/ddka-tech/ddka-backend/internal/config"
	"github.com/ddka-tech/ddka-backend/internal/dto"
	"github.com/ddka-tech/ddka-backend/internal/models"
)

var (
	ErrAdminExists             = errors.New("admin with this ID or email already exists")
	ErrAdminNotFound           = errors.New("admin not found")
	ErrInvalidAdminCredentials = errors.New("invalid admin ID or password")
	ErrLastSuperadmin          = errors.New("at least one superadmin is required")
)

const (
	alertDefaultLimit = 60
	alertMinLimit     = 20
	alertMaxLimit     = 150
)

type AdminService struct {
	db       *gorm.DB
	cfg      *config.Config
	recorder *activity.Recorder
}

func NewAdminService(db *gorm.DB, cfg *config.Config, recorder *activity.Recorder) *AdminService {
	return &AdminService{db: db, cfg: cfg, recorder: recorder}
}

// Signup creates an operator account. The first account ever created becomes
// superadmin; everyone after that starts as a plain admin.
func (s *AdminService) Signup(ctx context.Context, req *dto.AdminSignupRequest) (*models.Admin, error) {
	username := strings.TrimSpace(req.AdminID)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if username == "" || email == "" || req.Password == "" {
		return nil, errors.New("admin ID, email and password are required")
	}
	if len(username) < 3 {
		return nil, errors.New("admin ID must be at least 3 characters")
	}
	if len(req.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}
	if req.Password != req.ConfirmPassword {
		return nil, errors.New("passwords do not match")
	}

	var existing models.Admin
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&existing).Error
	if err == nil {
		return nil, ErrAdminExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing admins: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count admins: %w", err)
	}
	role := models.AdminRoleAdmin
	if count == 0 {
		role = models.AdminRoleSuperadmin
	}

	admin := models.Admin{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	admin.Permissions = datatypes.NewJSONType(models.DefaultPermissions(role))

	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return &admin, nil
}

// Login authenticates by username or email. The request fingerprint is
// recorded as login activity after the credentials check out.
func (s *AdminService) Login(ctx context.Context, req *dto.AdminLoginRequest, reqInfo activity.RequestInfo) (string, *models.Admin, error) {
	identifier := strings.TrimSpace(req.AdminID)
	if identifier == "" || req.Password == "" {
		return "", nil, errors.New("admin ID/email and password are required")
	}

	var admin models.Admin
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, strings.ToLower(identifier)).
		First(&admin).Error
	if err != nil {
		return "", nil, ErrInvalidAdminCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidAdminCredentials
	}

	s.recorder.Record(ctx, admin.ID, models.RoleAdmin, admin.Email, admin.Role, reqInfo, clientCoords(req.Coordinates))

	token, err := generateToken(s.cfg.JWTSecret, s.cfg.JWTExpiry, admin.ID.String(), string(models.RoleAdmin), nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, &admin, nil
}

func (s *AdminService) Exists(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	return count > 0, nil
}

func (s *AdminService) Get(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}
	return &admin, nil
}

func (s *AdminService) List(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

// CheckRoleChange rejects the demotion that would leave the system without a
// superadmin. Counting is deferred so the query only runs when a demotion is
// actually requested.
func CheckRoleChange(currentRole, newRole string, countSuperadmins func() (int64, error)) error {
	if currentRole != models.AdminRoleSuperadmin || newRole != models.AdminRoleAdmin {
		return nil
	}
	remaining, err := countSuperadmins()
	if err != nil {
		return err
	}
	if remaining <= 1 {
		return ErrLastSuperadmin
	}
	return nil
}

// Update changes role and/or permission bits. Demoting the last superadmin is
// rejected so the system always has one.
func (s *AdminService) Update(ctx context.Context, id uuid.UUID, req *dto.AdminUpdateRequest) (*models.Admin, error) {
	admin, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := CheckRoleChange(admin.Role, req.Role, func() (int64, error) {
		var superCount int64
		err := s.db.WithContext(ctx).Model(&models.Admin{}).
			Where("role = ?", models.AdminRoleSuperadmin).
			Count(&superCount).Error
		if err != nil {
			return 0, fmt.Errorf("failed to count superadmins: %w", err)
		}
		return superCount, nil
	}); err != nil {
		return nil, err
	}

	if req.Role != "" {
		if req.Role != models.AdminRoleAdmin && req.Role != models.AdminRoleSuperadmin {
			return nil, fmt.Errorf("unknown admin role %q", req.Role)
		}
		admin.Role = req.Role
		// Promotion without an explicit permission set grants everything.
		if req.Role == models.AdminRoleSuperadmin && req.Permissions == nil {
			admin.Permissions = datatypes.NewJSONType(models.DefaultPermissions(req.Role))
		}
	}

	if req.Permissions != nil {
		perms := admin.Permissions.Data()
		req.Permissions.ApplyTo(&perms)
		admin.Permissions = datatypes.NewJSONType(perms)
	}

	if err := s.db.WithContext(ctx).Save(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to update admin: %w", err)
	}
	return admin, nil
}

// LoginHistory returns an admin's recent login events, newest first.
func (s *AdminService) LoginHistory(ctx context.Context, id uuid.UUID) ([]models.LoginActivity, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.recorder.Recent(ctx, id, models.RoleAdmin, 0)
}

// LoginAlert is one account's recent login activity with resolved identity,
// for the dashboard's security panel.
type LoginAlert struct {
	UserKey         string                 `json:"userKey"`
	UserType        string                 `json:"userType"`
	UserID          uuid.UUID              `json:"userId"`
	DisplayName     string                 `json:"displayName"`
	Email           string                 `json:"email"`
	UserDetails     any                    `json:"userDetails"`
	LoginActivities []models.LoginActivity `json:"loginActivities"`
	LatestLoginAt   time.Time              `json:"latestLoginAt"`
}

// LoginAlerts groups the most recent login events by account, newest group
// first, resolving each account's display identity from its own table.
func (s *AdminService) LoginAlerts(ctx context.Context, limit int) ([]LoginAlert, error) {
	if limit <= 0 {
		limit = alertDefaultLimit
	} else if limit < alertMinLimit {
		limit = alertMinLimit
	} else if limit > alertMaxLimit {
		limit = alertMaxLimit
	}

	var activities []models.LoginActivity
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("failed to load login activity: %w", err)
	}

	grouped := make(map[string]*LoginAlert)
	var order []string
	for _, a := range activities {
		key := string(a.UserType) + ":" + a.UserID.String()
		group, ok := grouped[key]
		if !ok {
			name, details := s.resolveAccount(ctx, a.UserType, a.UserID, a.Email)
			group = &LoginAlert{
				UserKey:       key,
				UserType:      string(a.UserType),
				UserID:        a.UserID,
				DisplayName:   name,
				Email:         a.Email,
				UserDetails:   details,
				LatestLoginAt: a.CreatedAt,
			}
			grouped[key] = group
			order = append(order, key)
		}
		if len(group.LoginActivities) < activity.DefaultRetention {
			group.LoginActivities = append(group.LoginActivities, a)
		}
	}

	alerts := make([]LoginAlert, 0, len(order))
	for _, key := range order {
		alerts = append(alerts, *grouped[key])
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].LatestLoginAt.After(alerts[j].LatestLoginAt)
	})
	return alerts, nil
}

// resolveAccount loads the minimal identity card for one account. Failures
// degrade to the email recorded on the activity row.
func (s *AdminService) resolveAccount(ctx context.Context, role models.Role, id uuid.UUID, fallback string) (string, any) {
	name := fallback
	if name == "" {
		name = "Unknown account"
	}

	switch role {
	case models.RolePlayer:
		var p models.Player
		if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err == nil {
			if p.FullName != "" {
				name = p.FullName
			}
			return name, map[string]any{
				"id": p.ID, "email": p.Email, "status": p.Status,
				"fullName": p.FullName, "fathersName": p.FathersName,
				"phone": p.Phone, "idNo": p.IDNo, "dob": p.DOB,
			}
		}
	case models.RoleInstitution:
		var inst models.Institution
		if err := s.db.WithContext(ctx).First(&inst, "id = ?", id).Error; err == nil {
			if inst.InstName != "" {
				name = inst.InstName
			}
			return name, map[string]any{
				"id": inst.ID, "email": inst.Email, "status": inst.Status,
				"instName": inst.InstName, "regNo": inst.RegNo,
				"officePhone": inst.OfficePhone, "altPhone": inst.AltPhone,
				"instType": inst.InstType, "totalPlayers": inst.TotalPlayers,
			}
		}
	case models.RoleOfficial:
		var o models.TechnicalOfficial
		if err := s.db.WithContext(ctx).First(&o, "id = ?", id).Error; err == nil {
			if o.CandidateName != "" {
				name = o.CandidateName
			}
			return name, map[string]any{
				"id": o.ID, "email": o.Email, "status": o.Status,
				"candidateName": o.CandidateName, "parentName": o.ParentName,
				"mobile": o.Mobile, "grade": o.Grade, "playerLevel": o.PlayerLevel,
			}
		}
	case models.RoleAdmin:
		var a models.Admin
		if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err == nil {
			if a.Username != "" {
				name = a.Username
			}
			return name, map[string]any{
				"id": a.ID, "email": a.Email,
				"username": a.Username, "role": a.Role, "permissions": a.Permissions.Data(),
			}
		}
	}
	return name, nil
}

func clientCoords(c *dto.Coordinates) *activity.ClientCoords {
	if c == nil || c.Latitude == nil || c.Longitude == nil {
		return nil
	}
	coords := &activity.ClientCoords{Latitude: *c.Latitude, Longitude: *c.Longitude}
	if c.Accuracy != nil {
		coords.Accuracy = *c.Accuracy
	}
	return coords
}
