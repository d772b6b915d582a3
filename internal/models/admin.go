package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	AdminRoleAdmin      = "admin"
	AdminRoleSuperadmin = "superadmin"
)

// Permissions is the capability set checked by the permission gate.
// Keys line up with the admin dashboard tabs.
type Permissions struct {
	CanAccessGallery            bool `json:"canAccessGallery"`
	CanAccessNews               bool `json:"canAccessNews"`
	CanAccessContacts           bool `json:"canAccessContacts"`
	CanAccessChampions          bool `json:"canAccessChampions"`
	CanAccessReferees           bool `json:"canAccessReferees"`
	CanAccessTechnicalOfficials bool `json:"canAccessTechnicalOfficials"`
	CanAccessUnifiedSearch      bool `json:"canAccessUnifiedSearch"`
	CanAccessPlayerDetails      bool `json:"canAccessPlayerDetails"`
	CanAccessInstitutionDetails bool `json:"canAccessInstitutionDetails"`
	CanAccessDonations          bool `json:"canAccessDonations"`
	CanAccessImportantDocs      bool `json:"canAccessImportantDocs"`
	CanDelete                   bool `json:"canDelete"`
}

// DefaultPermissions grants every dashboard section; delete stays reserved
// for superadmins unless explicitly granted.
func DefaultPermissions(role string) Permissions {
	p := Permissions{
		CanAccessGallery:            true,
		CanAccessNews:               true,
		CanAccessContacts:           true,
		CanAccessChampions:          true,
		CanAccessReferees:           true,
		CanAccessTechnicalOfficials: true,
		CanAccessUnifiedSearch:      true,
		CanAccessPlayerDetails:      true,
		CanAccessInstitutionDetails: true,
		CanAccessDonations:          true,
		CanAccessImportantDocs:      true,
	}
	p.CanDelete = role == AdminRoleSuperadmin
	return p
}

// Admin is an operator account. The first account ever created becomes
// superadmin; the system always retains at least one superadmin.
type Admin struct {
	ID          uuid.UUID                          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username    string                             `gorm:"size:80;not null;uniqueIndex" json:"username"`
	Email       string                             `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password    string                             `gorm:"not null" json:"-"`
	Role        string                             `gorm:"size:20;default:'admin'" json:"role"`
	Permissions datatypes.JSONType[Permissions]    `gorm:"type:jsonb" json:"permissions"`
	CreatedAt   time.Time                          `json:"createdAt"`
	UpdatedAt   time.Time                          `json:"updatedAt"`
}
