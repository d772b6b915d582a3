package dto

import "github.com/ddka-tech/ddka-backend/internal/models"

// PermissionsPatch is a partial permissions update; nil fields keep their
// current value.
type PermissionsPatch struct {
	CanAccessGallery            *bool `json:"canAccessGallery"`
	CanAccessNews               *bool `json:"canAccessNews"`
	CanAccessContacts           *bool `json:"canAccessContacts"`
	CanAccessChampions          *bool `json:"canAccessChampions"`
	CanAccessReferees           *bool `json:"canAccessReferees"`
	CanAccessTechnicalOfficials *bool `json:"canAccessTechnicalOfficials"`
	CanAccessUnifiedSearch      *bool `json:"canAccessUnifiedSearch"`
	CanAccessPlayerDetails      *bool `json:"canAccessPlayerDetails"`
	CanAccessInstitutionDetails *bool `json:"canAccessInstitutionDetails"`
	CanAccessDonations          *bool `json:"canAccessDonations"`
	CanAccessImportantDocs      *bool `json:"canAccessImportantDocs"`
	CanDelete                   *bool `json:"canDelete"`
}

// ApplyTo merges the non-nil bits into an existing permission set.
func (p *PermissionsPatch) ApplyTo(perms *models.Permissions) {
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&perms.CanAccessGallery, p.CanAccessGallery)
	set(&perms.CanAccessNews, p.CanAccessNews)
	set(&perms.CanAccessContacts, p.CanAccessContacts)
	set(&perms.CanAccessChampions, p.CanAccessChampions)
	set(&perms.CanAccessReferees, p.CanAccessReferees)
	set(&perms.CanAccessTechnicalOfficials, p.CanAccessTechnicalOfficials)
	set(&perms.CanAccessUnifiedSearch, p.CanAccessUnifiedSearch)
	set(&perms.CanAccessPlayerDetails, p.CanAccessPlayerDetails)
	set(&perms.CanAccessInstitutionDetails, p.CanAccessInstitutionDetails)
	set(&perms.CanAccessDonations, p.CanAccessDonations)
	set(&perms.CanAccessImportantDocs, p.CanAccessImportantDocs)
	set(&perms.CanDelete, p.CanDelete)
}

// AdminUpdateRequest changes an admin's role and/or permission bits.
type AdminUpdateRequest struct {
	Role        string            `json:"role"`
	Permissions *PermissionsPatch `json:"permissions"`
}

// StatusUpdateRequest is the shared admin review action: record id + new
// lifecycle status. Remarks only apply to technical officials.
type StatusUpdateRequest struct {
	ID      string  `json:"id"`
	Status  string  `json:"status"`
	Remarks *string `json:"remarks"`
}

// ExamScoreRequest records an official's exam result; the grade is derived,
// never accepted from the client.
type ExamScoreRequest struct {
	ID        string `json:"id"`
	ExamScore *int   `json:"examScore"`
}

// AssignCardRequest manually assigns or overrides a player's card number.
type AssignCardRequest struct {
	ID            string `json:"id"`
	TransactionID string `json:"transactionId"`
	IDNo          string `json:"idNo"`
	MemberRole    string `json:"memberRole"`
}

// ClearCardRequest removes a player's card number and resets their role tag.
type ClearCardRequest struct {
	ID            string `json:"id"`
	TransactionID string `json:"transactionId"`
}
