package models

import (
	"time"

	"github.com/google/uuid"
)

// Setting is the single mutable feature-flag row. It is read through the
// settings service's TTL cache, never queried ad hoc from handlers.
type Setting struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ShowIDsToUsers bool      `gorm:"default:true" json:"showIdsToUsers"`
	AllowDonations bool      `gorm:"default:true" json:"allowDonations"`
	ExportEnabled  bool      `gorm:"default:true" json:"exportEnabled"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
