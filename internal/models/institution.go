package models

import (
	"time"

	"github.com/google/uuid"
)

// Institution is an affiliation application from a school, college or club.
type Institution struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InstName      string    `gorm:"size:255;not null" json:"instName"`
	InstType      string    `gorm:"size:40;default:'Other'" json:"instType"`
	RegNo         string    `gorm:"size:80;index" json:"regNo"`
	Year          int       `json:"year"`
	HeadName      string    `gorm:"size:255" json:"headName"`
	SecretaryName string    `gorm:"size:255" json:"secretaryName"`
	TotalPlayers  int       `json:"totalPlayers"`
	Area          string    `gorm:"size:120" json:"area"`
	SurfaceType   string    `gorm:"size:60" json:"surfaceType"`
	Email         string    `gorm:"size:255;index" json:"email"`
	OfficePhone   string    `gorm:"size:40" json:"officePhone"`
	AltPhone      string    `gorm:"size:40" json:"altPhone"`
	Address       string    `gorm:"type:text" json:"address"`
	ContactPerson string    `gorm:"size:255" json:"contactPerson"`
	AcceptedTerms bool      `gorm:"default:false" json:"acceptedTerms"`

	InstLogoURL   string `gorm:"size:500" json:"instLogoUrl"`
	ScreenshotURL string `gorm:"size:500" json:"screenshotUrl"`
	TransactionID string `gorm:"size:80;index" json:"transactionId"`

	Status string `gorm:"size:20;default:'Pending'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
