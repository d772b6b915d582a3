package models

import (
	"time"

	"github.com/google/uuid"
)

// LoginActivity is one successful-authentication audit event. Rows weakly
// reference the owning account by (UserID, UserType); at most three rows are
// retained per pair.
type LoginActivity struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_login_activity_user" json:"userId"`
	UserType Role      `gorm:"size:20;not null;index:idx_login_activity_user" json:"userType"`
	Email    string    `gorm:"size:255" json:"email"`

	IP             string `gorm:"size:64" json:"ip"`
	ForwardedIP    string `gorm:"size:255" json:"forwardedIp"`
	UserAgent      string `gorm:"size:500" json:"userAgent"`
	AcceptLanguage string `gorm:"size:255" json:"acceptLanguage"`
	Referer        string `gorm:"size:500" json:"referer"`
	Path           string `gorm:"size:500" json:"path"`
	Method         string `gorm:"size:10" json:"method"`
	Host           string `gorm:"size:255" json:"host"`
	LoginType      string `gorm:"size:40" json:"loginType"`

	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Accuracy      *float64 `json:"accuracy"`
	LocationLabel string   `gorm:"size:500" json:"locationLabel"`
	Country       string   `gorm:"size:4" json:"country"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
