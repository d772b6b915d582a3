package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DonationPending   = "pending"
	DonationConfirmed = "confirmed"
	DonationFailed    = "failed"
)

type Donation struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Email         string    `gorm:"size:255;index" json:"email"`
	Phone         string    `gorm:"size:40" json:"phone"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Method        string    `gorm:"size:40;default:'upi'" json:"method"`
	Message       string    `gorm:"type:text" json:"message"`
	ReceiptURL    string    `gorm:"size:500" json:"receiptUrl"`
	TxID          string    `gorm:"size:80" json:"txId"`
	ReceiptNumber string    `gorm:"size:80" json:"receiptNumber"`
	Status        string    `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
