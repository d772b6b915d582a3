package models

import (
	"time"

	"github.com/google/uuid"
)

// TechnicalOfficial is an examinee applying to referee/officiate.
// Grade is derived from ExamScore (A 71-100, B 61-70, C 50-60, else empty)
// and never set directly by clients.
type TechnicalOfficial struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CandidateName string    `gorm:"size:255;not null" json:"candidateName"`
	ParentName    string    `gorm:"size:255;not null" json:"parentName"`
	DOB           time.Time `gorm:"not null" json:"dob"`
	Address       string    `gorm:"type:text;not null" json:"address"`
	AadharNumber  string    `gorm:"size:40;not null;index" json:"aadharNumber"`
	Gender        string    `gorm:"size:30;not null" json:"gender"`
	BloodGroup    string    `gorm:"size:10;default:'NA'" json:"bloodGroup"`
	PlayerLevel   string    `gorm:"size:40;not null" json:"playerLevel"`
	Work          string    `gorm:"size:255;not null" json:"work"`
	Mobile        string    `gorm:"size:40;not null" json:"mobile"`
	Education     string    `gorm:"size:255;not null" json:"education"`
	Email         string    `gorm:"size:255;not null;index" json:"email"`

	TransactionID string  `gorm:"size:80;index" json:"transactionId"`
	ExamFee       int     `gorm:"default:1000" json:"examFee"`
	ReceiptURL    string  `gorm:"size:500" json:"receiptUrl"`
	SignatureURL  string  `gorm:"size:500;not null" json:"signatureUrl"`
	PhotoURL      string  `gorm:"size:500;not null" json:"photoUrl"`
	ExamScore     *int    `json:"examScore"`
	Grade         string  `gorm:"size:2" json:"grade"`
	Status        string  `gorm:"size:20;default:'Pending'" json:"status"`
	Remarks       string  `gorm:"type:text" json:"remarks"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
