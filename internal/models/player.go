package models

import (
	"time"

	"github.com/google/uuid"
)

// Player is a public registration for an individual member.
// IDNo is the printed card number (DDKA-NNNN); empty until the record is
// approved and a number is assigned, exactly once.
type Player struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName         string    `gorm:"size:255;not null" json:"fullName"`
	FathersName      string    `gorm:"size:255;not null" json:"fathersName"`
	Gender           string    `gorm:"size:20;not null" json:"gender"`
	DOB              time.Time `gorm:"not null" json:"dob"`
	BloodGroup       string    `gorm:"size:10;not null" json:"bloodGroup"`
	Email            string    `gorm:"size:255;not null;index" json:"email"`
	Phone            string    `gorm:"size:40;not null" json:"phone"`
	ParentsPhone     string    `gorm:"size:40" json:"parentsPhone"`
	Address          string    `gorm:"type:text;not null" json:"address"`
	AadharNumber     string    `gorm:"size:40;not null;index" json:"aadharNumber"`
	District         string    `gorm:"size:120" json:"district"`
	SportsExperience string    `gorm:"type:text" json:"sportsExperience"`
	ReasonForJoining string    `gorm:"type:text;not null" json:"reasonForJoining"`
	AcceptedTerms    bool      `gorm:"not null;default:false" json:"acceptedTerms"`
	TransactionID    string    `gorm:"size:80;index" json:"transactionId"`

	PhotoURL       string `gorm:"size:500;not null" json:"photoUrl"`
	AadharFrontURL string `gorm:"size:500;not null" json:"aadharFrontUrl"`
	AadharBackURL  string `gorm:"size:500;not null" json:"aadharBackUrl"`
	ReceiptURL     string `gorm:"size:500" json:"receiptUrl"`

	// Not unique at the schema level to avoid hard failures on rare
	// collisions; uniqueness is enforced by the assignment path.
	IDNo       string `gorm:"size:20;index" json:"idNo"`
	MemberRole string `gorm:"size:40;default:'Player'" json:"memberRole"`
	Status     string `gorm:"size:20;default:'Pending'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
