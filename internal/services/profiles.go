package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/ddka-tech/ddka-backend/internal/models"
)

// Sanitized member profiles. Payment references are deliberately omitted
// from everything a member can see about themself.

type playerProfile struct {
	ID              uuid.UUID              `json:"id"`
	FullName        string                 `json:"fullName"`
	FathersName     string                 `json:"fathersName"`
	Gender          string                 `json:"gender"`
	DOB             time.Time              `json:"dob"`
	BloodGroup      string                 `json:"bloodGroup"`
	Email           string                 `json:"email"`
	Phone           string                 `json:"phone"`
	ParentsPhone    string                 `json:"parentsPhone"`
	Address         string                 `json:"address"`
	AadharNumber    string                 `json:"aadharNumber"`
	PhotoURL        string                 `json:"photoUrl"`
	AadharFrontURL  string                 `json:"aadharFrontUrl"`
	AadharBackURL   string                 `json:"aadharBackUrl"`
	IDNo            string                 `json:"idNo"`
	MemberRole      string                 `json:"memberRole"`
	Status          string                 `json:"status"`
	CreatedAt       time.Time              `json:"createdAt"`
	LoginActivities []models.LoginActivity `json:"loginActivities,omitempty"`
}

func PlayerProfile(p *models.Player, activities []models.LoginActivity) any {
	return playerProfile{
		ID:              p.ID,
		FullName:        p.FullName,
		FathersName:     p.FathersName,
		Gender:          p.Gender,
		DOB:             p.DOB,
		BloodGroup:      p.BloodGroup,
		Email:           p.Email,
		Phone:           p.Phone,
		ParentsPhone:    p.ParentsPhone,
		Address:         p.Address,
		AadharNumber:    p.AadharNumber,
		PhotoURL:        p.PhotoURL,
		AadharFrontURL:  p.AadharFrontURL,
		AadharBackURL:   p.AadharBackURL,
		IDNo:            p.IDNo,
		MemberRole:      p.MemberRole,
		Status:          p.Status,
		CreatedAt:       p.CreatedAt,
		LoginActivities: activities,
	}
}

type institutionProfile struct {
	ID              uuid.UUID              `json:"id"`
	InstType        string                 `json:"instType"`
	InstName        string                 `json:"instName"`
	RegNo           string                 `json:"regNo"`
	Year            int                    `json:"year"`
	HeadName        string                 `json:"headName"`
	SecretaryName   string                 `json:"secretaryName"`
	TotalPlayers    int                    `json:"totalPlayers"`
	Area            string                 `json:"area"`
	SurfaceType     string                 `json:"surfaceType"`
	OfficePhone     string                 `json:"officePhone"`
	AltPhone        string                 `json:"altPhone"`
	Email           string                 `json:"email"`
	Address         string                 `json:"address"`
	AcceptedTerms   bool                   `json:"acceptedTerms"`
	ScreenshotURL   string                 `json:"screenshotUrl"`
	InstLogoURL     string                 `json:"instLogoUrl"`
	Status          string                 `json:"status"`
	CreatedAt       time.Time              `json:"createdAt"`
	LoginActivities []models.LoginActivity `json:"loginActivities,omitempty"`
}

func InstitutionProfile(inst *models.Institution, activities []models.LoginActivity) any {
	return institutionProfile{
		ID:              inst.ID,
		InstType:        inst.InstType,
		InstName:        inst.InstName,
		RegNo:           inst.RegNo,
		Year:            inst.Year,
		HeadName:        inst.HeadName,
		SecretaryName:   inst.SecretaryName,
		TotalPlayers:    inst.TotalPlayers,
		Area:            inst.Area,
		SurfaceType:     inst.SurfaceType,
		OfficePhone:     inst.OfficePhone,
		AltPhone:        inst.AltPhone,
		Email:           inst.Email,
		Address:         inst.Address,
		AcceptedTerms:   inst.AcceptedTerms,
		ScreenshotURL:   inst.ScreenshotURL,
		InstLogoURL:     inst.InstLogoURL,
		Status:          inst.Status,
		CreatedAt:       inst.CreatedAt,
		LoginActivities: activities,
	}
}

type officialProfile struct {
	ID              uuid.UUID              `json:"id"`
	CandidateName   string                 `json:"candidateName"`
	ParentName      string                 `json:"parentName"`
	DOB             time.Time              `json:"dob"`
	Address         string                 `json:"address"`
	AadharNumber    string                 `json:"aadharNumber"`
	Gender          string                 `json:"gender"`
	BloodGroup      string                 `json:"bloodGroup"`
	PlayerLevel     string                 `json:"playerLevel"`
	Work            string                 `json:"work"`
	Mobile          string                 `json:"mobile"`
	Education       string                 `json:"education"`
	Email           string                 `json:"email"`
	SignatureURL    string                 `json:"signatureUrl"`
	PhotoURL        string                 `json:"photoUrl"`
	ExamScore       *int                   `json:"examScore"`
	Grade           string                 `json:"grade"`
	Status          string                 `json:"status"`
	Remarks         string                 `json:"remarks"`
	CreatedAt       time.Time              `json:"createdAt"`
	LoginActivities []models.LoginActivity `json:"loginActivities,omitempty"`
}

func OfficialProfile(o *models.TechnicalOfficial, activities []models.LoginActivity) any {
	return officialProfile{
		ID:              o.ID,
		CandidateName:   o.CandidateName,
		ParentName:      o.ParentName,
		DOB:             o.DOB,
		Address:         o.Address,
		AadharNumber:    o.AadharNumber,
		Gender:          o.Gender,
		BloodGroup:      o.BloodGroup,
		PlayerLevel:     o.PlayerLevel,
		Work:            o.Work,
		Mobile:          o.Mobile,
		Education:       o.Education,
		Email:           o.Email,
		SignatureURL:    o.SignatureURL,
		PhotoURL:        o.PhotoURL,
		ExamScore:       o.ExamScore,
		Grade:           o.Grade,
		Status:          o.Status,
		Remarks:         o.Remarks,
		CreatedAt:       o.CreatedAt,
		LoginActivities: activities,
	}
}

type donorProfile struct {
	Email              string            `json:"email"`
	Phone              string            `json:"phone"`
	TotalDonations     int               `json:"totalDonations"`
	ConfirmedCount     int               `json:"confirmedCount"`
	ConfirmedDonations []donationSummary `json:"confirmedDonations"`
	LatestDonationID   *uuid.UUID        `json:"latestDonationId"`
}

func DonorProfile(email, phone string, total int, confirmed []models.Donation) any {
	profile := donorProfile{
		Email:              email,
		Phone:              phone,
		TotalDonations:     total,
		ConfirmedCount:     len(confirmed),
		ConfirmedDonations: summarize(confirmed),
	}
	if len(confirmed) > 0 {
		id := confirmed[0].ID
		profile.LatestDonationID = &id
	}
	return profile
}
