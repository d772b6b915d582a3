package verify

import (
	"strings"
	"time"

	"github.com/ddka-tech/ddka-backend/internal/models"
)

// Record is the common shape every verified entity is reduced to.
type Record struct {
	Role       string   `json:"role"`
	IDNumber   string   `json:"idNumber"`
	Name       string   `json:"name"`
	FatherName string   `json:"fatherName"`
	DOB        string   `json:"dob,omitempty"`
	PhotoURL   string   `json:"photoUrl"`
	Roles      []string `json:"roles"`
	Status     string   `json:"status"`
}

// UnifiedRecord is the merged verification result: the highest-priority
// record's fields at the top level, every found record in Records, and Roles
// the union across all of them.
type UnifiedRecord struct {
	Record
	Records []Record `json:"records"`
}

const (
	roleTagPlayer    = "player"
	roleTagOfficial  = "official"
	roleTagInstitute = "institute"
)

func normalizePlayer(p *models.Player, identifier string) Record {
	idNumber := p.IDNo
	if idNumber == "" {
		idNumber = identifier
	}

	roles := []string{roleTagPlayer}
	memberRole := strings.ToLower(p.MemberRole)
	if strings.Contains(memberRole, "official") || strings.Contains(memberRole, "referee") {
		roles = append(roles, roleTagOfficial)
	}
	if strings.Contains(memberRole, "inst") {
		roles = append(roles, roleTagInstitute)
	}

	return Record{
		Role:       roleTagPlayer,
		IDNumber:   idNumber,
		Name:       p.FullName,
		FatherName: p.FathersName,
		DOB:        isoDate(p.DOB),
		PhotoURL:   p.PhotoURL,
		Roles:      roles,
		Status:     p.Status,
	}
}

// RegistrationCode derives an official's public registration number from the
// tail of its internal id: PREFIX-XXXX, uppercased.
func RegistrationCode(prefix string, o *models.TechnicalOfficial) string {
	id := o.ID.String()
	if len(id) < 4 {
		return ""
	}
	return prefix + "-" + strings.ToUpper(id[len(id)-4:])
}

func (s *Service) normalizeOfficial(o *models.TechnicalOfficial, identifier string) Record {
	idNumber := RegistrationCode(s.regPrefix, o)
	if idNumber == "" {
		idNumber = o.TransactionID
	}
	if idNumber == "" {
		idNumber = identifier
	}

	return Record{
		Role:       roleTagOfficial,
		IDNumber:   idNumber,
		Name:       o.CandidateName,
		FatherName: o.ParentName,
		DOB:        isoDate(o.DOB),
		PhotoURL:   o.PhotoURL,
		Roles:      []string{roleTagOfficial},
		Status:     o.Status,
	}
}

func normalizeInstitution(inst *models.Institution, identifier string) Record {
	idNumber := inst.RegNo
	if idNumber == "" {
		idNumber = inst.TransactionID
	}
	if idNumber == "" {
		idNumber = identifier
	}

	fatherName := inst.HeadName
	if fatherName == "" {
		fatherName = "--"
	}

	dob := ""
	if inst.Year > 0 {
		dob = isoDate(time.Date(inst.Year, time.January, 1, 0, 0, 0, 0, time.UTC))
	}

	return Record{
		Role:       roleTagInstitute,
		IDNumber:   idNumber,
		Name:       inst.InstName,
		FatherName: fatherName,
		DOB:        dob,
		PhotoURL:   inst.InstLogoURL,
		Roles:      []string{roleTagInstitute},
		Status:     inst.Status,
	}
}

func isoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
