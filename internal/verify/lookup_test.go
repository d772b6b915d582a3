package verify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddka-tech/ddka-backend/internal/models"
)

type fakeDirectory struct {
	players      []*models.Player
	officials    []*models.TechnicalOfficial
	institutions []*models.Institution
	err          error
}

func (d *fakeDirectory) PlayerByIdentifier(_ context.Context, identifier string) (*models.Player, error) {
	if d.err != nil {
		return nil, d.err
	}
	id := strings.ToLower(strings.TrimSpace(identifier))
	for _, p := range d.players {
		if strings.ToLower(p.IDNo) == id || strings.ToLower(p.TransactionID) == id ||
			strings.ToLower(p.Email) == id || p.Phone == id || p.AadharNumber == id {
			return p, nil
		}
	}
	return nil, nil
}

func (d *fakeDirectory) OfficialByIdentifier(_ context.Context, identifier string) (*models.TechnicalOfficial, error) {
	if d.err != nil {
		return nil, d.err
	}
	id := strings.ToLower(strings.TrimSpace(identifier))
	for _, o := range d.officials {
		if strings.ToLower(o.TransactionID) == id || strings.ToLower(o.Email) == id ||
			o.Mobile == id || o.AadharNumber == id {
			return o, nil
		}
	}
	return nil, nil
}

func (d *fakeDirectory) InstitutionByIdentifier(_ context.Context, identifier string) (*models.Institution, error) {
	if d.err != nil {
		return nil, d.err
	}
	id := strings.ToLower(strings.TrimSpace(identifier))
	for _, i := range d.institutions {
		if strings.ToLower(i.RegNo) == id || strings.ToLower(i.TransactionID) == id ||
			strings.ToLower(i.Email) == id {
			return i, nil
		}
	}
	return nil, nil
}

func (d *fakeDirectory) PlayerByTransactionID(_ context.Context, txn string) (*models.Player, error) {
	if txn == "" {
		return nil, nil
	}
	for _, p := range d.players {
		if strings.EqualFold(p.TransactionID, txn) {
			return p, nil
		}
	}
	return nil, nil
}

func (d *fakeDirectory) PlayerByContact(_ context.Context, email, phone string) (*models.Player, error) {
	for _, p := range d.players {
		if (email != "" && strings.EqualFold(p.Email, email)) || (phone != "" && p.Phone == phone) {
			return p, nil
		}
	}
	return nil, nil
}

func (d *fakeDirectory) OfficialByContact(_ context.Context, email, mobile string) (*models.TechnicalOfficial, error) {
	for _, o := range d.officials {
		if (email != "" && strings.EqualFold(o.Email, email)) || (mobile != "" && o.Mobile == mobile) {
			return o, nil
		}
	}
	return nil, nil
}

func testPlayer() *models.Player {
	return &models.Player{
		ID:            uuid.New(),
		FullName:      "Ravi Kumar",
		FathersName:   "Mohan Kumar",
		DOB:           time.Date(2004, 3, 12, 0, 0, 0, 0, time.UTC),
		Email:         "ravi@example.com",
		Phone:         "9876543210",
		AadharNumber:  "123412341234",
		TransactionID: "TXN1001",
		IDNo:          "DDKA-0042",
		MemberRole:    "Player",
		Status:        models.StatusApproved,
		PhotoURL:      "https://img.example/ravi.jpg",
	}
}

func testOfficial() *models.TechnicalOfficial {
	return &models.TechnicalOfficial{
		ID:            uuid.New(),
		CandidateName: "Ravi Kumar",
		ParentName:    "Mohan Kumar",
		DOB:           time.Date(2004, 3, 12, 0, 0, 0, 0, time.UTC),
		Email:         "ravi@example.com",
		Mobile:        "9876543210",
		AadharNumber:  "123412341234",
		TransactionID: "TXN2002",
		Status:        models.StatusApproved,
		PhotoURL:      "https://img.example/ravi-official.jpg",
	}
}

func TestLookupPlayerOnly(t *testing.T) {
	dir := &fakeDirectory{players: []*models.Player{testPlayer()}}
	svc := NewService(dir, "DDKA-2026")

	rec, err := svc.LookupPlayer(context.Background(), "ddka-0042")
	require.NoError(t, err)
	assert.Equal(t, roleTagPlayer, rec.Role)
	assert.Equal(t, "DDKA-0042", rec.IDNumber)
	assert.Equal(t, "Ravi Kumar", rec.Name)
	assert.Equal(t, []string{roleTagPlayer}, rec.Roles)
}

func TestLookupPlayerNotFound(t *testing.T) {
	svc := NewService(&fakeDirectory{}, "DDKA-2026")

	_, err := svc.LookupPlayer(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupStoreErrorIsNotNotFound(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewService(&fakeDirectory{err: storeErr}, "DDKA-2026")

	_, err := svc.Lookup(context.Background(), "anything")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestUnifiedLookupNotFound(t *testing.T) {
	svc := NewService(&fakeDirectory{}, "DDKA-2026")

	_, err := svc.Lookup(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnifiedLookupOfficialOutranksPlayer(t *testing.T) {
	player := testPlayer()
	official := testOfficial()
	// Shared aadhar matches both directly.
	dir := &fakeDirectory{
		players:   []*models.Player{player},
		officials: []*models.TechnicalOfficial{official},
	}
	svc := NewService(dir, "DDKA-2026")

	res, err := svc.Lookup(context.Background(), "123412341234")
	require.NoError(t, err)

	assert.Equal(t, roleTagOfficial, res.Role)
	require.Len(t, res.Records, 2)
	assert.Equal(t, roleTagOfficial, res.Records[0].Role)
	assert.Equal(t, roleTagPlayer, res.Records[1].Role)
	assert.ElementsMatch(t, []string{roleTagOfficial, roleTagPlayer}, res.Roles)
}

func TestUnifiedLookupCrossLinksByTransactionID(t *testing.T) {
	player := testPlayer()
	official := testOfficial()
	// Only the player matches the queried id, but the official shares the
	// player's payment reference.
	official.TransactionID = player.TransactionID
	official.Email = "other@example.com"
	official.Mobile = "0000000000"
	official.AadharNumber = "999999999999"

	dir := &fakeDirectory{
		players:   []*models.Player{player},
		officials: []*models.TechnicalOfficial{official},
	}
	svc := NewService(dir, "DDKA-2026")

	res, err := svc.Lookup(context.Background(), "DDKA-0042")
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, roleTagOfficial, res.Role)
}

func TestUnifiedLookupCrossLinksByContact(t *testing.T) {
	player := testPlayer()
	player.TransactionID = ""
	official := testOfficial()
	official.TransactionID = "TXN-OTHER"
	official.AadharNumber = "999999999999"
	official.Mobile = player.Phone
	official.Email = "other@example.com"

	dir := &fakeDirectory{
		players:   []*models.Player{player},
		officials: []*models.TechnicalOfficial{official},
	}
	svc := NewService(dir, "DDKA-2026")

	res, err := svc.Lookup(context.Background(), "DDKA-0042")
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
}

func TestUnifiedLookupReverseCrossLink(t *testing.T) {
	official := testOfficial()
	player := testPlayer()
	player.IDNo = ""
	player.AadharNumber = "999999999999"
	player.Email = "other@example.com"
	player.TransactionID = ""
	player.Phone = official.Mobile

	dir := &fakeDirectory{
		players:   []*models.Player{player},
		officials: []*models.TechnicalOfficial{official},
	}
	svc := NewService(dir, "DDKA-2026")

	// Matches only the official; the player is pulled in via shared phone.
	res, err := svc.Lookup(context.Background(), official.TransactionID)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, roleTagOfficial, res.Records[0].Role)
	assert.Equal(t, roleTagPlayer, res.Records[1].Role)
}

func TestUnifiedLookupInstitution(t *testing.T) {
	inst := &models.Institution{
		ID:       uuid.New(),
		InstName: "Dharwad Sports Academy",
		RegNo:    "REG-778",
		Year:     1998,
		Email:    "academy@example.com",
		Status:   models.StatusApproved,
	}
	svc := NewService(&fakeDirectory{institutions: []*models.Institution{inst}}, "DDKA-2026")

	res, err := svc.Lookup(context.Background(), "reg-778")
	require.NoError(t, err)
	assert.Equal(t, roleTagInstitute, res.Role)
	assert.Equal(t, "REG-778", res.IDNumber)
	assert.Equal(t, "--", res.FatherName)
	assert.Equal(t, "1998-01-01T00:00:00Z", res.DOB)
}

func TestUnifiedLookupIDNumberFallsBackToIdentifier(t *testing.T) {
	player := testPlayer()
	player.IDNo = ""
	player.TransactionID = ""
	svc := NewService(&fakeDirectory{players: []*models.Player{player}}, "DDKA-2026")

	res, err := svc.Lookup(context.Background(), "ravi@example.com")
	require.NoError(t, err)
	assert.Equal(t, "RAVI@EXAMPLE.COM", res.IDNumber)
}

func TestNormalizePlayerRoleTags(t *testing.T) {
	player := testPlayer()
	player.MemberRole = "Player cum Official"
	rec := normalizePlayer(player, "X")
	assert.ElementsMatch(t, []string{roleTagPlayer, roleTagOfficial}, rec.Roles)

	player.MemberRole = "Institution Representative"
	rec = normalizePlayer(player, "X")
	assert.ElementsMatch(t, []string{roleTagPlayer, roleTagInstitute}, rec.Roles)
}

func TestRegistrationCode(t *testing.T) {
	official := testOfficial()
	code := RegistrationCode("DDKA-2026", official)
	require.NotEmpty(t, code)
	assert.True(t, strings.HasPrefix(code, "DDKA-2026-"))
	assert.Len(t, code, len("DDKA-2026-")+4)
	assert.Equal(t, strings.ToUpper(code), code)
}
