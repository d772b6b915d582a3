package activity

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddka-tech/ddka-backend/internal/models"
)

type memStore struct {
	events    []models.LoginActivity
	clock     time.Time
	insertErr error
	countErr  error
}

func (s *memStore) Insert(_ context.Context, event *models.LoginActivity) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	event.ID = uuid.New()
	s.clock = s.clock.Add(time.Second)
	event.CreatedAt = s.clock
	s.events = append(s.events, *event)
	return nil
}

func (s *memStore) CountForUser(_ context.Context, userID uuid.UUID, role models.Role) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	var n int64
	for _, e := range s.events {
		if e.UserID == userID && e.UserType == role {
			n++
		}
	}
	return n, nil
}

func (s *memStore) OldestIDs(_ context.Context, userID uuid.UUID, role models.Role, n int) ([]uuid.UUID, error) {
	var matched []models.LoginActivity
	for _, e := range s.events {
		if e.UserID == userID && e.UserType == role {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	if n > len(matched) {
		n = len(matched)
	}
	ids := make([]uuid.UUID, 0, n)
	for _, e := range matched[:n] {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

func (s *memStore) DeleteByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	drop := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	var kept []models.LoginActivity
	var deleted int64
	for _, e := range s.events {
		if drop[e.ID] {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	s.events = kept
	return deleted, nil
}

func (s *memStore) RecentForUser(_ context.Context, userID uuid.UUID, role models.Role, limit int) ([]models.LoginActivity, error) {
	var matched []models.LoginActivity
	for _, e := range s.events {
		if e.UserID == userID && e.UserType == role {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

type fakeLocator struct {
	lat, lon float64
	ok       bool
}

func (l fakeLocator) Locate(string) (float64, float64, bool) { return l.lat, l.lon, l.ok }

type fakeGeocoder struct {
	label string
	err   error
	calls int
}

func (g *fakeGeocoder) Label(context.Context, float64, float64) (string, error) {
	g.calls++
	return g.label, g.err
}

func TestRecordKeepsAtMostThreePerAccount(t *testing.T) {
	store := &memStore{clock: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)}
	rec := NewRecorder(store, nil, nil)
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		rec.Record(context.Background(), userID, models.RolePlayer, "p@example.com", "password", RequestInfo{}, nil)
	}

	events, err := rec.Recent(context.Background(), userID, models.RolePlayer, 10)
	require.NoError(t, err)
	assert.Len(t, events, 3)

	// The survivors are the newest three.
	for i := 1; i < len(events); i++ {
		assert.True(t, events[i-1].CreatedAt.After(events[i].CreatedAt))
	}
}

func TestRecordRetentionIsPerRole(t *testing.T) {
	store := &memStore{clock: time.Now()}
	rec := NewRecorder(store, nil, nil)
	userID := uuid.New()

	for i := 0; i < 4; i++ {
		rec.Record(context.Background(), userID, models.RolePlayer, "p@example.com", "password", RequestInfo{}, nil)
	}
	rec.Record(context.Background(), userID, models.RoleAdmin, "a@example.com", "password", RequestInfo{}, nil)

	players, err := rec.Recent(context.Background(), userID, models.RolePlayer, 10)
	require.NoError(t, err)
	admins, err := rec.Recent(context.Background(), userID, models.RoleAdmin, 10)
	require.NoError(t, err)
	assert.Len(t, players, 3)
	assert.Len(t, admins, 1)
}

func TestRecordClientCoordinatesWinAndGetLabeled(t *testing.T) {
	store := &memStore{clock: time.Now()}
	geocoder := &fakeGeocoder{label: "Dharwad, Karnataka, India"}
	rec := NewRecorder(store, fakeLocator{lat: 1, lon: 1, ok: true}, geocoder)

	coords := &ClientCoords{Latitude: 15.4589, Longitude: 75.0078, Accuracy: 20}
	rec.Record(context.Background(), uuid.New(), models.RolePlayer, "p@example.com", "password", RequestInfo{RemoteIP: "1.2.3.4"}, coords)

	require.Len(t, store.events, 1)
	e := store.events[0]
	require.NotNil(t, e.Latitude)
	assert.Equal(t, 15.4589, *e.Latitude)
	assert.Equal(t, 75.0078, *e.Longitude)
	assert.Equal(t, 20.0, *e.Accuracy)
	assert.Equal(t, "Dharwad, Karnataka, India", e.LocationLabel)
	assert.Equal(t, 1, geocoder.calls)
}

func TestRecordFallsBackToIPLookup(t *testing.T) {
	store := &memStore{clock: time.Now()}
	geocoder := &fakeGeocoder{label: "should not be called"}
	rec := NewRecorder(store, fakeLocator{lat: 15.3, lon: 75.1, ok: true}, geocoder)

	rec.Record(context.Background(), uuid.New(), models.RolePlayer, "p@example.com", "password", RequestInfo{RemoteIP: "1.2.3.4"}, nil)

	require.Len(t, store.events, 1)
	e := store.events[0]
	require.NotNil(t, e.Latitude)
	assert.Equal(t, 15.3, *e.Latitude)
	assert.Empty(t, e.LocationLabel)
	assert.Zero(t, geocoder.calls)
}

func TestRecordGeocoderFailureIsSwallowed(t *testing.T) {
	store := &memStore{clock: time.Now()}
	geocoder := &fakeGeocoder{err: errors.New("timeout")}
	rec := NewRecorder(store, nil, geocoder)

	coords := &ClientCoords{Latitude: 15.0, Longitude: 75.0}
	rec.Record(context.Background(), uuid.New(), models.RolePlayer, "p@example.com", "password", RequestInfo{}, coords)

	require.Len(t, store.events, 1)
	e := store.events[0]
	require.NotNil(t, e.Latitude)
	assert.Empty(t, e.LocationLabel)
}

func TestRecordInsertFailureIsSwallowed(t *testing.T) {
	store := &memStore{insertErr: errors.New("connection refused")}
	rec := NewRecorder(store, nil, nil)

	// Must not panic or propagate.
	rec.Record(context.Background(), uuid.New(), models.RolePlayer, "p@example.com", "password", RequestInfo{}, nil)
	assert.Empty(t, store.events)
}

func TestRecordCountFailureLeavesHistoryIntact(t *testing.T) {
	store := &memStore{clock: time.Now(), countErr: errors.New("down")}
	rec := NewRecorder(store, nil, nil)

	rec.Record(context.Background(), uuid.New(), models.RolePlayer, "p@example.com", "password", RequestInfo{}, nil)
	assert.Len(t, store.events, 1)
}

func TestRecordCapturesRequestMetadata(t *testing.T) {
	store := &memStore{clock: time.Now()}
	rec := NewRecorder(store, nil, nil)

	req := RequestInfo{
		RemoteIP:       "10.0.0.1",
		ForwardedFor:   "203.0.113.7, 10.0.0.1",
		UserAgent:      "Mozilla/5.0",
		AcceptLanguage: "kn-IN",
		Referer:        "https://ddka.example/login",
		Path:           "/api/auth/login",
		Method:         "POST",
		Host:           "api.ddka.example",
		Country:        "IN",
	}
	rec.Record(context.Background(), uuid.New(), models.RoleInstitution, "inst@example.com", "password", req, nil)

	require.Len(t, store.events, 1)
	e := store.events[0]
	assert.Equal(t, "203.0.113.7", e.IP)
	assert.Equal(t, "203.0.113.7, 10.0.0.1", e.ForwardedIP)
	assert.Equal(t, "IN", e.Country)
	assert.Equal(t, "password", e.LoginType)
	assert.Equal(t, models.RoleInstitution, e.UserType)
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "203.0.113.7", ClientIP("10.0.0.1", "203.0.113.7, 10.0.0.1"))
	assert.Equal(t, "203.0.113.7", ClientIP("10.0.0.1", " 203.0.113.7 "))
	assert.Equal(t, "10.0.0.1", ClientIP("10.0.0.1", ""))
	assert.Equal(t, "10.0.0.1", ClientIP("10.0.0.1", " , "))
}

func TestNormalizeCountry(t *testing.T) {
	assert.Equal(t, "IN", NormalizeCountry("", "in"))
	assert.Equal(t, "IN", NormalizeCountry("XX", "IN"))
	assert.Equal(t, "", NormalizeCountry("??", "xx", ""))
	assert.Equal(t, "US", NormalizeCountry("US", "IN"))
}
