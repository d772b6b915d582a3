package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddka-tech/ddka-backend/internal/models"
)

type memSettings struct {
	setting models.Setting
	loads   int
	loadErr error
}

func (m *memSettings) Load(context.Context) (*models.Setting, error) {
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	s := m.setting
	return &s, nil
}

func (m *memSettings) Save(_ context.Context, setting *models.Setting) error {
	m.setting = *setting
	return nil
}

func boolPtr(b bool) *bool { return &b }

func newTestService(store Store, ttl time.Duration, clock *time.Time) *Service {
	svc := NewService(store, ttl)
	svc.now = func() time.Time { return *clock }
	return svc
}

func TestGetServesFromCacheWithinTTL(t *testing.T) {
	store := &memSettings{setting: models.Setting{ShowIDsToUsers: true, AllowDonations: true}}
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(store, 30*time.Second, &clock)

	for i := 0; i < 5; i++ {
		_, err := svc.Get(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, store.loads)
}

func TestGetReloadsAfterTTL(t *testing.T) {
	store := &memSettings{}
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(store, 30*time.Second, &clock)

	_, err := svc.Get(context.Background())
	require.NoError(t, err)

	clock = clock.Add(31 * time.Second)
	_, err = svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, store.loads)
}

func TestApplyMergesAndRefreshesCache(t *testing.T) {
	store := &memSettings{setting: models.Setting{ShowIDsToUsers: true, AllowDonations: true, ExportEnabled: true}}
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(store, 30*time.Second, &clock)

	updated, err := svc.Apply(context.Background(), Update{AllowDonations: boolPtr(false)})
	require.NoError(t, err)
	assert.True(t, updated.ShowIDsToUsers)
	assert.False(t, updated.AllowDonations)
	assert.True(t, updated.ExportEnabled)

	// The write refreshed the cache; the next read must not hit the store.
	loadsBefore := store.loads
	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, got.AllowDonations)
	assert.Equal(t, loadsBefore, store.loads)
}

func TestGetPublicOmitsExportFlag(t *testing.T) {
	store := &memSettings{setting: models.Setting{ShowIDsToUsers: false, AllowDonations: true, ExportEnabled: true}}
	clock := time.Now()
	svc := newTestService(store, time.Minute, &clock)

	pub, err := svc.GetPublic(context.Background())
	require.NoError(t, err)
	assert.False(t, pub.ShowIDsToUsers)
	assert.True(t, pub.AllowDonations)
}

func TestGetPropagatesStoreError(t *testing.T) {
	store := &memSettings{loadErr: errors.New("down")}
	clock := time.Now()
	svc := newTestService(store, time.Minute, &clock)

	_, err := svc.Get(context.Background())
	assert.Error(t, err)
}

func TestNewestSettingWinsOnDirtyData(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := []models.Setting{
		{AllowDonations: true, CreatedAt: base.Add(time.Hour)},
		{AllowDonations: false, CreatedAt: base.Add(2 * time.Hour)},
		{AllowDonations: true, CreatedAt: base},
	}

	got := NewestSetting(rows)
	require.NotNil(t, got)
	assert.False(t, got.AllowDonations)
	assert.Equal(t, base.Add(2*time.Hour), got.CreatedAt)
}

func TestNewestSettingEmptyTable(t *testing.T) {
	assert.Nil(t, NewestSetting(nil))
}
