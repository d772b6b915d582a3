// Package settings serves the single feature-flag row through a short TTL
// cache so hot read paths never touch the database per request.
package settings

import (
	"context"
	"sync"
	"time"

	"github.com/ddka-tech/ddka-backend/internal/models"
)

// Store loads and saves the one settings row.
type Store interface {
	Load(ctx context.Context) (*models.Setting, error)
	Save(ctx context.Context, setting *models.Setting) error
}

// Update is a partial settings change. Nil fields are left untouched.
type Update struct {
	ShowIDsToUsers *bool `json:"showIdsToUsers"`
	AllowDonations *bool `json:"allowDonations"`
	ExportEnabled  *bool `json:"exportEnabled"`
}

// Public is the subset of settings exposed without authentication.
type Public struct {
	ShowIDsToUsers bool `json:"showIdsToUsers"`
	AllowDonations bool `json:"allowDonations"`
}

// Service caches the settings row for a fixed TTL. Writes go straight
// through and refresh the cache so admins see their own change immediately.
type Service struct {
	store Store
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	cached  *models.Setting
	expires time.Time
}

func NewService(store Store, ttl time.Duration) *Service {
	return &Service{store: store, ttl: ttl, now: time.Now}
}

// Get returns the current settings, served from cache when fresh.
func (s *Service) Get(ctx context.Context) (*models.Setting, error) {
	s.mu.RLock()
	if s.cached != nil && s.now().Before(s.expires) {
		cached := *s.cached
		s.mu.RUnlock()
		return &cached, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil && s.now().Before(s.expires) {
		cached := *s.cached
		return &cached, nil
	}

	setting, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.cached = setting
	s.expires = s.now().Add(s.ttl)
	cached := *setting
	return &cached, nil
}

// GetPublic returns the unauthenticated view of the settings.
func (s *Service) GetPublic(ctx context.Context) (*Public, error) {
	setting, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &Public{
		ShowIDsToUsers: setting.ShowIDsToUsers,
		AllowDonations: setting.AllowDonations,
	}, nil
}

// Apply merges a partial update into the stored row and refreshes the cache.
func (s *Service) Apply(ctx context.Context, update Update) (*models.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	setting, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if update.ShowIDsToUsers != nil {
		setting.ShowIDsToUsers = *update.ShowIDsToUsers
	}
	if update.AllowDonations != nil {
		setting.AllowDonations = *update.AllowDonations
	}
	if update.ExportEnabled != nil {
		setting.ExportEnabled = *update.ExportEnabled
	}
	if err := s.store.Save(ctx, setting); err != nil {
		return nil, err
	}

	s.cached = setting
	s.expires = s.now().Add(s.ttl)
	result := *setting
	return &result, nil
}
