package activity

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ddka-tech/ddka-backend/internal/models"
)

// GormStore persists login activity in the login_activities table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(ctx context.Context, event *models.LoginActivity) error {
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *GormStore) CountForUser(ctx context.Context, userID uuid.UUID, role models.Role) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.LoginActivity{}).
		Where("user_id = ? AND user_type = ?", userID, role).
		Count(&count).Error
	return count, err
}

func (s *GormStore) OldestIDs(ctx context.Context, userID uuid.UUID, role models.Role, n int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&models.LoginActivity{}).
		Where("user_id = ? AND user_type = ?", userID, role).
		Order("created_at ASC").
		Limit(n).
		Pluck("id", &ids).Error
	return ids, err
}

func (s *GormStore) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Delete(&models.LoginActivity{}, "id IN ?", ids)
	return res.RowsAffected, res.Error
}

func (s *GormStore) RecentForUser(ctx context.Context, userID uuid.UUID, role models.Role, limit int) ([]models.LoginActivity, error) {
	var events []models.LoginActivity
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND user_type = ?", userID, role).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
