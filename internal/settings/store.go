package settings

import (
	"context"

	"gorm.io/gorm"

	"github.com/ddka-tech/ddka-backend/internal/models"
)

// GormStore keeps settings in the settings table. The row is created lazily
// with every flag defaulted on.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Load(ctx context.Context) (*models.Setting, error) {
	var rows []models.Setting
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	if setting := NewestSetting(rows); setting != nil {
		return setting, nil
	}

	setting := models.Setting{
		ShowIDsToUsers: true,
		AllowDonations: true,
		ExportEnabled:  true,
	}
	if err := s.db.WithContext(ctx).Create(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// NewestSetting picks the most recently created row as canonical; any older
// rows are stale leftovers and are ignored. Nil when the table is empty.
func NewestSetting(rows []models.Setting) *models.Setting {
	var newest *models.Setting
	for i := range rows {
		if newest == nil || rows[i].CreatedAt.After(newest.CreatedAt) {
			newest = &rows[i]
		}
	}
	if newest == nil {
		return nil
	}
	setting := *newest
	return &setting
}

func (s *GormStore) Save(ctx context.Context, setting *models.Setting) error {
	return s.db.WithContext(ctx).Save(setting).Error
}
