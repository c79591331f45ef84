package repository

import (
	"strings"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository stores operator settings such as provider credentials.
type SettingRepository interface {
	Get(key string) (*models.Setting, error)
	ListByPrefix(prefix string) ([]models.Setting, error)
	Set(key, value string) error
	Delete(key string) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.First(&setting, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) ListByPrefix(prefix string) ([]models.Setting, error) {
	var settings []models.Setting
	err := r.db.Where("key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").Order("key").Find(&settings).Error
	return settings, err
}

// Set upserts key, refreshing updated_at on conflict.
func (r *settingRepository) Set(key, value string) error {
	setting := &models.Setting{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(value)
}

func (r *settingRepository) Delete(key string) error {
	return r.db.Unscoped().Delete(&models.Setting{}, "key = ?", key).Error
}
