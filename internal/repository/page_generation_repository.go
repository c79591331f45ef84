package repository

import (
	"time"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"

	"gorm.io/gorm"
)

type PageGenerationRepository interface {
	Create(generation *models.PageGeneration) error
	GetByID(id uint) (*models.PageGeneration, error)
	ListRecent(limit int) ([]models.PageGeneration, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type pageGenerationRepository struct {
	db *gorm.DB
}

func NewPageGenerationRepository(db *gorm.DB) PageGenerationRepository {
	return &pageGenerationRepository{db: db}
}

func (r *pageGenerationRepository) Create(generation *models.PageGeneration) error {
	return r.db.Create(generation).Error
}

func (r *pageGenerationRepository) GetByID(id uint) (*models.PageGeneration, error) {
	var generation models.PageGeneration
	if err := r.db.First(&generation, id).Error; err != nil {
		return nil, err
	}
	return &generation, nil
}

func (r *pageGenerationRepository) ListRecent(limit int) ([]models.PageGeneration, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var generations []models.PageGeneration
	if err := r.db.Omit("blocks").Order("id DESC").Limit(limit).Find(&generations).Error; err != nil {
		return nil, err
	}
	return generations, nil
}

func (r *pageGenerationRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.PageGeneration{})
	return result.RowsAffected, result.Error
}
