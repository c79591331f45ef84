package repository

import (
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/blocks"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"

	"gorm.io/gorm"
)

type FunnelPageRepository interface {
	Create(page *models.FunnelPage) error
	Delete(id uint) error
	GetByID(id uint) (*models.FunnelPage, error)
	GetBySlug(slug string) (*models.FunnelPage, error)
	List(funnelID *uint) ([]models.FunnelPage, error)
	UpdateBlocks(id uint, list blocks.PageBlocks) error
	ExistsBySlug(slug string) (bool, error)
}

type funnelPageRepository struct {
	db *gorm.DB
}

func NewFunnelPageRepository(db *gorm.DB) FunnelPageRepository {
	return &funnelPageRepository{db: db}
}

func (r *funnelPageRepository) Create(page *models.FunnelPage) error {
	return r.db.Create(page).Error
}

func (r *funnelPageRepository) Delete(id uint) error {
	result := r.db.Unscoped().Delete(&models.FunnelPage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *funnelPageRepository) GetByID(id uint) (*models.FunnelPage, error) {
	var page models.FunnelPage
	if err := r.db.First(&page, id).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *funnelPageRepository) GetBySlug(slug string) (*models.FunnelPage, error) {
	var page models.FunnelPage
	if err := r.db.Where("slug = ? AND published = ?", slug, true).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *funnelPageRepository) List(funnelID *uint) ([]models.FunnelPage, error) {
	var pages []models.FunnelPage
	query := r.db.Model(&models.FunnelPage{})
	if funnelID != nil {
		query = query.Where("funnel_id = ?", *funnelID)
	}
	if err := query.Order("position ASC").Order("id ASC").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

func (r *funnelPageRepository) UpdateBlocks(id uint, list blocks.PageBlocks) error {
	result := r.db.Model(&models.FunnelPage{}).Where("id = ?", id).Update("blocks", list)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *funnelPageRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	if err := r.db.Unscoped().Model(&models.FunnelPage{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
