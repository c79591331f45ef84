package service

import (
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/blocks"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/repository"
)

type memorySettingRepository struct {
	store map[string]string
}

func newMemorySettingRepository() *memorySettingRepository {
	return &memorySettingRepository{store: make(map[string]string)}
}

func (m *memorySettingRepository) Get(key string) (*models.Setting, error) {
	if value, ok := m.store[key]; ok {
		return &models.Setting{Key: key, Value: value}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memorySettingRepository) ListByPrefix(prefix string) ([]models.Setting, error) {
	var settings []models.Setting
	for key, value := range m.store {
		if strings.HasPrefix(key, prefix) {
			settings = append(settings, models.Setting{Key: key, Value: value})
		}
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].Key < settings[j].Key })
	return settings, nil
}

func (m *memorySettingRepository) Set(key, value string) error {
	m.store[key] = value
	return nil
}

func (m *memorySettingRepository) Delete(key string) error {
	delete(m.store, key)
	return nil
}

var _ repository.SettingRepository = (*memorySettingRepository)(nil)

type memoryGenerationRepository struct {
	mu      sync.Mutex
	nextID  uint
	records map[uint]models.PageGeneration
}

func newMemoryGenerationRepository() *memoryGenerationRepository {
	return &memoryGenerationRepository{records: make(map[uint]models.PageGeneration)}
}

func (m *memoryGenerationRepository) Create(generation *models.PageGeneration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	generation.ID = m.nextID
	if generation.CreatedAt.IsZero() {
		generation.CreatedAt = time.Now()
	}
	m.records[generation.ID] = *generation
	return nil
}

func (m *memoryGenerationRepository) GetByID(id uint) (*models.PageGeneration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	generation, ok := m.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &generation, nil
}

func (m *memoryGenerationRepository) ListRecent(limit int) ([]models.PageGeneration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]models.PageGeneration, 0, len(m.records))
	for _, generation := range m.records {
		generation.Blocks = nil
		result = append(result, generation)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *memoryGenerationRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, generation := range m.records {
		if generation.CreatedAt.Before(cutoff) {
			delete(m.records, id)
			deleted++
		}
	}
	return deleted, nil
}

var _ repository.PageGenerationRepository = (*memoryGenerationRepository)(nil)

type memoryFunnelPageRepository struct {
	mu     sync.Mutex
	nextID uint
	pages  map[uint]models.FunnelPage
}

func newMemoryFunnelPageRepository() *memoryFunnelPageRepository {
	return &memoryFunnelPageRepository{pages: make(map[uint]models.FunnelPage)}
}

func (m *memoryFunnelPageRepository) Create(page *models.FunnelPage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	page.ID = m.nextID
	m.pages[page.ID] = *page
	return nil
}

func (m *memoryFunnelPageRepository) Delete(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pages[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.pages, id)
	return nil
}

func (m *memoryFunnelPageRepository) GetByID(id uint) (*models.FunnelPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	page, ok := m.pages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &page, nil
}

func (m *memoryFunnelPageRepository) GetBySlug(slug string) (*models.FunnelPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, page := range m.pages {
		if page.Slug == slug && page.Published {
			found := page
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryFunnelPageRepository) List(funnelID *uint) ([]models.FunnelPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]models.FunnelPage, 0, len(m.pages))
	for _, page := range m.pages {
		if funnelID != nil && (page.FunnelID == nil || *page.FunnelID != *funnelID) {
			continue
		}
		result = append(result, page)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Position != result[j].Position {
			return result[i].Position < result[j].Position
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *memoryFunnelPageRepository) UpdateBlocks(id uint, list blocks.PageBlocks) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	page, ok := m.pages[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	page.Blocks = list
	m.pages[id] = page
	return nil
}

func (m *memoryFunnelPageRepository) ExistsBySlug(slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, page := range m.pages {
		if page.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.FunnelPageRepository = (*memoryFunnelPageRepository)(nil)
