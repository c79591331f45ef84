package service

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/blocks"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/repository"
	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/cache"
	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/logger"
	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/utils"
	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/validator"
)

const maxSlugAttempts = 50

var ErrInvalidFunnelPage = errors.New("invalid funnel page")

// FunnelPageService manages funnel pages and their block trees.
type FunnelPageService struct {
	pages       repository.FunnelPageRepository
	generations repository.PageGenerationRepository
	cache       *cache.Cache
}

func NewFunnelPageService(pages repository.FunnelPageRepository, generations repository.PageGenerationRepository, cacheService *cache.Cache) *FunnelPageService {
	return &FunnelPageService{pages: pages, generations: generations, cache: cacheService}
}

// CreateFromTemplate creates a page scaffolded with the blocks of its page type.
func (s *FunnelPageService) CreateFromTemplate(req models.CreateFunnelPageRequest) (*models.FunnelPage, error) {
	title := strings.TrimSpace(html.UnescapeString(validator.SanitizeString(req.Title)))
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidFunnelPage)
	}
	pageType := strings.ToLower(strings.TrimSpace(req.PageType))
	if !blocks.IsPageType(pageType) {
		return nil, fmt.Errorf("%w: unknown page type %q", ErrInvalidFunnelPage, req.PageType)
	}

	base := utils.GenerateSlug(req.Slug)
	explicit := base != ""
	if !explicit {
		base = utils.GenerateSlug(title)
	}
	if base == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrInvalidFunnelPage)
	}
	slug, err := s.availableSlug(base, explicit)
	if err != nil {
		return nil, err
	}

	page := &models.FunnelPage{
		Title:     title,
		Slug:      slug,
		PageType:  pageType,
		FunnelID:  req.FunnelID,
		Position:  req.Position,
		Published: req.Published,
		Blocks:    blocks.PageBlocks(blocks.Instantiate(blocks.DefaultBlocksFor(pageType))),
	}
	if err := s.pages.Create(page); err != nil {
		return nil, err
	}

	logger.Info("Funnel page created", map[string]interface{}{
		"page_id":   page.ID,
		"slug":      page.Slug,
		"page_type": page.PageType,
		"blocks":    len(page.Blocks),
	})
	return page, nil
}

// availableSlug returns base, or base-N when base is taken and was derived from the title.
func (s *FunnelPageService) availableSlug(base string, explicit bool) (string, error) {
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		candidate := utils.SlugWithSuffix(base, attempt)
		exists, err := s.pages.ExistsBySlug(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		if explicit {
			return "", fmt.Errorf("%w: %s", ErrSlugTaken, candidate)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSlugTaken, base)
}

func (s *FunnelPageService) GetByID(id uint) (*models.FunnelPage, error) {
	var cached models.FunnelPage
	if err := s.cache.GetCachedFunnelPage(id, &cached); err == nil {
		return &cached, nil
	}

	page, err := s.pages.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err, ErrFunnelPageNotFound)
	}
	s.store(page)
	return page, nil
}

// GetBySlug returns a published page.
func (s *FunnelPageService) GetBySlug(slug string) (*models.FunnelPage, error) {
	slug = strings.TrimSpace(slug)
	var cached models.FunnelPage
	if err := s.cache.GetCachedFunnelPageBySlug(slug, &cached); err == nil && cached.Published {
		return &cached, nil
	}

	page, err := s.pages.GetBySlug(slug)
	if err != nil {
		return nil, mapNotFound(err, ErrFunnelPageNotFound)
	}
	s.store(page)
	return page, nil
}

func (s *FunnelPageService) List(funnelID *uint) ([]models.FunnelPage, error) {
	return s.pages.List(funnelID)
}

// ReplaceBlocks stores list as the page body. Duplicate ids are reassigned and
// rich text is sanitized before saving.
func (s *FunnelPageService) ReplaceBlocks(id uint, list []blocks.PageBlock) (*models.FunnelPage, error) {
	page, err := s.pages.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err, ErrFunnelPageNotFound)
	}

	if list == nil {
		list = []blocks.PageBlock{}
	}
	if reassigned := blocks.EnsureUniqueIDs(list); reassigned > 0 {
		logger.Debug("Reassigned duplicate block ids", map[string]interface{}{"page_id": id, "count": reassigned})
	}
	blocks.RewriteRichText(list, validator.SanitizeHTML)

	if err := s.pages.UpdateBlocks(id, blocks.PageBlocks(list)); err != nil {
		return nil, mapNotFound(err, ErrFunnelPageNotFound)
	}
	s.invalidate(page)

	page.Blocks = blocks.PageBlocks(list)
	return page, nil
}

// ApplyGeneration copies the blocks of a logged generation onto a page.
func (s *FunnelPageService) ApplyGeneration(id, generationID uint) (*models.FunnelPage, error) {
	if s.generations == nil {
		return nil, ErrGenerationNotFound
	}
	generation, err := s.generations.GetByID(generationID)
	if err != nil {
		return nil, mapNotFound(err, ErrGenerationNotFound)
	}

	// Fresh ids so one generation can seed several pages.
	list := make([]blocks.PageBlock, len(generation.Blocks))
	copy(list, generation.Blocks)
	reassignIDs(list)

	return s.ReplaceBlocks(id, list)
}

func (s *FunnelPageService) Delete(id uint) error {
	page, err := s.pages.GetByID(id)
	if err != nil {
		return mapNotFound(err, ErrFunnelPageNotFound)
	}
	if err := s.pages.Delete(id); err != nil {
		return mapNotFound(err, ErrFunnelPageNotFound)
	}
	s.invalidate(page)
	return nil
}

func (s *FunnelPageService) store(page *models.FunnelPage) {
	if err := s.cache.CacheFunnelPage(page.ID, page.Slug, page); err != nil {
		logger.Warn("Failed to cache funnel page", map[string]interface{}{"page_id": page.ID, "error": err.Error()})
	}
}

func (s *FunnelPageService) invalidate(page *models.FunnelPage) {
	if err := s.cache.InvalidateFunnelPage(page.ID, page.Slug); err != nil {
		logger.Warn("Failed to invalidate funnel page cache", map[string]interface{}{"page_id": page.ID, "error": err.Error()})
	}
}

func reassignIDs(list []blocks.PageBlock) {
	for i := range list {
		list[i].ID = blocks.NewID()
		if len(list[i].Children) > 0 {
			children := make([]blocks.PageBlock, len(list[i].Children))
			copy(children, list[i].Children)
			reassignIDs(children)
			list[i].Children = children
		}
	}
}
