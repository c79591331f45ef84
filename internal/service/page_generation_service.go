package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/blocks"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/repository"
	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/logger"
	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/validator"
)

var (
	ErrInvalidGenerationRequest = errors.New("invalid generation request")
	ErrTemplateNotFound         = errors.New("template not found")
)

var (
	generationMetricsOnce     sync.Once
	pageGenerationsTotal      *prometheus.CounterVec
	pageGenerationSeconds     *prometheus.HistogramVec
	pageGenerationBlocksTotal *prometheus.CounterVec
)

func initGenerationMetrics() {
	generationMetricsOnce.Do(func() {
		pageGenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funnelcart",
			Subsystem: "ai",
			Name:      "page_generations_total",
			Help:      "Page generations by provider and outcome",
		}, []string{"provider", "outcome"})

		pageGenerationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "funnelcart",
			Subsystem: "ai",
			Name:      "page_generation_duration_seconds",
			Help:      "Duration of provider calls for page generation",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"provider"})

		pageGenerationBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funnelcart",
			Subsystem: "ai",
			Name:      "generated_blocks_total",
			Help:      "Blocks produced by page generation by block type",
		}, []string{"type"})
	})
}

const (
	outcomeSuccess       = "success"
	outcomeFallback      = "fallback"
	outcomeNotConfigured = "not_configured"
	outcomeError         = "error"
)

// PageGenerationOptions tunes generation behaviour.
type PageGenerationOptions struct {
	StrictBlockTypes bool
	// Timeout bounds the provider call. Zero leaves the caller's context as is.
	Timeout time.Duration
}

// PageGenerationService runs the prompt, provider, parse pipeline.
type PageGenerationService struct {
	registry    *AIProviderRegistry
	generations repository.PageGenerationRepository
	options     PageGenerationOptions
}

func NewPageGenerationService(registry *AIProviderRegistry, generations repository.PageGenerationRepository, options PageGenerationOptions) *PageGenerationService {
	initGenerationMetrics()
	return &PageGenerationService{
		registry:    registry,
		generations: generations,
		options:     options,
	}
}

// Registry exposes the provider registry the service dispatches through.
func (s *PageGenerationService) Registry() *AIProviderRegistry {
	if s == nil {
		return nil
	}
	return s.registry
}

// Generate produces a block list for request. Configuration and provider errors
// are returned as is; unusable model output is reported through Fallback.
func (s *PageGenerationService) Generate(ctx context.Context, request models.GenerationRequest) (*models.GenerationResponse, error) {
	if s == nil || s.registry == nil {
		return nil, fmt.Errorf("%w: %s", ErrAIProviderNotConfigured, request.Provider)
	}
	if strings.TrimSpace(request.Product.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidGenerationRequest)
	}

	request.Provider = s.registry.ResolveProvider(request.Provider)
	request.Model = strings.TrimSpace(request.Model)
	if request.Model == "" {
		request.Model = DefaultAIModel(request.Provider)
	}
	templateType, _ := blocks.ResolveTemplate(request.TemplateType)
	request.TemplateType = string(templateType)

	prompt := BuildPagePrompt(request)

	callCtx := ctx
	if s.options.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.options.Timeout)
		defer cancel()
	}

	started := time.Now()
	raw, err := s.registry.Generate(callCtx, request.Provider, prompt, request.Model)
	elapsed := time.Since(started)
	if err != nil {
		outcome := outcomeError
		if errors.Is(err, ErrAIProviderNotConfigured) || errors.Is(err, ErrUnknownAIProvider) {
			outcome = outcomeNotConfigured
		} else {
			pageGenerationSeconds.WithLabelValues(request.Provider).Observe(elapsed.Seconds())
		}
		pageGenerationsTotal.WithLabelValues(request.Provider, outcome).Inc()
		logger.WithContext(ctx).WithError(err).WithField("provider", request.Provider).
			WithField("model", request.Model).Error("Page generation failed")
		return nil, err
	}
	pageGenerationSeconds.WithLabelValues(request.Provider).Observe(elapsed.Seconds())

	response := s.FromReply(request, raw)

	outcome := outcomeSuccess
	if response.Fallback {
		outcome = outcomeFallback
	}
	pageGenerationsTotal.WithLabelValues(request.Provider, outcome).Inc()
	for _, block := range response.Blocks {
		pageGenerationBlocksTotal.WithLabelValues(metricBlockType(block.Type)).Inc()
	}

	s.record(ctx, request, len(prompt), elapsed, response)

	logger.WithContext(ctx).WithField("provider", request.Provider).
		WithField("model", request.Model).
		WithField("blocks", len(response.Blocks)).
		WithField("fallback", response.Fallback).
		WithField("took", elapsed).
		Info("Page generated")

	return response, nil
}

// FromReply parses a raw model reply for request without calling a provider.
func (s *PageGenerationService) FromReply(request models.GenerationRequest, raw string) *models.GenerationResponse {
	strict := s != nil && s.options.StrictBlockTypes
	result := ParseGeneratedBlocks(raw, request, ParseOptions{StrictBlockTypes: strict})
	blocks.RewriteRichText(result.Blocks, validator.SanitizeHTML)

	templateType, _ := blocks.ResolveTemplate(request.TemplateType)
	return &models.GenerationResponse{
		Blocks:         result.Blocks,
		Fallback:       result.Fallback,
		FallbackReason: result.Reason,
		Provider:       request.Provider,
		Model:          request.Model,
		TemplateType:   string(templateType),
	}
}

func (s *PageGenerationService) record(ctx context.Context, request models.GenerationRequest, promptLength int, elapsed time.Duration, response *models.GenerationResponse) {
	if s.generations == nil {
		return
	}
	generation := &models.PageGeneration{
		Provider:       request.Provider,
		Model:          request.Model,
		TemplateType:   request.TemplateType,
		ProductName:    strings.TrimSpace(request.Product.Name),
		PromptLength:   promptLength,
		Fallback:       response.Fallback,
		FallbackReason: response.FallbackReason,
		DurationMs:     elapsed.Milliseconds(),
		Blocks:         blocks.PageBlocks(response.Blocks),
	}
	if err := s.generations.Create(generation); err != nil {
		logger.WithContext(ctx).WithError(err).Error("Failed to record page generation")
		return
	}
	response.GenerationID = generation.ID
}

// metricBlockType keeps label cardinality bounded.
func metricBlockType(blockType blocks.BlockType) string {
	if blocks.IsKnown(blockType) {
		return string(blocks.Normalize(string(blockType)))
	}
	return "unknown"
}

// Catalog returns the editor palette, models per provider and templates.
func (s *PageGenerationService) Catalog() models.AIPageCatalog {
	return models.AIPageCatalog{
		Categories: blocks.Palette(),
		Models:     AvailableAIModels(),
		Templates:  blocks.Templates(),
	}
}

func (s *PageGenerationService) Templates() []blocks.TemplateInfo {
	return blocks.Templates()
}

// Template returns fresh blocks for a template or funnel page type.
func (s *PageGenerationService) Template(templateType string) ([]blocks.PageBlock, error) {
	if !blocks.IsTemplateType(templateType) {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, templateType)
	}
	return blocks.DefaultTemplate(templateType), nil
}

// GetGeneration loads a logged generation.
func (s *PageGenerationService) GetGeneration(id uint) (*models.PageGeneration, error) {
	if s.generations == nil {
		return nil, ErrGenerationNotFound
	}
	generation, err := s.generations.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err, ErrGenerationNotFound)
	}
	return generation, nil
}

// RecentGenerations lists the newest logged generations without their blocks.
func (s *PageGenerationService) RecentGenerations(limit int) ([]models.PageGeneration, error) {
	if s.generations == nil {
		return []models.PageGeneration{}, nil
	}
	return s.generations.ListRecent(limit)
}

// PruneGenerations deletes logged generations older than retention.
func (s *PageGenerationService) PruneGenerations(ctx context.Context, retention time.Duration) (int64, error) {
	if s.generations == nil || retention <= 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	deleted, err := s.generations.DeleteOlderThan(time.Now().Add(-retention))
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		logger.WithContext(ctx).WithField("deleted", deleted).WithField("retention", retention).Info("Pruned page generation log")
	}
	return deleted, nil
}
