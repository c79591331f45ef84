package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/repository"
	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/logger"
)

const minAPIKeyLength = 8

var ErrInvalidAPIKey = errors.New("invalid api key")

const (
	aiSettingPrefix = "ai."
	aiKeySuffix     = ".api_key"
)

func aiKeySetting(provider string) string {
	return aiSettingPrefix + provider + aiKeySuffix
}

func providerFromSetting(key string) (string, bool) {
	if !strings.HasPrefix(key, aiSettingPrefix) || !strings.HasSuffix(key, aiKeySuffix) {
		return "", false
	}
	provider := strings.TrimSuffix(strings.TrimPrefix(key, aiSettingPrefix), aiKeySuffix)
	return provider, isBuiltinProvider(provider)
}

// AISettingsService persists provider credentials and keeps the registry in sync.
type AISettingsService struct {
	settings repository.SettingRepository
	registry *AIProviderRegistry
}

func NewAISettingsService(settings repository.SettingRepository, registry *AIProviderRegistry) *AISettingsService {
	return &AISettingsService{settings: settings, registry: registry}
}

// LoadPersisted applies stored keys over whatever the registry was started with.
func (s *AISettingsService) LoadPersisted() error {
	if s.settings == nil {
		return nil
	}
	stored, err := s.settings.ListByPrefix(aiSettingPrefix)
	if err != nil {
		return fmt.Errorf("failed to load ai provider keys: %w", err)
	}
	for _, setting := range stored {
		provider, ok := providerFromSetting(setting.Key)
		if !ok || strings.TrimSpace(setting.Value) == "" {
			continue
		}
		if err := s.registry.Configure(provider, setting.Value); err != nil {
			return err
		}
		logger.Info("Loaded stored AI provider key", map[string]interface{}{"provider": provider})
	}
	return nil
}

// ConfigureProvider stores apiKey for provider and swaps the registry credential.
func (s *AISettingsService) ConfigureProvider(provider, apiKey string) (models.AIProviderStatus, error) {
	provider = normalizeProvider(provider)
	if !isBuiltinProvider(provider) {
		return models.AIProviderStatus{}, fmt.Errorf("%w: %q", ErrUnknownAIProvider, provider)
	}
	apiKey = strings.TrimSpace(apiKey)
	if len(apiKey) < minAPIKeyLength {
		return models.AIProviderStatus{}, fmt.Errorf("%w: must be at least %d characters", ErrInvalidAPIKey, minAPIKeyLength)
	}

	if s.settings != nil {
		if err := s.settings.Set(aiKeySetting(provider), apiKey); err != nil {
			return models.AIProviderStatus{}, fmt.Errorf("failed to store api key: %w", err)
		}
	}
	if err := s.registry.Configure(provider, apiKey); err != nil {
		return models.AIProviderStatus{}, err
	}

	logger.Info("AI provider configured", map[string]interface{}{"provider": provider})
	return s.Status(), nil
}

// RemoveProvider forgets the stored key of provider.
func (s *AISettingsService) RemoveProvider(provider string) (models.AIProviderStatus, error) {
	provider = normalizeProvider(provider)
	if !isBuiltinProvider(provider) {
		return models.AIProviderStatus{}, fmt.Errorf("%w: %q", ErrUnknownAIProvider, provider)
	}
	if s.settings != nil {
		if err := s.settings.Delete(aiKeySetting(provider)); err != nil {
			return models.AIProviderStatus{}, fmt.Errorf("failed to remove api key: %w", err)
		}
	}
	if err := s.registry.Configure(provider, ""); err != nil {
		return models.AIProviderStatus{}, err
	}
	return s.Status(), nil
}

func (s *AISettingsService) Status() models.AIProviderStatus {
	return s.registry.Status()
}

func isBuiltinProvider(provider string) bool {
	for _, known := range AIProviders() {
		if known == provider {
			return true
		}
	}
	return false
}
