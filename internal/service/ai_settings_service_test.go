package service

import (
	"errors"
	"testing"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
)

func TestAISettingsService_ConfigurePersistsAndApplies(t *testing.T) {
	repo := newMemorySettingRepository()
	registry := NewAIProviderRegistry(AIProviderOptions{})
	svc := NewAISettingsService(repo, registry)

	status, err := svc.ConfigureProvider(" Gemini ", "  gm-key-12345  ")
	if err != nil {
		t.Fatalf("ConfigureProvider returned error: %v", err)
	}
	if !status.Gemini || status.OpenRouter {
		t.Fatalf("unexpected status %+v", status)
	}
	if repo.store["ai.gemini.api_key"] != "gm-key-12345" {
		t.Fatalf("expected trimmed key to be stored, got %q", repo.store["ai.gemini.api_key"])
	}

	if _, err := svc.ConfigureProvider("gemini", "short"); !errors.Is(err, ErrInvalidAPIKey) {
		t.Fatalf("expected ErrInvalidAPIKey, got %v", err)
	}
	if _, err := svc.ConfigureProvider("anthropic", "long-enough-key"); !errors.Is(err, ErrUnknownAIProvider) {
		t.Fatalf("expected ErrUnknownAIProvider, got %v", err)
	}

	status, err = svc.RemoveProvider(models.AIProviderGemini)
	if err != nil {
		t.Fatalf("RemoveProvider returned error: %v", err)
	}
	if status.Gemini {
		t.Fatalf("expected gemini to be unconfigured after removal")
	}
	if _, ok := repo.store["ai.gemini.api_key"]; ok {
		t.Fatalf("expected stored key to be deleted")
	}
}

func TestAISettingsService_LoadPersistedOverridesEnvironment(t *testing.T) {
	repo := newMemorySettingRepository()
	repo.store["ai.openrouter.api_key"] = "stored-key-1"
	repo.store["ai.legacy.api_key"] = "ignored-key-1"

	registry := NewAIProviderRegistry(AIProviderOptions{})
	if err := registry.Configure(models.AIProviderGemini, "env-key-123"); err != nil {
		t.Fatalf("Configure returned error: %v", err)
	}

	svc := NewAISettingsService(repo, registry)
	if err := svc.LoadPersisted(); err != nil {
		t.Fatalf("LoadPersisted returned error: %v", err)
	}
	status := svc.Status()
	if !status.Gemini || !status.OpenRouter {
		t.Fatalf("expected both providers configured, got %+v", status)
	}
}
