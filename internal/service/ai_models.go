package service

import (
	"strings"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
)

var aiModels = map[string][]models.AIModel{
	models.AIProviderGemini: {
		{ID: "gemini-1.5-flash", Name: "Gemini 1.5 Flash", Default: true},
		{ID: "gemini-1.5-pro", Name: "Gemini 1.5 Pro"},
		{ID: "gemini-2.0-flash", Name: "Gemini 2.0 Flash"},
	},
	models.AIProviderOpenRouter: {
		{ID: "openai/gpt-4o-mini", Name: "GPT-4o Mini", Default: true},
		{ID: "openai/gpt-4o", Name: "GPT-4o"},
		{ID: "anthropic/claude-3.5-sonnet", Name: "Claude 3.5 Sonnet"},
		{ID: "google/gemini-flash-1.5", Name: "Gemini Flash 1.5 (via OpenRouter)"},
		{ID: "meta-llama/llama-3.1-70b-instruct", Name: "Llama 3.1 70B Instruct"},
	},
}

// AIProviders lists the supported provider identifiers.
func AIProviders() []string {
	return []string{models.AIProviderGemini, models.AIProviderOpenRouter}
}

// AvailableAIModels returns a copy of the model list per provider.
func AvailableAIModels() map[string][]models.AIModel {
	result := make(map[string][]models.AIModel, len(aiModels))
	for provider, list := range aiModels {
		result[provider] = append([]models.AIModel(nil), list...)
	}
	return result
}

// DefaultAIModel returns the flagged default model of provider, or "" when unknown.
func DefaultAIModel(provider string) string {
	for _, model := range aiModels[strings.ToLower(strings.TrimSpace(provider))] {
		if model.Default {
			return model.ID
		}
	}
	return ""
}
