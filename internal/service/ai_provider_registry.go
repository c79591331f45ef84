package service

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
)

// AIGeneratorFactory builds a client from an API key.
type AIGeneratorFactory func(apiKey string) (TextGenerator, error)

// AIProviderOptions configures the built-in provider clients.
type AIProviderOptions struct {
	DefaultProvider   string
	GeminiBaseURL     string
	OpenRouterBaseURL string
	MaxTokens         int
	AppURL            string
	AppName           string
	HTTPClient        *http.Client
}

// AIProviderRegistry holds per-provider credentials and lazily built clients.
// Reconfiguring a provider replaces its client reference; in-flight calls keep
// the client they started with. It is safe for concurrent use.
type AIProviderRegistry struct {
	mu              sync.RWMutex
	defaultProvider string
	factories       map[string]AIGeneratorFactory
	keys            map[string]string
	generators      map[string]TextGenerator
}

// NewAIProviderRegistry returns a registry with the gemini and openrouter factories installed.
func NewAIProviderRegistry(opts AIProviderOptions) *AIProviderRegistry {
	registry := &AIProviderRegistry{
		factories:  make(map[string]AIGeneratorFactory),
		keys:       make(map[string]string),
		generators: make(map[string]TextGenerator),
	}
	registry.SetDefaultProvider(opts.DefaultProvider)

	registry.factories[models.AIProviderGemini] = func(apiKey string) (TextGenerator, error) {
		return NewGeminiGenerator(apiKey, GeminiOptions{
			BaseURL:         opts.GeminiBaseURL,
			MaxOutputTokens: opts.MaxTokens,
			HTTPClient:      opts.HTTPClient,
		})
	}
	registry.factories[models.AIProviderOpenRouter] = func(apiKey string) (TextGenerator, error) {
		return NewOpenRouterGenerator(apiKey, OpenRouterOptions{
			BaseURL:    opts.OpenRouterBaseURL,
			MaxTokens:  opts.MaxTokens,
			AppURL:     opts.AppURL,
			AppName:    opts.AppName,
			HTTPClient: opts.HTTPClient,
		})
	}
	return registry
}

func normalizeProvider(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SetDefaultProvider configures the provider used when a request names none.
func (r *AIProviderRegistry) SetDefaultProvider(name string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.defaultProvider = normalizeProvider(name)
	r.mu.Unlock()
}

// ResolveProvider returns the normalised provider name, applying the default for "".
func (r *AIProviderRegistry) ResolveProvider(name string) string {
	provider := normalizeProvider(name)
	if provider != "" || r == nil {
		return provider
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defaultProvider != "" {
		return r.defaultProvider
	}
	return models.AIProviderGemini
}

// Configure stores the API key of provider. An empty key removes the credential.
// The client is rebuilt on the next Generate call.
func (r *AIProviderRegistry) Configure(provider, apiKey string) error {
	if r == nil {
		return fmt.Errorf("ai provider registry is nil")
	}
	provider = normalizeProvider(provider)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[provider]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAIProvider, provider)
	}

	delete(r.generators, provider)
	if key := strings.TrimSpace(apiKey); key != "" {
		r.keys[provider] = key
	} else {
		delete(r.keys, provider)
	}
	return nil
}

// Register installs a ready client for provider, replacing any credential-built one.
func (r *AIProviderRegistry) Register(provider string, generator TextGenerator) error {
	if r == nil {
		return fmt.Errorf("ai provider registry is nil")
	}
	provider = normalizeProvider(provider)
	if provider == "" {
		return fmt.Errorf("ai provider name is required")
	}
	if generator == nil {
		return fmt.Errorf("ai generator for provider %q is nil", provider)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[provider] = generator
	return nil
}

// Providers lists known provider names in ascending order.
func (r *AIProviderRegistry) Providers() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.factories)+len(r.generators))
	for name := range r.factories {
		seen[name] = struct{}{}
	}
	for name := range r.generators {
		seen[name] = struct{}{}
	}
	providers := make([]string, 0, len(seen))
	for name := range seen {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}

// IsConfigured reports whether provider can serve a Generate call.
func (r *AIProviderRegistry) IsConfigured(provider string) bool {
	if r == nil {
		return false
	}
	provider = normalizeProvider(provider)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.generators[provider]; ok {
		return true
	}
	_, ok := r.keys[provider]
	return ok
}

// Status reports which built-in providers have a credential.
func (r *AIProviderRegistry) Status() models.AIProviderStatus {
	return models.AIProviderStatus{
		Gemini:     r.IsConfigured(models.AIProviderGemini),
		OpenRouter: r.IsConfigured(models.AIProviderOpenRouter),
	}
}

// Generate dispatches prompt to exactly the named provider. It fails with
// ErrAIProviderNotConfigured before any network call when no credential is set.
func (r *AIProviderRegistry) Generate(ctx context.Context, provider, prompt, model string) (string, error) {
	generator, err := r.generator(r.ResolveProvider(provider))
	if err != nil {
		return "", err
	}
	return generator.Generate(ctx, prompt, model)
}

func (r *AIProviderRegistry) generator(provider string) (TextGenerator, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrAIProviderNotConfigured, provider)
	}

	r.mu.RLock()
	generator, ok := r.generators[provider]
	factory, known := r.factories[provider]
	key := r.keys[provider]
	r.mu.RUnlock()

	if ok {
		return generator, nil
	}
	if !known {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAIProvider, provider)
	}
	if key == "" {
		return nil, fmt.Errorf("%w: %s", ErrAIProviderNotConfigured, provider)
	}

	built, err := factory(key)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// A concurrent Configure may have changed the key; only cache a client for the current one.
	if r.keys[provider] == key {
		if existing, ok := r.generators[provider]; ok {
			return existing, nil
		}
		r.generators[provider] = built
	}
	return built, nil
}
