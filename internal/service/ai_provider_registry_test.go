package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
)

func TestAIProviderRegistry_NotConfiguredBeforeNetwork(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	registry := NewAIProviderRegistry(AIProviderOptions{GeminiBaseURL: server.URL, OpenRouterBaseURL: server.URL})

	for _, provider := range []string{models.AIProviderGemini, models.AIProviderOpenRouter} {
		if _, err := registry.Generate(context.Background(), provider, "prompt", ""); !errors.Is(err, ErrAIProviderNotConfigured) {
			t.Fatalf("expected ErrAIProviderNotConfigured for %s, got %v", provider, err)
		}
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("expected no network calls, got %d", calls)
	}
}

func TestAIProviderRegistry_DispatchesToNamedProvider(t *testing.T) {
	registry := NewAIProviderRegistry(AIProviderOptions{})

	var used []string
	for _, provider := range AIProviders() {
		name := provider
		if err := registry.Register(name, TextGeneratorFunc(func(ctx context.Context, prompt, model string) (string, error) {
			used = append(used, name)
			return name, nil
		})); err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
	}

	reply, err := registry.Generate(context.Background(), "OpenRouter", "prompt", "")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if reply != models.AIProviderOpenRouter {
		t.Fatalf("expected openrouter client, got %q", reply)
	}

	reply, err = registry.Generate(context.Background(), "", "prompt", "")
	if err != nil || reply != models.AIProviderGemini {
		t.Fatalf("expected gemini as default provider, got %q (%v)", reply, err)
	}

	registry.SetDefaultProvider("openrouter")
	if provider := registry.ResolveProvider(""); provider != models.AIProviderOpenRouter {
		t.Fatalf("expected configured default, got %q", provider)
	}
	if len(used) != 2 {
		t.Fatalf("expected exactly one call per Generate, got %v", used)
	}
}

func TestAIProviderRegistry_UnknownProvider(t *testing.T) {
	registry := NewAIProviderRegistry(AIProviderOptions{})

	if err := registry.Configure("anthropic", "key-12345678"); !errors.Is(err, ErrUnknownAIProvider) {
		t.Fatalf("expected ErrUnknownAIProvider from Configure, got %v", err)
	}
	if _, err := registry.Generate(context.Background(), "anthropic", "prompt", ""); !errors.Is(err, ErrUnknownAIProvider) {
		t.Fatalf("expected ErrUnknownAIProvider from Generate, got %v", err)
	}
}

func TestAIProviderRegistry_ConfigureSwapsCredential(t *testing.T) {
	var lastAuth atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastAuth.Store(r.Header.Get("Authorization"))
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer server.Close()

	registry := NewAIProviderRegistry(AIProviderOptions{OpenRouterBaseURL: server.URL})
	if err := registry.Configure(models.AIProviderOpenRouter, "first-key-1"); err != nil {
		t.Fatalf("Configure returned error: %v", err)
	}
	if _, err := registry.Generate(context.Background(), models.AIProviderOpenRouter, "prompt", ""); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if lastAuth.Load() != "Bearer first-key-1" {
		t.Fatalf("expected first key, got %v", lastAuth.Load())
	}

	if err := registry.Configure(models.AIProviderOpenRouter, "second-key-2"); err != nil {
		t.Fatalf("Configure returned error: %v", err)
	}
	if _, err := registry.Generate(context.Background(), models.AIProviderOpenRouter, "prompt", ""); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if lastAuth.Load() != "Bearer second-key-2" {
		t.Fatalf("expected rotated key, got %v", lastAuth.Load())
	}

	status := registry.Status()
	if status.Gemini || !status.OpenRouter {
		t.Fatalf("unexpected status %+v", status)
	}

	if err := registry.Configure(models.AIProviderOpenRouter, ""); err != nil {
		t.Fatalf("Configure returned error: %v", err)
	}
	if registry.IsConfigured(models.AIProviderOpenRouter) {
		t.Fatalf("expected empty key to remove the credential")
	}
}
