package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/repository"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/service"
	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Init()
}

type testServer struct {
	router   *gin.Engine
	registry *service.AIProviderRegistry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Setting{}, &models.FunnelPage{}, &models.PageGeneration{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	registry := service.NewAIProviderRegistry(service.AIProviderOptions{})
	generations := repository.NewPageGenerationRepository(db)
	generator := service.NewPageGenerationService(registry, generations, service.PageGenerationOptions{})
	settings := service.NewAISettingsService(repository.NewSettingRepository(db), registry)
	pages := service.NewFunnelPageService(repository.NewFunnelPageRepository(db), generations, nil)

	aiHandler := NewAIPageHandler(generator, settings)
	pageHandler := NewFunnelPageHandler(pages)

	router := gin.New()
	api := router.Group("/api/v1")
	api.POST("/ai/pages/generate", aiHandler.Generate)
	api.GET("/ai/pages/catalog", aiHandler.Catalog)
	api.GET("/ai/pages/templates", aiHandler.Templates)
	api.GET("/ai/pages/templates/:type", aiHandler.Template)
	api.GET("/admin/ai/providers/status", aiHandler.ProviderStatus)
	api.PUT("/admin/ai/providers/:provider", aiHandler.ConfigureProvider)
	api.POST("/admin/funnel-pages", pageHandler.Create)
	api.GET("/admin/funnel-pages/:id", pageHandler.GetByID)
	api.PUT("/admin/funnel-pages/:id/blocks", pageHandler.UpdateBlocks)
	api.POST("/admin/funnel-pages/:id/apply/:generationId", pageHandler.ApplyGeneration)
	api.DELETE("/admin/funnel-pages/:id", pageHandler.Delete)
	api.GET("/pages/:slug", pageHandler.GetBySlug)

	return &testServer{router: router, registry: registry}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestGenerate_ProviderNotConfigured(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(t, http.MethodPost, "/api/v1/ai/pages/generate", gin.H{
		"provider": "openrouter",
		"product":  gin.H{"name": "Sleep Ring"},
	})
	if rec.Code != http.StatusPreconditionFailed {
		t.Fatalf("expected 412, got %d (%s)", rec.Code, rec.Body.String())
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["code"] != "provider_not_configured" {
		t.Fatalf("expected provider_not_configured code, got %v", body)
	}
}

func TestGenerate_ValidationErrors(t *testing.T) {
	server := newTestServer(t)

	cases := map[string]gin.H{
		"missing name":   {"product": gin.H{"description": "x"}},
		"bad provider":   {"provider": "anthropic", "product": gin.H{"name": "A"}},
		"bad template":   {"template_type": "webinar", "product": gin.H{"name": "A"}},
		"bad color":      {"product": gin.H{"name": "A"}, "color_scheme": gin.H{"primary": "red"}},
		"bad tone value": {"product": gin.H{"name": "A"}, "tone": "angry"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if rec := server.do(t, http.MethodPost, "/api/v1/ai/pages/generate", body); rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGenerate_SuccessFallbackAndProviderError(t *testing.T) {
	server := newTestServer(t)

	reply := `{"blocks":[{"type":"hero","content":{"headline":"Sleep Better"}}]}`
	var replyErr error
	server.registry.Register(models.AIProviderGemini, service.TextGeneratorFunc(func(ctx context.Context, prompt, model string) (string, error) {
		return reply, replyErr
	}))

	request := gin.H{"product": gin.H{"name": "Sleep Ring"}, "template_type": "landing-page"}

	rec := server.do(t, http.MethodPost, "/api/v1/ai/pages/generate", request)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var response models.GenerationResponse
	decode(t, rec, &response)
	if response.Fallback || len(response.Blocks) != 1 || response.GenerationID == 0 {
		t.Fatalf("unexpected response %+v", response)
	}

	reply = "not json at all"
	rec = server.do(t, http.MethodPost, "/api/v1/ai/pages/generate", request)
	var fallback map[string]interface{}
	decode(t, rec, &fallback)
	if rec.Code != http.StatusOK || fallback["fallback"] != true || fallback["fallback_reason"] == "" {
		t.Fatalf("expected fallback 200, got %d %v", rec.Code, fallback)
	}

	replyErr = &service.AIProviderHTTPError{Provider: "gemini", StatusCode: 503, Body: "overloaded"}
	rec = server.do(t, http.MethodPost, "/api/v1/ai/pages/generate", request)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	// The logged generation can seed a funnel page.
	rec = server.do(t, http.MethodPost, "/api/v1/admin/funnel-pages", gin.H{"title": "Launch", "page_type": "landing"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var created struct {
		Page models.FunnelPage `json:"page"`
	}
	decode(t, rec, &created)

	path := fmt.Sprintf("/api/v1/admin/funnel-pages/%d/apply/%d", created.Page.ID, response.GenerationID)
	rec = server.do(t, http.MethodPost, path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 applying generation, got %d (%s)", rec.Code, rec.Body.String())
	}
	var applied struct {
		Page models.FunnelPage `json:"page"`
	}
	decode(t, rec, &applied)
	if len(applied.Page.Blocks) != 1 {
		t.Fatalf("expected generated blocks on page, got %d", len(applied.Page.Blocks))
	}
}

func TestCatalogAndTemplates(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(t, http.MethodGet, "/api/v1/ai/pages/catalog", nil)
	var catalog models.AIPageCatalog
	decode(t, rec, &catalog)
	if rec.Code != http.StatusOK || len(catalog.Categories) == 0 || len(catalog.Models) != 2 {
		t.Fatalf("unexpected catalog %d %+v", rec.Code, catalog)
	}

	rec = server.do(t, http.MethodGet, "/api/v1/ai/pages/templates/checkout-page", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec = server.do(t, http.MethodGet, "/api/v1/ai/pages/templates/webinar", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown template, got %d", rec.Code)
	}
	if rec = server.do(t, http.MethodGet, "/api/v1/ai/pages/templates", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing templates, got %d", rec.Code)
	}
}

func TestConfigureProvider(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(t, http.MethodPut, "/api/v1/admin/ai/providers/gemini", gin.H{"api_key": "gm-key-12345"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var status models.AIProviderStatus
	decode(t, rec, &status)
	if !status.Gemini || status.OpenRouter {
		t.Fatalf("unexpected status %+v", status)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("gm-key-12345")) {
		t.Fatalf("expected api key never to be echoed")
	}

	if rec := server.do(t, http.MethodPut, "/api/v1/admin/ai/providers/anthropic", gin.H{"api_key": "long-enough-key"}); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown provider, got %d", rec.Code)
	}
	if rec := server.do(t, http.MethodPut, "/api/v1/admin/ai/providers/gemini", gin.H{"api_key": "short"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short key, got %d", rec.Code)
	}

	rec = server.do(t, http.MethodGet, "/api/v1/admin/ai/providers/status", nil)
	decode(t, rec, &status)
	if !status.Gemini {
		t.Fatalf("expected status to reflect configured provider")
	}
}

func TestFunnelPageLifecycle(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(t, http.MethodPost, "/api/v1/admin/funnel-pages", gin.H{"title": "Order Now", "page_type": "checkout", "published": true})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var created struct {
		Page models.FunnelPage `json:"page"`
	}
	decode(t, rec, &created)

	if rec := server.do(t, http.MethodPost, "/api/v1/admin/funnel-pages", gin.H{"title": "Other", "slug": "order-now", "page_type": "checkout"}); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for taken slug, got %d", rec.Code)
	}
	if rec := server.do(t, http.MethodPost, "/api/v1/admin/funnel-pages", gin.H{"title": "Other", "page_type": "webinar"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown page type, got %d", rec.Code)
	}

	rec = server.do(t, http.MethodGet, "/api/v1/pages/order-now", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected public page, got %d", rec.Code)
	}

	blocksPath := fmt.Sprintf("/api/v1/admin/funnel-pages/%d/blocks", created.Page.ID)
	rec = server.do(t, http.MethodPut, blocksPath, gin.H{"blocks": []gin.H{
		{"id": "a", "type": "heading", "content": gin.H{"text": "Checkout", "tag": "h1"}},
		{"id": "a", "type": "text", "content": gin.H{"text": "<p>ok</p><script>x()</script>"}},
	}})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 replacing blocks, got %d (%s)", rec.Code, rec.Body.String())
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("script")) {
		t.Fatalf("expected script tags to be removed")
	}

	if rec := server.do(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/funnel-pages/%d/apply/999", created.Page.ID), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing generation, got %d", rec.Code)
	}

	if rec := server.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/funnel-pages/%d", created.Page.ID), nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting, got %d", rec.Code)
	}
	if rec := server.do(t, http.MethodGet, fmt.Sprintf("/api/v1/admin/funnel-pages/%d", created.Page.ID), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
	if rec := server.do(t, http.MethodGet, "/api/v1/admin/funnel-pages/abc", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}
}
