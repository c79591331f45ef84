package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/service"
	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/logger"
)

type AIPageHandler struct {
	generator *service.PageGenerationService
	settings  *service.AISettingsService
}

func NewAIPageHandler(generator *service.PageGenerationService, settings *service.AISettingsService) *AIPageHandler {
	return &AIPageHandler{generator: generator, settings: settings}
}

func (h *AIPageHandler) Generate(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "invalid_request"})
		return
	}

	response, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		status, code := generationErrorStatus(err)
		if status >= http.StatusInternalServerError {
			logger.Error(err, "Page generation request failed", map[string]interface{}{
				"provider": req.Provider,
				"status":   status,
			})
		}
		c.JSON(status, gin.H{"error": err.Error(), "code": code})
		return
	}

	c.JSON(http.StatusOK, response)
}

func generationErrorStatus(err error) (int, string) {
	var httpErr *service.AIProviderHTTPError
	switch {
	case errors.Is(err, service.ErrAIProviderNotConfigured):
		return http.StatusPreconditionFailed, "provider_not_configured"
	case errors.Is(err, service.ErrUnknownAIProvider):
		return http.StatusBadRequest, "unknown_provider"
	case errors.Is(err, service.ErrInvalidGenerationRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "provider_timeout"
	case errors.As(err, &httpErr):
		return http.StatusBadGateway, "provider_error"
	default:
		return http.StatusBadGateway, "provider_error"
	}
}

func (h *AIPageHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.generator.Catalog())
}

func (h *AIPageHandler) Templates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": h.generator.Templates()})
}

func (h *AIPageHandler) Template(c *gin.Context) {
	templateType := c.Param("type")
	list, err := h.generator.Template(templateType)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": templateType, "blocks": list})
}

func (h *AIPageHandler) ProviderStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Status())
}

func (h *AIPageHandler) ConfigureProvider(c *gin.Context) {
	var req models.ConfigureAIProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := h.settings.ConfigureProvider(c.Param("provider"), req.APIKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownAIProvider):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidAPIKey):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error(err, "Failed to configure AI provider", map[string]interface{}{"provider": c.Param("provider")})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to configure provider"})
		}
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *AIPageHandler) RemoveProvider(c *gin.Context) {
	status, err := h.settings.RemoveProvider(c.Param("provider"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownAIProvider) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error(err, "Failed to remove AI provider key", map[string]interface{}{"provider": c.Param("provider")})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove provider"})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *AIPageHandler) RecentGenerations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	generations, err := h.generator.RecentGenerations(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"generations": generations})
}

func (h *AIPageHandler) GetGeneration(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid generation id"})
		return
	}

	generation, err := h.generator.GetGeneration(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrGenerationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "generation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"generation": generation})
}
