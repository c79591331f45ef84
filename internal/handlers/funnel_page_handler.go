package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/momentouslyfe-web/funnelcart-sub001/internal/models"
	"github.com/momentouslyfe-web/funnelcart-sub001/internal/service"
	"github.com/momentouslyfe-web/funnelcart-sub001/pkg/logger"
)

type FunnelPageHandler struct {
	pageService *service.FunnelPageService
}

func NewFunnelPageHandler(pageService *service.FunnelPageService) *FunnelPageHandler {
	return &FunnelPageHandler{pageService: pageService}
}

func (h *FunnelPageHandler) Create(c *gin.Context) {
	var req models.CreateFunnelPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.pageService.CreateFromTemplate(req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"page": page})
}

func (h *FunnelPageHandler) List(c *gin.Context) {
	var funnelID *uint
	if raw := c.Query("funnel_id"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid funnel id"})
			return
		}
		id := uint(value)
		funnelID = &id
	}

	pages, err := h.pageService.List(funnelID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

func (h *FunnelPageHandler) GetByID(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}

	page, err := h.pageService.GetByID(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *FunnelPageHandler) GetBySlug(c *gin.Context) {
	page, err := h.pageService.GetBySlug(c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *FunnelPageHandler) UpdateBlocks(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}

	var req models.UpdateFunnelPageBlocksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.pageService.ReplaceBlocks(id, req.Blocks)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *FunnelPageHandler) ApplyGeneration(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}
	generationID, err := strconv.ParseUint(c.Param("generationId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid generation id"})
		return
	}

	page, err := h.pageService.ApplyGeneration(id, uint(generationID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *FunnelPageHandler) Delete(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}

	if err := h.pageService.Delete(id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "funnel page deleted successfully"})
}

func pageID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page id"})
		return 0, false
	}
	return uint(id), true
}

func (h *FunnelPageHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFunnelPageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "funnel page not found"})
	case errors.Is(err, service.ErrGenerationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "generation not found"})
	case errors.Is(err, service.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidFunnelPage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(err, "Funnel page request failed", map[string]interface{}{"path": c.FullPath()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
