package handlers

import (
	"net/http"

	"konsert-backend/internal/middleware"
	"konsert-backend/internal/models"
	"konsert-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	pageService *service.PageService
}

func NewPageHandler(pageService *service.PageService) *PageHandler {
	return &PageHandler{pageService: pageService}
}

func (h *PageHandler) Create(c *gin.Context) {
	var req models.CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.pageService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"page": page})
}

func (h *PageHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "page")
	if !ok {
		return
	}

	var req models.UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.pageService.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *PageHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "page")
	if !ok {
		return
	}

	if err := h.pageService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "page deleted successfully"})
}

func (h *PageHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "page")
	if !ok {
		return
	}

	page, err := h.pageService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *PageHandler) GetBySlug(c *gin.Context) {
	draft := middleware.IsDraftMode(c)

	page, err := h.pageService.GetBySlug(c.Param("slug"), draft)
	if err != nil {
		respondError(c, err)
		return
	}

	noStoreInDraft(c, draft)
	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *PageHandler) GetAll(c *gin.Context) {
	draft := middleware.IsDraftMode(c)

	pages, err := h.pageService.GetAll(draft)
	if err != nil {
		respondError(c, err)
		return
	}

	noStoreInDraft(c, draft)
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

func (h *PageHandler) GetAllAdmin(c *gin.Context) {
	pages, err := h.pageService.GetAllAdmin()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

func (h *PageHandler) Publish(c *gin.Context) {
	id, ok := parseID(c, "page")
	if !ok {
		return
	}

	page, err := h.pageService.Publish(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *PageHandler) Unpublish(c *gin.Context) {
	id, ok := parseID(c, "page")
	if !ok {
		return
	}

	page, err := h.pageService.Unpublish(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}
