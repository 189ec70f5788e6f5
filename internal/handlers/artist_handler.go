package handlers

import (
	"net/http"

	"konsert-backend/internal/middleware"
	"konsert-backend/internal/models"
	"konsert-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ArtistHandler struct {
	artistService *service.ArtistService
}

func NewArtistHandler(artistService *service.ArtistService) *ArtistHandler {
	return &ArtistHandler{artistService: artistService}
}

func (h *ArtistHandler) Create(c *gin.Context) {
	var req models.CreateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artist, err := h.artistService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"artist": artist})
}

func (h *ArtistHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "artist")
	if !ok {
		return
	}

	var req models.UpdateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artist, err := h.artistService.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"artist": artist})
}

func (h *ArtistHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "artist")
	if !ok {
		return
	}

	if err := h.artistService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "artist deleted successfully"})
}

func (h *ArtistHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "artist")
	if !ok {
		return
	}

	artist, err := h.artistService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"artist": artist})
}

func (h *ArtistHandler) GetBySlug(c *gin.Context) {
	draft := middleware.IsDraftMode(c)

	artist, err := h.artistService.GetBySlug(c.Param("slug"), draft)
	if err != nil {
		respondError(c, err)
		return
	}

	noStoreInDraft(c, draft)
	c.JSON(http.StatusOK, gin.H{"artist": artist})
}

func (h *ArtistHandler) GetAll(c *gin.Context) {
	draft := middleware.IsDraftMode(c)

	artists, err := h.artistService.GetAll(draft)
	if err != nil {
		respondError(c, err)
		return
	}

	noStoreInDraft(c, draft)
	c.JSON(http.StatusOK, gin.H{"artists": artists})
}

func (h *ArtistHandler) GetAllAdmin(c *gin.Context) {
	artists, err := h.artistService.GetAllAdmin()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"artists": artists})
}

func (h *ArtistHandler) Publish(c *gin.Context) {
	id, ok := parseID(c, "artist")
	if !ok {
		return
	}

	artist, err := h.artistService.Publish(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"artist": artist})
}

func (h *ArtistHandler) Unpublish(c *gin.Context) {
	id, ok := parseID(c, "artist")
	if !ok {
		return
	}

	artist, err := h.artistService.Unpublish(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"artist": artist})
}

func noStoreInDraft(c *gin.Context, draft bool) {
	if draft {
		c.Header("Cache-Control", "no-store")
	}
}
