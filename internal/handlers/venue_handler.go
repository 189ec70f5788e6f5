package handlers

import (
	"net/http"

	"konsert-backend/internal/middleware"
	"konsert-backend/internal/models"
	"konsert-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type VenueHandler struct {
	venueService *service.VenueService
}

func NewVenueHandler(venueService *service.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

func (h *VenueHandler) Create(c *gin.Context) {
	var req models.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	venue, err := h.venueService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"venue": venue})
}

func (h *VenueHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "venue")
	if !ok {
		return
	}

	var req models.UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	venue, err := h.venueService.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"venue": venue})
}

func (h *VenueHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "venue")
	if !ok {
		return
	}

	if err := h.venueService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "venue deleted successfully"})
}

func (h *VenueHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "venue")
	if !ok {
		return
	}

	venue, err := h.venueService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"venue": venue})
}

func (h *VenueHandler) GetBySlug(c *gin.Context) {
	draft := middleware.IsDraftMode(c)

	venue, err := h.venueService.GetBySlug(c.Param("slug"), draft)
	if err != nil {
		respondError(c, err)
		return
	}

	noStoreInDraft(c, draft)
	c.JSON(http.StatusOK, gin.H{"venue": venue})
}

func (h *VenueHandler) GetAll(c *gin.Context) {
	draft := middleware.IsDraftMode(c)

	venues, err := h.venueService.GetAll(draft)
	if err != nil {
		respondError(c, err)
		return
	}

	noStoreInDraft(c, draft)
	c.JSON(http.StatusOK, gin.H{"venues": venues})
}

func (h *VenueHandler) GetAllAdmin(c *gin.Context) {
	venues, err := h.venueService.GetAllAdmin()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"venues": venues})
}

func (h *VenueHandler) Publish(c *gin.Context) {
	id, ok := parseID(c, "venue")
	if !ok {
		return
	}

	venue, err := h.venueService.Publish(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"venue": venue})
}

func (h *VenueHandler) Unpublish(c *gin.Context) {
	id, ok := parseID(c, "venue")
	if !ok {
		return
	}

	venue, err := h.venueService.Unpublish(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"venue": venue})
}
