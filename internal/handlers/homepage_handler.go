package handlers

import (
	"net/http"

	"konsert-backend/internal/middleware"
	"konsert-backend/internal/models"
	"konsert-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type HomepageHandler struct {
	homepageService *service.HomepageService
}

func NewHomepageHandler(homepageService *service.HomepageService) *HomepageHandler {
	return &HomepageHandler{homepageService: homepageService}
}

func (h *HomepageHandler) Get(c *gin.Context) {
	draft := middleware.IsDraftMode(c)

	homepage, err := h.homepageService.Resolve(draft)
	if err != nil {
		respondError(c, err)
		return
	}

	noStoreInDraft(c, draft)
	c.JSON(http.StatusOK, gin.H{"homepage": homepage})
}

func (h *HomepageHandler) GetSettings(c *gin.Context) {
	homepage, err := h.homepageService.Get()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"homepage": homepage})
}

func (h *HomepageHandler) Update(c *gin.Context) {
	var req models.UpdateHomepageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	homepage, err := h.homepageService.Update(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"homepage": homepage})
}
