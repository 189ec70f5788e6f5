package handlers

import (
	"net/http"

	"konsert-backend/internal/models"
	"konsert-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SlugHandler exposes the slug helpers so editing tools produce the same
// slugs as the server.
type SlugHandler struct{}

func NewSlugHandler() *SlugHandler {
	return &SlugHandler{}
}

func (h *SlugHandler) Generate(c *gin.Context) {
	var req models.GenerateSlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug := utils.GenerateSlug(req.Text)
	c.JSON(http.StatusOK, gin.H{
		"slug":  slug,
		"valid": utils.ValidateSlug(slug),
	})
}

func (h *SlugHandler) Validate(c *gin.Context) {
	var req models.SlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	valid := utils.ValidateSlug(req.Slug)
	response := gin.H{"slug": req.Slug, "valid": valid}
	if !valid {
		response["suggestion"] = utils.NormalizeSlug(req.Slug)
	}
	c.JSON(http.StatusOK, response)
}

func (h *SlugHandler) Normalize(c *gin.Context) {
	var req models.SlugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug := utils.NormalizeSlug(req.Slug)
	c.JSON(http.StatusOK, gin.H{
		"slug":  slug,
		"valid": utils.ValidateSlug(slug),
	})
}
