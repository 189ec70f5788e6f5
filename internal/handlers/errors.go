package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"konsert-backend/internal/service"
	"konsert-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Unknown errors are
// logged and reported as 500 without their message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrDocumentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrSlugInvalid),
		errors.Is(err, service.ErrFeaturedNotFound):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrSlugTaken):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).WithError(err).Error("Request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context, kind string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + kind + " id"})
		return 0, false
	}
	return uint(id), true
}
