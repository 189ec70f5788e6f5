package handlers

import (
	"errors"
	"net/http"

	"konsert-backend/internal/middleware"
	"konsert-backend/internal/service"
	"konsert-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	draftService *service.DraftService
	secure       bool
}

func NewDraftHandler(draftService *service.DraftService, secure bool) *DraftHandler {
	return &DraftHandler{draftService: draftService, secure: secure}
}

// Enable is called by the studio preview button with the shared secret and
// the slug or path to preview.
func (h *DraftHandler) Enable(c *gin.Context) {
	token, redirect, err := h.draftService.Enable(c.Query("secret"), c.Query("slug"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDraftModeDisabled):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDraftSecretInvalid):
			logger.FromContext(c.Request.Context()).Warn("Rejected draft mode request")
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			respondError(c, err)
		}
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.DraftModeCookieName, token, int(h.draftService.TTL().Seconds()), "/", "", h.secure, true)
	c.Header("Cache-Control", "no-store")
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}

func (h *DraftHandler) Disable(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.DraftModeCookieName, "", -1, "/", "", h.secure, true)
	c.Header("Cache-Control", "no-store")
	c.Redirect(http.StatusTemporaryRedirect, service.SafeRedirect(c.Query("redirect")))
}
