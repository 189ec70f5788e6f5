package middleware

import (
	"github.com/gin-gonic/gin"

	"konsert-backend/pkg/logger"
)

const (
	DraftModeCookieName = "__draft_mode"
	draftModeKey        = "draft_mode"
)

type DraftVerifier interface {
	Verify(token string) bool
}

// DraftModeMiddleware marks the request as a draft preview when it carries a
// valid draft cookie.
func DraftModeMiddleware(verifier DraftVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(DraftModeCookieName)
		if err == nil && token != "" && verifier != nil && verifier.Verify(token) {
			c.Set(draftModeKey, true)
			ctx := logger.ContextWithFields(c.Request.Context(), map[string]interface{}{"draft": true})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func IsDraftMode(c *gin.Context) bool {
	return c.GetBool(draftModeKey)
}
