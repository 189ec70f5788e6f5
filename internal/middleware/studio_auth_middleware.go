package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// StudioAuthMiddleware guards the editing API with a shared bearer token.
// An empty token disables the studio API entirely.
func StudioAuthMiddleware(token string) gin.HandlerFunc {
	expected := []byte(strings.TrimSpace(token))

	return func(c *gin.Context) {
		if len(expected) == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "studio API is not configured"})
			c.Abort()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization credentials required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(parts[1])), expected) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid studio token"})
			c.Abort()
			return
		}

		c.Set("studio", true)
		c.Next()
	}
}
