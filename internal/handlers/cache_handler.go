package handlers

import (
	"net/http"

	"konsert-backend/pkg/cache"

	"github.com/gin-gonic/gin"
)

var cacheKinds = map[string]struct{}{
	"artist":   {},
	"venue":    {},
	"page":     {},
	"homepage": {},
}

// ClearCache drops cached content of one kind, or everything for type=all.
// afterClear, when set, runs once the cache has been cleared.
func ClearCache(cacheService *cache.Cache, afterClear func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		cacheType := c.DefaultQuery("type", "all")

		var err error
		if cacheType == "all" {
			err = cacheService.FlushAll()
		} else if _, ok := cacheKinds[cacheType]; ok {
			err = cacheService.InvalidateKind(cacheType)
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cache type"})
			return
		}

		if err != nil {
			respondError(c, err)
			return
		}

		if afterClear != nil {
			afterClear()
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "cache cleared successfully",
			"type":    cacheType,
		})
	}
}
