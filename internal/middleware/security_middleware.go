package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func SecurityHeadersMiddleware() gin.HandlerFunc {
	policy := buildContentSecurityPolicy(nil, nil)

	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-DNS-Prefetch-Control", "off")
		c.Header("X-Permitted-Cross-Domain-Policies", "none")
		c.Header("Cross-Origin-Opener-Policy", "same-origin")
		c.Header("Cross-Origin-Resource-Policy", "same-origin")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Header("Content-Security-Policy", policy)
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		c.Next()
	}
}

// buildContentSecurityPolicy returns the site policy. Artist portraits are
// hot-linked, so images may come from any https origin in addition to
// imageSources.
func buildContentSecurityPolicy(scriptSources, imageSources []string) string {
	directives := []struct {
		name    string
		sources []string
	}{
		{"default-src", []string{"'self'"}},
		{"script-src", append([]string{"'self'"}, scriptSources...)},
		{"style-src", []string{"'self'", "'unsafe-inline'"}},
		{"img-src", append([]string{"'self'", "data:", "https:"}, imageSources...)},
		{"media-src", []string{"'self'", "data:", "blob:"}},
		{"object-src", []string{"'none'"}},
		{"base-uri", []string{"'self'"}},
		{"form-action", []string{"'self'"}},
		{"frame-ancestors", []string{"'none'"}},
	}

	parts := make([]string, 0, len(directives))
	for _, directive := range directives {
		parts = append(parts, directive.name+" "+strings.Join(directive.sources, " "))
	}
	return strings.Join(parts, "; ")
}
