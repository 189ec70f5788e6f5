package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewareLabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MetricsMiddleware())
	router.GET("/artists/:slug", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/artists/:slug", "200")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/artists/ostkant-jazz", "/artists/blabaer"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Fatalf("expected 2 requests under the route template, got %v", got)
	}

	unmatched := httpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	before = testutil.ToFloat64(unmatched)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	if got := testutil.ToFloat64(unmatched) - before; got != 1 {
		t.Fatalf("expected unmatched request to be counted, got %v", got)
	}
}
