package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/raidatlas/raidatlas-api/internal/service"
)

// Metrics records per-request latency and status counts. Scrape and probe
// endpoints are excluded so the histogram reflects API traffic only.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if metricsSvc == nil || route == "/metrics" || route == "/health" || route == "/ready" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		if route == "" {
			route = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
