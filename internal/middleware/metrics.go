package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ziming-L/wwu-course-navigator/internal/service"
)

// Metrics observes every request on the provided service. Tab-scoped routes
// are recorded under their route template, not the expanded tab id, so the
// label set stays bounded. Scrapes of the metrics endpoint itself are not
// counted.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			// Unmatched route; keep the raw path so 404 sources show up.
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
