package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bizops-api/internal/models"
	"github.com/noah-isme/bizops-api/internal/service"
)

// Probe and scrape endpoints are polled constantly and would drown the request series.
var unobservedPaths = map[string]struct{}{
	"/health":  {},
	"/ready":   {},
	"/metrics": {},
}

// Metrics records request duration and status per route. Archive routes are labelled
// with the entity kind so archive traffic per kind can be told apart.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := routeLabel(c)
		if _, skip := unobservedPaths[path]; skip {
			return
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

func routeLabel(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		// unmatched routes share one label so random paths cannot grow the series
		return "unmatched"
	}
	if !strings.Contains(route, ":kind") {
		return route
	}
	kind, err := models.ParseEntityKind(c.Param("kind"))
	if err != nil {
		return route
	}
	return strings.Replace(route, ":kind", string(kind), 1)
}
