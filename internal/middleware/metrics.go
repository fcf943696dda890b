package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/capacidad-recursos-api/internal/logger"
	"github.com/cleberrangel/capacidad-recursos-api/internal/metrics"
)

// MetricsMiddleware tracks request metrics
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	if m == nil {
		m = metrics.Get()
	}
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start).Milliseconds()
		statusCode := c.Writer.Status()
		m.IncrementRequests(statusCode < 400, latency)

		// rota registrada quando existir, para não explodir a cardinalidade
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		m.TrackEndpoint(path, c.Request.Method, statusCode, latency)
	}
}

// auditPrefixes são as rotas que alteram o modelo publicado
var auditPrefixes = []string{
	"/api/v1/workbooks",
}

// AuditMiddleware logs audit events for state-changing operations
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		if !shouldAudit(c.Request.Method, path) {
			return
		}
		logger.AuditRequest(
			c.Request.Context(),
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start).Milliseconds(),
			c.ClientIP(),
		)
	}
}

func shouldAudit(method, path string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return false
	}
	for _, prefix := range auditPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
