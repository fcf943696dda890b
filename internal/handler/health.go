package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/capacidad-recursos-api/internal/metrics"
	"github.com/cleberrangel/capacidad-recursos-api/internal/service"
	"github.com/cleberrangel/capacidad-recursos-api/internal/websocket"
)

// maxWSConnections acima disso o hub é reportado como degradado
const maxWSConnections = 50

// HealthHandler handles health check and metrics endpoints
type HealthHandler struct {
	svc       *service.DashboardService
	wsHub     *websocket.Hub
	metrics   *metrics.Metrics
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new health handler; wsHub may be nil
func NewHealthHandler(svc *service.DashboardService, wsHub *websocket.Hub, m *metrics.Metrics, version string) *HealthHandler {
	if m == nil {
		m = metrics.Get()
	}
	return &HealthHandler{
		svc:       svc,
		wsHub:     wsHub,
		metrics:   m,
		version:   version,
		startTime: time.Now(),
	}
}

// LivenessCheck returns basic liveness status
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health/live [get]
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ReadinessCheck reports whether a model is published. Sem modelo a API
// responde, mas todos os endpoints de dados devolvem 404.
// @Router /health/ready [get]
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	components := map[string]metrics.HealthStatus{
		"memory": metrics.CheckMemoryHealth(512),
		"modelo": h.checkModel(),
	}
	h.respond(c, components)
}

// DetailedHealthCheck returns comprehensive health information
// @Router /health [get]
func (h *HealthHandler) DetailedHealthCheck(c *gin.Context) {
	components := map[string]metrics.HealthStatus{
		"memory": metrics.CheckMemoryHealth(512),
		"modelo": h.checkModel(),
	}
	if h.wsHub != nil {
		components["websocket"] = h.checkWebSocketHealth()
	}
	h.respond(c, components)
}

func (h *HealthHandler) respond(c *gin.Context, components map[string]metrics.HealthStatus) {
	overallStatus := metrics.DetermineOverallStatus(components)

	healthCheck := metrics.HealthCheck{
		Status:     overallStatus,
		Version:    h.version,
		Uptime:     time.Since(h.startTime).String(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: components,
	}

	statusCode := http.StatusOK
	if overallStatus == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, healthCheck)
}

func (h *HealthHandler) checkModel() metrics.HealthStatus {
	m, err := h.svc.Current()
	if err != nil {
		return metrics.CheckModelHealth(false, time.Time{})
	}
	return metrics.CheckModelHealth(true, m.GeneratedAt)
}

// checkWebSocketHealth checks WebSocket hub health
func (h *HealthHandler) checkWebSocketHealth() metrics.HealthStatus {
	if h.wsHub.GetConnectionCount() > maxWSConnections {
		return metrics.HealthStatus{
			Status:  "degraded",
			Message: "WebSocket connections near limit",
		}
	}
	return metrics.HealthStatus{
		Status: "healthy",
	}
}

// GetMetrics returns application metrics
// @Router /metrics [get]
func (h *HealthHandler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

// GetMetricsSummary returns a summary of key metrics
// @Router /metrics/summary [get]
func (h *HealthHandler) GetMetricsSummary(c *gin.Context) {
	snapshot := h.metrics.Snapshot()

	requestSuccessRate := float64(0)
	if snapshot.Requests.Total > 0 {
		requestSuccessRate = float64(snapshot.Requests.Successful) / float64(snapshot.Requests.Total) * 100
	}

	loadSuccessRate := float64(0)
	if snapshot.Workbooks.Loads > 0 {
		loadSuccessRate = float64(snapshot.Workbooks.Loads-snapshot.Workbooks.Errors) / float64(snapshot.Workbooks.Loads) * 100
	}

	summary := gin.H{
		"uptime_seconds": snapshot.UptimeSeconds,
		"version":        h.version,
		"requests": gin.H{
			"total":        snapshot.Requests.Total,
			"success_rate": requestSuccessRate,
			"avg_latency":  snapshot.Requests.AvgLatencyMs,
		},
		"workbooks": gin.H{
			"loads":        snapshot.Workbooks.Loads,
			"published":    snapshot.Workbooks.Published,
			"success_rate": loadSuccessRate,
			"avg_latency":  snapshot.Workbooks.AvgLatencyMs,
		},
		"reports": gin.H{
			"generated":  snapshot.Reports.Generated,
			"cache_hits": snapshot.Reports.CacheHits,
			"exports":    snapshot.Reports.Exports,
		},
		"auth": gin.H{
			"failures":     snapshot.Auth.Failures,
			"rate_limited": snapshot.Auth.RateLimited,
		},
		"websocket": gin.H{
			"connections": snapshot.WebSocket.Connections,
		},
		"system": gin.H{
			"goroutines":  snapshot.System.Goroutines,
			"heap_mb":     snapshot.System.HeapAllocMB,
			"heap_use_mb": snapshot.System.HeapInUseMB,
		},
	}

	c.JSON(http.StatusOK, summary)
}
