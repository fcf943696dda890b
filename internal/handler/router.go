package handler

import (
	"runtime"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/capacidad-recursos-api/internal/metrics"
	"github.com/cleberrangel/capacidad-recursos-api/internal/middleware"
	"github.com/cleberrangel/capacidad-recursos-api/internal/service"
	"github.com/cleberrangel/capacidad-recursos-api/internal/websocket"
)

// RouterDeps agrupa o que as rotas precisam; Hub e Limiter podem ser nil
type RouterDeps struct {
	Service *service.DashboardService
	Hub     *websocket.Hub
	Auth    middleware.AuthConfig
	Limiter *middleware.RateLimiter
	Metrics *metrics.Metrics
	Version string
}

// NewRouter monta o engine gin com todas as rotas
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID()) // Request ID + logging estruturado
	r.Use(gin.Recovery())
	r.Use(middleware.MetricsMiddleware(deps.Metrics))
	r.Use(middleware.AuditMiddleware())

	health := NewHealthHandler(deps.Service, deps.Hub, deps.Metrics, deps.Version)
	r.GET("/health", health.DetailedHealthCheck)
	r.GET("/health/live", health.LivenessCheck)
	r.GET("/health/ready", health.ReadinessCheck)
	r.GET("/metrics", health.GetMetrics)
	r.GET("/metrics/summary", health.GetMetricsSummary)

	r.GET("/debug/memory", func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		c.JSON(200, gin.H{
			"alloc_mb":      m.Alloc / 1024 / 1024,
			"sys_mb":        m.Sys / 1024 / 1024,
			"heap_alloc_mb": m.HeapAlloc / 1024 / 1024,
			"heap_inuse_mb": m.HeapInuse / 1024 / 1024,
			"goroutines":    runtime.NumGoroutine(),
			"gc_runs":       m.NumGC,
		})
	})

	if deps.Hub != nil {
		ws := NewWebSocketHandler(deps.Hub)
		r.GET("/ws", ws.HandleConnection)
		r.GET("/ws/stats", ws.GetConnectionStats)
	}

	dashboard := NewDashboardHandler(deps.Service)
	workbooks := NewWorkbookHandler(deps.Service)

	// leitura é pública
	api := r.Group("/api/v1")
	{
		api.GET("/modelo", dashboard.GetModel)
		api.GET("/recursos/capacidad", dashboard.GetResourceCapacity)
		api.GET("/recursos/export", dashboard.ExportResources)
		api.GET("/recursos/reporte.xlsx", dashboard.DownloadReport)
		api.GET("/equipo/capacidad", dashboard.GetTeamCapacity)
		api.GET("/alertas", dashboard.GetAlerts)
	}

	// carga de planilhas exige token
	protected := api.Group("/workbooks")
	if deps.Limiter != nil {
		protected.Use(deps.Limiter.Middleware())
	}
	protected.Use(middleware.BearerAuth(deps.Auth))
	{
		protected.POST("", workbooks.Upload)
		protected.POST("/reload", workbooks.Reload)
	}

	return r
}
