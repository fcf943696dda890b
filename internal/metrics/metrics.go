package metrics

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// EndpointMetrics tracks metrics for a specific endpoint
type EndpointMetrics struct {
	Requests     int64
	Errors       int64
	TotalLatency int64
}

// Metrics holds all application metrics
type Metrics struct {
	mu sync.RWMutex

	// Request metrics
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64

	// Request latency (in milliseconds)
	TotalLatency int64
	RequestCount int64

	// Workbook load metrics
	WorkbookLoads       int64
	WorkbookLoadErrors  int64
	WorkbookLoadLatency int64
	ModelsPublished     int64

	// File upload metrics
	FilesUploaded      int64
	TotalBytesUploaded int64

	// WebSocket metrics
	WSConnections int64
	WSMessagesIn  int64
	WSMessagesOut int64

	// Auth / rate limit metrics
	AuthFailures int64
	RateLimited  int64

	// Report generation metrics
	ReportsGenerated  int64
	ReportErrors      int64
	ReportCacheHits   int64
	ExportsDownloaded int64

	// Endpoint-specific metrics
	EndpointMetrics map[string]*EndpointMetrics

	// Start time for uptime calculation
	StartTime time.Time
}

// global metrics instance
var globalMetrics *Metrics
var once sync.Once

// Init initializes the global metrics instance
func Init() {
	once.Do(func() {
		globalMetrics = New()
	})
}

// New cria uma instância isolada (testes)
func New() *Metrics {
	return &Metrics{
		StartTime:       time.Now(),
		EndpointMetrics: make(map[string]*EndpointMetrics),
	}
}

// Get returns the global metrics instance
func Get() *Metrics {
	Init()
	return globalMetrics
}

// IncrementRequests increments request counters
func (m *Metrics) IncrementRequests(success bool, latencyMs int64) {
	atomic.AddInt64(&m.TotalRequests, 1)
	atomic.AddInt64(&m.TotalLatency, latencyMs)
	atomic.AddInt64(&m.RequestCount, 1)

	if success {
		atomic.AddInt64(&m.SuccessfulRequests, 1)
	} else {
		atomic.AddInt64(&m.FailedRequests, 1)
	}
}

// IncrementWorkbookLoad registra uma execução do pipeline
func (m *Metrics) IncrementWorkbookLoad(success bool, latencyMs int64) {
	atomic.AddInt64(&m.WorkbookLoads, 1)
	atomic.AddInt64(&m.WorkbookLoadLatency, latencyMs)
	if !success {
		atomic.AddInt64(&m.WorkbookLoadErrors, 1)
	}
}

// IncrementModelPublished conta modelos publicados
func (m *Metrics) IncrementModelPublished() {
	atomic.AddInt64(&m.ModelsPublished, 1)
}

// IncrementFileUpload increments file upload counters
func (m *Metrics) IncrementFileUpload(bytes int64) {
	atomic.AddInt64(&m.FilesUploaded, 1)
	atomic.AddInt64(&m.TotalBytesUploaded, bytes)
}

// IncrementWSConnection increments WebSocket connection counter
func (m *Metrics) IncrementWSConnection() {
	atomic.AddInt64(&m.WSConnections, 1)
}

// DecrementWSConnection decrements WebSocket connection counter
func (m *Metrics) DecrementWSConnection() {
	atomic.AddInt64(&m.WSConnections, -1)
}

// IncrementWSMessageIn increments WebSocket incoming message counter
func (m *Metrics) IncrementWSMessageIn() {
	atomic.AddInt64(&m.WSMessagesIn, 1)
}

// IncrementWSMessageOut increments WebSocket outgoing message counter
func (m *Metrics) IncrementWSMessageOut() {
	atomic.AddInt64(&m.WSMessagesOut, 1)
}

// IncrementAuthFailure conta tokens rejeitados
func (m *Metrics) IncrementAuthFailure() {
	atomic.AddInt64(&m.AuthFailures, 1)
}

// IncrementRateLimited conta requisições barradas pelo limitador
func (m *Metrics) IncrementRateLimited() {
	atomic.AddInt64(&m.RateLimited, 1)
}

// IncrementReportGenerated increments report generation counters
func (m *Metrics) IncrementReportGenerated(success bool) {
	if success {
		atomic.AddInt64(&m.ReportsGenerated, 1)
	} else {
		atomic.AddInt64(&m.ReportErrors, 1)
	}
}

// IncrementReportCacheHit conta relatórios servidos do cache
func (m *Metrics) IncrementReportCacheHit() {
	atomic.AddInt64(&m.ReportCacheHits, 1)
}

// IncrementExport conta downloads do JSON de recursos
func (m *Metrics) IncrementExport() {
	atomic.AddInt64(&m.ExportsDownloaded, 1)
}

// TrackEndpoint tracks metrics for a specific endpoint
func (m *Metrics) TrackEndpoint(path, method string, statusCode int, latencyMs int64) {
	key := method + " " + path

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.EndpointMetrics == nil {
		m.EndpointMetrics = make(map[string]*EndpointMetrics)
	}

	em, exists := m.EndpointMetrics[key]
	if !exists {
		em = &EndpointMetrics{}
		m.EndpointMetrics[key] = em
	}

	atomic.AddInt64(&em.Requests, 1)
	atomic.AddInt64(&em.TotalLatency, latencyMs)
	if statusCode >= 400 {
		atomic.AddInt64(&em.Errors, 1)
	}
}

// GetEndpointMetrics returns a copy of endpoint metrics
func (m *Metrics) GetEndpointMetrics() map[string]EndpointMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]EndpointMetrics)
	for k, v := range m.EndpointMetrics {
		result[k] = EndpointMetrics{
			Requests:     atomic.LoadInt64(&v.Requests),
			Errors:       atomic.LoadInt64(&v.Errors),
			TotalLatency: atomic.LoadInt64(&v.TotalLatency),
		}
	}
	return result
}

// GetAverageLatency returns average request latency in milliseconds
func (m *Metrics) GetAverageLatency() float64 {
	count := atomic.LoadInt64(&m.RequestCount)
	if count == 0 {
		return 0
	}
	total := atomic.LoadInt64(&m.TotalLatency)
	return float64(total) / float64(count)
}

// GetUptime returns the application uptime
func (m *Metrics) GetUptime() time.Duration {
	return time.Since(m.StartTime)
}

// EndpointMetricsSnapshot represents endpoint metrics in a snapshot
type EndpointMetricsSnapshot struct {
	Requests     int64   `json:"requests"`
	Errors       int64   `json:"errors"`
	ErrorRate    float64 `json:"error_rate"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

// MetricsSnapshot represents a point-in-time snapshot of all metrics
type MetricsSnapshot struct {
	// Uptime
	UptimeSeconds float64 `json:"uptime_seconds"`
	StartTime     string  `json:"start_time"`

	// Request metrics
	Requests struct {
		Total        int64   `json:"total"`
		Successful   int64   `json:"successful"`
		Failed       int64   `json:"failed"`
		AvgLatencyMs float64 `json:"avg_latency_ms"`
	} `json:"requests"`

	// Workbook load metrics
	Workbooks struct {
		Loads        int64   `json:"loads"`
		Errors       int64   `json:"errors"`
		Published    int64   `json:"published"`
		AvgLatencyMs float64 `json:"avg_latency_ms"`
	} `json:"workbooks"`

	// File metrics
	Files struct {
		Uploaded   int64 `json:"uploaded"`
		TotalBytes int64 `json:"total_bytes"`
	} `json:"files"`

	// WebSocket metrics
	WebSocket struct {
		Connections int64 `json:"connections"`
		MessagesIn  int64 `json:"messages_in"`
		MessagesOut int64 `json:"messages_out"`
	} `json:"websocket"`

	// Auth metrics
	Auth struct {
		Failures    int64 `json:"failures"`
		RateLimited int64 `json:"rate_limited"`
	} `json:"auth"`

	// Report metrics
	Reports struct {
		Generated int64 `json:"generated"`
		Errors    int64 `json:"errors"`
		CacheHits int64 `json:"cache_hits"`
		Exports   int64 `json:"exports"`
	} `json:"reports"`

	// System metrics
	System struct {
		Goroutines   int    `json:"goroutines"`
		HeapAllocMB  uint64 `json:"heap_alloc_mb"`
		HeapInUseMB  uint64 `json:"heap_inuse_mb"`
		StackInUseMB uint64 `json:"stack_inuse_mb"`
		NumGC        uint32 `json:"num_gc"`
	} `json:"system"`

	// Endpoint-specific metrics
	Endpoints map[string]EndpointMetricsSnapshot `json:"endpoints,omitempty"`
}

// Snapshot returns a point-in-time snapshot of all metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	snapshot := MetricsSnapshot{}

	// Uptime
	snapshot.UptimeSeconds = m.GetUptime().Seconds()
	snapshot.StartTime = m.StartTime.Format(time.RFC3339)

	// Request metrics
	snapshot.Requests.Total = atomic.LoadInt64(&m.TotalRequests)
	snapshot.Requests.Successful = atomic.LoadInt64(&m.SuccessfulRequests)
	snapshot.Requests.Failed = atomic.LoadInt64(&m.FailedRequests)
	snapshot.Requests.AvgLatencyMs = m.GetAverageLatency()

	// Workbook metrics
	loads := atomic.LoadInt64(&m.WorkbookLoads)
	snapshot.Workbooks.Loads = loads
	snapshot.Workbooks.Errors = atomic.LoadInt64(&m.WorkbookLoadErrors)
	snapshot.Workbooks.Published = atomic.LoadInt64(&m.ModelsPublished)
	if loads > 0 {
		snapshot.Workbooks.AvgLatencyMs = float64(atomic.LoadInt64(&m.WorkbookLoadLatency)) / float64(loads)
	}

	// File metrics
	snapshot.Files.Uploaded = atomic.LoadInt64(&m.FilesUploaded)
	snapshot.Files.TotalBytes = atomic.LoadInt64(&m.TotalBytesUploaded)

	// WebSocket metrics
	snapshot.WebSocket.Connections = atomic.LoadInt64(&m.WSConnections)
	snapshot.WebSocket.MessagesIn = atomic.LoadInt64(&m.WSMessagesIn)
	snapshot.WebSocket.MessagesOut = atomic.LoadInt64(&m.WSMessagesOut)

	// Auth metrics
	snapshot.Auth.Failures = atomic.LoadInt64(&m.AuthFailures)
	snapshot.Auth.RateLimited = atomic.LoadInt64(&m.RateLimited)

	// Report metrics
	snapshot.Reports.Generated = atomic.LoadInt64(&m.ReportsGenerated)
	snapshot.Reports.Errors = atomic.LoadInt64(&m.ReportErrors)
	snapshot.Reports.CacheHits = atomic.LoadInt64(&m.ReportCacheHits)
	snapshot.Reports.Exports = atomic.LoadInt64(&m.ExportsDownloaded)

	// System metrics
	snapshot.System.Goroutines = runtime.NumGoroutine()
	snapshot.System.HeapAllocMB = memStats.HeapAlloc / 1024 / 1024
	snapshot.System.HeapInUseMB = memStats.HeapInuse / 1024 / 1024
	snapshot.System.StackInUseMB = memStats.StackInuse / 1024 / 1024
	snapshot.System.NumGC = memStats.NumGC

	// Endpoint metrics
	endpointMetrics := m.GetEndpointMetrics()
	if len(endpointMetrics) > 0 {
		snapshot.Endpoints = make(map[string]EndpointMetricsSnapshot)
		for k, v := range endpointMetrics {
			em := EndpointMetricsSnapshot{
				Requests: v.Requests,
				Errors:   v.Errors,
			}
			if v.Requests > 0 {
				em.ErrorRate = float64(v.Errors) / float64(v.Requests) * 100
				em.AvgLatencyMs = float64(v.TotalLatency) / float64(v.Requests)
			}
			snapshot.Endpoints[k] = em
		}
	}

	return snapshot
}

// HealthStatus represents the health status of a component
type HealthStatus struct {
	Status  string `json:"status"` // "healthy", "degraded", "unhealthy"
	Message string `json:"message,omitempty"`
	Latency int64  `json:"latency_ms,omitempty"`
}

// HealthCheck represents the overall health check response
type HealthCheck struct {
	Status     string                  `json:"status"` // "healthy", "degraded", "unhealthy"
	Version    string                  `json:"version"`
	Uptime     string                  `json:"uptime"`
	Timestamp  string                  `json:"timestamp"`
	Components map[string]HealthStatus `json:"components"`
}

// CheckModelHealth avalia o modelo publicado. Sem modelo o serviço está
// degradado (responde, mas não há dados).
func CheckModelHealth(loaded bool, generatedAt time.Time) HealthStatus {
	if !loaded {
		return HealthStatus{
			Status:  "degraded",
			Message: "nenhuma planilha carregada",
		}
	}
	return HealthStatus{
		Status:  "healthy",
		Message: "modelo gerado em " + generatedAt.UTC().Format(time.RFC3339),
	}
}

// CheckMemoryHealth checks memory usage
func CheckMemoryHealth(maxHeapMB uint64) HealthStatus {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	heapMB := memStats.HeapAlloc / 1024 / 1024

	if heapMB > maxHeapMB {
		return HealthStatus{
			Status:  "unhealthy",
			Message: "heap memory exceeds limit",
		}
	}

	// Warn if using more than 80% of limit
	if heapMB > (maxHeapMB * 80 / 100) {
		return HealthStatus{
			Status:  "degraded",
			Message: "heap memory usage high",
		}
	}

	return HealthStatus{
		Status: "healthy",
	}
}

// DetermineOverallStatus determines overall health from component statuses
func DetermineOverallStatus(components map[string]HealthStatus) string {
	hasUnhealthy := false
	hasDegraded := false

	for _, status := range components {
		switch status.Status {
		case "unhealthy":
			hasUnhealthy = true
		case "degraded":
			hasDegraded = true
		}
	}

	if hasUnhealthy {
		return "unhealthy"
	}
	if hasDegraded {
		return "degraded"
	}
	return "healthy"
}
