package logger

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// AuditAction represents the type of action being audited
type AuditAction string

const (
	AuditActionWorkbookUpload AuditAction = "WORKBOOK_UPLOAD"
	AuditActionWorkbookReload AuditAction = "WORKBOOK_RELOAD"
	AuditActionModelPublish   AuditAction = "MODEL_PUBLISH"
	AuditActionLoadFailed     AuditAction = "LOAD_FAILED"

	AuditActionReportDownload AuditAction = "REPORT_DOWNLOAD"
	AuditActionExportDownload AuditAction = "EXPORT_DOWNLOAD"

	AuditActionAuthFailed  AuditAction = "AUTH_FAILED"
	AuditActionRateLimited AuditAction = "RATE_LIMITED"

	AuditActionWSConnect    AuditAction = "WS_CONNECT"
	AuditActionWSDisconnect AuditAction = "WS_DISCONNECT"

	AuditActionAPIRequest AuditAction = "API_REQUEST"
	AuditActionAPIError   AuditAction = "API_ERROR"
)

// AuditEvent represents an audit log entry
type AuditEvent struct {
	Action     AuditAction
	Resource   string
	ResourceID string
	Details    map[string]interface{}
	ClientIP   string
	RequestID  string
	LoadID     string
	Success    bool
	Error      string
	Duration   int64 // ms
	Method     string
	Path       string
	StatusCode int
}

var auditLogger = zerolog.Nop()

// InitAudit initializes the audit logger
func InitAudit() {
	auditLogger = globalLogger.With().Str("log_type", "audit").Logger()
}

// Audit logs an audit event
func Audit(ctx context.Context, event AuditEvent) {
	if event.RequestID == "" {
		event.RequestID = GetRequestID(ctx)
	}
	if event.LoadID == "" {
		event.LoadID = GetLoadID(ctx)
	}

	logEvent := auditLogger.Info()
	if !event.Success {
		logEvent = auditLogger.Warn()
	}

	logEvent.
		Str("action", string(event.Action)).
		Str("resource", event.Resource).
		Str("resource_id", event.ResourceID).
		Str("client_ip", event.ClientIP).
		Str("request_id", event.RequestID).
		Bool("success", event.Success).
		Time("timestamp", time.Now().UTC())

	if event.LoadID != "" {
		logEvent.Str("load_id", event.LoadID)
	}
	if event.Error != "" {
		logEvent.Str("error", event.Error)
	}
	if event.Duration > 0 {
		logEvent.Int64("duration_ms", event.Duration)
	}
	if event.Method != "" {
		logEvent.Str("method", event.Method)
	}
	if event.Path != "" {
		logEvent.Str("path", event.Path)
	}
	if event.StatusCode > 0 {
		logEvent.Int("status_code", event.StatusCode)
	}
	if len(event.Details) > 0 {
		logEvent.Interface("details", event.Details)
	}

	logEvent.Msg("Audit event")
}

// AuditRequest logs an API request audit event
func AuditRequest(ctx context.Context, method, path string, statusCode int, duration int64, clientIP string) {
	success := statusCode < 400
	action := AuditActionAPIRequest
	if !success {
		action = AuditActionAPIError
	}

	Audit(ctx, AuditEvent{
		Action:     action,
		Resource:   "api",
		ResourceID: path,
		Method:     method,
		Path:       path,
		StatusCode: statusCode,
		Duration:   duration,
		ClientIP:   clientIP,
		Success:    success,
	})
}

// AuditWebSocket logs WebSocket connection events
func AuditWebSocket(ctx context.Context, action AuditAction, clientIP string, details map[string]interface{}) {
	Audit(ctx, AuditEvent{
		Action:   action,
		Resource: "websocket",
		ClientIP: clientIP,
		Success:  true,
		Details:  details,
	})
}
