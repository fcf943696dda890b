package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey string

const (
	RequestIDKey ctxKey = "request_id"
	LoggerKey    ctxKey = "logger"
	LoadIDKey    ctxKey = "load_id"
	TraceIDKey   ctxKey = "trace_id"
)

// Tracer é o coletor de diagnóstico injetado no pipeline.
// *zerolog.Logger satisfaz a interface.
type Tracer interface {
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
}

// Options configura a saída do logger global
type Options struct {
	Level string
	JSON  bool
	// File habilita saída adicional em arquivo com rotação
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var globalLogger = zerolog.Nop()

// Init inicializa o logger global
func Init(opts Options) {
	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var output io.Writer = os.Stdout
	if !opts.JSON {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	if opts.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 50), // MB
			MaxBackups: orDefault(opts.MaxBackups, 5),
			MaxAge:     orDefault(opts.MaxAgeDays, 28), // dias
			Compress:   true,
		}
		// arquivo sempre em JSON
		output = zerolog.MultiLevelWriter(output, fileWriter)
	}

	globalLogger = zerolog.New(output).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "capacidad-recursos-api").
		Logger()

	InitAudit()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Global retorna o logger global
func Global() *zerolog.Logger {
	return &globalLogger
}

// Nop retorna um Tracer que descarta tudo (testes)
func Nop() Tracer {
	l := zerolog.Nop()
	return &l
}

// Get retorna logger do contexto ou global
func Get(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return &globalLogger
	}
	if l, ok := ctx.Value(LoggerKey).(*zerolog.Logger); ok {
		return l
	}
	return &globalLogger
}

// FromGin extrai o logger do contexto Gin
func FromGin(c *gin.Context) *zerolog.Logger {
	return Get(c.Request.Context())
}

// WithRequestID adiciona request_id ao logger e contexto
func WithRequestID(ctx context.Context, requestID string) context.Context {
	l := globalLogger.With().Str("request_id", requestID).Logger()
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	ctx = context.WithValue(ctx, LoggerKey, &l)
	return ctx
}

// WithTraceID adiciona um trace ID para rastreamento distribuído
func WithTraceID(ctx context.Context, traceID string) context.Context {
	l := Get(ctx).With().Str("trace_id", traceID).Logger()
	ctx = context.WithValue(ctx, TraceIDKey, traceID)
	ctx = context.WithValue(ctx, LoggerKey, &l)
	return ctx
}

// WithLoadID identifica uma carga de planilha nos logs
func WithLoadID(ctx context.Context, loadID string) context.Context {
	l := Get(ctx).With().Str("load_id", loadID).Logger()
	ctx = context.WithValue(ctx, LoadIDKey, loadID)
	ctx = context.WithValue(ctx, LoggerKey, &l)
	return ctx
}

// GetRequestID extrai request_id do contexto
func GetRequestID(ctx context.Context) string {
	return ctxString(ctx, RequestIDKey)
}

// GetLoadID extrai load_id do contexto
func GetLoadID(ctx context.Context) string {
	return ctxString(ctx, LoadIDKey)
}

func ctxString(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
