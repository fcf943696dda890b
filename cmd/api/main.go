package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cleberrangel/capacidad-recursos-api/internal/cache"
	"github.com/cleberrangel/capacidad-recursos-api/internal/config"
	"github.com/cleberrangel/capacidad-recursos-api/internal/handler"
	"github.com/cleberrangel/capacidad-recursos-api/internal/logger"
	"github.com/cleberrangel/capacidad-recursos-api/internal/metrics"
	"github.com/cleberrangel/capacidad-recursos-api/internal/middleware"
	"github.com/cleberrangel/capacidad-recursos-api/internal/service"
	"github.com/cleberrangel/capacidad-recursos-api/internal/websocket"
)

const Version = "2.0.0"

func main() {
	// Carrega configurações
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Erro ao carregar configurações: %v", err)
	}

	// Inicializa logger estruturado
	logger.Init(logger.Options{
		Level: cfg.LogLevel,
		JSON:  cfg.LogJSON,
		File:  cfg.LogFile,
	})
	log := logger.Global()
	log.Info().
		Str("version", Version).
		Str("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Bool("log_json", cfg.LogJSON).
		Str("workbook_path", cfg.WorkbookPath).
		Msg("Capacidad Recursos API iniciando")

	layout, err := config.LoadLayout(cfg.LayoutFile)
	if err != nil {
		log.Fatal().Err(err).Str("layout_file", cfg.LayoutFile).Msg("Layout inválido")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Inicializa dependências
	m := metrics.Get()
	reports := cache.NewCache(cfg.ReportCacheTTL)
	defer reports.Stop()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	pipeline := service.NewPipeline(layout, log)
	dashboard := service.NewDashboardService(pipeline, reports, hub, m, cfg.WorkbookPath)

	// Carga inicial; falha não impede o servidor de subir
	if cfg.WorkbookPath != "" {
		if _, err := dashboard.Reload(ctx); err != nil {
			log.Warn().Err(err).Msg("Carga inicial da planilha falhou, aguardando upload")
		}
	}

	gin.SetMode(cfg.GinMode)
	r := handler.NewRouter(handler.RouterDeps{
		Service: dashboard,
		Hub:     hub,
		Auth: middleware.AuthConfig{
			TokenAPI:     cfg.TokenAPI,
			TokenAPIHash: cfg.TokenAPIHash,
		},
		Limiter: middleware.NewRateLimiter(cfg.UploadRatePerMinute, cfg.UploadBurst),
		Metrics: m,
		Version: Version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Servidor iniciando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Erro ao iniciar servidor")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Encerrando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Erro no encerramento")
	}
}
