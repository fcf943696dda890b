package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/cleberrangel/capacidad-recursos-api/internal/cache"
	"github.com/cleberrangel/capacidad-recursos-api/internal/logger"
	"github.com/cleberrangel/capacidad-recursos-api/internal/metrics"
	"github.com/cleberrangel/capacidad-recursos-api/internal/model"
)

// MessageModelUpdated é o tipo de evento enviado após publicar um modelo
const MessageModelUpdated = "modelo_actualizado"

var (
	// ErrNoWorkbookPath indica reload sem WORKBOOK_PATH configurado
	ErrNoWorkbookPath = errors.New("WORKBOOK_PATH não configurado")
	// ErrResourceStageDisabled indica que a etapa de capacidade por recurso está desligada
	ErrResourceStageDisabled = errors.New("capacidade por recurso desabilitada no layout")
)

// Notifier recebe eventos de publicação (hub websocket)
type Notifier interface {
	Notify(msgType string, data interface{})
}

// DashboardService loads workbooks, publishes the resulting model and serves
// it to handlers. Publishing is a plain pointer swap: concurrent loads all
// complete and the last one to finish wins.
type DashboardService struct {
	pipeline     *Pipeline
	current      atomic.Pointer[model.DomainModel]
	reports      *cache.Cache
	generator    *ReportGenerator
	notifier     Notifier
	metrics      *metrics.Metrics
	workbookPath string
}

// NewDashboardService cria o serviço; notifier e reports podem ser nil
func NewDashboardService(p *Pipeline, reports *cache.Cache, notifier Notifier, m *metrics.Metrics, workbookPath string) *DashboardService {
	if m == nil {
		m = metrics.Get()
	}
	return &DashboardService{
		pipeline:     p,
		reports:      reports,
		generator:    NewReportGenerator(),
		notifier:     notifier,
		metrics:      m,
		workbookPath: workbookPath,
	}
}

// Current retorna o modelo publicado
func (s *DashboardService) Current() (*model.DomainModel, error) {
	m := s.current.Load()
	if m == nil {
		return nil, model.ErrModelNotLoaded
	}
	return m, nil
}

// LoadBytes runs the pipeline on already acquired bytes and publishes the
// result. origin identifica a fonte nos logs ("upload:arquivo.xlsx", "file:...").
func (s *DashboardService) LoadBytes(ctx context.Context, origin string, data []byte) (*model.LoadSummary, error) {
	start := time.Now()
	loadID := uuid.NewString()[:8]
	ctx = logger.WithLoadID(ctx, loadID)
	log := logger.Get(ctx)

	log.Info().Str("origin", origin).Int("bytes", len(data)).Msg("Carregando planilha")

	m, err := s.pipeline.WithTracer(log).Run(data)
	elapsed := time.Since(start).Milliseconds()
	s.metrics.IncrementWorkbookLoad(err == nil, elapsed)
	if err != nil {
		log.Error().Err(err).Str("origin", origin).Msg("Falha ao carregar planilha")
		logger.Audit(ctx, logger.AuditEvent{
			Action:   logger.AuditActionLoadFailed,
			Resource: "workbook",
			Details:  map[string]interface{}{"origin": origin},
			Success:  false,
			Error:    err.Error(),
			Duration: elapsed,
		})
		return nil, err
	}

	s.publish(m)

	summary := &model.LoadSummary{
		ModelID:           m.ID,
		Origen:            origin,
		Hojas:             m.Hojas,
		Proyectos:         len(m.Proyectos),
		Recursos:          len(m.Recursos),
		RecursosCapacidad: len(m.RecursosCapacidad),
		CapacidadEquipo:   m.CapacidadEquipo != nil,
		Alertas:           len(m.Alertas),
		DurationMs:        elapsed,
	}

	log.Info().
		Str("model_id", m.ID).
		Int("recursos_capacidad", summary.RecursosCapacidad).
		Bool("capacidad_equipo", summary.CapacidadEquipo).
		Int64("duration_ms", elapsed).
		Msg("Modelo publicado")
	logger.Audit(ctx, logger.AuditEvent{
		Action:     logger.AuditActionModelPublish,
		Resource:   "model",
		ResourceID: m.ID,
		Details:    map[string]interface{}{"origin": origin, "alertas": summary.Alertas},
		Success:    true,
		Duration:   elapsed,
	})

	if s.notifier != nil {
		s.notifier.Notify(MessageModelUpdated, summary)
	}
	return summary, nil
}

// LoadFile lê a planilha do disco e publica
func (s *DashboardService) LoadFile(ctx context.Context, path string) (*model.LoadSummary, error) {
	data, err := ReadWorkbookFile(path)
	if err != nil {
		s.metrics.IncrementWorkbookLoad(false, 0)
		return nil, err
	}
	return s.LoadBytes(ctx, "file:"+path, data)
}

// Reload recarrega a planilha configurada em WORKBOOK_PATH
func (s *DashboardService) Reload(ctx context.Context) (*model.LoadSummary, error) {
	if s.workbookPath == "" {
		return nil, ErrNoWorkbookPath
	}
	return s.LoadFile(ctx, s.workbookPath)
}

// Export retorna o JSON de recursos do modelo publicado
func (s *DashboardService) Export() (*model.ResourceExport, error) {
	m, err := s.Current()
	if err != nil {
		return nil, err
	}
	if m.JSONRecursos == nil {
		return nil, ErrResourceStageDisabled
	}
	s.metrics.IncrementExport()
	return m.JSONRecursos, nil
}

// Report retorna o xlsx de capacidade do modelo publicado (cache por modelo)
func (s *DashboardService) Report(ctx context.Context) ([]byte, *model.DomainModel, error) {
	m, err := s.Current()
	if err != nil {
		return nil, nil, err
	}
	if m.RecursosCapacidad == nil {
		return nil, nil, ErrResourceStageDisabled
	}

	build := func() ([]byte, error) {
		buf, err := s.generator.Generate(m.RecursosCapacidad)
		s.metrics.IncrementReportGenerated(err == nil)
		if err != nil {
			return nil, fmt.Errorf("gerar relatório: %w", err)
		}
		return buf.Bytes(), nil
	}

	if s.reports == nil {
		data, err := build()
		return data, m, err
	}
	data, hit, err := s.reports.GetOrCompute(cache.ReportKey(m.ID), build)
	if err != nil {
		return nil, nil, err
	}
	if hit {
		s.metrics.IncrementReportCacheHit()
	}
	logger.Get(ctx).Debug().Str("model_id", m.ID).Bool("cache_hit", hit).Msg("Relatório de capacidade")
	return data, m, nil
}

func (s *DashboardService) publish(m *model.DomainModel) {
	prev := s.current.Swap(m)
	s.metrics.IncrementModelPublished()
	if prev != nil && s.reports != nil {
		s.reports.Delete(cache.ReportKey(prev.ID))
	}
}
