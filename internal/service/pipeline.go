package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cleberrangel/capacidad-recursos-api/internal/capacity"
	"github.com/cleberrangel/capacidad-recursos-api/internal/config"
	"github.com/cleberrangel/capacidad-recursos-api/internal/logger"
	"github.com/cleberrangel/capacidad-recursos-api/internal/model"
	"github.com/cleberrangel/capacidad-recursos-api/internal/sheet"
)

// Pipeline transforms workbook bytes into a DomainModel. It holds no state
// between runs, so one instance may serve concurrent loads.
type Pipeline struct {
	layout *config.Layout
	log    logger.Tracer
	now    func() time.Time
	newID  func() string
}

// NewPipeline cria o pipeline; layout nil usa o padrão e tracer nil descarta logs
func NewPipeline(layout *config.Layout, tracer logger.Tracer) *Pipeline {
	if layout == nil {
		layout = config.DefaultLayout()
	}
	if tracer == nil {
		tracer = logger.Nop()
	}
	return &Pipeline{
		layout: layout,
		log:    tracer,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// WithClock troca o relógio (testes determinísticos de fecha_generacion)
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	cp := *p
	cp.now = now
	return &cp
}

// WithTracer troca o coletor de diagnóstico (ex: logger com load_id)
func (p *Pipeline) WithTracer(t logger.Tracer) *Pipeline {
	if t == nil {
		t = logger.Nop()
	}
	cp := *p
	cp.log = t
	return &cp
}

// Layout retorna o layout em uso
func (p *Pipeline) Layout() *config.Layout {
	return p.layout
}

// Run executa todas as etapas de forma síncrona. O único erro possível é
// sheet.ErrInvalidWorkbook; abas ausentes e células malformadas viram
// valores padrão.
func (p *Pipeline) Run(data []byte) (*model.DomainModel, error) {
	wb, err := sheet.Open(data, p.log)
	if err != nil {
		return nil, fmt.Errorf("abrir planilha: %w", err)
	}
	defer wb.Close()

	names := p.layout.Sheets
	m := &model.DomainModel{
		ID:            p.newID(),
		GeneratedAt:   p.now().UTC(),
		Hojas:         wb.SheetNames(),
		Resumen:       MapKPIs(wb.Records(names.Resumen)),
		Proyectos:     MapProjects(wb.Records(names.Proyectos)),
		Recursos:      MapResources(wb.Records(names.Recursos)),
		Tareas:        MapTasks(wb.Records(names.Tareas)),
		Solapamientos: MapOverlaps(wb.Records(names.Solapes)),
		Timeline:      MapTimeline(wb.Records(names.Timeline)),
		Metricas:      MapMetrics(wb.Records(names.Metricas)),
	}

	matrix := wb.Grid(names.Matriz)
	idx := capacity.IndexMatrix(matrix, p.layout.MatrixOptions())
	m.Matriz = idx.Entries
	p.log.Debug().
		Strs("resources", idx.Resources).
		Int("projects", len(idx.Entries)).
		Int("skipped_aggregates", idx.SkippedAggregates).
		Msg("Matriz de horas indexada")

	var hours sheet.Grid
	if p.layout.Stages.ResourceCapacity || p.layout.Stages.TeamCapacity {
		hours = wb.Grid(names.Horas)
	}

	if p.layout.Stages.ResourceCapacity {
		caps := capacity.ResolveCapacities(idx.Resources, hours, p.layout.ResolverOptions())
		m.RecursosCapacidad = capacity.AnalyzeResources(idx, caps)
		m.JSONRecursos = BuildResourceExport(m.RecursosCapacidad, m.GeneratedAt)
		p.log.Debug().Int("resources", len(m.RecursosCapacidad)).Msg("Capacidade por recurso calculada")
	}

	if p.layout.Stages.TeamCapacity {
		if totals, ok := capacity.LocateTeamTotals(matrix, hours, p.layout.TeamOptions()); ok {
			m.CapacidadEquipo = capacity.AnalyzeTeam(totals)
			p.log.Debug().
				Float64("available", totals.Available).
				Float64("required", totals.Required).
				Str("source", string(totals.Source)).
				Msg("Capacidade da equipe calculada")
		} else {
			p.log.Info().Msg("Totais da equipe não encontrados, análise de equipe omitida")
		}
	}

	m.Alertas = DeriveAlerts(m)
	return m, nil
}
