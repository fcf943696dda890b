package service

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/cleberrangel/capacidad-recursos-api/internal/config"
	"github.com/cleberrangel/capacidad-recursos-api/internal/model"
	"github.com/cleberrangel/capacidad-recursos-api/internal/sheet"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestPipelineRun(t *testing.T) {
	now := time.Date(2024, 5, 2, 13, 4, 5, 123_000_000, time.UTC)
	p := NewPipeline(nil, nil).WithClock(fixedClock(now))

	m, err := p.Run(capacityWorkbook(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if m.ID == "" {
		t.Error("model ID should be set")
	}

	t.Run("projects", func(t *testing.T) {
		if len(m.Proyectos) != 3 {
			t.Fatalf("expected 3 projects, got %d", len(m.Proyectos))
		}
		p1 := m.Proyectos[0]
		if p1.Inicio != "2024-03-15" || p1.Fin != "2024-06-30" || p1.Entrega != "2024-07-01" {
			t.Errorf("P1 dates = %s / %s / %s", p1.Inicio, p1.Fin, p1.Entrega)
		}
		if p1.HorasTotales != 1234 || p1.Estado != model.ProjectInProgress || p1.Prioridad != model.PriorityHigh {
			t.Errorf("P1 = %+v", p1)
		}
		if p1.Progreso == nil || *p1.Progreso != 40 {
			t.Errorf("P1 Progreso = %v", p1.Progreso)
		}
		p2 := m.Proyectos[1]
		if p2.Inicio != "2024-04-01" || p2.Fin != "2024-09-30" || p2.HorasTotales != 0 {
			t.Errorf("P2 = %+v", p2)
		}
		if p2.Estado != model.ProjectDelayed || p2.Prioridad != model.PriorityCritical || p2.Progreso != nil {
			t.Errorf("P2 = %+v", p2)
		}
		p3 := m.Proyectos[2]
		if p3.Entrega != "" || p3.Estado != "" || p3.EstadoOriginal != "Pausado" || p3.PrioridadOriginal != "Urgente" {
			t.Errorf("P3 = %+v", p3)
		}
	})

	t.Run("tabular sheets", func(t *testing.T) {
		if len(m.Recursos) != 3 || len(m.Tareas) != 1 || len(m.Solapamientos) != 2 || len(m.Timeline) != 1 || len(m.Metricas) != 1 {
			t.Errorf("unexpected sizes: %d recursos, %d tareas, %d solapamientos, %d timeline, %d metricas",
				len(m.Recursos), len(m.Tareas), len(m.Solapamientos), len(m.Timeline), len(m.Metricas))
		}
		if m.Timeline[0].Inicio != "2024-04-01" || m.Timeline[0].Fin != "2024-04-10" {
			t.Errorf("timeline serial dates = %+v", m.Timeline[0])
		}
		if m.Tareas[0].Inicio != "2024-04-01" || m.Tareas[0].Horas != 24 {
			t.Errorf("task = %+v", m.Tareas[0])
		}
		if len(m.Resumen) != 2 || m.Resumen[0].Estado != "critical" || m.Resumen[1].Estado != "good" {
			t.Errorf("kpis = %+v", m.Resumen)
		}
		if len(m.Matriz) != 2 {
			t.Errorf("matrix entries = %+v", m.Matriz)
		}
	})

	t.Run("resource capacity", func(t *testing.T) {
		if len(m.RecursosCapacidad) != 3 {
			t.Fatalf("expected 3 capacity records, got %d", len(m.RecursosCapacidad))
		}
		alice, bob, carol := m.RecursosCapacidad[0], m.RecursosCapacidad[1], m.RecursosCapacidad[2]
		if alice.Ocupacion != 110 || alice.Sobrecarga != 16 || alice.Estado != model.ResourceOverloaded {
			t.Errorf("Alice = %+v", alice)
		}
		if bob.Ocupacion != 95 || bob.Estado != model.ResourceAtCapacity {
			t.Errorf("Bob = %+v", bob)
		}
		if carol.HorasDisponibles != 0 || carol.Ocupacion != 0 || carol.HorasAsignadas != 10 {
			t.Errorf("Carol = %+v", carol)
		}
	})

	t.Run("team capacity", func(t *testing.T) {
		team := m.CapacidadEquipo
		if team == nil {
			t.Fatal("team analysis missing")
		}
		if team.HorasDisponibles != 1200 || team.HorasRequeridas != 1400 || team.Fuente != model.TeamSourceHeuristic {
			t.Errorf("team = %+v", team)
		}
		if math.Abs(team.PorcentajeOcupacion-116.67) > 0.01 || team.Estado != model.TeamOverloaded {
			t.Errorf("team = %+v", team)
		}
	})

	t.Run("export", func(t *testing.T) {
		exp := m.JSONRecursos
		if exp == nil {
			t.Fatal("export missing")
		}
		if exp.FechaGeneracion != "2024-05-02T13:04:05.123Z" {
			t.Errorf("FechaGeneracion = %s", exp.FechaGeneracion)
		}
		if exp.TotalRecursos != 3 || exp.Recursos[0].TotalProyectos != 2 {
			t.Errorf("export = %+v", exp)
		}
	})

	t.Run("alerts", func(t *testing.T) {
		count := map[string]int{}
		for _, a := range m.Alertas {
			count[a.Tipo]++
		}
		want := map[string]int{"recurso": 2, "solapamiento": 1, "proyecto": 1, "capacidad": 1}
		if !reflect.DeepEqual(count, want) {
			t.Errorf("alerts by type = %v, want %v", count, want)
		}
	})
}

func TestPipelineIdempotence(t *testing.T) {
	data := capacityWorkbook(t)
	first, err := NewPipeline(nil, nil).WithClock(fixedClock(time.Unix(0, 0))).Run(data)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewPipeline(nil, nil).WithClock(fixedClock(time.Unix(3600, 0))).Run(data)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first.JSONRecursos.Recursos, second.JSONRecursos.Recursos) {
		t.Error("recursos differ between runs on the same bytes")
	}
	if first.JSONRecursos.FechaGeneracion == second.JSONRecursos.FechaGeneracion {
		t.Error("fecha_generacion should follow the clock")
	}
	if first.ID == second.ID {
		t.Error("each run must build a new model")
	}
	// modelos independentes
	first.RecursosCapacidad[0].Proyectos[0].Horas = -1
	if second.RecursosCapacidad[0].Proyectos[0].Horas == -1 {
		t.Error("models share memory")
	}
}

func TestPipelineStageSwitches(t *testing.T) {
	data := capacityWorkbook(t)

	layout := config.DefaultLayout()
	layout.Stages.ResourceCapacity = false
	m, err := NewPipeline(layout, nil).Run(data)
	if err != nil {
		t.Fatal(err)
	}
	if m.RecursosCapacidad != nil || m.JSONRecursos != nil {
		t.Error("resource stage should be skipped")
	}
	if m.CapacidadEquipo == nil {
		t.Error("team stage should still run")
	}

	layout = config.DefaultLayout()
	layout.Stages.TeamCapacity = false
	m, err = NewPipeline(layout, nil).Run(data)
	if err != nil {
		t.Fatal(err)
	}
	if m.CapacidadEquipo != nil || m.RecursosCapacidad == nil {
		t.Errorf("unexpected stages: team=%v resources=%d", m.CapacidadEquipo, len(m.RecursosCapacidad))
	}
}

func TestPipelineMissingSheets(t *testing.T) {
	data := buildWorkbook(t, sheetRows{"Otra": {{"a"}}})
	m, err := NewPipeline(nil, nil).Run(data)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(m.Proyectos) != 0 || len(m.RecursosCapacidad) != 0 || m.CapacidadEquipo != nil {
		t.Errorf("expected empty model, got %+v", m)
	}
	if m.JSONRecursos == nil || m.JSONRecursos.Recursos == nil {
		t.Error("export should be present with an empty list")
	}
}

func TestPipelineInvalidWorkbook(t *testing.T) {
	_, err := NewPipeline(nil, nil).Run([]byte("not a zip"))
	if !errors.Is(err, sheet.ErrInvalidWorkbook) {
		t.Errorf("expected ErrInvalidWorkbook, got %v", err)
	}
}
