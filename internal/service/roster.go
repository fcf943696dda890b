package service

import (
	"github.com/cleberrangel/capacidad-recursos-api/internal/model"
	"github.com/cleberrangel/capacidad-recursos-api/internal/normalize"
	"github.com/cleberrangel/capacidad-recursos-api/internal/sheet"
)

var projectStatuses = map[string]model.ProjectStatus{
	"programado":  model.ProjectScheduled,
	"planificado": model.ProjectScheduled,
	"pendiente":   model.ProjectScheduled,
	"en progreso": model.ProjectInProgress,
	"en curso":    model.ProjectInProgress,
	"activo":      model.ProjectInProgress,
	"atrasado":    model.ProjectDelayed,
	"retrasado":   model.ProjectDelayed,
}

var priorities = map[string]model.Priority{
	"baja":    model.PriorityLow,
	"media":   model.PriorityMedium,
	"alta":    model.PriorityHigh,
	"critica": model.PriorityCritical,
}

// MapProjects converte a aba Proyectos; linhas sem nome são ignoradas
func MapProjects(records []sheet.Record) []model.Project {
	out := make([]model.Project, 0, len(records))
	for _, r := range records {
		name := r.Get("Proyecto").String()
		if name == "" {
			continue
		}
		p := model.Project{
			Proyecto:     name,
			Inicio:       dateField(r, "Inicio", "Fecha_Inicio"),
			Fin:          dateField(r, "Fin", "Fecha_Fin"),
			Entrega:      dateField(r, "Entrega", "Fecha_Entrega"),
			Tareas:       normalize.Count(r.Get("Tareas").Value()),
			HorasTotales: normalize.Hours(r.Get("Horas_Totales", "Horas").Value()),
			Recursos:     normalize.Count(r.Get("Recursos").Value()),
			Color:        r.Get("Color").String(),
		}

		estado := r.Get("Estado").String()
		p.Estado = projectStatuses[normalize.Key(estado)]
		if p.Estado == "" {
			p.EstadoOriginal = estado
		}
		prioridad := r.Get("Prioridad").String()
		p.Prioridad = priorities[normalize.Key(prioridad)]
		if p.Prioridad == "" {
			p.PrioridadOriginal = prioridad
		}

		if c := r.Get("Progreso"); !c.IsEmpty() {
			v := normalize.Number(c.Value())
			p.Progreso = &v
		}
		out = append(out, p)
	}
	return out
}

// MapResources converte o cadastro de recursos
func MapResources(records []sheet.Record) []model.Resource {
	out := make([]model.Resource, 0, len(records))
	for _, r := range records {
		name := r.Get("Recurso").String()
		if name == "" {
			continue
		}
		out = append(out, model.Resource{
			Recurso:         name,
			Ocupacion:       normalize.Number(r.Get("Ocupacion").Value()),
			Tareas:          normalize.Count(r.Get("Tareas").Value()),
			Proyectos:       normalize.Count(r.Get("Proyectos").Value()),
			MaxConcurrentes: normalize.Count(r.Get("Max_Concurrentes").Value()),
			Estado:          r.Get("Estado").String(),
			Categoria:       r.Get("Categoria").String(),
		})
	}
	return out
}

// MapTasks converte a aba Tareas
func MapTasks(records []sheet.Record) []model.Task {
	out := make([]model.Task, 0, len(records))
	for _, r := range records {
		name := r.Get("Tarea").String()
		if name == "" {
			continue
		}
		out = append(out, model.Task{
			Tarea:       name,
			Proyecto:    r.Get("Proyecto").String(),
			Responsable: r.Get("Responsable").String(),
			Inicio:      dateField(r, "Inicio", "Fecha_Inicio"),
			Fin:         dateField(r, "Fin", "Fecha_Fin"),
			Horas:       normalize.Hours(r.Get("Horas").Value()),
			Estado:      r.Get("Estado").String(),
			Color:       r.Get("Color").String(),
		})
	}
	return out
}

// MapOverlaps converte a aba Solapamientos
func MapOverlaps(records []sheet.Record) []model.Overlap {
	out := make([]model.Overlap, 0, len(records))
	for _, r := range records {
		name := r.Get("Recurso").String()
		if name == "" {
			continue
		}
		out = append(out, model.Overlap{
			Recurso:         name,
			Tareas:          normalize.Count(r.Get("Tareas").Value()),
			MaxConcurrentes: normalize.Count(r.Get("Max_Concurrentes").Value()),
			HorasTotales:    normalize.Hours(r.Get("Horas_Totales").Value()),
			NivelRiesgo:     r.Get("Nivel_Riesgo").String(),
		})
	}
	return out
}

// MapTimeline converte a aba Timeline
func MapTimeline(records []sheet.Record) []model.TimelineEntry {
	out := make([]model.TimelineEntry, 0, len(records))
	for _, r := range records {
		name := r.Get("Tarea").String()
		if name == "" {
			continue
		}
		out = append(out, model.TimelineEntry{
			Tarea:       name,
			Proyecto:    r.Get("Proyecto").String(),
			Inicio:      dateField(r, "Inicio", "Fecha_Inicio"),
			Fin:         dateField(r, "Fin", "Fecha_Fin"),
			Color:       r.Get("Color").String(),
			Responsable: r.Get("Responsable").String(),
		})
	}
	return out
}

// MapKPIs converte o resumo do painel. Estado ausente é derivado do valor.
func MapKPIs(records []sheet.Record) []model.KPI {
	out := make([]model.KPI, 0, len(records))
	for _, r := range records {
		name := r.Get("KPI").String()
		if name == "" {
			continue
		}
		cell := r.Get("Valor")
		k := model.KPI{
			KPI:    name,
			Unidad: r.Get("Unidad").String(),
			Estado: normalize.Key(r.Get("Estado").String()),
		}
		if cell.IsNumber() {
			k.Valor = cell.Number
		} else {
			k.Valor = cell.String()
		}
		if k.Estado == "" && !cell.IsEmpty() {
			k.Estado = kpiStatus(normalize.Number(cell.Value()))
		}
		out = append(out, k)
	}
	return out
}

func kpiStatus(v float64) string {
	switch {
	case v > 110:
		return "critical"
	case v >= 100:
		return "warning"
	case v >= 85:
		return "normal"
	default:
		return "good"
	}
}

// MapMetrics copia as linhas livres de Metricas_Graficos; datas viram YYYY-MM-DD
func MapMetrics(records []sheet.Record) []model.MetricRow {
	out := make([]model.MetricRow, 0, len(records))
	for _, r := range records {
		row := make(model.MetricRow, len(r.Values))
		for title, cell := range r.Values {
			if cell.Kind == sheet.CellDate {
				row[title], _ = normalize.Date(cell.Time)
				continue
			}
			row[title] = cell.Value()
		}
		out = append(out, row)
	}
	return out
}

// dateField lê uma data; YYYY-MM-DD é mantido, o resto passa por normalize.Date
func dateField(r sheet.Record, names ...string) string {
	cell := r.Get(names...)
	if cell.Kind == sheet.CellString && normalize.IsISODate(cell.String()) {
		return cell.String()
	}
	s, ok := normalize.Date(cell.Value())
	if !ok {
		return ""
	}
	return s
}
