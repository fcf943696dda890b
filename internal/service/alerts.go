package service

import (
	"fmt"

	"github.com/cleberrangel/capacidad-recursos-api/internal/model"
	"github.com/cleberrangel/capacidad-recursos-api/internal/normalize"
)

const (
	alertCriticalOccupancy  = 110.0
	alertResourceOccupancy  = 100.0
	alertCriticalConcurrent = 6
)

// DeriveAlerts monta os alertas do painel a partir do modelo calculado
func DeriveAlerts(m *model.DomainModel) []model.Alert {
	alerts := []model.Alert{}

	for _, r := range m.Recursos {
		if normalize.Key(r.Estado) != "critico" && r.Ocupacion <= alertResourceOccupancy {
			continue
		}
		alerts = append(alerts, model.Alert{
			Tipo:        "recurso",
			Titulo:      "Recurso Crítico: " + r.Recurso,
			Descripcion: fmt.Sprintf("Ocupación: %.1f%% - %d tareas asignadas", r.Ocupacion, r.Tareas),
			Severidad:   severityFor(r.Ocupacion),
		})
	}

	for _, s := range m.Solapamientos {
		if s.MaxConcurrentes < alertCriticalConcurrent {
			continue
		}
		alerts = append(alerts, model.Alert{
			Tipo:        "solapamiento",
			Titulo:      "Solapamiento Crítico: " + s.Recurso,
			Descripcion: fmt.Sprintf("%d tareas concurrentes - %d tareas totales", s.MaxConcurrentes, s.Tareas),
			Severidad:   model.SeverityCritical,
		})
	}

	for _, p := range m.Proyectos {
		if p.Estado != model.ProjectDelayed {
			continue
		}
		alerts = append(alerts, model.Alert{
			Tipo:        "proyecto",
			Titulo:      "Proyecto Atrasado: " + p.Proyecto,
			Descripcion: fmt.Sprintf("Entrega: %s - %d tareas pendientes", p.Entrega, p.Tareas),
			Severidad:   model.SeverityWarning,
		})
	}

	for _, rc := range m.RecursosCapacidad {
		if rc.Estado != model.ResourceOverloaded {
			continue
		}
		alerts = append(alerts, model.Alert{
			Tipo:        "capacidad",
			Titulo:      "Sobrecarga: " + rc.Nombre,
			Descripcion: fmt.Sprintf("%.1f h asignadas de %.1f h disponibles (%+.1f h)", rc.HorasAsignadas, rc.HorasDisponibles, rc.Sobrecarga),
			Severidad:   severityFor(rc.Ocupacion),
		})
	}

	return alerts
}

func severityFor(occupancy float64) model.AlertSeverity {
	if occupancy > alertCriticalOccupancy {
		return model.SeverityCritical
	}
	return model.SeverityWarning
}
