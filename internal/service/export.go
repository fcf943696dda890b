package service

import (
	"math"
	"time"

	"github.com/cleberrangel/capacidad-recursos-api/internal/model"
)

// ExportTimeLayout é o formato de fecha_generacion (UTC, milissegundos)
const ExportTimeLayout = "2006-01-02T15:04:05.000Z"

// BuildResourceExport monta o JSON de recursos para integrações externas
func BuildResourceExport(records []model.ResourceCapacity, now time.Time) *model.ResourceExport {
	out := &model.ResourceExport{
		FechaGeneracion: now.UTC().Format(ExportTimeLayout),
		TotalRecursos:   len(records),
		Recursos:        make([]model.ResourceExportItem, 0, len(records)),
	}
	for _, rc := range records {
		assigns := make([]model.ExportProjectAssign, 0, len(rc.Proyectos))
		for _, p := range rc.Proyectos {
			assigns = append(assigns, model.ExportProjectAssign{Proyecto: p.Proyecto, HorasAsignadas: p.Horas})
		}
		out.Recursos = append(out.Recursos, model.ResourceExportItem{
			Recurso:             rc.Nombre,
			Capacidad:           rc.HorasDisponibles,
			HorasAsignadasTotal: rc.HorasAsignadas,
			Ocupacion:           roundOne(rc.Ocupacion),
			Sobrecarga:          rc.Sobrecarga,
			Estado:              string(rc.Estado),
			ProyectosAsignados:  assigns,
			TotalProyectos:      len(assigns),
		})
	}
	return out
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
