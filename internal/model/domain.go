package model

import "time"

// AlertSeverity é a gravidade de um alerta
type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Alert é um alerta derivado do modelo
type Alert struct {
	Tipo        string        `json:"tipo"`
	Titulo      string        `json:"titulo"`
	Descripcion string        `json:"descripcion"`
	Severidad   AlertSeverity `json:"severidad"`
}

// DomainModel is the fully computed result of one workbook load. Every load
// builds a new instance; published models are never mutated.
type DomainModel struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Hojas       []string  `json:"hojas"`

	Resumen       []KPI             `json:"resumen"`
	Proyectos     []Project         `json:"proyectos"`
	Recursos      []Resource        `json:"recursos"`
	Matriz        []HourMatrixEntry `json:"matriz"`
	Tareas        []Task            `json:"tareas"`
	Solapamientos []Overlap         `json:"solapamientos"`
	Timeline      []TimelineEntry   `json:"timeline"`
	Metricas      []MetricRow       `json:"metricas"`

	CapacidadEquipo   *TeamCapacityAnalysis `json:"capacidad_equipo,omitempty"`
	RecursosCapacidad []ResourceCapacity    `json:"recursos_capacidad,omitempty"`
	JSONRecursos      *ResourceExport       `json:"json_recursos,omitempty"`
	Alertas           []Alert               `json:"alertas"`
}
