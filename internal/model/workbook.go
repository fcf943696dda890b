package model

// ProjectStatus é o estado de um projeto
type ProjectStatus string

const (
	ProjectScheduled  ProjectStatus = "programado"
	ProjectInProgress ProjectStatus = "en_progreso"
	ProjectDelayed    ProjectStatus = "atrasado"
)

// Priority é a prioridade de um projeto
type Priority string

const (
	PriorityLow      Priority = "baja"
	PriorityMedium   Priority = "media"
	PriorityHigh     Priority = "alta"
	PriorityCritical Priority = "critica"
)

// KPI é uma linha do resumo do painel (Dashboard_Resumen)
type KPI struct {
	KPI    string      `json:"kpi"`
	Valor  interface{} `json:"valor"`
	Unidad string      `json:"unidad"`
	Estado string      `json:"estado"`
}

// Project é uma linha da aba Proyectos
type Project struct {
	Proyecto          string        `json:"proyecto"`
	Inicio            string        `json:"inicio,omitempty"`
	Fin               string        `json:"fin,omitempty"`
	Entrega           string        `json:"entrega,omitempty"`
	Tareas            int           `json:"tareas"`
	HorasTotales      float64       `json:"horas_totales"`
	Recursos          int           `json:"recursos"`
	Estado            ProjectStatus `json:"estado,omitempty"`
	EstadoOriginal    string        `json:"estado_original,omitempty"`
	Prioridad         Priority      `json:"prioridad,omitempty"`
	PrioridadOriginal string        `json:"prioridad_original,omitempty"`
	Progreso          *float64      `json:"progreso,omitempty"`
	Color             string        `json:"color,omitempty"`
}

// Resource é uma linha do cadastro de recursos (aba Recursos)
type Resource struct {
	Recurso         string  `json:"recurso"`
	Ocupacion       float64 `json:"ocupacion"`
	Tareas          int     `json:"tareas"`
	Proyectos       int     `json:"proyectos"`
	MaxConcurrentes int     `json:"max_concurrentes"`
	Estado          string  `json:"estado"`
	Categoria       string  `json:"categoria,omitempty"`
}

// Task é uma linha da aba Tareas
type Task struct {
	Tarea       string  `json:"tarea"`
	Proyecto    string  `json:"proyecto"`
	Responsable string  `json:"responsable"`
	Inicio      string  `json:"inicio,omitempty"`
	Fin         string  `json:"fin,omitempty"`
	Horas       float64 `json:"horas"`
	Estado      string  `json:"estado"`
	Color       string  `json:"color,omitempty"`
}

// Overlap é uma linha da aba Solapamientos
type Overlap struct {
	Recurso         string  `json:"recurso"`
	Tareas          int     `json:"tareas"`
	MaxConcurrentes int     `json:"max_concurrentes"`
	HorasTotales    float64 `json:"horas_totales"`
	NivelRiesgo     string  `json:"nivel_riesgo,omitempty"`
}

// TimelineEntry é uma linha da aba Timeline
type TimelineEntry struct {
	Tarea       string `json:"tarea"`
	Proyecto    string `json:"proyecto"`
	Inicio      string `json:"inicio,omitempty"`
	Fin         string `json:"fin,omitempty"`
	Color       string `json:"color"`
	Responsable string `json:"responsable,omitempty"`
}

// MetricRow é uma linha livre da aba Metricas_Graficos
type MetricRow map[string]interface{}

// HourMatrixEntry é uma linha de projeto da matriz de horas
type HourMatrixEntry struct {
	Proyecto string             `json:"proyecto"`
	Horas    map[string]float64 `json:"horas"`
}
