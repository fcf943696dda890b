package model

// ResourceExport é o JSON de recursos consumido por integrações externas.
// Nomes de campos e aninhamento são contrato; não alterar.
type ResourceExport struct {
	FechaGeneracion string               `json:"fecha_generacion"`
	TotalRecursos   int                  `json:"total_recursos"`
	Recursos        []ResourceExportItem `json:"recursos"`
}

// ResourceExportItem é um recurso dentro do export
type ResourceExportItem struct {
	Recurso             string                `json:"recurso"`
	Capacidad           float64               `json:"capacidad"`
	HorasAsignadasTotal float64               `json:"horas_asignadas_total"`
	Ocupacion           float64               `json:"ocupacion"`
	Sobrecarga          float64               `json:"sobrecarga"`
	Estado              string                `json:"estado"`
	ProyectosAsignados  []ExportProjectAssign `json:"proyectos_asignados"`
	TotalProyectos      int                   `json:"total_proyectos"`
}

// ExportProjectAssign é uma atribuição de projeto dentro do export
type ExportProjectAssign struct {
	Proyecto       string  `json:"proyecto"`
	HorasAsignadas float64 `json:"horas_asignadas"`
}
