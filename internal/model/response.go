package model

// Response representa a resposta padrão da API
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// Meta contém metadados da resposta
type Meta struct {
	ModelID        string `json:"model_id,omitempty"`
	GeneratedAt    string `json:"generated_at,omitempty"`
	TotalRecursos  int    `json:"total_recursos,omitempty"`
	TotalProyectos int    `json:"total_proyectos,omitempty"`
	TotalAlertas   int    `json:"total_alertas,omitempty"`
}

// ErrorResponse representa uma resposta de erro
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// LoadSummary resume uma carga de planilha publicada
type LoadSummary struct {
	ModelID           string   `json:"model_id"`
	Origen            string   `json:"origen"`
	Hojas             []string `json:"hojas"`
	Proyectos         int      `json:"proyectos"`
	Recursos          int      `json:"recursos"`
	RecursosCapacidad int      `json:"recursos_capacidad"`
	CapacidadEquipo   bool     `json:"capacidad_equipo"`
	Alertas           int      `json:"alertas"`
	DurationMs        int64    `json:"duration_ms"`
}
