package model

// ResourceStatus classifica a ocupação de um recurso
type ResourceStatus string

const (
	ResourceOverloaded ResourceStatus = "sobrecargado"
	ResourceAtCapacity ResourceStatus = "equilibrio"
	ResourceAvailable  ResourceStatus = "disponible"
)

// TeamStatus classifica a ocupação da equipe
type TeamStatus string

const (
	TeamOverloaded TeamStatus = "sobrecarga"
	TeamAtCapacity TeamStatus = "equilibrio"
	TeamAvailable  TeamStatus = "disponible"
)

// TeamSource indica como os totais da equipe foram localizados
type TeamSource string

const (
	TeamSourceLabel     TeamSource = "etiqueta"
	TeamSourceHeuristic TeamSource = "heuristica"
)

// ProjectHours é uma linha de horas de um projeto dentro da lista de um recurso
type ProjectHours struct {
	Proyecto string  `json:"proyecto"`
	Horas    float64 `json:"horas"`
}

// ResourceCapacity compara horas atribuídas e disponíveis de um recurso
type ResourceCapacity struct {
	Nombre           string         `json:"nombre"`
	HorasDisponibles float64        `json:"horas_disponibles"`
	HorasAsignadas   float64        `json:"horas_asignadas"`
	Ocupacion        float64        `json:"ocupacion"`
	Sobrecarga       float64        `json:"sobrecarga"`
	Estado           ResourceStatus `json:"estado"`
	Proyectos        []ProjectHours `json:"proyectos"`
}

// TeamCapacityAnalysis é o agregado de capacidade da equipe
type TeamCapacityAnalysis struct {
	HorasDisponibles    float64    `json:"horas_disponibles"`
	HorasRequeridas     float64    `json:"horas_requeridas"`
	PorcentajeOcupacion float64    `json:"porcentaje_ocupacion"`
	Deficit             float64    `json:"deficit"`
	Estado              TeamStatus `json:"estado"`
	Fuente              TeamSource `json:"fuente"`
}
