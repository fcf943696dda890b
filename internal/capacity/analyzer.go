package capacity

import (
	"github.com/cleberrangel/capacidad-recursos-api/internal/model"
)

// Limiares de ocupação por recurso (percentual)
const (
	ResourceOverloadAbove   = 100.0
	ResourceBalancedAtLeast = 95.0
)

// Occupancy retorna assigned/available*100, ou 0 quando não há capacidade.
// A multiplicação vem antes da divisão para que 176/160 dê exatamente 110.
func Occupancy(assigned, available float64) float64 {
	if available <= 0 {
		return 0
	}
	return assigned * 100 / available
}

// ClassifyResource applies the per-resource thresholds: above 100 is
// overloaded, 95..100 inclusive is at capacity, below 95 is available.
func ClassifyResource(occupancy float64) model.ResourceStatus {
	switch {
	case occupancy > ResourceOverloadAbove:
		return model.ResourceOverloaded
	case occupancy >= ResourceBalancedAtLeast:
		return model.ResourceAtCapacity
	default:
		return model.ResourceAvailable
	}
}

// AnalyzeResource monta o registro de capacidade de um recurso
func AnalyzeResource(name string, a Assignment, available float64) model.ResourceCapacity {
	occ := Occupancy(a.Total, available)
	proyectos := make([]model.ProjectHours, len(a.Proyectos))
	copy(proyectos, a.Proyectos)
	return model.ResourceCapacity{
		Nombre:           name,
		HorasDisponibles: available,
		HorasAsignadas:   a.Total,
		Ocupacion:        occ,
		Sobrecarga:       a.Total - available,
		Estado:           ClassifyResource(occ),
		Proyectos:        proyectos,
	}
}

// AnalyzeResources junta matriz e capacidades, na ordem do cabeçalho da matriz
func AnalyzeResources(idx *MatrixIndex, capacities map[string]float64) []model.ResourceCapacity {
	out := make([]model.ResourceCapacity, 0, len(idx.Resources))
	for _, name := range idx.Resources {
		out = append(out, AnalyzeResource(name, idx.Assignment(name), capacities[name]))
	}
	return out
}
