package capacity

import (
	"github.com/cleberrangel/capacidad-recursos-api/internal/model"
	"github.com/cleberrangel/capacidad-recursos-api/internal/normalize"
	"github.com/cleberrangel/capacidad-recursos-api/internal/sheet"
)

// Limiares de ocupação da equipe (diferentes dos limiares por recurso)
const (
	TeamOverloadAbove = 110.0
	TeamBalancedAbove = 95.0
)

// TeamOptions controla a localização dos totais da equipe
type TeamOptions struct {
	// AvailableLabels rotulam a célula de horas disponíveis da equipe
	AvailableLabels []string
	// RequiredLabels rotulam a célula de horas requeridas da equipe
	RequiredLabels []string
	// HeuristicFallback usa o maior número acima de HeuristicMin quando não há rótulo
	HeuristicFallback bool
	HeuristicMin      float64
}

// DefaultTeamOptions retorna rótulos usuais e o fallback heurístico ligado
func DefaultTeamOptions() TeamOptions {
	return TeamOptions{
		AvailableLabels:   []string{"Total Horas Disponibles", "Horas Disponibles Equipo", "Capacidad Total Equipo"},
		RequiredLabels:    []string{"Total Horas Requeridas", "Horas Requeridas Equipo", "Total Horas Asignadas"},
		HeuristicFallback: true,
		HeuristicMin:      1000,
	}
}

// TeamTotals são os totais encontrados nas abas
type TeamTotals struct {
	Available float64
	Required  float64
	Source    model.TeamSource
}

// LocateTeamTotals finds the team-wide available and required hours.
//
// A labeled cell wins: the value is the largest positive native number to its right
// in the same row, searched in the capacity sheet first for the available
// figure and in the matrix sheet first for the required one. Without a label,
// and when HeuristicFallback is set, the largest native number above
// HeuristicMin in the capacity sheet (available) and the matrix sheet
// (required) is used. ok is false when either figure is missing.
func LocateTeamTotals(matrix, capacity sheet.Grid, opts TeamOptions) (TeamTotals, bool) {
	var totals TeamTotals
	heuristic := false

	available, found := findLabeled(opts.AvailableLabels, capacity, matrix)
	if !found && opts.HeuristicFallback {
		available = maxAbove(capacity, opts.HeuristicMin)
		heuristic = true
	}
	required, found := findLabeled(opts.RequiredLabels, matrix, capacity)
	if !found && opts.HeuristicFallback {
		required = maxAbove(matrix, opts.HeuristicMin)
		heuristic = true
	}

	if available <= 0 || required <= 0 {
		return totals, false
	}
	totals.Available = available
	totals.Required = required
	totals.Source = model.TeamSourceLabel
	if heuristic {
		totals.Source = model.TeamSourceHeuristic
	}
	return totals, true
}

// AnalyzeTeam calcula ocupação e déficit da equipe
func AnalyzeTeam(t TeamTotals) *model.TeamCapacityAnalysis {
	occ := Occupancy(t.Required, t.Available)
	return &model.TeamCapacityAnalysis{
		HorasDisponibles:    t.Available,
		HorasRequeridas:     t.Required,
		PorcentajeOcupacion: occ,
		Deficit:             t.Required - t.Available,
		Estado:              ClassifyTeam(occ),
		Fuente:              t.Source,
	}
}

// ClassifyTeam: acima de 110 sobrecarga, acima de 95 equilíbrio, senão disponível
func ClassifyTeam(occupancy float64) model.TeamStatus {
	switch {
	case occupancy > TeamOverloadAbove:
		return model.TeamOverloaded
	case occupancy > TeamBalancedAbove:
		return model.TeamAtCapacity
	default:
		return model.TeamAvailable
	}
}

func findLabeled(labels []string, grids ...sheet.Grid) (float64, bool) {
	if len(labels) == 0 {
		return 0, false
	}
	wanted := make(map[string]bool, len(labels))
	for _, l := range labels {
		wanted[normalize.Key(l)] = true
	}
	for _, g := range grids {
		for r := range g {
			for c := range g[r] {
				if g[r][c].Kind != sheet.CellString || !wanted[normalize.Key(g[r][c].Text)] {
					continue
				}
				if v := maxPositive(g[r][c+1:]); v > 0 {
					return v, true
				}
			}
		}
	}
	return 0, false
}

func maxPositive(cells []sheet.Cell) float64 {
	best := 0.0
	for _, cell := range cells {
		if cell.Kind == sheet.CellNumber && cell.Number > best {
			best = cell.Number
		}
	}
	return best
}

func maxAbove(g sheet.Grid, threshold float64) float64 {
	best := 0.0
	for r := range g {
		for _, cell := range g[r] {
			if cell.Kind == sheet.CellNumber && cell.Number > threshold && cell.Number > best {
				best = cell.Number
			}
		}
	}
	return best
}
