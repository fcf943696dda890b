package capacity

import (
	"github.com/cleberrangel/capacidad-recursos-api/internal/normalize"
	"github.com/cleberrangel/capacidad-recursos-api/internal/sheet"
)

// ResolverOptions localiza a coluna de horas disponíveis na aba de capacidade
type ResolverOptions struct {
	// HoursHeaders são os rótulos aceitos para a coluna (comparados com normalize.Key)
	HoursHeaders []string
	// HoursColumn é usada quando nenhum rótulo é encontrado (1 = A)
	HoursColumn int
}

// DefaultResolverOptions usa a coluna I como fallback
func DefaultResolverOptions() ResolverOptions {
	return ResolverOptions{
		HoursHeaders: []string{"Total Horas", "Horas Disponibles", "Capacidad", "Horas Totales"},
		HoursColumn:  9,
	}
}

// ResolveCapacities returns the available hours of every named resource. The
// first capacity row whose name matches case-insensitively wins; a missing
// row or a non-positive value yields 0.
func ResolveCapacities(names []string, grid sheet.Grid, opts ResolverOptions) map[string]float64 {
	out := make(map[string]float64, len(names))
	for _, name := range names {
		out[name] = 0
	}
	if len(grid) < 2 {
		return out
	}

	col := HoursColumnIndex(grid[0], opts)

	// primeira linha de cada nome
	firstRow := make(map[string]int)
	for r := 1; r < len(grid); r++ {
		key := normalize.NameKey(grid.At(r, 0).String())
		if key == "" {
			continue
		}
		if _, ok := firstRow[key]; !ok {
			firstRow[key] = r
		}
	}

	for _, name := range names {
		r, ok := firstRow[normalize.NameKey(name)]
		if !ok {
			continue
		}
		out[name] = normalize.Hours(grid.At(r, col).Value())
	}
	return out
}

// HoursColumnIndex retorna o índice (base 0) da coluna de horas: rótulo do
// cabeçalho quando presente, senão a coluna fixa configurada.
func HoursColumnIndex(header []sheet.Cell, opts ResolverOptions) int {
	wanted := make(map[string]bool, len(opts.HoursHeaders))
	for _, h := range opts.HoursHeaders {
		wanted[normalize.Key(h)] = true
	}
	// coluna A é o nome do recurso
	for c := 1; c < len(header); c++ {
		if wanted[normalize.Key(header[c].String())] {
			return c
		}
	}
	if opts.HoursColumn < 1 {
		return 8
	}
	return opts.HoursColumn - 1
}
