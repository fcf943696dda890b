package capacity

import (
	"github.com/cleberrangel/capacidad-recursos-api/internal/model"
	"github.com/cleberrangel/capacidad-recursos-api/internal/normalize"
	"github.com/cleberrangel/capacidad-recursos-api/internal/sheet"
)

// MatrixOptions descreve onde ficam as colunas de recursos na matriz de horas
type MatrixOptions struct {
	// FirstResourceColumn é a primeira coluna de recursos (1 = A)
	FirstResourceColumn int
	// MaxResourceColumns limita a quantidade de colunas; 0 = sem limite
	MaxResourceColumns int
}

// DefaultMatrixOptions começa na coluna B sem limite de colunas
func DefaultMatrixOptions() MatrixOptions {
	return MatrixOptions{FirstResourceColumn: 2}
}

// Assignment acumula as horas atribuídas a um recurso
type Assignment struct {
	Proyectos []model.ProjectHours
	Total     float64
}

// MatrixIndex é o resultado da leitura da matriz de horas
type MatrixIndex struct {
	// Resources em ordem de cabeçalho, sem duplicatas
	Resources   []string
	Assignments map[string]*Assignment
	Entries     []model.HourMatrixEntry
	// SkippedAggregates conta linhas de total ignoradas
	SkippedAggregates int
}

// Assignment retorna as horas de um recurso (vazio quando desconhecido)
func (m *MatrixIndex) Assignment(name string) Assignment {
	if a, ok := m.Assignments[name]; ok {
		return *a
	}
	return Assignment{}
}

// IndexMatrix reads the hour matrix grid. Row 0 holds resource names; every
// later row is a project. Resource columns are resolved once from the header:
// non-empty, non-aggregate titles at or after FirstResourceColumn. Headers that
// fold to the same name share the first column's accumulator.
func IndexMatrix(grid sheet.Grid, opts MatrixOptions) *MatrixIndex {
	idx := &MatrixIndex{
		Resources:   []string{},
		Assignments: make(map[string]*Assignment),
		Entries:     []model.HourMatrixEntry{},
	}
	if len(grid) == 0 {
		return idx
	}

	columns := resourceColumns(grid[0], opts)
	for _, col := range columns {
		if _, ok := idx.Assignments[col.name]; !ok {
			idx.Resources = append(idx.Resources, col.name)
			idx.Assignments[col.name] = &Assignment{Proyectos: []model.ProjectHours{}}
		}
	}

	for r := 1; r < len(grid); r++ {
		project := grid.At(r, 0).String()
		if project == "" {
			continue
		}
		if IsAggregateName(project) {
			idx.SkippedAggregates++
			continue
		}

		entry := model.HourMatrixEntry{Proyecto: project, Horas: make(map[string]float64)}
		for _, col := range columns {
			h := normalize.Hours(grid.At(r, col.index).Value())
			entry.Horas[col.name] += h
			if h <= 0 {
				continue
			}
			a := idx.Assignments[col.name]
			a.Proyectos = append(a.Proyectos, model.ProjectHours{Proyecto: project, Horas: h})
			a.Total += h
		}
		idx.Entries = append(idx.Entries, entry)
	}
	return idx
}

type resourceColumn struct {
	index int
	name  string
}

func resourceColumns(header []sheet.Cell, opts MatrixOptions) []resourceColumn {
	first := opts.FirstResourceColumn
	if first < 1 {
		first = 2
	}

	var cols []resourceColumn
	// chave dobrada -> nome exibido da primeira ocorrência
	seen := make(map[string]string)
	for c := first - 1; c < len(header); c++ {
		if opts.MaxResourceColumns > 0 && c-(first-1) >= opts.MaxResourceColumns {
			break
		}
		title := header[c].String()
		if title == "" || IsAggregateName(title) {
			continue
		}
		key := normalize.NameKey(title)
		if existing, ok := seen[key]; ok {
			title = existing
		} else {
			seen[key] = title
		}
		cols = append(cols, resourceColumn{index: c, name: title})
	}
	return cols
}
