package sheet

import (
	"strconv"
	"strings"
	"time"
)

// CellKind identifica o tipo de valor lido de uma célula
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellString
	CellBool
	CellDate
)

// Cell é o valor bruto de uma célula, com o tipo que a planilha declarou
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Bool   bool
	Time   time.Time
}

// NumberCell cria uma célula numérica
func NumberCell(n float64) Cell {
	return Cell{Kind: CellNumber, Number: n}
}

// StringCell cria uma célula de texto; texto vazio (após trim) vira célula vazia
func StringCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{}
	}
	return Cell{Kind: CellString, Text: s}
}

// DateCell cria uma célula de data nativa
func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Time: t}
}

// BoolCell cria uma célula booleana
func BoolCell(b bool) Cell {
	return Cell{Kind: CellBool, Bool: b}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// IsNumber reports whether the cell holds a native number.
func (c Cell) IsNumber() bool {
	return c.Kind == CellNumber
}

// Value returns the native Go value: nil, float64, string, bool or time.Time.
func (c Cell) Value() any {
	switch c.Kind {
	case CellNumber:
		return c.Number
	case CellString:
		return c.Text
	case CellBool:
		return c.Bool
	case CellDate:
		return c.Time
	}
	return nil
}

// String returns the trimmed display text of the cell.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellString:
		return strings.TrimSpace(c.Text)
	case CellBool:
		if c.Bool {
			return "TRUE"
		}
		return "FALSE"
	case CellDate:
		return c.Time.Format("2006-01-02")
	}
	return ""
}

// Record é uma linha de aba tabular: título da coluna -> célula
type Record struct {
	Row    int
	Values map[string]Cell
	// keys mapeia chave normalizada -> título original
	keys map[string]string
}

// Get retorna a primeira coluna encontrada entre os nomes informados.
// A busca é exata primeiro e depois insensível a caixa, acentos e "_".
func (r Record) Get(names ...string) Cell {
	for _, name := range names {
		if c, ok := r.Values[name]; ok {
			return c
		}
	}
	for _, name := range names {
		if title, ok := r.keys[headerKey(name)]; ok {
			return r.Values[title]
		}
	}
	return Cell{}
}

// Has indica se alguma das colunas existe no cabeçalho
func (r Record) Has(names ...string) bool {
	for _, name := range names {
		if _, ok := r.Values[name]; ok {
			return true
		}
		if _, ok := r.keys[headerKey(name)]; ok {
			return true
		}
	}
	return false
}

// Grid is a rectangular block of cells; row 0 is the sheet's first row.
type Grid [][]Cell

// At returns the cell at zero-based (row, col), or an empty cell when out of range.
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return Cell{}
	}
	return g[row][col]
}

// Width retorna o número de colunas (todas as linhas têm a mesma largura)
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}
