// Package sheet reads workbook sheets into typed rows or raw grids.
package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cleberrangel/capacidad-recursos-api/internal/logger"
	"github.com/cleberrangel/capacidad-recursos-api/internal/normalize"
	"github.com/xuri/excelize/v2"
)

// ErrInvalidWorkbook indica bytes que não formam uma pasta de trabalho xlsx
var ErrInvalidWorkbook = errors.New("arquivo não é uma planilha xlsx válida")

// Workbook is an opened spreadsheet. It is not safe for concurrent use.
type Workbook struct {
	file   *excelize.File
	sheets []string
	log    logger.Tracer
	// styleDate guarda se um índice de estilo representa formato de data
	styleDate map[int]bool
}

// Open lê a pasta de trabalho a partir dos bytes já obtidos
func Open(data []byte, log logger.Tracer) (*Workbook, error) {
	if log == nil {
		log = logger.Nop()
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}

	wb := &Workbook{
		file:      f,
		sheets:    f.GetSheetList(),
		log:       log,
		styleDate: make(map[int]bool),
	}

	log.Debug().Strs("sheets", wb.sheets).Msg("Abas disponíveis na planilha")
	return wb, nil
}

// Close libera os recursos do arquivo
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames retorna os nomes das abas na ordem do arquivo
func (w *Workbook) SheetNames() []string {
	return append([]string(nil), w.sheets...)
}

// Resolve finds a sheet by exact name first, then by case-insensitive name.
func (w *Workbook) Resolve(name string) (string, bool) {
	for _, s := range w.sheets {
		if s == name {
			return s, true
		}
	}
	for _, s := range w.sheets {
		if normalize.SameName(s, name) {
			return s, true
		}
	}
	return "", false
}

// Grid returns the sheet as a rectangular grid padded to its widest row.
// A missing sheet yields an empty grid.
func (w *Workbook) Grid(name string) Grid {
	sheet, ok := w.Resolve(name)
	if !ok {
		w.log.Debug().Str("sheet", name).Msg("Aba ausente, usando grade vazia")
		return Grid{}
	}

	rows, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		w.log.Warn().Err(err).Str("sheet", sheet).Msg("Erro ao ler linhas, usando grade vazia")
		return Grid{}
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	grid := make(Grid, len(rows))
	for r, row := range rows {
		grid[r] = make([]Cell, width)
		for c, raw := range row {
			grid[r][c] = w.typedCell(sheet, c+1, r+1, raw)
		}
	}

	w.log.Debug().
		Str("sheet", sheet).
		Int("rows", len(grid)).
		Int("columns", width).
		Msg("Aba lida como grade")
	return grid
}

// Records returns the sheet as header-keyed rows. The first row supplies the
// column titles; columns with an empty title are ignored and fully blank rows
// are skipped. A missing sheet yields no records.
func (w *Workbook) Records(name string) []Record {
	grid := w.Grid(name)
	if len(grid) == 0 {
		return []Record{}
	}

	headers := make([]string, grid.Width())
	keys := make(map[string]string)
	for c := range headers {
		title := grid.At(0, c).String()
		headers[c] = title
		if title == "" {
			continue
		}
		if _, dup := keys[headerKey(title)]; !dup {
			keys[headerKey(title)] = title
		}
	}

	records := make([]Record, 0, len(grid)-1)
	for r := 1; r < len(grid); r++ {
		values := make(map[string]Cell, len(headers))
		blank := true
		for c, title := range headers {
			if title == "" {
				continue
			}
			cell := grid.At(r, c)
			if !cell.IsEmpty() {
				blank = false
			}
			if _, exists := values[title]; !exists {
				values[title] = cell
			}
		}
		if blank {
			continue
		}
		records = append(records, Record{Row: r + 1, Values: values, keys: keys})
	}

	return records
}

// typedCell converte o valor bruto do excelize para Cell usando o tipo declarado
func (w *Workbook) typedCell(sheet string, col, row int, raw string) Cell {
	if strings.TrimSpace(raw) == "" {
		return Cell{}
	}

	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return StringCell(raw)
	}

	cellType, err := w.file.GetCellType(sheet, axis)
	if err != nil {
		return StringCell(raw)
	}

	switch cellType {
	case excelize.CellTypeBool:
		return BoolCell(raw == "1" || strings.EqualFold(raw, "TRUE"))
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return StringCell(raw)
	case excelize.CellTypeDate:
		if t, ok := parseISOCell(raw); ok {
			return DateCell(t)
		}
		return StringCell(raw)
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		// fórmulas com resultado texto e valores não numéricos
		return StringCell(raw)
	}

	if w.isDateStyled(sheet, axis) {
		if t, err := excelize.ExcelDateToTime(n, false); err == nil {
			return DateCell(t)
		}
	}
	return NumberCell(n)
}

// isDateStyled indica se o formato numérico da célula é de data
func (w *Workbook) isDateStyled(sheet, axis string) bool {
	idx, err := w.file.GetCellStyle(sheet, axis)
	if err != nil || idx == 0 {
		return false
	}
	if cached, ok := w.styleDate[idx]; ok {
		return cached
	}

	isDate := false
	if style, err := w.file.GetStyle(idx); err == nil && style != nil {
		isDate = isDateNumFmt(style.NumFmt)
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		}
	}
	w.styleDate[idx] = isDate
	return isDate
}

// isDateNumFmt cobre os formatos embutidos de data/hora do Excel
func isDateNumFmt(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode detecta tokens de data em um formato customizado,
// ignorando trechos entre aspas e colchetes ("[Red]", "\"h\"").
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range code {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == '[' && !inQuote:
			inBracket = true
		case r == ']' && !inQuote:
			inBracket = false
		case !inQuote && !inBracket:
			b.WriteRune(r)
		}
	}
	lower := strings.ToLower(b.String())
	return strings.ContainsAny(lower, "yd") || strings.Contains(lower, "mmm")
}

func parseISOCell(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func headerKey(title string) string {
	return normalize.Key(title)
}
