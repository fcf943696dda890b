package sheet

import (
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook cria uma planilha em memória a partir de um mapa aba -> célula -> valor
func buildWorkbook(t *testing.T, sheets map[string]map[string]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for name, cells := range sheets {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("Failed to create sheet %s: %v", name, err)
		}
		for axis, value := range cells {
			if err := f.SetCellValue(name, axis, value); err != nil {
				t.Fatalf("Failed to set %s!%s: %v", name, axis, err)
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatalf("Failed to delete default sheet: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

func openWorkbook(t *testing.T, data []byte) *Workbook {
	t.Helper()
	wb, err := Open(data, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { wb.Close() })
	return wb
}

func TestOpenInvalidBytes(t *testing.T) {
	_, err := Open([]byte("isto não é um xlsx"), nil)
	if !errors.Is(err, ErrInvalidWorkbook) {
		t.Fatalf("expected ErrInvalidWorkbook, got %v", err)
	}
}

func TestResolveCaseVariants(t *testing.T) {
	data := buildWorkbook(t, map[string]map[string]any{
		"HORAS":        {"A1": "Recurso"},
		"Matriz_Horas": {"A1": "Proyecto"},
	})
	wb := openWorkbook(t, data)

	if got, ok := wb.Resolve("Horas"); !ok || got != "HORAS" {
		t.Errorf("Resolve(Horas) = (%q, %v), want (HORAS, true)", got, ok)
	}
	if got, ok := wb.Resolve("Matriz_Horas"); !ok || got != "Matriz_Horas" {
		t.Errorf("Resolve(Matriz_Horas) = (%q, %v)", got, ok)
	}
	if _, ok := wb.Resolve("Tareas"); ok {
		t.Error("Resolve should not find a missing sheet")
	}
}

func TestGridTypedCells(t *testing.T) {
	start := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	data := buildWorkbook(t, map[string]map[string]any{
		"Matriz_Horas": {
			"A1": "Proyecto", "B1": "Alice", "C1": "Bob", "D1": "Activo",
			"A2": "ProjectX", "B2": 10, "C2": "12 h", "D2": true,
			"A3": "ProjectY", "B3": start,
		},
	})
	wb := openWorkbook(t, data)

	grid := wb.Grid("Matriz_Horas")
	if len(grid) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(grid))
	}
	for r, row := range grid {
		if len(row) != 4 {
			t.Errorf("row %d has width %d, want 4", r, len(row))
		}
	}

	if c := grid.At(1, 1); c.Kind != CellNumber || c.Number != 10 {
		t.Errorf("B2 = %+v, want number 10", c)
	}
	if c := grid.At(1, 2); c.Kind != CellString || c.Text != "12 h" {
		t.Errorf("C2 = %+v, want string \"12 h\"", c)
	}
	if c := grid.At(1, 3); c.Kind != CellBool || !c.Bool {
		t.Errorf("D2 = %+v, want bool true", c)
	}
	if c := grid.At(2, 1); c.Kind != CellDate || c.Time.Format("2006-01-02") != "2024-03-05" {
		t.Errorf("B3 = %+v, want date 2024-03-05", c)
	}
	if c := grid.At(2, 3); !c.IsEmpty() {
		t.Errorf("D3 should be an empty padding cell, got %+v", c)
	}
	if c := grid.At(10, 10); !c.IsEmpty() {
		t.Error("out of range access should return an empty cell")
	}
}

func TestGridMissingSheet(t *testing.T) {
	data := buildWorkbook(t, map[string]map[string]any{"Proyectos": {"A1": "Proyecto"}})
	wb := openWorkbook(t, data)

	if grid := wb.Grid("Horas"); len(grid) != 0 {
		t.Errorf("missing sheet should produce an empty grid, got %d rows", len(grid))
	}
	if records := wb.Records("Recursos"); records == nil || len(records) != 0 {
		t.Errorf("missing sheet should produce an empty, non-nil record list, got %v", records)
	}
}

func TestRecords(t *testing.T) {
	data := buildWorkbook(t, map[string]map[string]any{
		"Proyectos": {
			"A1": " Proyecto ", "B1": "Fecha_Inicio", "C1": "Horas_Totales", "E1": "Estado",
			"A2": "Ceres", "B2": "05/03/2024", "C2": 120, "E2": "En Progreso",
			// linha 3 em branco
			"A4": "Chatbot", "C4": "80 h",
		},
	})
	wb := openWorkbook(t, data)

	records := wb.Records("Proyectos")
	if len(records) != 2 {
		t.Fatalf("expected 2 records (blank row skipped), got %d", len(records))
	}

	first := records[0]
	if first.Row != 2 {
		t.Errorf("first record row = %d, want 2", first.Row)
	}
	if got := first.Get("Proyecto").String(); got != "Ceres" {
		t.Errorf("Proyecto = %q, want Ceres (trimmed header)", got)
	}
	if got := first.Get("Inicio", "Fecha_Inicio").String(); got != "05/03/2024" {
		t.Errorf("Fecha_Inicio = %q", got)
	}
	if got := first.Get("horas totales"); got.Kind != CellNumber || got.Number != 120 {
		t.Errorf("case-insensitive lookup failed: %+v", got)
	}
	if _, ok := first.Values[""]; ok {
		t.Error("columns without a title must be ignored")
	}

	second := records[1]
	if second.Row != 4 {
		t.Errorf("second record row = %d, want 4", second.Row)
	}
	if !second.Get("Estado").IsEmpty() {
		t.Error("missing value should be an empty cell")
	}
	if !second.Has("Estado") || second.Has("Prioridad") {
		t.Error("Has should reflect the header row")
	}
}

func TestDateFormatCodes(t *testing.T) {
	tests := map[string]bool{
		"dd/mm/yyyy":        true,
		"mmm-yy":            true,
		"0.00":              false,
		"#,##0 \"días\"":    false,
		"[Red]0.00;[Blue]0": false,
		"yyyy-mm-dd hh:mm":  true,
	}
	for code, want := range tests {
		if got := isDateFormatCode(code); got != want {
			t.Errorf("isDateFormatCode(%q) = %v, want %v", code, got, want)
		}
	}
}
