package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cleberrangel/capacidad-recursos-api/internal/model"
)

const (
	capacitySheet    = "Capacidad"
	assignmentsSheet = "Asignaciones"
)

var capacityHeaders = []string{"Recurso", "Capacidad", "Horas Asignadas", "Ocupación %", "Sobrecarga", "Estado", "Proyectos"}

var assignmentHeaders = []string{"Recurso", "Proyecto", "Horas"}

// ReportGenerator gera o relatório xlsx de capacidade por recurso
type ReportGenerator struct{}

// NewReportGenerator cria um novo gerador de relatório
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// Generate renderiza as abas Capacidad e Asignaciones
func (g *ReportGenerator) Generate(records []model.ResourceCapacity) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Renomeia a sheet padrão
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, capacitySheet); err != nil {
		return nil, fmt.Errorf("renomear sheet: %w", err)
	}
	if _, err := f.NewSheet(assignmentsSheet); err != nil {
		return nil, fmt.Errorf("criar sheet: %w", err)
	}

	styles, err := newReportStyles(f)
	if err != nil {
		return nil, fmt.Errorf("criar estilos: %w", err)
	}

	if err := g.writeHeaders(f, capacitySheet, capacityHeaders, styles.header); err != nil {
		return nil, fmt.Errorf("escrever headers: %w", err)
	}
	if err := g.writeHeaders(f, assignmentsSheet, assignmentHeaders, styles.header); err != nil {
		return nil, fmt.Errorf("escrever headers: %w", err)
	}

	if err := g.writeCapacity(f, records, styles); err != nil {
		return nil, fmt.Errorf("escrever capacidade: %w", err)
	}
	if err := g.writeAssignments(f, records, styles); err != nil {
		return nil, fmt.Errorf("escrever atribuições: %w", err)
	}

	// Ajusta largura das colunas
	if err := g.autoFitColumns(f, capacitySheet, len(capacityHeaders)); err != nil {
		return nil, fmt.Errorf("ajustar colunas: %w", err)
	}
	if err := g.autoFitColumns(f, assignmentsSheet, len(assignmentHeaders)); err != nil {
		return nil, fmt.Errorf("ajustar colunas: %w", err)
	}
	f.SetActiveSheet(0)

	// Escreve para buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("escrever buffer: %w", err)
	}

	return buf, nil
}

type reportStyles struct {
	header     int
	even       int
	odd        int
	overloaded int
}

func newReportStyles(f *excelize.File) (reportStyles, error) {
	var s reportStyles
	var err error

	border := func(color string) []excelize.Border {
		return []excelize.Border{
			{Type: "left", Color: color, Style: 1},
			{Type: "top", Color: color, Style: 1},
			{Type: "bottom", Color: color, Style: 1},
			{Type: "right", Color: color, Style: 1},
		}
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: border("000000"),
	})
	if err != nil {
		return s, err
	}

	s.even, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFFFFF"}, Pattern: 1},
		Border: border("D9D9D9"),
	})
	if err != nil {
		return s, err
	}

	s.odd, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
		Border: border("D9D9D9"),
	})
	if err != nil {
		return s, err
	}

	// linhas de recursos sobrecarregados
	s.overloaded, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Color: "9C0006"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
		Border: border("D9D9D9"),
	})
	return s, err
}

// writeHeaders escreve os cabeçalhos da aba
func (g *ReportGenerator) writeHeaders(f *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func (g *ReportGenerator) writeCapacity(f *excelize.File, records []model.ResourceCapacity, styles reportStyles) error {
	for i, rc := range records {
		excelRow := i + 2 // Linha 1 é header

		style := styles.even
		if i%2 == 1 {
			style = styles.odd
		}
		if rc.Estado == model.ResourceOverloaded {
			style = styles.overloaded
		}

		values := []interface{}{
			rc.Nombre,
			rc.HorasDisponibles,
			rc.HorasAsignadas,
			roundOne(rc.Ocupacion),
			rc.Sobrecarga,
			string(rc.Estado),
			len(rc.Proyectos),
		}
		if err := g.writeRow(f, capacitySheet, excelRow, values, style); err != nil {
			return err
		}
	}
	return nil
}

func (g *ReportGenerator) writeAssignments(f *excelize.File, records []model.ResourceCapacity, styles reportStyles) error {
	excelRow := 2
	for _, rc := range records {
		for _, p := range rc.Proyectos {
			style := styles.even
			if excelRow%2 == 1 {
				style = styles.odd
			}
			if err := g.writeRow(f, assignmentsSheet, excelRow, []interface{}{rc.Nombre, p.Proyecto, p.Horas}, style); err != nil {
				return err
			}
			excelRow++
		}
	}
	return nil
}

func (g *ReportGenerator) writeRow(f *excelize.File, sheet string, row int, values []interface{}, style int) error {
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(values), row)
	if err := f.SetSheetRow(sheet, first, &values); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

// autoFitColumns ajusta a largura das colunas
func (g *ReportGenerator) autoFitColumns(f *excelize.File, sheet string, numCols int) error {
	for col := 1; col <= numCols; col++ {
		colName, _ := excelize.ColumnNumberToName(col)
		if err := f.SetColWidth(sheet, colName, colName, 20); err != nil {
			return err
		}
	}
	return nil
}
