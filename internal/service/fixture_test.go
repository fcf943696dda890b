package service

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// sheetRows descreve uma aba como linhas de valores Go
type sheetRows map[string][][]interface{}

// buildWorkbook escreve as abas com excelize e devolve os bytes do xlsx
func buildWorkbook(t *testing.T, sheets sheetRows) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("NewSheet(%s): %v", name, err)
		}
		for r, row := range rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				if err := f.SetCellValue(name, cell, v); err != nil {
					t.Fatalf("SetCellValue(%s!%s): %v", name, cell, err)
				}
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatalf("DeleteSheet: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

// capacityWorkbook monta a planilha completa usada nos testes do pipeline.
// Alice: 176h de 160h, Bob: 152h de 160h, Carol: sem linha de capacidade.
// Totais da equipe pela heurística: 1200 disponíveis e 1400 requeridas.
func capacityWorkbook(t *testing.T) []byte {
	t.Helper()
	return buildWorkbook(t, sheetRows{
		"Dashboard_Resumen": {
			{"KPI", "Valor", "Unidad", "Estado"},
			{"Ocupación Equipo", 116.7, "%", nil},
			{"Proyectos Activos", 3, "proyectos", "Good"},
		},
		"Proyectos": {
			{"Proyecto", "Fecha_Inicio", "Fin", "Entrega", "Tareas", "Horas_Totales", "Recursos", "Estado", "Prioridad", "Progreso"},
			{"P1", "15/03/2024", time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), "2024-07-01", 12, "1,234 h", 3, "En Progreso", "Alta", 40},
			{"P2", "2024/04/01", "30-09-2024", nil, 4, 2_000_000, 2, "Atrasado", "Crítica", nil},
			{nil, "sem nome", nil, nil, nil, nil, nil, nil, nil, nil},
			{"P3", nil, nil, "N/A", 1, 10, 1, "Pausado", "Urgente", nil},
		},
		"Recursos": {
			{"Recurso", "Ocupacion", "Tareas", "Proyectos", "Max_Concurrentes", "Estado"},
			{"Alice", 120, 8, 2, 4, "Sobrecargado"},
			{"Bob", 95, 6, 2, 3, "Normal"},
			{"Carol", 40, 1, 1, 1, "Critico"},
		},
		"Matriz_Horas": {
			{"Proyecto", "Alice", "Bob", "Carol"},
			{"P1", 100, 80, 10},
			{"P2", 76, 72, nil},
			{"Totales", 176, 152, 10},
			{"Total General", 1400, nil, nil},
		},
		"HORAS": {
			{"Recurso", "Horas Disponibles"},
			{"alice", 160},
			{"BOB", 160},
			{"Equipo", 1200},
		},
		"Tareas": {
			{"Tarea", "Proyecto", "Responsable", "Inicio", "Fin", "Horas", "Estado"},
			{"Diseño", "P1", "Alice", "01/04/2024", "2024-04-10", 24, "Completada"},
		},
		"Solapamientos": {
			{"Recurso", "Tareas", "Max_Concurrentes", "Horas_Totales", "Nivel_Riesgo"},
			{"Alice", 8, 6, 176, "Alto"},
			{"Bob", 6, 2, 152, "Bajo"},
		},
		"Timeline": {
			{"Tarea", "Proyecto", "Inicio", "Fin", "Color"},
			{"Diseño", "P1", 45383, 45392, "#ff0000"},
		},
		"Metricas_Graficos": {
			{"Recurso", "Horas", "Ocupacion"},
			{"Alice", 176, 110},
		},
	})
}
