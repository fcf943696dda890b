package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cleberrangel/capacidad-recursos-api/internal/model"
)

func TestBuildResourceExportContract(t *testing.T) {
	records := []model.ResourceCapacity{
		{
			Nombre:           "Alice",
			HorasDisponibles: 150,
			HorasAsignadas:   100,
			Ocupacion:        100.0 * 100 / 150,
			Sobrecarga:       -50,
			Estado:           model.ResourceAvailable,
			Proyectos:        []model.ProjectHours{{Proyecto: "P1", Horas: 100}},
		},
		{Nombre: "Bob", Estado: model.ResourceAvailable},
	}
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("BRT", -3*3600))

	exp := BuildResourceExport(records, now)
	raw, err := json.Marshal(exp)
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["fecha_generacion"] != "2024-01-02T06:04:05.000Z" {
		t.Errorf("fecha_generacion = %v", doc["fecha_generacion"])
	}
	if doc["total_recursos"] != float64(2) {
		t.Errorf("total_recursos = %v", doc["total_recursos"])
	}

	recursos := doc["recursos"].([]interface{})
	alice := recursos[0].(map[string]interface{})
	for _, key := range []string{"recurso", "capacidad", "horas_asignadas_total", "ocupacion", "sobrecarga", "estado", "proyectos_asignados", "total_proyectos"} {
		if _, ok := alice[key]; !ok {
			t.Errorf("missing key %q in %v", key, alice)
		}
	}
	if len(alice) != 8 {
		t.Errorf("unexpected keys in %v", alice)
	}
	if alice["ocupacion"] != 66.7 {
		t.Errorf("ocupacion = %v, want 66.7", alice["ocupacion"])
	}
	assign := alice["proyectos_asignados"].([]interface{})[0].(map[string]interface{})
	if assign["proyecto"] != "P1" || assign["horas_asignadas"] != float64(100) {
		t.Errorf("assignment = %v", assign)
	}

	bob := recursos[1].(map[string]interface{})
	if list, ok := bob["proyectos_asignados"].([]interface{}); !ok || len(list) != 0 {
		t.Errorf("proyectos_asignados should be an empty list, got %#v", bob["proyectos_asignados"])
	}
	if bob["total_proyectos"] != float64(0) || bob["estado"] != "disponible" {
		t.Errorf("bob = %v", bob)
	}
}

func TestBuildResourceExportEmpty(t *testing.T) {
	raw, err := json.Marshal(BuildResourceExport(nil, time.Unix(0, 0)))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"fecha_generacion":"1970-01-01T00:00:00.000Z","total_recursos":0,"recursos":[]}`
	if string(raw) != want {
		t.Errorf("got %s, want %s", raw, want)
	}
}
