package normalize

import (
	"math"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestHours(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"inteiro positivo", 10, 10},
		{"float positivo", 12.5, 12.5},
		{"zero", 0, 0},
		{"negativo", -5.0, 0},
		{"limite superior exclusivo", 1_000_000.0, 0},
		{"logo abaixo do limite", 999_999.5, 999_999.5},
		{"NaN", math.NaN(), 0},
		{"infinito", math.Inf(1), 0},
		{"string com milhar e unidade", "1,234 h", 1234},
		{"string com sufixo", "12.5h", 12.5},
		{"string com espaços", "  40  ", 40},
		{"string negativa", "-20", 0},
		{"string sem dígitos", "abc", 0},
		{"string vazia", "", 0},
		{"dois pontos decimais", "1.2.3", 1.2},
		{"bool", true, 0},
		{"nil", nil, 0},
		{"int64", int64(8), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hours(tt.input)
			if got != tt.want {
				t.Errorf("Hours(%#v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNumberAndCount(t *testing.T) {
	if got := Number("85%"); got != 85 {
		t.Errorf("Number(\"85%%\") = %v, want 85", got)
	}
	if got := Number(-3.5); got != -3.5 {
		t.Errorf("Number(-3.5) = %v, want -3.5", got)
	}
	if got := Number(2_500_000.0); got != 2_500_000 {
		t.Errorf("Number should not cap values, got %v", got)
	}
	if got := Count("7 tareas"); got != 7 {
		t.Errorf("Count(\"7 tareas\") = %d, want 7", got)
	}
	if got := Count(3.9); got != 3 {
		t.Errorf("Count(3.9) = %d, want 3", got)
	}
	if got := Count(-2); got != 0 {
		t.Errorf("Count(-2) = %d, want 0", got)
	}
}

// **Feature: capacidad-recursos, Property 1: Hours coercion bounds**
// For any cell value, the coerced hours are >= 0 and < 1,000,000
func TestHoursBoundsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	inRange := func(h float64) bool {
		return h >= 0 && h < MaxHours && !math.IsNaN(h)
	}

	properties.Property("numeric cells stay within bounds", prop.ForAll(
		func(v float64) bool {
			return inRange(Hours(v))
		},
		gen.Float64(),
	))

	properties.Property("string cells stay within bounds", prop.ForAll(
		func(s string) bool {
			return inRange(Hours(s))
		},
		gen.AnyString(),
	))

	properties.Property("numeric strings with thousands separators and units read the embedded value", prop.ForAll(
		func(n int, unit string) bool {
			s := withThousands(n) + " " + unit
			return Hours(s) == float64(n)
		},
		gen.IntRange(1, MaxHours-1),
		gen.OneConstOf("h", "hrs", "horas", ""),
	))

	properties.TestingRun(t)
}

// withThousands formata n com vírgulas de milhar ("1,234,567")
func withThousands(n int) string {
	s := strconv.Itoa(n)
	out := ""
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(r)
	}
	return out
}

func TestWithThousands(t *testing.T) {
	for n, want := range map[int]string{7: "7", 1234: "1,234", 999999: "999,999", 100000: "100,000"} {
		if got := withThousands(n); got != want {
			t.Errorf("withThousands(%d) = %q, want %q", n, got, want)
		}
	}
}
