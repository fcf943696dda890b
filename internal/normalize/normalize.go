// Package normalize coerces loosely typed spreadsheet values into canonical
// dates, hour amounts and comparison keys. Every function is total: bad input
// yields a documented fallback instead of an error.
package normalize

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NameKey retorna a chave de comparação de nomes de recursos: trim + case folding.
// Acentos são preservados ("José" e "Jose" são recursos distintos).
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// SameName compara dois nomes ignorando caixa e espaços nas pontas
func SameName(a, b string) bool {
	return NameKey(a) == NameKey(b)
}

// Key normaliza rótulos de cabeçalho, nomes de abas e valores enumerados:
// remove acentos, troca "_" por espaço, colapsa espaços e aplica case folding.
func Key(label string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, label)
	if err != nil {
		stripped = label
	}
	stripped = strings.ReplaceAll(stripped, "_", " ")
	return cases.Fold().String(strings.Join(strings.Fields(stripped), " "))
}

// toFloat converte tipos numéricos nativos para float64
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
