package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MaxHours é o limite superior (exclusivo) de qualquer valor de horas
const MaxHours = 1_000_000

// numericPrefix reproduz a leitura de prefixo numérico ("1.2.3" -> 1.2)
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)

// Hours coerces a cell value into an hour amount in the open interval
// (0, MaxHours). Anything else, including unparseable strings, becomes 0.
//
// Strings keep only digits, signs and the decimal point before parsing, so
// "1,234 h" reads as 1234. Locale formats that use a comma as decimal
// separator are not recognized.
func Hours(v any) float64 {
	n, ok := toFloat(v)
	if !ok {
		s, isString := v.(string)
		if !isString {
			return 0
		}
		n, ok = parseLoose(s)
		if !ok {
			return 0
		}
	}
	if n <= 0 || n >= MaxHours {
		return 0
	}
	return n
}

// Number lê um valor numérico sem limites (percentuais, contagens).
// Usa a mesma limpeza de strings de Hours; falha vira 0.
func Number(v any) float64 {
	if n, ok := toFloat(v); ok {
		return n
	}
	if s, ok := v.(string); ok {
		if n, ok := parseLoose(s); ok {
			return n
		}
	}
	return 0
}

// Count lê uma contagem inteira não negativa (truncada)
func Count(v any) int {
	n := Number(v)
	if n <= 0 || n > math.MaxInt32 {
		return 0
	}
	return int(n)
}

// parseLoose remove tudo que não for dígito, sinal ou ponto e lê o prefixo numérico
func parseLoose(s string) (float64, bool) {
	stripped := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '-', r == '+', r == '.':
			return r
		}
		return -1
	}, s)

	prefix := numericPrefix.FindString(stripped)
	if prefix == "" {
		return 0, false
	}

	n, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
