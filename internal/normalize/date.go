package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout é o formato canônico das datas normalizadas
const DateLayout = "2006-01-02"

type fieldOrder int

const (
	dayFirst fieldOrder = iota
	yearFirst
)

type datePattern struct {
	re    *regexp.Regexp
	order fieldOrder
}

var (
	isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	// Ordem importa: o primeiro padrão que casar define a ordem dos campos.
	// DD/MM vs MM/DD não é desambiguado.
	datePatterns = []datePattern{
		{regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`), dayFirst},
		{regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`), dayFirst},
		{regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`), yearFirst},
		{regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`), yearFirst},
	}

	fallbackLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2 Jan 2006",
		"02 Jan 2006",
		"Jan 2, 2006",
		"January 2, 2006",
		time.RFC1123,
		time.RFC1123Z,
	}

	// Origem convencional dos seriais de planilha
	serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
)

const (
	minSerial = 1
	maxSerial = 100000
	minYear   = 1900
	maxYear   = 2100
)

// IsISODate indica se s já está no formato YYYY-MM-DD
func IsISODate(s string) bool {
	return isoDate.MatchString(strings.TrimSpace(s))
}

// Date coerces a cell value into a YYYY-MM-DD string. The boolean is false
// when the value is absent: nil, empty, "N/A", or a number outside the
// serial range.
//
// Accepted inputs: time.Time, a day-count serial counted from 1899-12-30
// (magnitude in [1, 100000], resulting year in [1900, 2100]) and strings in
// DD/MM/YYYY, DD-MM-YYYY, YYYY-MM-DD or YYYY/MM/DD form. Unrecognized strings
// are returned trimmed, unchanged.
func Date(v any) (string, bool) {
	switch d := v.(type) {
	case nil:
		return "", false
	case time.Time:
		if d.IsZero() {
			return "", false
		}
		return d.Format(DateLayout), true
	case *time.Time:
		if d == nil {
			return "", false
		}
		return Date(*d)
	case string:
		return dateFromString(d)
	}

	if n, ok := toFloat(v); ok {
		return dateFromSerial(n)
	}
	return "", false
}

func dateFromSerial(n float64) (string, bool) {
	if math.IsNaN(n) || n < minSerial || n > maxSerial {
		return "", false
	}

	t := serialEpoch.Add(time.Duration(n * float64(24*time.Hour)))
	if t.Year() < minYear || t.Year() > maxYear {
		return "", false
	}
	return t.Format(DateLayout), true
}

func dateFromString(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.EqualFold(trimmed, "N/A") {
		return "", false
	}

	if isoDate.MatchString(trimmed) {
		return trimmed, true
	}

	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		c, _ := strconv.Atoi(m[3])

		var year, month, day int
		if p.order == yearFirst {
			year, month, day = a, b, c
		} else {
			day, month, year = a, b, c
		}
		// time.Date normaliza estouros (31/02 vira março), como o Date do navegador
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(DateLayout), true
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(DateLayout), true
		}
	}

	return trimmed, true
}
