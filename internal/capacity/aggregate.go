// Package capacity indexes the project x resource hour matrix, resolves each
// resource's available hours and classifies occupancy per resource and for
// the whole team.
package capacity

import (
	"strings"

	"github.com/cleberrangel/capacidad-recursos-api/internal/normalize"
)

// aggregateNames são rótulos de linhas de soma (comparação exata após Key)
var aggregateNames = map[string]bool{
	"total":    true,
	"totales":  true,
	"suma":     true,
	"subtotal": true,
}

// IsAggregateName reports whether a row or column label names a sum rather
// than a real project or resource.
func IsAggregateName(name string) bool {
	key := normalize.Key(name)
	if key == "" {
		return false
	}
	return aggregateNames[key] || strings.Contains(key, "total general")
}
