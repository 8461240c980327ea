package domain

import (
	"math"
	"strconv"
	"strings"
)

// ParseQuantity interpreta una cantidad capturada como texto ("1,250.5"). Vacío = 0.
// ok = false si el texto no es un número finito (incluye NaN e Inf).
func ParseQuantity(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
