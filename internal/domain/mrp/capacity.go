package mrp

import (
	"sort"
	"strings"

	"github.com/jhoicas/production-portal/internal/domain/entity"
)

// CapacityAnnotator estima los turnos requeridos con la capacidad configurada por línea.
//
// Aún no existe un mapeo línea de producción ↔ orden en el ERP: si la orden trae
// ProductionLine y coincide con una entrada de capacidad positiva se usa esa; si no,
// se toma la entrada con menor LineID entre las que tienen capacidad positiva.
type CapacityAnnotator struct {
	byLine   map[string]float64
	fallback float64
}

// NewCapacityAnnotator construye el anotador a partir de las capacidades configuradas.
func NewCapacityAnnotator(entries []entity.CapacityEntry) *CapacityAnnotator {
	a := &CapacityAnnotator{byLine: make(map[string]float64, len(entries))}
	var ids []string
	for _, e := range entries {
		id := strings.ToUpper(strings.TrimSpace(e.LineID))
		if id == "" {
			continue
		}
		a.byLine[id] = e.CapacityPerShift
		if e.CapacityPerShift > 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) > 0 {
		sort.Strings(ids)
		a.fallback = a.byLine[ids[0]]
	}
	return a
}

// ShiftsRequired devuelve neto / capacidad, o 0 si no hay capacidad utilizable.
func (a *CapacityAnnotator) ShiftsRequired(so *entity.SalesOrderLine) float64 {
	capacity := a.fallback
	if line := strings.ToUpper(strings.TrimSpace(so.ProductionLine)); line != "" {
		if c, ok := a.byLine[line]; ok && c > 0 {
			capacity = c
		}
	}
	if capacity <= 0 {
		return 0
	}
	return so.NetQty / capacity
}
