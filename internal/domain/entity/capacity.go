package entity

// CapacityEntry capacidad configurada de una línea de producción (unidades por turno).
type CapacityEntry struct {
	LineID           string
	CapacityPerShift float64
}
