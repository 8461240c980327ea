package mrp

import "github.com/jhoicas/production-portal/internal/domain/entity"

// LivePool saldo vivo del stock aprobado de componentes durante una corrida.
// Pertenece a una sola invocación del motor: arranca igual al snapshot aprobado
// y solo disminuye. Nunca queda negativo.
type LivePool struct {
	qty map[string]float64
}

// NewLivePool copia el aprobado de cada componente a un pool nuevo.
func NewLivePool(stock map[string]entity.ComponentStock) *LivePool {
	qty := make(map[string]float64, len(stock))
	for part, s := range stock {
		qty[part] = nonNegative(s.Approved)
	}
	return &LivePool{qty: qty}
}

// Available saldo vivo del componente (0 si no existe).
func (p *LivePool) Available(part string) float64 {
	return p.qty[part]
}

// Take descuenta hasta want del componente y devuelve lo realmente descontado.
// Nunca descuenta más de lo disponible.
func (p *LivePool) Take(part string, want float64) float64 {
	if want <= 0 {
		return 0
	}
	have := p.qty[part]
	if have <= 0 {
		return 0
	}
	taken := want
	if have < taken {
		taken = have
	}
	p.qty[part] = have - taken
	return taken
}

// Snapshot copia del saldo vivo actual.
func (p *LivePool) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(p.qty))
	for part, q := range p.qty {
		out[part] = q
	}
	return out
}

// AllocationLog registro append-only de asignaciones por componente.
// Solo sirve para explicar qué cantidad ya fue reclamada por órdenes anteriores.
type AllocationLog struct {
	entries map[string][]entity.SharedAllocation
}

// NewAllocationLog crea un registro vacío.
func NewAllocationLog() *AllocationLog {
	return &AllocationLog{entries: make(map[string][]entity.SharedAllocation)}
}

// Record agrega una asignación; las cantidades <= 0 no se registran.
func (l *AllocationLog) Record(part, salesOrder string, qty float64) {
	if qty <= 0 {
		return
	}
	l.entries[part] = append(l.entries[part], entity.SharedAllocation{SalesOrder: salesOrder, Quantity: qty})
}

// Others devuelve las asignaciones del componente hechas a SOs distintas de salesOrder y su total.
func (l *AllocationLog) Others(part, salesOrder string) ([]entity.SharedAllocation, float64) {
	var (
		shared []entity.SharedAllocation
		total  float64
	)
	for _, a := range l.entries[part] {
		if a.SalesOrder == salesOrder {
			continue
		}
		shared = append(shared, a)
		total += a.Quantity
	}
	return shared, total
}

// TotalAllocated suma todas las asignaciones registradas del componente.
func (l *AllocationLog) TotalAllocated(part string) float64 {
	var total float64
	for _, a := range l.entries[part] {
		total += a.Quantity
	}
	return total
}
