package mrp

import (
	"math"

	"github.com/jhoicas/production-portal/internal/domain/entity"
)

// epsilon tolerancia para comparaciones de cantidades en la clasificación de estado.
const epsilon = 1e-9

// Options ajustes del motor.
type Options struct {
	// AllocateFinishedGoods consume el producto terminado aprobado en orden de prioridad
	// en lugar de asignar la existencia completa a cada línea.
	AllocateFinishedGoods bool
}

// Input datos consultados en bloque antes de la asignación.
type Input struct {
	Orders         []entity.SalesOrderLine
	BOM            []entity.BOMLine
	PurchaseOrders []entity.PurchaseOrderLine
	Inventory      []entity.InventoryRow
	FinishedGoods  []entity.FinishedGoodRow
	Capacities     []entity.CapacityEntry
}

// Engine motor MRP de asignación secuencial.
// No guarda estado entre corridas: cada Run crea su propio pool vivo y registro de asignaciones,
// por lo que un Engine puede compartirse entre goroutines.
type Engine struct {
	opts Options
}

// NewEngine construye el motor.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Run calcula las sugerencias de producción para todas las líneas de SO.
// La asignación se hace en orden de fecha de envío; el resultado se devuelve ordenado por SO.
func (e *Engine) Run(in Input) []entity.OrderResult {
	idx := buildIndex(in)

	orders := make([]entity.SalesOrderLine, len(in.Orders))
	copy(orders, in.Orders)

	if e.opts.AllocateFinishedGoods {
		SortByDueDate(orders)
		ApplyNetRequirementsSequential(orders, idx.finishedGoods)
	} else {
		ApplyNetRequirements(orders, idx.finishedGoods)
		SortByDueDate(orders)
	}

	results := allocate(orders, idx, NewCapacityAnnotator(in.Capacities))
	SortResultsBySalesOrder(results)
	return results
}

// allocate recorre las órdenes ya priorizadas contra un único pool vivo.
// Devuelve los resultados en el mismo orden de prioridad.
func allocate(orders []entity.SalesOrderLine, idx *demandIndex, capacity *CapacityAnnotator) []entity.OrderResult {
	pool := NewLivePool(idx.stock)
	log := NewAllocationLog()

	results := make([]entity.OrderResult, 0, len(orders))
	for i := range orders {
		so := orders[i]
		bom := idx.bomByParent[NormalizePart(so.PartNumber)]

		d := discover(&so, bom, idx, pool)
		components := commit(&so, bom, idx, pool, log, d)

		results = append(results, entity.OrderResult{
			Order:          so,
			Components:     components,
			Bottleneck:     d.bottleneck,
			CanProduceQty:  d.feasible,
			ShiftsRequired: capacity.ShiftsRequired(&so),
			Status:         classify(&so, d.feasible),
		})
	}
	return results
}

// discovery resultado de la fase 1 para una orden.
type discovery struct {
	feasible   float64
	bottleneck string
}

// discover fase 1 (solo lectura): cantidad máxima fabricable con el pool vivo actual
// más lo pendiente de QC y las OC abiertas, y el componente que la limita.
// Es función pura del estado del pool.
func discover(so *entity.SalesOrderLine, bom []entity.BOMLine, idx *demandIndex, pool *LivePool) discovery {
	gross := nonNegative(so.OrderedQty)
	if so.NetQty <= 0 {
		return discovery{feasible: gross, bottleneck: entity.BottleneckNone}
	}
	if len(bom) == 0 {
		return discovery{feasible: 0, bottleneck: entity.BottleneckNoBOM}
	}

	feasible := math.Inf(1)
	bottleneck := entity.BottleneckNone
	for _, line := range bom {
		qpu := line.EffectiveQtyPer()
		if qpu <= 0 {
			continue
		}
		part := line.ComponentPart
		available := pool.Available(part) + idx.stock[part].PendingQC + idx.openPO[part]
		maxBuild := available / qpu
		if maxBuild < feasible {
			feasible = maxBuild
			bottleneck = part
		}
	}
	if math.IsInf(feasible, 1) {
		// ningún componente consume: no hay restricción de materiales
		return discovery{feasible: gross, bottleneck: entity.BottleneckNone}
	}
	return discovery{feasible: feasible, bottleneck: bottleneck}
}

// commit fase 2: descuenta del pool vivo lo necesario para fabricar la cantidad factible
// (limitada al neto) y arma el detalle por componente.
func commit(
	so *entity.SalesOrderLine,
	bom []entity.BOMLine,
	idx *demandIndex,
	pool *LivePool,
	log *AllocationLog,
	d discovery,
) []entity.ComponentDetail {
	if len(bom) == 0 {
		return nil
	}
	gross := nonNegative(so.OrderedQty)
	// Se descuenta min(factible, neto) × qpu y no factible × qpu: la parte cubierta por
	// producto terminado no consume componentes del pool vivo.
	build := math.Min(d.feasible, so.NetQty)

	details := make([]entity.ComponentDetail, 0, len(bom))
	for _, line := range bom {
		qpu := line.EffectiveQtyPer()
		if qpu <= 0 {
			continue
		}
		part := line.ComponentPart
		stock := idx.stock[part]
		openPO := idx.openPO[part]

		before := pool.Available(part)
		available := before + stock.PendingQC + openPO

		var allocated float64
		if so.NetQty > 0 {
			allocated = pool.Take(part, build*qpu)
			log.Record(part, so.SalesOrder, allocated)
		}

		shared, others := log.Others(part, so.SalesOrder)
		details = append(details, entity.ComponentDetail{
			PartNumber:             part,
			Description:            line.Description,
			QtyPerUnit:             qpu,
			TotalRequired:          gross * qpu,
			OnHandInitial:          stock.Approved,
			OnHandPendingQC:        stock.PendingQC,
			InventoryBeforeThisSO:  before,
			AllocatedForThisSO:     allocated,
			OpenPOQty:              openPO,
			TotalAvailableForSO:    available,
			Shortfall:              nonNegative(so.NetQty*qpu - available),
			SharedWith:             shared,
			TotalAllocatedToOthers: others,
			SharedWithSummary:      sharedSummary(shared, others),
		})
	}
	return details
}

// classify asigna el estado de la orden para reportes.
func classify(so *entity.SalesOrderLine, feasible float64) entity.OrderStatus {
	gross := nonNegative(so.OrderedQty)
	switch {
	case so.OnHandApproved+epsilon >= gross:
		return entity.StatusReadyToShip
	case so.OnHandApproved+so.OnHandPendingQC+epsilon >= gross:
		if so.OnHandApproved > epsilon {
			return entity.StatusPartialShipPendingQC
		}
		return entity.StatusPendingQC
	case feasible+epsilon >= so.NetQty:
		return entity.StatusOK
	case feasible > epsilon:
		return entity.StatusPartial
	default:
		return entity.StatusCritical
	}
}
