package mrp

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/production-portal/internal/domain/entity"
)

// maxDueDate fecha usada para las órdenes sin fecha o con fecha ilegible (van al final).
var maxDueDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// ApplyNetRequirements calcula el neto de cada línea: max(0, bruto - aprobado en existencia)
// y adjunta las existencias de producto terminado para mostrarlas.
func ApplyNetRequirements(orders []entity.SalesOrderLine, fg map[string]entity.FinishedGoodStock) {
	for i := range orders {
		so := &orders[i]
		stock := fg[NormalizePart(so.PartNumber)]
		so.OnHandApproved = stock.Approved
		so.OnHandPendingQC = stock.PendingQC
		so.OnHandTotal = stock.Total
		so.NetQty = nonNegative(nonNegative(so.OrderedQty) - stock.Approved)
	}
}

// ApplyNetRequirementsSequential variante con pool vivo de producto terminado:
// las líneas (ya ordenadas por prioridad) consumen el aprobado en orden, de modo que
// dos líneas del mismo parte no cuentan dos veces la misma existencia.
func ApplyNetRequirementsSequential(orders []entity.SalesOrderLine, fg map[string]entity.FinishedGoodStock) {
	approved := make(map[string]float64, len(fg))
	for part, stock := range fg {
		approved[part] = stock.Approved
	}
	for i := range orders {
		so := &orders[i]
		part := NormalizePart(so.PartNumber)
		stock := fg[part]
		available := approved[part]
		gross := nonNegative(so.OrderedQty)

		so.OnHandApproved = available
		so.OnHandPendingQC = stock.PendingQC
		so.OnHandTotal = available + stock.PendingQC
		so.NetQty = nonNegative(gross - available)

		taken := gross
		if available < taken {
			taken = available
		}
		approved[part] = available - taken
	}
}

// SortByDueDate ordena las líneas por fecha de envío ascendente (estable).
// Es la prioridad de asignación: la primera prometida reclama primero el stock escaso.
func SortByDueDate(orders []entity.SalesOrderLine) {
	type keyed struct {
		due   time.Time
		order entity.SalesOrderLine
	}
	tmp := make([]keyed, len(orders))
	for i, so := range orders {
		due, ok := so.DueDate()
		if !ok {
			due = maxDueDate
		}
		tmp[i] = keyed{due: due, order: so}
	}
	sort.SliceStable(tmp, func(i, j int) bool {
		return tmp[i].due.Before(tmp[j].due)
	})
	for i := range tmp {
		orders[i] = tmp[i].order
	}
}

// SortResultsBySalesOrder ordena los resultados por número de SO ascendente (estable).
// Compara numéricamente cuando ambos números son enteros.
func SortResultsBySalesOrder(results []entity.OrderResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return lessSalesOrder(results[i].Order.SalesOrder, results[j].Order.SalesOrder)
	})
}

func lessSalesOrder(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
