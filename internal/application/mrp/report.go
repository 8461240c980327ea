package mrp

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/production-portal/internal/domain/entity"
)

// Report resultado de una corrida MRP ya filtrado para la vista.
type Report struct {
	RunID                 string
	GeneratedAt           time.Time
	AllocateFinishedGoods bool
	Filter                Filter
	Summary               Summary
	FilterOptions         FilterOptions
	TotalResults          int // líneas calculadas antes de filtrar
	Results               []entity.OrderResult
}

// Summary conteos por estado de las líneas visibles.
type Summary struct {
	Visible              int
	ReadyToShip          int
	PendingQC            int
	PartialShipPendingQC int
	OK                   int
	Partial              int
	Critical             int

	// ShortageValue valor a precio de venta de lo que no se puede fabricar (partial + critical).
	ShortageValue decimal.Decimal
}

// Count devuelve el conteo de un estado.
func (s Summary) Count(status entity.OrderStatus) int {
	switch status {
	case entity.StatusReadyToShip:
		return s.ReadyToShip
	case entity.StatusPendingQC:
		return s.PendingQC
	case entity.StatusPartialShipPendingQC:
		return s.PartialShipPendingQC
	case entity.StatusOK:
		return s.OK
	case entity.StatusPartial:
		return s.Partial
	case entity.StatusCritical:
		return s.Critical
	}
	return 0
}

// FilterOptions valores distintos disponibles para los filtros de la vista.
type FilterOptions struct {
	BusinessUnits []string
	Customers     []string
	DueShipMonths []string // MM/YYYY en orden cronológico
}

func summarize(results []entity.OrderResult) Summary {
	s := Summary{Visible: len(results), ShortageValue: decimal.Zero}
	for i := range results {
		r := &results[i]
		switch r.Status {
		case entity.StatusReadyToShip:
			s.ReadyToShip++
		case entity.StatusPendingQC:
			s.PendingQC++
		case entity.StatusPartialShipPendingQC:
			s.PartialShipPendingQC++
		case entity.StatusOK:
			s.OK++
		case entity.StatusPartial:
			s.Partial++
			s.ShortageValue = s.ShortageValue.Add(shortageValue(r))
		case entity.StatusCritical:
			s.Critical++
			s.ShortageValue = s.ShortageValue.Add(shortageValue(r))
		}
	}
	return s
}

// shortageValue precio x (neto - fabricable), nunca negativo.
func shortageValue(r *entity.OrderResult) decimal.Decimal {
	missing := r.Order.NetQty - r.CanProduceQty
	if missing <= 0 {
		return decimal.Zero
	}
	return r.Order.UnitPrice.Mul(decimal.NewFromFloat(missing)).Round(2)
}

func filterOptions(results []entity.OrderResult) FilterOptions {
	bus := map[string]struct{}{}
	customers := map[string]struct{}{}
	months := map[string]struct{}{}
	for i := range results {
		so := &results[i].Order
		if so.BusinessUnit != "" {
			bus[so.BusinessUnit] = struct{}{}
		}
		if so.Customer != "" {
			customers[so.Customer] = struct{}{}
		}
		if m, ok := dueMonth(so.DueToShip); ok {
			months[m] = struct{}{}
		}
	}

	opts := FilterOptions{
		BusinessUnits: sortedKeys(bus),
		Customers:     sortedKeys(customers),
		DueShipMonths: sortedKeys(months),
	}
	sort.SliceStable(opts.DueShipMonths, func(i, j int) bool {
		return monthKey(opts.DueShipMonths[i]) < monthKey(opts.DueShipMonths[j])
	})
	return opts
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// monthKey "03/2025" -> 202503; valores no numéricos van al final.
func monthKey(m string) int {
	month, year, ok := strings.Cut(m, "/")
	if !ok {
		return 1 << 30
	}
	mm, err1 := strconv.Atoi(month)
	yy, err2 := strconv.Atoi(year)
	if err1 != nil || err2 != nil {
		return 1 << 30
	}
	return yy*100 + mm
}
