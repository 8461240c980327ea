package mrp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/production-portal/internal/domain/entity"
)

// fixture con varias órdenes que comparten componentes.
func sharedComponentsInput() Input {
	dues := []string{"02/10/2025", "", "01/15/2025", "bad-date", "01/15/2025", "03/01/2025", ""}
	parts := []string{"X", "Y", "X", "Y", "Z", "X", "Z"}
	qtys := []float64{120, 40, 60, 75, 30, 90, 10}

	var orders []entity.SalesOrderLine
	for i := range dues {
		orders = append(orders, entity.SalesOrderLine{
			SalesOrder: fmt.Sprintf("%d", 500+i),
			PartNumber: parts[i],
			DueToShip:  dues[i],
			OrderedQty: qtys[i],
		})
	}
	return Input{
		Orders: orders,
		BOM: []entity.BOMLine{
			{ParentPart: "X", ComponentPart: "FILM", QtyPer: 1.5, ScrapPct: 2},
			{ParentPart: "X", ComponentPart: "BOX", QtyPer: 1},
			{ParentPart: "Y", ComponentPart: "FILM", QtyPer: 0.5},
			{ParentPart: "Y", ComponentPart: "CAP", QtyPer: 3},
			{ParentPart: "Z", ComponentPart: "BOX", QtyPer: 2},
			{ParentPart: "Z", ComponentPart: "CAP", QtyPer: 1, ScrapPct: 5},
		},
		Inventory: []entity.InventoryRow{
			{PartNumber: "FILM", Quantity: 200},
			{PartNumber: "FILM", Quantity: 50, QCStatus: "P"},
			{PartNumber: "BOX", Quantity: 130},
			{PartNumber: "CAP", Quantity: 90},
		},
		PurchaseOrders: []entity.PurchaseOrderLine{{PartNumber: "CAP", OpenQty: 40}},
		FinishedGoods:  []entity.FinishedGoodRow{{PartNumber: "Y", Approved: 15}},
	}
}

func prioritized(in Input) ([]entity.SalesOrderLine, *demandIndex) {
	idx := buildIndex(in)
	orders := make([]entity.SalesOrderLine, len(in.Orders))
	copy(orders, in.Orders)
	ApplyNetRequirements(orders, idx.finishedGoods)
	SortByDueDate(orders)
	return orders, idx
}

// El pool vivo nunca crece ni queda negativo, ninguna orden toma más de lo vivo
// y la suma asignada por componente no supera el aprobado inicial.
func TestAllocate_Invariantes(t *testing.T) {
	in := sharedComponentsInput()
	orders, idx := prioritized(in)
	results := allocate(orders, idx, NewCapacityAnnotator(nil))
	require.Len(t, results, len(orders))

	last := map[string]float64{}
	for part, s := range idx.stock {
		last[part] = s.Approved
	}
	total := map[string]float64{}

	for _, r := range results {
		for _, c := range r.Components {
			assert.LessOrEqual(t, c.InventoryBeforeThisSO, last[c.PartNumber]+epsilon,
				"el pool de %s no debe crecer", c.PartNumber)
			assert.LessOrEqual(t, c.AllocatedForThisSO, c.InventoryBeforeThisSO+epsilon)
			assert.GreaterOrEqual(t, c.InventoryBeforeThisSO-c.AllocatedForThisSO, -epsilon)
			last[c.PartNumber] = c.InventoryBeforeThisSO - c.AllocatedForThisSO
			total[c.PartNumber] += c.AllocatedForThisSO
		}
	}
	for part, sum := range total {
		assert.LessOrEqual(t, sum, idx.stock[part].Approved+epsilon, "conservación de %s", part)
	}
}

// Órdenes con la misma fecha o sin fecha conservan el orden de entrada.
func TestSortByDueDate_Estable(t *testing.T) {
	orders := []entity.SalesOrderLine{
		{SalesOrder: "a", DueToShip: ""},
		{SalesOrder: "b", DueToShip: "01/15/2025"},
		{SalesOrder: "c", DueToShip: "no-es-fecha"},
		{SalesOrder: "d", DueToShip: "01/15/2025"},
		{SalesOrder: "e", DueToShip: "12/31/2024"},
		{SalesOrder: "f"},
	}
	SortByDueDate(orders)

	got := make([]string, 0, len(orders))
	for _, so := range orders {
		got = append(got, so.SalesOrder)
	}
	assert.Equal(t, []string{"e", "b", "d", "a", "c", "f"}, got)
}

// Mes y día sin cero inicial se interpretan igual que con cero.
func TestSortByDueDate_FechaSinCeros(t *testing.T) {
	orders := []entity.SalesOrderLine{
		{SalesOrder: "1", DueToShip: "12/31/2025"},
		{SalesOrder: "2", DueToShip: "1/5/2025"},
		{SalesOrder: "3", DueToShip: "2/03/2025"},
		{SalesOrder: "4", DueToShip: "01/05/2025"},
	}
	SortByDueDate(orders)

	got := make([]string, 0, len(orders))
	for _, so := range orders {
		got = append(got, so.SalesOrder)
	}
	assert.Equal(t, []string{"2", "4", "3", "1"}, got)

	due, ok := orders[0].DueDate()
	require.True(t, ok)
	assert.Equal(t, "2025-01-05", due.Format("2006-01-02"))
}

// allocate conserva el orden de prioridad antes del reordenamiento final por SO.
func TestAllocate_OrdenDePrioridad(t *testing.T) {
	in := sharedComponentsInput()
	orders, idx := prioritized(in)
	results := allocate(orders, idx, NewCapacityAnnotator(nil))

	got := make([]string, 0, len(results))
	for _, r := range results {
		got = append(got, r.Order.SalesOrder)
	}
	assert.Equal(t, []string{"502", "504", "500", "505", "501", "503", "506"}, got)
}

// Repetir la fase 1 sin confirmar la fase 2 devuelve lo mismo y no toca el pool.
func TestDiscover_Idempotente(t *testing.T) {
	in := sharedComponentsInput()
	orders, idx := prioritized(in)
	pool := NewLivePool(idx.stock)
	before := pool.Snapshot()

	so := orders[0]
	bom := idx.bomByParent[so.PartNumber]
	first := discover(&so, bom, idx, pool)
	second := discover(&so, bom, idx, pool)

	assert.Equal(t, first, second)
	assert.Equal(t, before, pool.Snapshot())
}

func TestLivePool_TakeNuncaExcede(t *testing.T) {
	pool := NewLivePool(map[string]entity.ComponentStock{"C": {Approved: 10}, "D": {Approved: -5}})

	assert.InDelta(t, 4, pool.Take("C", 4), epsilon)
	assert.InDelta(t, 6, pool.Take("C", 100), epsilon)
	assert.Zero(t, pool.Take("C", 1))
	assert.Zero(t, pool.Take("D", 1), "el aprobado negativo se trata como 0")
	assert.Zero(t, pool.Take("NOPE", 1))
	assert.Zero(t, pool.Take("C", -3))
	assert.Zero(t, pool.Available("C"))
}

func TestAllocationLog_Others(t *testing.T) {
	log := NewAllocationLog()
	log.Record("C", "1", 10)
	log.Record("C", "2", 5)
	log.Record("C", "1", 2)
	log.Record("C", "3", 0)

	shared, total := log.Others("C", "1")
	assert.Equal(t, []entity.SharedAllocation{{SalesOrder: "2", Quantity: 5}}, shared)
	assert.InDelta(t, 5, total, epsilon)
	assert.InDelta(t, 17, log.TotalAllocated("C"), epsilon)

	shared, total = log.Others("D", "1")
	assert.Empty(t, shared)
	assert.Zero(t, total)
}

func TestClassify_OrdenSinCantidad(t *testing.T) {
	so := entity.SalesOrderLine{}
	assert.Equal(t, entity.StatusReadyToShip, classify(&so, 0))
}
