package mrp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/production-portal/internal/domain/entity"
	"github.com/jhoicas/production-portal/internal/domain/mrp"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func order(so, part, due string, qty float64) entity.SalesOrderLine {
	return entity.SalesOrderLine{SalesOrder: so, PartNumber: part, DueToShip: due, OrderedQty: qty}
}

func approved(part string, qty float64) entity.InventoryRow {
	return entity.InventoryRow{PartNumber: part, Quantity: qty, QCStatus: "A"}
}

func resultFor(t *testing.T, results []entity.OrderResult, so string) entity.OrderResult {
	t.Helper()
	for _, r := range results {
		if r.Order.SalesOrder == so {
			return r
		}
	}
	require.Failf(t, "resultado no encontrado", "SO %s", so)
	return entity.OrderResult{}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios
// ──────────────────────────────────────────────────────────────────────────────

// Dos órdenes compiten por 150 unidades de C; la de fecha más temprana gana.
func TestRun_DosOrdenesCompitenPorComponente(t *testing.T) {
	engine := mrp.NewEngine(mrp.Options{})
	results := engine.Run(mrp.Input{
		Orders: []entity.SalesOrderLine{
			order("1002", "X", "01/02/2025", 50),
			order("1001", "X", "01/01/2025", 100),
		},
		BOM:       []entity.BOMLine{{ParentPart: "X", ComponentPart: "C", QtyPer: 2}},
		Inventory: []entity.InventoryRow{approved("C", 150)},
	})
	require.Len(t, results, 2)

	a := resultFor(t, results, "1001")
	assert.InDelta(t, 75, a.CanProduceQty, 1e-9)
	assert.Equal(t, "C", a.Bottleneck)
	assert.Equal(t, entity.StatusPartial, a.Status)
	require.Len(t, a.Components, 1)
	assert.InDelta(t, 150, a.Components[0].AllocatedForThisSO, 1e-9)
	assert.InDelta(t, 150, a.Components[0].InventoryBeforeThisSO, 1e-9)
	assert.InDelta(t, 50, a.Components[0].Shortfall, 1e-9)
	assert.Empty(t, a.Components[0].SharedWithSummary)

	b := resultFor(t, results, "1002")
	assert.InDelta(t, 0, b.CanProduceQty, 1e-9)
	assert.Equal(t, "C", b.Bottleneck)
	assert.Equal(t, entity.StatusCritical, b.Status)
	require.Len(t, b.Components, 1)
	comp := b.Components[0]
	assert.InDelta(t, 0, comp.InventoryBeforeThisSO, 1e-9)
	assert.InDelta(t, 0, comp.AllocatedForThisSO, 1e-9)
	assert.InDelta(t, 100, comp.Shortfall, 1e-9)
	assert.InDelta(t, 150, comp.TotalAllocatedToOthers, 1e-9)
	assert.Equal(t, []entity.SharedAllocation{{SalesOrder: "1001", Quantity: 150}}, comp.SharedWith)
	assert.Equal(t, []string{
		"Total Allocated to Others: 150.00",
		"  - SO 1001: 150.00",
	}, comp.SharedWithSummary)
}

// Una fecha sin ceros (1/5/2025) tiene prioridad sobre 12/31/2025.
func TestRun_FechaSinCerosReclamaPrimero(t *testing.T) {
	engine := mrp.NewEngine(mrp.Options{})
	results := engine.Run(mrp.Input{
		Orders: []entity.SalesOrderLine{
			order("SO1", "X", "12/31/2025", 10),
			order("SO2", "X", "1/5/2025", 10),
		},
		BOM:       []entity.BOMLine{{ParentPart: "X", ComponentPart: "C", QtyPer: 1}},
		Inventory: []entity.InventoryRow{approved("C", 10)},
	})
	require.Len(t, results, 2)

	assert.InDelta(t, 10, resultFor(t, results, "SO2").CanProduceQty, 1e-9)
	assert.InDelta(t, 0, resultFor(t, results, "SO1").CanProduceQty, 1e-9)
}

func TestRun_SinBOM(t *testing.T) {
	results := mrp.NewEngine(mrp.Options{}).Run(mrp.Input{
		Orders: []entity.SalesOrderLine{order("2001", "Y", "03/15/2025", 10)},
	})
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, entity.BottleneckNoBOM, r.Bottleneck)
	assert.Zero(t, r.CanProduceQty)
	assert.Equal(t, entity.StatusCritical, r.Status)
	assert.Empty(t, r.Components)
	assert.InDelta(t, 10, r.Order.NetQty, 1e-9)
}

// Cantidad 5 con 10% de merma = 5.5 por unidad; 10 unidades consumen 55.
func TestRun_MermaEnCantidadEfectiva(t *testing.T) {
	results := mrp.NewEngine(mrp.Options{}).Run(mrp.Input{
		Orders:    []entity.SalesOrderLine{order("3001", "Z", "", 10)},
		BOM:       []entity.BOMLine{{ParentPart: "Z", ComponentPart: "RESIN", QtyPer: 5, ScrapPct: 10}},
		Inventory: []entity.InventoryRow{approved("RESIN", 1000)},
	})
	require.Len(t, results, 1)
	r := results[0]
	require.Len(t, r.Components, 1)
	assert.InDelta(t, 5.5, r.Components[0].QtyPerUnit, 1e-9)
	assert.InDelta(t, 55, r.Components[0].AllocatedForThisSO, 1e-9)
	assert.InDelta(t, 55, r.Components[0].TotalRequired, 1e-9)
	assert.InDelta(t, 1000/5.5, r.CanProduceQty, 1e-9)
	assert.Equal(t, entity.StatusOK, r.Status)
}

// Una orden cubierta por producto terminado no descuenta componentes.
func TestRun_ListaParaEnviarNoDescuenta(t *testing.T) {
	results := mrp.NewEngine(mrp.Options{}).Run(mrp.Input{
		Orders: []entity.SalesOrderLine{
			order("4001", "X", "01/01/2025", 80),
			order("4002", "W", "01/05/2025", 10),
		},
		BOM: []entity.BOMLine{
			{ParentPart: "X", ComponentPart: "C", QtyPer: 1},
			{ParentPart: "W", ComponentPart: "C", QtyPer: 1},
		},
		Inventory:     []entity.InventoryRow{approved("C", 40)},
		FinishedGoods: []entity.FinishedGoodRow{{PartNumber: "X", Approved: 100}},
	})

	ready := resultFor(t, results, "4001")
	assert.Equal(t, entity.StatusReadyToShip, ready.Status)
	assert.InDelta(t, 80, ready.CanProduceQty, 1e-9)
	assert.Equal(t, entity.BottleneckNone, ready.Bottleneck)
	assert.Zero(t, ready.Order.NetQty)
	require.Len(t, ready.Components, 1)
	assert.Zero(t, ready.Components[0].AllocatedForThisSO)

	next := resultFor(t, results, "4002")
	require.Len(t, next.Components, 1)
	assert.InDelta(t, 40, next.Components[0].InventoryBeforeThisSO, 1e-9)
	assert.InDelta(t, 10, next.Components[0].AllocatedForThisSO, 1e-9)
}

// Lo pendiente de QC y las OC abiertas suman a la factibilidad pero nunca se descuentan.
func TestRun_PendienteQCyOCNoSeDescuentan(t *testing.T) {
	results := mrp.NewEngine(mrp.Options{}).Run(mrp.Input{
		Orders: []entity.SalesOrderLine{
			order("5001", "X", "01/01/2025", 100),
			order("5002", "X", "01/02/2025", 100),
		},
		BOM: []entity.BOMLine{{ParentPart: "X", ComponentPart: "C", QtyPer: 1}},
		Inventory: []entity.InventoryRow{
			approved("C", 10),
			{PartNumber: "C", Quantity: 20, QCStatus: "P"},
		},
		PurchaseOrders: []entity.PurchaseOrderLine{{PONumber: "PO1", PartNumber: "C", OpenQty: 30}},
	})

	first := resultFor(t, results, "5001")
	assert.InDelta(t, 60, first.CanProduceQty, 1e-9)
	assert.InDelta(t, 10, first.Components[0].AllocatedForThisSO, 1e-9)
	assert.InDelta(t, 40, first.Components[0].Shortfall, 1e-9)

	second := resultFor(t, results, "5002")
	assert.InDelta(t, 50, second.CanProduceQty, 1e-9)
	assert.InDelta(t, 0, second.Components[0].InventoryBeforeThisSO, 1e-9)
	assert.InDelta(t, 50, second.Components[0].TotalAvailableForSO, 1e-9)
	assert.Zero(t, second.Components[0].AllocatedForThisSO)
}

// El componente con menor capacidad de fabricación es el cuello de botella; en empate gana el primero.
func TestRun_CuelloDeBotella(t *testing.T) {
	bom := []entity.BOMLine{
		{ParentPart: "X", ComponentPart: "FILM", QtyPer: 1},
		{ParentPart: "X", ComponentPart: "LID", QtyPer: 2},
		{ParentPart: "X", ComponentPart: "BOX", QtyPer: 1},
		{ParentPart: "X", ComponentPart: "LABEL", QtyPer: 0},
	}
	results := mrp.NewEngine(mrp.Options{}).Run(mrp.Input{
		Orders:    []entity.SalesOrderLine{order("6001", "X", "", 100)},
		BOM:       bom,
		Inventory: []entity.InventoryRow{approved("FILM", 500), approved("LID", 40), approved("BOX", 20)},
	})
	r := results[0]
	assert.Equal(t, "LID", r.Bottleneck, "LID y BOX permiten 20; gana el primero")
	assert.InDelta(t, 20, r.CanProduceQty, 1e-9)
	assert.Len(t, r.Components, 3, "la línea con cantidad 0 no consume y se omite")
}

func TestRun_SinComponentesConsumiblesNoRestringe(t *testing.T) {
	results := mrp.NewEngine(mrp.Options{}).Run(mrp.Input{
		Orders: []entity.SalesOrderLine{order("6101", "X", "", 30)},
		BOM:    []entity.BOMLine{{ParentPart: "X", ComponentPart: "LABEL", QtyPer: 0}},
	})
	r := results[0]
	assert.InDelta(t, 30, r.CanProduceQty, 1e-9)
	assert.Equal(t, entity.BottleneckNone, r.Bottleneck)
	assert.Equal(t, entity.StatusOK, r.Status)
}

// Las claves de parte se comparan sin el relleno de espacios del ERP.
func TestRun_ClavesNormalizadas(t *testing.T) {
	results := mrp.NewEngine(mrp.Options{}).Run(mrp.Input{
		Orders:    []entity.SalesOrderLine{order("7001", " X ", "", 10)},
		BOM:       []entity.BOMLine{{ParentPart: "X  ", ComponentPart: " C", QtyPer: 1}},
		Inventory: []entity.InventoryRow{approved("C   ", 4), approved("C", 6)},
	})
	r := results[0]
	assert.InDelta(t, 10, r.CanProduceQty, 1e-9)
	assert.Equal(t, "C", r.Bottleneck)
	assert.InDelta(t, 10, r.Components[0].OnHandInitial, 1e-9)
}

func TestRun_ClasificacionDeEstados(t *testing.T) {
	tests := []struct {
		name   string
		fg     entity.FinishedGoodRow
		stockC float64
		qty    float64
		want   entity.OrderStatus
	}{
		{"lista para enviar", entity.FinishedGoodRow{Approved: 100}, 0, 50, entity.StatusReadyToShip},
		{"pendiente de QC", entity.FinishedGoodRow{PendingQC: 60}, 0, 50, entity.StatusPendingQC},
		{"envío parcial + QC", entity.FinishedGoodRow{Approved: 20, PendingQC: 40}, 0, 50, entity.StatusPartialShipPendingQC},
		{"producción cubre", entity.FinishedGoodRow{}, 100, 50, entity.StatusOK},
		{"parcial", entity.FinishedGoodRow{Approved: 10}, 20, 50, entity.StatusPartial},
		{"crítico", entity.FinishedGoodRow{}, 0, 50, entity.StatusCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fg := tt.fg
			fg.PartNumber = "X"
			results := mrp.NewEngine(mrp.Options{}).Run(mrp.Input{
				Orders:        []entity.SalesOrderLine{order("8001", "X", "", tt.qty)},
				BOM:           []entity.BOMLine{{ParentPart: "X", ComponentPart: "C", QtyPer: 1}},
				Inventory:     []entity.InventoryRow{approved("C", tt.stockC)},
				FinishedGoods: []entity.FinishedGoodRow{fg},
			})
			require.Len(t, results, 1)
			assert.Equal(t, tt.want, results[0].Status)
		})
	}
}

func TestRun_OrdenaSalidaPorSO(t *testing.T) {
	results := mrp.NewEngine(mrp.Options{}).Run(mrp.Input{
		Orders: []entity.SalesOrderLine{
			order("900", "X", "01/03/2025", 1),
			order("1000", "X", "01/01/2025", 1),
			order("850", "X", "", 1),
		},
	})
	got := make([]string, 0, len(results))
	for _, r := range results {
		got = append(got, r.Order.SalesOrder)
	}
	assert.Equal(t, []string{"850", "900", "1000"}, got)
}

func TestRun_NoModificaEntrada(t *testing.T) {
	orders := []entity.SalesOrderLine{order("1", "X", "", 10)}
	_ = mrp.NewEngine(mrp.Options{}).Run(mrp.Input{Orders: orders})
	assert.Zero(t, orders[0].NetQty, "el motor trabaja sobre su propia copia de las órdenes")
}

// Con AllocateFinishedGoods, dos líneas del mismo parte no cuentan dos veces la misma existencia.
// Se descuenta solo el neto: el sobrante de componentes queda para la siguiente orden.
func TestRun_DescuentaSoloElNeto(t *testing.T) {
	results := mrp.NewEngine(mrp.Options{}).Run(mrp.Input{
		Orders: []entity.SalesOrderLine{
			order("5001", "X", "01/01/2025", 30),
			order("5002", "W", "01/02/2025", 100),
		},
		BOM: []entity.BOMLine{
			{ParentPart: "X", ComponentPart: "C", QtyPer: 1},
			{ParentPart: "W", ComponentPart: "C", QtyPer: 1},
		},
		Inventory:     []entity.InventoryRow{approved("C", 100)},
		FinishedGoods: []entity.FinishedGoodRow{{PartNumber: "X", Approved: 20}},
	})

	first := resultFor(t, results, "5001")
	assert.InDelta(t, 10, first.Order.NetQty, 1e-9)
	require.Len(t, first.Components, 1)
	assert.InDelta(t, 10, first.Components[0].AllocatedForThisSO, 1e-9)

	second := resultFor(t, results, "5002")
	require.Len(t, second.Components, 1)
	assert.InDelta(t, 90, second.Components[0].InventoryBeforeThisSO, 1e-9)
	assert.InDelta(t, 90, second.CanProduceQty, 1e-9)
}

func TestRun_PoolDeProductoTerminado(t *testing.T) {
	in := mrp.Input{
		Orders: []entity.SalesOrderLine{
			order("11", "X", "01/01/2025", 80),
			order("12", "X", "01/02/2025", 50),
		},
		FinishedGoods: []entity.FinishedGoodRow{{PartNumber: "X", Approved: 100}},
	}

	plain := mrp.NewEngine(mrp.Options{}).Run(in)
	assert.Zero(t, resultFor(t, plain, "12").Order.NetQty)

	pooled := mrp.NewEngine(mrp.Options{AllocateFinishedGoods: true}).Run(in)
	first := resultFor(t, pooled, "11")
	second := resultFor(t, pooled, "12")
	assert.Zero(t, first.Order.NetQty)
	assert.Equal(t, entity.StatusReadyToShip, first.Status)
	assert.InDelta(t, 20, second.Order.OnHandApproved, 1e-9)
	assert.InDelta(t, 30, second.Order.NetQty, 1e-9)
	assert.Equal(t, entity.BottleneckNoBOM, second.Bottleneck)
}

func TestRun_TurnosRequeridos(t *testing.T) {
	results := mrp.NewEngine(mrp.Options{}).Run(mrp.Input{
		Orders: []entity.SalesOrderLine{order("13", "X", "", 100)},
		Capacities: []entity.CapacityEntry{
			{LineID: "L2", CapacityPerShift: 25},
			{LineID: "L1", CapacityPerShift: 50},
		},
	})
	assert.InDelta(t, 2, results[0].ShiftsRequired, 1e-9)
}
