package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DueDateLayout formato mes/día/año de las fechas de la programación. Acepta mes y día
// con o sin cero inicial (CONVERT ... 101 entrega 01/05/2025; los CSV exportados a mano, 1/5/2025).
const DueDateLayout = "1/2/2006"

// SalesOrderLine representa una línea de producto de una orden de venta abierta.
// Se lee fresca del ERP en cada corrida MRP; el motor completa los campos derivados.
type SalesOrderLine struct {
	SalesOrder     string // número de SO
	BillToPO       string
	OrderType      string // Sales Order, Credit Hold, ICT Order, On Hold Order
	Facility       string
	BusinessUnit   string // SP (Stick Pack) o BPS
	PartNumber     string
	Description    string
	Customer       string
	OrderedQty     float64 // "Ord Qty - Cur. Level"
	OriginalQty    float64 // "Ord Qty - (00) Level"
	UnitPrice      decimal.Decimal
	DueToShip      string // M/D/YYYY, puede venir vacío
	SalesRep       string
	NoRiskQty      float64
	LowRiskQty     float64
	HighRiskQty    float64
	ScheduleNote   string
	ProductionLine string // opcional; si coincide con una capacidad configurada se usa esa línea

	// Derivados (los calcula el motor)
	OnHandApproved  float64
	OnHandPendingQC float64
	OnHandTotal     float64
	NetQty          float64
}

// DueDate interpreta DueToShip. ok = false si está vacío o no se puede interpretar.
func (s *SalesOrderLine) DueDate() (time.Time, bool) {
	raw := strings.TrimSpace(s.DueToShip)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DueDateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ExtendedValue valor de la línea a precio unitario (cantidad actual x precio).
func (s *SalesOrderLine) ExtendedValue() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromFloat(s.OrderedQty))
}
