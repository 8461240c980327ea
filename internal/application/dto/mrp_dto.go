package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MRPQuery filtros de GET /api/mrp y sus exportaciones.
type MRPQuery struct {
	BusinessUnit string `query:"bu"`
	Customer     string `query:"customer"`
	DueShip      string `query:"due_ship"` // MM/YYYY
	Status       string `query:"status"`   // ready-to-ship | production-needed | action-required | estado individual
}

// MRPRunResponse respuesta de GET /api/mrp.
type MRPRunResponse struct {
	RunID                 string              `json:"run_id"`
	GeneratedAt           time.Time           `json:"generated_at"`
	AllocateFinishedGoods bool                `json:"allocate_finished_goods"`
	TotalRows             int                 `json:"total_rows"`
	Summary               MRPSummaryDTO       `json:"summary"`
	Filters               MRPFilterOptionsDTO `json:"filters"`
	Results               []MRPResultDTO      `json:"results"`
}

// MRPSummaryDTO conteos por estado de las filas visibles.
type MRPSummaryDTO struct {
	Visible              int             `json:"visible"`
	ReadyToShip          int             `json:"ready_to_ship"`
	PendingQC            int             `json:"pending_qc"`
	PartialShipPendingQC int             `json:"partial_ship_pending_qc"`
	OK                   int             `json:"ok"`
	Partial              int             `json:"partial"`
	Critical             int             `json:"critical"`
	ShortageValue        decimal.Decimal `json:"shortage_value"`
}

// MRPFilterOptionsDTO valores disponibles para los filtros.
type MRPFilterOptionsDTO struct {
	BusinessUnits []string `json:"business_units"`
	Customers     []string `json:"customers"`
	DueShipMonths []string `json:"due_ship_months"`
}

// MRPResultDTO una línea de SO con su sugerencia de producción.
type MRPResultDTO struct {
	SalesOrder      string            `json:"sales_order"`
	BillToPO        string            `json:"bill_to_po,omitempty"`
	OrderType       string            `json:"order_type,omitempty"`
	Facility        string            `json:"facility,omitempty"`
	BusinessUnit    string            `json:"bu"`
	PartNumber      string            `json:"part_number"`
	Description     string            `json:"description"`
	Customer        string            `json:"customer"`
	DueToShip       string            `json:"due_to_ship"`
	SalesRep        string            `json:"sales_rep,omitempty"`
	ScheduleNote    string            `json:"schedule_note,omitempty"`
	OrderedQty      float64           `json:"ordered_qty"`
	OnHandApproved  float64           `json:"on_hand_approved"`
	OnHandPendingQC float64           `json:"on_hand_pending_qc"`
	OnHandTotal     float64           `json:"on_hand_total"`
	NetQty          float64           `json:"net_qty"`
	UnitPrice       decimal.Decimal   `json:"unit_price"`
	ExtendedValue   decimal.Decimal   `json:"extended_value"`
	CanProduceQty   float64           `json:"can_produce_qty"`
	Bottleneck      string            `json:"bottleneck"`
	ShiftsRequired  float64           `json:"shifts_required"`
	Status          string            `json:"status"`
	Components      []MRPComponentDTO `json:"components"`
}

// MRPComponentDTO detalle de asignación de un componente.
type MRPComponentDTO struct {
	PartNumber             string              `json:"part_number"`
	Description            string              `json:"description"`
	QtyPerUnit             float64             `json:"qty_per_unit"`
	TotalRequired          float64             `json:"total_required"`
	OnHandInitial          float64             `json:"on_hand_initial"`
	OnHandPendingQC        float64             `json:"on_hand_pending_qc"`
	InventoryBeforeThisSO  float64             `json:"inventory_before_this_so"`
	AllocatedForThisSO     float64             `json:"allocated_for_this_so"`
	OpenPOQty              float64             `json:"open_po_qty"`
	TotalAvailableForSO    float64             `json:"total_available_for_so"`
	Shortfall              float64             `json:"shortfall"`
	TotalAllocatedToOthers float64             `json:"total_allocated_to_others"`
	SharedWith             []MRPSharedAllocDTO `json:"shared_with"`
	SharedWithSummary      []string            `json:"shared_with_summary,omitempty"`
}

// MRPSharedAllocDTO cantidad del componente que tomó otra SO.
type MRPSharedAllocDTO struct {
	SalesOrder string  `json:"sales_order"`
	Quantity   float64 `json:"quantity"`
}
