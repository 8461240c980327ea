package entity

// OrderStatus clasificación de una línea de SO después de la corrida MRP.
type OrderStatus string

const (
	StatusReadyToShip          OrderStatus = "ready-to-ship"           // el aprobado cubre la demanda
	StatusPendingQC            OrderStatus = "pending-qc"              // cubre solo sumando lo retenido en QC
	StatusPartialShipPendingQC OrderStatus = "partial-ship-pending-qc" // envío parcial + resto en QC
	StatusOK                   OrderStatus = "ok"                      // la producción cubre el neto
	StatusPartial              OrderStatus = "partial"
	StatusCritical             OrderStatus = "critical"
)

// OrderStatuses estados en el orden en que se muestran en los reportes.
var OrderStatuses = []OrderStatus{
	StatusReadyToShip, StatusPendingQC, StatusPartialShipPendingQC, StatusOK, StatusPartial, StatusCritical,
}

// Valores especiales de cuello de botella.
const (
	BottleneckNoBOM = "No BOM Found"
	BottleneckNone  = "None"
)

// SharedAllocation cantidad de un componente reclamada por otra SO procesada antes.
type SharedAllocation struct {
	SalesOrder string
	Quantity   float64
}

// ComponentDetail detalle de asignación de un componente para una línea de SO.
type ComponentDetail struct {
	PartNumber             string
	Description            string
	QtyPerUnit             float64 // efectiva, con merma
	TotalRequired          float64 // cantidad bruta x QtyPerUnit
	OnHandInitial          float64 // aprobado al inicio de la corrida
	OnHandPendingQC        float64
	InventoryBeforeThisSO  float64 // pool vivo antes de esta SO
	AllocatedForThisSO     float64
	OpenPOQty              float64
	TotalAvailableForSO    float64 // vivo + QC + OC
	Shortfall              float64
	SharedWith             []SharedAllocation
	TotalAllocatedToOthers float64
	SharedWithSummary      []string // texto listo para mostrar (tooltip)
}

// OrderResult resultado del motor para una línea de SO.
type OrderResult struct {
	Order          SalesOrderLine
	Components     []ComponentDetail
	Bottleneck     string
	CanProduceQty  float64
	ShiftsRequired float64
	Status         OrderStatus
}
