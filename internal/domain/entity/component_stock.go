package entity

// Estados de control de calidad reconocidos en el inventario de materia prima.
const (
	QCStatusApproved   = "APPROVED"
	QCStatusPendingQC  = "PENDING_QC"
	QCStatusQuarantine = "QUARANTINE"
	QCStatusIssued     = "ISSUED"
	QCStatusStaged     = "STAGED"
)

// QCStatusCodes códigos del ERP que corresponden a cada estado distinto de aprobado.
// Vacío o cualquier código no listado se considera aprobado.
var QCStatusCodes = map[string][]string{
	QCStatusPendingQC:  {"P", "PENDING", "PENDING_QC", "QC"},
	QCStatusQuarantine: {"Q", "QUARANTINE", "HOLD"},
	QCStatusIssued:     {"I", "ISSUED"},
	QCStatusStaged:     {"S", "STAGED"},
}

// NonApprovedQCCodes todos los códigos de QC que no cuentan como aprobado.
func NonApprovedQCCodes() []string {
	var out []string
	for _, status := range []string{QCStatusPendingQC, QCStatusQuarantine, QCStatusIssued, QCStatusStaged} {
		out = append(out, QCStatusCodes[status]...)
	}
	return out
}

// InventoryRow fila cruda de inventario de componentes tal como la entrega el ERP.
type InventoryRow struct {
	PartNumber string
	Quantity   float64
	QCStatus   string // código del ERP; vacío o desconocido = aprobado
}

// ComponentStock inventario de un componente separado por estado de QC.
// Solo Approved es asignable; PendingQC suma a la factibilidad pero nunca se descuenta.
type ComponentStock struct {
	Approved   float64
	PendingQC  float64
	Quarantine float64
	Issued     float64 // entregado a orden de trabajo
	Staged     float64
	Total      float64
}
