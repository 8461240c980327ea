package entity

// PurchaseOrderLine cantidad abierta de una orden de compra para un componente.
// Se trata como suministro por recibir: suma a la factibilidad, nunca se descuenta.
type PurchaseOrderLine struct {
	PONumber   string
	PartNumber string
	OpenQty    float64
}
