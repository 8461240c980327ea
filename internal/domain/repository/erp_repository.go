package repository

import (
	"context"

	"github.com/jhoicas/production-portal/internal/domain/entity"
)

// ERPRepository define el puerto de lectura del ERP que alimenta la corrida MRP (DIP).
// Cada método devuelve el conjunto completo; el motor no consulta durante la asignación.
type ERPRepository interface {
	OpenOrderSchedule(ctx context.Context) ([]entity.SalesOrderLine, error)
	BOMLines(ctx context.Context) ([]entity.BOMLine, error)
	OpenPurchaseOrders(ctx context.Context) ([]entity.PurchaseOrderLine, error)
	RawMaterialInventory(ctx context.Context) ([]entity.InventoryRow, error)
	FinishedGoodInventory(ctx context.Context) ([]entity.FinishedGoodRow, error)
}
