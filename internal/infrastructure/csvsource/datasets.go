package csvsource

import (
	"context"

	"github.com/jhoicas/production-portal/internal/domain/entity"
)

// OpenOrderSchedule lee orders.csv (obligatorio).
func (s *Source) OpenOrderSchedule(ctx context.Context) ([]entity.SalesOrderLine, error) {
	t, err := s.readTable(ctx, OrdersFile, true, "so", "part", "ord_qty_cur_level")
	if err != nil {
		return nil, err
	}
	list := make([]entity.SalesOrderLine, 0, len(t.rows))
	for i := range t.rows {
		so := entity.SalesOrderLine{
			SalesOrder:     t.str(i, "so"),
			BillToPO:       t.str(i, "bill_to_po"),
			OrderType:      t.str(i, "so_type"),
			Facility:       t.str(i, "facility"),
			BusinessUnit:   t.str(i, "bu"),
			PartNumber:     t.str(i, "part"),
			Description:    t.str(i, "description"),
			Customer:       t.str(i, "customer_name"),
			DueToShip:      t.str(i, "due_to_ship"),
			SalesRep:       t.str(i, "sales_rep"),
			ScheduleNote:   t.str(i, "schedule_note"),
			ProductionLine: t.str(i, "production_line"),
		}
		if so.OrderedQty, err = t.num(i, "ord_qty_cur_level"); err != nil {
			return nil, err
		}
		if so.OriginalQty, err = t.num(i, "ord_qty_00_level"); err != nil {
			return nil, err
		}
		if so.UnitPrice, err = t.money(i, "unit_price"); err != nil {
			return nil, err
		}
		if so.NoRiskQty, err = t.num(i, "can_make_no_risk"); err != nil {
			return nil, err
		}
		if so.LowRiskQty, err = t.num(i, "low_risk"); err != nil {
			return nil, err
		}
		if so.HighRiskQty, err = t.num(i, "high_risk"); err != nil {
			return nil, err
		}
		list = append(list, so)
	}
	return list, nil
}

// BOMLines lee bom.csv (obligatorio).
func (s *Source) BOMLines(ctx context.Context) ([]entity.BOMLine, error) {
	t, err := s.readTable(ctx, BOMFile, true, "parent_part_number", "part_number", "quantity")
	if err != nil {
		return nil, err
	}
	list := make([]entity.BOMLine, 0, len(t.rows))
	for i := range t.rows {
		b := entity.BOMLine{
			ParentPart:    t.str(i, "parent_part_number"),
			ComponentPart: t.str(i, "part_number"),
			Description:   t.str(i, "description"),
		}
		if b.QtyPer, err = t.num(i, "quantity"); err != nil {
			return nil, err
		}
		if b.ScrapPct, err = t.num(i, "scrap"); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, nil
}

// OpenPurchaseOrders lee purchase_orders.csv; si no existe no hay OC abiertas.
func (s *Source) OpenPurchaseOrders(ctx context.Context) ([]entity.PurchaseOrderLine, error) {
	t, err := s.readTable(ctx, PurchaseOrdersFile, false, "part_number", "openpoquantity")
	if err != nil {
		return nil, err
	}
	list := make([]entity.PurchaseOrderLine, 0, len(t.rows))
	for i := range t.rows {
		po := entity.PurchaseOrderLine{
			PONumber:   t.str(i, "po_number"),
			PartNumber: t.str(i, "part_number"),
		}
		if po.OpenQty, err = t.num(i, "openpoquantity"); err != nil {
			return nil, err
		}
		list = append(list, po)
	}
	return list, nil
}

// RawMaterialInventory lee raw_materials.csv (obligatorio): una fila por parte y estado de QC.
func (s *Source) RawMaterialInventory(ctx context.Context) ([]entity.InventoryRow, error) {
	t, err := s.readTable(ctx, RawMaterialsFile, true, "partnumber", "quantity")
	if err != nil {
		return nil, err
	}
	list := make([]entity.InventoryRow, 0, len(t.rows))
	for i := range t.rows {
		row := entity.InventoryRow{
			PartNumber: t.str(i, "partnumber"),
			QCStatus:   t.str(i, "qc_status"),
		}
		if row.Quantity, err = t.num(i, "quantity"); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, nil
}

// FinishedGoodInventory lee finished_goods.csv; si no existe no hay producto terminado.
func (s *Source) FinishedGoodInventory(ctx context.Context) ([]entity.FinishedGoodRow, error) {
	t, err := s.readTable(ctx, FinishedGoodsFile, false, "partnumber")
	if err != nil {
		return nil, err
	}
	list := make([]entity.FinishedGoodRow, 0, len(t.rows))
	for i := range t.rows {
		fg := entity.FinishedGoodRow{PartNumber: t.str(i, "partnumber")}
		// exportaciones antiguas solo traen TotalOnHand, que se toma como aprobado
		approvedCol := "approved"
		if _, ok := t.cols[approvedCol]; !ok {
			approvedCol = "totalonhand"
		}
		if fg.Approved, err = t.num(i, approvedCol); err != nil {
			return nil, err
		}
		if fg.PendingQC, err = t.num(i, "pending_qc"); err != nil {
			return nil, err
		}
		list = append(list, fg)
	}
	return list, nil
}

// ListCapacities lee capacity.csv; si no existe no hay capacidades configuradas.
func (s *Source) ListCapacities(ctx context.Context) ([]entity.CapacityEntry, error) {
	t, err := s.readTable(ctx, CapacityFile, false, "line_id", "capacity_per_shift")
	if err != nil {
		return nil, err
	}
	list := make([]entity.CapacityEntry, 0, len(t.rows))
	for i := range t.rows {
		c := entity.CapacityEntry{LineID: t.str(i, "line_id")}
		if c.CapacityPerShift, err = t.num(i, "capacity_per_shift"); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, nil
}
