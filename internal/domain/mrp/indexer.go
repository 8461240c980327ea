package mrp

import "github.com/jhoicas/production-portal/internal/domain/entity"

// GroupBOMByParent agrupa las líneas de BOM por número de parte padre, conservando el orden de origen.
func GroupBOMByParent(lines []entity.BOMLine) map[string][]entity.BOMLine {
	out := make(map[string][]entity.BOMLine)
	for _, line := range lines {
		parent := NormalizePart(line.ParentPart)
		if parent == "" {
			continue
		}
		line.ParentPart = parent
		line.ComponentPart = NormalizePart(line.ComponentPart)
		out[parent] = append(out[parent], line)
	}
	return out
}

// SumOpenPurchaseOrders suma la cantidad abierta de OC por componente. Cantidades <= 0 se ignoran.
func SumOpenPurchaseOrders(lines []entity.PurchaseOrderLine) map[string]float64 {
	out := make(map[string]float64)
	for _, po := range lines {
		if po.OpenQty <= 0 {
			continue
		}
		part := NormalizePart(po.PartNumber)
		if part == "" {
			continue
		}
		out[part] += po.OpenQty
	}
	return out
}

// SumFinishedGoods agrega la existencia de producto terminado por parte (aprobado / pendiente QC).
func SumFinishedGoods(rows []entity.FinishedGoodRow) map[string]entity.FinishedGoodStock {
	out := make(map[string]entity.FinishedGoodStock)
	for _, row := range rows {
		part := NormalizePart(row.PartNumber)
		if part == "" {
			continue
		}
		fg := out[part]
		approved := nonNegative(row.Approved)
		pending := nonNegative(row.PendingQC)
		fg.Approved += approved
		fg.PendingQC += pending
		fg.Total += approved + pending
		out[part] = fg
	}
	return out
}

// demandIndex lookups construidos una vez por corrida.
type demandIndex struct {
	bomByParent   map[string][]entity.BOMLine
	openPO        map[string]float64
	stock         map[string]entity.ComponentStock
	finishedGoods map[string]entity.FinishedGoodStock
}

func buildIndex(in Input) *demandIndex {
	return &demandIndex{
		bomByParent:   GroupBOMByParent(in.BOM),
		openPO:        SumOpenPurchaseOrders(in.PurchaseOrders),
		stock:         NormalizeInventory(in.Inventory),
		finishedGoods: SumFinishedGoods(in.FinishedGoods),
	}
}
