// Package mrp contiene el motor de planificación de requerimientos de materiales:
// normalización de inventario, índices de demanda, priorización de órdenes,
// asignación secuencial de componentes y estimación de turnos.
//
// El motor es puro: recibe los datos ya consultados y no hace I/O durante la asignación.
package mrp

import (
	"slices"
	"strings"

	"github.com/jhoicas/production-portal/internal/domain/entity"
)

// NormalizePart devuelve la clave de comparación de un número de parte.
// El ERP rellena con espacios algunos códigos (CHAR), lo que generaba claves duplicadas.
func NormalizePart(part string) string {
	return strings.TrimSpace(part)
}

// NormalizeQCStatus traduce el código de QC del ERP a uno de los estados de entity.
// Vacío o desconocido se considera aprobado.
func NormalizeQCStatus(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	for status, codes := range entity.QCStatusCodes {
		if slices.Contains(codes, c) {
			return status
		}
	}
	return entity.QCStatusApproved
}

// NormalizeInventory agrupa las filas crudas por número de parte y estado de QC.
// Las cantidades del mismo parte/estado se suman; las negativas cuentan como 0.
func NormalizeInventory(rows []entity.InventoryRow) map[string]entity.ComponentStock {
	out := make(map[string]entity.ComponentStock, len(rows))
	for _, row := range rows {
		part := NormalizePart(row.PartNumber)
		if part == "" {
			continue
		}
		qty := nonNegative(row.Quantity)
		stock := out[part]
		switch NormalizeQCStatus(row.QCStatus) {
		case entity.QCStatusPendingQC:
			stock.PendingQC += qty
		case entity.QCStatusQuarantine:
			stock.Quarantine += qty
		case entity.QCStatusIssued:
			stock.Issued += qty
		case entity.QCStatusStaged:
			stock.Staged += qty
		default:
			stock.Approved += qty
		}
		stock.Total += qty
		out[part] = stock
	}
	return out
}

func nonNegative(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}
