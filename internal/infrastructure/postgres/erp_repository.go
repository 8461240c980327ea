package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/production-portal/internal/domain"
	"github.com/jhoicas/production-portal/internal/domain/entity"
	"github.com/jhoicas/production-portal/internal/domain/repository"
)

var _ repository.ERPRepository = (*ERPRepo)(nil)

// ERPQueryOptions filtros fijos que aplica el adaptador a las consultas del ERP.
type ERPQueryOptions struct {
	FGPartPrefix string   // prefijo de las partes de producto terminado (ej. "T")
	Warehouses   []string // bodegas cuyo producto terminado cuenta como existencia
}

// ERPRepo implementación de ERPRepository sobre la réplica de reportes del ERP (solo lectura).
type ERPRepo struct {
	q    Querier
	opts ERPQueryOptions
}

// NewERPRepository construye el adaptador del ERP. Pasar pool o tx (Querier).
func NewERPRepository(q Querier, opts ERPQueryOptions) *ERPRepo {
	if opts.FGPartPrefix == "" {
		opts.FGPartPrefix = "T"
	}
	return &ERPRepo{q: q, opts: opts}
}

// OpenOrderSchedule obtiene las líneas de SO abiertas (última revisión de cada orden, sin embarcar).
func (r *ERPRepo) OpenOrderSchedule(ctx context.Context) ([]entity.SalesOrderLine, error) {
	query := `
		WITH latest_order AS (
			SELECT to_id, to_ordnum, to_ordtype, to_billpo, to_waid, to_biid, to_s1id, to_dueship,
			       ROW_NUMBER() OVER (PARTITION BY to_ordnum ORDER BY to_id DESC) AS rn
			FROM dttord
			WHERE to_ordtype IN ('s', 'h', 'd', 'm', 'l')
		),
		open_orders AS (
			SELECT * FROM latest_order
			WHERE rn = 1 AND to_ordtype IN ('s', 'h', 'm', 'l')
			  AND to_ordnum IN (SELECT to_ordnum FROM dttord WHERE to_shipped IS NULL)
		),
		risk AS (
			SELECT d2.d2_recid AS to_id,
			       MAX(CASE WHEN d1.d1_name = 'Can Make - No Risk' THEN d2.d2_value END) AS no_risk,
			       MAX(CASE WHEN d1.d1_name = 'Low Risk' THEN d2.d2_value END) AS low_risk,
			       MAX(CASE WHEN d1.d1_name = 'High Risk' THEN d2.d2_value END) AS high_risk,
			       MAX(CASE WHEN d1.d1_name = 'Schedule Note' THEN d2.d2_value END) AS schedule_note,
			       MAX(CASE WHEN d1.d1_name = 'Production Line' THEN d2.d2_value END) AS production_line
			FROM dtd2 d2
			JOIN dmd1 d1 ON d2.d2_d1id = d1.d1_id
			WHERE d1.d1_table = 'dttord'
			GROUP BY d2.d2_recid
		)
		SELECT
			oo.to_ordnum::text,
			COALESCE(oo.to_billpo, ''),
			CASE oo.to_ordtype
				WHEN 's' THEN 'Sales Order'
				WHEN 'h' THEN 'Credit Hold'
				WHEN 'm' THEN 'ICT Order'
				WHEN 'l' THEN 'On Hold Order'
				ELSE 'Other'
			END,
			COALESCE(wa.wa_name, 'N/A'),
			CASE WHEN ca.ca_name = 'Stick Pack' THEN 'SP' ELSE 'BPS' END,
			p.pr_codenum,
			COALESCE(p.pr_descrip, ''),
			COALESCE(p1.p1_name, 'N/A'),
			o.or_quant,
			COALESCE(orig.or_quant, o.or_quant),
			COALESCE(o.or_price, 0),
			COALESCE(to_char(oo.to_dueship, 'MM/DD/YYYY'), ''),
			COALESCE(sm.sm_lname, 'N/A'),
			rd.no_risk, rd.low_risk, rd.high_risk,
			COALESCE(rd.schedule_note, ''),
			COALESCE(rd.production_line, '')
		FROM open_orders oo
		JOIN dtord o ON o.or_ordnum = oo.to_ordnum AND o.or_toid = oo.to_id
		JOIN dmprod p ON o.or_prid = p.pr_id
		LEFT JOIN dtord orig ON orig.or_ordnum = oo.to_ordnum - (oo.to_ordnum % 100) AND orig.or_prid = o.or_prid
		LEFT JOIN dmpr1 p1 ON p.pr_user5 = p1.p1_id
		LEFT JOIN dmcats ca ON p.pr_caid = ca.ca_id
		LEFT JOIN dmware wa ON oo.to_waid = wa.wa_id
		LEFT JOIN dmsman sm ON oo.to_s1id = sm.sm_id
		LEFT JOIN risk rd ON rd.to_id = oo.to_id
		WHERE p.pr_codenum LIKE $1 || '%'
		ORDER BY oo.to_ordnum, o.or_id`
	rows, err := r.q.Query(ctx, query, r.opts.FGPartPrefix)
	if err != nil {
		return nil, fmt.Errorf("open order schedule: %w", err)
	}
	defer rows.Close()

	var list []entity.SalesOrderLine
	for rows.Next() {
		var so entity.SalesOrderLine
		var ordered, original decimal.Decimal
		var noRisk, lowRisk, highRisk *string
		if err := rows.Scan(
			&so.SalesOrder, &so.BillToPO, &so.OrderType, &so.Facility, &so.BusinessUnit,
			&so.PartNumber, &so.Description, &so.Customer,
			&ordered, &original, &so.UnitPrice, &so.DueToShip, &so.SalesRep,
			&noRisk, &lowRisk, &highRisk, &so.ScheduleNote, &so.ProductionLine,
		); err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		so.OrderedQty = ordered.InexactFloat64()
		so.OriginalQty = original.InexactFloat64()
		if so.NoRiskQty, err = parseRiskQty(so.SalesOrder, "no risk", noRisk); err != nil {
			return nil, err
		}
		if so.LowRiskQty, err = parseRiskQty(so.SalesOrder, "low risk", lowRisk); err != nil {
			return nil, err
		}
		if so.HighRiskQty, err = parseRiskQty(so.SalesOrder, "high risk", highRisk); err != nil {
			return nil, err
		}
		list = append(list, so)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("open order schedule rows: %w", err)
	}
	return list, nil
}

// BOMLines obtiene las listas de materiales activas de todas las partes de producto terminado.
func (r *ERPRepo) BOMLines(ctx context.Context) ([]entity.BOMLine, error) {
	query := `
		SELECT parent.pr_codenum, comp.pr_codenum, COALESCE(comp.pr_descrip, ''),
		       b.bo_quant, COALESCE(b.bo_scrap, 0)
		FROM dmbom b
		JOIN dmprod parent ON b.bo_prid = parent.pr_id
		JOIN dmprod comp ON b.bo_cpid = comp.pr_id
		WHERE parent.pr_codenum LIKE $1 || '%'
		ORDER BY parent.pr_codenum, b.bo_seq, b.bo_id`
	rows, err := r.q.Query(ctx, query, r.opts.FGPartPrefix)
	if err != nil {
		return nil, fmt.Errorf("bom lines: %w", err)
	}
	defer rows.Close()

	var list []entity.BOMLine
	for rows.Next() {
		var b entity.BOMLine
		var qtyPer, scrap decimal.Decimal
		if err := rows.Scan(&b.ParentPart, &b.ComponentPart, &b.Description, &qtyPer, &scrap); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		b.QtyPer = qtyPer.InexactFloat64()
		b.ScrapPct = scrap.InexactFloat64()
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bom lines rows: %w", err)
	}
	return list, nil
}

// OpenPurchaseOrders obtiene la cantidad pendiente de recibir por línea de OC abierta.
func (r *ERPRepo) OpenPurchaseOrders(ctx context.Context) ([]entity.PurchaseOrderLine, error) {
	query := `
		SELECT po.po_ponum::text, p.pr_codenum, pl.pl_quant - COALESCE(pl.pl_recvd, 0)
		FROM dtpo po
		JOIN dtpol pl ON pl.pl_poid = po.po_id
		JOIN dmprod p ON pl.pl_prid = p.pr_id
		WHERE po.po_closed IS NULL
		  AND pl.pl_quant - COALESCE(pl.pl_recvd, 0) > 0
		ORDER BY po.po_ponum, pl.pl_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("open purchase orders: %w", err)
	}
	defer rows.Close()

	var list []entity.PurchaseOrderLine
	for rows.Next() {
		var po entity.PurchaseOrderLine
		var open decimal.Decimal
		if err := rows.Scan(&po.PONumber, &po.PartNumber, &open); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		po.OpenQty = open.InexactFloat64()
		list = append(list, po)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("open purchase orders rows: %w", err)
	}
	return list, nil
}

// RawMaterialInventory obtiene el saldo de componentes por número de parte y estado de QC.
func (r *ERPRepo) RawMaterialInventory(ctx context.Context) ([]entity.InventoryRow, error) {
	query := `
		SELECT p.pr_codenum, SUM(f.fi_balance), COALESCE(f.fi_qcstat, '')
		FROM dtfifo f
		JOIN dmprod p ON f.fi_prid = p.pr_id
		WHERE f.fi_balance <> 0
		  AND p.pr_codenum NOT LIKE $1 || '%'
		GROUP BY p.pr_codenum, f.fi_qcstat
		ORDER BY p.pr_codenum`
	rows, err := r.q.Query(ctx, query, r.opts.FGPartPrefix)
	if err != nil {
		return nil, fmt.Errorf("raw material inventory: %w", err)
	}
	defer rows.Close()

	var list []entity.InventoryRow
	for rows.Next() {
		var row entity.InventoryRow
		var qty decimal.Decimal
		if err := rows.Scan(&row.PartNumber, &qty, &row.QCStatus); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		row.Quantity = qty.InexactFloat64()
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("raw material inventory rows: %w", err)
	}
	return list, nil
}

// FinishedGoodInventory obtiene la existencia de producto terminado en las bodegas configuradas.
func (r *ERPRepo) FinishedGoodInventory(ctx context.Context) ([]entity.FinishedGoodRow, error) {
	query := `
		SELECT p.pr_codenum,
		       COALESCE(SUM(f.fi_balance) FILTER (WHERE UPPER(TRIM(COALESCE(f.fi_qcstat, ''))) <> ALL($3)), 0),
		       COALESCE(SUM(f.fi_balance) FILTER (WHERE UPPER(TRIM(COALESCE(f.fi_qcstat, ''))) = ANY($4)), 0)
		FROM dtfifo f
		JOIN dmprod p ON f.fi_prid = p.pr_id
		JOIN dmware w ON f.fi_waid = w.wa_id
		WHERE f.fi_balance > 0
		  AND p.pr_codenum LIKE $1 || '%'
		  AND w.wa_name = ANY($2)
		GROUP BY p.pr_codenum
		ORDER BY p.pr_codenum`
	notApproved, pending := finishedGoodQCCodes()
	rows, err := r.q.Query(ctx, query, r.opts.FGPartPrefix, r.opts.Warehouses, notApproved, pending)
	if err != nil {
		return nil, fmt.Errorf("finished good inventory: %w", err)
	}
	defer rows.Close()

	var list []entity.FinishedGoodRow
	for rows.Next() {
		var fg entity.FinishedGoodRow
		var approved, pending decimal.Decimal
		if err := rows.Scan(&fg.PartNumber, &approved, &pending); err != nil {
			return nil, fmt.Errorf("scan finished good: %w", err)
		}
		fg.Approved = approved.InexactFloat64()
		fg.PendingQC = pending.InexactFloat64()
		list = append(list, fg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("finished good inventory rows: %w", err)
	}
	return list, nil
}

// finishedGoodQCCodes códigos que excluyen la existencia de producto terminado del aprobado
// y códigos que la cuentan como pendiente de QC. Cuarentena, entregado y en staging no
// cuentan en ninguno de los dos.
func finishedGoodQCCodes() (notApproved, pending []string) {
	return entity.NonApprovedQCCodes(), entity.QCStatusCodes[entity.QCStatusPendingQC]
}

// parseRiskQty interpreta un campo de riesgo capturado como texto libre en el ERP.
// Vacío o nulo = 0; cualquier otro valor no numérico invalida la corrida.
func parseRiskQty(salesOrder, field string, raw *string) (float64, error) {
	if raw == nil {
		return 0, nil
	}
	v, ok := domain.ParseQuantity(*raw)
	if !ok {
		return 0, fmt.Errorf("SO %s campo %s %q: %w", salesOrder, field, strings.TrimSpace(*raw), domain.ErrMalformedData)
	}
	return v, nil
}
