// Package xlsx genera la hoja de cálculo de una corrida MRP con excelize.
// Hoja "MRP": una fila por línea de SO. Hoja "Components": una fila por componente de cada SO.
package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	appmrp "github.com/jhoicas/production-portal/internal/application/mrp"
	"github.com/jhoicas/production-portal/internal/domain/entity"
)

// Nombres de hoja.
const (
	SheetMRP        = "MRP"
	SheetComponents = "Components"
)

var mrpHeaders = []string{
	"SO", "Part", "Description", "Customer", "BU", "Facility", "Due to Ship",
	"Ord Qty", "On Hand Approved", "On Hand Pending QC", "Net Qty",
	"Can Produce", "Bottleneck", "Shifts Required", "Status", "Unit Price", "Ext $",
}

var mrpWidths = []float64{10, 14, 36, 28, 6, 12, 12, 12, 14, 14, 12, 12, 18, 10, 22, 10, 12}

var componentHeaders = []string{
	"SO", "Parent Part", "Component", "Description", "Qty/Unit", "Total Required",
	"On Hand Initial", "Pending QC", "Inventory Before SO", "Allocated", "Open PO",
	"Total Available", "Shortfall", "Allocated to Others", "Shared With",
}

var componentWidths = []float64{10, 14, 14, 32, 10, 14, 14, 12, 16, 12, 12, 14, 12, 16, 40}

// statusColors relleno de la celda de estado (mismos colores que la vista).
var statusColors = map[entity.OrderStatus]string{
	entity.StatusReadyToShip:          "#C6EFCE",
	entity.StatusPendingQC:            "#FFEB9C",
	entity.StatusPartialShipPendingQC: "#FFEB9C",
	entity.StatusOK:                   "#DDEBF7",
	entity.StatusPartial:              "#FCE4D6",
	entity.StatusCritical:             "#FFC7CE",
}

var _ appmrp.SpreadsheetExporter = (*Exporter)(nil)

// Exporter implementa mrp.SpreadsheetExporter.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ExportMRP genera el libro y devuelve sus bytes.
func (e *Exporter) ExportMRP(report *appmrp.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetMRP); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(SheetComponents); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeHeader(f, SheetMRP, mrpHeaders, mrpWidths, styles.header); err != nil {
		return nil, err
	}
	if err := writeHeader(f, SheetComponents, componentHeaders, componentWidths, styles.header); err != nil {
		return nil, err
	}

	compRow := 2
	for i, r := range report.Results {
		row := i + 2
		if err := writeOrderRow(f, row, &r, styles); err != nil {
			return nil, err
		}
		for _, c := range r.Components {
			if err := writeComponentRow(f, compRow, &r, &c, styles); err != nil {
				return nil, err
			}
			compRow++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	header int
	qty    int
	money  int
	wrap   int
	status map[entity.OrderStatus]int
}

func newStyles(f *excelize.File) (*sheetStyles, error) {
	s := &sheetStyles{status: map[entity.OrderStatus]int{}}
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	}); err != nil {
		return nil, fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}
	if s.qty, err = f.NewStyle(&excelize.Style{NumFmt: 4}); err != nil { // #,##0.00
		return nil, fmt.Errorf("xlsx: estilo cantidad: %w", err)
	}
	moneyFmt := "$#,##0.00"
	if s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt}); err != nil {
		return nil, fmt.Errorf("xlsx: estilo moneda: %w", err)
	}
	if s.wrap, err = f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}}); err != nil {
		return nil, fmt.Errorf("xlsx: estilo texto: %w", err)
	}
	for status, color := range statusColors {
		id, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return nil, fmt.Errorf("xlsx: estilo estado: %w", err)
		}
		s.status[status] = id
	}
	return s, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, widths []float64, style int) error {
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("xlsx: encabezado %s: %w", sheet, err)
		}
		_ = f.SetCellStyle(sheet, cell, cell, style)
		_ = f.SetColWidth(sheet, col, col, widths[i])
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeOrderRow(f *excelize.File, row int, r *entity.OrderResult, st *sheetStyles) error {
	so := &r.Order
	values := []interface{}{
		so.SalesOrder, so.PartNumber, so.Description, so.Customer, so.BusinessUnit, so.Facility, so.DueToShip,
		so.OrderedQty, so.OnHandApproved, so.OnHandPendingQC, so.NetQty,
		r.CanProduceQty, r.Bottleneck, r.ShiftsRequired, string(r.Status),
		so.UnitPrice.InexactFloat64(), so.ExtendedValue().InexactFloat64(),
	}
	start, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(SheetMRP, start, &values); err != nil {
		return fmt.Errorf("xlsx: fila SO %s: %w", so.SalesOrder, err)
	}
	_ = f.SetCellStyle(SheetMRP, cellName(8, row), cellName(12, row), st.qty)
	_ = f.SetCellStyle(SheetMRP, cellName(14, row), cellName(14, row), st.qty)
	_ = f.SetCellStyle(SheetMRP, cellName(16, row), cellName(17, row), st.money)
	if id, ok := st.status[r.Status]; ok {
		_ = f.SetCellStyle(SheetMRP, cellName(15, row), cellName(15, row), id)
	}
	return nil
}

func writeComponentRow(f *excelize.File, row int, r *entity.OrderResult, c *entity.ComponentDetail, st *sheetStyles) error {
	values := []interface{}{
		r.Order.SalesOrder, r.Order.PartNumber, c.PartNumber, c.Description,
		c.QtyPerUnit, c.TotalRequired, c.OnHandInitial, c.OnHandPendingQC, c.InventoryBeforeThisSO,
		c.AllocatedForThisSO, c.OpenPOQty, c.TotalAvailableForSO, c.Shortfall, c.TotalAllocatedToOthers,
		strings.Join(c.SharedWithSummary, "\n"),
	}
	start, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(SheetComponents, start, &values); err != nil {
		return fmt.Errorf("xlsx: componente %s de SO %s: %w", c.PartNumber, r.Order.SalesOrder, err)
	}
	_ = f.SetCellStyle(SheetComponents, cellName(5, row), cellName(14, row), st.qty)
	_ = f.SetCellStyle(SheetComponents, cellName(15, row), cellName(15, row), st.wrap)
	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
