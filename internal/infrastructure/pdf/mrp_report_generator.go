// Package pdf genera el reporte imprimible de faltantes de una corrida MRP.
//
// Layout de la página A4 horizontal:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Portal + título          │  Corrida + fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TARJETAS: conteo por estado + valor faltante               │
//	│  FILTROS aplicados                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA críticas: SO | Parte | Cliente | Neto | ... | Cuello │
//	│  TABLA parciales                                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COMPONENTES cuello de botella: SO afectadas + faltante     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appmrp "github.com/jhoicas/production-portal/internal/application/mrp"
	"github.com/jhoicas/production-portal/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite    = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorCritical = &props.Color{Red: 192, Green: 0, Blue: 0}
	colorPartial  = &props.Color{Red: 197, Green: 90, Blue: 17}
	colorLight    = &props.Color{Red: 242, Green: 242, Blue: 242}
)

var printer = message.NewPrinter(language.English)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appmrp.ReportPDFGenerator = (*MarotoMRPReportGenerator)(nil)

// MarotoMRPReportGenerator implementa mrp.ReportPDFGenerator usando Maroto v2.
type MarotoMRPReportGenerator struct {
	portalName string
}

// NewMarotoMRPReportGenerator construye el generador; portalName va en el encabezado.
func NewMarotoMRPReportGenerator(portalName string) *MarotoMRPReportGenerator {
	return &MarotoMRPReportGenerator{portalName: portalName}
}

// GenerateMRPReport genera el PDF y devuelve sus bytes.
func (g *MarotoMRPReportGenerator) GenerateMRPReport(ctx context.Context, report *appmrp.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("MRP Shortage Report", true).
		WithAuthor(g.portalName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(report.Summary)...)
	m.AddRows(filterRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	critical, partial := shortageOrders(report.Results)
	m.AddRows(orderSection("CRITICAL", colorCritical, critical)...)
	m.AddRows(row.New(3))
	m.AddRows(orderSection("PARTIAL", colorPartial, partial)...)

	m.AddRows(row.New(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(bottleneckSection(append(critical, partial...))...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: portal + título (izq) y corrida + fecha (der).
func (g *MarotoMRPReportGenerator) headerRow(report *appmrp.Report) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(g.portalName, "Production Portal"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("MRP SHORTAGE REPORT", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Run "+report.RunID, props.Text{
				Size: 7, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Generated: "+report.GeneratedAt.Format("01/02/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8,
			}),
		),
	)
}

// summaryRows: una tarjeta por estado más el valor faltante.
func summaryRows(s appmrp.Summary) []core.Row {
	card := func(label string, value string, color *props.Color) core.Col {
		return col.New(2).Add(
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: color, Top: 1,
			}),
			text.New(label, props.Text{
				Size: 7, Align: align.Center, Color: colorGray, Top: 9,
			}),
		)
	}
	count := func(n int) string { return printer.Sprintf("%d", n) }

	return []core.Row{
		row.New(15).Add(
			card("Visible rows", count(s.Visible), colorPrimary),
			card("Ready to ship", count(s.ReadyToShip), colorPrimary),
			card("Pending QC", count(s.PendingQC+s.PartialShipPendingQC), colorPrimary),
			card("OK", count(s.OK), colorPrimary),
			card("Partial", count(s.Partial), colorPartial),
			card("Critical", count(s.Critical), colorCritical),
		),
		row.New(6).Add(col.New(12).Add(
			text.New("Shortage value at sell price: $"+printer.Sprintf("%.2f", s.ShortageValue.InexactFloat64()), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
		)),
	}
}

// filterRow: filtros aplicados a la vista.
func filterRow(report *appmrp.Report) core.Row {
	f := report.Filter
	parts := []string{
		"BU: " + nonEmpty(f.BusinessUnit, "All"),
		"Customer: " + nonEmpty(f.Customer, "All"),
		"Due ship: " + nonEmpty(f.DueShip, "All"),
		"Status: " + nonEmpty(f.Status, "All"),
	}
	label := fmt.Sprintf("Filters   %s   |   Showing %d of %d rows",
		strings.Join(parts, "   |   "), report.Summary.Visible, report.TotalResults)
	if report.AllocateFinishedGoods {
		label += "   |   FG allocated by priority"
	}
	return row.New(6).Add(col.New(12).Add(
		text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
	))
}

var orderColumns = []struct {
	label string
	size  int
	align align.Type
}{
	{"SO", 1, align.Left},
	{"Part", 1, align.Left},
	{"Customer", 3, align.Left},
	{"Due", 1, align.Center},
	{"Net Qty", 1, align.Right},
	{"Can Produce", 1, align.Right},
	{"Bottleneck", 2, align.Left},
	{"Shortfall", 1, align.Right},
	{"Shifts", 1, align.Right},
}

// orderSection: título + cabecera + una fila por SO.
func orderSection(title string, color *props.Color, orders []entity.OrderResult) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s ORDERS (%d)", title, len(orders)), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: color, Top: 1,
			}),
		)),
	}
	if len(orders) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("No orders in this group.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}

	header := make([]core.Col, 0, len(orderColumns))
	for _, c := range orderColumns {
		header = append(header, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: c.align, Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	rows = append(rows, row.New(6).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(header...))

	for i := range orders {
		r := &orders[i]
		values := []string{
			r.Order.SalesOrder,
			r.Order.PartNumber,
			r.Order.Customer,
			nonEmpty(r.Order.DueToShip, "-"),
			qty(r.Order.NetQty),
			qty(r.CanProduceQty),
			r.Bottleneck,
			qty(bottleneckShortfall(r)),
			printer.Sprintf("%.1f", r.ShiftsRequired),
		}
		cols := make([]core.Col, 0, len(values))
		for j, v := range values {
			c := orderColumns[j]
			cols = append(cols, col.New(c.size).Add(text.New(v, props.Text{
				Size: 7, Align: c.align, Top: 1, Left: 1, Right: 1,
			})))
		}
		rr := row.New(5).Add(cols...)
		if i%2 == 1 {
			rr = rr.WithStyle(&props.Cell{BackgroundColor: colorLight})
		}
		rows = append(rows, rr)
	}
	return rows
}

// bottleneckSection: componentes que limitan más órdenes, con el faltante acumulado.
func bottleneckSection(orders []entity.OrderResult) []core.Row {
	type agg struct {
		part      string
		orders    int
		shortfall float64
	}
	byPart := map[string]*agg{}
	for i := range orders {
		r := &orders[i]
		if r.Bottleneck == "" || r.Bottleneck == entity.BottleneckNone {
			continue
		}
		a, ok := byPart[r.Bottleneck]
		if !ok {
			a = &agg{part: r.Bottleneck}
			byPart[r.Bottleneck] = a
		}
		a.orders++
		a.shortfall += bottleneckShortfall(r)
	}
	list := make([]*agg, 0, len(byPart))
	for _, a := range byPart {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].orders != list[j].orders {
			return list[i].orders > list[j].orders
		}
		return list[i].part < list[j].part
	})

	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("BOTTLENECK COMPONENTS", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	if len(list) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("No component shortages.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	for _, a := range list {
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(a.part, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(printer.Sprintf("%d orders", a.orders), props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New("Shortfall "+qty(a.shortfall), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// shortageOrders separa las órdenes críticas y parciales conservando el orden del reporte.
func shortageOrders(results []entity.OrderResult) (critical, partial []entity.OrderResult) {
	for _, r := range results {
		switch r.Status {
		case entity.StatusCritical:
			critical = append(critical, r)
		case entity.StatusPartial:
			partial = append(partial, r)
		}
	}
	return critical, partial
}

// bottleneckShortfall faltante del componente cuello de botella de la orden.
func bottleneckShortfall(r *entity.OrderResult) float64 {
	for _, c := range r.Components {
		if c.PartNumber == r.Bottleneck {
			return c.Shortfall
		}
	}
	return 0
}

func qty(v float64) string {
	return printer.Sprintf("%.2f", v)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
