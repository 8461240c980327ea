package mrp

import "context"

// SpreadsheetExporter genera la hoja de cálculo de una corrida MRP.
type SpreadsheetExporter interface {
	ExportMRP(report *Report) ([]byte, error)
}

// ReportPDFGenerator genera el reporte imprimible de faltantes de una corrida MRP.
type ReportPDFGenerator interface {
	GenerateMRPReport(ctx context.Context, report *Report) ([]byte, error)
}
