// Package mrp orquesta la corrida MRP: consulta en bloque el ERP y la capacidad local,
// ejecuta el motor de asignación y arma el reporte filtrado para la vista y las exportaciones.
package mrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/production-portal/internal/domain"
	"github.com/jhoicas/production-portal/internal/domain/entity"
	mrpengine "github.com/jhoicas/production-portal/internal/domain/mrp"
	"github.com/jhoicas/production-portal/internal/domain/repository"
	"github.com/jhoicas/production-portal/pkg/logger"
)

// Config ajustes del caso de uso.
type Config struct {
	AllocateFinishedGoods bool
	FetchTimeout          time.Duration // 0 = sin límite aparte del contexto
}

// RunUseCase ejecuta corridas MRP. Cada corrida lee datos frescos; no se guarda estado entre corridas.
type RunUseCase struct {
	erp         repository.ERPRepository
	capacity    repository.CapacityRepository
	engine      *mrpengine.Engine
	spreadsheet SpreadsheetExporter
	pdf         ReportPDFGenerator
	log         *logger.Logger
	cfg         Config

	now   func() time.Time
	newID func() string
}

// NewRunUseCase construye el caso de uso inyectando sus dependencias.
// spreadsheet y pdf pueden ser nil si la exportación correspondiente no se usa.
func NewRunUseCase(
	erp repository.ERPRepository,
	capacity repository.CapacityRepository,
	spreadsheet SpreadsheetExporter,
	pdf ReportPDFGenerator,
	log *logger.Logger,
	cfg Config,
) *RunUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RunUseCase{
		erp:         erp,
		capacity:    capacity,
		engine:      mrpengine.NewEngine(mrpengine.Options{AllocateFinishedGoods: cfg.AllocateFinishedGoods}),
		spreadsheet: spreadsheet,
		pdf:         pdf,
		log:         log.Component("mrp"),
		cfg:         cfg,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Run consulta los datos, ejecuta el motor y devuelve el reporte filtrado.
//
// Retorna:
//   - domain.ErrInvalidInput  si el filtro no es válido.
//   - domain.ErrDataSource    si falla alguna consulta (envuelve la causa).
//   - domain.ErrMalformedData si llega un valor numérico imposible de interpretar.
func (uc *RunUseCase) Run(ctx context.Context, filter Filter) (*Report, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	runID := uc.newID()
	log := uc.log.With().Str("run_id", runID).Logger()
	started := uc.now()
	log.Info().
		Bool("allocate_finished_goods", uc.cfg.AllocateFinishedGoods).
		Msg("corrida MRP iniciada")

	in, err := uc.fetch(ctx)
	if err != nil {
		log.Error().Err(err).Msg("consulta de datos MRP")
		return nil, err
	}
	log.Info().
		Int("orders", len(in.Orders)).
		Int("bom_lines", len(in.BOM)).
		Int("purchase_orders", len(in.PurchaseOrders)).
		Int("inventory_rows", len(in.Inventory)).
		Int("finished_goods", len(in.FinishedGoods)).
		Int("capacities", len(in.Capacities)).
		Msg("datos MRP consultados")

	log.Info().Int("orders", len(in.Orders)).Msg("iniciando asignación")
	results := uc.engine.Run(in)

	visible := make([]entity.OrderResult, 0, len(results))
	for i := range results {
		if filter.Matches(&results[i]) {
			visible = append(visible, results[i])
		}
	}

	report := &Report{
		RunID:                 runID,
		GeneratedAt:           started,
		AllocateFinishedGoods: uc.cfg.AllocateFinishedGoods,
		Filter:                filter,
		Summary:               summarize(visible),
		FilterOptions:         filterOptions(results),
		TotalResults:          len(results),
		Results:               visible,
	}

	all := summarize(results)
	log.Info().
		Dur("duration", uc.now().Sub(started)).
		Int("results", len(results)).
		Int("visible", len(visible)).
		Int("ready_to_ship", all.ReadyToShip).
		Int("pending_qc", all.PendingQC).
		Int("partial_ship_pending_qc", all.PartialShipPendingQC).
		Int("ok", all.OK).
		Int("partial", all.Partial).
		Int("critical", all.Critical).
		Msg("corrida MRP completada")
	return report, nil
}

// ExportXLSX ejecuta la corrida y devuelve la hoja de cálculo con su nombre de archivo.
func (uc *RunUseCase) ExportXLSX(ctx context.Context, filter Filter) ([]byte, string, error) {
	if uc.spreadsheet == nil {
		return nil, "", fmt.Errorf("mrp: exportación XLSX no configurada")
	}
	report, err := uc.Run(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.spreadsheet.ExportMRP(report)
	if err != nil {
		return nil, "", fmt.Errorf("mrp: generar XLSX: %w", err)
	}
	return data, fileName(report, "xlsx"), nil
}

// ReportPDF ejecuta la corrida y devuelve el reporte de faltantes en PDF.
func (uc *RunUseCase) ReportPDF(ctx context.Context, filter Filter) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("mrp: reporte PDF no configurado")
	}
	report, err := uc.Run(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.GenerateMRPReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("mrp: generar PDF: %w", err)
	}
	return data, fileName(report, "pdf"), nil
}

// fetch consulta en paralelo los seis conjuntos de datos. El primer error cancela el resto.
func (uc *RunUseCase) fetch(ctx context.Context) (mrpengine.Input, error) {
	if uc.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.FetchTimeout)
		defer cancel()
	}

	var in mrpengine.Input
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Orders, err = uc.erp.OpenOrderSchedule(gctx)
		return sourceErr("programación de órdenes", err)
	})
	g.Go(func() (err error) {
		in.BOM, err = uc.erp.BOMLines(gctx)
		return sourceErr("listas de materiales", err)
	})
	g.Go(func() (err error) {
		in.PurchaseOrders, err = uc.erp.OpenPurchaseOrders(gctx)
		return sourceErr("órdenes de compra", err)
	})
	g.Go(func() (err error) {
		in.Inventory, err = uc.erp.RawMaterialInventory(gctx)
		return sourceErr("inventario de materia prima", err)
	})
	g.Go(func() (err error) {
		in.FinishedGoods, err = uc.erp.FinishedGoodInventory(gctx)
		return sourceErr("producto terminado", err)
	})
	g.Go(func() (err error) {
		in.Capacities, err = uc.capacity.ListCapacities(gctx)
		return sourceErr("capacidad de líneas", err)
	})
	if err := g.Wait(); err != nil {
		return mrpengine.Input{}, err
	}
	return in, nil
}

// sourceErr envuelve la falla de una consulta en ErrDataSource.
// Los datos mal formados conservan su propio error.
func sourceErr(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMalformedData) {
		return fmt.Errorf("%s: %w", what, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrDataSource, what, err)
}

func fileName(r *Report, ext string) string {
	return fmt.Sprintf("mrp_%s.%s", r.GeneratedAt.Format("20060102_1504"), ext)
}
