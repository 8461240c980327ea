package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/production-portal/internal/application/dto"
	appmrp "github.com/jhoicas/production-portal/internal/application/mrp"
	"github.com/jhoicas/production-portal/internal/domain"
	"github.com/jhoicas/production-portal/internal/domain/entity"
	"github.com/jhoicas/production-portal/pkg/logger"
)

// MRPRunner contrato que el handler necesita; lo implementa *mrp.RunUseCase.
type MRPRunner interface {
	Run(ctx context.Context, filter appmrp.Filter) (*appmrp.Report, error)
	ExportXLSX(ctx context.Context, filter appmrp.Filter) ([]byte, string, error)
	ReportPDF(ctx context.Context, filter appmrp.Filter) ([]byte, string, error)
}

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MRPHandler maneja las peticiones HTTP de planeación de materiales (protegido).
type MRPHandler struct {
	uc  MRPRunner
	log *logger.Logger
}

// NewMRPHandler construye el handler.
func NewMRPHandler(uc MRPRunner, log *logger.Logger) *MRPHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &MRPHandler{uc: uc, log: log.Component("http.mrp")}
}

// Run godoc
// @Summary      Ejecutar corrida MRP
// @Description  Asigna inventario de componentes a las SO abiertas por fecha de entrega
//
//	y devuelve la sugerencia de producción por línea.
//
// @Tags         mrp
// @Security     Bearer
// @Produce      json
// @Param        bu        query  string  false  "Unidad de negocio (SP, BPS)"
// @Param        customer  query  string  false  "Cliente"
// @Param        due_ship  query  string  false  "Mes de entrega MM/YYYY"
// @Param        status    query  string  false  "ready-to-ship | production-needed | action-required | estado"
// @Success      200  {object}  dto.MRPRunResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/mrp [get]
func (h *MRPHandler) Run(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	report, err := h.uc.Run(c.UserContext(), filter)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(toRunResponse(report))
}

// ExportXLSX godoc
// @Summary      Exportar corrida MRP a Excel
// @Tags         mrp
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        bu        query  string  false  "Unidad de negocio"
// @Param        customer  query  string  false  "Cliente"
// @Param        due_ship  query  string  false  "Mes de entrega MM/YYYY"
// @Param        status    query  string  false  "Grupo o estado"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/mrp/export.xlsx [get]
func (h *MRPHandler) ExportXLSX(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	data, name, err := h.uc.ExportXLSX(c.UserContext(), filter)
	if err != nil {
		return h.writeError(c, err)
	}
	return sendFile(c, contentTypeXLSX, name, data)
}

// ReportPDF godoc
// @Summary      Reporte de faltantes MRP en PDF
// @Tags         mrp
// @Security     Bearer
// @Produce      application/pdf
// @Param        bu        query  string  false  "Unidad de negocio"
// @Param        customer  query  string  false  "Cliente"
// @Param        due_ship  query  string  false  "Mes de entrega MM/YYYY"
// @Param        status    query  string  false  "Grupo o estado"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/mrp/report.pdf [get]
func (h *MRPHandler) ReportPDF(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	data, name, err := h.uc.ReportPDF(c.UserContext(), filter)
	if err != nil {
		return h.writeError(c, err)
	}
	return sendFile(c, "application/pdf", name, data)
}

// writeError traduce los errores de dominio a códigos HTTP.
func (h *MRPHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, domain.ErrMalformedData):
		h.log.Warn().Err(err).Msg("dato mal formado en el ERP")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MALFORMED_DATA", Message: err.Error()})
	case errors.Is(err, domain.ErrDataSource):
		h.log.Error().Err(err).Msg("fuente de datos MRP")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ERP_UNAVAILABLE", Message: "no se pudo consultar el ERP, intente más tarde"})
	}
	h.log.Error().Err(err).Msg("corrida MRP")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func parseFilter(c *fiber.Ctx) (appmrp.Filter, error) {
	var q dto.MRPQuery
	if err := c.QueryParser(&q); err != nil {
		return appmrp.Filter{}, err
	}
	return appmrp.Filter{
		BusinessUnit: q.BusinessUnit,
		Customer:     q.Customer,
		DueShip:      q.DueShip,
		Status:       q.Status,
	}, nil
}

func sendFile(c *fiber.Ctx, contentType, name string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(data)
}

// ── Mapeo a DTO ───────────────────────────────────────────────────────────────

func toRunResponse(r *appmrp.Report) dto.MRPRunResponse {
	results := make([]dto.MRPResultDTO, 0, len(r.Results))
	for i := range r.Results {
		results = append(results, toResultDTO(&r.Results[i]))
	}
	s := r.Summary
	return dto.MRPRunResponse{
		RunID:                 r.RunID,
		GeneratedAt:           r.GeneratedAt,
		AllocateFinishedGoods: r.AllocateFinishedGoods,
		TotalRows:             r.TotalResults,
		Summary: dto.MRPSummaryDTO{
			Visible:              s.Visible,
			ReadyToShip:          s.ReadyToShip,
			PendingQC:            s.PendingQC,
			PartialShipPendingQC: s.PartialShipPendingQC,
			OK:                   s.OK,
			Partial:              s.Partial,
			Critical:             s.Critical,
			ShortageValue:        s.ShortageValue,
		},
		Filters: dto.MRPFilterOptionsDTO{
			BusinessUnits: nonNil(r.FilterOptions.BusinessUnits),
			Customers:     nonNil(r.FilterOptions.Customers),
			DueShipMonths: nonNil(r.FilterOptions.DueShipMonths),
		},
		Results: results,
	}
}

func toResultDTO(r *entity.OrderResult) dto.MRPResultDTO {
	so := &r.Order
	comps := make([]dto.MRPComponentDTO, 0, len(r.Components))
	for _, c := range r.Components {
		shared := make([]dto.MRPSharedAllocDTO, 0, len(c.SharedWith))
		for _, s := range c.SharedWith {
			shared = append(shared, dto.MRPSharedAllocDTO{SalesOrder: s.SalesOrder, Quantity: s.Quantity})
		}
		comps = append(comps, dto.MRPComponentDTO{
			PartNumber:             c.PartNumber,
			Description:            c.Description,
			QtyPerUnit:             c.QtyPerUnit,
			TotalRequired:          c.TotalRequired,
			OnHandInitial:          c.OnHandInitial,
			OnHandPendingQC:        c.OnHandPendingQC,
			InventoryBeforeThisSO:  c.InventoryBeforeThisSO,
			AllocatedForThisSO:     c.AllocatedForThisSO,
			OpenPOQty:              c.OpenPOQty,
			TotalAvailableForSO:    c.TotalAvailableForSO,
			Shortfall:              c.Shortfall,
			TotalAllocatedToOthers: c.TotalAllocatedToOthers,
			SharedWith:             shared,
			SharedWithSummary:      c.SharedWithSummary,
		})
	}
	return dto.MRPResultDTO{
		SalesOrder:      so.SalesOrder,
		BillToPO:        so.BillToPO,
		OrderType:       so.OrderType,
		Facility:        so.Facility,
		BusinessUnit:    so.BusinessUnit,
		PartNumber:      so.PartNumber,
		Description:     so.Description,
		Customer:        so.Customer,
		DueToShip:       so.DueToShip,
		SalesRep:        so.SalesRep,
		ScheduleNote:    so.ScheduleNote,
		OrderedQty:      so.OrderedQty,
		OnHandApproved:  so.OnHandApproved,
		OnHandPendingQC: so.OnHandPendingQC,
		OnHandTotal:     so.OnHandTotal,
		NetQty:          so.NetQty,
		UnitPrice:       so.UnitPrice,
		ExtendedValue:   so.ExtendedValue(),
		CanProduceQty:   r.CanProduceQty,
		Bottleneck:      r.Bottleneck,
		ShiftsRequired:  r.ShiftsRequired,
		Status:          string(r.Status),
		Components:      comps,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
