package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-health/internal/application/dto"
	"github.com/jhoicas/inventory-health/internal/application/inventory"
)

// HealthHandler salud del inventario: clasificación en lote y reporte PDF.
type HealthHandler struct {
	uc     *inventory.HealthUseCase
	report *inventory.ReportUseCase
	log    zerolog.Logger
}

// NewHealthHandler construye el handler.
func NewHealthHandler(uc *inventory.HealthUseCase, report *inventory.ReportUseCase, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{uc: uc, report: report, log: log}
}

// Classify godoc
// @Summary      Clasificación de salud por SKU
// @Description  NEW, NON_MOVING, SLOW_MOVING o ACTIVE por SKU, con el resumen por estado.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Bodega (UUID). Vacío = stock global."
// @Param        status        query  string  false  "Filtrar por estado"
// @Success      200  {object}  dto.HealthReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse  "umbrales guardados inválidos"
// @Router       /api/inventory/health [get]
func (h *HealthHandler) Classify(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.HealthRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	status, err := inventory.ParseStatus(in.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	report, err := h.uc.Classify(c.Context(), companyID, in.WarehouseID, status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toHealthReportDTO(report))
}

// Report godoc
// @Summary      Reporte PDF de salud de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        warehouse_id  query  string  false  "Bodega (UUID). Vacío = stock global."
// @Success      200  {file}    binary
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory/health/report [get]
func (h *HealthHandler) Report(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	pdfBytes, filename, err := h.report.DownloadHealthReport(c.Context(), companyID, GetCompanyName(c), c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Refresh godoc
// @Summary      Descartar posiciones cacheadas de la empresa
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/inventory/health/refresh [post]
func (h *HealthHandler) Refresh(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	return c.JSON(fiber.Map{"invalidated": h.uc.InvalidatePositions(companyID)})
}
