package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-health/internal/application/dto"
	"github.com/jhoicas/inventory-health/internal/application/inventory"
)

// ShipmentHandler filas de envíos y conciliación de cantidades.
type ShipmentHandler struct {
	uc  *inventory.ShipmentUseCase
	log zerolog.Logger
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(uc *inventory.ShipmentUseCase, log zerolog.Logger) *ShipmentHandler {
	return &ShipmentHandler{uc: uc, log: log}
}

// Rows godoc
// @Summary      Envíos aplanados a una fila por línea
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        sort    query  string  false  "Campo (snake_case o camelCase). Desconocido = sin orden."
// @Param        order   query  string  false  "asc|desc"
// @Param        search  query  string  false  "Subcadena sin distinguir mayúsculas"
// @Param        items   query  string  false  "all (default) | none"
// @Param        limit   query  int     false  "Default 50, máx 500"
// @Param        offset  query  int     false  "Default 0"
// @Success      200  {object}  dto.ShipmentRowsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/shipments/rows [get]
func (h *ShipmentHandler) Rows(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.ShipmentRowsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	var withItems bool
	switch strings.ToLower(strings.TrimSpace(in.Items)) {
	case "", "all":
		withItems = true
	case "none":
		withItems = false
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items debe ser all o none"})
	}

	rows, err := h.uc.ListRows(c.Context(), companyID, inventory.RowsQuery{
		Sort:      in.Sort,
		Order:     in.Order,
		Search:    in.Search,
		WithItems: withItems,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	page := in.Page()
	start := min(page.Offset, len(rows))
	end := min(start+page.Limit, len(rows))
	out := make([]dto.ShipmentRowDTO, 0, end-start)
	for _, r := range rows[start:end] {
		out = append(out, toShipmentRowDTO(r))
	}
	return c.JSON(dto.ShipmentRowsResponse{
		Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(rows)},
		Rows: out,
	})
}

// Reconcile godoc
// @Summary      Calcular disponible para un conjunto de conteos
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LineQuantitiesRequest  true  "conteos"
// @Success      200   {object}  dto.ReconciliationDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shipments/reconcile [post]
func (h *ShipmentHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.LineQuantitiesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return c.JSON(toReconciliationDTO(h.uc.Reconcile(fromLineQuantitiesRequest(in))))
}

// UpdateLine godoc
// @Summary      Corregir los conteos de una línea
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        recordId  path  string                     true  "envío"
// @Param        itemId    path  string                     true  "línea"
// @Param        body      body  dto.LineQuantitiesRequest  true  "conteos"
// @Success      200   {object}  dto.ReconciliationDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shipments/{recordId}/items/{itemId} [patch]
func (h *ShipmentHandler) UpdateLine(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.LineQuantitiesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	rec, err := h.uc.UpdateLineQuantities(c.Context(), companyID, c.Params("recordId"), c.Params("itemId"), fromLineQuantitiesRequest(in))
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Str("user_id", GetUserID(c)).Str("record_id", c.Params("recordId")).
		Str("item_id", c.Params("itemId")).Msg("línea de envío corregida")
	return c.JSON(toReconciliationDTO(rec))
}
