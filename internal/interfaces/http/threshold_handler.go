package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-health/internal/application/dto"
	"github.com/jhoicas/inventory-health/internal/application/inventory"
	"github.com/jhoicas/inventory-health/internal/domain"
)

// ThresholdHandler umbrales de planeación de la empresa del token.
type ThresholdHandler struct {
	uc  *inventory.ThresholdUseCase
	log zerolog.Logger
}

// NewThresholdHandler construye el handler.
func NewThresholdHandler(uc *inventory.ThresholdUseCase, log zerolog.Logger) *ThresholdHandler {
	return &ThresholdHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Umbrales de planeación vigentes
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ThresholdsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/thresholds [get]
func (h *ThresholdHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	t, isDefault, err := h.uc.Get(c.Context(), companyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ThresholdsResponse{Thresholds: toThresholdsDTO(t), IsDefault: isDefault})
}

// Update godoc
// @Summary      Guardar umbrales de planeación (solo admin)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ThresholdsDTO  true  "umbrales"
// @Success      200   {object}  dto.ThresholdsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse  "details = todos los errores de validación en orden"
// @Router       /api/inventory/thresholds [put]
func (h *ThresholdHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.ThresholdsDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	t := fromThresholdsDTO(in)
	res, err := h.uc.Update(c.Context(), companyID, t)
	if err != nil {
		if !res.Valid && len(res.Errors) > 0 {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Code:    "INVALID_THRESHOLDS",
				Message: domain.ErrInvalidThresholds.Error(),
				Details: res.Errors,
			})
		}
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ThresholdsResponse{Thresholds: toThresholdsDTO(t), IsDefault: false})
}

// Validate godoc
// @Summary      Validar umbrales sin guardarlos
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ThresholdsDTO  true  "umbrales"
// @Success      200   {object}  dto.ThresholdValidationDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/thresholds/validate [post]
func (h *ThresholdHandler) Validate(c *fiber.Ctx) error {
	var in dto.ThresholdsDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return c.JSON(toValidationDTO(h.uc.Validate(fromThresholdsDTO(in))))
}
