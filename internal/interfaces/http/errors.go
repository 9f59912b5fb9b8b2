package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-health/internal/application/dto"
	"github.com/jhoicas/inventory-health/internal/domain"
)

// respondError traduce los errores de dominio a dto.ErrorResponse. Lo no reconocido es 500
// y se registra con el detalle; al cliente solo llega un mensaje genérico.
func respondError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidThresholds):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "INVALID_THRESHOLDS",
			Message: domain.ErrInvalidThresholds.Error(),
			Details: validationDetails(err),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// validationDetails extrae los mensajes unidos con errors.Join, sin el sentinel de cabecera.
func validationDetails(err error) []string {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return nil
	}
	var out []string
	for _, e := range joined.Unwrap() {
		if errors.Is(e, domain.ErrInvalidThresholds) {
			continue
		}
		out = append(out, e.Error())
	}
	return out
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
