package domain

import (
	"errors"

	"github.com/jhoicas/inventory-health/internal/domain/movement"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrInvalidThresholds umbrales de planeación que no pasan la validación.
	ErrInvalidThresholds = movement.ErrInvalidThresholds
)
