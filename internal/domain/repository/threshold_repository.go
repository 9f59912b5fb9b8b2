package repository

import (
	"context"

	"github.com/jhoicas/inventory-health/internal/domain/movement"
)

// ThresholdRepository define el puerto de persistencia de los umbrales de planeación por empresa.
type ThresholdRepository interface {
	// Get devuelve (nil, nil) si la empresa aún no guardó umbrales.
	Get(ctx context.Context, companyID string) (*movement.PlanningThresholds, error)
	Save(ctx context.Context, companyID string, t movement.PlanningThresholds) error
}
