package inventory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-health/internal/domain"
	"github.com/jhoicas/inventory-health/internal/domain/movement"
	"github.com/jhoicas/inventory-health/internal/domain/repository"
)

// ThresholdUseCase lee, valida y guarda los umbrales de planeación por empresa.
type ThresholdUseCase struct {
	repo    repository.ThresholdRepository
	cache   ResponseCache
	metrics MetricsRecorder
	log     zerolog.Logger
}

// NewThresholdUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewThresholdUseCase(
	repo repository.ThresholdRepository,
	cache ResponseCache,
	metrics MetricsRecorder,
	log zerolog.Logger,
) *ThresholdUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &ThresholdUseCase{repo: repo, cache: cache, metrics: metrics, log: log}
}

// storedThresholds valor cacheado: nil = la empresa no tiene configuración.
type storedThresholds struct {
	t *movement.PlanningThresholds
}

// Get devuelve los umbrales de la empresa o DefaultThresholds si no hay configuración
// (isDefault = true). No valida: un valor guardado inválido se devuelve tal cual.
func (uc *ThresholdUseCase) Get(ctx context.Context, companyID string) (t movement.PlanningThresholds, isDefault bool, err error) {
	if companyID == "" {
		return movement.PlanningThresholds{}, false, domain.ErrInvalidInput
	}
	stored, err := readThrough(uc.cache, uc.metrics, "thresholds",
		cacheKey(cacheThresholds, companyID, nil),
		func() (storedThresholds, error) {
			got, err := uc.repo.Get(ctx, companyID)
			if err != nil {
				return storedThresholds{}, fmt.Errorf("thresholds: obtener: %w", err)
			}
			return storedThresholds{t: got}, nil
		})
	if err != nil {
		return movement.PlanningThresholds{}, false, err
	}
	if stored.t == nil {
		return movement.DefaultThresholds, true, nil
	}
	return *stored.t, false, nil
}

// Validate ejecuta el validador sin efectos secundarios.
func (uc *ThresholdUseCase) Validate(t movement.PlanningThresholds) movement.ValidationResult {
	return movement.ValidateThresholds(t)
}

// Update valida y guarda. Si la validación falla devuelve el resultado completo junto con
// domain.ErrInvalidThresholds y no persiste nada.
func (uc *ThresholdUseCase) Update(ctx context.Context, companyID string, t movement.PlanningThresholds) (movement.ValidationResult, error) {
	if companyID == "" {
		return movement.ValidationResult{}, domain.ErrInvalidInput
	}
	res := movement.ValidateThresholds(t)
	if !res.Valid {
		return res, res.Err()
	}
	if err := uc.repo.Save(ctx, companyID, t); err != nil {
		return res, fmt.Errorf("thresholds: guardar: %w", err)
	}
	if uc.cache != nil {
		n := uc.cache.InvalidatePrefix(companyPrefix(cacheThresholds, companyID))
		uc.log.Debug().Str("company_id", companyID).Int("entries", n).Msg("caché de umbrales invalidada")
	}
	uc.log.Info().
		Str("company_id", companyID).
		Int("slow_moving_days", t.SlowMovingDays).
		Int("non_moving_days", t.NonMovingDays).
		Msg("umbrales de planeación actualizados")
	return res, nil
}
