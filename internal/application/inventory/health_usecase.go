package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-health/internal/domain"
	"github.com/jhoicas/inventory-health/internal/domain/movement"
	"github.com/jhoicas/inventory-health/internal/domain/repository"
)

// ClassifiedPosition una posición junto con su clasificación.
type ClassifiedPosition struct {
	Position movement.InventoryPosition
	Result   movement.ClassificationResult
}

// HealthReport resultado de clasificar todos los SKUs de una empresa (o bodega).
type HealthReport struct {
	RequestID   string
	GeneratedAt time.Time
	Thresholds  movement.PlanningThresholds
	Summary     map[movement.Status]int // conteo sobre todo el lote, antes de filtrar
	Items       []ClassifiedPosition
}

// HealthUseCase clasifica en lote la salud del inventario. Siempre valida los umbrales antes
// de clasificar: el clasificador no lo hace por sí mismo.
type HealthUseCase struct {
	positions  repository.InventoryPositionRepository
	thresholds *ThresholdUseCase
	classifier *movement.Classifier
	cache      ResponseCache
	metrics    MetricsRecorder
	log        zerolog.Logger
	now        func() time.Time
}

// NewHealthUseCase construye el caso de uso.
func NewHealthUseCase(
	positions repository.InventoryPositionRepository,
	thresholds *ThresholdUseCase,
	classifier *movement.Classifier,
	cache ResponseCache,
	metrics MetricsRecorder,
	log zerolog.Logger,
	now func() time.Time,
) *HealthUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if now == nil {
		now = time.Now
	}
	return &HealthUseCase{
		positions:  positions,
		thresholds: thresholds,
		classifier: classifier,
		cache:      cache,
		metrics:    metrics,
		log:        log,
		now:        now,
	}
}

// ParseStatus convierte el filtro de la petición. Vacío = sin filtro.
func ParseStatus(s string) (movement.Status, error) {
	if s == "" {
		return "", nil
	}
	for _, st := range movement.Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, s)
}

// Classify carga las posiciones y clasifica cada una. filter vacío devuelve todas.
// Devuelve domain.ErrInvalidThresholds (con los mensajes) si los umbrales guardados no son válidos.
func (uc *HealthUseCase) Classify(ctx context.Context, companyID, warehouseID string, filter movement.Status) (*HealthReport, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	th, _, err := uc.thresholds.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if res := movement.ValidateThresholds(th); !res.Valid {
		uc.log.Warn().Str("company_id", companyID).Strs("errors", res.Errors).
			Msg("clasificación rechazada: umbrales inválidos")
		return nil, res.Err()
	}

	positions, err := readThrough(uc.cache, uc.metrics, "positions",
		cacheKey(cachePositions, companyID, map[string]string{"warehouse_id": warehouseID}),
		func() ([]movement.InventoryPosition, error) {
			list, err := uc.positions.ListPositions(ctx, companyID, warehouseID)
			if err != nil {
				return nil, fmt.Errorf("health: listar posiciones: %w", err)
			}
			return list, nil
		})
	if err != nil {
		return nil, err
	}

	report := &HealthReport{
		RequestID:   uuid.NewString(),
		GeneratedAt: uc.now(),
		Thresholds:  th,
		Summary:     make(map[movement.Status]int, len(movement.Statuses)),
		Items:       make([]ClassifiedPosition, 0, len(positions)),
	}
	for _, st := range movement.Statuses {
		report.Summary[st] = 0
	}

	for _, pos := range positions {
		res := uc.classifier.Classify(pos, th)
		report.Summary[res.Status]++
		uc.metrics.ObserveClassification(string(res.Status))
		if filter != "" && res.Status != filter {
			continue
		}
		report.Items = append(report.Items, ClassifiedPosition{Position: pos, Result: res})
	}

	uc.log.Info().
		Str("request_id", report.RequestID).
		Str("company_id", companyID).
		Str("warehouse_id", warehouseID).
		Int("positions", len(positions)).
		Int("non_moving", report.Summary[movement.StatusNonMoving]).
		Int("slow_moving", report.Summary[movement.StatusSlowMoving]).
		Msg("clasificación de inventario completada")

	return report, nil
}

// InvalidatePositions descarta las posiciones cacheadas de la empresa (todas las bodegas).
func (uc *HealthUseCase) InvalidatePositions(companyID string) int {
	if uc.cache == nil {
		return 0
	}
	return uc.cache.InvalidatePrefix(companyPrefix(cachePositions, companyID))
}
