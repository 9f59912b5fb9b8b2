package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-health/internal/domain"
	"github.com/jhoicas/inventory-health/internal/domain/movement"
	"github.com/jhoicas/inventory-health/internal/domain/repository"
)

// RowsQuery parámetros de proyección de envíos.
type RowsQuery struct {
	Sort      string
	Order     string
	Search    string
	WithItems bool // false = solo filas placeholder (líneas sin cargar)
}

// shipmentSnapshot datos crudos cacheados: la proyección se recalcula en cada petición.
type shipmentSnapshot struct {
	Records []movement.ShipmentRecord
	Items   map[string][]movement.ShipmentLineItem
}

// ShipmentUseCase proyecta envíos a filas planas y corrige conteos de líneas.
type ShipmentUseCase struct {
	repo      repository.ShipmentRepository
	projector *movement.Projector
	cache     ResponseCache
	metrics   MetricsRecorder
	log       zerolog.Logger
}

// NewShipmentUseCase construye el caso de uso.
func NewShipmentUseCase(
	repo repository.ShipmentRepository,
	projector *movement.Projector,
	cache ResponseCache,
	metrics MetricsRecorder,
	log zerolog.Logger,
) *ShipmentUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &ShipmentUseCase{repo: repo, projector: projector, cache: cache, metrics: metrics, log: log}
}

// ListRows devuelve las filas proyectadas, ordenadas y filtradas según q.
func (uc *ShipmentUseCase) ListRows(ctx context.Context, companyID string, q RowsQuery) ([]movement.ProjectedRow, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	mode := "none"
	if q.WithItems {
		mode = "all"
	}
	snap, err := readThrough(uc.cache, uc.metrics, "shipments",
		cacheKey(cacheShipments, companyID, map[string]string{"items": mode}),
		func() (shipmentSnapshot, error) {
			return uc.load(ctx, companyID, q.WithItems)
		})
	if err != nil {
		return nil, err
	}

	var spec *movement.SortSpec
	if strings.TrimSpace(q.Sort) != "" {
		spec = &movement.SortSpec{Field: q.Sort, Direction: movement.ParseSortDirection(q.Order)}
	}
	rows := uc.projector.Project(snap.Records, snap.Items, spec, q.Search)
	uc.metrics.ObserveProjection(len(rows))
	return rows, nil
}

func (uc *ShipmentUseCase) load(ctx context.Context, companyID string, withItems bool) (shipmentSnapshot, error) {
	records, err := uc.repo.ListRecords(ctx, companyID)
	if err != nil {
		return shipmentSnapshot{}, fmt.Errorf("shipments: listar registros: %w", err)
	}
	snap := shipmentSnapshot{Records: records}
	if !withItems || len(records) == 0 {
		return snap, nil
	}
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	items, err := uc.repo.ListLineItems(ctx, companyID, ids)
	if err != nil {
		return shipmentSnapshot{}, fmt.Errorf("shipments: listar líneas: %w", err)
	}
	snap.Items = items
	return snap, nil
}

// Reconcile aplica la conciliación a un conjunto de conteos sin tocar la base de datos.
func (uc *ShipmentUseCase) Reconcile(q movement.LineQuantities) movement.Reconciliation {
	return movement.Reconcile(q)
}

// UpdateLineQuantities corrige los conteos capturados de una línea. Aquí sí se exige que sean
// no negativos: la conciliación confía en que quien captura ya validó la entrada.
func (uc *ShipmentUseCase) UpdateLineQuantities(
	ctx context.Context,
	companyID, recordID, itemID string,
	q movement.LineQuantities,
) (movement.Reconciliation, error) {
	if companyID == "" || recordID == "" || itemID == "" || itemID == movement.PlaceholderItemID {
		return movement.Reconciliation{}, domain.ErrInvalidInput
	}
	if q.TotalQuantity < 0 || q.Received < 0 || q.Rejected < 0 || q.Short < 0 {
		return movement.Reconciliation{}, fmt.Errorf("%w: las cantidades no pueden ser negativas", domain.ErrInvalidInput)
	}
	if err := uc.repo.UpdateLineQuantities(ctx, companyID, recordID, itemID, q); err != nil {
		return movement.Reconciliation{}, err
	}
	if uc.cache != nil {
		n := uc.cache.InvalidatePrefix(companyPrefix(cacheShipments, companyID))
		uc.log.Debug().Str("company_id", companyID).Int("entries", n).Msg("caché de envíos invalidada")
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("row_key", movement.RowKey(recordID, itemID)).
		Msg("conteos de línea actualizados")
	return movement.Reconcile(q), nil
}
