package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-health/internal/domain"
	"github.com/jhoicas/inventory-health/internal/domain/movement"
	"github.com/jhoicas/inventory-health/internal/domain/repository"
)

var _ repository.ThresholdRepository = (*ThresholdRepo)(nil)

// ThresholdRepo umbrales de planeación por empresa (tabla planning_thresholds).
type ThresholdRepo struct {
	q Querier
}

// NewThresholdRepository construye el adaptador. Pasar pool o tx (Querier).
func NewThresholdRepository(q Querier) *ThresholdRepo {
	return &ThresholdRepo{q: q}
}

// Get devuelve (nil, nil) si la empresa no tiene fila.
func (r *ThresholdRepo) Get(ctx context.Context, companyID string) (*movement.PlanningThresholds, error) {
	query := `
		SELECT slow_moving_days, slow_moving_min_qty, slow_moving_min_qty_is_percentage, slow_moving_min_qty_percentage,
		       non_moving_days, non_moving_min_qty, non_moving_min_qty_is_percentage, non_moving_min_qty_percentage
		FROM planning_thresholds WHERE company_id = $1`
	var (
		t                 movement.PlanningThresholds
		slowPct, nonMvPct decimal.NullDecimal
	)
	err := r.q.QueryRow(ctx, query, companyID).Scan(
		&t.SlowMovingDays, &t.SlowMovingMinQty, &t.SlowMovingMinQtyIsPercentage, &slowPct,
		&t.NonMovingDays, &t.NonMovingMinQty, &t.NonMovingMinQtyIsPercentage, &nonMvPct,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get planning thresholds: %w", err)
	}
	t.SlowMovingMinQtyPercentage = fromNull(slowPct)
	t.NonMovingMinQtyPercentage = fromNull(nonMvPct)
	return &t, nil
}

// Save inserta o reemplaza los umbrales de la empresa.
func (r *ThresholdRepo) Save(ctx context.Context, companyID string, t movement.PlanningThresholds) error {
	query := `
		INSERT INTO planning_thresholds (
			company_id,
			slow_moving_days, slow_moving_min_qty, slow_moving_min_qty_is_percentage, slow_moving_min_qty_percentage,
			non_moving_days, non_moving_min_qty, non_moving_min_qty_is_percentage, non_moving_min_qty_percentage,
			updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (company_id) DO UPDATE SET
			slow_moving_days                  = EXCLUDED.slow_moving_days,
			slow_moving_min_qty               = EXCLUDED.slow_moving_min_qty,
			slow_moving_min_qty_is_percentage = EXCLUDED.slow_moving_min_qty_is_percentage,
			slow_moving_min_qty_percentage    = EXCLUDED.slow_moving_min_qty_percentage,
			non_moving_days                   = EXCLUDED.non_moving_days,
			non_moving_min_qty                = EXCLUDED.non_moving_min_qty,
			non_moving_min_qty_is_percentage  = EXCLUDED.non_moving_min_qty_is_percentage,
			non_moving_min_qty_percentage     = EXCLUDED.non_moving_min_qty_percentage,
			updated_at                        = now()`
	_, err := r.q.Exec(ctx, query,
		companyID,
		t.SlowMovingDays, t.SlowMovingMinQty, t.SlowMovingMinQtyIsPercentage, toNull(t.SlowMovingMinQtyPercentage),
		t.NonMovingDays, t.NonMovingMinQty, t.NonMovingMinQtyIsPercentage, toNull(t.NonMovingMinQtyPercentage),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("empresa %s: %w", companyID, domain.ErrNotFound)
		}
		return fmt.Errorf("save planning thresholds: %w", err)
	}
	return nil
}

func fromNull(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

func toNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
