package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-health/internal/domain"
	"github.com/jhoicas/inventory-health/internal/domain/movement"
	"github.com/jhoicas/inventory-health/internal/domain/repository"
)

var _ repository.InventoryPositionRepository = (*InventoryPositionRepo)(nil)

// InventoryPositionRepo deriva la foto por SKU de products, stock e inventory_movements.
type InventoryPositionRepo struct {
	q Querier
}

// NewInventoryPositionRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryPositionRepository(q Querier) *InventoryPositionRepo {
	return &InventoryPositionRepo{q: q}
}

// positionsQuery: primer ingreso = primer movimiento IN (o la creación del producto si no hay);
// última salida = último movimiento OUT. %s es el filtro opcional por bodega.
const positionsQuery = `
	SELECT
		p.id,
		p.sku,
		p.name,
		COALESCE(st.quantity, 0)             AS current_stock,
		COALESCE(mv.first_in, p.created_at)  AS first_inward,
		mv.last_out
	FROM products p
	LEFT JOIN (
		SELECT product_id, SUM(quantity) AS quantity
		FROM stock
		%[1]s
		GROUP BY product_id
	) st ON st.product_id = p.id
	LEFT JOIN (
		SELECT
			product_id,
			MIN(date) FILTER (WHERE type = 'IN')  AS first_in,
			MAX(date) FILTER (WHERE type = 'OUT') AS last_out
		FROM inventory_movements
		%[1]s
		GROUP BY product_id
	) mv ON mv.product_id = p.id
	WHERE p.company_id = $1
	ORDER BY p.sku`

// ListPositions devuelve una posición por producto. Con warehouseID vacío agrega todas las bodegas.
func (r *InventoryPositionRepo) ListPositions(ctx context.Context, companyID, warehouseID string) ([]movement.InventoryPosition, error) {
	filter := ""
	args := []any{companyID}
	if warehouseID != "" {
		filter = "WHERE warehouse_id = $2"
		args = append(args, warehouseID)
	}

	rows, err := r.q.Query(ctx, fmt.Sprintf(positionsQuery, filter), args...)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return nil, fmt.Errorf("bodega %q: %w", warehouseID, domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("list inventory positions: %w", err)
	}
	defer rows.Close()

	var list []movement.InventoryPosition
	for rows.Next() {
		var (
			p       movement.InventoryPosition
			stock   decimal.Decimal
			lastOut *time.Time
		)
		if err := rows.Scan(&p.ProductID, &p.SKU, &p.Name, &stock, &p.FirstInwardDate, &lastOut); err != nil {
			return nil, fmt.Errorf("scan inventory position: %w", err)
		}
		// el motor trabaja con unidades enteras; las fracciones no alcanzan una unidad
		p.CurrentStockQty = stock.Floor().IntPart()
		p.LastOutboundDate = lastOut
		list = append(list, p)
	}
	return list, rows.Err()
}
