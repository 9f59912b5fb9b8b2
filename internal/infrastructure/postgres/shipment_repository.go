package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventory-health/internal/domain"
	"github.com/jhoicas/inventory-health/internal/domain/movement"
	"github.com/jhoicas/inventory-health/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo envíos (shipment_records) y sus líneas (shipment_line_items). Los atributos
// viven en columnas JSONB y se devuelven sin normalizar.
type ShipmentRepo struct {
	q  Querier
	tx *TxRunner
}

// NewShipmentRepository construye el adaptador sobre el pool; las correcciones usan transacción.
func NewShipmentRepository(pool *pgxpool.Pool) *ShipmentRepo {
	return &ShipmentRepo{q: pool, tx: NewTxRunner(pool)}
}

// ListRecords devuelve los envíos de la empresa en orden de creación.
func (r *ShipmentRepo) ListRecords(ctx context.Context, companyID string) ([]movement.ShipmentRecord, error) {
	query := `
		SELECT id::text, attributes
		FROM shipment_records
		WHERE company_id = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list shipment records: %w", err)
	}
	defer rows.Close()

	var list []movement.ShipmentRecord
	for rows.Next() {
		var (
			rec   movement.ShipmentRecord
			attrs map[string]any
		)
		if err := rows.Scan(&rec.ID, &attrs); err != nil {
			return nil, fmt.Errorf("scan shipment record: %w", err)
		}
		rec.Fields = attrs
		list = append(list, rec)
	}
	return list, rows.Err()
}

// ListLineItems devuelve las líneas de los envíos indicados agrupadas por envío.
func (r *ShipmentRepo) ListLineItems(ctx context.Context, companyID string, recordIDs []string) (map[string][]movement.ShipmentLineItem, error) {
	out := make(map[string][]movement.ShipmentLineItem, len(recordIDs))
	if len(recordIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT li.id::text, li.record_id::text, li.attributes
		FROM shipment_line_items li
		JOIN shipment_records r ON r.id = li.record_id
		WHERE r.company_id = $1
		  AND li.record_id::text = ANY($2::text[])
		ORDER BY li.record_id, li.line_no, li.id`
	rows, err := r.q.Query(ctx, query, companyID, recordIDs)
	if err != nil {
		return nil, fmt.Errorf("list shipment line items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it    movement.ShipmentLineItem
			attrs map[string]any
		)
		if err := rows.Scan(&it.ID, &it.RecordID, &attrs); err != nil {
			return nil, fmt.Errorf("scan shipment line item: %w", err)
		}
		it.Fields = attrs
		out[it.RecordID] = append(out[it.RecordID], it)
	}
	return out, rows.Err()
}

// legacyQuantityKeys nombres snake_case que se eliminan al escribir con la convención actual.
var legacyQuantityKeys = []string{"total_quantity", "received_quantity", "rejected_quantity", "short_quantity"}

// UpdateLineQuantities reescribe los cuatro conteos con la convención de nombres actual.
func (r *ShipmentRepo) UpdateLineQuantities(ctx context.Context, companyID, recordID, itemID string, q movement.LineQuantities) error {
	return r.tx.Run(ctx, func(tx Querier) error {
		lockQuery := `
			SELECT li.id
			FROM shipment_line_items li
			JOIN shipment_records r ON r.id = li.record_id
			WHERE r.company_id = $1 AND li.record_id::text = $2 AND li.id::text = $3
			FOR UPDATE OF li`
		var id any
		if err := tx.QueryRow(ctx, lockQuery, companyID, recordID, itemID).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("línea %s: %w", movement.RowKey(recordID, itemID), domain.ErrNotFound)
			}
			return fmt.Errorf("lock shipment line item: %w", err)
		}

		update := `
			UPDATE shipment_line_items
			SET attributes = (attributes - $2::text[]) || $3::jsonb,
			    updated_at = now()
			WHERE id = $1`
		if _, err := tx.Exec(ctx, update, id, legacyQuantityKeys, quantitiesPatch(q)); err != nil {
			return fmt.Errorf("update shipment line item: %w", err)
		}
		return nil
	})
}

// quantitiesPatch objeto JSON que se mezcla sobre los atributos existentes.
func quantitiesPatch(q movement.LineQuantities) map[string]any {
	return map[string]any{
		"totalQuantity":    q.TotalQuantity,
		"receivedQuantity": q.Received,
		"rejectedQuantity": q.Rejected,
		"shortQuantity":    q.Short,
	}
}
