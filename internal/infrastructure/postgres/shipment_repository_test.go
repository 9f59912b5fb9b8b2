package postgres_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-health/internal/domain/movement"
	"github.com/jhoicas/inventory-health/internal/infrastructure/postgres"
)

// El parche escrito debe leerse de vuelta con la convención actual y sin nombres legados.
func TestQuantitiesPatch_ConvencionActual(t *testing.T) {
	patch := postgres.QuantitiesPatch(movement.LineQuantities{TotalQuantity: 10, Received: 8, Rejected: 1, Short: 2})

	assert.Equal(t, map[string]any{
		"totalQuantity":    int64(10),
		"receivedQuantity": int64(8),
		"rejectedQuantity": int64(1),
		"shortQuantity":    int64(2),
	}, patch)
	for _, legacy := range postgres.LegacyQuantityKeys {
		assert.NotContains(t, patch, legacy)
	}

	rows := movement.Flatten(
		[]movement.ShipmentRecord{{ID: "r1"}},
		map[string][]movement.ShipmentLineItem{"r1": {{ID: "1", RecordID: "r1", Fields: movement.Fields(patch)}}},
	)
	assert.Equal(t, int64(8), rows[0].Quantities.Received)
	assert.Equal(t, int64(7), rows[0].Reconciliation.Available)
}

func TestPgErrorHelpers(t *testing.T) {
	fk := fmt.Errorf("save: %w", &pgconn.PgError{Code: "23503"})
	bad := &pgconn.PgError{Code: "22P02"}

	assert.True(t, postgres.IsForeignKeyViolation(fk))
	assert.False(t, postgres.IsForeignKeyViolation(bad))
	assert.True(t, postgres.IsInvalidTextRepresentation(bad))
	assert.False(t, postgres.IsInvalidTextRepresentation(errors.New("22P02")))
}
