package repository

import (
	"context"

	"github.com/jhoicas/inventory-health/internal/domain/movement"
)

// InventoryPositionRepository define el puerto de lectura de la foto viva por SKU
// (stock actual, primer ingreso y última salida) derivada de stock y movimientos.
type InventoryPositionRepository interface {
	// ListPositions devuelve una posición por producto de la empresa.
	// Si warehouseID es vacío, el stock se agrega sobre todas las bodegas.
	ListPositions(ctx context.Context, companyID, warehouseID string) ([]movement.InventoryPosition, error)
}
