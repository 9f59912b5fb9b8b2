package repository

import (
	"context"

	"github.com/jhoicas/inventory-health/internal/domain/movement"
)

// ShipmentRepository define el puerto de lectura de envíos y sus líneas.
// Los atributos se devuelven crudos: pueden venir con la convención de nombres actual o la legada.
type ShipmentRepository interface {
	ListRecords(ctx context.Context, companyID string) ([]movement.ShipmentRecord, error)
	// ListLineItems agrupa las líneas por RecordID. Los registros sin líneas no aparecen en el mapa.
	ListLineItems(ctx context.Context, companyID string, recordIDs []string) (map[string][]movement.ShipmentLineItem, error)
	// UpdateLineQuantities corrige los conteos de una línea; domain.ErrNotFound si no existe
	// o no pertenece a la empresa.
	UpdateLineQuantities(ctx context.Context, companyID, recordID, itemID string, q movement.LineQuantities) error
}
