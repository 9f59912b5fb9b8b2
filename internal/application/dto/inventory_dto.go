package dto

import "github.com/shopspring/decimal"

// ThresholdsDTO umbrales de planeación (GET/PUT /api/inventory/thresholds).
type ThresholdsDTO struct {
	SlowMovingDays               int              `json:"slow_moving_days"`
	SlowMovingMinQty             decimal.Decimal  `json:"slow_moving_min_qty"`
	SlowMovingMinQtyIsPercentage bool             `json:"slow_moving_min_qty_is_percentage"`
	SlowMovingMinQtyPercentage   *decimal.Decimal `json:"slow_moving_min_qty_percentage,omitempty"` // 0-100
	NonMovingDays                int              `json:"non_moving_days"`
	NonMovingMinQty              decimal.Decimal  `json:"non_moving_min_qty"`
	NonMovingMinQtyIsPercentage  bool             `json:"non_moving_min_qty_is_percentage"`
	NonMovingMinQtyPercentage    *decimal.Decimal `json:"non_moving_min_qty_percentage,omitempty"` // 0-100
}

// ThresholdsResponse umbrales vigentes; IsDefault = la empresa no tiene configuración propia.
type ThresholdsResponse struct {
	Thresholds ThresholdsDTO `json:"thresholds"`
	IsDefault  bool          `json:"is_default"`
}

// ThresholdValidationDTO resultado de POST /api/inventory/thresholds/validate.
type ThresholdValidationDTO struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// HealthRequest parámetros de GET /api/inventory/health.
type HealthRequest struct {
	WarehouseID string `query:"warehouse_id"` // vacío = stock global
	Status      string `query:"status"`       // NEW|NON_MOVING|SLOW_MOVING|ACTIVE; vacío = todos
}

// ClassificationDTO estado de salud de un SKU.
type ClassificationDTO struct {
	ProductID             string  `json:"product_id"`
	SKU                   string  `json:"sku"`
	ProductName           string  `json:"product_name"`
	CurrentStock          int64   `json:"current_stock"`
	FirstInwardDate       string  `json:"first_inward_date"`            // YYYY-MM-DD
	LastOutboundDate      *string `json:"last_outbound_date,omitempty"` // YYYY-MM-DD
	Status                string  `json:"status"`
	DaysSinceLastMovement int     `json:"days_since_last_movement"`
	Reason                string  `json:"reason"` // comparación que decidió el estado (auditoría)
}

// HealthReportDTO respuesta de GET /api/inventory/health.
type HealthReportDTO struct {
	RequestID   string              `json:"request_id"`
	GeneratedAt string              `json:"generated_at"`
	Thresholds  ThresholdsDTO       `json:"thresholds"`
	Summary     map[string]int      `json:"summary"` // conteo por estado (antes del filtro)
	Total       int                 `json:"total"`
	Items       []ClassificationDTO `json:"items"`
}

// ShipmentRowsRequest parámetros de GET /api/shipments/rows.
type ShipmentRowsRequest struct {
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
	Sort   string `query:"sort"`   // campo; desconocido = sin orden
	Order  string `query:"order"`  // asc|desc
	Search string `query:"search"` // subcadena sin distinguir mayúsculas
	Items  string `query:"items"`  // all (default) | none
}

// Page devuelve la paginación pedida con los valores por defecto aplicados.
func (r ShipmentRowsRequest) Page() PageRequest {
	p := PageRequest{Limit: r.Limit, Offset: r.Offset}
	p.DefaultPage()
	return p
}

// ShipmentRowDTO fila plana (registro, línea).
type ShipmentRowDTO struct {
	Key           string `json:"key"` // "recordID-itemID", estable para estado de UI
	RecordID      string `json:"record_id"`
	ItemID        string `json:"item_id"`
	Placeholder   bool   `json:"placeholder"` // líneas aún no cargadas
	InvoiceNumber string `json:"invoice_number"`
	InvoiceDate   string `json:"invoice_date"`
	ReceivingDate string `json:"receiving_date"`
	VendorName    string `json:"vendor_name"`
	BrandName     string `json:"brand_name"`
	ChallanNumber string `json:"challan_number"`
	ItemName      string `json:"item_name"`
	SKU           string `json:"sku"`
	TotalQuantity int64  `json:"total_quantity"`
	Received      int64  `json:"received"`
	Rejected      int64  `json:"rejected"`
	Short         int64  `json:"short"`
	Available     int64  `json:"available"`
	InitialShort  int64  `json:"initial_short"`
	ArrivedShort  int64  `json:"arrived_short"`
}

// ShipmentRowsResponse página de filas proyectadas.
type ShipmentRowsResponse struct {
	Page PageResponse     `json:"page"`
	Rows []ShipmentRowDTO `json:"rows"`
}

// LineQuantitiesRequest conteos de una línea (POST /api/shipments/reconcile y PATCH de línea).
type LineQuantitiesRequest struct {
	TotalQuantity int64 `json:"total_quantity"`
	Received      int64 `json:"received"`
	Rejected      int64 `json:"rejected"`
	Short         int64 `json:"short"`
}

// ReconciliationDTO cantidades conciliadas.
type ReconciliationDTO struct {
	Available    int64 `json:"available"`
	InitialShort int64 `json:"initial_short"`
	ArrivedShort int64 `json:"arrived_short"`
}
