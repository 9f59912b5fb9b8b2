package movement

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fields atributos crudos de un registro tal como vienen de la fuente de datos.
// Un mismo dato puede llegar con el nombre actual (camelCase) o con el legado (snake_case).
type Fields map[string]any

// alias nombre actual y nombre legado de un campo.
type alias struct {
	current string
	legacy  string
}

// Campos de ShipmentRecord.
var (
	fieldInvoiceNumber = alias{"invoiceNumber", "invoice_number"}
	fieldInvoiceDate   = alias{"invoiceDate", "invoice_date"}
	fieldReceivingDate = alias{"receivingDate", "receiving_date"}
	fieldVendorName    = alias{"vendorName", "vendor_name"}
	fieldBrandName     = alias{"brandName", "brand_name"}
	fieldChallanNumber = alias{"challanNumber", "challan_number"}
)

// Campos de ShipmentLineItem (y agregados del registro para la fila placeholder).
var (
	fieldItemName      = alias{"itemName", "item_name"}
	fieldSKUCode       = alias{"skuCode", "sku_code"}
	fieldSKUID         = alias{"skuId", "sku_id"}
	fieldTotalQuantity = alias{"totalQuantity", "total_quantity"}
	fieldReceived      = alias{"receivedQuantity", "received_quantity"}
	fieldRejected      = alias{"rejectedQuantity", "rejected_quantity"}
	fieldShort         = alias{"shortQuantity", "short_quantity"}
)

// lookup devuelve el valor bajo el nombre actual; si no existe (o es null), bajo el legado.
func (f Fields) lookup(a alias) (any, bool) {
	if v, ok := f[a.current]; ok && v != nil {
		return v, true
	}
	if v, ok := f[a.legacy]; ok && v != nil {
		return v, true
	}
	return nil, false
}

// text resuelve el campo como texto; ausente = "".
func (f Fields) text(a alias) string {
	v, ok := f.lookup(a)
	if !ok {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// integer resuelve el campo como entero; ausente o no numérico = 0.
func (f Fields) integer(a alias) int64 {
	v, ok := f.lookup(a)
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case float64:
		return int64(x)
	case float32:
		return int64(x)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if fl, err := x.Float64(); err == nil {
			return int64(fl)
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// quantities lee los cuatro conteos con cualquiera de las dos convenciones.
func (f Fields) quantities() LineQuantities {
	return LineQuantities{
		TotalQuantity: f.integer(fieldTotalQuantity),
		Received:      f.integer(fieldReceived),
		Rejected:      f.integer(fieldRejected),
		Short:         f.integer(fieldShort),
	}
}

// sku acepta tanto el código como el id numérico.
func (f Fields) sku() string {
	if code := f.text(fieldSKUCode); code != "" {
		return code
	}
	return f.text(fieldSKUID)
}
