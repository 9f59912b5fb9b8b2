package movement

import (
	"cmp"
	"strings"
)

// SortDirection dirección de orden.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection acepta "asc"/"desc" sin distinguir mayúsculas; cualquier otro valor = asc.
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// SortSpec campo y dirección pedidos. Un campo no reconocido deja el orden intacto.
type SortSpec struct {
	Field     string
	Direction SortDirection
}

type compareMode int

const (
	compareDate compareMode = iota
	compareText
	compareNumber
)

type sortField struct {
	mode   compareMode
	text   func(r ProjectedRow) string
	number func(r ProjectedRow) int64
}

// sortFields despacha por identidad de campo. Se aceptan el nombre snake_case y el camelCase.
var sortFields = buildSortFields(map[alias]sortField{
	{"invoiceDate", "invoice_date"}:     {mode: compareDate, text: func(r ProjectedRow) string { return r.InvoiceDate }},
	{"receivingDate", "receiving_date"}: {mode: compareDate, text: func(r ProjectedRow) string { return r.ReceivingDate }},

	{"invoiceNumber", "invoice_number"}: {mode: compareText, text: func(r ProjectedRow) string { return r.InvoiceNumber }},
	{"vendorName", "vendor_name"}:       {mode: compareText, text: func(r ProjectedRow) string { return r.VendorName }},
	{"brandName", "brand_name"}:         {mode: compareText, text: func(r ProjectedRow) string { return r.BrandName }},
	{"itemName", "item_name"}:           {mode: compareText, text: func(r ProjectedRow) string { return r.ItemName }},
	{"sku", "sku_code"}:                 {mode: compareText, text: func(r ProjectedRow) string { return r.SKU }},
	{"challanNumber", "challan_number"}: {mode: compareText, text: func(r ProjectedRow) string { return r.ChallanNumber }},

	{"totalQuantity", "total_quantity"}: {mode: compareNumber, number: func(r ProjectedRow) int64 { return r.Quantities.TotalQuantity }},
	{"received", "received_quantity"}:   {mode: compareNumber, number: func(r ProjectedRow) int64 { return r.Quantities.Received }},
	{"rejected", "rejected_quantity"}:   {mode: compareNumber, number: func(r ProjectedRow) int64 { return r.Quantities.Rejected }},
	{"short", "short_quantity"}:         {mode: compareNumber, number: func(r ProjectedRow) int64 { return r.Quantities.Short }},
	{"available", "available_quantity"}: {mode: compareNumber, number: func(r ProjectedRow) int64 { return r.Reconciliation.Available }},
	{"initialShort", "initial_short"}:   {mode: compareNumber, number: func(r ProjectedRow) int64 { return r.Reconciliation.InitialShort }},
	{"arrivedShort", "arrived_short"}:   {mode: compareNumber, number: func(r ProjectedRow) int64 { return r.Reconciliation.ArrivedShort }},
})

func buildSortFields(in map[alias]sortField) map[string]sortField {
	out := make(map[string]sortField, len(in)*2)
	for a, f := range in {
		out[a.current] = f
		out[a.legacy] = f
	}
	return out
}

// IsSortField indica si name es un campo de orden reconocido.
func IsSortField(name string) bool {
	_, ok := sortFields[name]
	return ok
}

// Sort ordena rows en sitio según spec. Orden estable: los empates no se reordenan.
func (p *Projector) Sort(rows []ProjectedRow, spec SortSpec) {
	f, ok := sortFields[spec.Field]
	if !ok {
		return
	}
	var compare func(a, b ProjectedRow) int
	switch f.mode {
	case compareDate:
		compare = func(a, b ProjectedRow) int {
			return cmp.Compare(timestamp(f.text(a)), timestamp(f.text(b)))
		}
	case compareText:
		col := newCollator(p.tag)
		compare = func(a, b ProjectedRow) int {
			return col.CompareString(f.text(a), f.text(b))
		}
	case compareNumber:
		compare = func(a, b ProjectedRow) int {
			return cmp.Compare(f.number(a), f.number(b))
		}
	}
	sortRows(rows, compare, spec.Direction)
}
