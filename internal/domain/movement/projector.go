package movement

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ShipmentRecord un evento de entrega. Sus líneas llegan por separado (carga diferida).
type ShipmentRecord struct {
	ID     string
	Fields Fields
}

// ShipmentLineItem un producto dentro de un envío.
type ShipmentLineItem struct {
	ID       string
	RecordID string
	Fields   Fields
}

// ProjectedRow una fila por par (registro, línea). Key = "recordID-itemID" es estable y única;
// la fila placeholder (líneas aún no cargadas) usa itemID "0".
type ProjectedRow struct {
	Key         string
	RecordID    string
	ItemID      string
	Placeholder bool

	InvoiceNumber string
	InvoiceDate   string
	ReceivingDate string
	VendorName    string
	BrandName     string
	ChallanNumber string
	ItemName      string
	SKU           string // código si existe, si no el id numérico
	SKUCode       string
	SKUID         string

	Quantities     LineQuantities
	Reconciliation Reconciliation
}

// PlaceholderItemID id de línea de la fila que representa un registro sin líneas cargadas.
const PlaceholderItemID = "0"

// RowKey compone la clave estable de una fila.
func RowKey(recordID, itemID string) string {
	return recordID + "-" + itemID
}

// Projector aplana, ordena y filtra envíos. Los collators de x/text no son seguros para uso
// concurrente, por eso se crean en cada llamada; el Projector en sí sí puede compartirse.
type Projector struct {
	tag language.Tag
}

// NewProjector construye el proyector con el idioma usado para comparar textos.
func NewProjector(tag language.Tag) *Projector {
	return &Projector{tag: tag}
}

// Project aplana records, ordena si sortSpec no es nil y filtra si search no está vacío.
// itemsByRecordID puede no tener entrada para un registro: en ese caso se emite el placeholder.
func (p *Projector) Project(
	records []ShipmentRecord,
	itemsByRecordID map[string][]ShipmentLineItem,
	sortSpec *SortSpec,
	search string,
) []ProjectedRow {
	rows := Flatten(records, itemsByRecordID)
	if sortSpec != nil {
		p.Sort(rows, *sortSpec)
	}
	if strings.TrimSpace(search) != "" {
		rows = p.Search(rows, search)
	}
	return rows
}

// Flatten emite una fila por línea cargada, o una fila placeholder con los agregados del
// registro cuando no hay líneas.
func Flatten(records []ShipmentRecord, itemsByRecordID map[string][]ShipmentLineItem) []ProjectedRow {
	rows := make([]ProjectedRow, 0, len(records))
	for _, rec := range records {
		base := recordRow(rec)
		items := itemsByRecordID[rec.ID]
		if len(items) == 0 {
			row := base
			row.ItemID = PlaceholderItemID
			row.Key = RowKey(rec.ID, PlaceholderItemID)
			row.Placeholder = true
			row.Quantities = rec.Fields.quantities()
			row.Reconciliation = Reconcile(row.Quantities)
			rows = append(rows, row)
			continue
		}
		for _, it := range items {
			row := base
			row.ItemID = it.ID
			row.Key = RowKey(rec.ID, it.ID)
			row.ItemName = it.Fields.text(fieldItemName)
			row.SKUCode = it.Fields.text(fieldSKUCode)
			row.SKUID = it.Fields.text(fieldSKUID)
			row.SKU = it.Fields.sku()
			row.Quantities = it.Fields.quantities()
			row.Reconciliation = Reconcile(row.Quantities)
			rows = append(rows, row)
		}
	}
	return rows
}

// recordRow resuelve una sola vez los campos del registro con doble convención de nombres.
func recordRow(rec ShipmentRecord) ProjectedRow {
	f := rec.Fields
	return ProjectedRow{
		RecordID:      rec.ID,
		InvoiceNumber: f.text(fieldInvoiceNumber),
		InvoiceDate:   f.text(fieldInvoiceDate),
		ReceivingDate: f.text(fieldReceivingDate),
		VendorName:    f.text(fieldVendorName),
		BrandName:     f.text(fieldBrandName),
		ChallanNumber: f.text(fieldChallanNumber),
	}
}

// Search conserva las filas en las que algún campo buscable contiene term (sin distinguir
// mayúsculas). Mantiene el orden recibido.
func (p *Projector) Search(rows []ProjectedRow, term string) []ProjectedRow {
	term = strings.TrimSpace(term)
	if term == "" {
		return rows
	}
	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]ProjectedRow, 0, len(rows))
	for _, r := range rows {
		for _, hay := range searchableFields(r) {
			if hay != "" && strings.Contains(fold.String(hay), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func searchableFields(r ProjectedRow) []string {
	return []string{
		r.InvoiceNumber,
		r.InvoiceDate,
		r.ReceivingDate,
		r.ItemName,
		r.SKUCode,
		r.SKUID,
		r.VendorName,
		r.BrandName,
		r.ChallanNumber,
	}
}

// dateLayouts formatos aceptados para fechas de factura y recepción.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// timestamp convierte la fecha a milisegundos Unix; vacía o ilegible = 0 (inicio de época).
func timestamp(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

// sortRows ordena de forma estable: los empates conservan el orden de llegada.
func sortRows(rows []ProjectedRow, cmp func(a, b ProjectedRow) int, dir SortDirection) {
	sort.SliceStable(rows, func(i, j int) bool {
		c := cmp(rows[i], rows[j])
		if dir == SortDesc {
			return c > 0
		}
		return c < 0
	})
}

func newCollator(tag language.Tag) *collate.Collator {
	return collate.New(tag, collate.IgnoreCase)
}
