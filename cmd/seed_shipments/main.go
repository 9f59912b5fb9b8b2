// seed_shipments genera un script SQL que carga envíos exportados por el sistema de recepción
// anterior (XML en ISO-8859-1). Los atributos se escriben con los nombres legados (snake_case),
// tal como los guardaba ese sistema; el servicio los lee sin migrarlos.
//
// Uso: go run ./cmd/seed_shipments [ruta/envios.xml]
// Por defecto busca envios.xml en el directorio actual.
// Escribe: migrations/002_seed_shipments.sql
package main

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type export struct {
	CompanyID string  `xml:"empresa,attr"`
	Envios    []envio `xml:"envio"`
}

type envio struct {
	ID             string  `xml:"id,attr"`
	Factura        string  `xml:"factura,attr"`
	FechaFactura   string  `xml:"fecha_factura,attr"`
	FechaRecepcion string  `xml:"fecha_recepcion,attr"`
	Proveedor      string  `xml:"proveedor,attr"`
	Marca          string  `xml:"marca,attr"`
	Remision       string  `xml:"remision,attr"`
	Total          string  `xml:"total,attr"`
	Recibido       string  `xml:"recibido,attr"`
	Rechazado      string  `xml:"rechazado,attr"`
	Faltante       string  `xml:"faltante,attr"`
	Lineas         []linea `xml:"linea"`
}

type linea struct {
	Item      string `xml:"item,attr"`
	SKUCode   string `xml:"sku_code,attr"`
	SKUID     string `xml:"sku_id,attr"`
	Total     string `xml:"total,attr"`
	Recibido  string `xml:"recibido,attr"`
	Rechazado string `xml:"rechazado,attr"`
	Faltante  string `xml:"faltante,attr"`
}

func main() {
	xmlPath := "envios.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	exp, err := decodeExport(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "migrations", "002_seed_shipments.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	records, lines, err := writeSQL(out, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d envíos, %d líneas\n", outPath, records, lines)
}

// decodeExport lee el XML; acepta ISO-8859-1 además de UTF-8.
func decodeExport(r io.Reader) (*export, error) {
	var exp export
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToUpper(charset) {
		case "ISO-8859-1", "ISO8859-1", "LATIN1":
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		case "WINDOWS-1252", "CP1252":
			return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&exp); err != nil {
		return nil, err
	}
	if exp.CompanyID == "" {
		return nil, fmt.Errorf("atributo empresa requerido")
	}
	return &exp, nil
}

// writeSQL escribe un upsert por envío y por línea (la línea se identifica por su posición).
// Envíos sin id se omiten.
func writeSQL(w io.Writer, exp *export) (records, lines int, err error) {
	fmt.Fprintf(w, "-- Envíos importados del sistema de recepción anterior\n")
	fmt.Fprintf(w, "-- Empresa %s\n\n", exp.CompanyID)

	for _, e := range exp.Envios {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			continue
		}
		attrs, err := json.Marshal(recordAttributes(e))
		if err != nil {
			return records, lines, err
		}
		fmt.Fprintf(w, "INSERT INTO shipment_records (id, company_id, attributes)\n")
		fmt.Fprintf(w, "VALUES ('%s', '%s', '%s'::jsonb)\n", escapeSQL(id), escapeSQL(exp.CompanyID), escapeSQL(string(attrs)))
		fmt.Fprintf(w, "ON CONFLICT (id) DO UPDATE SET attributes = EXCLUDED.attributes;\n")
		records++

		for i, l := range e.Lineas {
			attrs, err := json.Marshal(lineAttributes(l))
			if err != nil {
				return records, lines, err
			}
			fmt.Fprintf(w, "INSERT INTO shipment_line_items (record_id, line_no, attributes)\n")
			fmt.Fprintf(w, "VALUES ('%s', %d, '%s'::jsonb)\n", escapeSQL(id), i+1, escapeSQL(string(attrs)))
			fmt.Fprintf(w, "ON CONFLICT (record_id, line_no) DO UPDATE SET attributes = EXCLUDED.attributes;\n")
			lines++
		}
		fmt.Fprintln(w)
	}
	return records, lines, nil
}

func recordAttributes(e envio) map[string]any {
	attrs := map[string]any{}
	putText(attrs, "invoice_number", e.Factura)
	putText(attrs, "invoice_date", e.FechaFactura)
	putText(attrs, "receiving_date", e.FechaRecepcion)
	putText(attrs, "vendor_name", e.Proveedor)
	putText(attrs, "brand_name", e.Marca)
	putText(attrs, "challan_number", e.Remision)
	// agregados usados por la fila placeholder mientras no haya líneas
	putInt(attrs, "total_quantity", e.Total)
	putInt(attrs, "received_quantity", e.Recibido)
	putInt(attrs, "rejected_quantity", e.Rechazado)
	putInt(attrs, "short_quantity", e.Faltante)
	return attrs
}

func lineAttributes(l linea) map[string]any {
	attrs := map[string]any{}
	putText(attrs, "item_name", l.Item)
	putText(attrs, "sku_code", l.SKUCode)
	putInt(attrs, "sku_id", l.SKUID)
	putInt(attrs, "total_quantity", l.Total)
	putInt(attrs, "received_quantity", l.Recibido)
	putInt(attrs, "rejected_quantity", l.Rechazado)
	putInt(attrs, "short_quantity", l.Faltante)
	return attrs
}

func putText(m map[string]any, key, v string) {
	if v = strings.TrimSpace(v); v != "" {
		m[key] = v
	}
}

// putInt omite valores vacíos o no numéricos: ausente se lee como 0.
func putInt(m map[string]any, key, v string) {
	if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
		m[key] = n
	}
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
