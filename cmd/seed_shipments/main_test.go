package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sampleXML = `<?xml version="1.0" encoding="ISO-8859-1"?>
<envios empresa="c-1">
  <envio id="7b1f0c2e-0000-4000-8000-000000000001" factura="FV-100" fecha_factura="2026-01-15" proveedor="Distribuciones Peña" remision="R-9">
    <linea item="Tornillo 1/2" sku_code="TOR-12" total="100" recibido="80" rechazado="5" faltante="10"/>
    <linea item="Tuerca" sku_id="42" total="10" recibido="10"/>
  </envio>
  <envio id="7b1f0c2e-0000-4000-8000-000000000002" factura="FV-101" total="40" recibido="30"/>
  <envio factura="sin-id"/>
</envios>`

func latin1(t *testing.T, s string) []byte {
	t.Helper()
	out, err := charmap.ISO8859_1.NewEncoder().String(s)
	require.NoError(t, err)
	return []byte(out)
}

func TestDecodeExport_Latin1(t *testing.T) {
	exp, err := decodeExport(bytes.NewReader(latin1(t, sampleXML)))
	require.NoError(t, err)

	assert.Equal(t, "c-1", exp.CompanyID)
	require.Len(t, exp.Envios, 3)
	assert.Equal(t, "Distribuciones Peña", exp.Envios[0].Proveedor)
	assert.Len(t, exp.Envios[0].Lineas, 2)
}

func TestDecodeExport_SinEmpresa(t *testing.T) {
	_, err := decodeExport(strings.NewReader(`<envios><envio id="x"/></envios>`))
	assert.Error(t, err)
}

func TestWriteSQL_NombresLegadosYConteo(t *testing.T) {
	exp, err := decodeExport(bytes.NewReader(latin1(t, sampleXML)))
	require.NoError(t, err)

	var buf bytes.Buffer
	records, lines, err := writeSQL(&buf, exp)
	require.NoError(t, err)

	assert.Equal(t, 2, records, "el envío sin id se omite")
	assert.Equal(t, 2, lines)

	sql := buf.String()
	assert.Contains(t, sql, `"vendor_name":"Distribuciones Peña"`)
	assert.Contains(t, sql, `"received_quantity":80`)
	assert.Contains(t, sql, `"sku_id":42`)
	assert.Contains(t, sql, `"total_quantity":40`, "agregados del envío sin líneas")
	assert.NotContains(t, sql, `"rejected_quantity":0`, "los conteos ausentes no se escriben")
}

func TestEscapeSQL(t *testing.T) {
	assert.Equal(t, "O''Brien", escapeSQL("O'Brien"))
}
