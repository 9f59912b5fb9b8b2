// Package pdf genera la representación PDF del reporte de salud de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa             │  Título + Fecha de corte     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  UMBRALES: slow / non-moving (días y cantidad mínima)       │
//	│  RESUMEN: conteo por estado                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Stock | Días sin mov. | Estado     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el request_id + leyenda                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventory-health/internal/application/inventory"
	"github.com/jhoicas/inventory-health/internal/domain/movement"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
	colorWarn    = &props.Color{Red: 190, Green: 120, Blue: 0}
)

var statusLabel = map[movement.Status]string{
	movement.StatusNonMoving:  "Sin movimiento",
	movement.StatusSlowMoving: "Lento",
	movement.StatusNew:        "Nuevo",
	movement.StatusActive:     "Activo",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// HealthReportGenerator implementa inventory.HealthReportGenerator usando Maroto v2.
type HealthReportGenerator struct{}

var _ inventory.HealthReportGenerator = (*HealthReportGenerator)(nil)

// NewHealthReportGenerator construye el generador.
func NewHealthReportGenerator() *HealthReportGenerator { return &HealthReportGenerator{} }

// GenerateHealthReport genera el PDF y devuelve sus bytes.
func (g *HealthReportGenerator) GenerateHealthReport(
	_ context.Context,
	companyName string,
	report *inventory.HealthReport,
) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de salud de inventario", true).
		WithAuthor(nonEmpty(companyName, "inventory-health"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(companyName, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(thresholdsRow(report.Thresholds))
	m.AddRows(summaryRow(report.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(report.Items)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(report)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y título + fecha de corte (der).
func headerRow(companyName string, report *inventory.HealthReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(companyName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("SKUs en el reporte: %d", len(report.Items)), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE SALUD DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Corte: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// thresholdsRow: umbrales con los que se clasificó.
func thresholdsRow(t movement.PlanningThresholds) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("UMBRALES DE PLANEACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf(
				"Lento: %d días / mín. %s u.   |   Sin movimiento: %d días / mín. %s u.",
				t.SlowMovingDays, t.SlowMovingMinQty.String(),
				t.NonMovingDays, t.NonMovingMinQty.String(),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// summaryRow: una columna por estado, en el orden de reporte.
func summaryRow(summary map[movement.Status]int) core.Row {
	cols := make([]core.Col, 0, len(movement.Statuses))
	for _, st := range movement.Statuses {
		cols = append(cols, col.New(3).Add(
			text.New(statusLabel[st], props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 1,
			}),
			text.New(strconv.Itoa(summary[st]), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center,
				Color: statusColor(st), Top: 6,
			}),
		))
	}
	return row.New(14).Add(cols...)
}

// tableHeaderRow: cabecera de la tabla sobre fondo azul.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Stock", 2, align.Right),
		h("Días sin mov.", 2, align.Right),
		h("Estado", 2, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por SKU clasificado.
func tableDetailRows(items []inventory.ClassifiedPosition) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		st := it.Result.Status
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.Position.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				it.Position.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatThousands(it.Position.CurrentStockQty),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				strconv.Itoa(it.Result.DaysSinceLastMovement),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				statusLabel[st],
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: statusColor(st)},
			)),
		))
	}
	return result
}

// footerRows: QR con el request_id para rastrear el reporte en los logs.
func footerRows(report *inventory.HealthReport) []core.Row {
	rows := []core.Row{}
	if report.RequestID != "" {
		rows = append(rows, row.New(30).Add(
			col.New(3).Add(code.NewQr(report.RequestID, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(9).Add(
				text.New("Identificador del reporte:", props.Text{
					Style: fontstyle.Bold, Size: 8, Top: 4, Left: 3,
				}),
				text.New(report.RequestID, props.Text{
					Size: 8, Top: 9, Left: 3, Color: colorGray,
				}),
			),
		))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Clasificación calculada con los umbrales vigentes al momento del corte. "+
				"El stock en cero nunca se reporta como inventario problema.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusColor(st movement.Status) *props.Color {
	switch st {
	case movement.StatusNonMoving:
		return colorAlert
	case movement.StatusSlowMoving:
		return colorWarn
	case movement.StatusNew:
		return colorPrimary
	default:
		return colorGray
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatThousands inserta puntos de miles. Ej: 25000 → "25.000", -1200 → "-1.200".
func formatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	l := len(s)
	if l <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, l+l/3)
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
