package movement

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status estado de salud de un SKU.
type Status string

// Estados posibles; mutuamente excluyentes.
const (
	StatusNew        Status = "NEW"
	StatusNonMoving  Status = "NON_MOVING"
	StatusSlowMoving Status = "SLOW_MOVING"
	StatusActive     Status = "ACTIVE"
)

// Statuses lista los estados en el orden en que se reportan.
var Statuses = []Status{StatusNonMoving, StatusSlowMoving, StatusNew, StatusActive}

// InventoryPosition foto viva de un SKU. La capa de datos la construye; el motor solo la lee.
type InventoryPosition struct {
	ProductID        string
	SKU              string
	Name             string
	CurrentStockQty  int64
	LastOutboundDate *time.Time // nil si nunca tuvo salidas
	FirstInwardDate  time.Time
}

// ClassificationResult resultado de una clasificación. Reason cita la comparación numérica
// que decidió el estado; sirve para auditoría, no para mostrar al usuario final.
type ClassificationResult struct {
	Status                Status
	DaysSinceLastMovement int
	Reason                string
}

// Classifier clasifica posiciones usando un reloj y una zona horaria de referencia.
// Es inmutable después de construido y puede compartirse entre goroutines.
type Classifier struct {
	now func() time.Time
	loc *time.Location
}

// NewClassifier construye el clasificador. loc nil = time.Local; now nil = time.Now.
func NewClassifier(loc *time.Location, now func() time.Time) *Classifier {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Classifier{now: now, loc: loc}
}

// Classify clasifica la posición contra umbrales ya validados (no vuelve a validarlos).
func (c *Classifier) Classify(pos InventoryPosition, t PlanningThresholds) ClassificationResult {
	return ClassifyAt(pos, t, c.now().In(c.loc))
}

// ClassifyAt clasifica tomando today como fecha actual. Los días se cuentan por fecha de
// calendario en la zona de today, ignorando la hora.
func ClassifyAt(pos InventoryPosition, t PlanningThresholds, today time.Time) ClassificationResult {
	loc := today.Location()
	reference := pos.FirstInwardDate
	if pos.LastOutboundDate != nil {
		reference = *pos.LastOutboundDate
	}
	sinceLast := daysBetween(reference, today, loc)
	if sinceLast < 0 {
		sinceLast = 0
	}

	f := facts{
		stock:        pos.CurrentStockQty,
		stockDec:     decimal.NewFromInt(pos.CurrentStockQty),
		sinceFirst:   daysBetween(pos.FirstInwardDate, today, loc),
		sinceLast:    sinceLast,
		t:            t,
		slowMinQty:   effectiveMinQty(t.SlowMovingMinQty),
		nonMovMinQty: effectiveMinQty(t.NonMovingMinQty),
	}

	for _, r := range decisionTable {
		if reason, ok := r.match(f); ok {
			return ClassificationResult{
				Status:                r.status,
				DaysSinceLastMovement: sinceLast,
				Reason:                reason,
			}
		}
	}
	return ClassificationResult{
		Status:                StatusActive,
		DaysSinceLastMovement: sinceLast,
		Reason:                fallbackReason(f),
	}
}

type facts struct {
	stock        int64
	stockDec     decimal.Decimal
	sinceFirst   int
	sinceLast    int
	t            PlanningThresholds
	slowMinQty   decimal.Decimal
	nonMovMinQty decimal.Decimal
}

type rule struct {
	status Status
	match  func(f facts) (string, bool)
}

// decisionTable se evalúa en orden y gana la primera regla que coincide; si ninguna
// coincide el estado es ACTIVE. No reordenar:
// NEW protege el stock recién ingresado y el stock cero nunca es inventario problema.
var decisionTable = []rule{
	{StatusNew, func(f facts) (string, bool) {
		if f.sinceFirst < f.t.SlowMovingDays {
			return fmt.Sprintf("días desde primer ingreso %d < slow_moving_days %d",
				f.sinceFirst, f.t.SlowMovingDays), true
		}
		return "", false
	}},
	{StatusActive, func(f facts) (string, bool) {
		if f.stock == 0 {
			return "stock actual 0 == 0 (sin stock no es inventario problema)", true
		}
		return "", false
	}},
	{StatusNonMoving, func(f facts) (string, bool) {
		if f.stockDec.GreaterThanOrEqual(f.nonMovMinQty) && f.sinceLast >= f.t.NonMovingDays {
			return fmt.Sprintf("stock %d >= non_moving_min_qty %s y días sin movimiento %d >= non_moving_days %d%s",
				f.stock, f.nonMovMinQty, f.sinceLast, f.t.NonMovingDays,
				percentageNote(f.t.NonMovingMinQtyIsPercentage)), true
		}
		return "", false
	}},
	{StatusSlowMoving, func(f facts) (string, bool) {
		if f.stockDec.GreaterThanOrEqual(f.slowMinQty) &&
			f.sinceLast >= f.t.SlowMovingDays && f.sinceLast < f.t.NonMovingDays {
			return fmt.Sprintf("stock %d >= slow_moving_min_qty %s y días sin movimiento %d en [%d, %d)%s",
				f.stock, f.slowMinQty, f.sinceLast, f.t.SlowMovingDays, f.t.NonMovingDays,
				percentageNote(f.t.SlowMovingMinQtyIsPercentage)), true
		}
		return "", false
	}},
}

// fallbackReason describe el caso ACTIVE cuando ninguna regla de la tabla coincide.
func fallbackReason(f facts) string {
	return fmt.Sprintf("sin coincidencias: stock %d, días sin movimiento %d (slow %d/%s, non-moving %d/%s)",
		f.stock, f.sinceLast,
		f.t.SlowMovingDays, f.slowMinQty, f.t.NonMovingDays, f.nonMovMinQty)
}

// effectiveMinQty resuelve el mínimo a comparar. Los porcentajes no tienen una base definida
// (stock total, punto de reorden...), así que la cantidad absoluta sigue siendo la autoritativa.
func effectiveMinQty(absolute decimal.Decimal) decimal.Decimal {
	return absolute
}

func percentageNote(isPercentage bool) string {
	if isPercentage {
		return " (porcentaje ignorado, se usa la cantidad absoluta)"
	}
	return ""
}

// daysBetween cuenta días de calendario entre from y to en loc. Negativo si from es futuro.
func daysBetween(from, to time.Time, loc *time.Location) int {
	return int(civilDay(to, loc).Sub(civilDay(from, loc)).Hours() / 24)
}

// civilDay normaliza a medianoche UTC de la fecha de calendario vista en loc,
// así la resta es siempre un múltiplo exacto de 24h (sin saltos de horario de verano).
func civilDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
