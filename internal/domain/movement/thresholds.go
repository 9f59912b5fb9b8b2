// Package movement contiene el motor de movimiento de inventario: validación de umbrales de
// planeación, clasificación de salud por SKU, conciliación de cantidades recibidas y proyección
// de envíos a filas planas. Todo es cálculo puro sobre valores en memoria: no hay I/O, ni logs,
// ni lectura de configuración.
package movement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PlanningThresholds umbrales configurables que parametrizan la clasificación.
// Una sola instancia se comparte (solo lectura) entre todas las clasificaciones de un lote.
type PlanningThresholds struct {
	SlowMovingDays               int
	SlowMovingMinQty             decimal.Decimal
	SlowMovingMinQtyIsPercentage bool
	SlowMovingMinQtyPercentage   *decimal.Decimal // nil = 0

	NonMovingDays               int
	NonMovingMinQty             decimal.Decimal
	NonMovingMinQtyIsPercentage bool
	NonMovingMinQtyPercentage   *decimal.Decimal // nil = 0
}

// DefaultThresholds se usa cuando la empresa aún no tiene configuración guardada.
var DefaultThresholds = PlanningThresholds{
	SlowMovingDays:   90,
	SlowMovingMinQty: decimal.NewFromInt(5),
	NonMovingDays:    180,
	NonMovingMinQty:  decimal.NewFromInt(1),
}

// ErrInvalidThresholds encabeza el error devuelto por ValidationResult.Err.
var ErrInvalidThresholds = errors.New("umbrales de planeación inválidos")

// ValidationResult resultado de ValidateThresholds. Errors conserva el orden de las reglas.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Err devuelve nil si el resultado es válido; si no, ErrInvalidThresholds unido a cada mensaje.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	errs := make([]error, 0, len(r.Errors)+1)
	errs = append(errs, ErrInvalidThresholds)
	for _, msg := range r.Errors {
		errs = append(errs, errors.New(msg))
	}
	return errors.Join(errs...)
}

var hundred = decimal.NewFromInt(100)

// ValidateThresholds ejecuta todas las reglas (sin cortocircuito) y acumula los mensajes.
func ValidateThresholds(t PlanningThresholds) ValidationResult {
	var msgs []string

	if t.SlowMovingDays <= 0 {
		msgs = append(msgs, fmt.Sprintf("slow_moving_days debe ser mayor que 0 (recibido %d)", t.SlowMovingDays))
	}
	if t.NonMovingDays <= t.SlowMovingDays {
		msgs = append(msgs, fmt.Sprintf(
			"non_moving_days (%d) debe ser mayor que slow_moving_days (%d)",
			t.NonMovingDays, t.SlowMovingDays,
		))
	}
	if t.SlowMovingMinQty.IsNegative() {
		msgs = append(msgs, fmt.Sprintf("slow_moving_min_qty no puede ser negativo (recibido %s)", t.SlowMovingMinQty))
	}
	if t.NonMovingMinQty.IsNegative() {
		msgs = append(msgs, fmt.Sprintf("non_moving_min_qty no puede ser negativo (recibido %s)", t.NonMovingMinQty))
	}
	if t.SlowMovingMinQtyIsPercentage {
		if p := percentageOrZero(t.SlowMovingMinQtyPercentage); !inPercentRange(p) {
			msgs = append(msgs, fmt.Sprintf("slow_moving_min_qty_percentage debe estar entre 0 y 100 (recibido %s)", p))
		}
	}
	if t.NonMovingMinQtyIsPercentage {
		if p := percentageOrZero(t.NonMovingMinQtyPercentage); !inPercentRange(p) {
			msgs = append(msgs, fmt.Sprintf("non_moving_min_qty_percentage debe estar entre 0 y 100 (recibido %s)", p))
		}
	}

	return ValidationResult{Valid: len(msgs) == 0, Errors: msgsOrEmpty(msgs)}
}

func percentageOrZero(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}

func inPercentRange(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}

func msgsOrEmpty(msgs []string) []string {
	if msgs == nil {
		return []string{}
	}
	return msgs
}
