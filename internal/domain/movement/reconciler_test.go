package movement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-health/internal/domain/movement"
)

func TestReconcile_CasosDeReferencia(t *testing.T) {
	cases := []struct {
		name string
		in   movement.LineQuantities
		want movement.Reconciliation
	}{
		{
			name: "faltante ya llegado completo",
			in:   movement.LineQuantities{TotalQuantity: 100, Received: 80, Short: 0, Rejected: 0},
			want: movement.Reconciliation{InitialShort: 20, ArrivedShort: 20, Available: 100},
		},
		{
			name: "faltante aún pendiente",
			in:   movement.LineQuantities{TotalQuantity: 100, Received: 80, Short: 20, Rejected: 0},
			want: movement.Reconciliation{InitialShort: 20, ArrivedShort: 0, Available: 80},
		},
		{
			name: "con rechazos",
			in:   movement.LineQuantities{TotalQuantity: 100, Received: 90, Short: 0, Rejected: 5},
			want: movement.Reconciliation{InitialShort: 10, ArrivedShort: 10, Available: 95},
		},
		{
			name: "short mayor que el faltante inicial se recorta a cero",
			in:   movement.LineQuantities{TotalQuantity: 100, Received: 95, Short: 30},
			want: movement.Reconciliation{InitialShort: 5, ArrivedShort: 0, Available: 95},
		},
		{
			name: "disponible negativo no se recorta",
			in:   movement.LineQuantities{TotalQuantity: 10, Received: 10, Rejected: 25},
			want: movement.Reconciliation{InitialShort: 0, ArrivedShort: 0, Available: -15},
		},
		{
			name: "recibido de más deja initialShort negativo",
			in:   movement.LineQuantities{TotalQuantity: 10, Received: 12},
			want: movement.Reconciliation{InitialShort: -2, ArrivedShort: 0, Available: 12},
		},
		{
			name: "rechazo negativo toma la rama sin rechazos",
			in:   movement.LineQuantities{TotalQuantity: 10, Received: 10, Rejected: -4},
			want: movement.Reconciliation{InitialShort: 0, ArrivedShort: 0, Available: 10},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, movement.Reconcile(c.in))
		})
	}
}

func TestReconcile_EsFuncionPura(t *testing.T) {
	in := movement.LineQuantities{TotalQuantity: 37, Received: 21, Rejected: 3, Short: 4}
	assert.Equal(t, movement.Reconcile(in), movement.Reconcile(in))
}
