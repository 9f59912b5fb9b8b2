package movement

// LineQuantities conteos crudos de una línea de envío. Llegan de captura manual y no son
// necesariamente coherentes entre sí (received + short no tiene por qué sumar TotalQuantity).
type LineQuantities struct {
	TotalQuantity int64 // pedido
	Received      int64
	Rejected      int64
	Short         int64 // faltante que sigue pendiente
}

// Reconciliation cantidades derivadas de una línea.
type Reconciliation struct {
	Available    int64
	InitialShort int64
	ArrivedShort int64
}

// Reconcile calcula la cantidad disponible. Es aritmética pura: no valida ni recorta
// resultados negativos; la sanidad de la entrada es responsabilidad de quien captura.
//
//	initialShort = total - received
//	arrivedShort = max(0, initialShort - short)
//	available    = received - rejected + arrivedShort   (solo si rejected > 0)
//	             = received + arrivedShort               (si rejected == 0)
func Reconcile(q LineQuantities) Reconciliation {
	initialShort := q.TotalQuantity - q.Received
	arrivedShort := initialShort - q.Short
	if arrivedShort < 0 {
		arrivedShort = 0
	}

	var available int64
	if q.Rejected > 0 {
		available = q.Received - q.Rejected + arrivedShort
	} else {
		available = q.Received + arrivedShort
	}

	return Reconciliation{
		Available:    available,
		InitialShort: initialShort,
		ArrivedShort: arrivedShort,
	}
}
