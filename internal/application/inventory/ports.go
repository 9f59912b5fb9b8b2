package inventory

import "context"

// ResponseCache caché de lectura con expiración por entrada, propiedad del llamador del motor.
// Las claves son firmas normalizadas de la petición (ver cacheKey).
type ResponseCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	// InvalidatePrefix elimina todas las entradas cuya clave empieza por prefix y
	// devuelve cuántas eliminó.
	InvalidatePrefix(prefix string) int
}

// MetricsRecorder registra métricas de negocio del motor. Una implementación vacía es válida.
type MetricsRecorder interface {
	ObserveClassification(status string)
	ObserveCache(name string, hit bool)
	ObserveProjection(rows int)
}

// HealthReportGenerator genera la representación PDF de un reporte de salud.
type HealthReportGenerator interface {
	GenerateHealthReport(ctx context.Context, companyName string, report *HealthReport) ([]byte, error)
}

// NopMetrics descarta todas las métricas.
type NopMetrics struct{}

func (NopMetrics) ObserveClassification(string) {}
func (NopMetrics) ObserveCache(string, bool)     {}
func (NopMetrics) ObserveProjection(int)         {}
