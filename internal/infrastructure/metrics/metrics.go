// Package metrics expone las métricas Prometheus del servicio.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventory-health/internal/application/inventory"
)

// Config opciones de registro.
type Config struct {
	Namespace   string
	ServiceName string
}

// DefaultConfig configuración por defecto para serviceName.
func DefaultConfig(serviceName string) Config {
	return Config{Namespace: "inventory", ServiceName: serviceName}
}

// Recorder registra métricas de negocio del motor y de la capa HTTP sobre un registro propio.
type Recorder struct {
	registry *prometheus.Registry

	Classifications *prometheus.CounterVec
	CacheRequests   *prometheus.CounterVec
	ProjectedRows   prometheus.Histogram
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

var _ inventory.MetricsRecorder = (*Recorder)(nil)

// New crea el Recorder y registra los colectores estándar de Go y del proceso.
func New(cfg Config) *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	labels := prometheus.Labels{"service": cfg.ServiceName}
	r := &Recorder{registry: registry}

	r.Classifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "classifications_total",
			Help:        "SKUs clasificados por estado de salud",
			ConstLabels: labels,
		},
		[]string{"status"},
	)
	r.CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "cache_requests_total",
			Help:        "Lecturas de caché por tipo de dato y resultado",
			ConstLabels: labels,
		},
		[]string{"cache", "result"},
	)
	r.ProjectedRows = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Name:        "shipment_projected_rows",
			Help:        "Filas devueltas por proyección de envíos",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
	r.HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "http_requests_total",
			Help:        "Peticiones HTTP por método, ruta y código",
			ConstLabels: labels,
		},
		[]string{"method", "path", "status"},
	)
	r.HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Name:        "http_request_duration_seconds",
			Help:        "Duración de las peticiones HTTP en segundos",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(r.Classifications, r.CacheRequests, r.ProjectedRows, r.HTTPRequests, r.HTTPDuration)
	return r
}

// ObserveClassification cuenta un SKU clasificado.
func (r *Recorder) ObserveClassification(status string) {
	r.Classifications.WithLabelValues(status).Inc()
}

// ObserveCache cuenta un acierto o fallo de caché.
func (r *Recorder) ObserveCache(name string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.CacheRequests.WithLabelValues(name, result).Inc()
}

// ObserveProjection registra el tamaño de una proyección.
func (r *Recorder) ObserveProjection(rows int) {
	r.ProjectedRows.Observe(float64(rows))
}

// Registry devuelve el registro para pruebas o colectores adicionales.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler devuelve el handler HTTP de /metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
