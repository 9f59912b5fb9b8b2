package inventory

import (
	"net/url"
	"strings"
)

// Prefijos de caché por tipo de dato. La clave completa es prefijo + companyID + ":" + parámetros.
const (
	cacheThresholds = "thresholds:"
	cachePositions  = "positions:"
	cacheShipments  = "shipments:"
)

// cacheKey arma la firma normalizada de una petición: los parámetros se ordenan por nombre
// y se ignoran los vacíos, así dos peticiones equivalentes comparten entrada.
func cacheKey(kind, companyID string, params map[string]string) string {
	v := url.Values{}
	for k, val := range params {
		val = strings.TrimSpace(val)
		if val == "" {
			continue
		}
		v.Set(strings.ToLower(k), val)
	}
	return companyPrefix(kind, companyID) + v.Encode()
}

// companyPrefix prefijo que agrupa todas las entradas de un tipo para una empresa.
func companyPrefix(kind, companyID string) string {
	return kind + companyID + ":"
}

// readThrough devuelve el valor cacheado bajo key o lo carga con load y lo guarda.
// Los errores de carga no se cachean.
func readThrough[T any](cache ResponseCache, metrics MetricsRecorder, name, key string, load func() (T, error)) (T, error) {
	if cache != nil {
		if v, ok := cache.Get(key); ok {
			if typed, ok := v.(T); ok {
				metrics.ObserveCache(name, true)
				return typed, nil
			}
		}
	}
	metrics.ObserveCache(name, false)
	val, err := load()
	if err != nil {
		return val, err
	}
	if cache != nil {
		cache.Set(key, val)
	}
	return val, nil
}
