// Package cache implementa la caché de respuestas con expiración por entrada.
package cache

import (
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/jhoicas/inventory-health/internal/application/inventory"
)

// TTLCache caché en memoria con TTL fijo por entrada e invalidación por prefijo.
// Es segura para uso concurrente.
type TTLCache struct {
	c *ttlcache.Cache[string, any]
}

var _ inventory.ResponseCache = (*TTLCache)(nil)

// NewTTLCache crea la caché. capacity 0 = sin límite de entradas.
func NewTTLCache(ttl time.Duration, capacity uint64) *TTLCache {
	opts := []ttlcache.Option[string, any]{
		ttlcache.WithTTL[string, any](ttl),
		// una lectura no extiende la vida de la entrada
		ttlcache.WithDisableTouchOnHit[string, any](),
	}
	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, any](capacity))
	}
	return &TTLCache{c: ttlcache.New[string, any](opts...)}
}

// Get devuelve el valor si existe y no expiró.
func (t *TTLCache) Get(key string) (any, bool) {
	item := t.c.Get(key)
	if item == nil || item.IsExpired() {
		return nil, false
	}
	return item.Value(), true
}

// Set guarda value con el TTL por defecto.
func (t *TTLCache) Set(key string, value any) {
	t.c.Set(key, value, ttlcache.DefaultTTL)
}

// InvalidatePrefix elimina las entradas cuya clave empieza por prefix.
func (t *TTLCache) InvalidatePrefix(prefix string) int {
	n := 0
	for _, k := range t.c.Keys() {
		if strings.HasPrefix(k, prefix) {
			t.c.Delete(k)
			n++
		}
	}
	return n
}

// Len número de entradas (incluye expiradas aún no purgadas).
func (t *TTLCache) Len() int {
	return t.c.Len()
}

// Start lanza la purga automática de entradas expiradas. Bloquea hasta Stop;
// llamarlo en su propia goroutine.
func (t *TTLCache) Start() {
	t.c.Start()
}

// Stop detiene la purga automática.
func (t *TTLCache) Stop() {
	t.c.Stop()
}
