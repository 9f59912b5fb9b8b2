package inventory_test

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/inventory-health/internal/application/inventory"
	"github.com/jhoicas/inventory-health/internal/domain"
	"github.com/jhoicas/inventory-health/internal/domain/movement"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria
// ──────────────────────────────────────────────────────────────────────────────

type mapCache struct {
	mu   sync.Mutex
	data map[string]any
}

func newMapCache() *mapCache { return &mapCache{data: map[string]any{}} }

func (c *mapCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *mapCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func (c *mapCache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
			n++
		}
	}
	return n
}

func (c *mapCache) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.data))
	for k := range c.data {
		out = append(out, k)
	}
	return out
}

var _ inventory.ResponseCache = (*mapCache)(nil)

type fakeThresholdRepo struct {
	stored map[string]movement.PlanningThresholds
	gets   int
	saves  int
}

func newFakeThresholdRepo() *fakeThresholdRepo {
	return &fakeThresholdRepo{stored: map[string]movement.PlanningThresholds{}}
}

func (r *fakeThresholdRepo) Get(_ context.Context, companyID string) (*movement.PlanningThresholds, error) {
	r.gets++
	t, ok := r.stored[companyID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeThresholdRepo) Save(_ context.Context, companyID string, t movement.PlanningThresholds) error {
	r.saves++
	r.stored[companyID] = t
	return nil
}

type fakePositionRepo struct {
	positions []movement.InventoryPosition
	calls     int
	err       error
}

func (r *fakePositionRepo) ListPositions(context.Context, string, string) ([]movement.InventoryPosition, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.positions, nil
}

type fakeShipmentRepo struct {
	records     []movement.ShipmentRecord
	items       map[string][]movement.ShipmentLineItem
	recordCalls int
	itemCalls   int
	updated     map[string]movement.LineQuantities
}

func (r *fakeShipmentRepo) ListRecords(context.Context, string) ([]movement.ShipmentRecord, error) {
	r.recordCalls++
	return r.records, nil
}

func (r *fakeShipmentRepo) ListLineItems(_ context.Context, _ string, ids []string) (map[string][]movement.ShipmentLineItem, error) {
	r.itemCalls++
	out := make(map[string][]movement.ShipmentLineItem, len(ids))
	for _, id := range ids {
		if items, ok := r.items[id]; ok {
			out[id] = items
		}
	}
	return out, nil
}

func (r *fakeShipmentRepo) UpdateLineQuantities(_ context.Context, _, recordID, itemID string, q movement.LineQuantities) error {
	for _, it := range r.items[recordID] {
		if it.ID == itemID {
			if r.updated == nil {
				r.updated = map[string]movement.LineQuantities{}
			}
			r.updated[movement.RowKey(recordID, itemID)] = q
			return nil
		}
	}
	return domain.ErrNotFound
}

type countingMetrics struct {
	classified map[string]int
	hits       int
	misses     int
	rows       []int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{classified: map[string]int{}}
}

func (m *countingMetrics) ObserveClassification(status string) { m.classified[status]++ }
func (m *countingMetrics) ObserveProjection(rows int)          { m.rows = append(m.rows, rows) }
func (m *countingMetrics) ObserveCache(_ string, hit bool) {
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

type fakeGenerator struct {
	got *inventory.HealthReport
}

func (g *fakeGenerator) GenerateHealthReport(_ context.Context, _ string, r *inventory.HealthReport) ([]byte, error) {
	g.got = r
	return []byte("%PDF-fake"), nil
}
