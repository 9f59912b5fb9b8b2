package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventory-health/internal/application/inventory"
	"github.com/jhoicas/inventory-health/internal/domain"
	"github.com/jhoicas/inventory-health/internal/domain/movement"
	apphttp "github.com/jhoicas/inventory-health/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventory-health/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "inventory-pro-test"
)

var testNow = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

// signToken genera un JWT para la empresa de pruebas con el rol indicado.
func signToken(t *testing.T, role string) string {
	t.Helper()
	return signTokenFor(t, testCompanyID, role, testIssuer)
}

func signTokenFor(t *testing.T, companyID, role, issuer string) string {
	t.Helper()
	c := pkgjwt.Claims{UserID: testUserID, CompanyID: companyID, CompanyName: "Empresa de Pruebas", Role: role}
	c.Issuer = issuer
	tok, err := pkgjwt.Generate(testJWTSecret, c, time.Hour)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// send lanza una petición contra app y devuelve la respuesta.
func send(t *testing.T, app *fiber.App, method, target, auth string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memCache struct {
	mu   sync.Mutex
	data map[string]any
}

func (c *memCache) Get(k string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[k]
	return v, ok
}

func (c *memCache) Set(k string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[k] = v
}

func (c *memCache) InvalidatePrefix(p string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.data {
		if strings.HasPrefix(k, p) {
			delete(c.data, k)
			n++
		}
	}
	return n
}

type memThresholds struct {
	stored map[string]movement.PlanningThresholds
}

func (r *memThresholds) Get(_ context.Context, companyID string) (*movement.PlanningThresholds, error) {
	t, ok := r.stored[companyID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *memThresholds) Save(_ context.Context, companyID string, t movement.PlanningThresholds) error {
	r.stored[companyID] = t
	return nil
}

type memPositions struct {
	positions []movement.InventoryPosition
}

func (r *memPositions) ListPositions(context.Context, string, string) ([]movement.InventoryPosition, error) {
	return r.positions, nil
}

type memShipments struct {
	records []movement.ShipmentRecord
	items   map[string][]movement.ShipmentLineItem
}

func (r *memShipments) ListRecords(context.Context, string) ([]movement.ShipmentRecord, error) {
	return r.records, nil
}

func (r *memShipments) ListLineItems(context.Context, string, []string) (map[string][]movement.ShipmentLineItem, error) {
	return r.items, nil
}

func (r *memShipments) UpdateLineQuantities(_ context.Context, _, recordID, itemID string, q movement.LineQuantities) error {
	for i, it := range r.items[recordID] {
		if it.ID == itemID {
			r.items[recordID][i].Fields = movement.Fields{
				"itemName":         it.Fields["itemName"],
				"totalQuantity":    q.TotalQuantity,
				"receivedQuantity": q.Received,
				"rejectedQuantity": q.Rejected,
				"shortQuantity":    q.Short,
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubPDF struct{}

func (stubPDF) GenerateHealthReport(context.Context, string, *inventory.HealthReport) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

type testEnv struct {
	app        *fiber.App
	thresholds *memThresholds
	shipments  *memShipments
}

func position(id string, stock int64, firstDaysAgo, lastDaysAgo int) movement.InventoryPosition {
	p := movement.InventoryPosition{
		ProductID: id, SKU: "SKU-" + id, Name: "Producto " + id,
		CurrentStockQty: stock, FirstInwardDate: testNow.AddDate(0, 0, -firstDaysAgo),
	}
	if lastDaysAgo >= 0 {
		last := testNow.AddDate(0, 0, -lastDaysAgo)
		p.LastOutboundDate = &last
	}
	return p
}

// newTestEnv arma el router completo sobre dobles en memoria.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zerolog.Nop()
	cache := &memCache{data: map[string]any{}}
	thresholds := &memThresholds{stored: map[string]movement.PlanningThresholds{}}
	positions := &memPositions{positions: []movement.InventoryPosition{
		position("a", 10, 400, 5),
		position("n", 10, 10, -1),
		position("s", 10, 400, 100),
		position("x", 10, 400, -1),
	}}
	shipments := &memShipments{
		records: []movement.ShipmentRecord{
			{ID: "r1", Fields: movement.Fields{"invoiceNumber": "FV-2", "vendorName": "Acme", "invoiceDate": "2026-03-01"}},
			{ID: "r2", Fields: movement.Fields{"invoice_number": "FV-1", "vendor_name": "Zeta", "invoice_date": "2026-01-15", "total_quantity": 40, "received_quantity": 30}},
		},
		items: map[string][]movement.ShipmentLineItem{
			"r1": {
				{ID: "10", RecordID: "r1", Fields: movement.Fields{"itemName": "Tornillo", "totalQuantity": 100, "receivedQuantity": 80, "rejectedQuantity": 5, "shortQuantity": 10}},
				{ID: "11", RecordID: "r1", Fields: movement.Fields{"itemName": "Tuerca", "totalQuantity": 10, "receivedQuantity": 10}},
			},
		},
	}

	thresholdUC := inventory.NewThresholdUseCase(thresholds, cache, nil, log)
	classifier := movement.NewClassifier(time.UTC, func() time.Time { return testNow })
	healthUC := inventory.NewHealthUseCase(positions, thresholdUC, classifier, cache, nil, log, func() time.Time { return testNow })
	shipmentUC := inventory.NewShipmentUseCase(shipments, movement.NewProjector(language.Spanish), cache, nil, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ThresholdUC: thresholdUC,
		HealthUC:    healthUC,
		ReportUC:    inventory.NewReportUseCase(healthUC, stubPDF{}),
		ShipmentUC:  shipmentUC,
		JWTSecret:   testJWTSecret,
		JWTIssuer:   testIssuer,
		Logger:      log,
	})
	return &testEnv{app: app, thresholds: thresholds, shipments: shipments}
}
