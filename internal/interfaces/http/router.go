package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-health/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ThresholdUC *inventory.ThresholdUseCase
	HealthUC    *inventory.HealthUseCase
	ReportUC    *inventory.ReportUseCase
	ShipmentUC  *inventory.ShipmentUseCase
	JWTSecret   string
	JWTIssuer   string
	Logger      zerolog.Logger
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Umbrales y salud de inventario
	inv := api.Group("/inventory")
	thresholdHandler := NewThresholdHandler(deps.ThresholdUC, deps.Logger)
	inv.Get("/thresholds", thresholdHandler.Get)
	inv.Put("/thresholds", RequireRole(RoleAdmin), thresholdHandler.Update)
	inv.Post("/thresholds/validate", thresholdHandler.Validate)

	healthHandler := NewHealthHandler(deps.HealthUC, deps.ReportUC, deps.Logger)
	inv.Get("/health", healthHandler.Classify)
	inv.Get("/health/report", healthHandler.Report)
	inv.Post("/health/refresh", RequireRole(RoleAdmin, RoleBodeguero), healthHandler.Refresh)

	// Envíos
	shipments := api.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC, deps.Logger)
	shipments.Get("/rows", shipmentHandler.Rows)
	shipments.Post("/reconcile", shipmentHandler.Reconcile)
	shipments.Patch("/:recordId/items/:itemId", RequireRole(RoleAdmin, RoleBodeguero), shipmentHandler.UpdateLine)
}
