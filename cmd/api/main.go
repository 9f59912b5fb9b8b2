package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventory-health/internal/application/inventory"
	"github.com/jhoicas/inventory-health/internal/domain/movement"
	"github.com/jhoicas/inventory-health/internal/infrastructure/cache"
	"github.com/jhoicas/inventory-health/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/inventory-health/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-health/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventory-health/internal/interfaces/http"
	"github.com/jhoicas/inventory-health/pkg/config"
	"github.com/jhoicas/inventory-health/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("timezone", cfg.App.Timezone).
		Str("locale", cfg.App.Locale).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	thresholdRepo := postgres.NewThresholdRepository(pool)
	positionRepo := postgres.NewInventoryPositionRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)

	// Caché de respuestas: se purga por TTL en segundo plano
	responseCache := cache.NewTTLCache(cfg.Cache.TTL, cfg.Cache.Capacity)
	go responseCache.Start()
	defer responseCache.Stop()

	recorder := metrics.New(metrics.DefaultConfig(cfg.App.Name))

	classifier := movement.NewClassifier(loc, nil)
	projector := movement.NewProjector(cfg.App.Language())

	thresholdUC := inventory.NewThresholdUseCase(thresholdRepo, responseCache, recorder, log.Component("thresholds"))
	healthUC := inventory.NewHealthUseCase(positionRepo, thresholdUC, classifier, responseCache, recorder, log.Component("health"), nil)
	reportUC := inventory.NewReportUseCase(healthUC, infrapdf.NewHealthReportGenerator())
	shipmentUC := inventory.NewShipmentUseCase(shipmentRepo, projector, responseCache, recorder, log.Component("shipments"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(recorder.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventory Health API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(recorder.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ThresholdUC: thresholdUC,
		HealthUC:    healthUC,
		ReportUC:    reportUC,
		ShipmentUC:  shipmentUC,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		Logger:      log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
