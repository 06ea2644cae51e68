package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/farmacia-pos/internal/application/inventory"
	"github.com/jhoicas/farmacia-pos/internal/application/sales"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/memory"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/farmacia-pos/internal/interfaces/http"
	"github.com/jhoicas/farmacia-pos/pkg/config"
	"github.com/jhoicas/farmacia-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		medicineRepo repository.MedicineRepository
		saleRepo     repository.SaleRepository
		alertRepo    repository.AlertRepository
	)
	if cfg.App.Storage == "memory" {
		// Almacenamiento en memoria: útil para demos y desarrollo sin PostgreSQL.
		store := memory.NewStore()
		medicineRepo = memory.NewMedicineRepository(store)
		saleRepo = memory.NewSaleRepository(store)
		alertRepo = memory.NewAlertRepository(store)
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		medicineRepo = postgres.NewMedicineRepository(pool)
		saleRepo = postgres.NewSaleRepository(pool)
		alertRepo = postgres.NewAlertRepository(pool)
	}

	alertSvc := inventory.NewAlertService(alertRepo, medicineRepo, log)
	ledger := inventory.NewStockLedger(medicineRepo, alertSvc, log)
	catalogSvc := inventory.NewCatalogService(medicineRepo, alertSvc)
	medicineQueries := inventory.NewMedicineQueryService(medicineRepo)

	cartSvc := sales.NewCartService(saleRepo, medicineRepo, ledger)
	completeSvc := sales.NewCompleteSaleService(saleRepo, ledger, log)
	saleQueries := sales.NewSalesQueryService(saleRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Catalog:         catalogSvc,
		Ledger:          ledger,
		MedicineQueries: medicineQueries,
		Alerts:          alertSvc,
		Cart:            cartSvc,
		CompleteSale:    completeSvc,
		SaleQueries:     saleQueries,
		JWTSecret:       cfg.JWT.Secret,
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

	log.Info().Msg("servidor detenido")
}
