package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/tallerpro/taller-api/internal/application/analytics"
	"github.com/tallerpro/taller-api/internal/application/auth"
	"github.com/tallerpro/taller-api/internal/application/reparation"
	"github.com/tallerpro/taller-api/internal/application/stock"
	"github.com/tallerpro/taller-api/internal/application/usecase"
	infrapdf "github.com/tallerpro/taller-api/internal/infrastructure/pdf"
	"github.com/tallerpro/taller-api/internal/infrastructure/postgres"
	httpRouter "github.com/tallerpro/taller-api/internal/interfaces/http"
	"github.com/tallerpro/taller-api/pkg/config"
	"github.com/tallerpro/taller-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	stockTxRepo := postgres.NewStockTransactionRepository(pool)
	reparationRepo := postgres.NewReparationRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	itemUC := usecase.NewItemUseCase(itemRepo, categoryRepo, supplierRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo)
	serviceUC := usecase.NewServiceUseCase(serviceRepo)
	applyStockUC := stock.NewApplyMovementUseCase(txRunner, itemRepo, supplierRepo)
	stockQueryUC := stock.NewQueryUseCase(stockTxRepo)
	reparationUC := reparation.NewUseCase(txRunner, reparationRepo, vehicleRepo, itemRepo, serviceRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo)

	// PDF: factura de la reparación con las fotos de precio de sus líneas
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Garage)
	invoiceUC := reparation.NewInvoiceUseCase(reparationRepo, vehicleRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ItemUC:       itemUC,
		CategoryUC:   categoryUC,
		SupplierUC:   supplierUC,
		VehicleUC:    vehicleUC,
		ServiceUC:    serviceUC,
		ApplyStock:   applyStockUC,
		StockQuery:   stockQueryUC,
		ReparationUC: reparationUC,
		InvoiceUC:    invoiceUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
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
