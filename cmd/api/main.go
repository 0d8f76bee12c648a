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
	"github.com/jhoicas/Taller-api/internal/application/auth"
	appinventory "github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/application/purchasing"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/application/workorder"
	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Taller-api/internal/interfaces/http"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
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

	shopRepo := postgres.NewShopRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	partRepo := postgres.NewPartRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	stockMoveRepo := postgres.NewStockMoveRepository(pool)
	partStockRepo := postgres.NewPartStockRepository(pool)
	workOrderRepo := postgres.NewWorkOrderRepository(pool)
	allocationRepo := postgres.NewAllocationRepository(pool)
	purchaseOrderRepo := postgres.NewPurchaseOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	applyMoveUC := appinventory.NewApplyStockMoveUseCase(txRunner, partRepo, locationRepo)
	resolverUC := appinventory.NewLocationResolverUseCase(partStockRepo, locationRepo)
	stockQueryUC := appinventory.NewStockQueryUseCase(stockMoveRepo, partStockRepo, partRepo)
	reconcileUC := appinventory.NewReconcileUseCase(stockMoveRepo)

	workOrderUC := workorder.NewWorkOrderUseCase(workOrderRepo, allocationRepo)
	consumePartUC := workorder.NewConsumePartUseCase(txRunner, workOrderRepo, partRepo, resolverUC)
	voidLineUC := workorder.NewVoidLineUseCase(txRunner, workOrderRepo)

	purchaseOrderUC := purchasing.NewPurchaseOrderUseCase(purchaseOrderRepo, partRepo)
	receiveUC := purchasing.NewReceiveUseCase(txRunner, purchaseOrderRepo, locationRepo)

	shopUC := usecase.NewShopUseCase(shopRepo)
	partUC := usecase.NewPartUseCase(partRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	authUC := auth.NewUseCase(shopRepo, userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

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
		ShopUC:       shopUC,
		PartUC:       partUC,
		LocationUC:   locationUC,
		ApplyMove:    applyMoveUC,
		StockQueries: stockQueryUC,
		Reconcile:    reconcileUC,
		WorkOrderUC:  workOrderUC,
		ConsumePart:  consumePartUC,
		VoidLine:     voidLineUC,
		PurchaseUC:   purchaseOrderUC,
		ReceiveUC:    receiveUC,
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
