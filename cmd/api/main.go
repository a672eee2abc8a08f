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

	"github.com/jcastro/dulceria-api/internal/application/inventory"
	"github.com/jcastro/dulceria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jcastro/dulceria-api/internal/interfaces/http"
	"github.com/jcastro/dulceria-api/pkg/config"
	"github.com/jcastro/dulceria-api/pkg/logger"
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

	stockRepo := postgres.NewStockRecordRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	bomRepo := postgres.NewBOMLineRepository(pool)
	consumptionRepo := postgres.NewConsumptionRecordRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	queue := inventory.NewQueue(log)
	guard := inventory.NewGuard(stockRepo)
	drainUC := inventory.NewDrainUseCase(queue, guard, txRunner, log)
	registrarUC := inventory.NewRegisterMovementUseCase(queue)
	queriesUC := inventory.NewQueryUseCase(stockRepo, movRepo)
	bomUC := inventory.NewBOMUseCase(productRepo, bomRepo, consumptionRepo)
	sufficiencyUC := inventory.NewSufficiencyUseCase(bomRepo, productRepo, guard)
	manufactureUC := inventory.NewManufactureUseCase(productRepo, bomUC, sufficiencyUC, registrarUC, drainUC)

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
		Title:    "Dulcería Back-Office API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterMovement: registrarUC,
		Drain:            drainUC,
		Queries:          queriesUC,
		Sufficiency:      sufficiencyUC,
		Manufacture:      manufactureUC,
		BOM:              bomUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	// Drenaje periódico de la cola diferida: red de seguridad para lotes
	// reencolados por fallos de commit y para hooks que no drenan en línea.
	drainCtx, stopDrain := context.WithCancel(ctx)
	if cfg.Inventory.DrainIntervalSeconds > 0 {
		go func() {
			interval := time.Duration(cfg.Inventory.DrainIntervalSeconds) * time.Second
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			log.Info().Dur("interval", interval).Msg("drenaje periódico de inventario activo")
			for {
				select {
				case <-ticker.C:
					drainUC.DrainAndApply(drainCtx)
				case <-drainCtx.Done():
					return
				}
			}
		}()
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopDrain()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Último drenaje antes de morir: la cola es solo memoria y lo pendiente
	// se perdería con el proceso.
	drainUC.DrainAndApply(shutdownCtx)

	log.Info().Msg("aplicación detenida")
}
