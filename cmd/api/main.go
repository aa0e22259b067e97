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

	"github.com/dgomezm/custodia-pos/internal/application/auth"
	"github.com/dgomezm/custodia-pos/internal/application/custody"
	"github.com/dgomezm/custodia-pos/internal/application/folio"
	"github.com/dgomezm/custodia-pos/internal/application/inventory"
	"github.com/dgomezm/custodia-pos/internal/application/usecase"
	"github.com/dgomezm/custodia-pos/internal/infrastructure/postgres"
	httpRouter "github.com/dgomezm/custodia-pos/internal/interfaces/http"
	"github.com/dgomezm/custodia-pos/pkg/config"
	"github.com/dgomezm/custodia-pos/pkg/logger"
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
	productRepo := postgres.NewProductRepository(pool)
	custodyItemRepo := postgres.NewCustodyItemRepository(pool)
	custodyEventRepo := postgres.NewCustodyEventRepository(pool)
	entryRepo := postgres.NewMovementEntryRepository(pool)
	folioRepo := postgres.NewFolioRepository(pool)
	txRunner := postgres.NewTxRunner(pool, time.Duration(cfg.DB.TimeoutSeconds)*time.Second)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	custodyUC := custody.NewUseCase(txRunner, custodyItemRepo, custodyEventRepo)
	inventoryUC := inventory.NewUseCase(txRunner, productRepo, entryRepo)
	folioUC := folio.NewUseCase(folioRepo)

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
		Title:    "Custodia POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CustodyUC:   custodyUC,
		InventoryUC: inventoryUC,
		FolioUC:     folioUC,
		JWTSecret:   cfg.JWT.Secret,
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
