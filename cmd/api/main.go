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

	"github.com/fieldmax/pos-api/internal/application/auth"
	appinv "github.com/fieldmax/pos-api/internal/application/inventory"
	"github.com/fieldmax/pos-api/internal/application/sales"
	"github.com/fieldmax/pos-api/internal/application/usecase"
	infrapdf "github.com/fieldmax/pos-api/internal/infrastructure/pdf"
	"github.com/fieldmax/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/fieldmax/pos-api/internal/interfaces/http"
	"github.com/fieldmax/pos-api/pkg/config"
	"github.com/fieldmax/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	entryRepo := postgres.NewStockEntryRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	createProductUC := appinv.NewCreateProductUseCase(txRunner, categoryRepo, log)
	restockUC := appinv.NewRestockUseCase(txRunner, log)
	lookupUC := appinv.NewLookupUseCase(productRepo)
	historyUC := appinv.NewHistoryUseCase(productRepo, entryRepo)

	createSaleUC := sales.NewCreateSaleUseCase(txRunner, log)
	reverseSaleUC := sales.NewReverseSaleUseCase(txRunner, log)
	getSaleUC := sales.NewGetSaleUseCase(saleRepo)

	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	receiptUC := sales.NewReceiptUseCase(saleRepo, userRepo, receiptGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "FieldMax POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CategoryUC:    categoryUC,
		ProductUC:     productUC,
		CreateProduct: createProductUC,
		HistoryUC:     historyUC,
		LookupUC:      lookupUC,
		RestockUC:     restockUC,
		CreateSale:    createSaleUC,
		ReverseSale:   reverseSaleUC,
		GetSale:       getSaleUC,
		ReceiptUC:     receiptUC,
		JWTSecret:     cfg.JWT.Secret,
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
