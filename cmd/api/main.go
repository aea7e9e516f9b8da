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

	"github.com/logicshaper19/palmtrace/internal/application/auth"
	"github.com/logicshaper19/palmtrace/internal/application/traceability"
	"github.com/logicshaper19/palmtrace/internal/application/usecase"
	infrapdf "github.com/logicshaper19/palmtrace/internal/infrastructure/pdf"
	"github.com/logicshaper19/palmtrace/internal/infrastructure/postgres"
	httpRouter "github.com/logicshaper19/palmtrace/internal/interfaces/http"
	"github.com/logicshaper19/palmtrace/pkg/config"
	"github.com/logicshaper19/palmtrace/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	transformationRepo := postgres.NewTransformationRepository(pool)
	provenanceRepo := postgres.NewProvenanceRepository(pool)
	massBalanceRepo := postgres.NewMassBalanceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	batchUC := usecase.NewBatchUseCase(batchRepo, productRepo)
	allocateUC := traceability.NewAllocateUseCase(txRunner, batchRepo, productRepo)
	transformationUC := traceability.NewTransformationUseCase(
		txRunner, companyRepo, productRepo, transformationRepo, massBalanceRepo,
	)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := traceability.NewReportUseCase(batchRepo, productRepo, provenanceRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
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
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PalmTrace API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		CompanyUC:        companyUC,
		ProductUC:        productUC,
		BatchUC:          batchUC,
		AllocateUC:       allocateUC,
		TransformationUC: transformationUC,
		ReportUC:         reportUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
