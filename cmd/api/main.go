package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/iknmuh/mypos/internal/application/auth"
	"github.com/iknmuh/mypos/internal/application/inventory"
	"github.com/iknmuh/mypos/internal/application/pos"
	"github.com/iknmuh/mypos/internal/application/purchasing"
	"github.com/iknmuh/mypos/internal/application/usecase"
	infraai "github.com/iknmuh/mypos/internal/infrastructure/ai"
	infrapdf "github.com/iknmuh/mypos/internal/infrastructure/pdf"
	"github.com/iknmuh/mypos/internal/infrastructure/postgres"
	infraredis "github.com/iknmuh/mypos/internal/infrastructure/redis"
	httpRouter "github.com/iknmuh/mypos/internal/interfaces/http"
	"github.com/iknmuh/mypos/pkg/config"
	"github.com/iknmuh/mypos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	redisClient := infraredis.NewClient(ctx, cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}
	cache := infraredis.NewCache(redisClient, log)
	limiter := infraredis.NewRateLimiter(redisClient, log)

	// Repositories over the pool; the tx runner re-binds them per transaction.
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := inventory.NewLedger()
	stockUC := inventory.NewUseCase(txRunner, ledger, movementRepo, auditRepo, cache, log)
	saleUC := pos.NewSaleUseCase(txRunner, ledger, transactionRepo, auditRepo, cache, log)
	voidUC := pos.NewVoidUseCase(txRunner, ledger, auditRepo, cache, log)
	queryUC := pos.NewQueryUseCase(transactionRepo)
	purchaseUC := purchasing.NewUseCase(txRunner, ledger, purchaseRepo, auditRepo, cache, log)

	productUC := usecase.NewProductUseCase(productRepo, auditRepo, cache, log)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	reportUC := usecase.NewReportUseCase(reportRepo, cache)
	aiUC := usecase.NewAIUseCase(infraai.NewAnthropicService(cfg.AI), reportRepo, log)
	authUC := auth.NewUseCase(userRepo, cfg.JWT, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		SaleUC:     saleUC,
		VoidUC:     voidUC,
		QueryUC:    queryUC,
		StockUC:    stockUC,
		PurchaseUC: purchaseUC,
		ProductUC:  productUC,
		CategoryUC: categoryUC,
		CustomerUC: customerUC,
		ReportUC:   reportUC,
		AIUC:       aiUC,
		Receipts:   infrapdf.NewReceiptGenerator(),
		Limiter:    limiter,
		Config:     cfg,
		Log:        log,
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
