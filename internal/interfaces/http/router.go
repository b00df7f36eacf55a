package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iknmuh/mypos/internal/application/auth"
	"github.com/iknmuh/mypos/internal/application/inventory"
	"github.com/iknmuh/mypos/internal/application/pos"
	"github.com/iknmuh/mypos/internal/application/purchasing"
	"github.com/iknmuh/mypos/internal/application/usecase"
	"github.com/iknmuh/mypos/pkg/config"
	"github.com/iknmuh/mypos/pkg/logger"
)

// RouterDeps carries everything the router wires.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	SaleUC     *pos.SaleUseCase
	VoidUC     *pos.VoidUseCase
	QueryUC    *pos.QueryUseCase
	StockUC    *inventory.UseCase
	PurchaseUC *purchasing.UseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	CustomerUC *usecase.CustomerUseCase
	ReportUC   *usecase.ReportUseCase
	AIUC       *usecase.AIUseCase
	Receipts   ReceiptGenerator
	Limiter    Limiter
	Config     *config.Config
	Log        *logger.Logger
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	cfg := deps.Config
	api := app.Group("/api")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth (public, stricter rate budget)
	authGroup := api.Group("/auth", RateLimitMiddleware(deps.Limiter, "auth", cfg.Rate.AuthPerMinute))
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything below requires a Bearer token.
	protected := api.Group("/",
		RateLimitMiddleware(deps.Limiter, "api", cfg.Rate.PerMinute),
		AuthMiddleware(cfg.JWT.Secret),
	)

	// Transactions
	transactions := protected.Group("/transaksi")
	txHandler := NewTransactionHandler(deps.SaleUC, deps.VoidUC, deps.QueryUC, deps.Receipts, cfg.App.Name, deps.Log)
	transactions.Post("/", txHandler.Create)
	transactions.Get("/", txHandler.List)
	transactions.Get("/:id", txHandler.Get)
	transactions.Patch("/:id", txHandler.Void)
	transactions.Delete("/:id", txHandler.Delete)
	transactions.Get("/:id/struk", txHandler.Receipt)

	// Stock ledger
	stock := protected.Group("/stok")
	stockHandler := NewStockHandler(deps.StockUC, deps.Log)
	stock.Post("/", stockHandler.Adjust)
	stock.Get("/", stockHandler.Movements)

	// Products
	products := protected.Group("/produk")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/stok-menipis", productHandler.LowStock)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireOwner(), productHandler.Delete)

	// Purchasing
	purchases := protected.Group("/pembelian")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.Log)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.Get)
	purchases.Post("/:id/terima", purchaseHandler.Receive)

	// Customers
	customers := protected.Group("/pelanggan")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Log)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Categories
	categories := protected.Group("/kategori")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Log)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Dashboard and reports
	reportHandler := NewReportHandler(deps.ReportUC, deps.Log)
	protected.Get("/dashboard", reportHandler.Dashboard)
	protected.Get("/laporan/penjualan", reportHandler.Sales)

	// Assistant
	aiHandler := NewAIHandler(deps.AIUC, deps.Log)
	protected.Post("/tanya-ai", aiHandler.Ask)
}
