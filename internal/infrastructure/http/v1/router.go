// Package v1 provides HTTP API version 1.
package v1

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"invetra/internal/core/numerator"
	"invetra/internal/domain/audit"
	"invetra/internal/domain/catalogs/product"
	"invetra/internal/domain/catalogs/warehouse"
	"invetra/internal/domain/documents"
	"invetra/internal/domain/documents/adjustment"
	"invetra/internal/domain/documents/issue"
	"invetra/internal/domain/documents/receipt"
	"invetra/internal/domain/documents/transfer"
	"invetra/internal/domain/posting"
	"invetra/internal/domain/registers/stock"
	"invetra/internal/domain/reports"
	"invetra/internal/infrastructure/http/v1/handlers"
	"invetra/internal/infrastructure/http/v1/middleware"
	"invetra/internal/infrastructure/storage/postgres"
	"invetra/internal/infrastructure/storage/postgres/catalog_repo"
	"invetra/internal/infrastructure/storage/postgres/document_repo"
	"invetra/internal/infrastructure/storage/postgres/register_repo"
	"invetra/internal/infrastructure/storage/postgres/report_repo"
	"invetra/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (health checks, idempotency)
	Pool *postgres.Pool

	// TxManager runs repository calls inside transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// Numerator for document number generation
	Numerator numerator.Generator

	// AuditService records entity change history (optional)
	AuditService *postgres.AuditService

	// IdempotencyEnabled enables idempotency middleware
	IdempotencyEnabled bool

	// IdempotencyTTL is how long completed keys are replayable
	IdempotencyTTL time.Duration
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no actor headers required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Actor identity from trusted gateway headers
		v1.Use(middleware.UserContext())

		// Idempotency for mutating operations
		if cfg.IdempotencyEnabled {
			ttl := cfg.IdempotencyTTL
			if ttl <= 0 {
				ttl = 10 * time.Minute
			}
			store := postgres.NewIdempotencyStore(cfg.Pool, cfg.TxManager, ttl)
			v1.Use(middleware.Idempotency(store))
		}

		deps := buildDependencies(cfg)

		registerCatalogRoutes(v1, cfg, deps)
		registerDocumentRoutes(v1, cfg, deps)
		registerRegisterRoutes(v1, deps)
		registerReportRoutes(v1, cfg)
		registerAuditRoutes(v1, cfg)
	}

	return router
}

// dependencies are the shared domain services behind the route groups.
type dependencies struct {
	warehouseService *warehouse.Service
	productService   *product.Service
	stockRepo        stock.Repository
	stockService     *stock.Service
	postingEngine    *posting.Engine
}

func buildDependencies(cfg RouterConfig) *dependencies {
	whRepo := catalog_repo.NewWarehouseRepo(cfg.TxManager)
	warehouseService := warehouse.NewService(whRepo, cfg.TxManager, cfg.Numerator)

	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	productService := product.NewService(productRepo, cfg.TxManager, cfg.Numerator)

	stockRepo := register_repo.NewStockRepo(cfg.TxManager)

	// The warehouse service decides whether a warehouse may go negative
	stockService := stock.NewService(stockRepo, warehouseService)

	resolver := documents.NewPostingResolver(productRepo, stockRepo)
	outbox := postgres.NewOutboxPublisher(cfg.TxManager)
	postingEngine := posting.NewEngine(stockService, resolver, cfg.TxManager).WithEvents(outbox)

	return &dependencies{
		warehouseService: warehouseService,
		productService:   productService,
		stockRepo:        stockRepo,
		stockService:     stockService,
		postingEngine:    postingEngine,
	}
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig, deps *dependencies) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- WAREHOUSES ---
	{
		handler := handlers.NewWarehouseHandler(baseHandler, deps.warehouseService)
		RegisterCatalogRoutes(catalogs.Group("/warehouses"), handler)
	}

	// --- PRODUCTS ---
	{
		handler := handlers.NewProductHandler(baseHandler, deps.productService)
		group := catalogs.Group("/products")

		// Lookup routes go first so gin resolves them before /:id
		lookup := handlers.NewProductLookupHandler(baseHandler, deps.productService)
		group.GET("/low-stock", lookup.FindLowStock)
		group.GET("/by-sku/:sku", lookup.FindBySKU)
		group.GET("/by-barcode/:barcode", lookup.FindByBarcode)
		group.GET("/:id/convert", lookup.ConvertQuantity)

		RegisterCatalogRoutes(group, handler)
	}
}

// registerDocumentRoutes registers document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig, deps *dependencies) {
	docsGroup := rg.Group("/documents")
	baseHandler := handlers.NewBaseHandler()

	// --- ADJUSTMENTS ---
	{
		repo := document_repo.NewAdjustmentRepo(cfg.TxManager)
		service := adjustment.NewService(repo, deps.postingEngine, cfg.Numerator, cfg.TxManager).
			WithMovementReader(deps.stockRepo)

		service.Hooks().OnBeforeCreate(func(ctx context.Context, doc *adjustment.Adjustment) error {
			audit.EnrichCreatedByDirect(ctx, &doc.CreatedBy, &doc.UpdatedBy)
			return nil
		})
		service.Hooks().OnBeforeUpdate(func(ctx context.Context, doc *adjustment.Adjustment) error {
			audit.EnrichUpdatedByDirect(ctx, &doc.UpdatedBy)
			return nil
		})
		if cfg.AuditService != nil {
			service.Hooks().OnAfterCreate(func(ctx context.Context, doc *adjustment.Adjustment) error {
				return cfg.AuditService.LogChange(ctx, "Adjustment", doc.ID, postgres.AuditActionCreate, map[string]any{"number": doc.Number})
			})
			service.Hooks().OnAfterUpdate(func(ctx context.Context, doc *adjustment.Adjustment) error {
				return cfg.AuditService.LogChange(ctx, "Adjustment", doc.ID, postgres.AuditActionUpdate, map[string]any{"number": doc.Number})
			})
		}

		handler := handlers.NewAdjustmentHandler(baseHandler, service)
		RegisterDocumentRoutes(docsGroup.Group("/adjustments"), handler)
	}

	// --- TRANSFERS ---
	{
		repo := document_repo.NewTransferRepo(cfg.TxManager)
		service := transfer.NewService(repo, deps.postingEngine, cfg.Numerator, cfg.TxManager)

		service.Hooks().OnBeforeCreate(func(ctx context.Context, doc *transfer.Transfer) error {
			audit.EnrichCreatedByDirect(ctx, &doc.CreatedBy, &doc.UpdatedBy)
			return nil
		})
		service.Hooks().OnBeforeUpdate(func(ctx context.Context, doc *transfer.Transfer) error {
			audit.EnrichUpdatedByDirect(ctx, &doc.UpdatedBy)
			return nil
		})
		if cfg.AuditService != nil {
			service.Hooks().OnAfterCreate(func(ctx context.Context, doc *transfer.Transfer) error {
				return cfg.AuditService.LogChange(ctx, "Transfer", doc.ID, postgres.AuditActionCreate, map[string]any{"number": doc.Number})
			})
			service.Hooks().OnAfterUpdate(func(ctx context.Context, doc *transfer.Transfer) error {
				return cfg.AuditService.LogChange(ctx, "Transfer", doc.ID, postgres.AuditActionUpdate, map[string]any{"number": doc.Number})
			})
		}

		handler := handlers.NewTransferHandler(baseHandler, service)
		RegisterDocumentRoutes(docsGroup.Group("/transfers"), handler)
	}

	// --- RECEIPTS ---
	{
		repo := document_repo.NewReceiptRepo(cfg.TxManager)
		service := receipt.NewService(repo, deps.postingEngine, cfg.Numerator, cfg.TxManager)

		service.Hooks().OnBeforeCreate(func(ctx context.Context, doc *receipt.Receipt) error {
			audit.EnrichCreatedByDirect(ctx, &doc.CreatedBy, &doc.UpdatedBy)
			return nil
		})
		service.Hooks().OnBeforeUpdate(func(ctx context.Context, doc *receipt.Receipt) error {
			audit.EnrichUpdatedByDirect(ctx, &doc.UpdatedBy)
			return nil
		})
		if cfg.AuditService != nil {
			service.Hooks().OnAfterCreate(func(ctx context.Context, doc *receipt.Receipt) error {
				return cfg.AuditService.LogChange(ctx, "Receipt", doc.ID, postgres.AuditActionCreate, map[string]any{"number": doc.Number})
			})
			service.Hooks().OnAfterUpdate(func(ctx context.Context, doc *receipt.Receipt) error {
				return cfg.AuditService.LogChange(ctx, "Receipt", doc.ID, postgres.AuditActionUpdate, map[string]any{"number": doc.Number})
			})
		}

		handler := handlers.NewReceiptHandler(baseHandler, service)
		RegisterDocumentRoutes(docsGroup.Group("/receipts"), handler)
	}

	// --- ISSUES ---
	{
		repo := document_repo.NewIssueRepo(cfg.TxManager)
		service := issue.NewService(repo, deps.postingEngine, cfg.Numerator, cfg.TxManager)

		service.Hooks().OnBeforeCreate(func(ctx context.Context, doc *issue.Issue) error {
			audit.EnrichCreatedByDirect(ctx, &doc.CreatedBy, &doc.UpdatedBy)
			return nil
		})
		service.Hooks().OnBeforeUpdate(func(ctx context.Context, doc *issue.Issue) error {
			audit.EnrichUpdatedByDirect(ctx, &doc.UpdatedBy)
			return nil
		})
		if cfg.AuditService != nil {
			service.Hooks().OnAfterCreate(func(ctx context.Context, doc *issue.Issue) error {
				return cfg.AuditService.LogChange(ctx, "Issue", doc.ID, postgres.AuditActionCreate, map[string]any{"number": doc.Number})
			})
			service.Hooks().OnAfterUpdate(func(ctx context.Context, doc *issue.Issue) error {
				return cfg.AuditService.LogChange(ctx, "Issue", doc.ID, postgres.AuditActionUpdate, map[string]any{"number": doc.Number})
			})
		}

		handler := handlers.NewIssueHandler(baseHandler, service)
		RegisterDocumentRoutes(docsGroup.Group("/issues"), handler)
	}
}

// registerRegisterRoutes registers accumulation register endpoints.
func registerRegisterRoutes(rg *gin.RouterGroup, deps *dependencies) {
	registers := rg.Group("/registers")
	baseHandler := handlers.NewBaseHandler()

	stockHandler := handlers.NewStockHandler(baseHandler, deps.stockService, deps.stockRepo)
	stockHandler.RegisterRoutes(registers.Group("/stock"))
}

// registerAuditRoutes registers entity history endpoints.
func registerAuditRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuditService == nil {
		return
	}

	auditHandler := handlers.NewAuditHandler(handlers.NewBaseHandler(), cfg.AuditService)
	auditHandler.RegisterRoutes(rg.Group("/audit"))
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	reportsGroup := rg.Group("/reports")
	baseHandler := handlers.NewBaseHandler()

	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	reportService := reports.NewService(reportRepo)
	reportHandler := handlers.NewReportsHandler(baseHandler, reportService)

	reportHandler.RegisterRoutes(reportsGroup)
}
