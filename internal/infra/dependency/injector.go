// Package dependency provides dependency injection for the application.
package dependency

import (
	"gorm.io/gorm"

	"github.com/fabrie/backend/config"
	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/application/usecase/category"
	"github.com/fabrie/backend/internal/application/usecase/finance"
	"github.com/fabrie/backend/internal/application/usecase/order"
	"github.com/fabrie/backend/internal/application/usecase/transaction"
	"github.com/fabrie/backend/internal/infra/db"
	"github.com/fabrie/backend/internal/infra/server/router"
	"github.com/fabrie/backend/internal/integration/adapters"
	"github.com/fabrie/backend/internal/integration/cache"
	"github.com/fabrie/backend/internal/integration/entrypoint/controller"
	"github.com/fabrie/backend/internal/integration/entrypoint/middleware"
	"github.com/fabrie/backend/internal/integration/persistence"
)

// Services are the infrastructure adapters the injector cannot build from configuration alone.
type Services struct {
	ImageStorage adapter.ImageStorage
	ReportCache  adapter.ReportCache
	Clock        adapter.Clock
	// CacheHealth is nil when no cache server is configured.
	CacheHealth controller.HealthChecker
}

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	RateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, gormDB *gorm.DB, services Services) *Injector {
	if services.Clock == nil {
		services.Clock = adapters.NewSystemClock()
	}
	if services.ReportCache == nil {
		services.ReportCache = cache.NewNoopReportCache()
	}

	// Create repositories
	orderRepo := persistence.NewOrderRepository(gormDB)
	categoryRepo := persistence.NewCategoryRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	reportRepo := persistence.NewReportRepository(gormDB)

	// Create order use cases
	maxImageBytes := cfg.Upload.MaxImageBytes
	listOrdersUseCase := order.NewListOrdersUseCase(orderRepo)
	getOrderUseCase := order.NewGetOrderUseCase(orderRepo)
	createOrderUseCase := order.NewCreateOrderUseCase(orderRepo, services.ImageStorage, services.Clock, maxImageBytes)
	updateOrderUseCase := order.NewUpdateOrderUseCase(orderRepo, services.ImageStorage, services.Clock, maxImageBytes)
	deleteOrderUseCase := order.NewDeleteOrderUseCase(orderRepo, services.ImageStorage)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	getCategoryUseCase := category.NewGetCategoryUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, services.ReportCache)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, services.ReportCache)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, services.ReportCache, services.Clock)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, services.ReportCache, services.Clock)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, services.ReportCache)

	// Create finance use cases
	getReportUseCase := finance.NewGetReportUseCase(reportRepo, services.ReportCache)
	exportReportUseCase := finance.NewExportReportUseCase(getReportUseCase, adapters.NewPDFReportRenderer(services.Clock))

	// Create controllers
	database := db.NewDatabase(gormDB)
	healthController := controller.NewHealthController(database.HealthCheck, services.CacheHealth)

	orderController := controller.NewOrderController(
		listOrdersUseCase,
		getOrderUseCase,
		createOrderUseCase,
		updateOrderUseCase,
		deleteOrderUseCase,
		services.ImageStorage.URL,
		cfg.Upload.MaxRequestBytes,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		getCategoryUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		getTransactionUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)

	financeController := controller.NewFinanceController(getReportUseCase, exportReportUseCase)

	// Create middleware
	writeRateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)

	// Create router
	r := router.NewRouter(
		healthController,
		orderController,
		categoryController,
		transactionController,
		financeController,
		writeRateLimiter,
		cfg.CORS,
		cfg.Storage,
	)

	return &Injector{
		Config:      cfg,
		DB:          gormDB,
		Router:      r,
		RateLimiter: writeRateLimiter,
	}
}
