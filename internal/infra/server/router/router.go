// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fabrie/backend/config"
	"github.com/fabrie/backend/internal/integration/entrypoint/controller"
	"github.com/fabrie/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	orderController       *controller.OrderController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	financeController     *controller.FinanceController
	writeRateLimiter      *middleware.RateLimiter
	cors                  config.CORSConfig
	storage               config.StorageConfig
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	orderController *controller.OrderController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	financeController *controller.FinanceController,
	writeRateLimiter *middleware.RateLimiter,
	corsConfig config.CORSConfig,
	storageConfig config.StorageConfig,
) *Router {
	return &Router{
		healthController:      healthController,
		orderController:       orderController,
		categoryController:    categoryController,
		transactionController: transactionController,
		financeController:     financeController,
		writeRateLimiter:      writeRateLimiter,
		cors:                  corsConfig,
		storage:               storageConfig,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	controller.RegisterBindingTagNames()

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), middleware.RequestLogger())
	if len(r.cors.AllowedOrigins) > 0 {
		r.engine.Use(cors.New(cors.Config{
			AllowOrigins:     r.cors.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
			AllowCredentials: r.cors.AllowCredentials,
		}))
	}

	r.setupHealthRoutes()
	r.setupMediaRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures the welcome and health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/", r.healthController.Welcome)
	r.engine.GET("/health", r.healthController.Check)
}

// setupMediaRoutes serves stored images when they live on the local filesystem.
func (r *Router) setupMediaRoutes() {
	if r.storage.Driver != config.StorageDriverLocal {
		return
	}
	prefix := "/" + strings.Trim(r.storage.MediaURL, "/")
	if prefix == "/" || strings.Contains(prefix, "://") {
		return
	}
	r.engine.StaticFS(prefix, http.Dir(r.storage.MediaRoot))
}

// setupAPIRoutes configures the main API routes. Writes share one rate limiter.
func (r *Router) setupAPIRoutes() {
	api := r.engine.Group("/api")
	limit := r.writeRateLimiter.Middleware()

	orders := api.Group("/orders")
	{
		orders.GET("", r.orderController.List)
		orders.POST("", limit, r.orderController.Create)
		orders.GET("/:code", r.orderController.Get)
		orders.PUT("/:code", limit, r.orderController.Update)
		orders.PATCH("/:code", limit, r.orderController.Update)
		orders.DELETE("/:code", limit, r.orderController.Delete)
	}

	finance := api.Group("/finance")
	{
		categories := finance.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", limit, r.categoryController.Create)
			categories.GET("/:id", r.categoryController.Get)
			categories.PUT("/:id", limit, r.categoryController.Update)
			categories.PATCH("/:id", limit, r.categoryController.Update)
			categories.DELETE("/:id", limit, r.categoryController.Delete)
		}

		transactions := finance.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", limit, r.transactionController.Create)
			transactions.GET("/:id", r.transactionController.Get)
			transactions.PUT("/:id", limit, r.transactionController.Update)
			transactions.PATCH("/:id", limit, r.transactionController.Update)
			transactions.DELETE("/:id", limit, r.transactionController.Delete)
		}

		finance.GET("/report", r.financeController.Report)
		finance.GET("/report/pdf", r.financeController.ExportPDF)
	}
}
