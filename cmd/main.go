package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nkor5796/ecommerce-db-project/internal/handler"
	mid "github.com/nkor5796/ecommerce-db-project/internal/middleware"
	"github.com/nkor5796/ecommerce-db-project/pkg/config"
	"github.com/nkor5796/ecommerce-db-project/pkg/database"
	"github.com/nkor5796/ecommerce-db-project/pkg/jwtutil"
	"github.com/nkor5796/ecommerce-db-project/pkg/logger"
	"github.com/nkor5796/ecommerce-db-project/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting store-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Load the schema: tables, constraints and referential actions
	if err := database.Migrate(database.GetDB()); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database schema migrated")

	// Optionally load demo seed rows
	if appConfig.Seed.Enabled {
		if err := database.Seed(database.GetDB()); err != nil {
			log.Fatal("Failed to seed demo data", zap.Error(err))
		}
		log.Info("Demo seed data loaded")
	}

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public auth routes
	e.POST("/api/register", handler.Register)
	e.POST("/api/login", handler.Login)

	// User routes
	userAPI := e.Group("/api/users", mid.AuthMiddleware)
	userAPI.GET("", handler.ListUsers)
	userAPI.GET("/:id", handler.GetUser)
	userAPI.POST("/:id/deactivate", handler.DeactivateUser)
	userAPI.DELETE("/:id", handler.DeleteUser)

	// Profile routes for the authenticated user
	profileAPI := e.Group("/api/profile", mid.AuthMiddleware)
	profileAPI.GET("", handler.GetMyProfile)
	profileAPI.PUT("", handler.UpsertMyProfile)

	// Address routes for the authenticated user
	addressAPI := e.Group("/api/addresses", mid.AuthMiddleware)
	addressAPI.GET("", handler.ListMyAddresses)
	addressAPI.POST("", handler.CreateAddress)
	addressAPI.PUT("/:id", handler.UpdateAddress)
	addressAPI.DELETE("/:id", handler.DeleteAddress)

	// Category routes
	categoryAPI := e.Group("/api/categories")
	categoryAPI.GET("", handler.ListCategories)
	categoryAPI.GET("/:id", handler.GetCategory)
	categoryAPI.POST("", handler.CreateCategory, mid.AuthMiddleware)
	categoryAPI.PUT("/:id", handler.UpdateCategory, mid.AuthMiddleware)
	categoryAPI.DELETE("/:id", handler.DeleteCategory, mid.AuthMiddleware)

	// Product routes
	productAPI := e.Group("/api/products")
	productAPI.GET("", handler.ListProducts)
	productAPI.GET("/:id", handler.GetProduct)
	productAPI.GET("/:id/reviews", handler.ListProductReviews)
	productAPI.POST("", handler.CreateProduct, mid.AuthMiddleware)
	productAPI.PUT("/:id", handler.UpdateProduct, mid.AuthMiddleware)
	productAPI.DELETE("/:id", handler.DeleteProduct, mid.AuthMiddleware)
	productAPI.POST("/:id/categories/:categoryID", handler.AttachProductCategory, mid.AuthMiddleware)
	productAPI.DELETE("/:id/categories/:categoryID", handler.DetachProductCategory, mid.AuthMiddleware)
	productAPI.POST("/:id/reviews", handler.CreateProductReview, mid.AuthMiddleware)

	// Order routes
	orderAPI := e.Group("/api/orders", mid.AuthMiddleware)
	orderAPI.POST("", handler.CreateOrder)
	orderAPI.GET("", handler.ListMyOrders)
	orderAPI.GET("/:id", handler.GetOrder)
	orderAPI.PUT("/:id/status", handler.UpdateOrderStatus)
	orderAPI.POST("/:id/total", handler.RecomputeOrderTotal)
	orderAPI.DELETE("/:id", handler.DeleteOrder)
	orderAPI.POST("/:id/payment", handler.CreateOrderPayment)
	orderAPI.GET("/:id/payment", handler.GetOrderPayment)

	// Payment routes
	paymentAPI := e.Group("/api/payments", mid.AuthMiddleware)
	paymentAPI.PUT("/:id/status", handler.UpdatePaymentStatus)

	// Review routes
	reviewAPI := e.Group("/api/reviews", mid.AuthMiddleware)
	reviewAPI.DELETE("/:id", handler.DeleteReview)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
