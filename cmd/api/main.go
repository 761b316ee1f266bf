package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"budgetbox/internal/config"
	"budgetbox/internal/database"
	"budgetbox/internal/handlers"
	"budgetbox/internal/live"
	"budgetbox/internal/logger"
	"budgetbox/internal/middleware"
	"budgetbox/internal/services"
	"budgetbox/internal/validator"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "budgetbox/internal/docs" // Import swagger docs
)

// @title           BudgetBox API
// @version         1.0
// @description     BudgetBox is a personal finance dashboard for tracking income and expenses, managing recurring bills, and watching live spending summaries.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Live snapshot hubs feed the streaming endpoints. Services notify their
	// hub after every write so subscribers see changes without polling.
	db := dbManager.DB()
	transactionHub := live.NewHub(services.TransactionSnapshot(db))
	billHub := live.NewHub(services.BillSnapshot(db))

	// Initialize services
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db, transactionHub)
	billService := services.NewBillService(db, billHub)
	summaryService := services.NewSummaryService(db)
	preferenceService := services.NewPreferenceService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	billHandler := handlers.NewBillHandler(billService, auditService)
	categoryHandler := handlers.NewCategoryHandler()
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService)
	streamHandler := handlers.NewStreamHandler(transactionHub, billHub)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(corsMiddleware(appConfig))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Bill routes
	bills := protected.Group("/bills")
	bills.POST("", billHandler.CreateBill)
	bills.GET("", billHandler.ListBills)
	bills.GET("/:id", billHandler.GetBill)
	bills.PUT("/:id", billHandler.UpdateBill)
	bills.DELETE("/:id", billHandler.DeleteBill)
	bills.POST("/:id/pay", billHandler.MarkBillPaid)
	bills.POST("/:id/advance", billHandler.AdvanceBill)

	// Category and frequency registries
	categories := protected.Group("/categories")
	categories.GET("/transactions", categoryHandler.ListTransactionCategories)
	categories.GET("/bills", categoryHandler.ListBillCategories)
	categories.GET("/frequencies", categoryHandler.ListFrequencies)

	// Dashboard summary
	protected.GET("/summary", summaryHandler.GetSummary)

	// Dashboard preferences
	preferences := protected.Group("/preferences")
	preferences.GET("/layout", preferenceHandler.GetLayout)
	preferences.PUT("/layout", preferenceHandler.SaveLayout)

	// Live snapshot streams
	stream := protected.Group("/stream")
	stream.GET("/transactions", streamHandler.StreamTransactions)
	stream.GET("/bills", streamHandler.StreamBills)

	log.Infof("Starting BudgetBox backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

func corsMiddleware(appConfig *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if appConfig.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = strings.Split(appConfig.AllowedOrigins, ",")
	}
	return cors.New(corsConfig)
}
