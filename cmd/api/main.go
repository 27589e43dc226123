package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"billow/internal/config"
	"billow/internal/database"
	"billow/internal/handlers"
	"billow/internal/logger"
	"billow/internal/middleware"
	"billow/internal/services"
	"billow/internal/validator"

	_ "billow/internal/docs" // Import swagger docs
)

// @title           Billow API
// @version         1.0
// @description     Billow is a weekly financial planner: it tracks bills, paychecks, deposits, and gigs, expands recurring income, and projects running balances across week buckets.
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

	// Register custom validation tags
	validator.Register()

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

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	billService := services.NewBillService(db)
	incomeService := services.NewIncomeService(db)
	recurringService := services.NewRecurringService(db)
	plannerService := services.NewPlannerService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	billHandler := handlers.NewBillHandler(billService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	recurringHandler := handlers.NewRecurringHandler(recurringService, auditService)
	plannerHandler := handlers.NewPlannerHandler(plannerService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

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

	// Bill routes
	bills := protected.Group("/bills")
	bills.POST("", billHandler.CreateBill)
	bills.GET("", billHandler.GetBills)
	bills.GET("/:id", billHandler.GetBill)
	bills.PUT("/:id", billHandler.UpdateBill)
	bills.DELETE("/:id", billHandler.DeleteBill)
	bills.PUT("/:id/deferred", billHandler.SetDeferredFlag)
	bills.POST("/:id/payments", billHandler.RecordPayment)
	bills.DELETE("/:id/payments/:payment_id", billHandler.DeletePayment)
	bills.POST("/:id/deferments", billHandler.DeferBill)
	bills.DELETE("/:id/deferments/:deferment_id", billHandler.ResolveDeferment)

	// Paycheck routes
	paychecks := protected.Group("/paychecks")
	paychecks.POST("", incomeHandler.CreatePaycheck)
	paychecks.GET("", incomeHandler.GetPaychecks)
	paychecks.PUT("/:id", incomeHandler.UpdatePaycheck)
	paychecks.DELETE("/:id", incomeHandler.DeletePaycheck)

	// Deposit routes
	deposits := protected.Group("/deposits")
	deposits.POST("", incomeHandler.CreateDeposit)
	deposits.GET("", incomeHandler.GetDeposits)
	deposits.PUT("/:id", incomeHandler.UpdateDeposit)
	deposits.DELETE("/:id", incomeHandler.DeleteDeposit)

	// Gig routes
	gigs := protected.Group("/gigs")
	gigs.POST("", incomeHandler.CreateGig)
	gigs.GET("", incomeHandler.GetGigs)
	gigs.POST("/link", incomeHandler.LinkIncome)
	gigs.POST("/unlink", incomeHandler.UnlinkIncome)
	gigs.GET("/:id", incomeHandler.GetGig)
	gigs.PUT("/:id", incomeHandler.UpdateGig)
	gigs.DELETE("/:id", incomeHandler.DeleteGig)

	// Recurring income routes
	recurring := protected.Group("/recurring")
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.GET("", recurringHandler.GetRecurring)
	recurring.PUT("/:id", recurringHandler.UpdateRecurring)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)
	recurring.GET("/:id/preview", recurringHandler.PreviewRecurring)

	// Planner routes
	planner := protected.Group("/planner")
	planner.GET("/weeks", plannerHandler.GetWeeks)
	planner.GET("/unscheduled", plannerHandler.GetUnscheduled)

	log.Infof("Starting Billow backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
