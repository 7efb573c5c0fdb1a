package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/projectkingz/LocalPerks-WEB-sub000/config"
	"github.com/projectkingz/LocalPerks-WEB-sub000/database"
	"github.com/projectkingz/LocalPerks-WEB-sub000/handlers"
	"github.com/projectkingz/LocalPerks-WEB-sub000/services"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if config.AppConfig.Environment != "production" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	// Connect to database
	db, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize tables
	if err := db.InitializeTables(); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize tables")
	}

	// Wire up the points engine
	configService := services.NewConfigService(db, logger)
	calendar := services.NewEnglandWalesCalendar()
	engine := services.NewPointsEngine(configService, calendar, logger)
	ledger := services.NewLedgerService(db, logger)

	transactionHandler := handlers.NewTransactionHandler(engine, ledger, configService)
	customerHandler := handlers.NewCustomerHandler(ledger)
	redemptionHandler := handlers.NewRedemptionHandler(ledger, configService)
	tenantHandler := handlers.NewTenantHandler(configService)

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "LocalPerks server is running",
		})
	})

	api := router.Group("/api")
	{
		api.POST("/tenants", tenantHandler.CreateTenant)
		api.GET("/tenants/:id", tenantHandler.GetTenant)
		api.GET("/tenants/:id/points-config", tenantHandler.GetTenantPointsConfig)
		api.PUT("/tenants/:id/points-config", tenantHandler.UpdateTenantPointsConfig)

		api.POST("/customers", customerHandler.CreateCustomer)
		api.GET("/customers/:id/points", customerHandler.GetCustomerPoints)
		api.GET("/customers/:id/points/breakdown", customerHandler.GetCustomerPointsBreakdown)
		api.GET("/customers/:id/transactions", transactionHandler.ListCustomerTransactions)
		api.GET("/customers/:id/discounts", redemptionHandler.GetAvailableDiscounts)
		api.POST("/customers/:id/redemptions", redemptionHandler.RedeemPoints)
		api.POST("/customers/:id/redemptions/validate", redemptionHandler.ValidateRedemption)

		api.POST("/transactions", transactionHandler.CreateTransaction)
		api.GET("/points/preview", transactionHandler.PreviewPoints)

		admin := api.Group("/admin")
		{
			admin.POST("/transactions/:id/approve", transactionHandler.ApproveTransaction)
			admin.POST("/transactions/:id/reject", transactionHandler.RejectTransaction)
			admin.POST("/transactions/:id/void", transactionHandler.VoidTransaction)
		}
	}

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure this properly for production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Info().Str("port", config.AppConfig.ServerPort).Msg("starting server")
	if err := http.ListenAndServe(":"+config.AppConfig.ServerPort, corsHandler.Handler(router)); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
