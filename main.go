package main

import (
	"log"

	"github.com/Adithyan-707/CampusRide/config"
	"github.com/Adithyan-707/CampusRide/controllers"
	"github.com/Adithyan-707/CampusRide/repository"
	"github.com/Adithyan-707/CampusRide/routes"
	"github.com/Adithyan-707/CampusRide/services"
	"github.com/Adithyan-707/CampusRide/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Repositories
	txnRepo := repository.NewTransactionRepository(config.DB)
	walletRepo := repository.NewWalletRepository(config.DB)
	userRepo := repository.NewUserRepository(config.DB)
	keyRepo := repository.NewIdempotencyKeyRepository(config.DB)

	// Services
	balanceService := services.NewBalanceCalculationService(txnRepo)
	notifier := utils.NewEmailService()
	txnService := services.NewTransactionService(txnRepo, walletRepo, userRepo, balanceService, notifier)
	walletService := services.NewWalletService(walletRepo, userRepo, txnRepo, balanceService)
	provider := services.NewRazorpayProviderClient(cfg.RazorpayKey, cfg.RazorpaySecret)
	gateway := services.NewPaymentGatewayAdapter(txnService, keyRepo, provider, services.NewOrderCodeGenerator())

	// Controllers
	router := routes.SetupRouter(routes.Controllers{
		Wallet:      controllers.NewWalletController(walletService),
		Topup:       controllers.NewTopupController(gateway),
		Payment:     controllers.NewPaymentController(gateway),
		Driver:      controllers.NewDriverController(walletService),
		AdminWallet: controllers.NewAdminWalletController(walletService),
	})

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	port := cfg.Port
	if port == "" {
		port = utils.DefaultPort
	}

	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
