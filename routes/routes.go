package routes

import (
	"github.com/Adithyan-707/CampusRide/controllers"
	"github.com/Adithyan-707/CampusRide/middleware"
	"github.com/gin-gonic/gin"
)

// Controllers groups the wired controller instances the router needs.
type Controllers struct {
	Wallet      *controllers.WalletController
	Topup       *controllers.TopupController
	Payment     *controllers.PaymentController
	Driver      *controllers.DriverController
	AdminWallet *controllers.AdminWalletController
}

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(ctrl Controllers) *gin.Engine {
	router := gin.Default()

	api := router.Group("/v1")
	{
		// Provider webhook: unauthenticated, the provider is the caller
		api.POST("/payment/webhook", ctrl.Payment.HandlePaymentWebhook)

		// Wallet routes for authenticated users
		wallet := api.Group("/wallet")
		wallet.Use(middleware.AuthMiddleware())
		{
			wallet.GET("/balance", ctrl.Wallet.GetWalletBalance)
			wallet.GET("/sufficient", ctrl.Wallet.CheckSufficientBalance)
			wallet.GET("/transactions", ctrl.Wallet.GetWalletTransactions)
			wallet.POST("/topup", ctrl.Topup.InitiateWalletTopup)
		}

		// Driver earnings routes
		driver := api.Group("/driver")
		driver.Use(middleware.AuthMiddleware(), middleware.DriverMiddleware())
		{
			driver.GET("/earnings", ctrl.Driver.GetDriverEarnings)
			driver.GET("/earnings/statement", ctrl.Driver.DownloadEarningsStatement)
		}

		// Admin wallet maintenance and reporting
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
		{
			admin.GET("/wallets/:userId/transactions", ctrl.AdminWallet.ListUserTransactions)
			admin.POST("/wallets/:userId/sync", ctrl.AdminWallet.SyncWalletTotals)
			admin.GET("/wallets/report/excel", ctrl.AdminWallet.DownloadWalletReportExcel)
		}
	}

	return router
}
