package controllers

import (
	"fmt"
	"strconv"

	"github.com/Adithyan-707/CampusRide/models"
	"github.com/Adithyan-707/CampusRide/services"
	"github.com/Adithyan-707/CampusRide/utils"
	"github.com/gin-gonic/gin"
)

// WalletController exposes the wallet read facade to the API layer.
type WalletController struct {
	walletService *services.WalletService
}

// NewWalletController creates a WalletController
func NewWalletController(walletService *services.WalletService) *WalletController {
	return &WalletController{walletService: walletService}
}

// principalFromContext pulls the authenticated user out of the gin context.
func principalFromContext(c *gin.Context) (*models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return nil, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.BadRequest(c, "Invalid user in context", nil)
		return nil, false
	}
	return &user, true
}

// GetWalletBalance returns the user's derived wallet balance
func (ctrl *WalletController) GetWalletBalance(c *gin.Context) {
	utils.LogInfo("GetWalletBalance called")
	user, ok := principalFromContext(c)
	if !ok {
		return
	}
	utils.LogInfo("Processing wallet balance request for user ID: %d", user.ID)

	balance, err := ctrl.walletService.GetBalance(user)
	if err != nil {
		utils.LogError("Failed to get balance for user ID: %d: %v", user.ID, err)
		utils.RespondError(c, err)
		return
	}
	utils.LogInfo("Successfully retrieved wallet balance for user ID: %d", user.ID)

	utils.Success(c, "Wallet balance retrieved successfully", gin.H{
		"wallet_id":       balance.WalletID,
		"available":       fmt.Sprintf("%.2f", balance.Available),
		"pending":         fmt.Sprintf("%.2f", balance.Pending),
		"total":           fmt.Sprintf("%.2f", balance.Total),
		"total_topped_up": fmt.Sprintf("%.2f", balance.TotalToppedUp),
		"total_spent":     fmt.Sprintf("%.2f", balance.TotalSpent),
		"is_active":       balance.IsActive,
		"last_synced_at":  balance.LastSyncedAt,
	})
}

// CheckSufficientBalance reports whether the user's available balance covers
// the requested amount
func (ctrl *WalletController) CheckSufficientBalance(c *gin.Context) {
	utils.LogInfo("CheckSufficientBalance called")
	user, ok := principalFromContext(c)
	if !ok {
		return
	}

	amountStr := c.Query("amount")
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		utils.LogError("Invalid amount %q for user ID: %d", amountStr, user.ID)
		utils.BadRequest(c, "Invalid request. Amount is required and must be a number", nil)
		return
	}

	sufficient, err := ctrl.walletService.HasSufficientBalance(user.ID, amount)
	if err != nil {
		utils.LogError("Failed to check balance for user ID: %d: %v", user.ID, err)
		utils.RespondError(c, err)
		return
	}
	utils.LogInfo("Sufficiency check for user ID: %d, amount %.2f: %v", user.ID, amount, sufficient)

	utils.Success(c, "Balance check completed", gin.H{
		"amount":     fmt.Sprintf("%.2f", amount),
		"sufficient": sufficient,
	})
}

// GetWalletTransactions returns the user's transaction history
func (ctrl *WalletController) GetWalletTransactions(c *gin.Context) {
	utils.LogInfo("GetWalletTransactions called")
	user, ok := principalFromContext(c)
	if !ok {
		return
	}
	utils.LogInfo("Processing wallet transactions request for user ID: %d", user.ID)

	pagination := utils.NewPagination(c)
	txns, total, err := ctrl.walletService.GetTransactionHistory(user, pagination.Limit, pagination.Offset)
	if err != nil {
		utils.LogError("Failed to get transactions for user ID: %d: %v", user.ID, err)
		utils.RespondError(c, err)
		return
	}
	utils.LogInfo("Successfully retrieved %d transactions for user ID: %d", len(txns), user.ID)

	utils.SuccessWithPagination(c, "Wallet transactions retrieved successfully", gin.H{
		"transactions": formatTransactions(txns),
	}, total, pagination.Page, pagination.Limit)
}

// formatTransactions renders ledger rows for display
func formatTransactions(txns []models.Transaction) []gin.H {
	formatted := make([]gin.H, len(txns))
	for i, txn := range txns {
		formatted[i] = gin.H{
			"id":         txn.ID,
			"group_id":   txn.GroupID,
			"type":       txn.Type,
			"direction":  txn.Direction,
			"amount":     fmt.Sprintf("%.2f", txn.Amount),
			"status":     txn.Status,
			"psp_ref":    txn.PspRef,
			"note":       txn.Note,
			"created_at": txn.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return formatted
}
