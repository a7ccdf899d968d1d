package controllers

import (
	"fmt"

	"github.com/Adithyan-707/CampusRide/services"
	"github.com/Adithyan-707/CampusRide/utils"
	"github.com/gin-gonic/gin"
)

// TopupController drives the top-up initiation flow.
type TopupController struct {
	gateway *services.PaymentGatewayAdapter
}

// NewTopupController creates a TopupController
func NewTopupController(gateway *services.PaymentGatewayAdapter) *TopupController {
	return &TopupController{gateway: gateway}
}

// InitiateWalletTopup reserves an order code, pre-creates the PENDING ledger
// pair and returns the provider checkout link
func (ctrl *TopupController) InitiateWalletTopup(c *gin.Context) {
	utils.LogInfo("InitiateWalletTopup called")
	user, ok := principalFromContext(c)
	if !ok {
		return
	}
	utils.LogInfo("Processing wallet topup request for user ID: %d", user.ID)

	var req struct {
		Amount      float64 `json:"amount" binding:"required"`
		Description string  `json:"description"`
		ReturnURL   string  `json:"return_url" binding:"required"`
		CancelURL   string  `json:"cancel_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request body for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. Amount, return_url and cancel_url are required", err.Error())
		return
	}
	utils.LogDebug("Received topup request - User ID: %d, Amount: %.2f", user.ID, req.Amount)

	description := req.Description
	if description == "" {
		description = "Wallet top-up"
	}

	link, err := ctrl.gateway.CreateTopUpPaymentLink(user.ID, req.Amount, description, req.ReturnURL, req.CancelURL)
	if err != nil {
		utils.LogError("Failed to create topup payment link for user ID: %d: %v", user.ID, err)
		utils.RespondError(c, err)
		return
	}
	utils.LogInfo("Successfully initiated wallet topup for user ID: %d, order code: %s", user.ID, link.OrderCode)

	utils.Success(c, "Wallet topup initiated successfully", gin.H{
		"order_code":     link.OrderCode,
		"checkout_url":   link.CheckoutURL,
		"provider_link":  link.ProviderLinkID,
		"amount_display": fmt.Sprintf("%.2f", link.Amount),
		"group_id":       link.GroupID,
		"status":         link.UserTxn.Status,
		"user": gin.H{
			"name":  user.Name,
			"email": user.Email,
		},
	})
}
