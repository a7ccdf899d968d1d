package controllers

import (
	"github.com/Adithyan-707/CampusRide/services"
	"github.com/Adithyan-707/CampusRide/utils"
	"github.com/gin-gonic/gin"
)

// PaymentController receives asynchronous provider notifications.
type PaymentController struct {
	gateway *services.PaymentGatewayAdapter
}

// NewPaymentController creates a PaymentController
func NewPaymentController(gateway *services.PaymentGatewayAdapter) *PaymentController {
	return &PaymentController{gateway: gateway}
}

// HandlePaymentWebhook processes a provider webhook delivery. The provider
// delivers at least once, so a notification for an already-settled group
// (no PENDING rows left) is acknowledged with 200 and no side effects rather
// than surfaced as an error, which would only trigger pointless redelivery.
func (ctrl *PaymentController) HandlePaymentWebhook(c *gin.Context) {
	utils.LogInfo("HandlePaymentWebhook called")

	payload, err := c.GetRawData()
	if err != nil {
		utils.LogError("Failed to read webhook body: %v", err)
		utils.BadRequest(c, "Failed to read webhook body", err.Error())
		return
	}

	if err := ctrl.gateway.HandleWebhook(payload); err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogInfo("Webhook redelivery for settled reference, acknowledging")
			utils.Success(c, "Webhook already processed", nil)
			return
		}
		utils.LogError("Failed to process webhook: %v", err)
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Webhook processed successfully", nil)
}
