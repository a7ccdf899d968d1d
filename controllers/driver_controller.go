package controllers

import (
	"fmt"
	"time"

	"github.com/Adithyan-707/CampusRide/services"
	"github.com/Adithyan-707/CampusRide/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DriverController exposes driver-facing earnings views.
type DriverController struct {
	walletService *services.WalletService
}

// NewDriverController creates a DriverController
func NewDriverController(walletService *services.WalletService) *DriverController {
	return &DriverController{walletService: walletService}
}

// GetDriverEarnings returns the driver's balance figures with recent history
func (ctrl *DriverController) GetDriverEarnings(c *gin.Context) {
	utils.LogInfo("GetDriverEarnings called")
	user, ok := principalFromContext(c)
	if !ok {
		return
	}
	utils.LogInfo("Processing earnings request for driver ID: %d", user.ID)

	earnings, err := ctrl.walletService.GetDriverEarnings(user)
	if err != nil {
		utils.LogError("Failed to get earnings for driver ID: %d: %v", user.ID, err)
		utils.RespondError(c, err)
		return
	}
	utils.LogInfo("Successfully retrieved earnings for driver ID: %d", user.ID)

	utils.Success(c, "Driver earnings retrieved successfully", gin.H{
		"balance": gin.H{
			"available": fmt.Sprintf("%.2f", earnings.Balance.Available),
			"pending":   fmt.Sprintf("%.2f", earnings.Balance.Pending),
			"total":     fmt.Sprintf("%.2f", earnings.Balance.Total),
		},
		"transactions": formatTransactions(earnings.Transactions),
	})
}

// DownloadEarningsStatement generates a PDF statement of the driver's recent
// earnings
func (ctrl *DriverController) DownloadEarningsStatement(c *gin.Context) {
	utils.LogInfo("DownloadEarningsStatement called")
	user, ok := principalFromContext(c)
	if !ok {
		return
	}
	utils.LogInfo("Generating earnings statement for driver ID: %d", user.ID)

	earnings, err := ctrl.walletService.GetDriverEarnings(user)
	if err != nil {
		utils.LogError("Failed to get earnings for driver ID: %d: %v", user.ID, err)
		utils.RespondError(c, err)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Platform info
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "CampusRide")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Campus Mobility Services")
	pdf.Ln(8)
	pdf.Cell(100, 8, "Email: support@campusride.app")
	pdf.Ln(12)

	// Statement header
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "EARNINGS STATEMENT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, "Driver: "+user.Name)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Email: "+user.Email)
	pdf.Ln(6)
	pdf.Cell(100, 8, "Generated: "+time.Now().Format("2006-01-02 15:04:05"))
	pdf.Ln(10)

	// Balance summary
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Balance Summary")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, fmt.Sprintf("Available: %.2f", earnings.Balance.Available))
	pdf.Ln(6)
	pdf.Cell(60, 8, fmt.Sprintf("Pending: %.2f", earnings.Balance.Pending))
	pdf.Ln(6)
	pdf.Cell(60, 8, fmt.Sprintf("Total: %.2f", earnings.Balance.Total))
	pdf.Ln(10)

	// Transactions table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(35, 8, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 8, "Direction", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Status", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 8, "Reference", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	for _, txn := range earnings.Transactions {
		pdf.CellFormat(35, 8, txn.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, txn.Direction, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", txn.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, txn.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 8, txn.PspRef, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=earnings-statement-%d.pdf", user.ID))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF statement for driver ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate statement", err.Error())
		return
	}
	utils.LogInfo("Successfully generated earnings statement for driver ID: %d", user.ID)
}
