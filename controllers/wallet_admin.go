package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Adithyan-707/CampusRide/config"
	"github.com/Adithyan-707/CampusRide/models"
	"github.com/Adithyan-707/CampusRide/services"
	"github.com/Adithyan-707/CampusRide/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// AdminWalletController exposes wallet maintenance and reporting to admins.
type AdminWalletController struct {
	walletService *services.WalletService
}

// NewAdminWalletController creates an AdminWalletController
func NewAdminWalletController(walletService *services.WalletService) *AdminWalletController {
	return &AdminWalletController{walletService: walletService}
}

// ListUserTransactions returns a user's transactions for admin review
func (ctrl *AdminWalletController) ListUserTransactions(c *gin.Context) {
	utils.LogInfo("ListUserTransactions called")

	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		utils.LogError("Invalid user ID format: %v", err)
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}
	utils.LogInfo("Listing transactions for user ID: %d", userID)

	pagination := utils.NewPagination(c)
	txns, total, err := ctrl.walletService.GetTransactionHistory(&models.User{ID: uint(userID)}, pagination.Limit, pagination.Offset)
	if err != nil {
		utils.LogError("Failed to list transactions for user ID: %d: %v", userID, err)
		utils.RespondError(c, err)
		return
	}

	utils.SuccessWithPagination(c, "Transactions retrieved successfully", gin.H{
		"transactions": formatTransactions(txns),
	}, total, pagination.Page, pagination.Limit)
}

// SyncWalletTotals refreshes a wallet's informational cumulative counters
func (ctrl *AdminWalletController) SyncWalletTotals(c *gin.Context) {
	utils.LogInfo("SyncWalletTotals called")

	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		utils.LogError("Invalid user ID format: %v", err)
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}
	utils.LogInfo("Syncing wallet totals for user ID: %d", userID)

	wallet, err := ctrl.walletService.SyncWalletTotals(uint(userID))
	if err != nil {
		utils.LogError("Failed to sync wallet totals for user ID: %d: %v", userID, err)
		utils.RespondError(c, err)
		return
	}
	utils.LogInfo("Successfully synced wallet totals for user ID: %d", userID)

	utils.Success(c, "Wallet totals synced successfully", gin.H{
		"wallet_id":       wallet.ID,
		"total_topped_up": fmt.Sprintf("%.2f", wallet.TotalToppedUp),
		"total_spent":     fmt.Sprintf("%.2f", wallet.TotalSpent),
		"last_synced_at":  wallet.LastSyncedAt,
	})
}

// DownloadWalletReportExcel exports recent wallet transactions as Excel
func (ctrl *AdminWalletController) DownloadWalletReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadWalletReportExcel called")

	period := c.DefaultQuery("period", "day")
	utils.LogDebug("Generating Excel report for period: %s", period)

	now := time.Now()
	var startDate, endDate time.Time

	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	case "week":
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		startDate = endDate.AddDate(0, 0, -6)
		startDate = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	case "month":
		startDate = now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		endDate = now.Add(24 * time.Hour)
	default:
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	var txns []models.Transaction
	query := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Preload("ActorUser").
		Order("created_at DESC")
	if err := query.Find(&txns).Error; err != nil {
		utils.LogError("Failed to fetch transactions: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d transactions for Excel report", len(txns))

	// Summary over the period
	var summary struct {
		TotalRows    int
		ToppedUp     float64
		PendingTotal float64
		FailedTotal  float64
	}
	for _, txn := range txns {
		if txn.ActorKind != models.TransactionActorUser {
			continue
		}
		summary.TotalRows++
		switch txn.Status {
		case models.TransactionStatusSuccess:
			summary.ToppedUp += txn.Amount
		case models.TransactionStatusPending:
			summary.PendingTotal += txn.Amount
		case models.TransactionStatusFailed:
			summary.FailedTotal += txn.Amount
		}
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Wallet Transactions")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	// Report header
	headerRow := sheet.AddRow()
	headerRow.AddCell().SetString("CAMPUSRIDE - Wallet Transactions Report")
	headerRow = sheet.AddRow()
	headerRow.AddCell().SetString("Period: " + period + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	headerRow = sheet.AddRow()
	headerRow.AddCell().SetString(fmt.Sprintf("User rows: %d | Topped up: %.2f | Pending: %.2f | Failed: %.2f",
		summary.TotalRows, summary.ToppedUp, summary.PendingTotal, summary.FailedTotal))
	sheet.AddRow() // spacing

	// Table headers
	headers := []string{"ID", "Group", "Actor", "User", "Direction", "Amount", "Status", "PSP Ref", "Note", "Date"}
	tableHeader := sheet.AddRow()
	for _, h := range headers {
		cell := tableHeader.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	// Table rows
	for _, txn := range txns {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(txn.ID))
		row.AddCell().SetString(txn.GroupID)
		row.AddCell().SetString(txn.ActorKind)
		if txn.ActorUser != nil {
			row.AddCell().SetString(txn.ActorUser.Name)
		} else {
			row.AddCell().SetString("-")
		}
		row.AddCell().SetString(txn.Direction)
		row.AddCell().SetFloat(txn.Amount)
		row.AddCell().SetString(txn.Status)
		row.AddCell().SetString(txn.PspRef)
		row.AddCell().SetString(txn.Note)
		row.AddCell().SetString(txn.CreatedAt.Format("2006-01-02 15:04"))
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=wallet-report-"+period+".xlsx")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel report: %v", err)
		utils.InternalServerError(c, "Failed to write Excel report", err.Error())
		return
	}
	utils.LogInfo("Successfully generated wallet Excel report for period: %s", period)
}
