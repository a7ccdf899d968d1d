package services

import (
	"time"

	"github.com/Adithyan-707/CampusRide/models"
	"github.com/Adithyan-707/CampusRide/repository"
	"github.com/Adithyan-707/CampusRide/utils"
)

// WalletBalance is the read model for a wallet: derived figures from the
// ledger plus the wallet row's informational cumulative counters.
type WalletBalance struct {
	WalletID      uint       `json:"wallet_id"`
	Available     float64    `json:"available"`
	Pending       float64    `json:"pending"`
	Total         float64    `json:"total"`
	TotalToppedUp float64    `json:"total_topped_up"`
	TotalSpent    float64    `json:"total_spent"`
	IsActive      bool       `json:"is_active"`
	LastSyncedAt  *time.Time `json:"last_synced_at"`
}

// DriverEarnings combines balance figures with recent transaction history for
// display. The history is never used for balance computation.
type DriverEarnings struct {
	Balance      WalletBalance        `json:"balance"`
	Transactions []models.Transaction `json:"transactions"`
}

// WalletService is the read-facing facade over the ledger. All aggregation is
// delegated to the balance calculation service; nothing here writes
// transaction rows.
type WalletService struct {
	wallets repository.WalletRepository
	users   repository.UserRepository
	txns    repository.TransactionRepository
	balance *BalanceCalculationService
}

// NewWalletService creates a WalletService
func NewWalletService(
	wallets repository.WalletRepository,
	users repository.UserRepository,
	txns repository.TransactionRepository,
	balance *BalanceCalculationService,
) *WalletService {
	return &WalletService{
		wallets: wallets,
		users:   users,
		txns:    txns,
		balance: balance,
	}
}

// resolveWallet resolves the principal's user and wallet, failing NotFound on
// either being absent.
func (s *WalletService) resolveWallet(principal *models.User) (*models.Wallet, error) {
	if principal == nil {
		return nil, utils.ValidationErr("Principal is required")
	}

	user, err := s.users.FindByID(principal.ID)
	if err != nil {
		return nil, utils.WrapError(err, "failed to resolve user")
	}
	if user == nil {
		return nil, utils.NotFoundError("User not found")
	}

	wallet, err := s.wallets.FindByUserID(user.ID)
	if err != nil {
		return nil, utils.WrapError(err, "failed to resolve wallet")
	}
	if wallet == nil {
		return nil, utils.NotFoundError(utils.ErrWalletNotFound)
	}
	return wallet, nil
}

func (s *WalletService) assembleBalance(wallet *models.Wallet) (*WalletBalance, error) {
	available, err := s.balance.CalculateAvailableBalance(wallet.ID)
	if err != nil {
		return nil, err
	}
	pending, err := s.balance.CalculatePendingBalance(wallet.ID)
	if err != nil {
		return nil, err
	}

	return &WalletBalance{
		WalletID:      wallet.ID,
		Available:     available,
		Pending:       pending,
		Total:         available + pending,
		TotalToppedUp: wallet.TotalToppedUp,
		TotalSpent:    wallet.TotalSpent,
		IsActive:      wallet.IsActive,
		LastSyncedAt:  wallet.LastSyncedAt,
	}, nil
}

// GetBalance returns the principal's wallet balance view.
func (s *WalletService) GetBalance(principal *models.User) (*WalletBalance, error) {
	wallet, err := s.resolveWallet(principal)
	if err != nil {
		return nil, err
	}
	return s.assembleBalance(wallet)
}

// HasSufficientBalance reports whether the user's available balance covers
// amount. A negative amount is a validation failure and never reaches the
// balance calculator.
func (s *WalletService) HasSufficientBalance(userID uint, amount float64) (bool, error) {
	if amount < 0 {
		return false, utils.ValidationErr(utils.ErrNegativeAmount)
	}

	wallet, err := s.wallets.FindByUserID(userID)
	if err != nil {
		return false, utils.WrapError(err, "failed to resolve wallet")
	}
	if wallet == nil {
		return false, utils.NotFoundError(utils.ErrWalletNotFound)
	}

	available, err := s.balance.CalculateAvailableBalance(wallet.ID)
	if err != nil {
		return false, err
	}
	return available >= amount, nil
}

// GetDriverEarnings returns the principal's balance view together with their
// recent transactions, newest first.
func (s *WalletService) GetDriverEarnings(principal *models.User) (*DriverEarnings, error) {
	wallet, err := s.resolveWallet(principal)
	if err != nil {
		return nil, err
	}

	balance, err := s.assembleBalance(wallet)
	if err != nil {
		return nil, err
	}

	txns, _, err := s.txns.FindByWalletID(wallet.ID, 20, 0)
	if err != nil {
		return nil, utils.WrapError(err, "failed to load transaction history")
	}

	return &DriverEarnings{
		Balance:      *balance,
		Transactions: txns,
	}, nil
}

// GetTransactionHistory returns a page of the principal's own transactions,
// newest first, with the total row count.
func (s *WalletService) GetTransactionHistory(principal *models.User, limit, offset int) ([]models.Transaction, int64, error) {
	wallet, err := s.resolveWallet(principal)
	if err != nil {
		return nil, 0, err
	}

	txns, total, err := s.txns.FindByWalletID(wallet.ID, limit, offset)
	if err != nil {
		return nil, 0, utils.WrapError(err, "failed to load transaction history")
	}
	return txns, total, nil
}

// SyncWalletTotals recomputes the wallet's informational cumulative counters
// from settled ledger rows and stamps LastSyncedAt. Maintenance only; these
// counters take no part in balance computation or settlement.
func (s *WalletService) SyncWalletTotals(userID uint) (*models.Wallet, error) {
	wallet, err := s.wallets.FindByUserID(userID)
	if err != nil {
		return nil, utils.WrapError(err, "failed to resolve wallet")
	}
	if wallet == nil {
		return nil, utils.NotFoundError(utils.ErrWalletNotFound)
	}

	toppedUp, err := s.txns.SumAmountByStatusAndDirection(wallet.ID, models.TransactionStatusSuccess, models.TransactionDirectionIn)
	if err != nil {
		return nil, utils.WrapError(err, "failed to total top-ups")
	}
	spent, err := s.txns.SumAmountByStatusAndDirection(wallet.ID, models.TransactionStatusSuccess, models.TransactionDirectionOut)
	if err != nil {
		return nil, utils.WrapError(err, "failed to total spends")
	}

	now := time.Now()
	wallet.TotalToppedUp = toppedUp
	wallet.TotalSpent = spent
	wallet.LastSyncedAt = &now
	if err := s.wallets.Save(wallet); err != nil {
		return nil, utils.WrapError(err, "failed to save wallet totals")
	}

	utils.LogInfo("SyncWalletTotals - wallet %d synced: topped up %.2f, spent %.2f", wallet.ID, toppedUp, spent)
	return wallet, nil
}
