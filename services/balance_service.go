package services

import (
	"github.com/Adithyan-707/CampusRide/models"
	"github.com/Adithyan-707/CampusRide/repository"
	"github.com/Adithyan-707/CampusRide/utils"
)

// BalanceCalculationService derives wallet balances from ledger rows on every
// call. There is no cached or stored balance anywhere: the transactions table
// is the single source of truth, so these reads can never drift from it.
type BalanceCalculationService struct {
	txns repository.TransactionRepository
}

// NewBalanceCalculationService creates a BalanceCalculationService
func NewBalanceCalculationService(txns repository.TransactionRepository) *BalanceCalculationService {
	return &BalanceCalculationService{txns: txns}
}

// CalculateAvailableBalance sums the signed amounts of all SUCCESS rows for
// the wallet. Returns zero, never an absent value, when the wallet has no
// settled rows.
func (s *BalanceCalculationService) CalculateAvailableBalance(walletID uint) (float64, error) {
	total, err := s.txns.SumAmountByStatus(walletID, models.TransactionStatusSuccess)
	if err != nil {
		return 0, utils.WrapError(err, "failed to calculate available balance")
	}
	return total, nil
}

// CalculatePendingBalance is the same aggregation restricted to PENDING rows.
func (s *BalanceCalculationService) CalculatePendingBalance(walletID uint) (float64, error) {
	total, err := s.txns.SumAmountByStatus(walletID, models.TransactionStatusPending)
	if err != nil {
		return 0, utils.WrapError(err, "failed to calculate pending balance")
	}
	return total, nil
}

// CalculateTotalBalance is available plus pending.
func (s *BalanceCalculationService) CalculateTotalBalance(walletID uint) (float64, error) {
	available, err := s.CalculateAvailableBalance(walletID)
	if err != nil {
		return 0, err
	}
	pending, err := s.CalculatePendingBalance(walletID)
	if err != nil {
		return 0, err
	}
	return available + pending, nil
}
