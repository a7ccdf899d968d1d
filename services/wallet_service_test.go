package services

import (
	"testing"

	"github.com/Adithyan-707/CampusRide/models"
	"github.com/Adithyan-707/CampusRide/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWalletService() (*WalletService, *fakeTransactionRepo, *fakeWalletRepo) {
	txns := newFakeTransactionRepo()
	wallets := &fakeWalletRepo{wallets: []models.Wallet{
		{ID: 10, UserID: 1, TotalToppedUp: 1200, TotalSpent: 450, IsActive: true},
	}}
	users := &fakeUserRepo{users: []models.User{
		{ID: 1, Name: "Rahul", Email: "rahul@campus.edu", Role: models.UserRoleDriver, IsActive: true},
	}}
	balance := NewBalanceCalculationService(txns)
	return NewWalletService(wallets, users, txns, balance), txns, wallets
}

func TestGetBalanceRequiresPrincipal(t *testing.T) {
	svc, _, _ := newTestWalletService()

	_, err := svc.GetBalance(nil)
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
}

func TestGetBalanceUserNotFound(t *testing.T) {
	svc, _, _ := newTestWalletService()

	_, err := svc.GetBalance(&models.User{ID: 99})
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
	assert.Contains(t, err.Error(), "User not found")
}

func TestGetBalanceCombinesLedgerAndCounters(t *testing.T) {
	svc, txns, _ := newTestWalletService()

	seedTxn(txns, 10, models.TransactionDirectionIn, models.TransactionStatusSuccess, 300)
	seedTxn(txns, 10, models.TransactionDirectionIn, models.TransactionStatusPending, 50)

	balance, err := svc.GetBalance(&models.User{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, uint(10), balance.WalletID)
	assert.Equal(t, 300.0, balance.Available)
	assert.Equal(t, 50.0, balance.Pending)
	assert.Equal(t, 350.0, balance.Total)
	assert.Equal(t, 1200.0, balance.TotalToppedUp)
	assert.Equal(t, 450.0, balance.TotalSpent)
}

func TestHasSufficientBalanceNegativeAmount(t *testing.T) {
	svc, txns, _ := newTestWalletService()

	_, err := svc.HasSufficientBalance(1, -1)
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
	assert.Zero(t, txns.sumCalls, "validation failure must never reach the balance calculator")
}

func TestHasSufficientBalance(t *testing.T) {
	svc, txns, _ := newTestWalletService()
	seedTxn(txns, 10, models.TransactionDirectionIn, models.TransactionStatusSuccess, 100)

	sufficient, err := svc.HasSufficientBalance(1, 100)
	require.NoError(t, err)
	assert.True(t, sufficient, "an exactly covering balance is sufficient")

	sufficient, err = svc.HasSufficientBalance(1, 100.01)
	require.NoError(t, err)
	assert.False(t, sufficient)
}

func TestHasSufficientBalanceWalletNotFound(t *testing.T) {
	svc, _, _ := newTestWalletService()

	_, err := svc.HasSufficientBalance(99, 10)
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
}

func TestGetDriverEarnings(t *testing.T) {
	svc, txns, _ := newTestWalletService()

	seedTxn(txns, 10, models.TransactionDirectionIn, models.TransactionStatusSuccess, 200)
	seedTxn(txns, 10, models.TransactionDirectionIn, models.TransactionStatusSuccess, 800)
	seedTxn(txns, 10, models.TransactionDirectionIn, models.TransactionStatusPending, 150)

	earnings, err := svc.GetDriverEarnings(&models.User{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, earnings.Balance.Available)
	assert.Equal(t, 150.0, earnings.Balance.Pending)

	require.Len(t, earnings.Transactions, 3)
	// Newest first
	assert.Equal(t, 150.0, earnings.Transactions[0].Amount)
	assert.Equal(t, 200.0, earnings.Transactions[2].Amount)
}

func TestSyncWalletTotals(t *testing.T) {
	svc, txns, wallets := newTestWalletService()

	seedTxn(txns, 10, models.TransactionDirectionIn, models.TransactionStatusSuccess, 700)
	seedTxn(txns, 10, models.TransactionDirectionOut, models.TransactionStatusSuccess, 250)
	seedTxn(txns, 10, models.TransactionDirectionIn, models.TransactionStatusPending, 999)

	wallet, err := svc.SyncWalletTotals(1)
	require.NoError(t, err)
	assert.Equal(t, 700.0, wallet.TotalToppedUp)
	assert.Equal(t, 250.0, wallet.TotalSpent)
	require.NotNil(t, wallet.LastSyncedAt)

	// Persisted back
	stored, err := wallets.FindByID(10)
	require.NoError(t, err)
	assert.Equal(t, 700.0, stored.TotalToppedUp)
}
