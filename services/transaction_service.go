package services

import (
	"fmt"

	"github.com/Adithyan-707/CampusRide/models"
	"github.com/Adithyan-707/CampusRide/repository"
	"github.com/Adithyan-707/CampusRide/utils"
	"github.com/google/uuid"
)

// NotificationService is the contract the transaction service uses to notify
// users about settlement outcomes. The SMTP implementation lives in utils.
type NotificationService interface {
	SendTopUpSuccessEmail(email, name string, amount float64, ref string, newBalance float64) error
	SendPaymentFailedEmail(email, name string, amount float64, ref, reason string) error
}

// TransactionService owns the top-up lifecycle and is the only writer of
// transaction rows. Every top-up is a pair of rows sharing a group id: a
// SYSTEM row against the clearing wallet and a USER row against the user's
// wallet. It never writes a wallet balance because no such column exists.
type TransactionService struct {
	txns     repository.TransactionRepository
	wallets  repository.WalletRepository
	users    repository.UserRepository
	balance  *BalanceCalculationService
	notifier NotificationService
}

// NewTransactionService creates a TransactionService
func NewTransactionService(
	txns repository.TransactionRepository,
	wallets repository.WalletRepository,
	users repository.UserRepository,
	balance *BalanceCalculationService,
	notifier NotificationService,
) *TransactionService {
	return &TransactionService{
		txns:     txns,
		wallets:  wallets,
		users:    users,
		balance:  balance,
		notifier: notifier,
	}
}

// InitTopup creates the PENDING ledger pair for a top-up, idempotently.
// Calling it again with the same (pspRef, amount) returns the existing pair
// unchanged; the unique index on the idempotency key is the authoritative
// guard, so the loser of a concurrent race re-queries and returns the
// winner's rows instead of erroring.
func (s *TransactionService) InitTopup(userID uint, amount float64, pspRef, description string) (*models.Transaction, *models.Transaction, error) {
	key := DeriveIdempotencyKey(models.TransactionTypeTopup, pspRef, amount)
	utils.LogDebug("InitTopup - User ID: %d, PSP ref: %s, Key: %s", userID, pspRef, key)

	existing, err := s.txns.FindByIdempotencyKey(key)
	if err != nil {
		return nil, nil, utils.WrapError(err, "failed to check idempotency key")
	}
	if existing != nil {
		utils.LogInfo("InitTopup replay detected for PSP ref: %s, returning existing group %s", pspRef, existing.GroupID)
		return s.loadGroupPair(existing.GroupID)
	}

	wallet, err := s.wallets.FindByUserID(userID)
	if err != nil {
		return nil, nil, utils.WrapError(err, "failed to resolve wallet")
	}
	if wallet == nil {
		utils.LogError("InitTopup - no wallet for user ID: %d", userID)
		return nil, nil, utils.NotFoundError(utils.ErrWalletNotFound)
	}

	groupID := uuid.New().String()
	clearing := models.SystemWalletTopupClearing

	systemTxn := &models.Transaction{
		GroupID:      groupID,
		Type:         models.TransactionTypeTopup,
		Direction:    models.TransactionDirectionOut,
		ActorKind:    models.TransactionActorSystem,
		SystemWallet: &clearing,
		Amount:       amount,
		Status:       models.TransactionStatusPending,
		PspRef:       pspRef,
		Note:         description,
	}
	userTxn := &models.Transaction{
		GroupID:        groupID,
		Type:           models.TransactionTypeTopup,
		Direction:      models.TransactionDirectionIn,
		ActorKind:      models.TransactionActorUser,
		ActorUserID:    &userID,
		WalletID:       &wallet.ID,
		Amount:         amount,
		Status:         models.TransactionStatusPending,
		IdempotencyKey: &key,
		PspRef:         pspRef,
		Note:           description,
	}

	if err := s.txns.CreatePair(systemTxn, userTxn); err != nil {
		if s.txns.IsDuplicateKeyError(err) {
			// Lost the initiation race: the winner's pair is already durable.
			utils.LogInfo("InitTopup lost creation race for PSP ref: %s, returning winner's group", pspRef)
			winner, qerr := s.txns.FindByIdempotencyKey(key)
			if qerr != nil {
				return nil, nil, utils.WrapError(qerr, "failed to load winning transaction")
			}
			if winner == nil {
				return nil, nil, utils.InternalError("Duplicate key reported but no transaction found", err)
			}
			return s.loadGroupPair(winner.GroupID)
		}
		return nil, nil, utils.WrapError(err, "failed to create transaction pair")
	}

	utils.LogInfo("InitTopup created PENDING group %s for user ID: %d, PSP ref: %s", groupID, userID, pspRef)
	return systemTxn, userTxn, nil
}

// loadGroupPair returns a group's rows split into (system, user).
func (s *TransactionService) loadGroupPair(groupID string) (*models.Transaction, *models.Transaction, error) {
	rows, err := s.txns.FindByGroupID(groupID)
	if err != nil {
		return nil, nil, utils.WrapError(err, "failed to load transaction group")
	}

	var systemTxn, userTxn *models.Transaction
	for i := range rows {
		switch rows[i].ActorKind {
		case models.TransactionActorSystem:
			systemTxn = &rows[i]
		case models.TransactionActorUser:
			userTxn = &rows[i]
		}
	}
	if systemTxn == nil || userTxn == nil {
		return nil, nil, utils.InternalError(fmt.Sprintf("Transaction group %s is incomplete", groupID), nil)
	}
	return systemTxn, userTxn, nil
}

// HandleTopupSuccess settles every PENDING row carrying the PSP reference to
// SUCCESS as one unit, then notifies the actor user with their recomputed
// available balance. A reference with no PENDING rows fails NotFound; the
// webhook layer treats that as an already-settled redelivery.
func (s *TransactionService) HandleTopupSuccess(pspRef string) error {
	pending, err := s.txns.FindByPspRefAndStatus(pspRef, models.TransactionStatusPending)
	if err != nil {
		return utils.WrapError(err, "failed to load pending transactions")
	}
	if len(pending) == 0 {
		utils.LogError("HandleTopupSuccess - no pending transactions for PSP ref: %s", pspRef)
		return utils.NotFoundError(utils.ErrNoPendingTxns)
	}

	group := make([]*models.Transaction, 0, len(pending))
	for i := range pending {
		pending[i].Status = models.TransactionStatusSuccess
		group = append(group, &pending[i])
	}
	if err := s.txns.SaveGroup(group); err != nil {
		return utils.WrapError(err, "failed to settle transactions")
	}
	utils.LogInfo("HandleTopupSuccess settled %d transactions for PSP ref: %s", len(group), pspRef)

	s.notifySettlement(pspRef, group, true, "")
	return nil
}

// HandleTopupFailed settles every PENDING row carrying the PSP reference to
// FAILED, records the reason on the USER row's note and notifies the user.
func (s *TransactionService) HandleTopupFailed(pspRef, reason string) error {
	pending, err := s.txns.FindByPspRefAndStatus(pspRef, models.TransactionStatusPending)
	if err != nil {
		return utils.WrapError(err, "failed to load pending transactions")
	}
	if len(pending) == 0 {
		utils.LogError("HandleTopupFailed - no pending transactions for PSP ref: %s", pspRef)
		return utils.NotFoundError(utils.ErrNoPendingTxns)
	}

	group := make([]*models.Transaction, 0, len(pending))
	for i := range pending {
		pending[i].Status = models.TransactionStatusFailed
		if pending[i].ActorKind == models.TransactionActorUser {
			if pending[i].Note != "" {
				pending[i].Note += " "
			}
			pending[i].Note += "Failed: " + reason
		}
		group = append(group, &pending[i])
	}
	if err := s.txns.SaveGroup(group); err != nil {
		return utils.WrapError(err, "failed to settle transactions")
	}
	utils.LogInfo("HandleTopupFailed settled %d transactions for PSP ref: %s, reason: %s", len(group), pspRef, reason)

	s.notifySettlement(pspRef, group, false, reason)
	return nil
}

// notifySettlement emails the actor user about a settled group. Notification
// failures are logged, not surfaced: the ledger state is already durable and
// a webhook retry must not re-settle just to retry an email.
func (s *TransactionService) notifySettlement(pspRef string, group []*models.Transaction, success bool, reason string) {
	var userTxn *models.Transaction
	for _, txn := range group {
		if txn.ActorKind == models.TransactionActorUser {
			userTxn = txn
			break
		}
	}
	if userTxn == nil || userTxn.ActorUserID == nil {
		utils.LogError("notifySettlement - no user row in group for PSP ref: %s", pspRef)
		return
	}

	user, err := s.users.FindByID(*userTxn.ActorUserID)
	if err != nil || user == nil {
		utils.LogError("notifySettlement - failed to resolve user %d for PSP ref: %s: %v", *userTxn.ActorUserID, pspRef, err)
		return
	}

	if success {
		newBalance := 0.0
		if userTxn.WalletID != nil {
			if b, err := s.balance.CalculateAvailableBalance(*userTxn.WalletID); err == nil {
				newBalance = b
			} else {
				utils.LogError("notifySettlement - failed to recompute balance for wallet %d: %v", *userTxn.WalletID, err)
			}
		}
		if err := s.notifier.SendTopUpSuccessEmail(user.Email, user.Name, userTxn.Amount, pspRef, newBalance); err != nil {
			utils.LogError("notifySettlement - failed to send success email to %s: %v", user.Email, err)
		}
		return
	}

	if err := s.notifier.SendPaymentFailedEmail(user.Email, user.Name, userTxn.Amount, pspRef, reason); err != nil {
		utils.LogError("notifySettlement - failed to send failure email to %s: %v", user.Email, err)
	}
}
