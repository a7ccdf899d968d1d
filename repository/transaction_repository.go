package repository

import (
	"errors"
	"strings"

	"github.com/Adithyan-707/CampusRide/models"
	"gorm.io/gorm"
)

// TransactionRepository is the only gateway to the transactions table. Lookup
// methods return (nil, nil) / (empty, nil) when nothing matches; errors are
// reserved for storage failures.
type TransactionRepository interface {
	FindByIdempotencyKey(key string) (*models.Transaction, error)
	FindByGroupID(groupID string) ([]models.Transaction, error)
	FindByPspRefAndStatus(pspRef, status string) ([]models.Transaction, error)
	FindByWalletID(walletID uint, limit, offset int) ([]models.Transaction, int64, error)
	SumAmountByStatus(walletID uint, status string) (float64, error)
	SumAmountByStatusAndDirection(walletID uint, status, direction string) (float64, error)
	Save(txn *models.Transaction) error
	CreatePair(system, user *models.Transaction) error
	SaveGroup(txns []*models.Transaction) error
	IsDuplicateKeyError(err error) bool
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a gorm-backed TransactionRepository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// FindByIdempotencyKey uses the unique index on idempotency_key.
func (r *transactionRepository) FindByIdempotencyKey(key string) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.Where("idempotency_key = ?", key).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

// FindByGroupID uses the index on group_id. Rows come back in creation order
// so a top-up pair is always [system, user].
func (r *transactionRepository) FindByGroupID(groupID string) ([]models.Transaction, error) {
	var txns []models.Transaction
	if err := r.db.Where("group_id = ?", groupID).Order("id ASC").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// FindByPspRefAndStatus uses the composite index on (psp_ref, status).
func (r *transactionRepository) FindByPspRefAndStatus(pspRef, status string) ([]models.Transaction, error) {
	var txns []models.Transaction
	if err := r.db.Where("psp_ref = ? AND status = ?", pspRef, status).Order("id ASC").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// FindByWalletID returns a page of a wallet's rows ordered by recency plus the
// total count, for history views only.
func (r *transactionRepository) FindByWalletID(walletID uint, limit, offset int) ([]models.Transaction, int64, error) {
	var total int64
	if err := r.db.Model(&models.Transaction{}).Where("wallet_id = ?", walletID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txns []models.Transaction
	if err := r.db.Where("wallet_id = ?", walletID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&txns).Error; err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// SumAmountByStatus aggregates the signed amounts of a wallet's rows in the
// given status. COALESCE guarantees zero, never NULL, for an empty wallet.
func (r *transactionRepository) SumAmountByStatus(walletID uint, status string) (float64, error) {
	var total float64
	err := r.db.Model(&models.Transaction{}).
		Where("wallet_id = ? AND status = ?", walletID, status).
		Select("COALESCE(SUM(CASE WHEN direction = ? THEN amount ELSE -amount END), 0)", models.TransactionDirectionIn).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// SumAmountByStatusAndDirection totals the unsigned amounts of a wallet's
// rows in one direction, used by the informational counter sync.
func (r *transactionRepository) SumAmountByStatusAndDirection(walletID uint, status, direction string) (float64, error) {
	var total float64
	err := r.db.Model(&models.Transaction{}).
		Where("wallet_id = ? AND status = ? AND direction = ?", walletID, status, direction).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *transactionRepository) Save(txn *models.Transaction) error {
	return r.db.Save(txn).Error
}

// CreatePair persists the SYSTEM and USER rows of a top-up group inside one
// storage transaction: either both rows exist afterwards or neither does.
func (r *transactionRepository) CreatePair(system, user *models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(system).Error; err != nil {
			return err
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return nil
	})
}

// SaveGroup applies a settlement to every row of a group inside one storage
// transaction so a crash can never leave siblings in different statuses.
func (r *transactionRepository) SaveGroup(txns []*models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, txn := range txns {
			if err := tx.Save(txn).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// IsDuplicateKeyError reports whether err is a unique-constraint violation,
// the authoritative guard against two concurrent initiations.
func (r *transactionRepository) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}
