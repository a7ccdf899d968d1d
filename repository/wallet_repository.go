package repository

import (
	"errors"

	"github.com/Adithyan-707/CampusRide/models"
	"gorm.io/gorm"
)

// WalletRepository reads and maintains wallet rows. Settlement never writes
// through this interface; Save exists for the informational counter sync.
type WalletRepository interface {
	FindByUserID(userID uint) (*models.Wallet, error)
	FindByID(id uint) (*models.Wallet, error)
	Save(wallet *models.Wallet) error
}

type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a gorm-backed WalletRepository
func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

// FindByUserID uses the unique index on user_id (one wallet per user).
func (r *walletRepository) FindByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Where("user_id = ?", userID).First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) FindByID(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.First(&wallet, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *walletRepository) Save(wallet *models.Wallet) error {
	return r.db.Save(wallet).Error
}
