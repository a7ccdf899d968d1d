package repository

import (
	"errors"

	"github.com/Adithyan-707/CampusRide/models"
	"gorm.io/gorm"
)

// IdempotencyKeyRepository is the dedup store for outbound order codes. Rows
// are written once at order-code reservation time and never mutated.
type IdempotencyKeyRepository interface {
	FindByKeyHash(hash string) (*models.IdempotencyKey, error)
	Save(record *models.IdempotencyKey) error
}

type idempotencyKeyRepository struct {
	db *gorm.DB
}

// NewIdempotencyKeyRepository creates a gorm-backed IdempotencyKeyRepository
func NewIdempotencyKeyRepository(db *gorm.DB) IdempotencyKeyRepository {
	return &idempotencyKeyRepository{db: db}
}

// FindByKeyHash uses the unique index on key_hash.
func (r *idempotencyKeyRepository) FindByKeyHash(hash string) (*models.IdempotencyKey, error) {
	var record models.IdempotencyKey
	err := r.db.Where("key_hash = ?", hash).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *idempotencyKeyRepository) Save(record *models.IdempotencyKey) error {
	return r.db.Create(record).Error
}
