package models

import (
	"time"
)

// IdempotencyKey records an order code handed to the payment provider. It is
// reserved before any ledger row is written so that two concurrent initiations
// can never share an external order code. Rows are never mutated.
type IdempotencyKey struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	KeyHash   string    `json:"key_hash" gorm:"uniqueIndex;not null"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}
