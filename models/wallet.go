package models

import (
	"time"
)

// Wallet represents a user's wallet. There is deliberately no balance column:
// available and pending balance are always derived from the transactions
// table. TotalToppedUp and TotalSpent are informational cumulative counters
// refreshed by the admin sync endpoint and never consulted during settlement.
type Wallet struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `json:"user_id" gorm:"uniqueIndex"`
	TotalToppedUp float64    `json:"total_topped_up" gorm:"default:0"`
	TotalSpent    float64    `json:"total_spent" gorm:"default:0"`
	IsActive      bool       `json:"is_active" gorm:"default:true"`
	LastSyncedAt  *time.Time `json:"last_synced_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
