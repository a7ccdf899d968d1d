package models

import (
	"time"
)

// Transaction is one side of a money movement. Every logical top-up writes a
// pair of rows sharing a GroupID: a SYSTEM row against the clearing wallet and
// a USER row against the actual wallet. Amount is immutable after creation;
// Status only ever moves PENDING -> SUCCESS or PENDING -> FAILED.
type Transaction struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	GroupID        string    `json:"group_id" gorm:"index;not null"`
	Type           string    `json:"type" gorm:"not null"`       // topup
	Direction      string    `json:"direction" gorm:"not null"`  // IN, OUT
	ActorKind      string    `json:"actor_kind" gorm:"not null"` // USER, SYSTEM
	ActorUserID    *uint     `json:"actor_user_id"`
	ActorUser      *User     `json:"-" gorm:"foreignKey:ActorUserID"`
	WalletID       *uint     `json:"wallet_id"`
	Wallet         *Wallet   `json:"-" gorm:"foreignKey:WalletID"`
	SystemWallet   *string   `json:"system_wallet"`
	Amount         float64   `json:"amount" gorm:"not null"`
	Status         string    `json:"status" gorm:"index:idx_transactions_psp_ref_status,priority:2"`
	IdempotencyKey *string   `json:"idempotency_key" gorm:"uniqueIndex"`
	PspRef         string    `json:"psp_ref" gorm:"index:idx_transactions_psp_ref_status,priority:1"`
	Note           string    `json:"note"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TransactionType constants
const (
	TransactionTypeTopup = "topup"
)

// TransactionDirection constants
const (
	TransactionDirectionIn  = "IN"
	TransactionDirectionOut = "OUT"
)

// TransactionActor constants
const (
	TransactionActorUser   = "USER"
	TransactionActorSystem = "SYSTEM"
)

// TransactionStatus constants
const (
	TransactionStatusPending = "PENDING"
	TransactionStatusSuccess = "SUCCESS"
	TransactionStatusFailed  = "FAILED"
)

// SystemWalletTopupClearing tags the clearing-account side of a top-up pair.
const SystemWalletTopupClearing = "TOPUP_CLEARING"
