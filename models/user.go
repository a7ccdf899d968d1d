package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a platform user (rider or driver). Credential and session
// fields live in the auth service; this table only carries what the wallet
// core needs to resolve and notify an account.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string         `json:"phone"`
	Role      string         `gorm:"default:rider" json:"role"` // rider, driver
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	IsAdmin   bool           `gorm:"default:false" json:"is_admin"`
	Wallet    Wallet         `json:"wallet,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserRole constants
const (
	UserRoleRider  = "rider"
	UserRoleDriver = "driver"
)
