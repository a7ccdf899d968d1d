package utils

// Application constants
const (
	// Application name
	AppName = "CampusRide"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// Default database host
	DefaultDBHost = "localhost"

	// Default database port
	DefaultDBPort = "5432"

	// Default database name
	DefaultDBName = "campusride"

	// Default database user
	DefaultDBUser = "postgres"

	// Default database password
	DefaultDBPassword = "postgres"

	// JWT token expiration (24 hours)
	JWTExpiration = "24h"

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 50
)

// Error messages
const (
	// Authentication errors
	ErrInvalidToken = "Invalid or expired token"
	ErrUnauthorized = "Unauthorized access"
	ErrForbidden    = "Access forbidden"

	// Wallet errors
	ErrWalletNotFound      = "Wallet not found"
	ErrNoPendingTxns       = "No pending transactions"
	ErrInvalidAmount       = "Amount must be greater than 0"
	ErrNegativeAmount      = "Amount cannot be negative"
	ErrDuplicateOrderCode  = "Duplicate order code detected"
	ErrInsufficientBalance = "Insufficient wallet balance"

	// Server errors
	ErrInternalServer = "Internal server error"
)
