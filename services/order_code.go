package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// walletOrderCodeGenerator is the default OrderCodeGenerator: a timestamped
// code with random entropy, unique for all practical purposes. The dedup
// store still verifies uniqueness before the code leaves the system.
type walletOrderCodeGenerator struct{}

// NewOrderCodeGenerator creates the default order code generator
func NewOrderCodeGenerator() OrderCodeGenerator {
	return walletOrderCodeGenerator{}
}

func (walletOrderCodeGenerator) Generate(userID uint) string {
	entropy := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("WTOP-%d-%s-%s", userID, time.Now().Format("20060102150405"), entropy)
}
