package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// DeriveIdempotencyKey computes the deterministic fingerprint of an
// operation's defining parameters. A replayed initiation with the same
// (kind, pspRef, amount) always derives the same key, which is what lets the
// unique index absorb duplicates. Amount is normalized to two decimal places
// so 200000 and 200000.00 fingerprint identically.
func DeriveIdempotencyKey(kind, pspRef string, amount float64) string {
	raw := fmt.Sprintf("%s|%s|%.2f", strings.ToUpper(kind), pspRef, amount)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
