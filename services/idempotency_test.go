package services

import (
	"testing"

	"github.com/Adithyan-707/CampusRide/models"
	"github.com/stretchr/testify/assert"
)

func TestDeriveIdempotencyKeyDeterministic(t *testing.T) {
	first := DeriveIdempotencyKey(models.TransactionTypeTopup, "ORDER-123", 200000)
	second := DeriveIdempotencyKey(models.TransactionTypeTopup, "ORDER-123", 200000)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64, "sha256 hex digest")
}

func TestDeriveIdempotencyKeyNormalizesAmount(t *testing.T) {
	assert.Equal(t,
		DeriveIdempotencyKey(models.TransactionTypeTopup, "ORDER-123", 200000),
		DeriveIdempotencyKey(models.TransactionTypeTopup, "ORDER-123", 200000.00))
	assert.Equal(t,
		DeriveIdempotencyKey("topup", "ORDER-123", 200000),
		DeriveIdempotencyKey("TOPUP", "ORDER-123", 200000),
		"kind comparison is case-insensitive")
}

func TestDeriveIdempotencyKeyDistinguishesParameters(t *testing.T) {
	base := DeriveIdempotencyKey(models.TransactionTypeTopup, "ORDER-123", 200000)
	assert.NotEqual(t, base, DeriveIdempotencyKey(models.TransactionTypeTopup, "ORDER-124", 200000))
	assert.NotEqual(t, base, DeriveIdempotencyKey(models.TransactionTypeTopup, "ORDER-123", 200001))
}

func TestOrderCodeGenerator(t *testing.T) {
	gen := NewOrderCodeGenerator()

	first := gen.Generate(7)
	second := gen.Generate(7)
	assert.NotEqual(t, first, second, "fresh entropy per code")
	assert.Contains(t, first, "WTOP-7-")
}
