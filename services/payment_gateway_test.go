package services

import (
	"errors"
	"testing"

	"github.com/Adithyan-707/CampusRide/models"
	"github.com/Adithyan-707/CampusRide/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway() (*PaymentGatewayAdapter, *fakeTransactionRepo, *fakeKeyRepo, *fakeProvider, *fakeNotifier) {
	svc, txns, _, notifier := newTestTransactionService()
	keys := &fakeKeyRepo{}
	provider := &fakeProvider{}
	gateway := NewPaymentGatewayAdapter(svc, keys, provider, fixedCodeGenerator{code: "WTOP-TEST-0001"})
	return gateway, txns, keys, provider, notifier
}

func TestCreateTopUpPaymentLink(t *testing.T) {
	gateway, txns, keys, provider, _ := newTestGateway()

	link, err := gateway.CreateTopUpPaymentLink(1, 500, "Wallet top-up", "https://app/return", "https://app/cancel")
	require.NoError(t, err)

	assert.Equal(t, "WTOP-TEST-0001", link.OrderCode)
	assert.Equal(t, "https://checkout.test/WTOP-TEST-0001", link.CheckoutURL)
	assert.Equal(t, "plink_WTOP-TEST-0001", link.ProviderLinkID)
	assert.Equal(t, 500.0, link.Amount)

	// Order code reserved in the dedup store
	require.Len(t, keys.records, 1)
	assert.Equal(t, "WTOP-TEST-0001", keys.records[0].Reference)

	// PENDING pair pre-created with the order code as PSP ref
	require.Len(t, txns.rows, 2)
	for _, row := range txns.rows {
		assert.Equal(t, "WTOP-TEST-0001", row.PspRef)
		assert.Equal(t, models.TransactionStatusPending, row.Status)
	}

	// Provider called once with the full contract
	require.Len(t, provider.calls, 1)
	call := provider.calls[0]
	assert.Equal(t, "WTOP-TEST-0001", call.OrderCode)
	assert.Equal(t, 500.0, call.Amount)
	assert.Equal(t, "https://app/return", call.ReturnURL)
	assert.Equal(t, "https://app/cancel", call.CancelURL)
}

func TestCreateTopUpPaymentLinkRejectsNonPositiveAmount(t *testing.T) {
	gateway, txns, keys, provider, _ := newTestGateway()

	for _, amount := range []float64{0, -50} {
		_, err := gateway.CreateTopUpPaymentLink(1, amount, "Wallet top-up", "r", "c")
		require.Error(t, err)
		assert.True(t, utils.IsValidationError(err))
	}
	assert.Empty(t, keys.records)
	assert.Empty(t, txns.rows)
	assert.Empty(t, provider.calls)
}

func TestCreateTopUpPaymentLinkOrderCodeCollision(t *testing.T) {
	gateway, txns, keys, provider, _ := newTestGateway()

	// The derived key for the candidate code is already reserved.
	hash := DeriveIdempotencyKey(models.TransactionTypeTopup, "WTOP-TEST-0001", 500)
	require.NoError(t, keys.Save(&models.IdempotencyKey{KeyHash: hash, Reference: "WTOP-TEST-0001"}))

	_, err := gateway.CreateTopUpPaymentLink(1, 500, "Wallet top-up", "r", "c")
	require.Error(t, err)
	assert.True(t, utils.IsConflictError(err))

	// Rejected before any ledger write and before the provider is contacted
	assert.Empty(t, txns.rows)
	assert.Empty(t, provider.calls)
}

func TestCreateTopUpPaymentLinkProviderFailure(t *testing.T) {
	gateway, _, _, provider, _ := newTestGateway()
	provider.err = errors.New("gateway timeout")

	_, err := gateway.CreateTopUpPaymentLink(7, 500, "Wallet top-up", "r", "c")
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindUpstream))
	assert.Contains(t, err.Error(), "Error creating top-up payment link for user 7")
	assert.Contains(t, err.Error(), "gateway timeout", "root cause is preserved")
}

func TestCreateTopUpPaymentLinkWalletNotFound(t *testing.T) {
	gateway, _, _, provider, _ := newTestGateway()

	_, err := gateway.CreateTopUpPaymentLink(99, 500, "Wallet top-up", "r", "c")
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
	assert.Empty(t, provider.calls, "ledger failure prevents the provider call")
}

func TestHandleWebhookParseFailure(t *testing.T) {
	gateway, txns, _, _, notifier := newTestGateway()

	err := gateway.HandleWebhook([]byte("{not json"))
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindUpstream))
	assert.Contains(t, err.Error(), "Error processing webhook")

	assert.Empty(t, txns.rows)
	assert.Empty(t, notifier.successes)
	assert.Empty(t, notifier.failures)
}

func TestHandleWebhookMissingOrderCode(t *testing.T) {
	gateway, _, _, _, _ := newTestGateway()

	err := gateway.HandleWebhook([]byte(`{"data":{"status":"PAID"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error processing webhook")
}

func TestHandleWebhookPaid(t *testing.T) {
	gateway, txns, _, _, notifier := newTestGateway()

	_, err := gateway.CreateTopUpPaymentLink(1, 500, "Wallet top-up", "r", "c")
	require.NoError(t, err)

	err = gateway.HandleWebhook([]byte(`{"data":{"orderCode":"WTOP-TEST-0001","status":"PAID","description":"ok"}}`))
	require.NoError(t, err)

	for _, row := range txns.rows {
		assert.Equal(t, models.TransactionStatusSuccess, row.Status)
	}
	assert.Len(t, notifier.successes, 1)
}

func TestHandleWebhookCancelledAndExpired(t *testing.T) {
	cases := []struct {
		status string
		reason string
	}{
		{"CANCELLED", "Payment cancelled"},
		{"EXPIRED", "Payment expired"},
	}

	for _, tc := range cases {
		gateway, txns, _, _, notifier := newTestGateway()

		_, err := gateway.CreateTopUpPaymentLink(1, 500, "Wallet top-up", "r", "c")
		require.NoError(t, err)

		err = gateway.HandleWebhook([]byte(`{"data":{"orderCode":"WTOP-TEST-0001","status":"` + tc.status + `"}}`))
		require.NoError(t, err)

		for _, row := range txns.rows {
			assert.Equal(t, models.TransactionStatusFailed, row.Status)
		}
		require.Len(t, notifier.failures, 1)
		assert.Equal(t, tc.reason, notifier.failures[0].Reason)
	}
}

func TestHandleWebhookUnknownStatusIsNoOp(t *testing.T) {
	gateway, txns, _, _, notifier := newTestGateway()

	_, err := gateway.CreateTopUpPaymentLink(1, 500, "Wallet top-up", "r", "c")
	require.NoError(t, err)

	err = gateway.HandleWebhook([]byte(`{"data":{"orderCode":"WTOP-TEST-0001","status":"PROCESSING"}}`))
	require.NoError(t, err)

	for _, row := range txns.rows {
		assert.Equal(t, models.TransactionStatusPending, row.Status, "informational statuses must not settle")
	}
	assert.Empty(t, notifier.successes)
	assert.Empty(t, notifier.failures)
}

func TestHandleWebhookRedeliveryAfterSettlement(t *testing.T) {
	gateway, _, _, _, notifier := newTestGateway()

	_, err := gateway.CreateTopUpPaymentLink(1, 500, "Wallet top-up", "r", "c")
	require.NoError(t, err)

	payload := []byte(`{"data":{"orderCode":"WTOP-TEST-0001","status":"PAID"}}`)
	require.NoError(t, gateway.HandleWebhook(payload))

	err = gateway.HandleWebhook(payload)
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err), "redelivery surfaces NotFound for the webhook layer to acknowledge")
	assert.Len(t, notifier.successes, 1, "no duplicate notification on redelivery")
}
