package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Adithyan-707/CampusRide/models"
	"github.com/Adithyan-707/CampusRide/repository"
	"github.com/Adithyan-707/CampusRide/utils"
)

// CheckoutHandle is what the payment provider returns for a created checkout.
type CheckoutHandle struct {
	ProviderLinkID string `json:"provider_link_id"`
	CheckoutURL    string `json:"checkout_url"`
}

// PaymentProviderClient is the outbound contract to the payment provider.
type PaymentProviderClient interface {
	CreatePaymentLink(orderCode string, amount float64, description, returnURL, cancelURL string) (*CheckoutHandle, error)
}

// OrderCodeGenerator produces candidate order codes. Injected so tests can
// substitute a deterministic generator.
type OrderCodeGenerator interface {
	Generate(userID uint) string
}

// TopUpPaymentLink is the result of a successful top-up initiation.
type TopUpPaymentLink struct {
	OrderCode      string              `json:"order_code"`
	CheckoutURL    string              `json:"checkout_url"`
	ProviderLinkID string              `json:"provider_link_id"`
	Amount         float64             `json:"amount"`
	GroupID        string              `json:"group_id"`
	UserTxn        *models.Transaction `json:"-"`
	SystemTxn      *models.Transaction `json:"-"`
}

// webhookPayload mirrors the provider's webhook envelope.
type webhookPayload struct {
	Data struct {
		OrderCode   string `json:"orderCode"`
		Status      string `json:"status"`
		Description string `json:"description"`
	} `json:"data"`
}

// Webhook status values the provider delivers.
const (
	WebhookStatusPaid      = "PAID"
	WebhookStatusCancelled = "CANCELLED"
	WebhookStatusExpired   = "EXPIRED"
)

// PaymentGatewayAdapter fronts the external payment provider: it reserves a
// unique order code, pre-creates the PENDING ledger pair, obtains the
// checkout link, and later turns webhook deliveries into settlements.
type PaymentGatewayAdapter struct {
	txnService *TransactionService
	keys       repository.IdempotencyKeyRepository
	provider   PaymentProviderClient
	codes      OrderCodeGenerator
}

// NewPaymentGatewayAdapter creates a PaymentGatewayAdapter
func NewPaymentGatewayAdapter(
	txnService *TransactionService,
	keys repository.IdempotencyKeyRepository,
	provider PaymentProviderClient,
	codes OrderCodeGenerator,
) *PaymentGatewayAdapter {
	return &PaymentGatewayAdapter{
		txnService: txnService,
		keys:       keys,
		provider:   provider,
		codes:      codes,
	}
}

// CreateTopUpPaymentLink runs the initiation sequence: validate, reserve the
// order code in the dedup store, pre-create the PENDING pair, then contact the
// provider. The collision check runs before the provider call so a rejected
// attempt never leaves an orphaned checkout session on the provider side.
func (a *PaymentGatewayAdapter) CreateTopUpPaymentLink(userID uint, amount float64, description, returnURL, cancelURL string) (*TopUpPaymentLink, error) {
	if amount <= 0 {
		utils.LogError("CreateTopUpPaymentLink - invalid amount %.2f for user ID: %d", amount, userID)
		return nil, utils.ValidationErr(utils.ErrInvalidAmount)
	}

	orderCode := a.codes.Generate(userID)
	keyHash := DeriveIdempotencyKey(models.TransactionTypeTopup, orderCode, amount)
	utils.LogDebug("CreateTopUpPaymentLink - order code: %s, key hash: %s", orderCode, keyHash)

	existing, err := a.keys.FindByKeyHash(keyHash)
	if err != nil {
		return nil, utils.WrapError(err, "failed to check order code")
	}
	if existing != nil {
		// A freshly generated code must be globally unique; a hit here means
		// two distinct attempts collided, not a safe replay.
		utils.LogError("CreateTopUpPaymentLink - order code collision: %s", orderCode)
		return nil, utils.ConflictError(utils.ErrDuplicateOrderCode, nil)
	}

	if err := a.keys.Save(&models.IdempotencyKey{KeyHash: keyHash, Reference: orderCode}); err != nil {
		return nil, utils.WrapError(err, "failed to reserve order code")
	}

	systemTxn, userTxn, err := a.txnService.InitTopup(userID, amount, orderCode, description)
	if err != nil {
		return nil, err
	}

	handle, err := a.provider.CreatePaymentLink(orderCode, amount, description, returnURL, cancelURL)
	if err != nil {
		return nil, utils.UpstreamError(fmt.Sprintf("Error creating top-up payment link for user %d", userID), err)
	}
	utils.LogInfo("CreateTopUpPaymentLink - created checkout %s for user ID: %d, order code: %s", handle.ProviderLinkID, userID, orderCode)

	return &TopUpPaymentLink{
		OrderCode:      orderCode,
		CheckoutURL:    handle.CheckoutURL,
		ProviderLinkID: handle.ProviderLinkID,
		Amount:         amount,
		GroupID:        userTxn.GroupID,
		UserTxn:        userTxn,
		SystemTxn:      systemTxn,
	}, nil
}

// HandleWebhook parses an asynchronous provider notification and dispatches
// it to settlement. Parse failures are wrapped and produce zero side effects.
// Statuses outside the known set are informational and ignored.
func (a *PaymentGatewayAdapter) HandleWebhook(payload []byte) error {
	var parsed webhookPayload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return utils.UpstreamError("Error processing webhook", err)
	}
	if parsed.Data.OrderCode == "" {
		return utils.UpstreamError("Error processing webhook", errors.New("missing order code"))
	}

	status := parsed.Data.Status
	utils.LogInfo("HandleWebhook - order code: %s, status: %s", parsed.Data.OrderCode, status)

	switch status {
	case WebhookStatusPaid:
		return a.txnService.HandleTopupSuccess(parsed.Data.OrderCode)
	case WebhookStatusCancelled, WebhookStatusExpired:
		return a.txnService.HandleTopupFailed(parsed.Data.OrderCode, "Payment "+strings.ToLower(status))
	default:
		utils.LogInfo("HandleWebhook - ignoring informational status %q for order code: %s", status, parsed.Data.OrderCode)
		return nil
	}
}
