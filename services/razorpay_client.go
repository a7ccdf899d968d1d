package services

import (
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayProviderClient implements PaymentProviderClient on the Razorpay
// Payment Link API. The order code travels as reference_id so the webhook can
// correlate back to the ledger group.
type RazorpayProviderClient struct {
	key    string
	secret string
}

// NewRazorpayProviderClient creates a RazorpayProviderClient
func NewRazorpayProviderClient(key, secret string) *RazorpayProviderClient {
	return &RazorpayProviderClient{key: key, secret: secret}
}

func (c *RazorpayProviderClient) CreatePaymentLink(orderCode string, amount float64, description, returnURL, cancelURL string) (*CheckoutHandle, error) {
	client := razorpay.NewClient(c.key, c.secret)

	// Razorpay expects amount in paise
	amountPaise := int(amount * 100)
	linkData := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"reference_id":    orderCode,
		"description":     description,
		"callback_url":    returnURL,
		"callback_method": "get",
		"notes": map[string]interface{}{
			"cancel_url": cancelURL,
		},
	}

	link, err := client.PaymentLink.Create(linkData, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay payment link creation failed: %w", err)
	}

	return &CheckoutHandle{
		ProviderLinkID: fmt.Sprintf("%v", link["id"]),
		CheckoutURL:    fmt.Sprintf("%v", link["short_url"]),
	}, nil
}
