package payment

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/checkout/session"
)

// StripeProvider creates Stripe Checkout sessions for stabletoken top-ups.
// The session id doubles as the payment reference the webhook reports back.
type StripeProvider struct {
	successURL string
	cancelURL  string
}

// NewStripeProvider configures the global Stripe key and returns a provider.
func NewStripeProvider(secretKey, successURL, cancelURL string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (p *StripeProvider) CreateCheckout(ctx context.Context, userID uint, amount float64) (*Checkout, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(p.successURL),
		CancelURL:         stripe.String(p.cancelURL),
		ClientReferenceID: stripe.String(strconv.FormatUint(uint64(userID), 10)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(int64(math.Round(amount * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Stabletoken top-up"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}

	return &Checkout{
		PaymentID:  sess.ID,
		PaymentURL: sess.URL,
	}, nil
}
