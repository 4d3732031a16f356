package payment

import "context"

// Checkout is the client-facing result of initiating a payment: the external
// payment id and the hosted page to complete it on.
type Checkout struct {
	PaymentID  string `json:"paymentId"`
	PaymentURL string `json:"paymentUrl"`
}

// Event is the payment provider's webhook payload.
type Event struct {
	PaymentID string  `json:"paymentId"`
	UserID    uint    `json:"userId"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
}

// CheckoutProvider creates hosted checkout sessions with the external
// payment provider.
type CheckoutProvider interface {
	CreateCheckout(ctx context.Context, userID uint, amount float64) (*Checkout, error)
}

type Service interface {
	// Initiate starts a payment and returns the checkout to redirect the
	// buyer to.
	Initiate(ctx context.Context, userID uint, amount float64) (*Checkout, error)
	// HandleWebhook consumes a provider callback. Successful payments
	// credit the ledger keyed by payment id; repeats of the same payment id
	// are no-ops.
	HandleWebhook(ctx context.Context, event Event) error
}
