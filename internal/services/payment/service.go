// Package payment bridges the external payment provider to the stabletoken
// ledger: checkout initiation out, webhook reconciliation in.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"stablemart/internal/models"
	"stablemart/internal/services/ledger"
)

var (
	ErrInvalidEvent  = errors.New("invalid webhook event")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)

// StatusSuccess is the provider status that credits the ledger.
const StatusSuccess = "success"

type service struct {
	provider CheckoutProvider
	ledger   ledger.Service
}

// NewService creates the payment service.
func NewService(provider CheckoutProvider, ledgerSvc ledger.Service) Service {
	if provider == nil {
		panic("checkout provider is required")
	}
	if ledgerSvc == nil {
		panic("ledger service is required")
	}
	return &service{
		provider: provider,
		ledger:   ledgerSvc,
	}
}

func (s *service) Initiate(ctx context.Context, userID uint, amount float64) (*Checkout, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	checkout, err := s.provider.CreateCheckout(ctx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}
	return checkout, nil
}

func (s *service) HandleWebhook(ctx context.Context, event Event) error {
	if event.PaymentID == "" || event.UserID == 0 {
		return ErrInvalidEvent
	}

	if event.Status != StatusSuccess {
		// Failed or pending payments never touch the balance.
		log.Printf("payment %s for user %d reported status %q, no credit applied",
			event.PaymentID, event.UserID, event.Status)
		return nil
	}

	_, err := s.ledger.Credit(ctx, event.UserID, event.Amount,
		models.TransactionTypePayment, event.PaymentID)
	if err != nil {
		return err
	}
	return nil
}
