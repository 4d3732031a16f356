package payment

import (
	"context"
	"errors"
	"testing"

	"stablemart/internal/models"
	"stablemart/internal/services/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateCheckout(ctx context.Context, userID uint, amount float64) (*Checkout, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Checkout), args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Mint(ctx context.Context, userID uint, amount float64) (float64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockLedger) Credit(ctx context.Context, userID uint, amount float64, txType, reference string) (float64, error) {
	args := m.Called(ctx, userID, amount, txType, reference)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockLedger) GetBalance(ctx context.Context, userID uint) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockLedger) GetTransactionsForUser(ctx context.Context, userID uint) ([]models.StabletokenTransaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StabletokenTransaction), args.Error(1)
}

func TestInitiate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the provider checkout", func(t *testing.T) {
		provider := new(MockProvider)
		ledgerSvc := new(MockLedger)
		provider.On("CreateCheckout", ctx, uint(1), 20.0).Return(&Checkout{
			PaymentID:  "cs_test_123",
			PaymentURL: "https://checkout.example/cs_test_123",
		}, nil)

		svc := NewService(provider, ledgerSvc)
		checkout, err := svc.Initiate(ctx, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, "cs_test_123", checkout.PaymentID)
		assert.Equal(t, "https://checkout.example/cs_test_123", checkout.PaymentURL)

		provider.AssertExpectations(t)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc := NewService(new(MockProvider), new(MockLedger))
		_, err := svc.Initiate(ctx, 1, 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("propagates provider failure", func(t *testing.T) {
		provider := new(MockProvider)
		provider.On("CreateCheckout", ctx, uint(1), 20.0).Return(nil, errors.New("provider down"))

		svc := NewService(provider, new(MockLedger))
		_, err := svc.Initiate(ctx, 1, 20)
		assert.Error(t, err)
	})
}

func TestHandleWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("success credits the ledger keyed by payment id", func(t *testing.T) {
		ledgerSvc := new(MockLedger)
		ledgerSvc.On("Credit", ctx, uint(1), 5.0, models.TransactionTypePayment, "pay_test").
			Return(5.0, nil)

		svc := NewService(new(MockProvider), ledgerSvc)
		err := svc.HandleWebhook(ctx, Event{
			PaymentID: "pay_test",
			UserID:    1,
			Amount:    5,
			Status:    StatusSuccess,
		})
		require.NoError(t, err)

		ledgerSvc.AssertExpectations(t)
	})

	t.Run("non-success status never touches the ledger", func(t *testing.T) {
		ledgerSvc := new(MockLedger)

		svc := NewService(new(MockProvider), ledgerSvc)
		err := svc.HandleWebhook(ctx, Event{
			PaymentID: "pay_failed",
			UserID:    1,
			Amount:    5,
			Status:    "failed",
		})
		require.NoError(t, err)

		ledgerSvc.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user surfaces not found", func(t *testing.T) {
		ledgerSvc := new(MockLedger)
		ledgerSvc.On("Credit", ctx, uint(99), 5.0, models.TransactionTypePayment, "pay_test").
			Return(0.0, ledger.ErrUserNotFound)

		svc := NewService(new(MockProvider), ledgerSvc)
		err := svc.HandleWebhook(ctx, Event{
			PaymentID: "pay_test",
			UserID:    99,
			Amount:    5,
			Status:    StatusSuccess,
		})
		assert.ErrorIs(t, err, ledger.ErrUserNotFound)
	})

	t.Run("missing payment id or user is invalid", func(t *testing.T) {
		svc := NewService(new(MockProvider), new(MockLedger))

		err := svc.HandleWebhook(ctx, Event{UserID: 1, Amount: 5, Status: StatusSuccess})
		assert.ErrorIs(t, err, ErrInvalidEvent)

		err = svc.HandleWebhook(ctx, Event{PaymentID: "pay_x", Amount: 5, Status: StatusSuccess})
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})
}
