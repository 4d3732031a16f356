package repositories

import (
	"context"
	"errors"

	"stablemart/internal/models"
)

var (
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrDuplicateReference = errors.New("duplicate transaction reference")
)

// LedgerRepository defines the storage operations behind the balance ledger.
// Balance mutations run inside ExecuteInTransaction with the wallet row
// locked, so the balance update and the appended transaction row are visible
// together or not at all.
type LedgerRepository interface {
	GetWallet(userID uint) (*models.Wallet, error)
	GetWalletForUpdate(userID uint) (*models.Wallet, error)
	CreateWallet(wallet *models.Wallet) error
	UpdateWallet(wallet *models.Wallet) error

	CreateTransaction(txn *models.StabletokenTransaction) error
	GetTransactionByReference(reference string) (*models.StabletokenTransaction, error)
	GetTransactionsByUser(ctx context.Context, userID uint) ([]models.StabletokenTransaction, error)

	ExecuteInTransaction(fn func(LedgerRepository) error) error
}
