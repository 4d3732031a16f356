// Package ledger owns the stabletoken balance bookkeeping. A balance only
// moves together with an appended transaction row, inside one database
// transaction with the wallet row locked.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"stablemart/internal/models"
	"stablemart/internal/repositories"
	"stablemart/internal/repositories/cache"
)

var (
	ErrInvalidAmount = errors.New("amount must be a positive finite number")
	ErrUserNotFound  = errors.New("user not found")
)

type Service interface {
	// Mint credits freshly minted stabletokens and returns the new balance.
	Mint(ctx context.Context, userID uint, amount float64) (float64, error)
	// Credit applies a credit of the given type. A non-empty reference is a
	// dedup key: a credit whose reference was already recorded is a no-op
	// returning the current balance.
	Credit(ctx context.Context, userID uint, amount float64, txType, reference string) (float64, error)
	// GetBalance returns the user's balance, 0 when no wallet row exists.
	GetBalance(ctx context.Context, userID uint) (float64, error)
	// GetTransactionsForUser returns the user's transactions newest first.
	GetTransactionsForUser(ctx context.Context, userID uint) ([]models.StabletokenTransaction, error)
}

type service struct {
	repo     repositories.LedgerRepository
	userRepo repositories.UserRepository
	cache    *cache.CacheService
}

// NewService creates the ledger service. The cache is optional.
func NewService(repo repositories.LedgerRepository, userRepo repositories.UserRepository, cacheSvc *cache.CacheService) Service {
	if repo == nil {
		panic("ledger repo is required")
	}
	if userRepo == nil {
		panic("user repo is required")
	}
	return &service{
		repo:     repo,
		userRepo: userRepo,
		cache:    cacheSvc,
	}
}

func (s *service) Mint(ctx context.Context, userID uint, amount float64) (float64, error) {
	return s.Credit(ctx, userID, amount, models.TransactionTypeMint, "")
}

func (s *service) Credit(ctx context.Context, userID uint, amount float64, txType, reference string) (float64, error) {
	if amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return 0, ErrInvalidAmount
	}
	amount = round2(amount)

	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	if reference != "" {
		if _, err := s.repo.GetTransactionByReference(reference); err == nil {
			// Already credited; repeat delivery of the same reference is
			// benign.
			log.Printf("ledger: duplicate reference %q ignored", reference)
			return s.GetBalance(ctx, userID)
		}
	}

	var newBalance float64
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		wallet, err := tx.GetWalletForUpdate(userID)
		if errors.Is(err, repositories.ErrWalletNotFound) {
			wallet = &models.Wallet{UserID: userID}
			if err := tx.CreateWallet(wallet); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		wallet.Balance = round2(wallet.Balance + amount)
		if err := tx.UpdateWallet(wallet); err != nil {
			return err
		}

		txn := &models.StabletokenTransaction{
			UserID: userID,
			Amount: amount,
			Type:   txType,
			Status: models.TransactionStatusCompleted,
		}
		if reference != "" {
			ref := reference
			txn.Reference = &ref
		}
		if err := tx.CreateTransaction(txn); err != nil {
			return err
		}

		newBalance = wallet.Balance
		return nil
	})
	if errors.Is(err, repositories.ErrDuplicateReference) {
		// Lost the race against a concurrent delivery of the same
		// reference: the whole unit rolled back, nothing was double
		// credited.
		return s.GetBalance(ctx, userID)
	}
	if err != nil {
		return 0, fmt.Errorf("credit failed: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateBalance(ctx, userID); err != nil {
			log.Printf("failed to invalidate balance cache for user %d: %v", userID, err)
		}
	}

	return newBalance, nil
}

func (s *service) GetBalance(ctx context.Context, userID uint) (float64, error) {
	if s.cache != nil {
		if balance, found := s.cache.GetBalance(ctx, userID); found {
			return balance, nil
		}
	}

	wallet, err := s.repo.GetWallet(userID)
	if errors.Is(err, repositories.ErrWalletNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.CacheBalance(ctx, userID, wallet.Balance); err != nil {
			log.Printf("failed to cache balance for user %d: %v", userID, err)
		}
	}
	return wallet.Balance, nil
}

func (s *service) GetTransactionsForUser(ctx context.Context, userID uint) ([]models.StabletokenTransaction, error) {
	return s.repo.GetTransactionsByUser(ctx, userID)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
