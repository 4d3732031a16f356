package ledger

import (
	"context"
	"math"
	"testing"

	"stablemart/internal/models"
	"stablemart/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeLedgerRepo is an in-memory LedgerRepository. ExecuteInTransaction
// snapshots state and rolls back on error, mirroring the database's
// all-or-nothing discipline.
type fakeLedgerRepo struct {
	wallets map[uint]*models.Wallet
	txns    []models.StabletokenTransaction
	nextID  uint
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{wallets: make(map[uint]*models.Wallet)}
}

func (f *fakeLedgerRepo) GetWallet(userID uint) (*models.Wallet, error) {
	w, ok := f.wallets[userID]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeLedgerRepo) GetWalletForUpdate(userID uint) (*models.Wallet, error) {
	return f.GetWallet(userID)
}

func (f *fakeLedgerRepo) CreateWallet(wallet *models.Wallet) error {
	f.nextID++
	wallet.ID = f.nextID
	wallet.Balance = 0
	cp := *wallet
	f.wallets[wallet.UserID] = &cp
	return nil
}

func (f *fakeLedgerRepo) UpdateWallet(wallet *models.Wallet) error {
	cp := *wallet
	f.wallets[wallet.UserID] = &cp
	return nil
}

func (f *fakeLedgerRepo) CreateTransaction(txn *models.StabletokenTransaction) error {
	if txn.Reference != nil {
		for _, existing := range f.txns {
			if existing.Reference != nil && *existing.Reference == *txn.Reference {
				return repositories.ErrDuplicateReference
			}
		}
	}
	f.nextID++
	txn.ID = f.nextID
	f.txns = append(f.txns, *txn)
	return nil
}

func (f *fakeLedgerRepo) GetTransactionByReference(reference string) (*models.StabletokenTransaction, error) {
	for i := range f.txns {
		if f.txns[i].Reference != nil && *f.txns[i].Reference == reference {
			cp := f.txns[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLedgerRepo) GetTransactionsByUser(_ context.Context, userID uint) ([]models.StabletokenTransaction, error) {
	var out []models.StabletokenTransaction
	for i := len(f.txns) - 1; i >= 0; i-- {
		if f.txns[i].UserID == userID {
			out = append(out, f.txns[i])
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) ExecuteInTransaction(fn func(repositories.LedgerRepository) error) error {
	wallets := make(map[uint]*models.Wallet, len(f.wallets))
	for k, v := range f.wallets {
		cp := *v
		wallets[k] = &cp
	}
	txns := append([]models.StabletokenTransaction(nil), f.txns...)

	if err := fn(f); err != nil {
		f.wallets = wallets
		f.txns = txns
		return err
	}
	return nil
}

// stubUserRepo knows a fixed set of users.
type stubUserRepo struct {
	users map[uint]*models.User
}

func (s *stubUserRepo) Create(*models.User) error { return nil }

func (s *stubUserRepo) GetByID(id uint) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (s *stubUserRepo) GetByEthereumAddress(string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}

func (s *stubUserRepo) Update(*models.User) error { return nil }

func (s *stubUserRepo) List(int, int) ([]models.User, int64, error) { return nil, 0, nil }

func (s *stubUserRepo) CreateSeller(*models.Seller) error { return nil }

func (s *stubUserRepo) GetSellerByUserID(uint) (*models.Seller, error) {
	return nil, repositories.ErrUserNotFound
}

func knownUsers(ids ...uint) *stubUserRepo {
	users := make(map[uint]*models.User, len(ids))
	for _, id := range ids {
		u := &models.User{Role: models.RoleBuyer}
		u.ID = id
		users[id] = u
	}
	return &stubUserRepo{users: users}
}

func TestMint(t *testing.T) {
	ctx := context.Background()

	t.Run("first mint creates the wallet", func(t *testing.T) {
		repo := newFakeLedgerRepo()
		svc := NewService(repo, knownUsers(1), nil)

		balance, err := svc.Mint(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 10.0, balance)

		txns, err := svc.GetTransactionsForUser(ctx, 1)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, models.TransactionTypeMint, txns[0].Type)
		assert.Equal(t, 10.0, txns[0].Amount)
		assert.Nil(t, txns[0].Reference)
	})

	t.Run("mint adds to an existing balance", func(t *testing.T) {
		repo := newFakeLedgerRepo()
		svc := NewService(repo, knownUsers(1), nil)

		_, err := svc.Mint(ctx, 1, 25)
		require.NoError(t, err)
		balance, err := svc.Mint(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 35.0, balance)

		txns, _ := svc.GetTransactionsForUser(ctx, 1)
		assert.Len(t, txns, 2)
	})

	t.Run("invalid amounts are rejected", func(t *testing.T) {
		repo := newFakeLedgerRepo()
		svc := NewService(repo, knownUsers(1), nil)

		for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := svc.Mint(ctx, 1, amount)
			assert.ErrorIs(t, err, ErrInvalidAmount, "amount %v", amount)
		}
		txns, _ := svc.GetTransactionsForUser(ctx, 1)
		assert.Empty(t, txns)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := newFakeLedgerRepo()
		svc := NewService(repo, knownUsers(1), nil)

		_, err := svc.Mint(ctx, 99, 10)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestCredit_ReferenceIdempotence(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLedgerRepo()
	svc := NewService(repo, knownUsers(1), nil)

	balance, err := svc.Credit(ctx, 1, 5, models.TransactionTypePayment, "pay_test")
	require.NoError(t, err)
	assert.Equal(t, 5.0, balance)

	// Same reference again: no double credit, no extra row.
	balance, err = svc.Credit(ctx, 1, 5, models.TransactionTypePayment, "pay_test")
	require.NoError(t, err)
	assert.Equal(t, 5.0, balance)

	txns, err := svc.GetTransactionsForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	require.NotNil(t, txns[0].Reference)
	assert.Equal(t, "pay_test", *txns[0].Reference)
	assert.Equal(t, 5.0, txns[0].Amount)
}

// racyLedgerRepo hides existing references from the fast-path check so the
// duplicate only surfaces as a constraint violation inside the transaction,
// like a concurrent delivery would.
type racyLedgerRepo struct {
	*fakeLedgerRepo
}

func (r *racyLedgerRepo) GetTransactionByReference(string) (*models.StabletokenTransaction, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestCredit_DuplicateReferenceRace(t *testing.T) {
	ctx := context.Background()
	inner := newFakeLedgerRepo()
	repo := &racyLedgerRepo{fakeLedgerRepo: inner}
	svc := NewService(repo, knownUsers(1), nil)

	_, err := svc.Credit(ctx, 1, 5, models.TransactionTypePayment, "pay_race")
	require.NoError(t, err)

	balance, err := svc.Credit(ctx, 1, 5, models.TransactionTypePayment, "pay_race")
	require.NoError(t, err)
	assert.Equal(t, 5.0, balance, "rolled back credit must not change the balance")
	assert.Len(t, inner.txns, 1)
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLedgerRepo()
	svc := NewService(repo, knownUsers(1), nil)

	t.Run("no wallet row reads as zero", func(t *testing.T) {
		balance, err := svc.GetBalance(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0.0, balance)
	})

	t.Run("reflects credited amounts", func(t *testing.T) {
		_, err := svc.Mint(ctx, 1, 12.34)
		require.NoError(t, err)

		balance, err := svc.GetBalance(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 12.34, balance)
	})
}

func TestGetTransactionsForUser_Order(t *testing.T) {
	ctx := context.Background()
	repo := newFakeLedgerRepo()
	svc := NewService(repo, knownUsers(1, 2), nil)

	_, err := svc.Mint(ctx, 1, 1)
	require.NoError(t, err)
	_, err = svc.Credit(ctx, 1, 2, models.TransactionTypePayment, "pay_1")
	require.NoError(t, err)
	_, err = svc.Mint(ctx, 2, 3)
	require.NoError(t, err)

	txns, err := svc.GetTransactionsForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	// Newest first.
	assert.Equal(t, models.TransactionTypePayment, txns[0].Type)
	assert.Equal(t, models.TransactionTypeMint, txns[1].Type)
}
