package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nairafund/pledge_lending_app/internal/apperrors"
	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	"github.com/nairafund/pledge_lending_app/internal/repositories/memory"
)

func TestCreditRepository_SequencesAndIsolation(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCreditRepository()

	creditID, loanID, err := repo.NextIDs(ctx, domain.ProfileFresh)
	require.NoError(t, err)
	assert.Equal(t, "CR001", creditID)
	assert.Equal(t, "LOAN001", loanID)

	// The other profile keeps its own counter.
	creditID, _, err = repo.NextIDs(ctx, domain.ProfileActive)
	require.NoError(t, err)
	assert.Equal(t, "CR001", creditID)

	creditID, _, err = repo.NextIDs(ctx, domain.ProfileFresh)
	require.NoError(t, err)
	assert.Equal(t, "CR002", creditID)

	_, _, err = repo.NextIDs(ctx, domain.Profile("staging"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreditRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCreditRepository()

	credit := domain.Credit{
		CreditID:       "CR001",
		LoanID:         "LOAN001",
		Status:         domain.CreditPending,
		PaymentHistory: []domain.PaymentRecord{},
	}
	require.NoError(t, repo.SaveCredit(ctx, domain.ProfileFresh, credit))

	got, err := repo.FindCreditByID(ctx, domain.ProfileFresh, "CR001")
	require.NoError(t, err)

	// Mutating the returned value must not leak into the store.
	got.Status = domain.CreditActive
	got.PaymentHistory = append(got.PaymentHistory, domain.PaymentRecord{PaymentID: "p1"})

	stored, err := repo.FindCreditByID(ctx, domain.ProfileFresh, "CR001")
	require.NoError(t, err)
	assert.Equal(t, domain.CreditPending, stored.Status)
	assert.Empty(t, stored.PaymentHistory)

	require.NoError(t, repo.UpdateCredit(ctx, domain.ProfileFresh, *got))
	stored, err = repo.FindCreditByID(ctx, domain.ProfileFresh, "CR001")
	require.NoError(t, err)
	assert.Equal(t, domain.CreditActive, stored.Status)

	err = repo.SaveCredit(ctx, domain.ProfileFresh, credit)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestTransactionRepository_OrderAndBalance(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTransactionRepository()
	profile := domain.ProfileFresh

	balance, err := repo.LatestBalance(ctx, profile)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	running := decimal.Zero
	for i := 1; i <= 3; i++ {
		id, err := repo.NextTransactionID(ctx, profile)
		require.NoError(t, err)
		running = running.Add(decimal.NewFromInt(int64(i * 100)))
		require.NoError(t, repo.SaveTransaction(ctx, profile, domain.Transaction{
			TransactionID:   id,
			Category:        domain.TxnDeposit,
			AmountNGN:       decimal.NewFromInt(int64(i * 100)),
			BalanceAfterNGN: running,
			OccurredAt:      time.Now().UTC(),
		}))
	}

	balance, err = repo.LatestBalance(ctx, profile)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(600)))

	txns, err := repo.ListTransactions(ctx, profile)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "TXN003", txns[0].TransactionID)
	assert.Equal(t, "TXN002", txns[1].TransactionID)
	assert.Equal(t, "TXN001", txns[2].TransactionID)
}

func TestSequence_GrowsPastPadWidth(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewActivityRepository()

	var last string
	for i := 0; i < 1000; i++ {
		id, err := repo.NextActivityID(ctx, domain.ProfileFresh)
		require.NoError(t, err)
		last = id
	}
	assert.Equal(t, "PA1000", last)
}

func TestWalletRepository_ResetRestoresEmptyState(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewWalletRepository()
	profile := domain.ProfileFresh

	wallet, err := repo.GetWallet(ctx, profile)
	require.NoError(t, err)
	wallet.BalanceUSD = decimal.NewFromInt(750)
	wallet.LockedFunds = append(wallet.LockedFunds, domain.LockedFund{CreditID: "CR001", AmountUSD: decimal.NewFromInt(100)})
	require.NoError(t, repo.SaveWallet(ctx, profile, *wallet))

	require.NoError(t, repo.Reset(ctx, profile))

	wallet, err = repo.GetWallet(ctx, profile)
	require.NoError(t, err)
	assert.True(t, wallet.BalanceUSD.IsZero())
	assert.Empty(t, wallet.LockedFunds)
}
