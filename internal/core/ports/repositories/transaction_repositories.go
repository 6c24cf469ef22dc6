package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

// TransactionRepositoryFacade defines persistence for the borrower's
// append-only NGN ledger.
type TransactionRepositoryFacade interface {
	// NextTransactionID reserves the next sequential ID (TXN001 style).
	NextTransactionID(ctx context.Context, profile domain.Profile) (string, error)
	SaveTransaction(ctx context.Context, profile domain.Profile, txn domain.Transaction) error
	// FindTransactionByID returns apperrors.ErrNotFound on miss.
	FindTransactionByID(ctx context.Context, profile domain.Profile, transactionID string) (*domain.Transaction, error)
	// ListTransactions returns entries most-recent-first.
	ListTransactions(ctx context.Context, profile domain.Profile) ([]domain.Transaction, error)
	// LatestBalance is the BalanceAfterNGN of the most recent entry, or
	// zero for an empty ledger.
	LatestBalance(ctx context.Context, profile domain.Profile) (decimal.Decimal, error)
	// Reset clears the ledger and reseeds the ID counter.
	Reset(ctx context.Context, profile domain.Profile) error
}
