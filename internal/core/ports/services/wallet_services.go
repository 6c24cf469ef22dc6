package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

// WalletSvcFacade defines the pledger wallet and collateral operations.
// Mutating methods return the events that mirror the change into the
// pledger activity log.
type WalletSvcFacade interface {
	GetWallet(ctx context.Context, profile domain.Profile) (*domain.WalletState, error)
	TopUp(ctx context.Context, profile domain.Profile, amountUSD decimal.Decimal) (*domain.WalletState, []domain.Event, error)
	Withdraw(ctx context.Context, profile domain.Profile, amountUSD decimal.Decimal) (*domain.WalletState, []domain.Event, error)
	// LockFunds reserves collateral against a credit; at most one lock
	// may exist per credit ID.
	LockFunds(ctx context.Context, profile domain.Profile, creditID string, amountUSD decimal.Decimal) (*domain.WalletState, []domain.Event, error)
	// UnlockFunds removes a reservation. The balance is unchanged because
	// locking never debited it.
	UnlockFunds(ctx context.Context, profile domain.Profile, creditID string) (*domain.WalletState, []domain.Event, error)
}
