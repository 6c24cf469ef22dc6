package repositories

import (
	"context"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

// WalletRepositoryFacade defines persistence operations for the single
// pledger wallet record each profile holds.
type WalletRepositoryFacade interface {
	// GetWallet returns the profile's wallet, creating an empty one on
	// first access.
	GetWallet(ctx context.Context, profile domain.Profile) (*domain.WalletState, error)
	SaveWallet(ctx context.Context, profile domain.Profile, wallet domain.WalletState) error
	// Reset replaces the wallet with an empty one.
	Reset(ctx context.Context, profile domain.Profile) error
}
