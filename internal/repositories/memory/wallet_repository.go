package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/apperrors"
	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	portsrepo "github.com/nairafund/pledge_lending_app/internal/core/ports/repositories"
)

// WalletRepository is a mutex-guarded in-memory wallet store, one wallet
// record per demo profile.
type WalletRepository struct {
	mu      sync.Mutex
	wallets map[domain.Profile]*domain.WalletState
}

// NewWalletRepository creates an empty wallet for every known profile.
func NewWalletRepository() *WalletRepository {
	wallets := make(map[domain.Profile]*domain.WalletState)
	for _, p := range domain.Profiles() {
		wallets[p] = emptyWallet()
	}
	return &WalletRepository{wallets: wallets}
}

var _ portsrepo.WalletRepositoryFacade = (*WalletRepository)(nil)

func emptyWallet() *domain.WalletState {
	now := time.Now().UTC()
	return &domain.WalletState{
		BalanceUSD:  decimal.Zero,
		LockedFunds: []domain.LockedFund{},
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
}

// GetWallet implements portsrepo.WalletRepositoryFacade.
func (r *WalletRepository) GetWallet(_ context.Context, profile domain.Profile) (*domain.WalletState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.wallets[profile]
	if !ok {
		return nil, fmt.Errorf("%w: profile %q", apperrors.ErrNotFound, profile)
	}
	out := copyWallet(*w)
	return &out, nil
}

// SaveWallet implements portsrepo.WalletRepositoryFacade.
func (r *WalletRepository) SaveWallet(_ context.Context, profile domain.Profile, wallet domain.WalletState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.wallets[profile]; !ok {
		return fmt.Errorf("%w: profile %q", apperrors.ErrNotFound, profile)
	}
	stored := copyWallet(wallet)
	stored.LastUpdatedAt = time.Now().UTC()
	r.wallets[profile] = &stored
	return nil
}

// Reset implements portsrepo.WalletRepositoryFacade.
func (r *WalletRepository) Reset(_ context.Context, profile domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.wallets[profile]; !ok {
		return fmt.Errorf("%w: profile %q", apperrors.ErrNotFound, profile)
	}
	r.wallets[profile] = emptyWallet()
	return nil
}

func copyWallet(w domain.WalletState) domain.WalletState {
	out := w
	out.LockedFunds = make([]domain.LockedFund, len(w.LockedFunds))
	copy(out.LockedFunds, w.LockedFunds)
	return out
}
