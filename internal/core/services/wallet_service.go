package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/apperrors"
	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	portsrepo "github.com/nairafund/pledge_lending_app/internal/core/ports/repositories"
	portssvc "github.com/nairafund/pledge_lending_app/internal/core/ports/services"
	"github.com/nairafund/pledge_lending_app/internal/middleware"
	"github.com/nairafund/pledge_lending_app/internal/utils"
)

// walletService manages the pledger's USD balance and collateral
// reservations. Locking reserves balance without debiting it, so the
// spendable amount is always balance minus the sum of locks.
type walletService struct {
	walletRepo portsrepo.WalletRepositoryFacade
}

// NewWalletService creates a new wallet service.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade) portssvc.WalletSvcFacade {
	return &walletService{walletRepo: walletRepo}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// GetWallet returns the profile's wallet state.
func (s *walletService) GetWallet(ctx context.Context, profile domain.Profile) (*domain.WalletState, error) {
	wallet, err := s.walletRepo.GetWallet(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	return wallet, nil
}

// TopUp increases the wallet balance.
func (s *walletService) TopUp(ctx context.Context, profile domain.Profile, amountUSD decimal.Decimal) (*domain.WalletState, []domain.Event, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amountUSD.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: top-up amount must be positive", apperrors.ErrValidation)
	}

	wallet, err := s.walletRepo.GetWallet(ctx, profile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load wallet: %w", err)
	}

	wallet.BalanceUSD = wallet.BalanceUSD.Add(amountUSD)
	if err := s.walletRepo.SaveWallet(ctx, profile, *wallet); err != nil {
		return nil, nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	events := []domain.Event{{
		Kind:         domain.EventAppendActivity,
		AmountUSD:    amountUSD,
		ActivityType: domain.ActivityTopUp,
		Description:  fmt.Sprintf("Wallet top-up of %s", utils.FormatUSD(amountUSD)),
	}}

	logger.Info("Wallet topped up", slog.String("amount_usd", amountUSD.String()), slog.String("balance_usd", wallet.BalanceUSD.String()))
	return wallet, events, nil
}

// Withdraw decreases the wallet balance. Only the unreserved portion is
// spendable.
func (s *walletService) Withdraw(ctx context.Context, profile domain.Profile, amountUSD decimal.Decimal) (*domain.WalletState, []domain.Event, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amountUSD.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrValidation)
	}

	wallet, err := s.walletRepo.GetWallet(ctx, profile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load wallet: %w", err)
	}

	available := wallet.Available()
	if amountUSD.GreaterThan(available) {
		return nil, nil, fmt.Errorf("%w: available balance %s is short by %s",
			apperrors.ErrInsufficientFunds, utils.FormatUSD(available), utils.FormatUSD(amountUSD.Sub(available)))
	}

	wallet.BalanceUSD = wallet.BalanceUSD.Sub(amountUSD)
	if err := s.walletRepo.SaveWallet(ctx, profile, *wallet); err != nil {
		return nil, nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	events := []domain.Event{{
		Kind:         domain.EventAppendActivity,
		AmountUSD:    amountUSD,
		ActivityType: domain.ActivityWithdrawal,
		Description:  fmt.Sprintf("Wallet withdrawal of %s", utils.FormatUSD(amountUSD)),
	}}

	logger.Info("Wallet withdrawal", slog.String("amount_usd", amountUSD.String()), slog.String("balance_usd", wallet.BalanceUSD.String()))
	return wallet, events, nil
}

// LockFunds reserves collateral against a credit. At most one lock may
// exist per credit ID.
func (s *walletService) LockFunds(ctx context.Context, profile domain.Profile, creditID string, amountUSD decimal.Decimal) (*domain.WalletState, []domain.Event, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amountUSD.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: lock amount must be positive", apperrors.ErrValidation)
	}

	wallet, err := s.walletRepo.GetWallet(ctx, profile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load wallet: %w", err)
	}

	if _, exists := wallet.FindLock(creditID); exists {
		return nil, nil, fmt.Errorf("%w: funds already locked for credit %s", apperrors.ErrDuplicate, creditID)
	}

	available := wallet.Available()
	if amountUSD.GreaterThan(available) {
		return nil, nil, fmt.Errorf("%w: available balance %s is short by %s",
			apperrors.ErrInsufficientFunds, utils.FormatUSD(available), utils.FormatUSD(amountUSD.Sub(available)))
	}

	wallet.LockedFunds = append(wallet.LockedFunds, domain.LockedFund{
		CreditID:  creditID,
		AmountUSD: amountUSD,
		LockedAt:  time.Now().UTC(),
	})
	if err := s.walletRepo.SaveWallet(ctx, profile, *wallet); err != nil {
		return nil, nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	events := []domain.Event{{
		Kind:         domain.EventAppendActivity,
		CreditID:     creditID,
		AmountUSD:    amountUSD,
		ActivityType: domain.ActivityCollateralLocked,
		Description:  fmt.Sprintf("Collateral of %s locked for credit %s", utils.FormatUSD(amountUSD), creditID),
	}}

	logger.Info("Collateral locked", slog.String("credit_id", creditID), slog.String("amount_usd", amountUSD.String()))
	return wallet, events, nil
}

// UnlockFunds removes the reservation for a credit. The balance stays as it
// is because locking never debited it.
func (s *walletService) UnlockFunds(ctx context.Context, profile domain.Profile, creditID string) (*domain.WalletState, []domain.Event, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	wallet, err := s.walletRepo.GetWallet(ctx, profile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load wallet: %w", err)
	}

	lock, exists := wallet.FindLock(creditID)
	if !exists {
		return nil, nil, fmt.Errorf("%w: no lock found for credit %s", apperrors.ErrNotFound, creditID)
	}
	released := lock.AmountUSD

	kept := wallet.LockedFunds[:0]
	for _, lf := range wallet.LockedFunds {
		if lf.CreditID != creditID {
			kept = append(kept, lf)
		}
	}
	wallet.LockedFunds = kept

	if err := s.walletRepo.SaveWallet(ctx, profile, *wallet); err != nil {
		return nil, nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	events := []domain.Event{{
		Kind:         domain.EventAppendActivity,
		CreditID:     creditID,
		AmountUSD:    released,
		ActivityType: domain.ActivityCollateralReleased,
		Description:  fmt.Sprintf("Collateral of %s released for credit %s", utils.FormatUSD(released), creditID),
	}}

	logger.Info("Collateral released", slog.String("credit_id", creditID), slog.String("amount_usd", released.String()))
	return wallet, events, nil
}
