package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	portsrepo "github.com/nairafund/pledge_lending_app/internal/core/ports/repositories"
	portssvc "github.com/nairafund/pledge_lending_app/internal/core/ports/services"
	"github.com/nairafund/pledge_lending_app/internal/dto"
	"github.com/nairafund/pledge_lending_app/internal/middleware"
)

// demoService resets profiles and seeds the lived-in "active" dataset.
type demoService struct {
	repos       portsrepo.RepositoryProvider
	credit      portssvc.CreditSvcFacade
	wallet      portssvc.WalletSvcFacade
	transaction portssvc.TransactionSvcFacade
	dispatcher  portssvc.EventDispatcherFacade
}

// NewDemoService creates a new demo service.
func NewDemoService(repos portsrepo.RepositoryProvider, credit portssvc.CreditSvcFacade, wallet portssvc.WalletSvcFacade, transaction portssvc.TransactionSvcFacade, dispatcher portssvc.EventDispatcherFacade) portssvc.DemoSvcFacade {
	return &demoService{
		repos:       repos,
		credit:      credit,
		wallet:      wallet,
		transaction: transaction,
		dispatcher:  dispatcher,
	}
}

var _ portssvc.DemoSvcFacade = (*demoService)(nil)

// ResetProfile clears every ledger for the profile and reseeds the ID
// counters, returning the profile to its initial empty state.
func (s *demoService) ResetProfile(ctx context.Context, profile domain.Profile) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.repos.CreditRepo.Reset(ctx, profile); err != nil {
		return fmt.Errorf("failed to reset credits: %w", err)
	}
	if err := s.repos.WalletRepo.Reset(ctx, profile); err != nil {
		return fmt.Errorf("failed to reset wallet: %w", err)
	}
	if err := s.repos.TransactionRepo.Reset(ctx, profile); err != nil {
		return fmt.Errorf("failed to reset transactions: %w", err)
	}
	if err := s.repos.ActivityRepo.Reset(ctx, profile); err != nil {
		return fmt.Errorf("failed to reset activities: %w", err)
	}

	logger.Info("Profile reset", slog.String("profile", string(profile)))
	return nil
}

// SeedActiveProfile builds the lived-in demo dataset on the active profile:
// a funded pledger wallet, an initial borrower deposit, and one credit
// taken through approval so its collateral lock, disbursement and activity
// entries all exist.
func (s *demoService) SeedActiveProfile(ctx context.Context) error {
	profile := domain.ProfileActive
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.ResetProfile(ctx, profile); err != nil {
		return err
	}

	_, events, err := s.wallet.TopUp(ctx, profile, decimal.NewFromInt(1000))
	if err != nil {
		return fmt.Errorf("failed to seed wallet top-up: %w", err)
	}
	s.dispatcher.Dispatch(ctx, profile, events)

	_, events, err = s.transaction.AddCashTransaction(ctx, profile, domain.TxnDeposit, decimal.NewFromInt(50000))
	if err != nil {
		return fmt.Errorf("failed to seed deposit: %w", err)
	}
	s.dispatcher.Dispatch(ctx, profile, events)

	credit, events, err := s.credit.CreateRequest(ctx, profile, dto.CreateCreditRequest{
		PledgerName:        "Adaeze Okafor",
		PledgerContact:     "adaeze@example.com",
		PledgerCountry:     "United States",
		PrincipalNGN:       decimal.NewFromInt(300000),
		Term:               "3 months",
		RepaymentFrequency: domain.FrequencyMonthly,
	})
	if err != nil {
		return fmt.Errorf("failed to seed credit request: %w", err)
	}
	s.dispatcher.Dispatch(ctx, profile, events)

	_, events, err = s.credit.Approve(ctx, profile, credit.CreditID)
	if err != nil {
		return fmt.Errorf("failed to seed credit approval: %w", err)
	}
	s.dispatcher.Dispatch(ctx, profile, events)

	logger.Info("Active profile seeded", slog.String("credit_id", credit.CreditID))
	return nil
}
