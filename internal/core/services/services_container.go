package services

import (
	"fmt"

	portsrepo "github.com/nairafund/pledge_lending_app/internal/core/ports/repositories"
	portssvc "github.com/nairafund/pledge_lending_app/internal/core/ports/services"
	"github.com/nairafund/pledge_lending_app/internal/utils/fx"
	"github.com/nairafund/pledge_lending_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	converter, err := fx.NewConverter(cfg.NGNPerUSD)
	if err != nil {
		return nil, fmt.Errorf("invalid conversion rate: %w", err)
	}

	container := &portssvc.ServiceContainer{}

	// Wallet and activity have no service dependencies; credit needs only
	// the converter. Transaction depends on credit as the payment applier.
	container.Wallet = NewWalletService(repos.WalletRepo)
	container.Activity = NewActivityService(repos.ActivityRepo)
	container.Credit = NewCreditService(repos.CreditRepo, converter, cfg.DefaultAnnualRatePercent)
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Credit, converter)

	container.Dispatcher = NewEventDispatcher(container.Wallet, container.Transaction, container.Activity)
	container.Demo = NewDemoService(repos, container.Credit, container.Wallet, container.Transaction, container.Dispatcher)

	return container, nil
}
