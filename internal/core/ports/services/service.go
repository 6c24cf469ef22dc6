package services

import (
	"context"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

// EventDispatcherFacade applies cross-ledger bookkeeping events after a
// primary operation has succeeded. Dispatch is best-effort: a failed event
// is logged and skipped, never propagated.
type EventDispatcherFacade interface {
	Dispatch(ctx context.Context, profile domain.Profile, events []domain.Event)
}

// ServiceContainer holds all service interfaces for dependency injection.
type ServiceContainer struct {
	Credit      CreditSvcFacade
	Wallet      WalletSvcFacade
	Transaction TransactionSvcFacade
	Activity    ActivitySvcFacade
	Demo        DemoSvcFacade
	Dispatcher  EventDispatcherFacade
}
