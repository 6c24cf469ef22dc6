package memory

import (
	portsrepo "github.com/nairafund/pledge_lending_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires up fresh in-memory repositories for all four
// ledgers. Tests construct their own provider to get isolated stores.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CreditRepo:      NewCreditRepository(),
		WalletRepo:      NewWalletRepository(),
		TransactionRepo: NewTransactionRepository(),
		ActivityRepo:    NewActivityRepository(),
	}
}
