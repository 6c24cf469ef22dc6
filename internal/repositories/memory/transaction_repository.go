package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/apperrors"
	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	portsrepo "github.com/nairafund/pledge_lending_app/internal/core/ports/repositories"
)

// txnStore is one profile's borrower ledger, kept in insertion order.
type txnStore struct {
	txns []domain.Transaction
	byID map[string]int
	seq  *sequence
}

func newTxnStore() *txnStore {
	return &txnStore{byID: make(map[string]int), seq: newSequence("TXN")}
}

// TransactionRepository is a mutex-guarded in-memory transaction log
// partitioned by demo profile.
type TransactionRepository struct {
	mu     sync.Mutex
	stores map[domain.Profile]*txnStore
}

// NewTransactionRepository creates an empty log for every known profile.
func NewTransactionRepository() *TransactionRepository {
	stores := make(map[domain.Profile]*txnStore)
	for _, p := range domain.Profiles() {
		stores[p] = newTxnStore()
	}
	return &TransactionRepository{stores: stores}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) store(profile domain.Profile) (*txnStore, error) {
	s, ok := r.stores[profile]
	if !ok {
		return nil, fmt.Errorf("%w: profile %q", apperrors.ErrNotFound, profile)
	}
	return s, nil
}

// NextTransactionID implements portsrepo.TransactionRepositoryFacade.
func (r *TransactionRepository) NextTransactionID(_ context.Context, profile domain.Profile) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.store(profile)
	if err != nil {
		return "", err
	}
	return s.seq.Next(), nil
}

// SaveTransaction implements portsrepo.TransactionRepositoryFacade.
func (r *TransactionRepository) SaveTransaction(_ context.Context, profile domain.Profile, txn domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.store(profile)
	if err != nil {
		return err
	}
	if _, exists := s.byID[txn.TransactionID]; exists {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	s.byID[txn.TransactionID] = len(s.txns)
	s.txns = append(s.txns, txn)
	return nil
}

// FindTransactionByID implements portsrepo.TransactionRepositoryFacade.
func (r *TransactionRepository) FindTransactionByID(_ context.Context, profile domain.Profile, transactionID string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.store(profile)
	if err != nil {
		return nil, err
	}
	idx, exists := s.byID[transactionID]
	if !exists {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	t := s.txns[idx]
	return &t, nil
}

// ListTransactions implements portsrepo.TransactionRepositoryFacade.
// Entries come back most-recent-first.
func (r *TransactionRepository) ListTransactions(_ context.Context, profile domain.Profile) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.store(profile)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Transaction, len(s.txns))
	for i := range s.txns {
		out[len(s.txns)-1-i] = s.txns[i]
	}
	return out, nil
}

// LatestBalance implements portsrepo.TransactionRepositoryFacade.
func (r *TransactionRepository) LatestBalance(_ context.Context, profile domain.Profile) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.store(profile)
	if err != nil {
		return decimal.Zero, err
	}
	if len(s.txns) == 0 {
		return decimal.Zero, nil
	}
	return s.txns[len(s.txns)-1].BalanceAfterNGN, nil
}

// Reset implements portsrepo.TransactionRepositoryFacade.
func (r *TransactionRepository) Reset(_ context.Context, profile domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.store(profile); err != nil {
		return err
	}
	r.stores[profile] = newTxnStore()
	return nil
}
