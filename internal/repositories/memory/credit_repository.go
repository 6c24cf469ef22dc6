package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/nairafund/pledge_lending_app/internal/apperrors"
	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	portsrepo "github.com/nairafund/pledge_lending_app/internal/core/ports/repositories"
)

// creditStore is one profile's credit ledger.
type creditStore struct {
	credits   []domain.Credit
	byID      map[string]int
	creditSeq *sequence
	loanSeq   *sequence
}

func newCreditStore() *creditStore {
	return &creditStore{
		byID:      make(map[string]int),
		creditSeq: newSequence("CR"),
		loanSeq:   newSequence("LOAN"),
	}
}

// CreditRepository is a mutex-guarded in-memory credit store partitioned by
// demo profile.
type CreditRepository struct {
	mu     sync.Mutex
	stores map[domain.Profile]*creditStore
}

// NewCreditRepository creates an empty store for every known profile.
func NewCreditRepository() *CreditRepository {
	stores := make(map[domain.Profile]*creditStore)
	for _, p := range domain.Profiles() {
		stores[p] = newCreditStore()
	}
	return &CreditRepository{stores: stores}
}

var _ portsrepo.CreditRepositoryFacade = (*CreditRepository)(nil)

func (r *CreditRepository) store(profile domain.Profile) (*creditStore, error) {
	s, ok := r.stores[profile]
	if !ok {
		return nil, fmt.Errorf("%w: profile %q", apperrors.ErrNotFound, profile)
	}
	return s, nil
}

// NextIDs implements portsrepo.CreditRepositoryFacade.
func (r *CreditRepository) NextIDs(_ context.Context, profile domain.Profile) (string, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.store(profile)
	if err != nil {
		return "", "", err
	}
	return s.creditSeq.Next(), s.loanSeq.Next(), nil
}

// SaveCredit implements portsrepo.CreditRepositoryFacade.
func (r *CreditRepository) SaveCredit(_ context.Context, profile domain.Profile, credit domain.Credit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.store(profile)
	if err != nil {
		return err
	}
	if _, exists := s.byID[credit.CreditID]; exists {
		return fmt.Errorf("%w: credit %s", apperrors.ErrDuplicate, credit.CreditID)
	}
	s.byID[credit.CreditID] = len(s.credits)
	s.credits = append(s.credits, copyCredit(credit))
	return nil
}

// UpdateCredit implements portsrepo.CreditRepositoryFacade.
func (r *CreditRepository) UpdateCredit(_ context.Context, profile domain.Profile, credit domain.Credit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.store(profile)
	if err != nil {
		return err
	}
	idx, exists := s.byID[credit.CreditID]
	if !exists {
		return fmt.Errorf("%w: credit %s", apperrors.ErrNotFound, credit.CreditID)
	}
	s.credits[idx] = copyCredit(credit)
	return nil
}

// FindCreditByID implements portsrepo.CreditRepositoryFacade.
func (r *CreditRepository) FindCreditByID(_ context.Context, profile domain.Profile, creditID string) (*domain.Credit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.store(profile)
	if err != nil {
		return nil, err
	}
	idx, exists := s.byID[creditID]
	if !exists {
		return nil, fmt.Errorf("%w: credit %s", apperrors.ErrNotFound, creditID)
	}
	c := copyCredit(s.credits[idx])
	return &c, nil
}

// ListCredits implements portsrepo.CreditRepositoryFacade.
func (r *CreditRepository) ListCredits(_ context.Context, profile domain.Profile) ([]domain.Credit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.store(profile)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Credit, len(s.credits))
	for i := range s.credits {
		out[i] = copyCredit(s.credits[i])
	}
	return out, nil
}

// Reset implements portsrepo.CreditRepositoryFacade.
func (r *CreditRepository) Reset(_ context.Context, profile domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.store(profile); err != nil {
		return err
	}
	r.stores[profile] = newCreditStore()
	return nil
}

// copyCredit deep-copies the payment history so callers never alias stored
// state.
func copyCredit(c domain.Credit) domain.Credit {
	out := c
	if c.PaymentHistory != nil {
		out.PaymentHistory = make([]domain.PaymentRecord, len(c.PaymentHistory))
		copy(out.PaymentHistory, c.PaymentHistory)
	}
	if c.StartDate != nil {
		d := *c.StartDate
		out.StartDate = &d
	}
	if c.EndDate != nil {
		d := *c.EndDate
		out.EndDate = &d
	}
	if c.NextPayment != nil {
		d := *c.NextPayment
		out.NextPayment = &d
	}
	return out
}
