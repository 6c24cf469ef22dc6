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

// activityStore is one profile's pledger activity log, kept in insertion order.
type activityStore struct {
	activities []domain.PledgerActivity
	seq        *sequence
}

func newActivityStore() *activityStore {
	return &activityStore{seq: newSequence("PA")}
}

// ActivityRepository is a mutex-guarded in-memory activity log partitioned
// by demo profile.
type ActivityRepository struct {
	mu     sync.Mutex
	stores map[domain.Profile]*activityStore
}

// NewActivityRepository creates an empty log for every known profile.
func NewActivityRepository() *ActivityRepository {
	stores := make(map[domain.Profile]*activityStore)
	for _, p := range domain.Profiles() {
		stores[p] = newActivityStore()
	}
	return &ActivityRepository{stores: stores}
}

var _ portsrepo.ActivityRepositoryFacade = (*ActivityRepository)(nil)

func (r *ActivityRepository) store(profile domain.Profile) (*activityStore, error) {
	s, ok := r.stores[profile]
	if !ok {
		return nil, fmt.Errorf("%w: profile %q", apperrors.ErrNotFound, profile)
	}
	return s, nil
}

// NextActivityID implements portsrepo.ActivityRepositoryFacade.
func (r *ActivityRepository) NextActivityID(_ context.Context, profile domain.Profile) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.store(profile)
	if err != nil {
		return "", err
	}
	return s.seq.Next(), nil
}

// SaveActivity implements portsrepo.ActivityRepositoryFacade.
func (r *ActivityRepository) SaveActivity(_ context.Context, profile domain.Profile, activity domain.PledgerActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.store(profile)
	if err != nil {
		return err
	}
	s.activities = append(s.activities, activity)
	return nil
}

// ListActivities implements portsrepo.ActivityRepositoryFacade.
// Entries come back most-recent-first.
func (r *ActivityRepository) ListActivities(_ context.Context, profile domain.Profile) ([]domain.PledgerActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.store(profile)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PledgerActivity, len(s.activities))
	for i := range s.activities {
		out[len(s.activities)-1-i] = s.activities[i]
	}
	return out, nil
}

// LatestBalance implements portsrepo.ActivityRepositoryFacade.
func (r *ActivityRepository) LatestBalance(_ context.Context, profile domain.Profile) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.store(profile)
	if err != nil {
		return decimal.Zero, err
	}
	if len(s.activities) == 0 {
		return decimal.Zero, nil
	}
	return s.activities[len(s.activities)-1].BalanceAfterUSD, nil
}

// Reset implements portsrepo.ActivityRepositoryFacade.
func (r *ActivityRepository) Reset(_ context.Context, profile domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.store(profile); err != nil {
		return err
	}
	r.stores[profile] = newActivityStore()
	return nil
}
