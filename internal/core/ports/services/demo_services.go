package services

import (
	"context"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

// DemoSvcFacade resets and seeds the demo profiles.
type DemoSvcFacade interface {
	// ResetProfile clears every ledger for the profile and reseeds the
	// ID counters to their initial values.
	ResetProfile(ctx context.Context, profile domain.Profile) error
	// SeedActiveProfile populates the active profile with a lived-in
	// dataset: funded wallet, a deposit, and one approved credit.
	SeedActiveProfile(ctx context.Context) error
}
