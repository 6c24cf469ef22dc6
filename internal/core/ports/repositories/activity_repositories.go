package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

// ActivityRepositoryFacade defines persistence for the pledger's
// append-only USD activity log.
type ActivityRepositoryFacade interface {
	// NextActivityID reserves the next sequential ID (PA001 style).
	NextActivityID(ctx context.Context, profile domain.Profile) (string, error)
	SaveActivity(ctx context.Context, profile domain.Profile, activity domain.PledgerActivity) error
	// ListActivities returns entries most-recent-first.
	ListActivities(ctx context.Context, profile domain.Profile) ([]domain.PledgerActivity, error)
	// LatestBalance is the BalanceAfterUSD of the most recent entry, or
	// zero for an empty log.
	LatestBalance(ctx context.Context, profile domain.Profile) (decimal.Decimal, error)
	// Reset clears the log and reseeds the ID counter.
	Reset(ctx context.Context, profile domain.Profile) error
}
