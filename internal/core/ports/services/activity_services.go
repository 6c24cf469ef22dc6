package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

// ActivitySvcFacade defines the pledger-side append-only activity log.
type ActivitySvcFacade interface {
	AppendActivity(ctx context.Context, profile domain.Profile, activityType domain.ActivityType, creditID string, amountUSD decimal.Decimal, description string) (*domain.PledgerActivity, error)
	ListActivities(ctx context.Context, profile domain.Profile) ([]domain.PledgerActivity, error)
}
