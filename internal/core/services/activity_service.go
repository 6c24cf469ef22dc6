package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/apperrors"
	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	portsrepo "github.com/nairafund/pledge_lending_app/internal/core/ports/repositories"
	portssvc "github.com/nairafund/pledge_lending_app/internal/core/ports/services"
	"github.com/nairafund/pledge_lending_app/internal/middleware"
)

// activityService maintains the pledger's append-only USD activity log.
// Each entry's balance effect comes from the per-type sign table.
type activityService struct {
	activityRepo portsrepo.ActivityRepositoryFacade
}

// NewActivityService creates a new activity service.
func NewActivityService(activityRepo portsrepo.ActivityRepositoryFacade) portssvc.ActivitySvcFacade {
	return &activityService{activityRepo: activityRepo}
}

var _ portssvc.ActivitySvcFacade = (*activityService)(nil)

// AppendActivity records one pledger-side event with a running balance.
func (s *activityService) AppendActivity(ctx context.Context, profile domain.Profile, activityType domain.ActivityType, creditID string, amountUSD decimal.Decimal, description string) (*domain.PledgerActivity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sign, known := activityType.BalanceSign()
	if !known {
		return nil, fmt.Errorf("%w: unknown activity type %q", apperrors.ErrValidation, activityType)
	}
	if amountUSD.IsNegative() {
		return nil, fmt.Errorf("%w: activity amount must not be negative", apperrors.ErrValidation)
	}

	balance, err := s.activityRepo.LatestBalance(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to read activity balance: %w", err)
	}
	newBalance := balance.Add(amountUSD.Mul(decimal.NewFromInt(int64(sign))))

	activityID, err := s.activityRepo.NextActivityID(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve activity ID: %w", err)
	}

	activity := domain.PledgerActivity{
		ActivityID:      activityID,
		Type:            activityType,
		Description:     description,
		CreditID:        creditID,
		AmountUSD:       amountUSD,
		BalanceAfterUSD: newBalance,
		OccurredAt:      time.Now().UTC(),
	}
	if err := s.activityRepo.SaveActivity(ctx, profile, activity); err != nil {
		return nil, fmt.Errorf("failed to save activity: %w", err)
	}

	logger.Debug("Pledger activity appended", slog.String("activity_id", activityID), slog.String("type", string(activityType)))
	return &activity, nil
}

// ListActivities returns the log most-recent-first.
func (s *activityService) ListActivities(ctx context.Context, profile domain.Profile) ([]domain.PledgerActivity, error) {
	activities, err := s.activityRepo.ListActivities(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}
