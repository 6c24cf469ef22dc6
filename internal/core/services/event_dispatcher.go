package services

import (
	"context"
	"log/slog"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	portssvc "github.com/nairafund/pledge_lending_app/internal/core/ports/services"
	"github.com/nairafund/pledge_lending_app/internal/middleware"
)

// eventDispatcher routes cross-ledger events to the service that owns each
// kind. Events run FIFO; follow-ups produced while applying one are queued
// behind the rest. Failures are logged and skipped so that secondary
// bookkeeping can never undo a primary operation that already committed.
type eventDispatcher struct {
	wallet      portssvc.WalletSvcFacade
	transaction portssvc.TransactionSvcFacade
	activity    portssvc.ActivitySvcFacade
}

// NewEventDispatcher creates the dispatcher over the owning services.
func NewEventDispatcher(wallet portssvc.WalletSvcFacade, transaction portssvc.TransactionSvcFacade, activity portssvc.ActivitySvcFacade) portssvc.EventDispatcherFacade {
	return &eventDispatcher{wallet: wallet, transaction: transaction, activity: activity}
}

var _ portssvc.EventDispatcherFacade = (*eventDispatcher)(nil)

func (d *eventDispatcher) Dispatch(ctx context.Context, profile domain.Profile, events []domain.Event) {
	logger := middleware.GetLoggerFromCtx(ctx)

	queue := make([]domain.Event, len(events))
	copy(queue, events)

	for len(queue) > 0 {
		ev := queue[0]
		queue = queue[1:]

		followUps, err := d.apply(ctx, profile, ev)
		if err != nil {
			logger.Warn("Event application failed, skipping",
				slog.String("kind", string(ev.Kind)),
				slog.String("credit_id", ev.CreditID),
				slog.String("error", err.Error()))
			continue
		}
		queue = append(queue, followUps...)
	}
}

func (d *eventDispatcher) apply(ctx context.Context, profile domain.Profile, ev domain.Event) ([]domain.Event, error) {
	switch ev.Kind {
	case domain.EventLockCollateral:
		_, followUps, err := d.wallet.LockFunds(ctx, profile, ev.CreditID, ev.AmountUSD)
		return followUps, err
	case domain.EventReleaseCollateral:
		_, followUps, err := d.wallet.UnlockFunds(ctx, profile, ev.CreditID)
		return followUps, err
	case domain.EventRecordDisbursement:
		_, followUps, err := d.transaction.AddLoanDisbursement(ctx, profile, ev.CreditID, ev.AmountNGN, ev.Description)
		return followUps, err
	case domain.EventAppendActivity:
		_, err := d.activity.AppendActivity(ctx, profile, ev.ActivityType, ev.CreditID, ev.AmountUSD, ev.Description)
		return nil, err
	default:
		middleware.GetLoggerFromCtx(ctx).Warn("Unknown event kind dropped", slog.String("kind", string(ev.Kind)))
		return nil, nil
	}
}
