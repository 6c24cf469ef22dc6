package repositories

import (
	"context"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

// CreditRepositoryFacade defines persistence operations for credits.
// Every method operates on one profile's ledger.
type CreditRepositoryFacade interface {
	// NextIDs reserves the next sequential credit and loan identifiers
	// (CR001/LOAN001 style).
	NextIDs(ctx context.Context, profile domain.Profile) (creditID string, loanID string, err error)
	SaveCredit(ctx context.Context, profile domain.Profile, credit domain.Credit) error
	UpdateCredit(ctx context.Context, profile domain.Profile, credit domain.Credit) error
	// FindCreditByID returns apperrors.ErrNotFound on miss.
	FindCreditByID(ctx context.Context, profile domain.Profile, creditID string) (*domain.Credit, error)
	// ListCredits returns credits in creation order.
	ListCredits(ctx context.Context, profile domain.Profile) ([]domain.Credit, error)
	// Reset clears the ledger and reseeds the ID counters.
	Reset(ctx context.Context, profile domain.Profile) error
}
