package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	"github.com/nairafund/pledge_lending_app/internal/dto"
)

// CreditPaymentApplier is the single authoritative payment application.
// Every repayment path goes through this one operation.
type CreditPaymentApplier interface {
	// ApplyPayment reduces the remaining balance of an active credit,
	// appends a payment record, and on reaching zero transitions the
	// credit to completed. Returned events carry the collateral release
	// and activity mirroring for the dispatcher.
	ApplyPayment(ctx context.Context, profile domain.Profile, creditID string, amountNGN decimal.Decimal, paymentType domain.PaymentType, reference string) (*domain.Credit, *domain.PaymentRecord, []domain.Event, error)
}

// CreditSvcFacade defines the credit lifecycle operations.
type CreditSvcFacade interface {
	CreditPaymentApplier

	CreateRequest(ctx context.Context, profile domain.Profile, req dto.CreateCreditRequest) (*domain.Credit, []domain.Event, error)
	GetCreditByID(ctx context.Context, profile domain.Profile, creditID string) (*domain.Credit, error)
	ListCredits(ctx context.Context, profile domain.Profile) ([]domain.Credit, error)
	Approve(ctx context.Context, profile domain.Profile, creditID string) (*domain.Credit, []domain.Event, error)
	Decline(ctx context.Context, profile domain.Profile, creditID string) (*domain.Credit, []domain.Event, error)
	// ApproveAll and DeclineAll are best-effort: one failing credit does
	// not block the rest.
	ApproveAll(ctx context.Context, profile domain.Profile) (*dto.BulkActionResult, []domain.Event, error)
	DeclineAll(ctx context.Context, profile domain.Profile) (*dto.BulkActionResult, []domain.Event, error)
	// Preview computes loan terms without touching any ledger; the request
	// form uses it before submitting.
	Preview(ctx context.Context, req dto.LoanPreviewRequest) (*dto.LoanPreviewResponse, error)
}
