package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/apperrors"
	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	portsrepo "github.com/nairafund/pledge_lending_app/internal/core/ports/repositories"
	portssvc "github.com/nairafund/pledge_lending_app/internal/core/ports/services"
	"github.com/nairafund/pledge_lending_app/internal/dto"
	"github.com/nairafund/pledge_lending_app/internal/middleware"
	"github.com/nairafund/pledge_lending_app/internal/utils/fx"
	"github.com/nairafund/pledge_lending_app/internal/utils/loanterms"
)

var (
	ErrCreditNotApprovable = errors.New("credit is not pending review")
	ErrCreditNotActive     = errors.New("credit is not active")
)

// creditService owns the credit lifecycle state machine. It never touches
// the other ledgers directly: cross-ledger bookkeeping leaves as events.
type creditService struct {
	creditRepo        portsrepo.CreditRepositoryFacade
	converter         *fx.Converter
	defaultAnnualRate decimal.Decimal
}

// NewCreditService creates a new credit service. defaultAnnualRate is the
// annual interest percentage applied when a request does not override it.
func NewCreditService(creditRepo portsrepo.CreditRepositoryFacade, converter *fx.Converter, defaultAnnualRate decimal.Decimal) portssvc.CreditSvcFacade {
	return &creditService{
		creditRepo:        creditRepo,
		converter:         converter,
		defaultAnnualRate: defaultAnnualRate,
	}
}

var _ portssvc.CreditSvcFacade = (*creditService)(nil)

// CreateRequest builds a pending credit with all monetary pairs derived at
// the fixed conversion rate.
func (s *creditService) CreateRequest(ctx context.Context, profile domain.Profile, req dto.CreateCreditRequest) (*domain.Credit, []domain.Event, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.PrincipalNGN.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: principal must be positive", apperrors.ErrValidation)
	}
	if !req.RepaymentFrequency.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown repayment frequency %q", apperrors.ErrValidation, req.RepaymentFrequency)
	}

	termDays, err := loanterms.ParseTerm(req.Term)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	rate := s.defaultAnnualRate
	if req.AnnualRatePercent != nil {
		rate = *req.AnnualRatePercent
	}
	if rate.IsNegative() {
		return nil, nil, fmt.Errorf("%w: annual rate must not be negative", apperrors.ErrValidation)
	}

	principal := req.PrincipalNGN.Round(0)
	terms, err := loanterms.Calculate(principal, rate, termDays, req.RepaymentFrequency)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	creditID, loanID, err := s.creditRepo.NextIDs(ctx, profile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reserve credit IDs: %w", err)
	}

	now := time.Now().UTC()
	credit := domain.Credit{
		CreditID:             creditID,
		LoanID:               loanID,
		PledgerName:          req.PledgerName,
		PledgerContact:       req.PledgerContact,
		PledgerCountry:       req.PledgerCountry,
		PrincipalNGN:         principal,
		PrincipalUSD:         s.converter.NGNToUSD(principal),
		TotalInterestNGN:     terms.TotalInterest,
		TotalInterestUSD:     s.converter.NGNToUSD(terms.TotalInterest),
		TotalToRepayNGN:      terms.TotalToRepay,
		TotalToRepayUSD:      s.converter.NGNToUSD(terms.TotalToRepay),
		RemainingNGN:         terms.TotalToRepay,
		RemainingUSD:         s.converter.NGNToUSD(terms.TotalToRepay),
		InstallmentNGN:       terms.InstallmentAmount,
		InstallmentUSD:       s.converter.NGNToUSD(terms.InstallmentAmount),
		FinalInstallmentNGN:  terms.FinalInstallment,
		FinalInstallmentUSD:  s.converter.NGNToUSD(terms.FinalInstallment),
		AnnualRatePercent:    rate,
		Term:                 req.Term,
		TermDays:             termDays,
		RepaymentFrequency:   req.RepaymentFrequency,
		NumberOfInstallments: terms.NumberOfInstallments,
		Status:               domain.CreditPending,
		PaymentHistory:       []domain.PaymentRecord{},
		AuditFields:          domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.creditRepo.SaveCredit(ctx, profile, credit); err != nil {
		logger.Error("Failed to save credit request", slog.String("error", err.Error()), slog.String("credit_id", creditID))
		return nil, nil, fmt.Errorf("failed to save credit request: %w", err)
	}

	logger.Info("Credit request created", slog.String("credit_id", creditID), slog.String("principal_ngn", principal.String()))
	return &credit, nil, nil
}

// GetCreditByID retrieves a single credit.
func (s *creditService) GetCreditByID(ctx context.Context, profile domain.Profile, creditID string) (*domain.Credit, error) {
	credit, err := s.creditRepo.FindCreditByID(ctx, profile, creditID)
	if err != nil {
		return nil, fmt.Errorf("failed to find credit %s: %w", creditID, err)
	}
	return credit, nil
}

// ListCredits retrieves every credit for the profile in creation order.
func (s *creditService) ListCredits(ctx context.Context, profile domain.Profile) ([]domain.Credit, error) {
	credits, err := s.creditRepo.ListCredits(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to list credits: %w", err)
	}
	return credits, nil
}

// Approve activates a pending or reviewing credit, stamping its schedule
// dates once. The returned events lock the pledger's collateral and record
// the borrower-side disbursement.
func (s *creditService) Approve(ctx context.Context, profile domain.Profile, creditID string) (*domain.Credit, []domain.Event, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	credit, err := s.creditRepo.FindCreditByID(ctx, profile, creditID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find credit %s: %w", creditID, err)
	}
	if !credit.Status.IsApprovable() {
		return nil, nil, fmt.Errorf("%w: credit %s is %s: %s", apperrors.ErrConflict, creditID, credit.Status, ErrCreditNotApprovable)
	}

	now := time.Now().UTC()
	start := now
	end := start.AddDate(0, 0, credit.TermDays)
	next := start.AddDate(0, 0, credit.RepaymentFrequency.Days())

	credit.Status = domain.CreditActive
	credit.StartDate = &start
	credit.EndDate = &end
	credit.NextPayment = &next
	credit.LastUpdatedAt = now

	if err := s.creditRepo.UpdateCredit(ctx, profile, *credit); err != nil {
		logger.Error("Failed to save credit approval", slog.String("error", err.Error()), slog.String("credit_id", creditID))
		return nil, nil, fmt.Errorf("failed to save credit approval: %w", err)
	}

	events := []domain.Event{
		{
			Kind:      domain.EventLockCollateral,
			CreditID:  credit.CreditID,
			AmountUSD: credit.PrincipalUSD,
		},
		{
			Kind:        domain.EventRecordDisbursement,
			CreditID:    credit.CreditID,
			AmountNGN:   credit.PrincipalNGN,
			Description: credit.PledgerName,
		},
	}

	logger.Info("Credit approved", slog.String("credit_id", creditID))
	return credit, events, nil
}

// Decline cancels a pending or reviewing credit.
func (s *creditService) Decline(ctx context.Context, profile domain.Profile, creditID string) (*domain.Credit, []domain.Event, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	credit, err := s.creditRepo.FindCreditByID(ctx, profile, creditID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find credit %s: %w", creditID, err)
	}
	if !credit.Status.IsApprovable() {
		return nil, nil, fmt.Errorf("%w: credit %s is %s: %s", apperrors.ErrConflict, creditID, credit.Status, ErrCreditNotApprovable)
	}

	credit.Status = domain.CreditCancelled
	credit.LastUpdatedAt = time.Now().UTC()

	if err := s.creditRepo.UpdateCredit(ctx, profile, *credit); err != nil {
		logger.Error("Failed to save credit decline", slog.String("error", err.Error()), slog.String("credit_id", creditID))
		return nil, nil, fmt.Errorf("failed to save credit decline: %w", err)
	}

	events := []domain.Event{
		{
			Kind:         domain.EventAppendActivity,
			CreditID:     credit.CreditID,
			AmountUSD:    credit.PrincipalUSD,
			ActivityType: domain.ActivityRequestDeclined,
			Description:  fmt.Sprintf("Credit request %s declined", credit.CreditID),
		},
	}

	logger.Info("Credit declined", slog.String("credit_id", creditID))
	return credit, events, nil
}

// ApproveAll approves every pending or reviewing credit best-effort: a
// credit that fails its transition is collected and skipped, not fatal.
func (s *creditService) ApproveAll(ctx context.Context, profile domain.Profile) (*dto.BulkActionResult, []domain.Event, error) {
	return s.bulkTransition(ctx, profile, s.Approve)
}

// DeclineAll declines every pending or reviewing credit best-effort.
func (s *creditService) DeclineAll(ctx context.Context, profile domain.Profile) (*dto.BulkActionResult, []domain.Event, error) {
	return s.bulkTransition(ctx, profile, s.Decline)
}

func (s *creditService) bulkTransition(ctx context.Context, profile domain.Profile, transition func(context.Context, domain.Profile, string) (*domain.Credit, []domain.Event, error)) (*dto.BulkActionResult, []domain.Event, error) {
	credits, err := s.creditRepo.ListCredits(ctx, profile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list credits: %w", err)
	}

	result := &dto.BulkActionResult{Succeeded: []string{}, Failed: []dto.BulkFailure{}}
	var allEvents []domain.Event
	for i := range credits {
		if !credits[i].Status.IsApprovable() {
			continue
		}
		_, events, err := transition(ctx, profile, credits[i].CreditID)
		if err != nil {
			result.Failed = append(result.Failed, dto.BulkFailure{CreditID: credits[i].CreditID, Error: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, credits[i].CreditID)
		allEvents = append(allEvents, events...)
	}
	return result, allEvents, nil
}

// ApplyPayment is the one authoritative payment application. It reduces the
// remaining balance (clamped at zero), appends an immutable payment record
// with the proportional interest split, and completes the credit when the
// balance reaches zero.
func (s *creditService) ApplyPayment(ctx context.Context, profile domain.Profile, creditID string, amountNGN decimal.Decimal, paymentType domain.PaymentType, reference string) (*domain.Credit, *domain.PaymentRecord, []domain.Event, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amountNGN.LessThanOrEqual(decimal.Zero) {
		return nil, nil, nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	credit, err := s.creditRepo.FindCreditByID(ctx, profile, creditID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to find credit %s: %w", creditID, err)
	}
	if credit.Status != domain.CreditActive {
		return nil, nil, nil, fmt.Errorf("%w: credit %s is %s: %s", apperrors.ErrConflict, creditID, credit.Status, ErrCreditNotActive)
	}

	amount := amountNGN.Round(0)
	remaining := credit.RemainingNGN.Sub(amount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	completed := remaining.IsZero()

	if paymentType == "" {
		paymentType = domain.PaymentRegular
		if completed {
			paymentType = domain.PaymentFull
		}
	}
	if reference == "" {
		reference = uuid.NewString()
	}

	// Static proportion of the original totals, not an amortization split.
	interest := loanterms.InterestPortion(amount, credit.TotalInterestNGN, credit.TotalToRepayNGN)
	record := domain.PaymentRecord{
		PaymentID:    uuid.NewString(),
		CreditID:     credit.CreditID,
		AmountNGN:    amount,
		AmountUSD:    s.converter.NGNToUSD(amount),
		PrincipalNGN: amount.Sub(interest),
		InterestNGN:  interest,
		Type:         paymentType,
		Reference:    reference,
		PaidAt:       time.Now().UTC(),
	}

	credit.RemainingNGN = remaining
	credit.RemainingUSD = s.converter.NGNToUSD(remaining)
	credit.PaymentHistory = append(credit.PaymentHistory, record)
	credit.LastUpdatedAt = record.PaidAt
	if completed {
		credit.Status = domain.CreditCompleted
	}

	if err := s.creditRepo.UpdateCredit(ctx, profile, *credit); err != nil {
		logger.Error("Failed to save payment", slog.String("error", err.Error()), slog.String("credit_id", creditID))
		return nil, nil, nil, fmt.Errorf("failed to save payment: %w", err)
	}

	events := []domain.Event{
		{
			Kind:         domain.EventAppendActivity,
			CreditID:     credit.CreditID,
			AmountUSD:    record.AmountUSD,
			ActivityType: domain.ActivityRepaymentReceived,
			Description:  fmt.Sprintf("Repayment of %s received on %s", record.AmountUSD.StringFixed(2), credit.CreditID),
		},
	}
	if completed {
		events = append(events, domain.Event{
			Kind:     domain.EventReleaseCollateral,
			CreditID: credit.CreditID,
		})
		logger.Info("Credit completed", slog.String("credit_id", creditID))
	}

	logger.Info("Payment applied", slog.String("credit_id", creditID), slog.String("amount_ngn", amount.String()), slog.String("remaining_ngn", remaining.String()))
	return credit, &record, events, nil
}

// Preview computes loan terms for the request form without touching any
// ledger.
func (s *creditService) Preview(_ context.Context, req dto.LoanPreviewRequest) (*dto.LoanPreviewResponse, error) {
	if req.PrincipalNGN.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: principal must be positive", apperrors.ErrValidation)
	}

	termDays, err := loanterms.ParseTerm(req.Term)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	rate := s.defaultAnnualRate
	if req.AnnualRatePercent != nil {
		rate = *req.AnnualRatePercent
	}

	principal := req.PrincipalNGN.Round(0)
	terms, err := loanterms.Calculate(principal, rate, termDays, req.RepaymentFrequency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	return &dto.LoanPreviewResponse{
		PrincipalNGN:         principal,
		PrincipalUSD:         s.converter.NGNToUSD(principal),
		AnnualRatePercent:    rate,
		TermDays:             termDays,
		TotalInterestNGN:     terms.TotalInterest,
		TotalInterestUSD:     s.converter.NGNToUSD(terms.TotalInterest),
		TotalToRepayNGN:      terms.TotalToRepay,
		TotalToRepayUSD:      s.converter.NGNToUSD(terms.TotalToRepay),
		InstallmentNGN:       terms.InstallmentAmount,
		InstallmentUSD:       s.converter.NGNToUSD(terms.InstallmentAmount),
		FinalInstallmentNGN:  terms.FinalInstallment,
		FinalInstallmentUSD:  s.converter.NGNToUSD(terms.FinalInstallment),
		NumberOfInstallments: terms.NumberOfInstallments,
	}, nil
}
