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
	"github.com/nairafund/pledge_lending_app/internal/utils"
	"github.com/nairafund/pledge_lending_app/internal/utils/fx"
)

// transactionService maintains the borrower's append-only NGN ledger with
// a running balance. Repayments route through the credit service's single
// authoritative payment operation.
type transactionService struct {
	txnRepo       portsrepo.TransactionRepositoryFacade
	creditApplier portssvc.CreditPaymentApplier
	converter     *fx.Converter
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, creditApplier portssvc.CreditPaymentApplier, converter *fx.Converter) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:       txnRepo,
		creditApplier: creditApplier,
		converter:     converter,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// appendEntry validates a debit against the running balance, then reserves
// an ID and appends the entry. Validation happens before the ID is taken so
// a rejected operation consumes nothing.
func (s *transactionService) appendEntry(ctx context.Context, profile domain.Profile, category domain.TransactionCategory, signedAmount decimal.Decimal, description, counterparty, creditID string) (*domain.Transaction, error) {
	balance, err := s.txnRepo.LatestBalance(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger balance: %w", err)
	}

	newBalance := balance.Add(signedAmount)
	if newBalance.IsNegative() {
		shortfall := newBalance.Neg()
		return nil, fmt.Errorf("%w: balance %s is short by %s",
			apperrors.ErrInsufficientFunds, utils.FormatNGN(balance), utils.FormatNGN(shortfall))
	}

	txnID, err := s.txnRepo.NextTransactionID(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve transaction ID: %w", err)
	}

	txn := domain.Transaction{
		TransactionID:   txnID,
		Category:        category,
		Description:     description,
		Counterparty:    counterparty,
		CreditID:        creditID,
		AmountNGN:       signedAmount,
		BalanceAfterNGN: newBalance,
		OccurredAt:      time.Now().UTC(),
	}
	if err := s.txnRepo.SaveTransaction(ctx, profile, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	return &txn, nil
}

// AddCashTransaction records a deposit or withdrawal.
func (s *transactionService) AddCashTransaction(ctx context.Context, profile domain.Profile, category domain.TransactionCategory, amountNGN decimal.Decimal) (*domain.Transaction, []domain.Event, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amountNGN.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	var signed decimal.Decimal
	var description string
	switch category {
	case domain.TxnDeposit:
		signed = amountNGN
		description = "Cash deposit"
	case domain.TxnWithdrawal:
		signed = amountNGN.Neg()
		description = "Cash withdrawal"
	default:
		return nil, nil, fmt.Errorf("%w: category %q is not a cash transaction", apperrors.ErrValidation, category)
	}

	txn, err := s.appendEntry(ctx, profile, category, signed, description, "", "")
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Cash transaction recorded", slog.String("transaction_id", txn.TransactionID), slog.String("category", string(category)))
	return txn, nil, nil
}

// AddTransferTransaction records a transfer in or out of the ledger.
func (s *transactionService) AddTransferTransaction(ctx context.Context, profile domain.Profile, category domain.TransactionCategory, amountNGN decimal.Decimal, counterparty string) (*domain.Transaction, []domain.Event, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amountNGN.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	var signed decimal.Decimal
	var description string
	switch category {
	case domain.TxnTransferIn:
		signed = amountNGN
		description = fmt.Sprintf("Transfer from %s", counterparty)
	case domain.TxnTransferOut:
		signed = amountNGN.Neg()
		description = fmt.Sprintf("Transfer to %s", counterparty)
	default:
		return nil, nil, fmt.Errorf("%w: category %q is not a transfer", apperrors.ErrValidation, category)
	}

	txn, err := s.appendEntry(ctx, profile, category, signed, description, counterparty, "")
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Transfer recorded", slog.String("transaction_id", txn.TransactionID), slog.String("category", string(category)))
	return txn, nil, nil
}

// AddLoanDisbursement credits a loan payout to the borrower ledger and
// mirrors it into the pledger activity log.
func (s *transactionService) AddLoanDisbursement(ctx context.Context, profile domain.Profile, creditID string, amountNGN decimal.Decimal, pledgerName string) (*domain.Transaction, []domain.Event, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amountNGN.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	description := fmt.Sprintf("Loan disbursement for %s", creditID)
	txn, err := s.appendEntry(ctx, profile, domain.TxnDisbursement, amountNGN, description, pledgerName, creditID)
	if err != nil {
		return nil, nil, err
	}

	events := []domain.Event{{
		Kind:         domain.EventAppendActivity,
		CreditID:     creditID,
		AmountUSD:    s.converter.NGNToUSD(amountNGN),
		ActivityType: domain.ActivityLoanDisbursed,
		Description:  fmt.Sprintf("Loan of %s disbursed for credit %s", utils.FormatNGN(amountNGN), creditID),
	}}

	logger.Info("Loan disbursement recorded", slog.String("transaction_id", txn.TransactionID), slog.String("credit_id", creditID))
	return txn, events, nil
}

// AddLoanRepayment debits the borrower ledger and applies the payment to
// the credit. The balance is checked before anything is mutated so a
// rejected repayment leaves both ledgers untouched.
func (s *transactionService) AddLoanRepayment(ctx context.Context, profile domain.Profile, creditID string, amountNGN decimal.Decimal, paymentType domain.PaymentType, reference string) (*domain.Transaction, *domain.Credit, []domain.Event, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amountNGN.LessThanOrEqual(decimal.Zero) {
		return nil, nil, nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	balance, err := s.txnRepo.LatestBalance(ctx, profile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read ledger balance: %w", err)
	}
	if amountNGN.GreaterThan(balance) {
		shortfall := amountNGN.Sub(balance)
		return nil, nil, nil, fmt.Errorf("%w: balance %s is short by %s",
			apperrors.ErrInsufficientFunds, utils.FormatNGN(balance), utils.FormatNGN(shortfall))
	}

	credit, record, events, err := s.creditApplier.ApplyPayment(ctx, profile, creditID, amountNGN, paymentType, reference)
	if err != nil {
		return nil, nil, nil, err
	}

	description := fmt.Sprintf("Loan repayment for %s", creditID)
	txn, err := s.appendEntry(ctx, profile, domain.TxnRepayment, record.AmountNGN.Neg(), description, credit.PledgerName, creditID)
	if err != nil {
		// The credit side already committed; surface the ledger failure.
		logger.Error("Failed to record repayment transaction after payment applied", slog.String("error", err.Error()), slog.String("credit_id", creditID))
		return nil, credit, events, err
	}

	logger.Info("Loan repayment recorded", slog.String("transaction_id", txn.TransactionID), slog.String("credit_id", creditID))
	return txn, credit, events, nil
}

// CurrentBalance is the running balance of the most recent entry.
func (s *transactionService) CurrentBalance(ctx context.Context, profile domain.Profile) (decimal.Decimal, error) {
	balance, err := s.txnRepo.LatestBalance(ctx, profile)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read ledger balance: %w", err)
	}
	return balance, nil
}

// ListTransactions returns the ledger most-recent-first.
func (s *transactionService) ListTransactions(ctx context.Context, profile domain.Profile) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// GetTransactionByID retrieves a single ledger entry.
func (s *transactionService) GetTransactionByID(ctx context.Context, profile domain.Profile, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, profile, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}
