package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

// TransactionSvcFacade defines the borrower-side NGN ledger operations.
// Debits are validated against the running balance before anything is
// appended.
type TransactionSvcFacade interface {
	// AddCashTransaction records a deposit or withdrawal. The category
	// must be TxnDeposit or TxnWithdrawal.
	AddCashTransaction(ctx context.Context, profile domain.Profile, category domain.TransactionCategory, amountNGN decimal.Decimal) (*domain.Transaction, []domain.Event, error)
	// AddTransferTransaction records a transfer in or out. The category
	// must be TxnTransferIn or TxnTransferOut.
	AddTransferTransaction(ctx context.Context, profile domain.Profile, category domain.TransactionCategory, amountNGN decimal.Decimal, counterparty string) (*domain.Transaction, []domain.Event, error)
	// AddLoanDisbursement credits a loan payout to the borrower.
	AddLoanDisbursement(ctx context.Context, profile domain.Profile, creditID string, amountNGN decimal.Decimal, pledgerName string) (*domain.Transaction, []domain.Event, error)
	// AddLoanRepayment debits the ledger and applies the payment to the
	// credit through the one authoritative payment operation.
	AddLoanRepayment(ctx context.Context, profile domain.Profile, creditID string, amountNGN decimal.Decimal, paymentType domain.PaymentType, reference string) (*domain.Transaction, *domain.Credit, []domain.Event, error)
	CurrentBalance(ctx context.Context, profile domain.Profile) (decimal.Decimal, error)
	ListTransactions(ctx context.Context, profile domain.Profile) ([]domain.Transaction, error)
	GetTransactionByID(ctx context.Context, profile domain.Profile, transactionID string) (*domain.Transaction, error)
}
