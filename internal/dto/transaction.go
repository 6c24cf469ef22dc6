package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

// CashTransactionRequest records a deposit or withdrawal on the borrower ledger.
type CashTransactionRequest struct {
	Kind      string          `json:"kind" binding:"required,oneof=deposit withdraw"`
	AmountNGN decimal.Decimal `json:"amountNGN" binding:"required"`
}

// Category maps the request kind onto a ledger category.
func (r *CashTransactionRequest) Category() domain.TransactionCategory {
	if r.Kind == "withdraw" {
		return domain.TxnWithdrawal
	}
	return domain.TxnDeposit
}

// TransferTransactionRequest records a transfer in or out of the borrower ledger.
type TransferTransactionRequest struct {
	Direction    string          `json:"direction" binding:"required,oneof=in out"`
	AmountNGN    decimal.Decimal `json:"amountNGN" binding:"required"`
	Counterparty string          `json:"counterparty" binding:"required"`
}

// Category maps the transfer direction onto a ledger category.
func (r *TransferTransactionRequest) Category() domain.TransactionCategory {
	if r.Direction == "out" {
		return domain.TxnTransferOut
	}
	return domain.TxnTransferIn
}

// TransactionResponse mirrors domain.Transaction.
type TransactionResponse struct {
	TransactionID   string                     `json:"transactionID"`
	Category        domain.TransactionCategory `json:"category"`
	Description     string                     `json:"description"`
	Counterparty    string                     `json:"counterparty,omitempty"`
	CreditID        string                     `json:"creditID,omitempty"`
	AmountNGN       decimal.Decimal            `json:"amountNGN"`
	BalanceAfterNGN decimal.Decimal            `json:"balanceAfterNGN"`
	OccurredAt      time.Time                  `json:"occurredAt"`
}

// BalanceResponse is the current borrower ledger balance.
type BalanceResponse struct {
	BalanceNGN decimal.Decimal `json:"balanceNGN"`
}

// ToTransactionResponse converts a domain.Transaction.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		Category:        t.Category,
		Description:     t.Description,
		Counterparty:    t.Counterparty,
		CreditID:        t.CreditID,
		AmountNGN:       t.AmountNGN,
		BalanceAfterNGN: t.BalanceAfterNGN,
		OccurredAt:      t.OccurredAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
