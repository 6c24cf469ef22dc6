package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCategory classifies a borrower-side cash movement.
type TransactionCategory string

const (
	TxnDeposit      TransactionCategory = "deposit"
	TxnWithdrawal   TransactionCategory = "withdrawal"
	TxnDisbursement TransactionCategory = "disbursement"
	TxnRepayment    TransactionCategory = "repayment"
	TxnTransferIn   TransactionCategory = "transfer_in"
	TxnTransferOut  TransactionCategory = "transfer_out"
)

// Transaction is one entry in the borrower's append-only NGN ledger.
// AmountNGN is signed: positive credits the balance, negative debits it.
// BalanceAfterNGN is the running balance at the time of insertion; the most
// recently inserted entry's value is the current balance.
type Transaction struct {
	TransactionID   string              `json:"transactionID"`
	Category        TransactionCategory `json:"category"`
	Description     string              `json:"description"`
	Counterparty    string              `json:"counterparty,omitempty"`
	CreditID        string              `json:"creditID,omitempty"`
	AmountNGN       decimal.Decimal     `json:"amountNGN"`
	BalanceAfterNGN decimal.Decimal     `json:"balanceAfterNGN"`
	OccurredAt      time.Time           `json:"occurredAt"`
}

// IsDebit reports whether the entry reduced the balance.
func (t *Transaction) IsDebit() bool {
	return t.AmountNGN.IsNegative()
}
