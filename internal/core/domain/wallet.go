package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LockedFund is a reservation of wallet balance against a specific credit.
// At most one lock exists per credit ID.
type LockedFund struct {
	CreditID  string          `json:"creditID"`
	AmountUSD decimal.Decimal `json:"amountUSD"`
	LockedAt  time.Time       `json:"lockedAt"`
}

// WalletState is the pledger's USD cash position. Locking never debits the
// balance; collateral is a reservation overlay, so the spendable amount is
// balance minus the sum of locks.
type WalletState struct {
	BalanceUSD  decimal.Decimal `json:"balanceUSD"`
	LockedFunds []LockedFund    `json:"lockedFunds"`
	AuditFields
}

// LockedTotal sums every outstanding reservation.
func (w *WalletState) LockedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, lf := range w.LockedFunds {
		total = total.Add(lf.AmountUSD)
	}
	return total
}

// Available is the balance not reserved as collateral.
func (w *WalletState) Available() decimal.Decimal {
	return w.BalanceUSD.Sub(w.LockedTotal())
}

// FindLock returns the reservation for creditID, if any.
func (w *WalletState) FindLock(creditID string) (*LockedFund, bool) {
	for i := range w.LockedFunds {
		if w.LockedFunds[i].CreditID == creditID {
			return &w.LockedFunds[i], true
		}
	}
	return nil, false
}
