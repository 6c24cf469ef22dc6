package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

// WalletAmountRequest carries a USD amount for top-up or withdrawal.
type WalletAmountRequest struct {
	AmountUSD decimal.Decimal `json:"amountUSD" binding:"required"`
}

// LockFundsRequest reserves collateral against a credit.
type LockFundsRequest struct {
	CreditID  string          `json:"creditID" binding:"required"`
	AmountUSD decimal.Decimal `json:"amountUSD" binding:"required"`
}

// LockedFundResponse mirrors domain.LockedFund.
type LockedFundResponse struct {
	CreditID  string          `json:"creditID"`
	AmountUSD decimal.Decimal `json:"amountUSD"`
	LockedAt  time.Time       `json:"lockedAt"`
}

// WalletResponse defines the data returned for the pledger wallet.
type WalletResponse struct {
	BalanceUSD   decimal.Decimal      `json:"balanceUSD"`
	LockedUSD    decimal.Decimal      `json:"lockedUSD"`
	AvailableUSD decimal.Decimal      `json:"availableUSD"`
	LockedFunds  []LockedFundResponse `json:"lockedFunds"`
}

// ToWalletResponse converts a domain.WalletState.
func ToWalletResponse(w *domain.WalletState) WalletResponse {
	locks := make([]LockedFundResponse, len(w.LockedFunds))
	for i, lf := range w.LockedFunds {
		locks[i] = LockedFundResponse{
			CreditID:  lf.CreditID,
			AmountUSD: lf.AmountUSD,
			LockedAt:  lf.LockedAt,
		}
	}
	return WalletResponse{
		BalanceUSD:   w.BalanceUSD,
		LockedUSD:    w.LockedTotal(),
		AvailableUSD: w.Available(),
		LockedFunds:  locks,
	}
}
