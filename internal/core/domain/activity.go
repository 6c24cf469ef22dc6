package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityType classifies a pledger-side event.
type ActivityType string

const (
	ActivityTopUp              ActivityType = "top_up"
	ActivityWithdrawal         ActivityType = "withdrawal"
	ActivityCollateralLocked   ActivityType = "collateral_locked"
	ActivityCollateralReleased ActivityType = "collateral_released"
	ActivityLoanDisbursed      ActivityType = "loan_disbursed"
	ActivityRepaymentReceived  ActivityType = "repayment_received"
	ActivityRequestDeclined    ActivityType = "request_declined"
)

// activitySigns maps each activity type to the sign it applies to the
// running balance. Reservation and mirror entries record an amount but do
// not move the balance; locking never debits the wallet.
var activitySigns = map[ActivityType]int{
	ActivityTopUp:              +1,
	ActivityWithdrawal:         -1,
	ActivityCollateralLocked:   0,
	ActivityCollateralReleased: 0,
	ActivityLoanDisbursed:      0,
	ActivityRepaymentReceived:  0,
	ActivityRequestDeclined:    0,
}

// BalanceSign returns the sign the activity type applies to the running
// balance, and whether the type is known at all.
func (t ActivityType) BalanceSign() (int, bool) {
	sign, ok := activitySigns[t]
	return sign, ok
}

// PledgerActivity is one entry in the pledger's append-only USD log. It
// mirrors the borrower transaction ledger for the other party: AmountUSD is
// an unsigned magnitude whose balance effect comes from the type's sign.
type PledgerActivity struct {
	ActivityID      string          `json:"activityID"`
	Type            ActivityType    `json:"type"`
	Description     string          `json:"description"`
	CreditID        string          `json:"creditID,omitempty"`
	AmountUSD       decimal.Decimal `json:"amountUSD"`
	BalanceAfterUSD decimal.Decimal `json:"balanceAfterUSD"`
	OccurredAt      time.Time       `json:"occurredAt"`
}
