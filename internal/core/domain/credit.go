package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditStatus tracks where a credit is in its lifecycle.
type CreditStatus string

const (
	CreditPending   CreditStatus = "pending"
	CreditReviewing CreditStatus = "reviewing"
	CreditActive    CreditStatus = "active"
	CreditCompleted CreditStatus = "completed"
	// CreditDefaulted is declared but no operation transitions into it yet.
	CreditDefaulted CreditStatus = "defaulted"
	CreditCancelled CreditStatus = "cancelled"
)

// IsApprovable reports whether a credit in this status can still be
// approved or declined.
func (s CreditStatus) IsApprovable() bool {
	return s == CreditPending || s == CreditReviewing
}

// RepaymentFrequency is the cadence at which installments fall due.
type RepaymentFrequency string

const (
	FrequencyDaily    RepaymentFrequency = "Daily"
	FrequencyWeekly   RepaymentFrequency = "Weekly"
	FrequencyBiweekly RepaymentFrequency = "Biweekly"
	FrequencyMonthly  RepaymentFrequency = "Monthly"
)

// Days returns the interval length of one installment period.
// Monthly is fixed at 30 days, matching the term parser's month length.
func (f RepaymentFrequency) Days() int {
	switch f {
	case FrequencyDaily:
		return 1
	case FrequencyWeekly:
		return 7
	case FrequencyBiweekly:
		return 14
	case FrequencyMonthly:
		return 30
	default:
		return 0
	}
}

// Valid reports whether f is one of the known cadences.
func (f RepaymentFrequency) Valid() bool {
	return f.Days() > 0
}

// PaymentType classifies a repayment event.
type PaymentType string

const (
	PaymentRegular PaymentType = "regular"
	PaymentFull    PaymentType = "full"
	PaymentPartial PaymentType = "partial"
	PaymentLate    PaymentType = "late"
)

// PaymentRecord is one repayment event against a credit. Records are
// immutable once created and only ever appended.
type PaymentRecord struct {
	PaymentID    string          `json:"paymentID"`
	CreditID     string          `json:"creditID"`
	AmountNGN    decimal.Decimal `json:"amountNGN"`
	AmountUSD    decimal.Decimal `json:"amountUSD"`
	PrincipalNGN decimal.Decimal `json:"principalNGN"`
	InterestNGN  decimal.Decimal `json:"interestNGN"`
	Type         PaymentType     `json:"type"`
	Reference    string          `json:"reference"`
	PaidAt       time.Time       `json:"paidAt"`
}

// Credit is a single loan agreement between a borrower (NGN side) and a
// pledger posting USD collateral. Every monetary field is tracked in both
// currencies, derived once at creation through the fixed conversion rate.
type Credit struct {
	CreditID string `json:"creditID"`
	// LoanID is a display-only alias shown to the borrower.
	LoanID string `json:"loanID"`

	PledgerName    string `json:"pledgerName"`
	PledgerContact string `json:"pledgerContact"`
	PledgerCountry string `json:"pledgerCountry"`

	PrincipalNGN        decimal.Decimal `json:"principalNGN"`
	PrincipalUSD        decimal.Decimal `json:"principalUSD"`
	TotalInterestNGN    decimal.Decimal `json:"totalInterestNGN"`
	TotalInterestUSD    decimal.Decimal `json:"totalInterestUSD"`
	TotalToRepayNGN     decimal.Decimal `json:"totalToRepayNGN"`
	TotalToRepayUSD     decimal.Decimal `json:"totalToRepayUSD"`
	RemainingNGN        decimal.Decimal `json:"remainingNGN"`
	RemainingUSD        decimal.Decimal `json:"remainingUSD"`
	InstallmentNGN      decimal.Decimal `json:"installmentNGN"`
	InstallmentUSD      decimal.Decimal `json:"installmentUSD"`
	FinalInstallmentNGN decimal.Decimal `json:"finalInstallmentNGN"`
	FinalInstallmentUSD decimal.Decimal `json:"finalInstallmentUSD"`

	AnnualRatePercent    decimal.Decimal    `json:"annualRatePercent"`
	Term                 string             `json:"term"`
	TermDays             int                `json:"termDays"`
	RepaymentFrequency   RepaymentFrequency `json:"repaymentFrequency"`
	NumberOfInstallments int                `json:"numberOfInstallments"`

	Status CreditStatus `json:"status"`

	// StartDate, EndDate and NextPayment are stamped at approval and are
	// not re-derived afterwards.
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	NextPayment *time.Time `json:"nextPayment,omitempty"`

	PaymentHistory []PaymentRecord `json:"paymentHistory"`
	AuditFields
}
