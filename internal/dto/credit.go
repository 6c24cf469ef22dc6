package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

// CreateCreditRequest defines the data needed to open a pending credit request.
// AnnualRatePercent is optional; the configured default rate applies when omitted.
type CreateCreditRequest struct {
	PledgerName        string                    `json:"pledgerName" binding:"required"`
	PledgerContact     string                    `json:"pledgerContact"`
	PledgerCountry     string                    `json:"pledgerCountry"`
	PrincipalNGN       decimal.Decimal           `json:"principalNGN" binding:"required"`
	Term               string                    `json:"term" binding:"required"` // free text, e.g. "3 months"
	RepaymentFrequency domain.RepaymentFrequency `json:"repaymentFrequency" binding:"required,repayfreq"`
	AnnualRatePercent  *decimal.Decimal          `json:"annualRatePercent"`
}

// PaymentRequest defines a repayment against an active credit.
type PaymentRequest struct {
	AmountNGN decimal.Decimal    `json:"amountNGN" binding:"required"`
	Type      domain.PaymentType `json:"type" binding:"omitempty,oneof=regular full partial late"`
	Reference string             `json:"reference"`
}

// PaymentRecordResponse mirrors domain.PaymentRecord.
type PaymentRecordResponse struct {
	PaymentID    string             `json:"paymentID"`
	CreditID     string             `json:"creditID"`
	AmountNGN    decimal.Decimal    `json:"amountNGN"`
	AmountUSD    decimal.Decimal    `json:"amountUSD"`
	PrincipalNGN decimal.Decimal    `json:"principalNGN"`
	InterestNGN  decimal.Decimal    `json:"interestNGN"`
	Type         domain.PaymentType `json:"type"`
	Reference    string             `json:"reference"`
	PaidAt       time.Time          `json:"paidAt"`
}

// CreditResponse defines the data returned for a credit.
type CreditResponse struct {
	CreditID             string                    `json:"creditID"`
	LoanID               string                    `json:"loanID"`
	PledgerName          string                    `json:"pledgerName"`
	PledgerContact       string                    `json:"pledgerContact"`
	PledgerCountry       string                    `json:"pledgerCountry"`
	PrincipalNGN         decimal.Decimal           `json:"principalNGN"`
	PrincipalUSD         decimal.Decimal           `json:"principalUSD"`
	TotalInterestNGN     decimal.Decimal           `json:"totalInterestNGN"`
	TotalInterestUSD     decimal.Decimal           `json:"totalInterestUSD"`
	TotalToRepayNGN      decimal.Decimal           `json:"totalToRepayNGN"`
	TotalToRepayUSD      decimal.Decimal           `json:"totalToRepayUSD"`
	RemainingNGN         decimal.Decimal           `json:"remainingNGN"`
	RemainingUSD         decimal.Decimal           `json:"remainingUSD"`
	InstallmentNGN       decimal.Decimal           `json:"installmentNGN"`
	InstallmentUSD       decimal.Decimal           `json:"installmentUSD"`
	FinalInstallmentNGN  decimal.Decimal           `json:"finalInstallmentNGN"`
	FinalInstallmentUSD  decimal.Decimal           `json:"finalInstallmentUSD"`
	AnnualRatePercent    decimal.Decimal           `json:"annualRatePercent"`
	Term                 string                    `json:"term"`
	TermDays             int                       `json:"termDays"`
	RepaymentFrequency   domain.RepaymentFrequency `json:"repaymentFrequency"`
	NumberOfInstallments int                       `json:"numberOfInstallments"`
	Status               domain.CreditStatus       `json:"status"`
	ProgressPercent      decimal.Decimal           `json:"progressPercent"`
	StartDate            *time.Time                `json:"startDate,omitempty"`
	EndDate              *time.Time                `json:"endDate,omitempty"`
	NextPayment          *time.Time                `json:"nextPayment,omitempty"`
	PaymentHistory       []PaymentRecordResponse   `json:"paymentHistory"`
	CreatedAt            time.Time                 `json:"createdAt"`
}

// PaymentResponse is returned after a repayment is applied.
type PaymentResponse struct {
	Transaction *TransactionResponse  `json:"transaction,omitempty"`
	Credit      CreditResponse        `json:"credit"`
	Payment     PaymentRecordResponse `json:"payment"`
}

// BulkFailure records one credit a bulk operation could not transition.
type BulkFailure struct {
	CreditID string `json:"creditID"`
	Error    string `json:"error"`
}

// BulkActionResult collects the outcome of a best-effort bulk transition.
type BulkActionResult struct {
	Succeeded []string      `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// ToPaymentRecordResponse converts a domain.PaymentRecord.
func ToPaymentRecordResponse(p *domain.PaymentRecord) PaymentRecordResponse {
	return PaymentRecordResponse{
		PaymentID:    p.PaymentID,
		CreditID:     p.CreditID,
		AmountNGN:    p.AmountNGN,
		AmountUSD:    p.AmountUSD,
		PrincipalNGN: p.PrincipalNGN,
		InterestNGN:  p.InterestNGN,
		Type:         p.Type,
		Reference:    p.Reference,
		PaidAt:       p.PaidAt,
	}
}

// ToCreditResponse converts a domain.Credit, deriving the repayment
// progress percentage for display.
func ToCreditResponse(c *domain.Credit) CreditResponse {
	history := make([]PaymentRecordResponse, len(c.PaymentHistory))
	for i := range c.PaymentHistory {
		history[i] = ToPaymentRecordResponse(&c.PaymentHistory[i])
	}

	progress := decimal.Zero
	if c.TotalToRepayNGN.IsPositive() {
		paid := c.TotalToRepayNGN.Sub(c.RemainingNGN)
		progress = paid.Div(c.TotalToRepayNGN).Mul(decimal.NewFromInt(100)).Round(1)
	}

	return CreditResponse{
		CreditID:             c.CreditID,
		LoanID:               c.LoanID,
		PledgerName:          c.PledgerName,
		PledgerContact:       c.PledgerContact,
		PledgerCountry:       c.PledgerCountry,
		PrincipalNGN:         c.PrincipalNGN,
		PrincipalUSD:         c.PrincipalUSD,
		TotalInterestNGN:     c.TotalInterestNGN,
		TotalInterestUSD:     c.TotalInterestUSD,
		TotalToRepayNGN:      c.TotalToRepayNGN,
		TotalToRepayUSD:      c.TotalToRepayUSD,
		RemainingNGN:         c.RemainingNGN,
		RemainingUSD:         c.RemainingUSD,
		InstallmentNGN:       c.InstallmentNGN,
		InstallmentUSD:       c.InstallmentUSD,
		FinalInstallmentNGN:  c.FinalInstallmentNGN,
		FinalInstallmentUSD:  c.FinalInstallmentUSD,
		AnnualRatePercent:    c.AnnualRatePercent,
		Term:                 c.Term,
		TermDays:             c.TermDays,
		RepaymentFrequency:   c.RepaymentFrequency,
		NumberOfInstallments: c.NumberOfInstallments,
		Status:               c.Status,
		ProgressPercent:      progress,
		StartDate:            c.StartDate,
		EndDate:              c.EndDate,
		NextPayment:          c.NextPayment,
		PaymentHistory:       history,
		CreatedAt:            c.CreatedAt,
	}
}

// ToListCreditResponse converts a slice of domain.Credit.
func ToListCreditResponse(credits []domain.Credit) []CreditResponse {
	res := make([]CreditResponse, len(credits))
	for i := range credits {
		res[i] = ToCreditResponse(&credits[i])
	}
	return res
}
