package dto

import (
	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

// LoanPreviewRequest asks for loan terms without creating a credit.
type LoanPreviewRequest struct {
	PrincipalNGN       decimal.Decimal           `json:"principalNGN" binding:"required"`
	Term               string                    `json:"term" binding:"required"`
	RepaymentFrequency domain.RepaymentFrequency `json:"repaymentFrequency" binding:"required,repayfreq"`
	AnnualRatePercent  *decimal.Decimal          `json:"annualRatePercent"`
}

// LoanPreviewResponse carries the computed terms in both currencies.
type LoanPreviewResponse struct {
	PrincipalNGN         decimal.Decimal `json:"principalNGN"`
	PrincipalUSD         decimal.Decimal `json:"principalUSD"`
	AnnualRatePercent    decimal.Decimal `json:"annualRatePercent"`
	TermDays             int             `json:"termDays"`
	TotalInterestNGN     decimal.Decimal `json:"totalInterestNGN"`
	TotalInterestUSD     decimal.Decimal `json:"totalInterestUSD"`
	TotalToRepayNGN      decimal.Decimal `json:"totalToRepayNGN"`
	TotalToRepayUSD      decimal.Decimal `json:"totalToRepayUSD"`
	InstallmentNGN       decimal.Decimal `json:"installmentNGN"`
	InstallmentUSD       decimal.Decimal `json:"installmentUSD"`
	FinalInstallmentNGN  decimal.Decimal `json:"finalInstallmentNGN"`
	FinalInstallmentUSD  decimal.Decimal `json:"finalInstallmentUSD"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
}
