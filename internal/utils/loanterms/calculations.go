package loanterms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

const daysPerYear = 365

// Terms is the full repayment plan for a loan, in whole naira.
// Installments are equal except possibly the last, which absorbs the
// rounding remainder.
type Terms struct {
	TotalInterest        decimal.Decimal
	TotalToRepay         decimal.Decimal
	InstallmentAmount    decimal.Decimal
	NumberOfInstallments int
	// FinalInstallment equals InstallmentAmount when the schedule divides
	// evenly; otherwise it is InstallmentAmount plus the remainder.
	FinalInstallment decimal.Decimal
}

// Calculate computes simple, non-compounding interest for the entire term
// and splits the total into a schedule at the given cadence.
//
// Interest is front-loaded at creation: partial repayment later does not
// reduce it, because there is no ongoing accrual.
func Calculate(principal decimal.Decimal, annualRatePercent decimal.Decimal, termDays int, frequency domain.RepaymentFrequency) (*Terms, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("principal must be positive, got %s", principal)
	}
	if annualRatePercent.IsNegative() {
		return nil, fmt.Errorf("annual rate must not be negative, got %s", annualRatePercent)
	}
	if termDays <= 0 {
		return nil, fmt.Errorf("term must be at least one day, got %d", termDays)
	}
	if !frequency.Valid() {
		return nil, fmt.Errorf("unknown repayment frequency %q", frequency)
	}

	// dailyRate = annualRatePercent / 100 / 365
	dailyRate := annualRatePercent.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(daysPerYear))
	totalInterest := principal.Mul(dailyRate).Mul(decimal.NewFromInt(int64(termDays))).Round(0)
	totalToRepay := principal.Add(totalInterest)

	frequencyDays := frequency.Days()
	installments := (termDays + frequencyDays - 1) / frequencyDays

	installmentAmount := totalToRepay.Div(decimal.NewFromInt(int64(installments))).Floor()
	remainder := totalToRepay.Sub(installmentAmount.Mul(decimal.NewFromInt(int64(installments))))

	finalInstallment := installmentAmount
	if remainder.IsPositive() {
		finalInstallment = installmentAmount.Add(remainder)
	}

	return &Terms{
		TotalInterest:        totalInterest,
		TotalToRepay:         totalToRepay,
		InstallmentAmount:    installmentAmount,
		NumberOfInstallments: installments,
		FinalInstallment:     finalInstallment,
	}, nil
}

// InterestPortion estimates the interest share of a repayment as a static
// proportion of the original totals. This is deliberately not a true
// amortization split.
func InterestPortion(amount, totalInterest, totalToRepay decimal.Decimal) decimal.Decimal {
	if totalToRepay.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return amount.Mul(totalInterest).Div(totalToRepay).Round(0)
}

// ParseTerm converts a free-text term like "3 months" into days. The unit is
// matched by prefix (day/week/month/year, month=30 and year=365 days); an
// unrecognized unit treats the number as days.
func ParseTerm(term string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(term))
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty term")
	}

	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("term %q does not start with a number: %w", term, err)
	}
	if count <= 0 {
		return 0, fmt.Errorf("term %q must be positive", term)
	}

	unit := ""
	if len(fields) > 1 {
		unit = strings.ToLower(fields[1])
	}

	switch {
	case strings.HasPrefix(unit, "day"):
		return count, nil
	case strings.HasPrefix(unit, "week"):
		return count * 7, nil
	case strings.HasPrefix(unit, "month"):
		return count * 30, nil
	case strings.HasPrefix(unit, "year"):
		return count * daysPerYear, nil
	default:
		return count, nil
	}
}
