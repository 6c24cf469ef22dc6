package loanterms_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	"github.com/nairafund/pledge_lending_app/internal/utils/loanterms"
)

func TestCalculate_ReferenceLoan(t *testing.T) {
	// 300,000 NGN at 25% for 90 days, monthly installments.
	terms, err := loanterms.Calculate(decimal.NewFromInt(300000), decimal.NewFromInt(25), 90, domain.FrequencyMonthly)
	require.NoError(t, err)

	assert.True(t, terms.TotalInterest.Equal(decimal.NewFromInt(18493)), "interest = %s", terms.TotalInterest)
	assert.True(t, terms.TotalToRepay.Equal(decimal.NewFromInt(318493)), "total = %s", terms.TotalToRepay)
	assert.Equal(t, 3, terms.NumberOfInstallments)
	assert.True(t, terms.InstallmentAmount.Equal(decimal.NewFromInt(106164)), "installment = %s", terms.InstallmentAmount)
	assert.True(t, terms.FinalInstallment.Equal(decimal.NewFromInt(106165)), "final = %s", terms.FinalInstallment)
}

func TestCalculate_InstallmentsSumToTotal(t *testing.T) {
	tests := []struct {
		name      string
		principal int64
		rate      string
		termDays  int
		frequency domain.RepaymentFrequency
	}{
		{"monthly 90d", 300000, "25", 90, domain.FrequencyMonthly},
		{"weekly 30d", 50000, "25", 30, domain.FrequencyWeekly},
		{"daily 7d", 10000, "10", 7, domain.FrequencyDaily},
		{"biweekly 365d", 1000000, "37.5", 365, domain.FrequencyBiweekly},
		{"single installment", 25000, "25", 14, domain.FrequencyMonthly},
		{"zero rate", 120000, "0", 60, domain.FrequencyMonthly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := decimal.NewFromString(tt.rate)
			require.NoError(t, err)

			terms, err := loanterms.Calculate(decimal.NewFromInt(tt.principal), rate, tt.termDays, tt.frequency)
			require.NoError(t, err)

			// (n-1) equal installments plus the final one reproduce the total.
			n := int64(terms.NumberOfInstallments)
			sum := terms.InstallmentAmount.Mul(decimal.NewFromInt(n - 1)).Add(terms.FinalInstallment)
			assert.True(t, sum.Equal(terms.TotalToRepay), "sum %s != total %s", sum, terms.TotalToRepay)

			assert.True(t, terms.TotalToRepay.Equal(decimal.NewFromInt(tt.principal).Add(terms.TotalInterest)))
			assert.True(t, terms.FinalInstallment.GreaterThanOrEqual(terms.InstallmentAmount))
		})
	}
}

func TestCalculate_InstallmentCount(t *testing.T) {
	tests := []struct {
		termDays  int
		frequency domain.RepaymentFrequency
		want      int
	}{
		{90, domain.FrequencyMonthly, 3},
		{91, domain.FrequencyMonthly, 4},
		{30, domain.FrequencyWeekly, 5},
		{28, domain.FrequencyWeekly, 4},
		{14, domain.FrequencyBiweekly, 1},
		{5, domain.FrequencyDaily, 5},
	}
	for _, tt := range tests {
		terms, err := loanterms.Calculate(decimal.NewFromInt(100000), decimal.NewFromInt(25), tt.termDays, tt.frequency)
		require.NoError(t, err)
		assert.Equal(t, tt.want, terms.NumberOfInstallments, "%d days / %s", tt.termDays, tt.frequency)
	}
}

func TestCalculate_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		principal int64
		rate      int64
		termDays  int
		frequency domain.RepaymentFrequency
	}{
		{"zero principal", 0, 25, 90, domain.FrequencyMonthly},
		{"negative principal", -100, 25, 90, domain.FrequencyMonthly},
		{"negative rate", 100000, -1, 90, domain.FrequencyMonthly},
		{"zero term", 100000, 25, 0, domain.FrequencyMonthly},
		{"unknown frequency", 100000, 25, 90, domain.RepaymentFrequency("Quarterly")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loanterms.Calculate(decimal.NewFromInt(tt.principal), decimal.NewFromInt(tt.rate), tt.termDays, tt.frequency)
			assert.Error(t, err)
		})
	}
}

func TestInterestPortion(t *testing.T) {
	// 106164 of a 318493 total carrying 18493 interest.
	got := loanterms.InterestPortion(decimal.NewFromInt(106164), decimal.NewFromInt(18493), decimal.NewFromInt(318493))
	assert.True(t, got.Equal(decimal.NewFromInt(6164)), "got %s", got)

	assert.True(t, loanterms.InterestPortion(decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.Zero).IsZero())
}

func TestParseTerm(t *testing.T) {
	tests := []struct {
		term string
		want int
	}{
		{"90 days", 90},
		{"1 day", 1},
		{"2 weeks", 14},
		{"3 months", 90},
		{"1 month", 30},
		{"1 year", 365},
		{"2 Years", 730},
		{"45", 45},
		{"10 fortnights", 10}, // unknown unit falls back to days
		{"  3   months  ", 90},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := loanterms.ParseTerm(tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTerm_Invalid(t *testing.T) {
	for _, term := range []string{"", "   ", "months 3", "-2 weeks", "0 days"} {
		_, err := loanterms.ParseTerm(term)
		assert.Error(t, err, "term %q", term)
	}
}
