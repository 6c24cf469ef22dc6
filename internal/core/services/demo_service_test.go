package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	portssvc "github.com/nairafund/pledge_lending_app/internal/core/ports/services"
	"github.com/nairafund/pledge_lending_app/internal/core/services"
	"github.com/nairafund/pledge_lending_app/internal/dto"
	"github.com/nairafund/pledge_lending_app/internal/repositories/memory"
	"github.com/nairafund/pledge_lending_app/pkg/config"
)

func demoContainer(t *testing.T) *portssvc.ServiceContainer {
	t.Helper()
	cfg := &config.Config{
		NGNPerUSD:                decimal.NewFromInt(1600),
		DefaultAnnualRatePercent: decimal.NewFromInt(25),
	}
	container, err := services.NewServiceContainer(cfg, memory.NewRepositoryProvider())
	require.NoError(t, err)
	return container
}

func TestSeedActiveProfile(t *testing.T) {
	ctx := context.Background()
	c := demoContainer(t)

	require.NoError(t, c.Demo.SeedActiveProfile(ctx))

	// One approved, active credit.
	credits, err := c.Credit.ListCredits(ctx, domain.ProfileActive)
	require.NoError(t, err)
	require.Len(t, credits, 1)
	assert.Equal(t, domain.CreditActive, credits[0].Status)
	assert.NotNil(t, credits[0].StartDate)

	// Funded wallet with the credit's collateral reserved.
	wallet, err := c.Wallet.GetWallet(ctx, domain.ProfileActive)
	require.NoError(t, err)
	assert.True(t, wallet.BalanceUSD.Equal(decimal.NewFromInt(1000)))
	_, locked := wallet.FindLock(credits[0].CreditID)
	assert.True(t, locked)

	// Borrower ledger holds the deposit and the disbursement.
	txns, err := c.Transaction.ListTransactions(ctx, domain.ProfileActive)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, domain.TxnDisbursement, txns[0].Category)
	assert.Equal(t, domain.TxnDeposit, txns[1].Category)

	activities, err := c.Activity.ListActivities(ctx, domain.ProfileActive)
	require.NoError(t, err)
	assert.NotEmpty(t, activities)

	// The fresh profile stays empty.
	freshCredits, err := c.Credit.ListCredits(ctx, domain.ProfileFresh)
	require.NoError(t, err)
	assert.Empty(t, freshCredits)

	// Seeding again replaces, not duplicates.
	require.NoError(t, c.Demo.SeedActiveProfile(ctx))
	credits, err = c.Credit.ListCredits(ctx, domain.ProfileActive)
	require.NoError(t, err)
	assert.Len(t, credits, 1)
	assert.Equal(t, "CR001", credits[0].CreditID)
}

func TestResetProfile_RestartsIDCounters(t *testing.T) {
	ctx := context.Background()
	c := demoContainer(t)
	profile := domain.ProfileFresh

	_, _, err := c.Credit.CreateRequest(ctx, profile, dto.CreateCreditRequest{
		PledgerName:        "Adaeze Okafor",
		PrincipalNGN:       decimal.NewFromInt(300000),
		Term:               "3 months",
		RepaymentFrequency: domain.FrequencyMonthly,
	})
	require.NoError(t, err)
	_, _, err = c.Transaction.AddCashTransaction(ctx, profile, domain.TxnDeposit, decimal.NewFromInt(1000))
	require.NoError(t, err)
	_, _, err = c.Wallet.TopUp(ctx, profile, decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = c.Activity.AppendActivity(ctx, profile, domain.ActivityTopUp, "", decimal.NewFromInt(100), "seed")
	require.NoError(t, err)

	require.NoError(t, c.Demo.ResetProfile(ctx, profile))

	credits, err := c.Credit.ListCredits(ctx, profile)
	require.NoError(t, err)
	assert.Empty(t, credits)

	txns, err := c.Transaction.ListTransactions(ctx, profile)
	require.NoError(t, err)
	assert.Empty(t, txns)

	wallet, err := c.Wallet.GetWallet(ctx, profile)
	require.NoError(t, err)
	assert.True(t, wallet.BalanceUSD.IsZero())
	assert.Empty(t, wallet.LockedFunds)

	activities, err := c.Activity.ListActivities(ctx, profile)
	require.NoError(t, err)
	assert.Empty(t, activities)

	// Counters restart at 001 across all ledgers.
	credit, _, err := c.Credit.CreateRequest(ctx, profile, dto.CreateCreditRequest{
		PledgerName:        "Adaeze Okafor",
		PrincipalNGN:       decimal.NewFromInt(100000),
		Term:               "30 days",
		RepaymentFrequency: domain.FrequencyWeekly,
	})
	require.NoError(t, err)
	assert.Equal(t, "CR001", credit.CreditID)
	assert.Equal(t, "LOAN001", credit.LoanID)

	txn, _, err := c.Transaction.AddCashTransaction(ctx, profile, domain.TxnDeposit, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.Equal(t, "TXN001", txn.TransactionID)

	activity, err := c.Activity.AppendActivity(ctx, profile, domain.ActivityTopUp, "", decimal.NewFromInt(50), "after reset")
	require.NoError(t, err)
	assert.Equal(t, "PA001", activity.ActivityID)
}
