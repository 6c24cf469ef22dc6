package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/nairafund/pledge_lending_app/internal/apperrors"
	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	portssvc "github.com/nairafund/pledge_lending_app/internal/core/ports/services"
	"github.com/nairafund/pledge_lending_app/internal/core/services"
	"github.com/nairafund/pledge_lending_app/internal/dto"
	"github.com/nairafund/pledge_lending_app/internal/repositories/memory"
	"github.com/nairafund/pledge_lending_app/internal/utils/fx"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	profile domain.Profile
	credit  portssvc.CreditSvcFacade
	service portssvc.TransactionSvcFacade
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.profile = domain.ProfileFresh

	converter, err := fx.NewConverter(fx.DefaultNGNPerUSD)
	s.Require().NoError(err)
	s.credit = services.NewCreditService(memory.NewCreditRepository(), converter, decimal.NewFromInt(25))
	s.service = services.NewTransactionService(memory.NewTransactionRepository(), s.credit, converter)
}

func (s *TransactionServiceTestSuite) activeCredit() *domain.Credit {
	credit, _, err := s.credit.CreateRequest(s.ctx, s.profile, dto.CreateCreditRequest{
		PledgerName:        "Adaeze Okafor",
		PrincipalNGN:       decimal.NewFromInt(300000),
		Term:               "3 months",
		RepaymentFrequency: domain.FrequencyMonthly,
	})
	s.Require().NoError(err)
	approved, _, err := s.credit.Approve(s.ctx, s.profile, credit.CreditID)
	s.Require().NoError(err)
	return approved
}

func (s *TransactionServiceTestSuite) TestCashTransactions() {
	txn, events, err := s.service.AddCashTransaction(s.ctx, s.profile, domain.TxnDeposit, decimal.NewFromInt(50000))
	s.Require().NoError(err)
	s.Empty(events)
	s.Equal("TXN001", txn.TransactionID)
	s.True(txn.AmountNGN.Equal(decimal.NewFromInt(50000)))
	s.True(txn.BalanceAfterNGN.Equal(decimal.NewFromInt(50000)))

	txn, _, err = s.service.AddCashTransaction(s.ctx, s.profile, domain.TxnWithdrawal, decimal.NewFromInt(20000))
	s.Require().NoError(err)
	s.Equal("TXN002", txn.TransactionID)
	s.True(txn.AmountNGN.Equal(decimal.NewFromInt(-20000)))
	s.True(txn.BalanceAfterNGN.Equal(decimal.NewFromInt(30000)))

	balance, err := s.service.CurrentBalance(s.ctx, s.profile)
	s.Require().NoError(err)
	s.True(balance.Equal(decimal.NewFromInt(30000)))

	_, _, err = s.service.AddCashTransaction(s.ctx, s.profile, domain.TxnRepayment, decimal.NewFromInt(10))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceTestSuite) TestWithdrawal_EmptyLedgerAppendsNothing() {
	_, _, err := s.service.AddCashTransaction(s.ctx, s.profile, domain.TxnWithdrawal, decimal.NewFromInt(1000))
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	txns, err := s.service.ListTransactions(s.ctx, s.profile)
	s.Require().NoError(err)
	s.Empty(txns)

	// The rejected debit must not consume an ID either.
	txn, _, err := s.service.AddCashTransaction(s.ctx, s.profile, domain.TxnDeposit, decimal.NewFromInt(100))
	s.Require().NoError(err)
	s.Equal("TXN001", txn.TransactionID)
}

func (s *TransactionServiceTestSuite) TestTransfers() {
	_, _, err := s.service.AddTransferTransaction(s.ctx, s.profile, domain.TxnTransferIn, decimal.NewFromInt(75000), "Ngozi Eze")
	s.Require().NoError(err)

	txn, _, err := s.service.AddTransferTransaction(s.ctx, s.profile, domain.TxnTransferOut, decimal.NewFromInt(25000), "Chidi Balogun")
	s.Require().NoError(err)
	s.Equal("Chidi Balogun", txn.Counterparty)
	s.True(txn.BalanceAfterNGN.Equal(decimal.NewFromInt(50000)))

	_, _, err = s.service.AddTransferTransaction(s.ctx, s.profile, domain.TxnTransferOut, decimal.NewFromInt(50001), "Chidi Balogun")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (s *TransactionServiceTestSuite) TestListTransactions_MostRecentFirst() {
	for _, amount := range []int64{100, 200, 300} {
		_, _, err := s.service.AddCashTransaction(s.ctx, s.profile, domain.TxnDeposit, decimal.NewFromInt(amount))
		s.Require().NoError(err)
	}

	txns, err := s.service.ListTransactions(s.ctx, s.profile)
	s.Require().NoError(err)
	s.Require().Len(txns, 3)
	s.Equal("TXN003", txns[0].TransactionID)
	s.Equal("TXN001", txns[2].TransactionID)
}

func (s *TransactionServiceTestSuite) TestLoanDisbursement() {
	credit := s.activeCredit()

	txn, events, err := s.service.AddLoanDisbursement(s.ctx, s.profile, credit.CreditID, credit.PrincipalNGN, credit.PledgerName)
	s.Require().NoError(err)

	s.Equal(domain.TxnDisbursement, txn.Category)
	s.Equal(credit.CreditID, txn.CreditID)
	s.True(txn.BalanceAfterNGN.Equal(credit.PrincipalNGN))

	s.Require().Len(events, 1)
	s.Equal(domain.EventAppendActivity, events[0].Kind)
	s.Equal(domain.ActivityLoanDisbursed, events[0].ActivityType)
	s.True(events[0].AmountUSD.Equal(credit.PrincipalUSD))
}

func (s *TransactionServiceTestSuite) TestLoanRepayment() {
	credit := s.activeCredit()
	_, _, err := s.service.AddLoanDisbursement(s.ctx, s.profile, credit.CreditID, credit.PrincipalNGN, credit.PledgerName)
	s.Require().NoError(err)

	txn, updated, events, err := s.service.AddLoanRepayment(s.ctx, s.profile, credit.CreditID, decimal.NewFromInt(106164), "", "")
	s.Require().NoError(err)

	s.Equal(domain.TxnRepayment, txn.Category)
	s.True(txn.AmountNGN.Equal(decimal.NewFromInt(-106164)))
	s.True(txn.BalanceAfterNGN.Equal(decimal.NewFromInt(193836)))
	s.Equal(domain.CreditActive, updated.Status)
	s.True(updated.RemainingNGN.Equal(decimal.NewFromInt(212329)))
	s.Require().Len(events, 1)
	s.Equal(domain.ActivityRepaymentReceived, events[0].ActivityType)
}

func (s *TransactionServiceTestSuite) TestLoanRepayment_InsufficientFundsTouchesNeitherLedger() {
	credit := s.activeCredit()
	// No disbursement, so the borrower balance is zero.

	_, _, _, err := s.service.AddLoanRepayment(s.ctx, s.profile, credit.CreditID, decimal.NewFromInt(1000), "", "")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	txns, err := s.service.ListTransactions(s.ctx, s.profile)
	s.Require().NoError(err)
	s.Empty(txns)

	stored, err := s.credit.GetCreditByID(s.ctx, s.profile, credit.CreditID)
	s.Require().NoError(err)
	s.True(stored.RemainingNGN.Equal(credit.RemainingNGN))
	s.Empty(stored.PaymentHistory)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
