package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/nairafund/pledge_lending_app/internal/apperrors"
	"github.com/nairafund/pledge_lending_app/internal/core/domain"
	portssvc "github.com/nairafund/pledge_lending_app/internal/core/ports/services"
	"github.com/nairafund/pledge_lending_app/internal/core/services"
	"github.com/nairafund/pledge_lending_app/internal/dto"
	"github.com/nairafund/pledge_lending_app/internal/repositories/memory"
	"github.com/nairafund/pledge_lending_app/internal/utils/fx"
)

type CreditServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	profile domain.Profile
	repo    *memory.CreditRepository
	service portssvc.CreditSvcFacade
}

func (s *CreditServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.profile = domain.ProfileFresh
	s.repo = memory.NewCreditRepository()

	converter, err := fx.NewConverter(fx.DefaultNGNPerUSD)
	s.Require().NoError(err)
	s.service = services.NewCreditService(s.repo, converter, decimal.NewFromInt(25))
}

func (s *CreditServiceTestSuite) createReference() *domain.Credit {
	credit, events, err := s.service.CreateRequest(s.ctx, s.profile, dto.CreateCreditRequest{
		PledgerName:        "Adaeze Okafor",
		PrincipalNGN:       decimal.NewFromInt(300000),
		Term:               "3 months",
		RepaymentFrequency: domain.FrequencyMonthly,
	})
	s.Require().NoError(err)
	s.Require().Empty(events)
	return credit
}

func (s *CreditServiceTestSuite) TestCreateRequest() {
	credit := s.createReference()

	s.Equal("CR001", credit.CreditID)
	s.Equal("LOAN001", credit.LoanID)
	s.Equal(domain.CreditPending, credit.Status)
	s.Equal(90, credit.TermDays)
	s.True(credit.TotalInterestNGN.Equal(decimal.NewFromInt(18493)))
	s.True(credit.TotalToRepayNGN.Equal(decimal.NewFromInt(318493)))
	s.True(credit.RemainingNGN.Equal(credit.TotalToRepayNGN))
	s.True(credit.PrincipalUSD.Equal(decimal.RequireFromString("187.5")))
	s.Nil(credit.StartDate)
	s.Nil(credit.EndDate)
	s.Nil(credit.NextPayment)
	s.Empty(credit.PaymentHistory)

	second := s.createReference()
	s.Equal("CR002", second.CreditID)
	s.Equal("LOAN002", second.LoanID)
}

func (s *CreditServiceTestSuite) TestCreateRequest_Validation() {
	_, _, err := s.service.CreateRequest(s.ctx, s.profile, dto.CreateCreditRequest{
		PledgerName:        "X",
		PrincipalNGN:       decimal.Zero,
		Term:               "3 months",
		RepaymentFrequency: domain.FrequencyMonthly,
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, _, err = s.service.CreateRequest(s.ctx, s.profile, dto.CreateCreditRequest{
		PledgerName:        "X",
		PrincipalNGN:       decimal.NewFromInt(1000),
		Term:               "3 months",
		RepaymentFrequency: domain.RepaymentFrequency("Quarterly"),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, _, err = s.service.CreateRequest(s.ctx, s.profile, dto.CreateCreditRequest{
		PledgerName:        "X",
		PrincipalNGN:       decimal.NewFromInt(1000),
		Term:               "soon",
		RepaymentFrequency: domain.FrequencyMonthly,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *CreditServiceTestSuite) TestApprove() {
	credit := s.createReference()

	approved, events, err := s.service.Approve(s.ctx, s.profile, credit.CreditID)
	s.Require().NoError(err)

	s.Equal(domain.CreditActive, approved.Status)
	s.Require().NotNil(approved.StartDate)
	s.Require().NotNil(approved.EndDate)
	s.Require().NotNil(approved.NextPayment)
	s.Equal(approved.StartDate.AddDate(0, 0, 90), *approved.EndDate)
	s.Equal(approved.StartDate.AddDate(0, 0, 30), *approved.NextPayment)

	s.Require().Len(events, 2)
	s.Equal(domain.EventLockCollateral, events[0].Kind)
	s.True(events[0].AmountUSD.Equal(approved.PrincipalUSD))
	s.Equal(domain.EventRecordDisbursement, events[1].Kind)
	s.True(events[1].AmountNGN.Equal(approved.PrincipalNGN))
	s.Equal("Adaeze Okafor", events[1].Description)
}

func (s *CreditServiceTestSuite) TestApprove_NonPendingLeavesStateUnchanged() {
	credit := s.createReference()
	_, _, err := s.service.Decline(s.ctx, s.profile, credit.CreditID)
	s.Require().NoError(err)

	_, _, err = s.service.Approve(s.ctx, s.profile, credit.CreditID)
	s.ErrorIs(err, apperrors.ErrConflict)

	stored, err := s.service.GetCreditByID(s.ctx, s.profile, credit.CreditID)
	s.Require().NoError(err)
	s.Equal(domain.CreditCancelled, stored.Status)
	s.Nil(stored.StartDate)
}

func (s *CreditServiceTestSuite) TestApprove_NotFound() {
	_, _, err := s.service.Approve(s.ctx, s.profile, "CR999")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *CreditServiceTestSuite) TestDecline() {
	credit := s.createReference()

	declined, events, err := s.service.Decline(s.ctx, s.profile, credit.CreditID)
	s.Require().NoError(err)
	s.Equal(domain.CreditCancelled, declined.Status)

	s.Require().Len(events, 1)
	s.Equal(domain.EventAppendActivity, events[0].Kind)
	s.Equal(domain.ActivityRequestDeclined, events[0].ActivityType)
}

func (s *CreditServiceTestSuite) TestBulkTransitions() {
	first := s.createReference()
	second := s.createReference()

	// An already-active credit is skipped, not a failure.
	_, _, err := s.service.Approve(s.ctx, s.profile, first.CreditID)
	s.Require().NoError(err)

	result, events, err := s.service.ApproveAll(s.ctx, s.profile)
	s.Require().NoError(err)
	s.Equal([]string{second.CreditID}, result.Succeeded)
	s.Empty(result.Failed)
	s.Len(events, 2)

	// Nothing left to decline.
	result, events, err = s.service.DeclineAll(s.ctx, s.profile)
	s.Require().NoError(err)
	s.Empty(result.Succeeded)
	s.Empty(result.Failed)
	s.Empty(events)
}

func (s *CreditServiceTestSuite) TestApplyPayment_Partial() {
	credit := s.createReference()
	_, _, err := s.service.Approve(s.ctx, s.profile, credit.CreditID)
	s.Require().NoError(err)

	updated, record, events, err := s.service.ApplyPayment(s.ctx, s.profile, credit.CreditID, decimal.NewFromInt(106164), "", "")
	s.Require().NoError(err)

	s.Equal(domain.CreditActive, updated.Status)
	s.True(updated.RemainingNGN.Equal(decimal.NewFromInt(212329)), "remaining = %s", updated.RemainingNGN)
	s.Len(updated.PaymentHistory, 1)

	s.Equal(domain.PaymentRegular, record.Type)
	s.NotEmpty(record.Reference)
	s.True(record.InterestNGN.Equal(decimal.NewFromInt(6164)), "interest = %s", record.InterestNGN)
	s.True(record.PrincipalNGN.Add(record.InterestNGN).Equal(record.AmountNGN))

	s.Require().Len(events, 1)
	s.Equal(domain.EventAppendActivity, events[0].Kind)
	s.Equal(domain.ActivityRepaymentReceived, events[0].ActivityType)
}

func (s *CreditServiceTestSuite) TestApplyPayment_OverpayClampsAndCompletes() {
	credit := s.createReference()
	_, _, err := s.service.Approve(s.ctx, s.profile, credit.CreditID)
	s.Require().NoError(err)

	updated, record, events, err := s.service.ApplyPayment(s.ctx, s.profile, credit.CreditID, decimal.NewFromInt(999999), "", "ref-1")
	s.Require().NoError(err)

	s.Equal(domain.CreditCompleted, updated.Status)
	s.True(updated.RemainingNGN.IsZero())
	s.Equal(domain.PaymentFull, record.Type)
	s.Equal("ref-1", record.Reference)

	s.Require().Len(events, 2)
	s.Equal(domain.EventAppendActivity, events[0].Kind)
	s.Equal(domain.EventReleaseCollateral, events[1].Kind)
	s.Equal(credit.CreditID, events[1].CreditID)
}

func (s *CreditServiceTestSuite) TestApplyPayment_CompletionIsTerminal() {
	credit := s.createReference()
	_, _, err := s.service.Approve(s.ctx, s.profile, credit.CreditID)
	s.Require().NoError(err)

	_, _, _, err = s.service.ApplyPayment(s.ctx, s.profile, credit.CreditID, decimal.NewFromInt(318493), "", "")
	s.Require().NoError(err)

	// A second full payment must fail and change nothing, so the unlock
	// event fires exactly once.
	_, _, _, err = s.service.ApplyPayment(s.ctx, s.profile, credit.CreditID, decimal.NewFromInt(318493), "", "")
	s.ErrorIs(err, apperrors.ErrConflict)

	stored, err := s.service.GetCreditByID(s.ctx, s.profile, credit.CreditID)
	s.Require().NoError(err)
	s.Equal(domain.CreditCompleted, stored.Status)
	s.Len(stored.PaymentHistory, 1)
}

func (s *CreditServiceTestSuite) TestApplyPayment_RejectsNonActive() {
	credit := s.createReference()

	_, _, _, err := s.service.ApplyPayment(s.ctx, s.profile, credit.CreditID, decimal.NewFromInt(1000), "", "")
	s.ErrorIs(err, apperrors.ErrConflict)

	_, _, _, err = s.service.ApplyPayment(s.ctx, s.profile, credit.CreditID, decimal.Zero, "", "")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *CreditServiceTestSuite) TestProfilesAreIsolated() {
	s.createReference()

	credits, err := s.service.ListCredits(s.ctx, domain.ProfileActive)
	s.Require().NoError(err)
	s.Empty(credits)
}

func TestCreditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CreditServiceTestSuite))
}

func TestPreview_MatchesCreateTerms(t *testing.T) {
	converter, err := fx.NewConverter(fx.DefaultNGNPerUSD)
	require.NoError(t, err)
	service := services.NewCreditService(memory.NewCreditRepository(), converter, decimal.NewFromInt(25))

	preview, err := service.Preview(context.Background(), dto.LoanPreviewRequest{
		PrincipalNGN:       decimal.NewFromInt(300000),
		Term:               "3 months",
		RepaymentFrequency: domain.FrequencyMonthly,
	})
	require.NoError(t, err)

	assert.Equal(t, 90, preview.TermDays)
	assert.Equal(t, 3, preview.NumberOfInstallments)
	assert.True(t, preview.TotalToRepayNGN.Equal(decimal.NewFromInt(318493)))
	assert.True(t, preview.InstallmentNGN.Equal(decimal.NewFromInt(106164)))
	assert.True(t, preview.FinalInstallmentNGN.Equal(decimal.NewFromInt(106165)))
	assert.True(t, preview.TotalToRepayUSD.Equal(decimal.RequireFromString("199.06")))
}
