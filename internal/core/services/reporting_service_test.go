package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	portsrepo "github.com/trustbooks/trust_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/trustbooks/trust_ledger_app/internal/core/ports/services"
	"github.com/trustbooks/trust_ledger_app/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingReader = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingService
	asOf     time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
	suite.asOf = time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_TotalsNetToZero() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountName: "Trust Checking", AccountType: domain.Asset, Debit: decimal.NewFromInt(1500), Credit: decimal.NewFromInt(300)},
		{AccountID: uuid.NewString(), AccountName: "Client Funds Held", AccountType: domain.Liability, Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(900)},
		{AccountID: uuid.NewString(), AccountName: "Fee Revenue", AccountType: domain.Revenue, Debit: decimal.Zero, Credit: decimal.NewFromInt(700)},
		{AccountID: uuid.NewString(), AccountName: "Filing Fees", AccountType: domain.Expense, Debit: decimal.NewFromInt(300), Credit: decimal.Zero},
	}

	suite.mockRepo.On("GetTrialBalanceData", ctx, suite.asOf).Return(rows, nil).Once()

	resp, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal("2026-06-30", resp.AsOf)
	suite.Require().Len(resp.Rows, 4)
	suite.Equal("Trust Checking", resp.Rows[0].AccountName)
	suite.Equal(string(domain.Asset), resp.Rows[0].AccountType)
	suite.True(resp.Totals.Debit.Equal(decimal.NewFromInt(1900)))
	suite.True(resp.Totals.Credit.Equal(decimal.NewFromInt(1900)))
	suite.True(resp.Net.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_ReversedPairStaysBalanced() {
	ctx := context.Background()
	// A posted entry and its reversal hit the same accounts on opposite sides,
	// so per-account totals grow but the report still nets to zero.
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountName: "Trust Checking", AccountType: domain.Asset, Debit: decimal.NewFromInt(250), Credit: decimal.NewFromInt(250)},
		{AccountID: uuid.NewString(), AccountName: "Client Funds Held", AccountType: domain.Liability, Debit: decimal.NewFromInt(250), Credit: decimal.NewFromInt(250)},
	}

	suite.mockRepo.On("GetTrialBalanceData", ctx, suite.asOf).Return(rows, nil).Once()

	resp, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.True(resp.Totals.Debit.Equal(decimal.NewFromInt(500)))
	suite.True(resp.Totals.Credit.Equal(decimal.NewFromInt(500)))
	suite.True(resp.Net.IsZero())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_EmptyLedger() {
	ctx := context.Background()

	suite.mockRepo.On("GetTrialBalanceData", ctx, suite.asOf).Return([]domain.TrialBalanceRow{}, nil).Once()

	resp, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Empty(resp.Rows)
	suite.True(resp.Totals.Debit.IsZero())
	suite.True(resp.Totals.Credit.IsZero())
	suite.True(resp.Net.IsZero())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_RepositoryError() {
	ctx := context.Background()
	repoErr := errors.New("connection refused")

	suite.mockRepo.On("GetTrialBalanceData", ctx, suite.asOf).Return(nil, repoErr).Once()

	_, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().ErrorIs(err, repoErr)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
