package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/trustbooks/trust_ledger_app/internal/apperrors"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	portssvc "github.com/trustbooks/trust_ledger_app/internal/core/ports/services"
	"github.com/trustbooks/trust_ledger_app/internal/core/services"
	"github.com/trustbooks/trust_ledger_app/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	userID   string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Client Trust Account",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
		Description:  "Pooled client funds",
	}

	var saved domain.Account
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Account)
		}).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("Client Trust Account", account.Name)
	suite.Equal(domain.Asset, account.AccountType)
	suite.True(account.IsActive)
	suite.True(account.Balance.IsZero())
	suite.Equal(suite.userID, account.CreatedBy)
	suite.Equal(saved.AccountID, account.AccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_DefaultsApplied() {
	ctx := context.Background()

	suite.mockRepo.On("ListAccounts", ctx, 20, 0).Return([]domain.Account{}, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, 0, -5)

	suite.Require().NoError(err)
	suite.Empty(accounts)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	account := domain.Account{AccountID: uuid.NewString(), Name: "Old Account", AccountType: domain.Expense, IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, account.AccountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
