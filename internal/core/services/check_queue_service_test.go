package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/trustbooks/trust_ledger_app/internal/apperrors"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	portsrepo "github.com/trustbooks/trust_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/trustbooks/trust_ledger_app/internal/core/ports/services"
	"github.com/trustbooks/trust_ledger_app/internal/core/services"
	"github.com/trustbooks/trust_ledger_app/internal/dto"
)

// --- Mock CheckRepository ---
type MockCheckRepository struct {
	mock.Mock
}

var _ portsrepo.CheckRepositoryFacade = (*MockCheckRepository)(nil)

func (m *MockCheckRepository) SaveCheckItem(ctx context.Context, item domain.CheckQueueItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCheckRepository) UpdateCheckItem(ctx context.Context, item domain.CheckQueueItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCheckRepository) DeleteCheckItem(ctx context.Context, checkItemID string) error {
	args := m.Called(ctx, checkItemID)
	return args.Error(0)
}

func (m *MockCheckRepository) FindCheckItemByID(ctx context.Context, checkItemID string) (*domain.CheckQueueItem, error) {
	args := m.Called(ctx, checkItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckQueueItem), args.Error(1)
}

func (m *MockCheckRepository) ListCheckItems(ctx context.Context, status *domain.CheckItemStatus, limit int, nextToken *string) ([]domain.CheckQueueItem, *string, error) {
	args := m.Called(ctx, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.CheckQueueItem), returnedNextToken, args.Error(2)
}

func (m *MockCheckRepository) IsCheckNumberInUse(ctx context.Context, ledgerAccountID, checkNumber, excludeItemID string) (bool, error) {
	args := m.Called(ctx, ledgerAccountID, checkNumber, excludeItemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCheckRepository) RegisterCheckItem(ctx context.Context, item domain.CheckQueueItem, check domain.RegisteredCheck, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, item, check, journal, transactions, balanceChanges)
	return args.Error(0)
}

func (m *MockCheckRepository) FindRegisteredCheckByID(ctx context.Context, checkID string) (*domain.RegisteredCheck, error) {
	args := m.Called(ctx, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegisteredCheck), args.Error(1)
}

// --- Mock EntityReader ---
type MockEntityReader struct {
	mock.Mock
}

var _ portsrepo.EntityReader = (*MockEntityReader)(nil)

func (m *MockEntityReader) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

// --- Test Suite Setup ---
type CheckQueueServiceTestSuite struct {
	suite.Suite
	mockCheckRepo   *MockCheckRepository
	mockAccountRepo *MockAccountRepository
	mockEntityRepo  *MockEntityReader
	service         portssvc.CheckSvcFacade
	ledgerAccount   domain.Account
	expenseAccount  domain.Account
	payee           domain.Entity
	userID          string
}

func (suite *CheckQueueServiceTestSuite) SetupTest() {
	suite.mockCheckRepo = new(MockCheckRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockEntityRepo = new(MockEntityReader)
	suite.service = services.NewCheckQueueService(suite.mockCheckRepo, suite.mockAccountRepo, suite.mockEntityRepo, nil)

	suite.userID = uuid.NewString()

	suite.ledgerAccount = domain.Account{
		AccountID:    uuid.NewString(),
		Name:         "Trust Checking",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
		IsActive:     true,
		Balance:      decimal.NewFromInt(5000),
	}
	suite.expenseAccount = domain.Account{
		AccountID:    uuid.NewString(),
		Name:         "Court Fees",
		AccountType:  domain.Expense,
		CurrencyCode: "USD",
		IsActive:     true,
	}
	suite.payee = domain.Entity{
		EntityID:     uuid.NewString(),
		Name:         "County Clerk",
		AddressLine1: "100 Main St",
		City:         "Springfield",
		State:        "IL",
		PostalCode:   "62701",
		IsPayable:    true,
		IsActive:     true,
	}
}

func (suite *CheckQueueServiceTestSuite) queuedItem() *domain.CheckQueueItem {
	return &domain.CheckQueueItem{
		CheckItemID:      uuid.NewString(),
		LedgerAccountID:  suite.ledgerAccount.AccountID,
		ExpenseAccountID: suite.expenseAccount.AccountID,
		PayeeEntityID:    suite.payee.EntityID,
		CheckNumber:      "1001",
		Amount:           decimal.NewFromFloat(1234.56),
		Memo:             "Filing fee",
		CheckDate:        time.Now(),
		Status:           domain.CheckQueued,
	}
}

// --- Test Cases ---

func (suite *CheckQueueServiceTestSuite) TestCreateCheckItem_Success() {
	ctx := context.Background()
	req := dto.CreateCheckItemRequest{
		LedgerAccountID:  suite.ledgerAccount.AccountID,
		ExpenseAccountID: suite.expenseAccount.AccountID,
		PayeeEntityID:    suite.payee.EntityID,
		CheckNumber:      "1001",
		Amount:           decimal.NewFromFloat(1234.56),
		Memo:             "Filing fee",
		CheckDate:        time.Now(),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.ledgerAccount.AccountID).Return(&suite.ledgerAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.expenseAccount.AccountID).Return(&suite.expenseAccount, nil).Once()
	suite.mockEntityRepo.On("FindEntityByID", ctx, suite.payee.EntityID).Return(&suite.payee, nil).Once()
	suite.mockCheckRepo.On("IsCheckNumberInUse", ctx, suite.ledgerAccount.AccountID, "1001", "").Return(false, nil).Once()
	suite.mockCheckRepo.On("SaveCheckItem", ctx, mock.AnythingOfType("domain.CheckQueueItem")).Return(nil).Once()

	item, err := suite.service.CreateCheckItem(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(item)
	suite.Equal(domain.CheckQueued, item.Status)
	suite.False(item.IsRegistered)
	suite.Equal("One Thousand Two Hundred Thirty Four and 56/100 Dollars", item.AmountWords)
	suite.Contains(item.PayeeAddress, "County Clerk")
	suite.Contains(item.PayeeAddress, "Springfield, IL 62701")

	suite.mockCheckRepo.AssertExpectations(suite.T())
}

func (suite *CheckQueueServiceTestSuite) TestCreateCheckItem_SoftFundsCheckAllows() {
	ctx := context.Background()
	req := dto.CreateCheckItemRequest{
		LedgerAccountID:  suite.ledgerAccount.AccountID,
		ExpenseAccountID: suite.expenseAccount.AccountID,
		PayeeEntityID:    suite.payee.EntityID,
		CheckNumber:      "1002",
		Amount:           decimal.NewFromInt(999999),
		CheckDate:        time.Now(),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.ledgerAccount.AccountID).Return(&suite.ledgerAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.expenseAccount.AccountID).Return(&suite.expenseAccount, nil).Once()
	suite.mockEntityRepo.On("FindEntityByID", ctx, suite.payee.EntityID).Return(&suite.payee, nil).Once()
	suite.mockCheckRepo.On("IsCheckNumberInUse", ctx, suite.ledgerAccount.AccountID, "1002", "").Return(false, nil).Once()
	suite.mockCheckRepo.On("SaveCheckItem", ctx, mock.AnythingOfType("domain.CheckQueueItem")).Return(nil).Once()

	// Amount far exceeds the balance but creation still succeeds.
	item, err := suite.service.CreateCheckItem(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(item)
}

func (suite *CheckQueueServiceTestSuite) TestCreateCheckItem_DuplicateNumber() {
	ctx := context.Background()
	req := dto.CreateCheckItemRequest{
		LedgerAccountID:  suite.ledgerAccount.AccountID,
		ExpenseAccountID: suite.expenseAccount.AccountID,
		PayeeEntityID:    suite.payee.EntityID,
		CheckNumber:      "1001",
		Amount:           decimal.NewFromInt(100),
		CheckDate:        time.Now(),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.ledgerAccount.AccountID).Return(&suite.ledgerAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.expenseAccount.AccountID).Return(&suite.expenseAccount, nil).Once()
	suite.mockEntityRepo.On("FindEntityByID", ctx, suite.payee.EntityID).Return(&suite.payee, nil).Once()
	suite.mockCheckRepo.On("IsCheckNumberInUse", ctx, suite.ledgerAccount.AccountID, "1001", "").Return(true, nil).Once()

	_, err := suite.service.CreateCheckItem(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicateCheckNumber)
	suite.mockCheckRepo.AssertNotCalled(suite.T(), "SaveCheckItem", mock.Anything, mock.Anything)
}

func (suite *CheckQueueServiceTestSuite) TestCreateCheckItem_PayeeNotPayable() {
	ctx := context.Background()
	unpayable := suite.payee
	unpayable.IsPayable = false

	req := dto.CreateCheckItemRequest{
		LedgerAccountID:  suite.ledgerAccount.AccountID,
		ExpenseAccountID: suite.expenseAccount.AccountID,
		PayeeEntityID:    unpayable.EntityID,
		CheckNumber:      "1003",
		Amount:           decimal.NewFromInt(100),
		CheckDate:        time.Now(),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.ledgerAccount.AccountID).Return(&suite.ledgerAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.expenseAccount.AccountID).Return(&suite.expenseAccount, nil).Once()
	suite.mockEntityRepo.On("FindEntityByID", ctx, unpayable.EntityID).Return(&unpayable, nil).Once()

	_, err := suite.service.CreateCheckItem(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrEntityNotPayable)
}

func (suite *CheckQueueServiceTestSuite) TestPreviewCheckItem_RefreshesSnapshot() {
	ctx := context.Background()
	item := suite.queuedItem()

	suite.mockCheckRepo.On("FindCheckItemByID", ctx, item.CheckItemID).Return(item, nil).Once()
	suite.mockEntityRepo.On("FindEntityByID", ctx, suite.payee.EntityID).Return(&suite.payee, nil).Once()
	suite.mockCheckRepo.On("UpdateCheckItem", ctx, mock.AnythingOfType("domain.CheckQueueItem")).Return(nil).Once()

	updated, err := suite.service.PreviewCheckItem(ctx, item.CheckItemID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.CheckPreviewing, updated.Status)
	suite.Require().NotNil(updated.PreviewedAt)
	suite.NotEmpty(updated.AmountWords)
	suite.Contains(updated.PayeeAddress, "100 Main St")
}

func (suite *CheckQueueServiceTestSuite) TestPreviewCheckItem_FromConfirmedRejected() {
	ctx := context.Background()
	item := suite.queuedItem()
	item.Status = domain.CheckConfirmed

	suite.mockCheckRepo.On("FindCheckItemByID", ctx, item.CheckItemID).Return(item, nil).Once()

	_, err := suite.service.PreviewCheckItem(ctx, item.CheckItemID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CheckQueueServiceTestSuite) TestConfirmCheckItem_Success() {
	ctx := context.Background()
	item := suite.queuedItem()
	item.Status = domain.CheckPrinted

	suite.mockCheckRepo.On("FindCheckItemByID", ctx, item.CheckItemID).Return(item, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.ledgerAccount.AccountID).Return(&suite.ledgerAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.expenseAccount.AccountID).Return(&suite.expenseAccount, nil).Once()

	var regItem domain.CheckQueueItem
	var regCheck domain.RegisteredCheck
	var regJournal domain.Journal
	var regTxns []domain.Transaction
	var regChanges map[string]decimal.Decimal
	suite.mockCheckRepo.On("RegisterCheckItem", ctx,
		mock.AnythingOfType("domain.CheckQueueItem"),
		mock.AnythingOfType("domain.RegisteredCheck"),
		mock.AnythingOfType("domain.Journal"),
		mock.AnythingOfType("[]domain.Transaction"),
		mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			regItem = args.Get(1).(domain.CheckQueueItem)
			regCheck = args.Get(2).(domain.RegisteredCheck)
			regJournal = args.Get(3).(domain.Journal)
			regTxns = args.Get(4).([]domain.Transaction)
			regChanges = args.Get(5).(map[string]decimal.Decimal)
		}).Return(nil).Once()

	confirmed, err := suite.service.ConfirmCheckItem(ctx, item.CheckItemID, dto.ConfirmCheckItemRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.CheckConfirmed, confirmed.Status)
	suite.True(confirmed.IsRegistered)
	suite.Require().NotNil(confirmed.RegisteredCheckID)

	suite.Equal(domain.CheckConfirmed, regItem.Status)
	suite.Equal(regCheck.CheckID, *confirmed.RegisteredCheckID)
	suite.Equal(regCheck.JournalID, regJournal.JournalID)
	suite.Equal("CHECK", *regJournal.SourceType)
	suite.Contains(regJournal.Description, "Check #1001")

	// Debit expense, credit ledger.
	suite.Require().Len(regTxns, 2)
	suite.Equal(suite.expenseAccount.AccountID, regTxns[0].AccountID)
	suite.Equal(domain.Debit, regTxns[0].TransactionType)
	suite.Equal(suite.ledgerAccount.AccountID, regTxns[1].AccountID)
	suite.Equal(domain.Credit, regTxns[1].TransactionType)

	suite.True(regChanges[suite.expenseAccount.AccountID].Equal(item.Amount))
	suite.True(regChanges[suite.ledgerAccount.AccountID].Equal(item.Amount.Neg()))
}

func (suite *CheckQueueServiceTestSuite) TestConfirmCheckItem_NotPrinted() {
	ctx := context.Background()
	item := suite.queuedItem()

	suite.mockCheckRepo.On("FindCheckItemByID", ctx, item.CheckItemID).Return(item, nil).Once()

	_, err := suite.service.ConfirmCheckItem(ctx, item.CheckItemID, dto.ConfirmCheckItemRequest{}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockCheckRepo.AssertNotCalled(suite.T(), "RegisterCheckItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CheckQueueServiceTestSuite) TestConfirmCheckItem_AlreadyRegistered() {
	ctx := context.Background()
	item := suite.queuedItem()
	item.Status = domain.CheckConfirmed
	item.IsRegistered = true

	suite.mockCheckRepo.On("FindCheckItemByID", ctx, item.CheckItemID).Return(item, nil).Once()

	_, err := suite.service.ConfirmCheckItem(ctx, item.CheckItemID, dto.ConfirmCheckItemRequest{}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrAlreadyRegistered)
}

func (suite *CheckQueueServiceTestSuite) TestConfirmCheckItem_InsufficientFunds() {
	ctx := context.Background()
	item := suite.queuedItem()
	item.Status = domain.CheckPrinted

	suite.mockCheckRepo.On("FindCheckItemByID", ctx, item.CheckItemID).Return(item, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.ledgerAccount.AccountID).Return(&suite.ledgerAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.expenseAccount.AccountID).Return(&suite.expenseAccount, nil).Once()
	suite.mockCheckRepo.On("RegisterCheckItem", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrInsufficientFunds).Once()

	_, err := suite.service.ConfirmCheckItem(ctx, item.CheckItemID, dto.ConfirmCheckItemRequest{}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (suite *CheckQueueServiceTestSuite) TestConfirmCheckItem_FinalNumberCorrection() {
	ctx := context.Background()
	item := suite.queuedItem()
	item.Status = domain.CheckPrinted
	finalNumber := "2002"

	suite.mockCheckRepo.On("FindCheckItemByID", ctx, item.CheckItemID).Return(item, nil).Once()
	suite.mockCheckRepo.On("IsCheckNumberInUse", ctx, suite.ledgerAccount.AccountID, finalNumber, item.CheckItemID).Return(false, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.ledgerAccount.AccountID).Return(&suite.ledgerAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.expenseAccount.AccountID).Return(&suite.expenseAccount, nil).Once()

	var regCheck domain.RegisteredCheck
	suite.mockCheckRepo.On("RegisterCheckItem", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			regCheck = args.Get(2).(domain.RegisteredCheck)
		}).Return(nil).Once()

	confirmed, err := suite.service.ConfirmCheckItem(ctx, item.CheckItemID, dto.ConfirmCheckItemRequest{FinalCheckNumber: &finalNumber}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(finalNumber, confirmed.CheckNumber)
	suite.Equal(finalNumber, regCheck.CheckNumber)
}

func (suite *CheckQueueServiceTestSuite) TestCancelCheckItem_Success() {
	ctx := context.Background()
	item := suite.queuedItem()

	suite.mockCheckRepo.On("FindCheckItemByID", ctx, item.CheckItemID).Return(item, nil).Once()
	suite.mockCheckRepo.On("UpdateCheckItem", ctx, mock.AnythingOfType("domain.CheckQueueItem")).Return(nil).Once()

	cancelled, err := suite.service.CancelCheckItem(ctx, item.CheckItemID, dto.CancelCheckItemRequest{Reason: "wrong payee"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.CheckCancelled, cancelled.Status)
	suite.Equal("wrong payee", cancelled.CancelReason)
}

func (suite *CheckQueueServiceTestSuite) TestCancelCheckItem_RegisteredRejected() {
	ctx := context.Background()
	item := suite.queuedItem()
	item.Status = domain.CheckConfirmed
	item.IsRegistered = true

	suite.mockCheckRepo.On("FindCheckItemByID", ctx, item.CheckItemID).Return(item, nil).Once()

	_, err := suite.service.CancelCheckItem(ctx, item.CheckItemID, dto.CancelCheckItemRequest{Reason: "too late"}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrAlreadyRegistered)
	suite.mockCheckRepo.AssertNotCalled(suite.T(), "UpdateCheckItem", mock.Anything, mock.Anything)
}

func (suite *CheckQueueServiceTestSuite) TestDeleteCheckItem_RegisteredRejected() {
	ctx := context.Background()
	item := suite.queuedItem()
	item.IsRegistered = true

	suite.mockCheckRepo.On("FindCheckItemByID", ctx, item.CheckItemID).Return(item, nil).Once()

	err := suite.service.DeleteCheckItem(ctx, item.CheckItemID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrCannotDeleteRegistered)
	suite.mockCheckRepo.AssertNotCalled(suite.T(), "DeleteCheckItem", mock.Anything, mock.Anything)
}

func (suite *CheckQueueServiceTestSuite) TestDeleteCheckItem_Success() {
	ctx := context.Background()
	item := suite.queuedItem()

	suite.mockCheckRepo.On("FindCheckItemByID", ctx, item.CheckItemID).Return(item, nil).Once()
	suite.mockCheckRepo.On("DeleteCheckItem", ctx, item.CheckItemID).Return(nil).Once()

	err := suite.service.DeleteCheckItem(ctx, item.CheckItemID, suite.userID)

	suite.Require().NoError(err)
}

func TestCheckQueueServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CheckQueueServiceTestSuite))
}
