package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, journal, transactions, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, limit, nextToken, includeReversals)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Journal), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SaveReversalJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, journal, transactions, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) ListAccountLedger(ctx context.Context, accountID string, start, end *time.Time, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, start, end, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockJournalRepository) GetAccountBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock AuditSink ---
type MockAuditSink struct {
	mock.Mock
}

var _ portssvc.AuditSink = (*MockAuditSink)(nil)

func (m *MockAuditSink) Publish(ctx context.Context, event domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditSink) Close() error {
	args := m.Called()
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountRepo  *MockAccountRepository
	service          portssvc.JournalSvcFacade
	assetAccount     domain.Account
	liabilityAccount domain.Account
	revenueAccount   domain.Account
	expenseAccount   domain.Account
	userID           string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, nil)

	suite.userID = uuid.NewString()

	suite.assetAccount = domain.Account{
		AccountID:    uuid.NewString(),
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
		IsActive:     true,
		Balance:      decimal.NewFromInt(1000),
	}
	suite.liabilityAccount = domain.Account{
		AccountID:    uuid.NewString(),
		AccountType:  domain.Liability,
		CurrencyCode: "USD",
		IsActive:     true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:    uuid.NewString(),
		AccountType:  domain.Revenue,
		CurrencyCode: "USD",
		IsActive:     true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:    uuid.NewString(),
		AccountType:  domain.Expense,
		CurrencyCode: "USD",
		IsActive:     true,
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date:         time.Now(),
		Description:  "Test Journal Success",
		CurrencyCode: "USD",
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit},
			{AccountID: suite.liabilityAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Credit},
		},
	}

	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID:     suite.assetAccount,
		suite.liabilityAccount.AccountID: suite.liabilityAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.assetAccount.AccountID, suite.liabilityAccount.AccountID}).Return(accountsMap, nil).Once()

	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).Return(nil).Once()

	createdJournal, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(createdJournal)
	suite.NotEmpty(createdJournal.JournalID)
	suite.Equal(req.Description, createdJournal.Description)
	suite.Equal(domain.Posted, createdJournal.Status)
	suite.Equal(suite.userID, createdJournal.CreatedBy)
	suite.True(createdJournal.Amount.Equal(decimal.NewFromInt(100)))
	suite.Nil(createdJournal.SourceType)
	suite.Nil(createdJournal.Transactions)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date:         time.Now(),
		Description:  "Unbalanced Journal",
		CurrencyCode: "USD",
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit},
			{AccountID: suite.liabilityAccount.AccountID, Amount: decimal.NewFromInt(90), TransactionType: domain.Credit},
		},
	}

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_SingleEntry() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date:         time.Now(),
		Description:  "One Line",
		CurrencyCode: "USD",
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit},
		},
	}

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, services.ErrJournalMinEntries)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_SingleAccount() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Date:         time.Now(),
		Description:  "Same Account Both Sides",
		CurrencyCode: "USD",
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit},
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Credit},
		},
	}

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, services.ErrJournalMinAccounts)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.liabilityAccount
	inactive.IsActive = false

	req := dto.CreateJournalRequest{
		Date:         time.Now(),
		Description:  "Inactive Account",
		CurrencyCode: "USD",
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit},
			{AccountID: inactive.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Credit},
		},
	}

	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID: suite.assetAccount,
		inactive.AccountID:           inactive,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_CurrencyMismatch() {
	ctx := context.Background()
	eurAccount := suite.liabilityAccount
	eurAccount.CurrencyCode = "EUR"

	req := dto.CreateJournalRequest{
		Date:         time.Now(),
		Description:  "Currency Mismatch",
		CurrencyCode: "USD",
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit},
			{AccountID: eurAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Credit},
		},
	}

	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID: suite.assetAccount,
		eurAccount.AccountID:         eurAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateJournal(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, services.ErrCurrencyMismatch)
}

func (suite *JournalServiceTestSuite) TestRecordExpense_Success() {
	ctx := context.Background()
	req := dto.RecordExpenseRequest{
		LedgerAccountID:  suite.assetAccount.AccountID,
		ExpenseAccountID: suite.expenseAccount.AccountID,
		Amount:           decimal.NewFromFloat(250.75),
		Date:             time.Now(),
		Description:      "Office supplies",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.assetAccount.AccountID).Return(&suite.assetAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.expenseAccount.AccountID).Return(&suite.expenseAccount, nil).Once()

	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID:   suite.assetAccount,
		suite.expenseAccount.AccountID: suite.expenseAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	var savedTxns []domain.Transaction
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedTxns = args.Get(2).([]domain.Transaction)
		}).Return(nil).Once()

	journal, err := suite.service.RecordExpense(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.Require().NotNil(journal.SourceType)
	suite.Equal("EXPENSE", *journal.SourceType)
	suite.True(journal.Amount.Equal(req.Amount))

	suite.Require().Len(savedTxns, 2)
	suite.Equal(suite.expenseAccount.AccountID, savedTxns[0].AccountID)
	suite.Equal(domain.Debit, savedTxns[0].TransactionType)
	suite.Equal(suite.assetAccount.AccountID, savedTxns[1].AccountID)
	suite.Equal(domain.Credit, savedTxns[1].TransactionType)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestRecordExpense_LedgerNotAsset() {
	ctx := context.Background()
	req := dto.RecordExpenseRequest{
		LedgerAccountID:  suite.liabilityAccount.AccountID,
		ExpenseAccountID: suite.expenseAccount.AccountID,
		Amount:           decimal.NewFromInt(50),
		Date:             time.Now(),
		Description:      "Bad ledger",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.liabilityAccount.AccountID).Return(&suite.liabilityAccount, nil).Once()

	_, err := suite.service.RecordExpense(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestRecordIncome_Success() {
	ctx := context.Background()
	req := dto.RecordIncomeRequest{
		LedgerAccountID:  suite.assetAccount.AccountID,
		RevenueAccountID: suite.revenueAccount.AccountID,
		Amount:           decimal.NewFromInt(500),
		Date:             time.Now(),
		Description:      "Retainer received",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.assetAccount.AccountID).Return(&suite.assetAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.revenueAccount.AccountID).Return(&suite.revenueAccount, nil).Once()

	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID:   suite.assetAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).Return(nil).Once()

	journal, err := suite.service.RecordIncome(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal.SourceType)
	suite.Equal("INCOME", *journal.SourceType)
}

func (suite *JournalServiceTestSuite) TestRecordTransfer_SameAccount() {
	ctx := context.Background()
	req := dto.RecordTransferRequest{
		FromAccountID: suite.assetAccount.AccountID,
		ToAccountID:   suite.assetAccount.AccountID,
		Amount:        decimal.NewFromInt(100),
		Date:          time.Now(),
		Description:   "Self transfer",
	}

	_, err := suite.service.RecordTransfer(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestRecordTransfer_NonAssetRejected() {
	ctx := context.Background()
	req := dto.RecordTransferRequest{
		FromAccountID: suite.assetAccount.AccountID,
		ToAccountID:   suite.expenseAccount.AccountID,
		Amount:        decimal.NewFromInt(100),
		Date:          time.Now(),
		Description:   "Transfer to expense",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.assetAccount.AccountID).Return(&suite.assetAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.expenseAccount.AccountID).Return(&suite.expenseAccount, nil).Once()

	_, err := suite.service.RecordTransfer(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_Success() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.Journal{
		JournalID:    originalID,
		JournalDate:  time.Now().AddDate(0, 0, -1),
		Description:  "Original entry",
		CurrencyCode: "USD",
		Status:       domain.Posted,
		Amount:       decimal.NewFromInt(100),
	}
	originalTxns := []domain.Transaction{
		{TransactionID: uuid.NewString(), JournalID: originalID, AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit, CurrencyCode: "USD"},
		{TransactionID: uuid.NewString(), JournalID: originalID, AccountID: suite.liabilityAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Credit, CurrencyCode: "USD"},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, originalID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindTransactionsByJournalID", ctx, originalID).Return(originalTxns, nil).Once()

	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID:     suite.assetAccount,
		suite.liabilityAccount.AccountID: suite.liabilityAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	var savedJournal domain.Journal
	var savedTxns []domain.Transaction
	suite.mockJournalRepo.On("SaveReversalJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedJournal = args.Get(1).(domain.Journal)
			savedTxns = args.Get(2).([]domain.Transaction)
		}).Return(nil).Once()

	reversal, err := suite.service.ReverseJournal(ctx, originalID, dto.ReverseJournalRequest{Reason: "entered twice"}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Require().NotNil(reversal.OriginalJournalID)
	suite.Equal(originalID, *reversal.OriginalJournalID)
	suite.True(reversal.Amount.Equal(original.Amount))
	suite.Contains(savedJournal.Description, "Reversal of: Original entry")

	// The status flip rides inside SaveReversalJournal; the original's ID must
	// reach the repository on the journal itself.
	suite.Require().NotNil(savedJournal.OriginalJournalID)
	suite.Equal(originalID, *savedJournal.OriginalJournalID)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// Same accounts and amounts on opposite sides.
	suite.Require().Len(savedTxns, 2)
	suite.Equal(domain.Credit, savedTxns[0].TransactionType)
	suite.Equal(suite.assetAccount.AccountID, savedTxns[0].AccountID)
	suite.Equal(domain.Debit, savedTxns[1].TransactionType)
	suite.Equal(suite.liabilityAccount.AccountID, savedTxns[1].AccountID)

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_AlreadyReversed() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.Journal{
		JournalID: originalID,
		Status:    domain.Reversed,
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, originalID).Return(original, nil).Once()

	_, err := suite.service.ReverseJournal(ctx, originalID, dto.ReverseJournalRequest{Reason: "again"}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_OfReversalRejected() {
	ctx := context.Background()
	parentID := uuid.NewString()
	reversalID := uuid.NewString()
	reversal := &domain.Journal{
		JournalID:         reversalID,
		Status:            domain.Posted,
		OriginalJournalID: &parentID,
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, reversalID).Return(reversal, nil).Once()

	_, err := suite.service.ReverseJournal(ctx, reversalID, dto.ReverseJournalRequest{Reason: "undo the undo"}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_LostRaceReturnsConflict() {
	ctx := context.Background()
	originalID := uuid.NewString()
	original := &domain.Journal{
		JournalID:    originalID,
		JournalDate:  time.Now().AddDate(0, 0, -1),
		Description:  "Original entry",
		CurrencyCode: "USD",
		Status:       domain.Posted,
		Amount:       decimal.NewFromInt(100),
	}
	originalTxns := []domain.Transaction{
		{TransactionID: uuid.NewString(), JournalID: originalID, AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit, CurrencyCode: "USD"},
		{TransactionID: uuid.NewString(), JournalID: originalID, AccountID: suite.liabilityAccount.AccountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Credit, CurrencyCode: "USD"},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, originalID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindTransactionsByJournalID", ctx, originalID).Return(originalTxns, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.AnythingOfType("[]string")).Return(map[string]domain.Account{
		suite.assetAccount.AccountID:     suite.assetAccount,
		suite.liabilityAccount.AccountID: suite.liabilityAccount,
	}, nil).Once()

	// Another request reversed the journal between the read and the write; the
	// repository's guarded status flip reports the conflict.
	suite.mockJournalRepo.On("SaveReversalJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.service.ReverseJournal(ctx, originalID, dto.ReverseJournalRequest{Reason: "entered twice"}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_ReasonRequired() {
	ctx := context.Background()

	_, err := suite.service.ReverseJournal(ctx, uuid.NewString(), dto.ReverseJournalRequest{}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindJournalByID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetAccountBalance_Cached() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.assetAccount.AccountID).Return(&suite.assetAccount, nil).Once()

	balance, err := suite.service.GetAccountBalance(ctx, suite.assetAccount.AccountID, nil)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(1000)))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "GetAccountBalanceAsOf", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetAccountBalance_AsOfDate() {
	ctx := context.Background()
	asOf := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.assetAccount.AccountID).Return(&suite.assetAccount, nil).Once()
	suite.mockJournalRepo.On("GetAccountBalanceAsOf", ctx, suite.assetAccount.AccountID, asOf).Return(decimal.NewFromInt(250), nil).Once()

	balance, err := suite.service.GetAccountBalance(ctx, suite.assetAccount.AccountID, &asOf)

	suite.Require().NoError(err)
	// The historical balance comes from the dated line sum, not the cached 1000.
	suite.True(balance.Equal(decimal.NewFromInt(250)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetAccountBalance_AsOfUnknownAccount() {
	ctx := context.Background()
	asOf := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountBalance(ctx, accountID, &asOf)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "GetAccountBalanceAsOf", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_NotFound() {
	ctx := context.Background()
	journalID := uuid.NewString()

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetJournalByID(ctx, journalID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestGetAccountLedger_Defaults() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.assetAccount.AccountID).Return(&suite.assetAccount, nil).Once()
	suite.mockJournalRepo.On("ListAccountLedger", ctx, suite.assetAccount.AccountID, (*time.Time)(nil), (*time.Time)(nil), 50, 0).Return([]domain.Transaction{}, nil).Once()

	resp, err := suite.service.GetAccountLedger(ctx, suite.assetAccount.AccountID, dto.AccountLedgerParams{})

	suite.Require().NoError(err)
	suite.Equal(suite.assetAccount.AccountID, resp.AccountID)
	suite.True(resp.CurrentBalance.Equal(suite.assetAccount.Balance))
	suite.Empty(resp.Lines)
}

func (suite *JournalServiceTestSuite) TestGetAccountLedger_BackdatedLinesKeepDisplayOrder() {
	ctx := context.Background()
	accountID := suite.assetAccount.AccountID
	day1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	// The day-1 reversal was posted after the day-2 entry, so its CreatedAt is
	// latest while its journal date puts it second in the ledger. The repo
	// recomputes balances in date order; the response must preserve them.
	lines := []domain.Transaction{
		{TransactionID: "t1", JournalID: "j1", AccountID: accountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Debit, RunningBalance: decimal.NewFromInt(100), JournalDate: day1},
		{TransactionID: "t3", JournalID: "j3", AccountID: accountID, Amount: decimal.NewFromInt(100), TransactionType: domain.Credit, RunningBalance: decimal.Zero, JournalDate: day1, AuditFields: domain.AuditFields{CreatedAt: day2.AddDate(0, 0, 5)}},
		{TransactionID: "t2", JournalID: "j2", AccountID: accountID, Amount: decimal.NewFromInt(40), TransactionType: domain.Debit, RunningBalance: decimal.NewFromInt(40), JournalDate: day2},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(&suite.assetAccount, nil).Once()
	suite.mockJournalRepo.On("ListAccountLedger", ctx, accountID, (*time.Time)(nil), (*time.Time)(nil), 50, 0).Return(lines, nil).Once()

	resp, err := suite.service.GetAccountLedger(ctx, accountID, dto.AccountLedgerParams{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Lines, 3)
	suite.Equal("t1", resp.Lines[0].TransactionID)
	suite.Equal("t3", resp.Lines[1].TransactionID)
	suite.Equal("t2", resp.Lines[2].TransactionID)
	suite.True(resp.Lines[0].RunningBalance.Equal(decimal.NewFromInt(100)))
	suite.True(resp.Lines[1].RunningBalance.Equal(decimal.Zero))
	suite.True(resp.Lines[2].RunningBalance.Equal(decimal.NewFromInt(40)))
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
