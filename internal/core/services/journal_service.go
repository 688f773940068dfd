package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shopspring/decimal"
	"github.com/trustbooks/trust_ledger_app/internal/apperrors"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	portsrepo "github.com/trustbooks/trust_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/trustbooks/trust_ledger_app/internal/core/ports/services"
	"github.com/trustbooks/trust_ledger_app/internal/dto"
	"github.com/trustbooks/trust_ledger_app/internal/middleware"
	"github.com/trustbooks/trust_ledger_app/internal/utils/accounting"
)

var (
	ErrJournalUnbalanced  = errors.New("journal entries do not balance to zero")
	ErrJournalMinEntries  = errors.New("journal must have at least two transaction entries")
	ErrJournalMinAccounts = errors.New("journal must affect at least two different accounts")
	ErrAccountNotFound    = errors.New("account not found")
	ErrCurrencyMismatch   = errors.New("account currency does not match journal currency")
	ErrDescriptionMissing = errors.New("journal description is required")
)

// journalService provides core journal and transaction operations.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
	auditSink   portssvc.AuditSink
}

// NewJournalService creates a new JournalService. auditSink may be nil, in
// which case no audit events are emitted.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade, auditSink portssvc.AuditSink) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		auditSink:   auditSink,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// calculateJournalAmount computes the true economic value of a journal.
// For a balanced journal with equal debit and credit sides, the debit-side
// total represents the actual money movement.
func (s *journalService) calculateJournalAmount(transactions []domain.Transaction) decimal.Decimal {
	totalDebits := decimal.Zero
	for _, txn := range transactions {
		if txn.TransactionType == domain.Debit {
			totalDebits = totalDebits.Add(txn.Amount)
		}
	}
	return totalDebits
}

// emitAudit publishes an audit event if a sink is configured. Emission is
// best-effort; failures are logged and swallowed.
func (s *journalService) emitAudit(ctx context.Context, event domain.AuditEvent) {
	if s.auditSink == nil {
		return
	}
	if err := s.auditSink.Publish(ctx, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to publish audit event", slog.String("action", event.Action), slog.String("error", err.Error()))
	}
}

// fetchAndValidateAccounts loads the referenced accounts and checks that each
// exists, is active, and matches the journal currency. Returns the accounts
// keyed by ID.
func (s *journalService) fetchAndValidateAccounts(ctx context.Context, accountIDs []string, currencyCode string) (map[string]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	uniqueAccountIDs := uniqueStrings(accountIDs)
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueAccountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for journal creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		if acc.CurrencyCode != currencyCode {
			return nil, fmt.Errorf("%w: account currency %s does not match journal currency %s for account %s", ErrCurrencyMismatch, acc.CurrencyCode, currencyCode, id)
		}
	}

	return accountsMap, nil
}

// calculateBalanceChanges computes the net signed balance delta per account
// for the given transactions.
func calculateBalanceChanges(transactions []domain.Transaction, accountsMap map[string]domain.Account) (map[string]decimal.Decimal, error) {
	balanceChanges := make(map[string]decimal.Decimal)
	for _, txn := range transactions {
		acc, ok := accountsMap[txn.AccountID]
		if !ok {
			return nil, fmt.Errorf("internal error: account %s not found during balance calculation", txn.AccountID)
		}
		signedAmount, err := accounting.CalculateSignedAmount(txn, acc.AccountType)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate signed amount: %w", err)
		}
		balanceChanges[txn.AccountID] = balanceChanges[txn.AccountID].Add(signedAmount)
	}
	return balanceChanges, nil
}

// postJournal validates and persists a journal built from the given request,
// tagging it with the originating business event when sourceType is set.
func (s *journalService) postJournal(ctx context.Context, req dto.CreateJournalRequest, sourceType, sourceID *string, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// --- Basic Validation ---
	if len(req.Transactions) < 2 {
		return nil, ErrJournalMinEntries
	}

	// Check that transactions involve at least 2 different accounts
	accountSet := make(map[string]bool)
	for _, txn := range req.Transactions {
		accountSet[txn.AccountID] = true
	}
	if len(accountSet) < 2 {
		return nil, ErrJournalMinAccounts
	}

	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	// Prepare domain transactions from DTO
	domainTransactions := make([]domain.Transaction, len(req.Transactions))
	accountIDs := make([]string, 0, len(req.Transactions))
	for i, txnReq := range req.Transactions {
		if txnReq.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: transaction amount must be positive for account %s", apperrors.ErrValidation, txnReq.AccountID)
		}

		domainTransactions[i] = domain.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       journalID,
			AccountID:       txnReq.AccountID,
			Amount:          txnReq.Amount,
			TransactionType: txnReq.TransactionType,
			CurrencyCode:    req.CurrencyCode, // Use journal's currency
			Notes:           txnReq.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
			// RunningBalance will be calculated and set by the repository
		}
		accountIDs = append(accountIDs, txnReq.AccountID)
	}

	// Validate Balance (double-entry check)
	if err := accounting.ValidateJournalBalance(domainTransactions); err != nil {
		return nil, err
	}

	// --- Fetch Accounts and Validate Further ---
	accountsMap, err := s.fetchAndValidateAccounts(ctx, accountIDs, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	// --- Calculate Net Balance Changes for Accounts ---
	balanceChanges, err := calculateBalanceChanges(domainTransactions, accountsMap)
	if err != nil {
		logger.Error("Error calculating balance changes", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	// --- Persistence ---
	domainJournal := domain.Journal{
		JournalID:    journalID,
		JournalDate:  req.Date,
		Description:  req.Description,
		CurrencyCode: req.CurrencyCode,
		Status:       domain.Posted, // Default status
		SourceType:   sourceType,
		SourceID:     sourceID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	domainJournal.Amount = s.calculateJournalAmount(domainTransactions)

	// Pass balance changes to the repository method
	if err := s.journalRepo.SaveJournal(ctx, domainJournal, domainTransactions, balanceChanges); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	logger.Info("Journal created successfully", slog.String("journal_id", domainJournal.JournalID))
	s.emitAudit(ctx, domain.AuditEvent{
		UserID:     creatorUserID,
		Action:     "journal.create",
		EntityType: "journal",
		EntityID:   domainJournal.JournalID,
		Details:    map[string]any{"amount": domainJournal.Amount.String(), "description": domainJournal.Description},
		Timestamp:  now,
	})

	// Return the journal without transactions populated by default.
	// Caller can fetch transactions separately if needed.
	domainJournal.Transactions = nil
	return &domainJournal, nil
}

// CreateJournal creates a new journal entry with its transactions after validation.
// Implements portssvc.JournalSvcFacade
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	return s.postJournal(ctx, req, nil, nil, creatorUserID)
}

// RecordExpense posts the standard two-line expense shape: debit the expense
// account, credit the paying ledger account.
func (s *journalService) RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, creatorUserID string) (*domain.Journal, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	ledger, err := s.accountRepo.FindAccountByID(ctx, req.LedgerAccountID)
	if err != nil {
		return nil, err
	}
	if ledger.AccountType != domain.Asset {
		return nil, fmt.Errorf("%w: ledger account %s must be an ASSET account", apperrors.ErrValidation, req.LedgerAccountID)
	}
	expense, err := s.accountRepo.FindAccountByID(ctx, req.ExpenseAccountID)
	if err != nil {
		return nil, err
	}
	if expense.AccountType != domain.Expense {
		return nil, fmt.Errorf("%w: account %s must be an EXPENSE account", apperrors.ErrValidation, req.ExpenseAccountID)
	}

	journalReq := dto.CreateJournalRequest{
		Date:         req.Date,
		Description:  req.Description,
		CurrencyCode: ledger.CurrencyCode,
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: req.ExpenseAccountID, Amount: req.Amount, TransactionType: domain.Debit},
			{AccountID: req.LedgerAccountID, Amount: req.Amount, TransactionType: domain.Credit},
		},
	}
	sourceType := "EXPENSE"
	return s.postJournal(ctx, journalReq, &sourceType, req.CaseID, creatorUserID)
}

// RecordIncome posts the standard two-line income shape: debit the receiving
// ledger account, credit the revenue account.
func (s *journalService) RecordIncome(ctx context.Context, req dto.RecordIncomeRequest, creatorUserID string) (*domain.Journal, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	ledger, err := s.accountRepo.FindAccountByID(ctx, req.LedgerAccountID)
	if err != nil {
		return nil, err
	}
	if ledger.AccountType != domain.Asset {
		return nil, fmt.Errorf("%w: ledger account %s must be an ASSET account", apperrors.ErrValidation, req.LedgerAccountID)
	}
	revenue, err := s.accountRepo.FindAccountByID(ctx, req.RevenueAccountID)
	if err != nil {
		return nil, err
	}
	if revenue.AccountType != domain.Revenue {
		return nil, fmt.Errorf("%w: account %s must be a REVENUE account", apperrors.ErrValidation, req.RevenueAccountID)
	}

	journalReq := dto.CreateJournalRequest{
		Date:         req.Date,
		Description:  req.Description,
		CurrencyCode: ledger.CurrencyCode,
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: req.LedgerAccountID, Amount: req.Amount, TransactionType: domain.Debit},
			{AccountID: req.RevenueAccountID, Amount: req.Amount, TransactionType: domain.Credit},
		},
	}
	sourceType := "INCOME"
	return s.postJournal(ctx, journalReq, &sourceType, req.CaseID, creatorUserID)
}

// RecordTransfer posts the standard two-line transfer shape: debit the
// destination asset account, credit the source asset account.
func (s *journalService) RecordTransfer(ctx context.Context, req dto.RecordTransferRequest, creatorUserID string) (*domain.Journal, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: transfer source and destination accounts must differ", apperrors.ErrValidation)
	}

	from, err := s.accountRepo.FindAccountByID(ctx, req.FromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := s.accountRepo.FindAccountByID(ctx, req.ToAccountID)
	if err != nil {
		return nil, err
	}
	if from.AccountType != domain.Asset || to.AccountType != domain.Asset {
		return nil, fmt.Errorf("%w: transfers are only allowed between ASSET accounts", apperrors.ErrValidation)
	}

	journalReq := dto.CreateJournalRequest{
		Date:         req.Date,
		Description:  req.Description,
		CurrencyCode: from.CurrencyCode,
		Transactions: []dto.CreateTransactionRequest{
			{AccountID: req.ToAccountID, Amount: req.Amount, TransactionType: domain.Debit},
			{AccountID: req.FromAccountID, Amount: req.Amount, TransactionType: domain.Credit},
		},
	}
	sourceType := "TRANSFER"
	return s.postJournal(ctx, journalReq, &sourceType, nil, creatorUserID)
}

// GetJournalByID retrieves a specific journal entry with its transactions.
// Implements portssvc.JournalSvcFacade
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal by ID", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}

	transactions, err := s.journalRepo.FindTransactionsByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to fetch transactions for journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve transactions for journal %s: %w", journalID, apperrors.ErrInternal)
	}

	//add the journal specific details in the transactions
	for i := range transactions {
		transactions[i].JournalID = journalID
		transactions[i].JournalDate = journal.JournalDate
		transactions[i].JournalDescription = journal.Description
	}
	journal.Transactions = transactions

	logger.Debug("Journal and transactions retrieved successfully", slog.String("journal_id", journalID), slog.Int("transaction_count", len(transactions)))
	return journal, nil
}

// ListJournals retrieves a paginated list of journals.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	journals, nextToken, err := s.journalRepo.ListJournals(ctx, limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		logger.Error("Failed to list journals from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	journalResponses := make([]dto.JournalResponse, len(journals))
	for i := range journals {
		if params.IncludeTransactions {
			transactions, err := s.journalRepo.FindTransactionsByJournalID(ctx, journals[i].JournalID)
			if err != nil {
				logger.Warn("Failed to fetch transactions for journal", "journal_id", journals[i].JournalID, "error", err)
			} else {
				journals[i].Transactions = transactions
			}
		}
		journalResponses[i] = dto.ToJournalResponse(&journals[i])
	}

	resp := &dto.ListJournalsResponse{
		Journals:  journalResponses,
		NextToken: nextToken,
	}

	logger.Debug("Journals listed successfully", "count", len(journals))
	return resp, nil
}

// GetAccountBalance returns the balance of an account. Without asOf it serves
// the cached balance straight off the account row; with asOf it recomputes the
// balance from journal lines dated on or before that date, so historical
// balances survive backdated postings and reversals.
func (s *journalService) GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if asOf == nil {
		return account.Balance, nil
	}
	return s.journalRepo.GetAccountBalanceAsOf(ctx, accountID, *asOf)
}

// GetAccountLedger retrieves the transaction history of an account with
// running balances, oldest first.
func (s *journalService) GetAccountLedger(ctx context.Context, accountID string, params dto.AccountLedgerParams) (*dto.AccountLedgerResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	transactions, err := s.journalRepo.ListAccountLedger(ctx, accountID, params.StartDate, params.EndDate, limit, offset)
	if err != nil {
		logger.Error("Failed to list account ledger from repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve account ledger: %w", err)
	}

	resp := &dto.AccountLedgerResponse{
		AccountID:      accountID,
		CurrentBalance: account.Balance,
		Lines:          dto.ToLedgerLineResponses(transactions),
	}

	logger.Debug("Account ledger retrieved", slog.String("account_id", accountID), slog.Int("line_count", len(transactions)))
	return resp, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}

// validateReverseJournalAndGetOriginal fetches the journal to reverse and
// checks it is eligible.
func (s *journalService) validateReverseJournalAndGetOriginal(ctx context.Context, journalID string) (*domain.Journal, []domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	originalJournal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Original journal not found for reversal", "journal_id", journalID)
			return nil, nil, apperrors.ErrNotFound
		}
		logger.Error("Failed to fetch original journal for reversal", "error", err)
		return nil, nil, fmt.Errorf("failed to retrieve original journal: %w", err)
	}

	if originalJournal.Status != domain.Posted {
		logger.Warn("Attempted to reverse non-posted journal", "status", originalJournal.Status)
		return nil, nil, fmt.Errorf("%w: journal status is %s, expected POSTED", apperrors.ErrConflict, originalJournal.Status)
	}

	// A reversal entry cannot itself be reversed. Post a fresh correcting
	// journal instead.
	if originalJournal.IsReversal() {
		logger.Warn("Attempted to reverse a journal that is already a reversal", "journal_id", journalID)
		return nil, nil, fmt.Errorf("%w: cannot reverse a journal that is already a reversal", apperrors.ErrConflict)
	}

	originalTransactions, err := s.journalRepo.FindTransactionsByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to fetch original transactions for reversal", "error", err)
		return nil, nil, fmt.Errorf("failed to retrieve original transactions: %w", err)
	}
	return originalJournal, originalTransactions, nil
}

// ReverseJournal creates a new journal entry that reverses a previously posted journal.
// The original is marked REVERSED and linked to the new entry; both writes
// happen in one database transaction.
func (s *journalService) ReverseJournal(ctx context.Context, journalID string, req dto.ReverseJournalRequest, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Reason == "" {
		return nil, fmt.Errorf("%w: reversal reason is required", apperrors.ErrValidation)
	}

	originalJournal, originalTransactions, err := s.validateReverseJournalAndGetOriginal(ctx, journalID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newJournalID := uuid.NewString()

	reversingJournal := domain.Journal{
		JournalID:         newJournalID,
		JournalDate:       originalJournal.JournalDate,
		Description:       fmt.Sprintf("Reversal of: %s (%s)", originalJournal.Description, req.Reason),
		CurrencyCode:      originalJournal.CurrencyCode,
		Status:            domain.Posted,
		OriginalJournalID: &originalJournal.JournalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Create reversed transaction domain objects: same accounts and amounts,
	// opposite sides.
	reversingTransactions := make([]domain.Transaction, len(originalTransactions))
	accIDList := make([]string, 0, len(originalTransactions))
	for i, origTx := range originalTransactions {
		accIDList = append(accIDList, origTx.AccountID)
		newTxType := domain.Credit
		if origTx.TransactionType == domain.Credit {
			newTxType = domain.Debit
		}
		reversingTransactions[i] = domain.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       newJournalID,
			AccountID:       origTx.AccountID,
			Amount:          origTx.Amount,
			TransactionType: newTxType,
			CurrencyCode:    origTx.CurrencyCode,
			Notes:           origTx.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accIDList))
	if err != nil {
		logger.Error("Failed to fetch accounts for reversal balance calculation", "error", err)
		return nil, fmt.Errorf("failed to get account details for reversal: %w", err)
	}

	reversingJournal.Amount = originalJournal.Amount

	balanceChanges, err := calculateBalanceChanges(reversingTransactions, accountsMap)
	if err != nil {
		logger.Error("Failed to calculate balance changes for reversal", "error", err)
		return nil, fmt.Errorf("failed to calculate signed amounts for reversal: %w", err)
	}

	// The reversing journal and the original's status flip commit together;
	// the repository rejects the flip with ErrConflict if the original is no
	// longer POSTED.
	if err := s.journalRepo.SaveReversalJournal(ctx, reversingJournal, reversingTransactions, balanceChanges); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Journal already reversed by a concurrent request", "journal_id", originalJournal.JournalID)
			return nil, fmt.Errorf("%w: journal %s has already been reversed", apperrors.ErrConflict, originalJournal.JournalID)
		}
		logger.Error("Failed to save reversing journal entry", "original_journal_id", originalJournal.JournalID, "reversing_journal_id", newJournalID, "error", err)
		return nil, fmt.Errorf("failed to save reversing journal: %w", err)
	}

	logger.Info("Journal reversed successfully", "reversing_journal_id", newJournalID)
	s.emitAudit(ctx, domain.AuditEvent{
		UserID:     userID,
		Action:     "journal.reverse",
		EntityType: "journal",
		EntityID:   originalJournal.JournalID,
		Details:    map[string]any{"reversing_journal_id": newJournalID, "reason": req.Reason},
		Timestamp:  now,
	})

	reversingJournal.Transactions = nil
	return &reversingJournal, nil
}
