package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	"github.com/trustbooks/trust_ledger_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific journal by its ID, including its lines.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournal persists a new balanced journal with its transactions.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)

	// RecordExpense posts a two-line journal debiting an expense account and
	// crediting a ledger asset account.
	RecordExpense(ctx context.Context, req dto.RecordExpenseRequest, creatorUserID string) (*domain.Journal, error)

	// RecordIncome posts a two-line journal debiting a ledger asset account and
	// crediting a revenue account.
	RecordIncome(ctx context.Context, req dto.RecordIncomeRequest, creatorUserID string) (*domain.Journal, error)

	// RecordTransfer posts a two-line journal moving funds between two asset accounts.
	RecordTransfer(ctx context.Context, req dto.RecordTransferRequest, creatorUserID string) (*domain.Journal, error)

	// ReverseJournal creates a reversal journal for an existing posted journal.
	ReverseJournal(ctx context.Context, journalID string, req dto.ReverseJournalRequest, userID string) (*domain.Journal, error)
}

// LedgerReaderSvc defines read operations for account-level ledger views
type LedgerReaderSvc interface {
	// GetAccountLedger retrieves the transaction history of an account with
	// running balances.
	GetAccountLedger(ctx context.Context, accountID string, params dto.AccountLedgerParams) (*dto.AccountLedgerResponse, error)
}

// JournalCalculatorSvc defines calculation operations related to journals
type JournalCalculatorSvc interface {
	// GetAccountBalance returns the balance of an account. With a nil asOf it
	// returns the cached current balance; otherwise it recomputes the balance
	// from journal lines dated on or before asOf.
	GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	LedgerReaderSvc
	JournalCalculatorSvc
}
