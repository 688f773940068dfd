package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
)

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals using token-based
	// pagination. It returns the journals, a token for the next page, and an error.
	ListJournals(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal data.
type JournalWriter interface {
	// SaveJournal persists a journal and its lines, locking the affected
	// accounts and updating their cached balances, all within one database
	// transaction.
	SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// SaveReversalJournal persists a reversing journal the same way SaveJournal
	// does and, in the same database transaction, flips the original journal
	// (journal.OriginalJournalID) from POSTED to REVERSED with a link back to
	// the new entry. Returns ErrConflict when the original is no longer POSTED,
	// so a journal can never be reversed twice.
	SaveReversalJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error
}

// TransactionReader defines read operations for journal-line data.
type TransactionReader interface {
	// FindTransactionsByJournalID retrieves all lines of a single journal.
	FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error)

	// ListAccountLedger retrieves an account's lines oldest-first within an
	// optional date window. Running balances are computed over the account's
	// full history in display order (journal date, journal id, transaction
	// id), so backdated postings and reversals never break monotonicity and
	// lines before the window still count toward each balance.
	ListAccountLedger(ctx context.Context, accountID string, start, end *time.Time, limit, offset int) ([]domain.Transaction, error)

	// GetAccountBalanceAsOf computes the signed sum of an account's committed
	// lines up to and including asOf.
	GetAccountBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	TransactionReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction
// management capabilities.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
