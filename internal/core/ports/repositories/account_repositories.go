package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs
	// are simply absent from the map; callers decide whether that is an error.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of active accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount inserts a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountLocker defines the in-transaction operations used by posting paths.
// Both methods must be called with an open transaction; the FOR UPDATE lock
// taken by FindAccountsByIDsForUpdate is what closes the read-then-write
// race on concurrent fund checks.
type AccountLocker interface {
	// FindAccountsByIDsForUpdate retrieves accounts by ID and locks the rows
	// until the transaction ends. Fails with ErrNotFound if any ID is missing.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies signed balance deltas to the cached
	// account balances within the given transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLocker
}
