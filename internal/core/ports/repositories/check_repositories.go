package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
)

// CheckQueueReader defines read operations for disbursement queue items.
type CheckQueueReader interface {
	// FindCheckItemByID retrieves a queue item by its unique identifier.
	FindCheckItemByID(ctx context.Context, checkItemID string) (*domain.CheckQueueItem, error)

	// ListCheckItems retrieves a paginated list of queue items, optionally
	// filtered by status, using token-based pagination.
	ListCheckItems(ctx context.Context, status *domain.CheckItemStatus, limit int, nextToken *string) ([]domain.CheckQueueItem, *string, error)

	// IsCheckNumberInUse reports whether the check number is taken on the
	// given ledger by a non-cancelled queue item (other than excludeItemID)
	// or by a registered check.
	IsCheckNumberInUse(ctx context.Context, ledgerAccountID, checkNumber, excludeItemID string) (bool, error)
}

// CheckQueueWriter defines write operations for disbursement queue items.
type CheckQueueWriter interface {
	// SaveCheckItem inserts a new queue item.
	SaveCheckItem(ctx context.Context, item domain.CheckQueueItem) error

	// UpdateCheckItem persists status, timestamps and cancel-reason changes
	// for the non-financial transitions (preview, print, cancel).
	UpdateCheckItem(ctx context.Context, item domain.CheckQueueItem) error

	// DeleteCheckItem removes a queue item. The repository refuses to delete
	// a registered item.
	DeleteCheckItem(ctx context.Context, checkItemID string) error

	// RegisterCheckItem performs the confirm transition atomically: locks the
	// paying account, re-validates funds against the locked balance (failing
	// with ErrInsufficientFunds and no writes), inserts the registered check,
	// posts the backing journal with its lines and balance updates, and marks
	// the queue item confirmed and registered. Any failure rolls back the
	// whole transaction.
	RegisterCheckItem(ctx context.Context, item domain.CheckQueueItem, check domain.RegisteredCheck, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error
}

// RegisteredCheckReader defines read operations for registered checks.
type RegisteredCheckReader interface {
	// FindRegisteredCheckByID retrieves a registered check by its identifier.
	FindRegisteredCheckByID(ctx context.Context, checkID string) (*domain.RegisteredCheck, error)
}

// CheckRepositoryFacade combines all check-related repository interfaces.
type CheckRepositoryFacade interface {
	CheckQueueReader
	CheckQueueWriter
	RegisteredCheckReader
}
