package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/trustbooks/trust_ledger_app/internal/apperrors"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	portsrepo "github.com/trustbooks/trust_ledger_app/internal/core/ports/repositories"
	"github.com/trustbooks/trust_ledger_app/internal/models"
	"github.com/trustbooks/trust_ledger_app/internal/utils/accounting"
	"github.com/trustbooks/trust_ledger_app/internal/utils/mapping"
	"github.com/trustbooks/trust_ledger_app/internal/utils/pagination"
)

type PgxCheckRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxCheckRepository creates a new repository for disbursement queue and
// registered check data.
func newPgxCheckRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.CheckRepositoryFacade {
	return &PgxCheckRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxCheckRepository implements portsrepo.CheckRepositoryFacade
var _ portsrepo.CheckRepositoryFacade = (*PgxCheckRepository)(nil)

const checkItemColumns = `check_item_id, ledger_account_id, expense_account_id, payee_entity_id, case_id,
		       check_number, amount, memo, check_date, amount_words, payee_address, status,
		       is_registered, registered_check_id, previewed_at, printed_at, cancel_reason,
		       created_at, created_by, last_updated_at, last_updated_by`

func scanCheckItemRow(row pgx.Row) (*models.CheckQueueItem, error) {
	var m models.CheckQueueItem
	var caseID, registeredCheckID, cancelReason sql.NullString

	err := row.Scan(
		&m.CheckItemID,
		&m.LedgerAccountID,
		&m.ExpenseAccountID,
		&m.PayeeEntityID,
		&caseID,
		&m.CheckNumber,
		&m.Amount,
		&m.Memo,
		&m.CheckDate,
		&m.AmountWords,
		&m.PayeeAddress,
		&m.Status,
		&m.IsRegistered,
		&registeredCheckID,
		&m.PreviewedAt,
		&m.PrintedAt,
		&cancelReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if caseID.Valid {
		m.CaseID = &caseID.String
	}
	if registeredCheckID.Valid {
		m.RegisteredCheckID = &registeredCheckID.String
	}
	if cancelReason.Valid {
		m.CancelReason = cancelReason.String
	}
	return &m, nil
}

// SaveCheckItem inserts a new queue item.
func (r *PgxCheckRepository) SaveCheckItem(ctx context.Context, item domain.CheckQueueItem) error {
	m := mapping.ToModelCheckQueueItem(item)

	query := `
		INSERT INTO check_queue_items (
			check_item_id, ledger_account_id, expense_account_id, payee_entity_id, case_id,
			check_number, amount, memo, check_date, amount_words, payee_address, status,
			is_registered, registered_check_id, previewed_at, printed_at, cancel_reason,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`

	_, err := r.Pool.Exec(ctx, query,
		m.CheckItemID,
		m.LedgerAccountID,
		m.ExpenseAccountID,
		m.PayeeEntityID,
		m.CaseID,
		m.CheckNumber,
		m.Amount,
		m.Memo,
		m.CheckDate,
		m.AmountWords,
		m.PayeeAddress,
		m.Status,
		m.IsRegistered,
		m.RegisteredCheckID,
		m.PreviewedAt,
		m.PrintedAt,
		m.CancelReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: check item %s", apperrors.ErrDuplicate, m.CheckItemID)
		}
		return fmt.Errorf("failed to save check item %s: %w", m.CheckItemID, err)
	}
	return nil
}

// UpdateCheckItem persists the mutable fields of a queue item for the
// non-financial transitions.
func (r *PgxCheckRepository) UpdateCheckItem(ctx context.Context, item domain.CheckQueueItem) error {
	m := mapping.ToModelCheckQueueItem(item)

	query := `
		UPDATE check_queue_items
		SET check_number = $2, amount = $3, memo = $4, check_date = $5, amount_words = $6,
		    payee_address = $7, status = $8, previewed_at = $9, printed_at = $10,
		    cancel_reason = $11, last_updated_at = $12, last_updated_by = $13
		WHERE check_item_id = $1 AND is_registered = FALSE;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CheckItemID,
		m.CheckNumber,
		m.Amount,
		m.Memo,
		m.CheckDate,
		m.AmountWords,
		m.PayeeAddress,
		m.Status,
		m.PreviewedAt,
		m.PrintedAt,
		m.CancelReason,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to update check item %s: %w", m.CheckItemID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the item doesn't exist or it already registered a check.
		existing, findErr := r.FindCheckItemByID(ctx, m.CheckItemID)
		if findErr != nil {
			return findErr
		}
		if existing.IsRegistered {
			return fmt.Errorf("%w: check item %s", apperrors.ErrAlreadyRegistered, m.CheckItemID)
		}
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteCheckItem removes a queue item. Registered items are refused.
func (r *PgxCheckRepository) DeleteCheckItem(ctx context.Context, checkItemID string) error {
	query := `DELETE FROM check_queue_items WHERE check_item_id = $1 AND is_registered = FALSE;`

	cmdTag, err := r.Pool.Exec(ctx, query, checkItemID)
	if err != nil {
		return fmt.Errorf("failed to delete check item %s: %w", checkItemID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		existing, findErr := r.FindCheckItemByID(ctx, checkItemID)
		if findErr != nil {
			return findErr
		}
		if existing.IsRegistered {
			return fmt.Errorf("%w: check item %s", apperrors.ErrCannotDeleteRegistered, checkItemID)
		}
		return apperrors.ErrNotFound
	}

	return nil
}

// FindCheckItemByID retrieves a queue item by its ID.
func (r *PgxCheckRepository) FindCheckItemByID(ctx context.Context, checkItemID string) (*domain.CheckQueueItem, error) {
	query := `SELECT ` + checkItemColumns + ` FROM check_queue_items WHERE check_item_id = $1;`

	m, err := scanCheckItemRow(r.Pool.QueryRow(ctx, query, checkItemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find check item by ID %s: %w", checkItemID, err)
	}

	item := mapping.ToDomainCheckQueueItem(*m)
	return &item, nil
}

// ListCheckItems retrieves a paginated list of queue items, optionally
// filtered by status, using token-based pagination over (check_date, created_at).
func (r *PgxCheckRepository) ListCheckItems(ctx context.Context, status *domain.CheckItemStatus, limit int, nextToken *string) ([]domain.CheckQueueItem, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + checkItemColumns + ` FROM check_queue_items`

	filterClause := ``
	args := []interface{}{}
	if status != nil {
		args = append(args, *status)
		filterClause = `WHERE status = $1`
	}

	orderByClause := `ORDER BY check_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		args = append(args, lastDate, lastCreatedAt)
		cursorClause := `(check_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
		if filterClause == "" {
			filterClause = `WHERE ` + cursorClause
		} else {
			filterClause += ` AND ` + cursorClause
		}
	}

	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query check items", err)
	}
	defer rows.Close()

	modelItems := make([]models.CheckQueueItem, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanCheckItemRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan check item row", scanErr)
		}
		modelItems = append(modelItems, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating check item rows", err)
	}

	var nextTokenVal *string
	results := modelItems
	if len(modelItems) > limit {
		lastItem := modelItems[limit-1]
		newToken := pagination.EncodeToken(lastItem.CheckDate, lastItem.CreatedAt)
		nextTokenVal = &newToken
		results = modelItems[:limit]
	}

	items := make([]domain.CheckQueueItem, len(results))
	for i, m := range results {
		items[i] = mapping.ToDomainCheckQueueItem(m)
	}

	return items, nextTokenVal, nil
}

// IsCheckNumberInUse reports whether the check number is taken on the given
// ledger by a live queue item (other than excludeItemID) or by a registered check.
func (r *PgxCheckRepository) IsCheckNumberInUse(ctx context.Context, ledgerAccountID, checkNumber, excludeItemID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM check_queue_items
			WHERE ledger_account_id = $1 AND check_number = $2
			  AND status != 'CANCELLED' AND check_item_id != $3
		) OR EXISTS (
			SELECT 1 FROM registered_checks
			WHERE ledger_account_id = $1 AND check_number = $2 AND status != 'VOID'
		);
	`

	var inUse bool
	if err := r.Pool.QueryRow(ctx, query, ledgerAccountID, checkNumber, excludeItemID).Scan(&inUse); err != nil {
		return false, fmt.Errorf("failed to check for duplicate check number: %w", err)
	}
	return inUse, nil
}

// RegisterCheckItem performs the confirm transition atomically: it locks the
// affected accounts, re-validates funds against the locked ledger balance,
// inserts the registered check and its backing journal with running balances,
// applies the balance deltas, and flips the queue item to CONFIRMED. A funds
// failure returns ErrInsufficientFunds with no writes.
func (r *PgxCheckRepository) RegisterCheckItem(ctx context.Context, item domain.CheckQueueItem, check domain.RegisteredCheck, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	now := journal.CreatedAt
	userID := journal.CreatedBy

	// 1. Lock all affected accounts. The lock on the paying ledger account is
	// what serializes concurrent confirms against the same funds.
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for check registration", err)
	}

	// 2. Hard funds check against the locked balance.
	ledgerAcc, ok := lockedAccounts[item.LedgerAccountID]
	if !ok {
		return fmt.Errorf("%w: ledger account %s", apperrors.ErrNotFound, item.LedgerAccountID)
	}
	if ledgerAcc.Balance.LessThan(check.Amount) {
		return fmt.Errorf("%w: account %s balance %s is less than check amount %s",
			apperrors.ErrInsufficientFunds, item.LedgerAccountID, ledgerAcc.Balance.String(), check.Amount.String())
	}

	// 3. Insert the backing journal.
	modelJournal := mapping.ToModelJournal(journal)
	journalQuery := `
		INSERT INTO journals (
			journal_id, journal_date, description, currency_code, status,
			original_journal_id, reversing_journal_id, source_type, source_id, amount,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, journalQuery,
		modelJournal.JournalID,
		modelJournal.JournalDate,
		modelJournal.Description,
		modelJournal.CurrencyCode,
		modelJournal.Status,
		modelJournal.OriginalJournalID,
		modelJournal.ReversingJournalID,
		modelJournal.SourceType,
		modelJournal.SourceID,
		modelJournal.Amount,
		modelJournal.CreatedAt,
		modelJournal.CreatedBy,
		modelJournal.LastUpdatedAt,
		modelJournal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert disbursement journal "+modelJournal.JournalID, err)
	}

	// 4. Apply balance deltas to the locked accounts.
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances for check registration", err)
	}

	// 5. Insert transaction lines with running balances.
	currentRunningBalances := make(map[string]decimal.Decimal)
	for accID, lockedAcc := range lockedAccounts {
		currentRunningBalances[accID] = lockedAcc.Balance
	}

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].TransactionID < transactions[j].TransactionID
	})

	batch := &pgx.Batch{}
	txnQuery := `
		INSERT INTO transactions (transaction_id, journal_id, account_id, amount, transaction_type, currency_code, notes, created_at, created_by, last_updated_at, last_updated_by, running_balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, txn := range transactions {
		modelTxn := mapping.ToModelTransaction(txn)
		lockedAccount, ok := lockedAccounts[txn.AccountID]
		if !ok {
			return apperrors.NewAppError(500, "internal error: locked account "+txn.AccountID+" not found during check registration", nil)
		}

		signedAmount, err := accounting.CalculateSignedAmount(txn, lockedAccount.AccountType)
		if err != nil {
			return apperrors.NewAppError(500, "failed to calculate signed amount for transaction "+txn.TransactionID, err)
		}

		newRunningBalance := currentRunningBalances[txn.AccountID].Add(signedAmount)
		modelTxn.RunningBalance = newRunningBalance
		currentRunningBalances[txn.AccountID] = newRunningBalance

		batch.Queue(txnQuery,
			modelTxn.TransactionID,
			modelTxn.JournalID,
			modelTxn.AccountID,
			modelTxn.Amount,
			modelTxn.TransactionType,
			modelTxn.CurrencyCode,
			modelTxn.Notes,
			modelTxn.CreatedAt,
			modelTxn.CreatedBy,
			modelTxn.LastUpdatedAt,
			modelTxn.LastUpdatedBy,
			modelTxn.RunningBalance,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute transaction batch for journal "+modelJournal.JournalID, err)
	}

	// 6. Insert the registered check.
	modelCheck := mapping.ToModelRegisteredCheck(check)
	checkQuery := `
		INSERT INTO registered_checks (
			check_id, ledger_account_id, payee_entity_id, case_id, check_number,
			amount, memo, check_date, journal_id, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, checkQuery,
		modelCheck.CheckID,
		modelCheck.LedgerAccountID,
		modelCheck.PayeeEntityID,
		modelCheck.CaseID,
		modelCheck.CheckNumber,
		modelCheck.Amount,
		modelCheck.Memo,
		modelCheck.CheckDate,
		modelCheck.JournalID,
		modelCheck.Status,
		modelCheck.CreatedAt,
		modelCheck.CreatedBy,
		modelCheck.LastUpdatedAt,
		modelCheck.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: number %s on account %s", apperrors.ErrDuplicateCheckNumber, modelCheck.CheckNumber, modelCheck.LedgerAccountID)
		}
		return apperrors.NewAppError(500, "failed to insert registered check "+modelCheck.CheckID, err)
	}

	// 7. Flip the queue item to CONFIRMED. The is_registered guard refuses a
	// concurrent double confirm.
	m := mapping.ToModelCheckQueueItem(item)
	confirmQuery := `
		UPDATE check_queue_items
		SET check_number = $2, status = $3, is_registered = TRUE, registered_check_id = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE check_item_id = $1 AND is_registered = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, confirmQuery,
		m.CheckItemID,
		m.CheckNumber,
		m.Status,
		m.RegisteredCheckID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to confirm check item "+m.CheckItemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: check item %s", apperrors.ErrAlreadyRegistered, m.CheckItemID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit check registration for item "+m.CheckItemID, err)
	}

	return nil
}

// FindRegisteredCheckByID retrieves a registered check by its identifier.
func (r *PgxCheckRepository) FindRegisteredCheckByID(ctx context.Context, checkID string) (*domain.RegisteredCheck, error) {
	query := `
		SELECT check_id, ledger_account_id, payee_entity_id, case_id, check_number,
		       amount, memo, check_date, journal_id, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM registered_checks
		WHERE check_id = $1;
	`

	var m models.RegisteredCheck
	var caseID sql.NullString

	err := r.Pool.QueryRow(ctx, query, checkID).Scan(
		&m.CheckID,
		&m.LedgerAccountID,
		&m.PayeeEntityID,
		&caseID,
		&m.CheckNumber,
		&m.Amount,
		&m.Memo,
		&m.CheckDate,
		&m.JournalID,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find registered check by ID %s: %w", checkID, err)
	}

	if caseID.Valid {
		m.CaseID = &caseID.String
	}

	check := mapping.ToDomainRegisteredCheck(m)
	return &check, nil
}
