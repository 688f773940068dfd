package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
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

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal and transaction data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// SaveJournal saves a journal, updates account balances, and saves associated transactions within a DB transaction.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	// Ignored if the transaction commits successfully
	defer r.Rollback(ctx, tx)

	if err := r.saveJournalInTx(ctx, tx, journal, transactions, balanceChanges); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction for journal "+journal.JournalID, err)
	}

	return nil
}

// SaveReversalJournal persists a reversing journal and flips the original from
// POSTED to REVERSED in the same database transaction, so a crash can never
// leave a reversal posted without the original marked. The guarded status flip
// runs first; its row lock on the original serializes concurrent reversals of
// the same journal.
func (r *PgxJournalRepository) SaveReversalJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	if journal.OriginalJournalID == nil {
		return apperrors.NewAppError(500, "reversing journal "+journal.JournalID+" has no original journal ID", nil)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	flipQuery := `
		UPDATE journals
		SET status = 'REVERSED',
		    reversing_journal_id = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE journal_id = $1 AND status = 'POSTED';
	`
	cmdTag, err := tx.Exec(ctx, flipQuery,
		*journal.OriginalJournalID,
		journal.JournalID,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal "+*journal.OriginalJournalID+" reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if err := r.saveJournalInTx(ctx, tx, journal, transactions, balanceChanges); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction for journal "+journal.JournalID, err)
	}

	return nil
}

// saveJournalInTx inserts the journal row, locks and updates the affected
// accounts, and batch-inserts the lines with running balances, all on the
// caller's transaction.
func (r *PgxJournalRepository) saveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	accountRepo := r.accountRepo

	now := journal.CreatedAt // Use consistent time from journal
	userID := journal.CreatedBy

	// 1. Insert the Journal entry using the transaction tx
	modelJournal := mapping.ToModelJournal(journal)
	journalQuery := `
		INSERT INTO journals (
			journal_id, journal_date, description, currency_code, status,
			original_journal_id, reversing_journal_id, source_type, source_id, amount,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, journalQuery,
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
		return apperrors.NewAppError(500, "failed to insert journal "+modelJournal.JournalID, err)
	}

	// 2. Lock accounts and get current balances
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	lockedAccounts, err := accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		// Error includes ErrNotFound if any account is missing
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	// 3. Update account balances using the transaction tx
	if err := accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	// 4. Prepare and Insert Transaction entries with calculated running balances
	batch := &pgx.Batch{}
	txnQuery := `
		INSERT INTO transactions (transaction_id, journal_id, account_id, amount, transaction_type, currency_code, notes, created_at, created_by, last_updated_at, last_updated_by, running_balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	// Running balance calculation starts from the balance before this
	// journal's changes, per account.
	currentRunningBalances := make(map[string]decimal.Decimal)
	for accID, lockedAcc := range lockedAccounts {
		currentRunningBalances[accID] = lockedAcc.Balance
	}

	// Sort by TransactionID for deterministic order within the journal
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].TransactionID < transactions[j].TransactionID
	})

	for _, txn := range transactions {
		modelTxn := mapping.ToModelTransaction(txn)
		modelTxn.CreatedAt = now
		modelTxn.LastUpdatedAt = now
		modelTxn.CreatedBy = userID
		modelTxn.LastUpdatedBy = userID

		accountID := txn.AccountID
		lockedAccount, ok := lockedAccounts[accountID]
		if !ok {
			// Should not happen, the locking step finds all accounts
			return apperrors.NewAppError(500, "internal error: locked account "+accountID+" not found during transaction processing", nil)
		}

		signedAmount, err := accounting.CalculateSignedAmount(txn, lockedAccount.AccountType)
		if err != nil {
			return apperrors.NewAppError(500, "failed to calculate signed amount for transaction "+txn.TransactionID, err)
		}

		newRunningBalance := currentRunningBalances[accountID].Add(signedAmount)
		modelTxn.RunningBalance = newRunningBalance
		currentRunningBalances[accountID] = newRunningBalance

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

	// 5. Send the batch of transaction inserts
	br := tx.SendBatch(ctx, batch)
	err = br.Close() // Close the batch results to check for errors in each command
	if err != nil {
		return apperrors.NewAppError(500, "failed to execute transaction batch for journal "+modelJournal.JournalID, err)
	}

	return nil
}

const journalColumns = `journal_id, journal_date, description, currency_code, status,
		       original_journal_id, reversing_journal_id, source_type, source_id, amount,
		       created_at, created_by, last_updated_at, last_updated_by`

// signedAmountSQL maps a transaction line to its signed effect on the account
// balance. Debits grow ASSET and EXPENSE accounts; credits grow the rest.
// Expects transactions aliased t and accounts aliased a.
const signedAmountSQL = `CASE
				WHEN (a.account_type IN ('ASSET', 'EXPENSE') AND t.transaction_type = 'DEBIT')
				  OR (a.account_type IN ('LIABILITY', 'EQUITY', 'REVENUE') AND t.transaction_type = 'CREDIT')
				THEN t.amount
				ELSE -t.amount
			END`

func scanJournalRow(row pgx.Row) (*models.Journal, error) {
	var m models.Journal
	var originalID, reversingID, sourceType, sourceID sql.NullString

	err := row.Scan(
		&m.JournalID,
		&m.JournalDate,
		&m.Description,
		&m.CurrencyCode,
		&m.Status,
		&originalID,
		&reversingID,
		&sourceType,
		&sourceID,
		&m.Amount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if originalID.Valid {
		m.OriginalJournalID = &originalID.String
	}
	if reversingID.Valid {
		m.ReversingJournalID = &reversingID.String
	}
	if sourceType.Valid {
		m.SourceType = &sourceType.String
	}
	if sourceID.Valid {
		m.SourceID = &sourceID.String
	}
	return &m, nil
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`

	m, err := scanJournalRow(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal by ID "+journalID, err)
	}

	domainJournal := mapping.ToDomainJournal(*m)
	return &domainJournal, nil
}

// FindTransactionsByJournalID retrieves all transactions associated with a specific journal.
func (r *PgxJournalRepository) FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, journal_id, account_id, amount, transaction_type, currency_code, notes, created_at, created_by, last_updated_at, last_updated_by, running_balance
		FROM transactions
		WHERE journal_id = $1
		ORDER BY transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for journal "+journalID, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(
			&t.TransactionID,
			&t.JournalID,
			&t.AccountID,
			&t.Amount,
			&t.TransactionType,
			&t.CurrencyCode,
			&t.Notes,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
			&t.RunningBalance,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row for journal "+journalID, err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows for journal "+journalID, err)
	}

	return mapping.ToDomainTransactionSlice(transactions), nil
}

// ListJournals retrieves a paginated list of journals using token-based pagination.
// It returns the list of journals, a token for the next page (if any), and an error.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + journalColumns + ` FROM journals`

	// Conditionally exclude reversed and reversing journals
	filterClause := ``
	if !includeReversals {
		filterClause = `WHERE status != 'REVERSED' AND reversing_journal_id IS NULL AND original_journal_id IS NULL`
	}

	// Ordering must be stable: journal_date DESC with created_at DESC as tie-breaker.
	orderByClause := `ORDER BY journal_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `(journal_date, created_at) < ($1, $2)`
		if filterClause == "" {
			filterClause = `WHERE ` + cursorClause
		} else {
			filterClause += ` AND ` + cursorClause
		}
		args = append(args, lastDate, lastCreatedAt)
	}

	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)
	rows, err = r.Pool.Query(ctx, query, args...)

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals", err)
	}
	defer rows.Close()

	modelJournals := make([]models.Journal, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournalRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row", scanErr)
		}
		modelJournals = append(modelJournals, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal rows", err)
	}

	// Determine the next token
	var nextTokenVal *string
	results := modelJournals
	if len(modelJournals) > limit {
		// The token points to the last item included in this response page;
		// the next query starts after it.
		lastJournal := modelJournals[limit-1]
		newToken := pagination.EncodeToken(lastJournal.JournalDate, lastJournal.CreatedAt)
		nextTokenVal = &newToken
		results = modelJournals[:limit]
	}

	domainJournals := make([]domain.Journal, len(results))
	for i, m := range results {
		domainJournals[i] = mapping.ToDomainJournal(m)
	}

	return domainJournals, nextTokenVal, nil
}

// ListAccountLedger retrieves an account's transaction lines oldest-first
// within an optional date window, joined with the journal header fields.
// The running balance is a window sum over the account's full history in
// display order (journal_date, journal_id, transaction_id), so it stays
// monotonic even when a backdated journal or a reversal lands after lines
// with later dates. The date filters and pagination apply outside the
// window, which keeps earlier history in each line's prefix sum.
func (r *PgxJournalRepository) ListAccountLedger(ctx context.Context, accountID string, start, end *time.Time, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	baseQuery := `
		SELECT transaction_id, journal_id, account_id, amount, transaction_type, currency_code, notes,
		       created_at, created_by, last_updated_at, last_updated_by, running_balance, journal_date, description
		FROM (
			SELECT t.transaction_id, t.journal_id, t.account_id, t.amount, t.transaction_type, t.currency_code, t.notes,
			       t.created_at, t.created_by, t.last_updated_at, t.last_updated_by,
			       SUM(` + signedAmountSQL + `) OVER (
			           ORDER BY j.journal_date, t.journal_id, t.transaction_id
			       ) AS running_balance,
			       j.journal_date, j.description
			FROM transactions t
			JOIN journals j ON t.journal_id = j.journal_id
			JOIN accounts a ON t.account_id = a.account_id
			WHERE t.account_id = $1
		) ledger
	`
	args := []interface{}{accountID}

	filterClause := ``
	if start != nil {
		args = append(args, *start)
		filterClause = `WHERE journal_date >= $` + strconv.Itoa(len(args))
	}
	if end != nil {
		args = append(args, *end)
		if filterClause == "" {
			filterClause = `WHERE journal_date <= $` + strconv.Itoa(len(args))
		} else {
			filterClause += ` AND journal_date <= $` + strconv.Itoa(len(args))
		}
	}

	args = append(args, limit)
	limitPos := strconv.Itoa(len(args))
	args = append(args, offset)
	offsetPos := strconv.Itoa(len(args))

	query := baseQuery + filterClause + `
		ORDER BY journal_date, journal_id, transaction_id
		LIMIT $` + limitPos + ` OFFSET $` + offsetPos + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger for account "+accountID, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(
			&t.TransactionID,
			&t.JournalID,
			&t.AccountID,
			&t.Amount,
			&t.TransactionType,
			&t.CurrencyCode,
			&t.Notes,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
			&t.RunningBalance,
			&t.JournalDate,
			&t.JournalDescription,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger row for account "+accountID, err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger rows for account "+accountID, err)
	}

	return mapping.ToDomainTransactionSlice(transactions), nil
}

// GetAccountBalanceAsOf computes the signed sum of an account's committed
// lines with journal dates up to and including asOf.
func (r *PgxJournalRepository) GetAccountBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(` + signedAmountSQL + `), 0)
		FROM transactions t
		JOIN journals j ON t.journal_id = j.journal_id
		JOIN accounts a ON t.account_id = a.account_id
		WHERE t.account_id = $1 AND j.journal_date <= $2;
	`

	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute balance as of date for account "+accountID, err)
	}
	return balance, nil
}
