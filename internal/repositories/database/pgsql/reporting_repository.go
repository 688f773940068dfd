package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	portsrepo "github.com/trustbooks/trust_ledger_app/internal/core/ports/repositories"
)

type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingReader {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingReader = (*reportingRepository)(nil)

// GetTrialBalanceData aggregates debit and credit totals per account for
// journal lines dated on or before asOf. Reversed journals and their
// reversals are both excluded so a reversed pair drops out entirely.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.name AS account_name,
			a.account_type,
			SUM(CASE WHEN t.transaction_type = 'DEBIT' THEN t.amount ELSE 0 END) AS total_debit,
			SUM(CASE WHEN t.transaction_type = 'CREDIT' THEN t.amount ELSE 0 END) AS total_credit
		FROM transactions t
		JOIN accounts a ON t.account_id = a.account_id
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE j.journal_date <= $1
			AND j.status = 'POSTED'
			AND j.original_journal_id IS NULL
		GROUP BY a.account_id, a.name, a.account_type
		ORDER BY a.name
	`

	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountName,
			&accountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	if len(result) == 0 {
		return []domain.TrialBalanceRow{}, nil
	}

	return result, nil
}
