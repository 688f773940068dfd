package repositories

import (
	"context"
	"time"

	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
)

// ReportingReader defines the read operations needed for financial reports.
type ReportingReader interface {
	// GetTrialBalanceData returns the aggregated debit and credit totals per
	// account for journal lines posted on or before asOf.
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
