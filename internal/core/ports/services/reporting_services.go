package services

import (
	"context"
	"time"

	"github.com/trustbooks/trust_ledger_app/internal/dto"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance generates a trial balance report as of a specific date
	TrialBalance(ctx context.Context, asOf time.Time) (*dto.TrialBalanceResponse, error)
}
