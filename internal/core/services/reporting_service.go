package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/trustbooks/trust_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/trustbooks/trust_ledger_app/internal/core/ports/services"
	"github.com/trustbooks/trust_ledger_app/internal/dto"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingReader
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingReader) portssvc.ReportingService {
	return &reportingService{reportingRepo: repo}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance report as of a specific date
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*dto.TrialBalanceResponse, error) {
	trialBalanceRows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	resp := dto.ToTrialBalanceResponse(trialBalanceRows, asOf)

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("row_count", len(trialBalanceRows)))
	return &resp, nil
}
