package services

import (
	portsrepo "github.com/trustbooks/trust_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/trustbooks/trust_ledger_app/internal/core/ports/services"
	"github.com/trustbooks/trust_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// auditSink may be nil when no event sink is configured.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, auditSink portssvc.AuditSink) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, auditSink)
	container.Check = NewCheckQueueService(repos.CheckRepo, repos.AccountRepo, repos.EntityRepo, auditSink)
	container.Reporting = NewReportingService(repos.ReportingRepo)
	container.Audit = auditSink

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.JournalSvcFacade = (*journalService)(nil)
	_ portssvc.CheckSvcFacade   = (*checkQueueService)(nil)
)
