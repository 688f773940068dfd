package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/trustbooks/trust_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	checkRepo := newPgxCheckRepository(dbPool, accountRepo)
	entityRepo := newPgxEntityRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		JournalRepo:   journalRepo,
		CheckRepo:     checkRepo,
		EntityRepo:    entityRepo,
		ReportingRepo: reportingRepo,
	}
}
