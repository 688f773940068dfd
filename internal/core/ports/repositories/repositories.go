package repositories

// RepositoryProvider groups all repository facades for dependency injection.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	JournalRepo   JournalRepositoryWithTx
	CheckRepo     CheckRepositoryFacade
	EntityRepo    EntityReader
	ReportingRepo ReportingReader
}
