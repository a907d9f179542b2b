package repositories

// RepositoryProvider aggregates all repository facades for wiring at startup.
type RepositoryProvider struct {
	Account         AccountRepositoryFacade
	Category        CategoryRepositoryFacade
	TransactionType TransactionTypeRepositoryFacade
	Journal         JournalRepositoryFacade
	Reporting       ReportingRepository
	Student         StudentRepositoryFacade
}
