package services

// ServiceContainer aggregates all service facades for handler wiring.
type ServiceContainer struct {
	Account         AccountSvcFacade
	TransactionType TransactionTypeSvcFacade
	Journal         JournalSvcFacade
	Reporting       ReportingSvcFacade
}
