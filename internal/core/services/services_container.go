package services

import (
	portsrepo "github.com/schoolbooks/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/schoolbooks/school_finance_app/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:         NewAccountService(repos.Account, repos.Category),
		TransactionType: NewTransactionTypeService(repos.TransactionType, repos.Account),
		Journal:         NewJournalService(repos.Journal, repos.TransactionType, repos.Account, repos.Student),
		Reporting:       NewReportingService(repos.Reporting, repos.Account),
	}
}
