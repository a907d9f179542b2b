package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/schoolbooks/school_finance_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository against one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		Account:         newPgxAccountRepository(pool),
		Category:        newPgxCategoryRepository(pool),
		TransactionType: newPgxTransactionTypeRepository(pool),
		Journal:         newPgxJournalRepository(pool),
		Reporting:       newPgxReportingRepository(pool),
		Student:         newPgxStudentRepository(pool),
	}
}
