package repositories

import (
	"context"

	"github.com/schoolbooks/school_finance_app/internal/core/domain"
)

// TransactionTypeRepositoryFacade defines persistence operations for the
// transaction type registry. Save and Update persist the header together with
// its role templates atomically.
type TransactionTypeRepositoryFacade interface {
	SaveTransactionType(ctx context.Context, tt domain.TransactionType) error
	FindTransactionTypeByID(ctx context.Context, transactionTypeID string) (*domain.TransactionType, error)
	FindTransactionTypeByCode(ctx context.Context, code string) (*domain.TransactionType, error)
	ListTransactionTypes(ctx context.Context) ([]domain.TransactionType, error)
	// UpdateTransactionType rewrites the header; when replaceAccounts is true
	// the role set is replaced wholesale with tt.Accounts.
	UpdateTransactionType(ctx context.Context, tt domain.TransactionType, replaceAccounts bool) error
	DeleteTransactionType(ctx context.Context, transactionTypeID string) error
}
