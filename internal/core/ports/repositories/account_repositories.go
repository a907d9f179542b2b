package repositories

import (
	"context"
	"time"

	"github.com/schoolbooks/school_finance_app/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for the chart of
// accounts. Lookups exclude soft-deleted rows unless includeDeleted is set;
// callers opt in explicitly instead of relying on implicit scoping.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string, includeDeleted bool) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	// ListAccounts returns the whole (non-deleted) account table; hierarchy
	// walks index this snapshot instead of chasing parent links lazily.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	ListRootAccountCodes(ctx context.Context) ([]string, error)
	ListChildAccountCodes(ctx context.Context, parentID string) ([]string, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	SoftDeleteAccount(ctx context.Context, accountID string, userID string, now time.Time) error
	HasChildren(ctx context.Context, accountID string) (bool, error)
}

// CategoryRepositoryFacade defines persistence operations for account
// categories (read-mostly reference data).
type CategoryRepositoryFacade interface {
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.AccountCategory, error)
	ListCategories(ctx context.Context) ([]domain.AccountCategory, error)
}
