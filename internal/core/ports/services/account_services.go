package services

import (
	"context"

	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	"github.com/schoolbooks/school_finance_app/internal/dto"
)

// AccountSvcFacade defines chart-of-accounts operations, including hierarchy
// navigation and the next-code suggestion engine.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error)
	// DeactivateAccount soft-deletes the account. Accounts with children or
	// with posted journal lines are rejected.
	DeactivateAccount(ctx context.Context, accountID string, deleterUserID string) error
	// SuggestNextCode proposes a code for a new child of parentID, or a new
	// root code when parentID is nil.
	SuggestNextCode(ctx context.Context, parentID *string) (string, error)
	// GetAncestors returns the chain from the account's root down to its
	// direct parent, root first.
	GetAncestors(ctx context.Context, accountID string) ([]domain.Account, error)
	// GetDescendants returns every account in the subtree rooted at the
	// account, excluding the account itself, in depth-first order.
	GetDescendants(ctx context.Context, accountID string) ([]domain.Account, error)
	// GetFullAccountCode joins the codes from root to the account with dots.
	GetFullAccountCode(ctx context.Context, accountID string) (string, error)
	ListCategories(ctx context.Context) ([]domain.AccountCategory, error)
}
