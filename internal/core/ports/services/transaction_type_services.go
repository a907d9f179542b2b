package services

import (
	"context"

	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	"github.com/schoolbooks/school_finance_app/internal/dto"
)

// TransactionTypeSvcFacade defines registry operations for transaction types.
// System types reject every mutation with apperrors.ErrSystemTypeImmutable.
type TransactionTypeSvcFacade interface {
	CreateTransactionType(ctx context.Context, req dto.CreateTransactionTypeRequest, creatorUserID string) (*domain.TransactionType, error)
	GetTransactionTypeByID(ctx context.Context, transactionTypeID string) (*domain.TransactionType, error)
	GetTransactionTypeByCode(ctx context.Context, code string) (*domain.TransactionType, error)
	ListTransactionTypes(ctx context.Context) ([]domain.TransactionType, error)
	UpdateTransactionType(ctx context.Context, transactionTypeID string, req dto.UpdateTransactionTypeRequest, updaterUserID string) (*domain.TransactionType, error)
	// DeleteTransactionType removes a non-system type that no journal entry
	// references; referenced types are deactivated instead of deleted.
	DeleteTransactionType(ctx context.Context, transactionTypeID string, deleterUserID string) error
}
