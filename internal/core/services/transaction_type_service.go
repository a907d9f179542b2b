package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/schoolbooks/school_finance_app/internal/apperrors"
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolbooks/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/schoolbooks/school_finance_app/internal/core/ports/services"
	"github.com/schoolbooks/school_finance_app/internal/dto"
)

// transactionTypeService manages the transaction type registry.
type transactionTypeService struct {
	BaseService
	typeRepo    portsrepo.TransactionTypeRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewTransactionTypeService creates a new transaction type service.
func NewTransactionTypeService(typeRepo portsrepo.TransactionTypeRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.TransactionTypeSvcFacade {
	return &transactionTypeService{
		typeRepo:    typeRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.TransactionTypeSvcFacade = (*transactionTypeService)(nil)

func (s *transactionTypeService) CreateTransactionType(ctx context.Context, req dto.CreateTransactionTypeRequest, creatorUserID string) (*domain.TransactionType, error) {
	if !domain.ValidTransactionTypeCategory(req.Category) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid category %q", req.Category))
	}

	typeID := uuid.NewString()
	accounts, err := s.buildRoles(ctx, typeID, req.Accounts)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tt := domain.TransactionType{
		TransactionTypeID: typeID,
		Code:              req.Code,
		Name:              req.Name,
		Category:          req.Category,
		IsSystem:          false,
		IsActive:          true,
		Accounts:          accounts,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.typeRepo.SaveTransactionType(ctx, tt); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("transaction type code %q already exists", req.Code))
		}
		s.LogError(ctx, err, "failed to save transaction type", slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "transaction type created", slog.String("transaction_type_id", tt.TransactionTypeID), slog.String("code", tt.Code))
	return &tt, nil
}

// buildRoles validates and materializes role templates: roles must be pairwise
// distinct and any fixed account must exist and be a posting account.
func (s *transactionTypeService) buildRoles(ctx context.Context, typeID string, inputs []dto.TransactionAccountInput) ([]domain.TransactionAccount, error) {
	if len(inputs) < 2 {
		return nil, apperrors.NewValidationError("transaction type needs at least two account roles")
	}

	seen := make(map[string]bool, len(inputs))
	var fixedIDs []string
	for _, in := range inputs {
		if seen[in.Role] {
			return nil, apperrors.NewValidationError(fmt.Sprintf("duplicate role %q", in.Role))
		}
		seen[in.Role] = true
		if !domain.ValidEntryDirection(in.Direction) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid direction %q for role %q", in.Direction, in.Role))
		}
		if in.AccountTypeFilter != nil && !domain.ValidAccountType(*in.AccountTypeFilter) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid accountTypeFilter %q for role %q", *in.AccountTypeFilter, in.Role))
		}
		if in.ChartOfAccountID != nil {
			fixedIDs = append(fixedIDs, *in.ChartOfAccountID)
		}
	}

	var fixed map[string]domain.Account
	if len(fixedIDs) > 0 {
		var err error
		fixed, err = s.accountRepo.FindAccountsByIDs(ctx, fixedIDs)
		if err != nil {
			return nil, err
		}
	}

	accounts := make([]domain.TransactionAccount, len(inputs))
	for i, in := range inputs {
		if in.ChartOfAccountID != nil {
			account, ok := fixed[*in.ChartOfAccountID]
			if !ok {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s for role %q not found", *in.ChartOfAccountID, in.Role))
			}
			if !account.IsPosting {
				return nil, apperrors.NewValidationError(fmt.Sprintf("account %s for role %q is not a posting account", account.AccountID, in.Role))
			}
		}
		accounts[i] = domain.TransactionAccount{
			TransactionAccountID: uuid.NewString(),
			TransactionTypeID:    typeID,
			Role:                 in.Role,
			Label:                in.Label,
			Direction:            in.Direction,
			AccountTypeFilter:    in.AccountTypeFilter,
			ChartOfAccountID:     in.ChartOfAccountID,
		}
	}
	return accounts, nil
}

func (s *transactionTypeService) GetTransactionTypeByID(ctx context.Context, transactionTypeID string) (*domain.TransactionType, error) {
	tt, err := s.typeRepo.FindTransactionTypeByID(ctx, transactionTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction type %s not found", transactionTypeID))
		}
		return nil, err
	}
	return tt, nil
}

func (s *transactionTypeService) GetTransactionTypeByCode(ctx context.Context, code string) (*domain.TransactionType, error) {
	tt, err := s.typeRepo.FindTransactionTypeByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction type %q not found", code))
		}
		return nil, err
	}
	return tt, nil
}

func (s *transactionTypeService) ListTransactionTypes(ctx context.Context) ([]domain.TransactionType, error) {
	return s.typeRepo.ListTransactionTypes(ctx)
}

func (s *transactionTypeService) UpdateTransactionType(ctx context.Context, transactionTypeID string, req dto.UpdateTransactionTypeRequest, updaterUserID string) (*domain.TransactionType, error) {
	tt, err := s.GetTransactionTypeByID(ctx, transactionTypeID)
	if err != nil {
		return nil, err
	}
	if tt.IsSystem {
		return nil, apperrors.ErrSystemTypeImmutable
	}

	if req.Name != nil {
		tt.Name = *req.Name
	}
	if req.Category != nil {
		if !domain.ValidTransactionTypeCategory(*req.Category) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid category %q", *req.Category))
		}
		tt.Category = *req.Category
	}
	if req.IsActive != nil {
		tt.IsActive = *req.IsActive
	}

	replaceAccounts := req.Accounts != nil
	if replaceAccounts {
		accounts, err := s.buildRoles(ctx, tt.TransactionTypeID, req.Accounts)
		if err != nil {
			return nil, err
		}
		tt.Accounts = accounts
	}

	tt.LastUpdatedAt = time.Now()
	tt.LastUpdatedBy = updaterUserID

	if err := s.typeRepo.UpdateTransactionType(ctx, *tt, replaceAccounts); err != nil {
		s.LogError(ctx, err, "failed to update transaction type", slog.String("transaction_type_id", transactionTypeID))
		return nil, err
	}
	return tt, nil
}

func (s *transactionTypeService) DeleteTransactionType(ctx context.Context, transactionTypeID string, deleterUserID string) error {
	tt, err := s.GetTransactionTypeByID(ctx, transactionTypeID)
	if err != nil {
		return err
	}
	if tt.IsSystem {
		return apperrors.ErrSystemTypeImmutable
	}

	err = s.typeRepo.DeleteTransactionType(ctx, transactionTypeID)
	if errors.Is(err, apperrors.ErrConflict) {
		// Referenced by journal entries; deactivate instead so history keeps
		// resolving the type.
		tt.IsActive = false
		tt.LastUpdatedAt = time.Now()
		tt.LastUpdatedBy = deleterUserID
		if updateErr := s.typeRepo.UpdateTransactionType(ctx, *tt, false); updateErr != nil {
			return updateErr
		}
		s.LogInfo(ctx, "transaction type deactivated instead of deleted", slog.String("transaction_type_id", transactionTypeID))
		return nil
	}
	if err != nil {
		s.LogError(ctx, err, "failed to delete transaction type", slog.String("transaction_type_id", transactionTypeID))
		return err
	}
	s.LogInfo(ctx, "transaction type deleted", slog.String("transaction_type_id", transactionTypeID))
	return nil
}
