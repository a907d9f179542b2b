package dto

import (
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
)

// TransactionAccountInput defines one role template within a transaction type.
type TransactionAccountInput struct {
	Role              string                `json:"role" binding:"required"`
	Label             string                `json:"label" binding:"required"`
	Direction         domain.EntryDirection `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	AccountTypeFilter *domain.AccountType   `json:"accountTypeFilter" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ChartOfAccountID  *string               `json:"chartOfAccountID"` // Nil makes the role dynamic
}

// CreateTransactionTypeRequest defines the data needed to register a new
// transaction type with its role templates.
type CreateTransactionTypeRequest struct {
	Code     string                         `json:"code" binding:"required"`
	Name     string                         `json:"name" binding:"required"`
	Category domain.TransactionTypeCategory `json:"category" binding:"required,oneof=INCOME EXPENSE BILLING PAYROLL ASSET LIABILITY TRANSFER"`
	Accounts []TransactionAccountInput      `json:"accounts" binding:"required,min=2,dive"`
}

// UpdateTransactionTypeRequest defines the fields a user may change on a
// non-system transaction type. A nil Accounts leaves the role set untouched.
type UpdateTransactionTypeRequest struct {
	Name     *string                         `json:"name"`
	Category *domain.TransactionTypeCategory `json:"category" binding:"omitempty,oneof=INCOME EXPENSE BILLING PAYROLL ASSET LIABILITY TRANSFER"`
	IsActive *bool                           `json:"isActive"`
	Accounts []TransactionAccountInput       `json:"accounts" binding:"omitempty,min=2,dive"`
}

// TransactionAccountResponse defines the data returned for one role template.
type TransactionAccountResponse struct {
	TransactionAccountID string                `json:"transactionAccountID"`
	Role                 string                `json:"role"`
	Label                string                `json:"label"`
	Direction            domain.EntryDirection `json:"direction"`
	AccountTypeFilter    *domain.AccountType   `json:"accountTypeFilter"`
	ChartOfAccountID     *string               `json:"chartOfAccountID"`
	IsDynamic            bool                  `json:"isDynamic"`
}

// TransactionTypeResponse defines the data returned for a transaction type.
type TransactionTypeResponse struct {
	TransactionTypeID string                         `json:"transactionTypeID"`
	Code              string                         `json:"code"`
	Name              string                         `json:"name"`
	Category          domain.TransactionTypeCategory `json:"category"`
	IsSystem          bool                           `json:"isSystem"`
	IsActive          bool                           `json:"isActive"`
	Accounts          []TransactionAccountResponse   `json:"accounts"`
}

// ToTransactionTypeResponse converts a domain.TransactionType to its DTO.
func ToTransactionTypeResponse(tt *domain.TransactionType) TransactionTypeResponse {
	accounts := make([]TransactionAccountResponse, len(tt.Accounts))
	for i, ta := range tt.Accounts {
		accounts[i] = TransactionAccountResponse{
			TransactionAccountID: ta.TransactionAccountID,
			Role:                 ta.Role,
			Label:                ta.Label,
			Direction:            ta.Direction,
			AccountTypeFilter:    ta.AccountTypeFilter,
			ChartOfAccountID:     ta.ChartOfAccountID,
			IsDynamic:            ta.Dynamic(),
		}
	}
	return TransactionTypeResponse{
		TransactionTypeID: tt.TransactionTypeID,
		Code:              tt.Code,
		Name:              tt.Name,
		Category:          tt.Category,
		IsSystem:          tt.IsSystem,
		IsActive:          tt.IsActive,
		Accounts:          accounts,
	}
}

// ToListTransactionTypeResponse converts a slice of transaction types.
func ToListTransactionTypeResponse(types []domain.TransactionType) []TransactionTypeResponse {
	res := make([]TransactionTypeResponse, len(types))
	for i := range types {
		res[i] = ToTransactionTypeResponse(&types[i])
	}
	return res
}
