package dto

import (
	"time"

	"github.com/schoolbooks/school_finance_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a chart-of-accounts node.
type CreateAccountRequest struct {
	Code          string               `json:"code" binding:"required"`
	Name          string               `json:"name" binding:"required"`
	Description   string               `json:"description"` // Optional
	AccountType   domain.AccountType   `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	NormalBalance domain.NormalBalance `json:"normalBalance" binding:"required,oneof=DEBIT CREDIT"`
	IsPosting     *bool                `json:"isPosting"` // Defaults to true when omitted
	IsCash        bool                 `json:"isCash"`
	ParentID      *string              `json:"parentID"`   // Optional self-reference
	CategoryID    *string              `json:"categoryID"` // Optional report grouping
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
	IsCash      *bool   `json:"isCash"`
	ParentID    *string `json:"parentID"`
	CategoryID  *string `json:"categoryID"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string               `json:"accountID"`
	Code          string               `json:"code"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	AccountType   domain.AccountType   `json:"accountType"`
	NormalBalance domain.NormalBalance `json:"normalBalance"`
	IsPosting     bool                 `json:"isPosting"`
	IsCash        bool                 `json:"isCash"`
	IsActive      bool                 `json:"isActive"`
	ParentID      *string              `json:"parentID"`
	CategoryID    *string              `json:"categoryID"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy string               `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		Description:   acc.Description,
		AccountType:   acc.AccountType,
		NormalBalance: acc.NormalBalance,
		IsPosting:     acc.IsPosting,
		IsCash:        acc.IsCash,
		IsActive:      acc.IsActive,
		ParentID:      acc.ParentID,
		CategoryID:    acc.CategoryID,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// SuggestCodeResponse wraps the next suggested account code.
type SuggestCodeResponse struct {
	Code string `json:"code"`
}

// FullPathResponse wraps the dot-joined chain of codes from root to a node.
type FullPathResponse struct {
	AccountID string `json:"accountID"`
	FullCode  string `json:"fullCode"`
}

// CategoryResponse defines the data returned for an account category.
type CategoryResponse struct {
	CategoryID string            `json:"categoryID"`
	Name       string            `json:"name"`
	ReportType domain.ReportType `json:"reportType"`
	Sequence   int               `json:"sequence"`
}

// ToCategoryResponses converts domain categories to response DTOs.
func ToCategoryResponses(categories []domain.AccountCategory) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		res[i] = CategoryResponse{
			CategoryID: cat.CategoryID,
			Name:       cat.Name,
			ReportType: cat.ReportType,
			Sequence:   cat.Sequence,
		}
	}
	return res
}
