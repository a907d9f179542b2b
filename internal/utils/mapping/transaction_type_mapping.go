package mapping

import (
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	"github.com/schoolbooks/school_finance_app/internal/models"
)

// ToModelTransactionType converts a domain TransactionType header.
func ToModelTransactionType(d domain.TransactionType) models.TransactionType {
	return models.TransactionType{
		TransactionTypeID: d.TransactionTypeID,
		Code:              d.Code,
		Name:              d.Name,
		Category:          string(d.Category),
		IsSystem:          d.IsSystem,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransactionType converts a model TransactionType header.
func ToDomainTransactionType(m models.TransactionType) domain.TransactionType {
	return domain.TransactionType{
		TransactionTypeID: m.TransactionTypeID,
		Code:              m.Code,
		Name:              m.Name,
		Category:          domain.TransactionTypeCategory(m.Category),
		IsSystem:          m.IsSystem,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransactionAccount converts a domain role template.
func ToModelTransactionAccount(d domain.TransactionAccount) models.TransactionAccount {
	var filter *string
	if d.AccountTypeFilter != nil {
		s := string(*d.AccountTypeFilter)
		filter = &s
	}
	return models.TransactionAccount{
		TransactionAccountID: d.TransactionAccountID,
		TransactionTypeID:    d.TransactionTypeID,
		Role:                 d.Role,
		Label:                d.Label,
		Direction:            string(d.Direction),
		AccountTypeFilter:    filter,
		ChartOfAccountID:     d.ChartOfAccountID,
	}
}

// ToDomainTransactionAccount converts a model role template.
func ToDomainTransactionAccount(m models.TransactionAccount) domain.TransactionAccount {
	var filter *domain.AccountType
	if m.AccountTypeFilter != nil {
		t := domain.AccountType(*m.AccountTypeFilter)
		filter = &t
	}
	return domain.TransactionAccount{
		TransactionAccountID: m.TransactionAccountID,
		TransactionTypeID:    m.TransactionTypeID,
		Role:                 m.Role,
		Label:                m.Label,
		Direction:            domain.EntryDirection(m.Direction),
		AccountTypeFilter:    filter,
		ChartOfAccountID:     m.ChartOfAccountID,
	}
}
