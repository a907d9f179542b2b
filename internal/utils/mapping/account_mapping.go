package mapping

import (
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	"github.com/schoolbooks/school_finance_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		Code:          d.Code,
		Name:          d.Name,
		Description:   d.Description,
		AccountType:   string(d.AccountType),
		NormalBalance: string(d.NormalBalance),
		IsPosting:     d.IsPosting,
		IsCash:        d.IsCash,
		IsActive:      d.IsActive,
		ParentID:      d.ParentID,
		CategoryID:    d.CategoryID,
		DeletedAt:     d.DeletedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		Code:          m.Code,
		Name:          m.Name,
		Description:   m.Description,
		AccountType:   domain.AccountType(m.AccountType),
		NormalBalance: domain.NormalBalance(m.NormalBalance),
		IsPosting:     m.IsPosting,
		IsCash:        m.IsCash,
		IsActive:      m.IsActive,
		ParentID:      m.ParentID,
		CategoryID:    m.CategoryID,
		DeletedAt:     m.DeletedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	out := make([]domain.Account, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAccount(m)
	}
	return out
}

// ToDomainCategory converts a model AccountCategory to the domain layer.
func ToDomainCategory(m models.AccountCategory) domain.AccountCategory {
	return domain.AccountCategory{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		ReportType:  domain.ReportType(m.ReportType),
		Sequence:    m.Sequence,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
