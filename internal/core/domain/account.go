package domain

import "time"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// ValidAccountType reports whether t is one of the allowed account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalBalance determines whether increases to an account are recorded as
// debits or credits.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "DEBIT"
	NormalCredit NormalBalance = "CREDIT"
)

// ValidNormalBalance reports whether n is one of the allowed normal balances.
func ValidNormalBalance(n NormalBalance) bool {
	return n == NormalDebit || n == NormalCredit
}

// ConventionalNormalBalance returns the normal balance the accounting
// convention expects for an account type. Asset/Expense increase on debit;
// Liability/Equity/Revenue increase on credit. This is advisory only: account
// creation does not reject deviations.
func ConventionalNormalBalance(t AccountType) NormalBalance {
	if t == Asset || t == Expense {
		return NormalDebit
	}
	return NormalCredit
}

// Account represents a chart-of-accounts node. Nodes with IsPosting=true are
// leaves that accept journal lines; header nodes aggregate only.
type Account struct {
	AccountID     string        `json:"accountID"`     // Primary key (UUID)
	Code          string        `json:"code"`          // Globally unique hierarchical code, e.g. "1-1100"
	Name          string        `json:"name"`
	Description   string        `json:"description"`   // Nullable user description
	AccountType   AccountType   `json:"accountType"`
	NormalBalance NormalBalance `json:"normalBalance"`
	IsPosting     bool          `json:"isPosting"` // Leaf/transactable when true
	IsCash        bool          `json:"isCash"`    // Counted as cash-equivalent in the cash flow report
	IsActive      bool          `json:"isActive"`
	ParentID      *string       `json:"parentID"`   // Nullable self-reference; nil means root
	CategoryID    *string       `json:"categoryID"` // Nullable report grouping
	DeletedAt     *time.Time    `json:"deletedAt"`  // Soft delete marker
	AuditFields
}

// Deleted reports whether the account has been soft-deleted.
func (a Account) Deleted() bool {
	return a.DeletedAt != nil
}

// ReportType classifies an account category by the report it appears on.
type ReportType string

const (
	ReportBalanceSheet    ReportType = "BALANCE_SHEET"
	ReportIncomeStatement ReportType = "INCOME_STATEMENT"
)

// AccountCategory groups accounts for report ordering.
type AccountCategory struct {
	CategoryID string     `json:"categoryID"`
	Name       string     `json:"name"`
	ReportType ReportType `json:"reportType"`
	Sequence   int        `json:"sequence"` // Sort order within the report
	AuditFields
}
