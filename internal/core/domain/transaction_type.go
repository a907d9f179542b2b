package domain

// EntryDirection indicates whether a journal line (or role template) is a
// Debit or a Credit.
type EntryDirection string

const (
	Debit  EntryDirection = "DEBIT"
	Credit EntryDirection = "CREDIT"
)

// ValidEntryDirection reports whether d is DEBIT or CREDIT.
func ValidEntryDirection(d EntryDirection) bool {
	return d == Debit || d == Credit
}

// TransactionTypeCategory classifies a transaction type for cash-flow activity
// bucketing.
type TransactionTypeCategory string

const (
	CategoryIncome    TransactionTypeCategory = "INCOME"
	CategoryExpense   TransactionTypeCategory = "EXPENSE"
	CategoryBilling   TransactionTypeCategory = "BILLING"
	CategoryPayroll   TransactionTypeCategory = "PAYROLL"
	CategoryAsset     TransactionTypeCategory = "ASSET"
	CategoryLiability TransactionTypeCategory = "LIABILITY"
	CategoryTransfer  TransactionTypeCategory = "TRANSFER"
)

// ValidTransactionTypeCategory reports whether c is an allowed category.
func ValidTransactionTypeCategory(c TransactionTypeCategory) bool {
	switch c {
	case CategoryIncome, CategoryExpense, CategoryBilling, CategoryPayroll,
		CategoryAsset, CategoryLiability, CategoryTransfer:
		return true
	}
	return false
}

// CashFlowActivity is the bucket a transaction type's net cash movement lands
// in on the cash flow report.
type CashFlowActivity string

const (
	ActivityOperating CashFlowActivity = "OPERATING"
	ActivityInvesting CashFlowActivity = "INVESTING"
	ActivityFinancing CashFlowActivity = "FINANCING"
)

// CashFlowActivityFor maps a transaction type category to its cash flow
// activity. TRANSFER and any unlisted category fall into Operating.
func CashFlowActivityFor(c TransactionTypeCategory) CashFlowActivity {
	switch c {
	case CategoryAsset:
		return ActivityInvesting
	case CategoryLiability:
		return ActivityFinancing
	default:
		return ActivityOperating
	}
}

// TransactionType is a named, reusable template for creating journal entries.
// System types (IsSystem=true) cannot be modified or deleted by users.
type TransactionType struct {
	TransactionTypeID string                  `json:"transactionTypeID"`
	Code              string                  `json:"code"` // Unique
	Name              string                  `json:"name"`
	Category          TransactionTypeCategory `json:"category"`
	IsSystem          bool                    `json:"isSystem"`
	IsActive          bool                    `json:"isActive"`
	Accounts          []TransactionAccount    `json:"accounts"` // Role templates
	AuditFields
}

// TransactionAccount maps a semantic role within a transaction type to either
// a fixed chart-of-accounts entry or, when ChartOfAccountID is nil, an account
// the caller must supply at posting time ("dynamic" role).
type TransactionAccount struct {
	TransactionAccountID string         `json:"transactionAccountID"`
	TransactionTypeID    string         `json:"transactionTypeID"`
	Role                 string         `json:"role"`  // Unique within the type, e.g. "cash_debit"
	Label                string         `json:"label"` // Display text
	Direction            EntryDirection `json:"direction"`
	AccountTypeFilter    *AccountType   `json:"accountTypeFilter"` // Nullable constraint on the resolved account
	ChartOfAccountID     *string        `json:"chartOfAccountID"`  // Nil means resolved at posting time
}

// Dynamic reports whether the role's account is supplied at posting time.
func (ta TransactionAccount) Dynamic() bool {
	return ta.ChartOfAccountID == nil
}
