package models

// TransactionType is the database representation of a posting template.
type TransactionType struct {
	TransactionTypeID string `db:"transaction_type_id"`
	Code              string `db:"code"`
	Name              string `db:"name"`
	Category          string `db:"category"`
	IsSystem          bool   `db:"is_system"`
	IsActive          bool   `db:"is_active"`
	AuditFields
}

// TransactionAccount is the database representation of one role on a
// transaction type.
type TransactionAccount struct {
	TransactionAccountID string  `db:"transaction_account_id"`
	TransactionTypeID    string  `db:"transaction_type_id"`
	Role                 string  `db:"role"`
	Label                string  `db:"label"`
	Direction            string  `db:"direction"`
	AccountTypeFilter    *string `db:"account_type_filter"`
	ChartOfAccountID     *string `db:"chart_of_account_id"`
}
