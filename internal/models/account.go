package models

import "time"

// Account is the database representation of a chart-of-accounts node.
type Account struct {
	AccountID     string     `db:"account_id"`
	Code          string     `db:"code"`
	Name          string     `db:"name"`
	Description   string     `db:"description"`
	AccountType   string     `db:"account_type"`
	NormalBalance string     `db:"normal_balance"`
	IsPosting     bool       `db:"is_posting"`
	IsCash        bool       `db:"is_cash"`
	IsActive      bool       `db:"is_active"`
	ParentID      *string    `db:"parent_id"`
	CategoryID    *string    `db:"category_id"`
	DeletedAt     *time.Time `db:"deleted_at"`
	AuditFields
}

// AccountCategory is the database representation of a report grouping.
type AccountCategory struct {
	CategoryID string `db:"category_id"`
	Name       string `db:"name"`
	ReportType string `db:"report_type"`
	Sequence   int    `db:"sequence"`
	AuditFields
}
