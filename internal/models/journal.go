package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the database representation of a ledger entry header.
type JournalEntry struct {
	JournalEntryID    string          `db:"journal_entry_id"`
	ReferenceNumber   string          `db:"reference_number"`
	TransactionTypeID *string         `db:"transaction_type_id"`
	TransactionDate   time.Time       `db:"transaction_date"`
	Description       string          `db:"description"`
	Status            string          `db:"status"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	StudentID         *string         `db:"student_id"`
	ExternalReference *string         `db:"external_reference"`
	AuditFields
}

// JournalLine is the database representation of a single debit/credit line.
type JournalLine struct {
	JournalLineID    string          `db:"journal_line_id"`
	JournalEntryID   string          `db:"journal_entry_id"`
	ChartOfAccountID string          `db:"chart_of_account_id"`
	Direction        string          `db:"direction"`
	Amount           decimal.Decimal `db:"amount"`
	Description      string          `db:"description"`
	AuditFields
}
