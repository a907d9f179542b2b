package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
//
// The state machine is: DRAFT -> POSTED -> VOID. VOID is terminal. The posting
// engine creates entries directly in POSTED; DRAFT exists for completeness and
// a DRAFT entry cannot be voided. Deletion is forbidden in every state.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
	Void   JournalStatus = "VOID"
)

// JournalEntry is the immutable ledger record of one business transaction.
// Once POSTED, the entry and its lines never change; the only permitted
// transition is POSTED -> VOID, and VOID entries stay in the table for audit
// while being excluded from every balance and report aggregation.
type JournalEntry struct {
	JournalEntryID    string          `json:"journalEntryID"`
	ReferenceNumber   string          `json:"referenceNumber"` // TRX-YYYYMMDD-NNNN, sequential per day
	TransactionTypeID *string         `json:"transactionTypeID"`
	TransactionDate   time.Time       `json:"transactionDate"`
	Description       string          `json:"description"`
	Status            JournalStatus   `json:"status"`
	TotalAmount       decimal.Decimal `json:"totalAmount"` // Equals the debit (and credit) side sum
	StudentID         *string         `json:"studentID"`   // Optional reference to a student record
	ExternalReference *string         `json:"externalReference"`
	Lines             []JournalLine   `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single debit or credit against one posting account.
type JournalLine struct {
	JournalLineID    string          `json:"journalLineID"`
	JournalEntryID   string          `json:"journalEntryID"`
	ChartOfAccountID string          `json:"chartOfAccountID"`
	Direction        EntryDirection  `json:"direction"`
	Amount           decimal.Decimal `json:"amount"` // Always positive
	Description      string          `json:"description"`
	AuditFields
}
