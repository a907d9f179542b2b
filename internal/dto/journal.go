package dto

import (
	"time"

	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	"github.com/schoolbooks/school_finance_app/internal/utils/money"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates in requests and queries.
const DateLayout = "2006-01-02"

// PostTransactionRequest drives the posting engine: the transaction type is
// named by code and each dynamic role is resolved through RoleAccounts.
// Exactly one of Amount (two-role types only) or RoleAmounts must be set.
type PostTransactionRequest struct {
	TransactionTypeCode string                     `json:"transactionTypeCode" binding:"required"`
	TransactionDate     string                     `json:"transactionDate" binding:"required,dateonly"`
	Description         string                     `json:"description" binding:"required"`
	Amount              *decimal.Decimal           `json:"amount"`
	RoleAmounts         map[string]decimal.Decimal `json:"roleAmounts"`
	RoleAccounts        map[string]string          `json:"roleAccounts"`
	StudentID           *string                    `json:"studentID"`
	ExternalReference   *string                    `json:"externalReference"`
}

// ParsedDate returns the transaction date as a time.Time in UTC.
func (r PostTransactionRequest) ParsedDate() (time.Time, error) {
	return time.ParseInLocation(DateLayout, r.TransactionDate, time.UTC)
}

// JournalLineResponse splits the line amount into debit/credit columns the way
// ledgers are conventionally displayed. Exactly one of the two is non-nil.
type JournalLineResponse struct {
	JournalLineID    string  `json:"journalLineID"`
	ChartOfAccountID string  `json:"chartOfAccountID"`
	Debit            *string `json:"debit"`
	Credit           *string `json:"credit"`
	Description      string  `json:"description"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalEntryID    string                `json:"journalEntryID"`
	ReferenceNumber   string                `json:"referenceNumber"`
	TransactionTypeID *string               `json:"transactionTypeID"`
	TransactionDate   string                `json:"transactionDate"`
	Description       string                `json:"description"`
	Status            domain.JournalStatus  `json:"status"`
	TotalAmount       string                `json:"totalAmount"`
	StudentID         *string               `json:"studentID"`
	ExternalReference *string               `json:"externalReference"`
	Lines             []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatedBy         string                `json:"createdBy"`
	LastUpdatedAt     time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy     string                `json:"lastUpdatedBy"`
}

// ToJournalLineResponse converts a domain.JournalLine to its DTO.
func ToJournalLineResponse(line domain.JournalLine) JournalLineResponse {
	res := JournalLineResponse{
		JournalLineID:    line.JournalLineID,
		ChartOfAccountID: line.ChartOfAccountID,
		Description:      line.Description,
	}
	amount := money.Format(line.Amount)
	if line.Direction == domain.Debit {
		res.Debit = &amount
	} else {
		res.Credit = &amount
	}
	return res
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(entry.Lines))
	for i, line := range entry.Lines {
		lines[i] = ToJournalLineResponse(line)
	}
	return JournalEntryResponse{
		JournalEntryID:    entry.JournalEntryID,
		ReferenceNumber:   entry.ReferenceNumber,
		TransactionTypeID: entry.TransactionTypeID,
		TransactionDate:   entry.TransactionDate.Format(DateLayout),
		Description:       entry.Description,
		Status:            entry.Status,
		TotalAmount:       money.Format(entry.TotalAmount),
		StudentID:         entry.StudentID,
		ExternalReference: entry.ExternalReference,
		Lines:             lines,
		CreatedAt:         entry.CreatedAt,
		CreatedBy:         entry.CreatedBy,
		LastUpdatedAt:     entry.LastUpdatedAt,
		LastUpdatedBy:     entry.LastUpdatedBy,
	}
}

// ListJournalEntriesResponse is a cursor-paginated page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken"`
}

// ToListJournalEntriesResponse converts a page of entries plus cursor.
func ToListJournalEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListJournalEntriesResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return ListJournalEntriesResponse{Entries: res, NextToken: nextToken}
}
