package mapping

import (
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	"github.com/schoolbooks/school_finance_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID:    d.JournalEntryID,
		ReferenceNumber:   d.ReferenceNumber,
		TransactionTypeID: d.TransactionTypeID,
		TransactionDate:   d.TransactionDate,
		Description:       d.Description,
		Status:            string(d.Status),
		TotalAmount:       d.TotalAmount,
		StudentID:         d.StudentID,
		ExternalReference: d.ExternalReference,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry header.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID:    m.JournalEntryID,
		ReferenceNumber:   m.ReferenceNumber,
		TransactionTypeID: m.TransactionTypeID,
		TransactionDate:   m.TransactionDate,
		Description:       m.Description,
		Status:            domain.JournalStatus(m.Status),
		TotalAmount:       m.TotalAmount,
		StudentID:         m.StudentID,
		ExternalReference: m.ExternalReference,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		JournalLineID:    d.JournalLineID,
		JournalEntryID:   d.JournalEntryID,
		ChartOfAccountID: d.ChartOfAccountID,
		Direction:        string(d.Direction),
		Amount:           d.Amount,
		Description:      d.Description,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		JournalLineID:    m.JournalLineID,
		JournalEntryID:   m.JournalEntryID,
		ChartOfAccountID: m.ChartOfAccountID,
		Direction:        domain.EntryDirection(m.Direction),
		Amount:           m.Amount,
		Description:      m.Description,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJournalLine(m)
	}
	return out
}
