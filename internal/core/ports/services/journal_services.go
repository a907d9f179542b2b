package services

import (
	"context"

	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	"github.com/schoolbooks/school_finance_app/internal/dto"
)

// JournalSvcFacade defines the posting engine and ledger read operations.
type JournalSvcFacade interface {
	// PostTransaction expands a transaction type template into a balanced
	// journal entry and persists it as POSTED with a fresh reference number.
	PostTransaction(ctx context.Context, req dto.PostTransactionRequest, creatorUserID string) (*domain.JournalEntry, error)
	GetJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)
	ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
	// VoidJournalEntry transitions POSTED -> VOID. Voiding a VOID entry
	// returns apperrors.ErrAlreadyVoided, a DRAFT entry apperrors.ErrNotPosted.
	VoidJournalEntry(ctx context.Context, journalEntryID string, voiderUserID string) (*domain.JournalEntry, error)
	// DeleteJournalEntry always fails with apperrors.ErrLedgerImmutable.
	DeleteJournalEntry(ctx context.Context, journalEntryID string) error
}
