package repositories

import (
	"context"
	"time"

	"github.com/schoolbooks/school_finance_app/internal/core/domain"
)

// JournalRepositoryFacade defines persistence operations for the immutable
// ledger. There is deliberately no delete method: row deletion is forbidden at
// the domain layer and the storage schema backs that up.
type JournalRepositoryFacade interface {
	// SaveJournalEntry allocates the entry's reference number under a
	// serializing lock and inserts the header plus all lines in one database
	// transaction. It returns the persisted entry including the allocated
	// reference number. A reference collision (lost race on the first entry
	// of a day) surfaces as apperrors.ErrDuplicate so the caller can retry.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error)
	FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)
	FindLinesByJournalEntryID(ctx context.Context, journalEntryID string) ([]domain.JournalLine, error)
	ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
	// MarkJournalEntryVoid flips POSTED -> VOID with a status-guarded update.
	// It returns false when no row transitioned (entry missing or not POSTED).
	MarkJournalEntryVoid(ctx context.Context, journalEntryID string, userID string, now time.Time) (bool, error)
}

// StudentRepositoryFacade resolves student references supplied on journal
// entries. Student records themselves are managed elsewhere.
type StudentRepositoryFacade interface {
	FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error)
}
