package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolbooks/school_finance_app/internal/apperrors"
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolbooks/school_finance_app/internal/core/ports/repositories"
	"github.com/schoolbooks/school_finance_app/internal/models"
	"github.com/schoolbooks/school_finance_app/internal/utils/accounting"
	"github.com/schoolbooks/school_finance_app/internal/utils/mapping"
	"github.com/schoolbooks/school_finance_app/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for the journal ledger.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalEntryColumns = `
	journal_entry_id, reference_number, transaction_type_id, transaction_date,
	description, status, total_amount, student_id, external_reference,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveJournalEntry allocates the next per-day reference number under a row
// lock on the current maximum for that day, then inserts the header and all
// lines in one database transaction.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Lock the highest existing reference for the day. Concurrent posts for
	// the same day queue up behind this lock; a day with no entries yet has
	// no row to lock, which the unique constraint on reference_number covers.
	prefix := accounting.ReferencePrefixFor(entry.TransactionDate)
	lockQuery := `
		SELECT reference_number
		FROM journal_entries
		WHERE reference_number LIKE $1 || '%'
		ORDER BY reference_number DESC
		LIMIT 1
		FOR UPDATE;
	`
	seq := 1
	var lastRef string
	err = tx.QueryRow(ctx, lockQuery, prefix).Scan(&lastRef)
	switch {
	case err == nil:
		lastSeq, seqErr := accounting.SequenceFromReference(lastRef)
		if seqErr != nil {
			return nil, apperrors.NewAppError(500, "failed to parse reference number "+lastRef, seqErr)
		}
		seq = lastSeq + 1
	case errors.Is(err, pgx.ErrNoRows):
		// First entry of the day.
	default:
		return nil, apperrors.NewAppError(500, "failed to lock reference numbers for "+prefix, err)
	}
	entry.ReferenceNumber = accounting.ReferenceNumber(entry.TransactionDate, seq)

	model := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		INSERT INTO journal_entries (
			journal_entry_id, reference_number, transaction_type_id, transaction_date,
			description, status, total_amount, student_id, external_reference,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, headerQuery,
		model.JournalEntryID,
		model.ReferenceNumber,
		model.TransactionTypeID,
		model.TransactionDate,
		model.Description,
		model.Status,
		model.TotalAmount,
		model.StudentID,
		model.ExternalReference,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, apperrors.NewAppError(500, "failed to insert journal entry "+model.JournalEntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (
			journal_line_id, journal_entry_id, chart_of_account_id, direction,
			amount, description, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			modelLine.JournalLineID,
			modelLine.JournalEntryID,
			modelLine.ChartOfAccountID,
			modelLine.Direction,
			modelLine.Amount,
			modelLine.Description,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert lines for journal entry "+model.JournalEntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

func scanJournalEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalEntryID,
		&m.ReferenceNumber,
		&m.TransactionTypeID,
		&m.TransactionDate,
		&m.Description,
		&m.Status,
		&m.TotalAmount,
		&m.StudentID,
		&m.ExternalReference,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE journal_entry_id = $1`
	model, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, journalEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+journalEntryID, err)
	}
	entry := mapping.ToDomainJournalEntry(*model)
	return &entry, nil
}

func (r *PgxJournalRepository) FindLinesByJournalEntryID(ctx context.Context, journalEntryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT journal_line_id, journal_entry_id, chart_of_account_id, direction,
		       amount, description, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entry_lines
		WHERE journal_entry_id = $1
		ORDER BY direction DESC, journal_line_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalEntryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal entry "+journalEntryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		err := rows.Scan(
			&m.JournalLineID,
			&m.JournalEntryID,
			&m.ChartOfAccountID,
			&m.Direction,
			&m.Amount,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line for journal entry "+journalEntryID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read lines for journal entry "+journalEntryID, err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

// ListJournalEntries pages newest-first on (transaction_date, created_at)
// using an opaque cursor token.
func (r *PgxJournalRepository) ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := `SELECT ` + journalEntryColumns + `
		FROM journal_entries
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $1;`
	args := []any{limit + 1}
	if nextToken != nil && *nextToken != "" {
		transactionDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid pagination token")
		}
		query = `SELECT ` + journalEntryColumns + `
			FROM journal_entries
			WHERE (transaction_date, created_at) < ($2, $3)
			ORDER BY transaction_date DESC, created_at DESC
			LIMIT $1;`
		args = append(args, transactionDate, createdAt)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		model, err := scanJournalEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*model))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to read journal entry rows", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}

// MarkJournalEntryVoid transitions POSTED -> VOID. The status guard in the
// WHERE clause makes the update a no-op for entries in any other state.
func (r *PgxJournalRepository) MarkJournalEntryVoid(ctx context.Context, journalEntryID string, userID string, now time.Time) (bool, error) {
	query := `
		UPDATE journal_entries
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE journal_entry_id = $1 AND status = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, journalEntryID, string(domain.Void), now, userID, string(domain.Posted))
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to void journal entry "+journalEntryID, err)
	}
	return tag.RowsAffected() > 0, nil
}
