package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/schoolbooks/school_finance_app/internal/apperrors"
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolbooks/school_finance_app/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new read-only repository for report
// aggregates.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) GetAccountMovementSums(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(l.amount) FILTER (WHERE l.direction = 'DEBIT'), 0),
			COALESCE(SUM(l.amount) FILTER (WHERE l.direction = 'CREDIT'), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.journal_entry_id = l.journal_entry_id
		WHERE l.chart_of_account_id = $1
		  AND e.status = 'POSTED'
		  AND e.transaction_date < $2;
	`
	var debit, credit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, before).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum movements for account "+accountID, err)
	}
	return debit, credit, nil
}

func (r *PgxReportingRepository) ListAccountLines(ctx context.Context, accountID string, start, end time.Time) ([]domain.LedgerLine, error) {
	query := `
		SELECT l.journal_line_id, l.journal_entry_id, e.reference_number,
		       e.transaction_date, e.description, l.direction, l.amount
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.journal_entry_id = l.journal_entry_id
		WHERE l.chart_of_account_id = $1
		  AND e.status = 'POSTED'
		  AND e.transaction_date BETWEEN $2 AND $3
		ORDER BY e.transaction_date, e.journal_entry_id, l.journal_line_id;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger lines for account "+accountID, err)
	}
	defer rows.Close()

	lines := []domain.LedgerLine{}
	for rows.Next() {
		var l domain.LedgerLine
		var direction string
		err := rows.Scan(
			&l.JournalLineID,
			&l.JournalEntryID,
			&l.ReferenceNumber,
			&l.TransactionDate,
			&l.Description,
			&direction,
			&l.Amount,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger line", err)
		}
		l.Direction = domain.EntryDirection(direction)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read ledger lines", err)
	}
	return lines, nil
}

func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, start, end time.Time) ([]domain.TrialBalanceData, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.normal_balance,
		       COALESCE(SUM(pl.amount) FILTER (WHERE pl.transaction_date < $1 AND pl.direction = 'DEBIT'), 0),
		       COALESCE(SUM(pl.amount) FILTER (WHERE pl.transaction_date < $1 AND pl.direction = 'CREDIT'), 0),
		       COALESCE(SUM(pl.amount) FILTER (WHERE pl.transaction_date >= $1 AND pl.direction = 'DEBIT'), 0),
		       COALESCE(SUM(pl.amount) FILTER (WHERE pl.transaction_date >= $1 AND pl.direction = 'CREDIT'), 0),
		       c.name, c.sequence
		FROM accounts a
		LEFT JOIN account_categories c ON c.category_id = a.category_id
		LEFT JOIN (
			SELECT l.chart_of_account_id, l.direction, l.amount, e.transaction_date
			FROM journal_entry_lines l
			JOIN journal_entries e ON e.journal_entry_id = l.journal_entry_id
			WHERE e.status = 'POSTED' AND e.transaction_date <= $2
		) pl ON pl.chart_of_account_id = a.account_id
		WHERE a.is_posting AND a.is_active AND a.deleted_at IS NULL
		GROUP BY a.account_id, a.code, a.name, a.normal_balance, c.name, c.sequence
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	data := []domain.TrialBalanceData{}
	for rows.Next() {
		var d domain.TrialBalanceData
		var normalBalance string
		err := rows.Scan(
			&d.AccountID,
			&d.AccountCode,
			&d.AccountName,
			&normalBalance,
			&d.OpeningDebit,
			&d.OpeningCredit,
			&d.PeriodDebit,
			&d.PeriodCredit,
			&d.CategoryName,
			&d.CategorySequence,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		d.NormalBalance = domain.NormalBalance(normalBalance)
		data = append(data, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read trial balance rows", err)
	}
	return data, nil
}

func (r *PgxReportingRepository) GetIncomeStatementData(ctx context.Context, start, end time.Time) ([]domain.IncomeStatementData, error) {
	query := `
		SELECT c.category_id, c.name, c.sequence,
		       a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(pl.amount) FILTER (WHERE pl.direction = 'DEBIT'), 0),
		       COALESCE(SUM(pl.amount) FILTER (WHERE pl.direction = 'CREDIT'), 0)
		FROM account_categories c
		JOIN accounts a ON a.category_id = c.category_id
		  AND a.is_posting AND a.is_active AND a.deleted_at IS NULL
		LEFT JOIN (
			SELECT l.chart_of_account_id, l.direction, l.amount
			FROM journal_entry_lines l
			JOIN journal_entries e ON e.journal_entry_id = l.journal_entry_id
			WHERE e.status = 'POSTED' AND e.transaction_date BETWEEN $1 AND $2
		) pl ON pl.chart_of_account_id = a.account_id
		WHERE c.report_type = 'INCOME_STATEMENT'
		GROUP BY c.category_id, c.name, c.sequence, a.account_id, a.code, a.name, a.account_type
		ORDER BY c.sequence, a.code;
	`
	rows, err := r.Pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query income statement data", err)
	}
	defer rows.Close()

	data := []domain.IncomeStatementData{}
	for rows.Next() {
		var d domain.IncomeStatementData
		var accountType string
		err := rows.Scan(
			&d.CategoryID,
			&d.CategoryName,
			&d.Sequence,
			&d.AccountID,
			&d.AccountCode,
			&d.AccountName,
			&accountType,
			&d.Debit,
			&d.Credit,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan income statement row", err)
		}
		d.AccountType = domain.AccountType(accountType)
		data = append(data, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read income statement rows", err)
	}
	return data, nil
}

func (r *PgxReportingRepository) CountCashAccounts(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM accounts
		WHERE is_cash AND is_posting AND is_active AND deleted_at IS NULL;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count cash accounts", err)
	}
	return count, nil
}

func (r *PgxReportingRepository) GetCashMovementSums(ctx context.Context, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(l.amount) FILTER (WHERE l.direction = 'DEBIT'), 0),
			COALESCE(SUM(l.amount) FILTER (WHERE l.direction = 'CREDIT'), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.journal_entry_id = l.journal_entry_id
		JOIN accounts a ON a.account_id = l.chart_of_account_id
		WHERE a.is_cash AND a.is_posting AND a.is_active AND a.deleted_at IS NULL
		  AND e.status = 'POSTED'
		  AND e.transaction_date < $1;
	`
	var debit, credit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, before).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum cash movements", err)
	}
	return debit, credit, nil
}

func (r *PgxReportingRepository) GetCashFlowGroups(ctx context.Context, start, end time.Time) ([]domain.CashFlowGroupData, error) {
	query := `
		SELECT t.transaction_type_id, t.name, t.category,
		       COALESCE(SUM(l.amount) FILTER (WHERE l.direction = 'DEBIT'), 0),
		       COALESCE(SUM(l.amount) FILTER (WHERE l.direction = 'CREDIT'), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.journal_entry_id = l.journal_entry_id
		JOIN accounts a ON a.account_id = l.chart_of_account_id
		JOIN transaction_types t ON t.transaction_type_id = e.transaction_type_id
		WHERE a.is_cash AND a.is_posting AND a.is_active AND a.deleted_at IS NULL
		  AND e.status = 'POSTED'
		  AND e.transaction_date BETWEEN $1 AND $2
		GROUP BY t.transaction_type_id, t.name, t.category;
	`
	rows, err := r.Pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cash flow groups", err)
	}
	defer rows.Close()

	groups := []domain.CashFlowGroupData{}
	for rows.Next() {
		var g domain.CashFlowGroupData
		var category string
		err := rows.Scan(
			&g.TransactionTypeID,
			&g.TransactionTypeName,
			&category,
			&g.Debit,
			&g.Credit,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cash flow group", err)
		}
		g.Category = domain.TransactionTypeCategory(category)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read cash flow groups", err)
	}
	return groups, nil
}
