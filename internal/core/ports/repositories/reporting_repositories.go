package repositories

import (
	"context"
	"time"

	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository exposes read-only aggregates over posted journal lines.
// All queries exclude entries whose status is not POSTED. The repository
// returns raw unsigned sums; the reporting service applies normal-balance
// arithmetic, epsilon filtering, ordering and formatting.
type ReportingRepository interface {
	// GetAccountMovementSums returns unsigned debit/credit totals for the
	// account over posted lines strictly before the given date.
	GetAccountMovementSums(ctx context.Context, accountID string, before time.Time) (debit, credit decimal.Decimal, err error)
	// ListAccountLines returns posted lines for the account within
	// [start, end] inclusive, ordered by (transaction_date, entry, line).
	ListAccountLines(ctx context.Context, accountID string, start, end time.Time) ([]domain.LedgerLine, error)
	// GetTrialBalanceData returns one row per posting+active account with
	// opening sums (before start) and period sums ([start, end]).
	GetTrialBalanceData(ctx context.Context, start, end time.Time) ([]domain.TrialBalanceData, error)
	// GetIncomeStatementData returns (category, account) aggregates for
	// categories with report_type INCOME_STATEMENT over [start, end].
	GetIncomeStatementData(ctx context.Context, start, end time.Time) ([]domain.IncomeStatementData, error)
	// CountCashAccounts counts posting+active accounts flagged is_cash.
	CountCashAccounts(ctx context.Context) (int, error)
	// GetCashMovementSums returns unsigned debit/credit totals over all cash
	// accounts for posted lines strictly before the given date.
	GetCashMovementSums(ctx context.Context, before time.Time) (debit, credit decimal.Decimal, err error)
	// GetCashFlowGroups returns per-transaction-type debit/credit sums over
	// cash-account lines within [start, end].
	GetCashFlowGroups(ctx context.Context, start, end time.Time) ([]domain.CashFlowGroupData, error)
}
