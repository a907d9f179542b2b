package services

import (
	"context"
	"time"

	"github.com/schoolbooks/school_finance_app/internal/core/domain"
)

// ReportingSvcFacade defines the four financial report generators. Every
// report reads posted lines only and treats [start, end] as inclusive.
type ReportingSvcFacade interface {
	GetGeneralLedger(ctx context.Context, accountID string, start, end time.Time) (*domain.GeneralLedgerReport, error)
	GetTrialBalance(ctx context.Context, start, end time.Time) (*domain.TrialBalanceReport, error)
	GetIncomeStatement(ctx context.Context, start, end time.Time) (*domain.IncomeStatementReport, error)
	GetCashFlow(ctx context.Context, start, end time.Time) (*domain.CashFlowReport, error)
}
