package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolbooks/school_finance_app/internal/apperrors"
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	portsrepo "github.com/schoolbooks/school_finance_app/internal/core/ports/repositories"
	portssvc "github.com/schoolbooks/school_finance_app/internal/core/ports/services"
	"github.com/schoolbooks/school_finance_app/internal/utils/accounting"
)

// uncategorizedSequence sorts accounts without a category after every real
// category on the trial balance.
const uncategorizedSequence = 999

// reportingService builds the four financial reports from posted journal
// lines. Repositories hand back raw unsigned sums; all normal-balance
// arithmetic, epsilon filtering and ordering happens here.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) GetGeneralLedger(ctx context.Context, accountID string, start, end time.Time) (*domain.GeneralLedgerReport, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID, false)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return nil, err
	}

	openingDebit, openingCredit, err := s.reportingRepo.GetAccountMovementSums(ctx, accountID, start)
	if err != nil {
		return nil, err
	}
	opening := accounting.BalanceFromSums(openingDebit, openingCredit, account.NormalBalance)

	lines, err := s.reportingRepo.ListAccountLines(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}

	running := opening
	rows := make([]domain.GeneralLedgerRow, len(lines))
	for i, line := range lines {
		running = running.Add(accounting.SignedMovement(line.Direction, line.Amount, account.NormalBalance))
		rows[i] = domain.GeneralLedgerRow{LedgerLine: line, RunningBalance: running}
	}

	return &domain.GeneralLedgerReport{
		Account:        *account,
		StartDate:      start,
		EndDate:        end,
		OpeningBalance: opening,
		Transactions:   rows,
		ClosingBalance: running,
	}, nil
}

func (s *reportingService) GetTrialBalance(ctx context.Context, start, end time.Time) (*domain.TrialBalanceReport, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	data, err := s.reportingRepo.GetTrialBalanceData(ctx, start, end)
	if err != nil {
		return nil, err
	}

	type sortableRow struct {
		row      domain.TrialBalanceRow
		sequence int
	}
	rows := make([]sortableRow, 0, len(data))
	for _, d := range data {
		opening := accounting.BalanceFromSums(d.OpeningDebit, d.OpeningCredit, d.NormalBalance)
		if accounting.IsZeroAmount(opening) && accounting.IsZeroAmount(d.PeriodDebit) && accounting.IsZeroAmount(d.PeriodCredit) {
			continue
		}
		closing := opening.Add(accounting.BalanceFromSums(d.PeriodDebit, d.PeriodCredit, d.NormalBalance))

		categoryName := ""
		if d.CategoryName != nil {
			categoryName = *d.CategoryName
		}
		sequence := uncategorizedSequence
		if d.CategorySequence != nil {
			sequence = *d.CategorySequence
		}

		rows = append(rows, sortableRow{
			row: domain.TrialBalanceRow{
				AccountID:      d.AccountID,
				AccountCode:    d.AccountCode,
				AccountName:    d.AccountName,
				CategoryName:   categoryName,
				OpeningBalance: opening,
				DebitMutation:  d.PeriodDebit,
				CreditMutation: d.PeriodCredit,
				ClosingBalance: closing,
			},
			sequence: sequence,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].sequence != rows[j].sequence {
			return rows[i].sequence < rows[j].sequence
		}
		return rows[i].row.AccountCode < rows[j].row.AccountCode
	})

	report := &domain.TrialBalanceReport{
		StartDate: start,
		EndDate:   end,
		Rows:      make([]domain.TrialBalanceRow, len(rows)),
	}
	for i, r := range rows {
		report.Rows[i] = r.row
	}
	return report, nil
}

func (s *reportingService) GetIncomeStatement(ctx context.Context, start, end time.Time) (*domain.IncomeStatementReport, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	data, err := s.reportingRepo.GetIncomeStatementData(ctx, start, end)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(data, func(i, j int) bool {
		if data[i].Sequence != data[j].Sequence {
			return data[i].Sequence < data[j].Sequence
		}
		if data[i].CategoryID != data[j].CategoryID {
			return data[i].CategoryID < data[j].CategoryID
		}
		return data[i].AccountCode < data[j].AccountCode
	})

	report := &domain.IncomeStatementReport{
		StartDate:    start,
		EndDate:      end,
		Categories:   []domain.IncomeStatementCategory{},
		TotalRevenue: decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	var current *domain.IncomeStatementCategory
	flush := func() {
		if current == nil || len(current.Accounts) == 0 {
			current = nil
			return
		}
		report.Categories = append(report.Categories, *current)
		if current.AccountType == domain.Revenue {
			report.TotalRevenue = report.TotalRevenue.Add(current.Total)
		} else {
			report.TotalExpense = report.TotalExpense.Add(current.Total)
		}
		current = nil
	}

	for _, d := range data {
		if current != nil && current.CategoryID != d.CategoryID {
			flush()
		}
		if current == nil {
			current = &domain.IncomeStatementCategory{
				CategoryID: d.CategoryID,
				Name:       d.CategoryName,
				Total:      decimal.Zero,
			}
		}

		// Revenue grows on the credit side; everything else is treated as
		// expense-like.
		var net decimal.Decimal
		if d.AccountType == domain.Revenue {
			net = d.Credit.Sub(d.Debit)
		} else {
			net = d.Debit.Sub(d.Credit)
		}
		if accounting.IsZeroAmount(net) {
			continue
		}

		if len(current.Accounts) == 0 {
			current.AccountType = d.AccountType
		}
		current.Accounts = append(current.Accounts, domain.IncomeStatementAccount{
			AccountID:   d.AccountID,
			AccountCode: d.AccountCode,
			AccountName: d.AccountName,
			Amount:      net,
		})
		current.Total = current.Total.Add(net)
	}
	flush()

	report.NetSurplus = report.TotalRevenue.Sub(report.TotalExpense)
	return report, nil
}

func (s *reportingService) GetCashFlow(ctx context.Context, start, end time.Time) (*domain.CashFlowReport, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	report := &domain.CashFlowReport{
		StartDate:            start,
		EndDate:              end,
		BeginningCashBalance: decimal.Zero,
		Operating:            []domain.CashFlowRow{},
		Investing:            []domain.CashFlowRow{},
		Financing:            []domain.CashFlowRow{},
		OperatingTotal:       decimal.Zero,
		InvestingTotal:       decimal.Zero,
		FinancingTotal:       decimal.Zero,
		NetChangeInCash:      decimal.Zero,
		EndingCashBalance:    decimal.Zero,
	}

	cashAccounts, err := s.reportingRepo.CountCashAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if cashAccounts == 0 {
		// No cash accounts configured: an explicit all-zero report, not an
		// error.
		return report, nil
	}

	// Cash is inherently an asset, so cash accounts are debit-increasing
	// regardless of their stated normal balance.
	beginDebit, beginCredit, err := s.reportingRepo.GetCashMovementSums(ctx, start)
	if err != nil {
		return nil, err
	}
	report.BeginningCashBalance = beginDebit.Sub(beginCredit)

	groups, err := s.reportingRepo.GetCashFlowGroups(ctx, start, end)
	if err != nil {
		return nil, err
	}

	for _, g := range groups {
		net := g.Debit.Sub(g.Credit)
		if accounting.IsZeroAmount(net) {
			continue
		}
		row := domain.CashFlowRow{
			TransactionTypeID:   g.TransactionTypeID,
			TransactionTypeName: g.TransactionTypeName,
			NetCashFlow:         net,
		}
		switch domain.CashFlowActivityFor(g.Category) {
		case domain.ActivityInvesting:
			report.Investing = append(report.Investing, row)
			report.InvestingTotal = report.InvestingTotal.Add(net)
		case domain.ActivityFinancing:
			report.Financing = append(report.Financing, row)
			report.FinancingTotal = report.FinancingTotal.Add(net)
		default:
			report.Operating = append(report.Operating, row)
			report.OperatingTotal = report.OperatingTotal.Add(net)
		}
	}

	byName := func(rows []domain.CashFlowRow) {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].TransactionTypeName < rows[j].TransactionTypeName
		})
	}
	byName(report.Operating)
	byName(report.Investing)
	byName(report.Financing)

	report.NetChangeInCash = report.OperatingTotal.Add(report.InvestingTotal).Add(report.FinancingTotal)
	report.EndingCashBalance = report.BeginningCashBalance.Add(report.NetChangeInCash)
	return report, nil
}

func validateRange(start, end time.Time) error {
	if end.Before(start) {
		return apperrors.NewValidationError("endDate must not be before startDate")
	}
	return nil
}
