package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/schoolbooks/school_finance_app/internal/apperrors"
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	portssvc "github.com/schoolbooks/school_finance_app/internal/core/ports/services"
	"github.com/schoolbooks/school_finance_app/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReporting *MockReportingRepository
	mockAccounts  *MockAccountRepository
	service       portssvc.ReportingSvcFacade

	start time.Time
	end   time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReporting = new(MockReportingRepository)
	suite.mockAccounts = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockReporting, suite.mockAccounts)
	suite.start = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.end = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_RunningBalances() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:     "acc-cash",
		Code:          "1-1000",
		NormalBalance: domain.NormalDebit,
		AccountType:   domain.Asset,
		IsPosting:     true,
		IsActive:      true,
	}

	suite.mockAccounts.On("FindAccountByID", ctx, account.AccountID, false).Return(account, nil).Once()
	suite.mockReporting.On("GetAccountMovementSums", ctx, account.AccountID, suite.start).
		Return(dec("1000.00"), decimal.Zero, nil).Once()
	suite.mockReporting.On("ListAccountLines", ctx, account.AccountID, suite.start, suite.end).
		Return([]domain.LedgerLine{
			{JournalLineID: "l1", Direction: domain.Debit, Amount: dec("500.00")},
			{JournalLineID: "l2", Direction: domain.Credit, Amount: dec("200.00")},
		}, nil).Once()

	report, err := suite.service.GetGeneralLedger(ctx, account.AccountID, suite.start, suite.end)

	suite.Require().NoError(err)
	suite.Equal("1000.00", report.OpeningBalance.StringFixed(2))
	suite.Require().Len(report.Transactions, 2)
	suite.Equal("1500.00", report.Transactions[0].RunningBalance.StringFixed(2))
	suite.Equal("1300.00", report.Transactions[1].RunningBalance.StringFixed(2))
	suite.Equal("1300.00", report.ClosingBalance.StringFixed(2))
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_AccountNotFound() {
	ctx := context.Background()
	suite.mockAccounts.On("FindAccountByID", ctx, "missing", false).Return(nil, apperrors.ErrNotFound).Once()

	report, err := suite.service.GetGeneralLedger(ctx, "missing", suite.start, suite.end)

	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_InvalidRange() {
	ctx := context.Background()

	report, err := suite.service.GetGeneralLedger(ctx, "acc-cash", suite.end, suite.start)

	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_FilterAndSort() {
	ctx := context.Background()
	seqAssets := 1
	seqRevenue := 2
	assets := "Assets"
	revenue := "Revenue"

	suite.mockReporting.On("GetTrialBalanceData", ctx, suite.start, suite.end).
		Return([]domain.TrialBalanceData{
			{
				AccountID: "acc-uncat", AccountCode: "9-0000", AccountName: "Suspense",
				NormalBalance: domain.NormalDebit,
				OpeningDebit:  dec("10.00"), PeriodDebit: dec("5.00"),
			},
			{
				AccountID: "acc-rev", AccountCode: "4-1000", AccountName: "Tuition Revenue",
				NormalBalance: domain.NormalCredit,
				PeriodCredit:  dec("700.00"),
				CategoryName:  &revenue, CategorySequence: &seqRevenue,
			},
			{
				AccountID: "acc-dust", AccountCode: "8-0000", AccountName: "Rounding Dust",
				NormalBalance: domain.NormalDebit,
				OpeningDebit:  dec("0.005"), PeriodDebit: dec("0.004"),
			},
			{
				AccountID: "acc-cash", AccountCode: "1-1000", AccountName: "Cash on Hand",
				NormalBalance: domain.NormalDebit,
				OpeningDebit:  dec("1000.00"), PeriodDebit: dec("500.00"), PeriodCredit: dec("200.00"),
				CategoryName: &assets, CategorySequence: &seqAssets,
			},
		}, nil).Once()

	report, err := suite.service.GetTrialBalance(ctx, suite.start, suite.end)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 3) // dust row dropped

	suite.Equal("acc-cash", report.Rows[0].AccountID)
	suite.Equal("Assets", report.Rows[0].CategoryName)
	suite.Equal("1000.00", report.Rows[0].OpeningBalance.StringFixed(2))
	suite.Equal("500.00", report.Rows[0].DebitMutation.StringFixed(2))
	suite.Equal("200.00", report.Rows[0].CreditMutation.StringFixed(2))
	suite.Equal("1300.00", report.Rows[0].ClosingBalance.StringFixed(2))

	suite.Equal("acc-rev", report.Rows[1].AccountID)
	suite.Equal("700.00", report.Rows[1].ClosingBalance.StringFixed(2))

	// Uncategorized sorts last.
	suite.Equal("acc-uncat", report.Rows[2].AccountID)
	suite.Empty(report.Rows[2].CategoryName)
}

// The trial balance closing for an account must equal the general ledger
// closing over the same range when both are computed from the same sums.
func (suite *ReportingServiceTestSuite) TestTrialBalanceMatchesGeneralLedgerClosing() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:     "acc-cash",
		Code:          "1-1000",
		NormalBalance: domain.NormalDebit,
		IsPosting:     true,
		IsActive:      true,
	}

	suite.mockAccounts.On("FindAccountByID", ctx, account.AccountID, false).Return(account, nil).Once()
	suite.mockReporting.On("GetAccountMovementSums", ctx, account.AccountID, suite.start).
		Return(dec("250.00"), dec("100.00"), nil).Once()
	suite.mockReporting.On("ListAccountLines", ctx, account.AccountID, suite.start, suite.end).
		Return([]domain.LedgerLine{
			{JournalLineID: "l1", Direction: domain.Debit, Amount: dec("40.00")},
			{JournalLineID: "l2", Direction: domain.Credit, Amount: dec("15.00")},
		}, nil).Once()
	suite.mockReporting.On("GetTrialBalanceData", ctx, suite.start, suite.end).
		Return([]domain.TrialBalanceData{
			{
				AccountID: account.AccountID, AccountCode: account.Code, AccountName: "Cash on Hand",
				NormalBalance: domain.NormalDebit,
				OpeningDebit:  dec("250.00"), OpeningCredit: dec("100.00"),
				PeriodDebit: dec("40.00"), PeriodCredit: dec("15.00"),
			},
		}, nil).Once()

	ledger, err := suite.service.GetGeneralLedger(ctx, account.AccountID, suite.start, suite.end)
	suite.Require().NoError(err)
	trialBalance, err := suite.service.GetTrialBalance(ctx, suite.start, suite.end)
	suite.Require().NoError(err)

	suite.Require().Len(trialBalance.Rows, 1)
	suite.True(trialBalance.Rows[0].ClosingBalance.Equal(ledger.ClosingBalance))
	suite.Equal("175.00", ledger.ClosingBalance.StringFixed(2))
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement() {
	ctx := context.Background()

	suite.mockReporting.On("GetIncomeStatementData", ctx, suite.start, suite.end).
		Return([]domain.IncomeStatementData{
			{
				CategoryID: "cat-exp", CategoryName: "Operating Expenses", Sequence: 2,
				AccountID: "acc-sal", AccountCode: "5-1000", AccountName: "Salaries",
				AccountType: domain.Expense, Debit: dec("3000.00"), Credit: dec("0.00"),
			},
			{
				CategoryID: "cat-rev", CategoryName: "Revenue", Sequence: 1,
				AccountID: "acc-tuition", AccountCode: "4-1000", AccountName: "Tuition Revenue",
				AccountType: domain.Revenue, Debit: dec("200.00"), Credit: dec("5200.00"),
			},
			{
				CategoryID: "cat-rev", CategoryName: "Revenue", Sequence: 1,
				AccountID: "acc-dust", AccountCode: "4-9000", AccountName: "Rounding",
				AccountType: domain.Revenue, Debit: dec("0.004"), Credit: dec("0.005"),
			},
			{
				CategoryID: "cat-empty", CategoryName: "Dormant", Sequence: 3,
				AccountID: "acc-zero", AccountCode: "5-9000", AccountName: "Unused",
				AccountType: domain.Expense, Debit: dec("0.00"), Credit: dec("0.00"),
			},
		}, nil).Once()

	report, err := suite.service.GetIncomeStatement(ctx, suite.start, suite.end)

	suite.Require().NoError(err)
	suite.Require().Len(report.Categories, 2) // dormant category omitted

	suite.Equal("Revenue", report.Categories[0].Name)
	suite.Equal(domain.Revenue, report.Categories[0].AccountType)
	suite.Require().Len(report.Categories[0].Accounts, 1) // dust account dropped
	suite.Equal("5000.00", report.Categories[0].Accounts[0].Amount.StringFixed(2))

	suite.Equal("Operating Expenses", report.Categories[1].Name)
	suite.Equal("3000.00", report.Categories[1].Total.StringFixed(2))

	suite.Equal("5000.00", report.TotalRevenue.StringFixed(2))
	suite.Equal("3000.00", report.TotalExpense.StringFixed(2))
	suite.Equal("2000.00", report.NetSurplus.StringFixed(2))
}

func (suite *ReportingServiceTestSuite) TestCashFlow_NoCashAccounts() {
	ctx := context.Background()
	suite.mockReporting.On("CountCashAccounts", ctx).Return(0, nil).Once()

	report, err := suite.service.GetCashFlow(ctx, suite.start, suite.end)

	suite.Require().NoError(err)
	suite.Equal("0.00", report.BeginningCashBalance.StringFixed(2))
	suite.Equal("0.00", report.NetChangeInCash.StringFixed(2))
	suite.Equal("0.00", report.EndingCashBalance.StringFixed(2))
	suite.NotNil(report.Operating)
	suite.Empty(report.Operating)
	suite.NotNil(report.Investing)
	suite.NotNil(report.Financing)
	suite.mockReporting.AssertNotCalled(suite.T(), "GetCashMovementSums")
}

func (suite *ReportingServiceTestSuite) TestCashFlow_ActivityBuckets() {
	ctx := context.Background()

	suite.mockReporting.On("CountCashAccounts", ctx).Return(2, nil).Once()
	suite.mockReporting.On("GetCashMovementSums", ctx, suite.start).
		Return(dec("2000.00"), dec("500.00"), nil).Once()
	suite.mockReporting.On("GetCashFlowGroups", ctx, suite.start, suite.end).
		Return([]domain.CashFlowGroupData{
			{TransactionTypeID: "tt-loan", TransactionTypeName: "Bank Loan", Category: domain.CategoryLiability, Debit: dec("10000.00"), Credit: dec("0.00")},
			{TransactionTypeID: "tt-tuition", TransactionTypeName: "Tuition Payment", Category: domain.CategoryIncome, Debit: dec("5000.00"), Credit: dec("0.00")},
			{TransactionTypeID: "tt-equip", TransactionTypeName: "Equipment Purchase", Category: domain.CategoryAsset, Debit: dec("0.00"), Credit: dec("3000.00")},
			{TransactionTypeID: "tt-salaries", TransactionTypeName: "Salary Payout", Category: domain.CategoryPayroll, Debit: dec("0.00"), Credit: dec("2500.00")},
			{TransactionTypeID: "tt-dust", TransactionTypeName: "Rounding Noise", Category: domain.CategoryTransfer, Debit: dec("0.005"), Credit: dec("0.00")},
		}, nil).Once()

	report, err := suite.service.GetCashFlow(ctx, suite.start, suite.end)

	suite.Require().NoError(err)
	suite.Equal("1500.00", report.BeginningCashBalance.StringFixed(2))

	suite.Require().Len(report.Operating, 2) // dust group dropped
	// Operating sorted by name ascending.
	suite.Equal("Salary Payout", report.Operating[0].TransactionTypeName)
	suite.Equal("Tuition Payment", report.Operating[1].TransactionTypeName)
	suite.Equal("2500.00", report.OperatingTotal.StringFixed(2))

	suite.Require().Len(report.Investing, 1)
	suite.Equal("-3000.00", report.Investing[0].NetCashFlow.StringFixed(2))
	suite.Equal("-3000.00", report.InvestingTotal.StringFixed(2))

	suite.Require().Len(report.Financing, 1)
	suite.Equal("10000.00", report.FinancingTotal.StringFixed(2))

	suite.Equal("9500.00", report.NetChangeInCash.StringFixed(2))
	suite.Equal("11000.00", report.EndingCashBalance.StringFixed(2))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
