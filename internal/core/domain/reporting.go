package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is a raw posted journal line as read for reporting, annotated
// with its entry's header fields.
type LedgerLine struct {
	JournalLineID   string          `json:"journalLineID"`
	JournalEntryID  string          `json:"journalEntryID"`
	ReferenceNumber string          `json:"referenceNumber"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Direction       EntryDirection  `json:"direction"`
	Amount          decimal.Decimal `json:"amount"`
}

// GeneralLedgerRow is one line of the general ledger report with its running
// balance after the movement is applied.
type GeneralLedgerRow struct {
	LedgerLine
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerReport is the per-account ledger over a date range.
type GeneralLedgerReport struct {
	Account        Account            `json:"account"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	Transactions   []GeneralLedgerRow `json:"transactions"`
	ClosingBalance decimal.Decimal    `json:"closingBalance"`
}

// TrialBalanceData is the raw per-account aggregate the repository produces
// for the trial balance: signed-agnostic sums before and within the range.
type TrialBalanceData struct {
	AccountID        string
	AccountCode      string
	AccountName      string
	NormalBalance    NormalBalance
	OpeningDebit     decimal.Decimal
	OpeningCredit    decimal.Decimal
	PeriodDebit      decimal.Decimal
	PeriodCredit     decimal.Decimal
	CategoryName     *string
	CategorySequence *int
}

// TrialBalanceRow is one computed row of the trial balance report.
type TrialBalanceRow struct {
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	CategoryName   string          `json:"categoryName"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	DebitMutation  decimal.Decimal `json:"debitMutation"`
	CreditMutation decimal.Decimal `json:"creditMutation"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// TrialBalanceReport is the full trial balance over a date range.
type TrialBalanceReport struct {
	StartDate time.Time         `json:"startDate"`
	EndDate   time.Time         `json:"endDate"`
	Rows      []TrialBalanceRow `json:"rows"`
}

// IncomeStatementData is the raw repository aggregate for the income
// statement: one row per (category, account) with unsigned debit/credit sums.
type IncomeStatementData struct {
	CategoryID   string
	CategoryName string
	Sequence     int
	AccountID    string
	AccountCode  string
	AccountName  string
	AccountType  AccountType
	Debit        decimal.Decimal
	Credit       decimal.Decimal
}

// IncomeStatementAccount is one account's net movement within a category.
type IncomeStatementAccount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatementCategory groups accounts under one report category.
type IncomeStatementCategory struct {
	CategoryID  string                   `json:"categoryID"`
	Name        string                   `json:"name"`
	AccountType AccountType              `json:"accountType"` // Type of the category's first account
	Accounts    []IncomeStatementAccount `json:"accounts"`
	Total       decimal.Decimal          `json:"total"`
}

// IncomeStatementReport is the income statement over a date range.
type IncomeStatementReport struct {
	StartDate    time.Time                 `json:"startDate"`
	EndDate      time.Time                 `json:"endDate"`
	Categories   []IncomeStatementCategory `json:"categories"`
	TotalRevenue decimal.Decimal           `json:"totalRevenue"`
	TotalExpense decimal.Decimal           `json:"totalExpense"`
	NetSurplus   decimal.Decimal           `json:"netSurplus"`
}

// CashFlowGroupData is the raw repository aggregate for the cash flow report:
// debit/credit sums over cash-account lines grouped by transaction type.
type CashFlowGroupData struct {
	TransactionTypeID   string
	TransactionTypeName string
	Category            TransactionTypeCategory
	Debit               decimal.Decimal
	Credit              decimal.Decimal
}

// CashFlowRow is one transaction type's net cash movement within an activity.
type CashFlowRow struct {
	TransactionTypeID   string          `json:"transactionTypeID"`
	TransactionTypeName string          `json:"transactionTypeName"`
	NetCashFlow         decimal.Decimal `json:"netCashFlow"`
}

// CashFlowReport is the cash flow statement over a date range.
type CashFlowReport struct {
	StartDate            time.Time       `json:"startDate"`
	EndDate              time.Time       `json:"endDate"`
	BeginningCashBalance decimal.Decimal `json:"beginningCashBalance"`
	Operating            []CashFlowRow   `json:"operating"`
	Investing            []CashFlowRow   `json:"investing"`
	Financing            []CashFlowRow   `json:"financing"`
	OperatingTotal       decimal.Decimal `json:"operatingTotal"`
	InvestingTotal       decimal.Decimal `json:"investingTotal"`
	FinancingTotal       decimal.Decimal `json:"financingTotal"`
	NetChangeInCash      decimal.Decimal `json:"netChangeInCash"`
	EndingCashBalance    decimal.Decimal `json:"endingCashBalance"`
}
