package dto

import (
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	"github.com/schoolbooks/school_finance_app/internal/utils/money"
)

// All monetary fields on report responses are fixed two-decimal strings.

// GeneralLedgerRowResponse is one displayed ledger line.
type GeneralLedgerRowResponse struct {
	JournalEntryID  string  `json:"journalEntryID"`
	ReferenceNumber string  `json:"referenceNumber"`
	TransactionDate string  `json:"transactionDate"`
	Description     string  `json:"description"`
	Debit           *string `json:"debit"`
	Credit          *string `json:"credit"`
	RunningBalance  string  `json:"runningBalance"`
}

// GeneralLedgerResponse is the per-account general ledger report.
type GeneralLedgerResponse struct {
	Account        AccountResponse            `json:"account"`
	StartDate      string                     `json:"startDate"`
	EndDate        string                     `json:"endDate"`
	OpeningBalance string                     `json:"openingBalance"`
	Transactions   []GeneralLedgerRowResponse `json:"transactions"`
	ClosingBalance string                     `json:"closingBalance"`
}

// ToGeneralLedgerResponse converts a domain report to its DTO.
func ToGeneralLedgerResponse(report *domain.GeneralLedgerReport) GeneralLedgerResponse {
	rows := make([]GeneralLedgerRowResponse, len(report.Transactions))
	for i, row := range report.Transactions {
		r := GeneralLedgerRowResponse{
			JournalEntryID:  row.JournalEntryID,
			ReferenceNumber: row.ReferenceNumber,
			TransactionDate: row.TransactionDate.Format(DateLayout),
			Description:     row.Description,
			RunningBalance:  money.Format(row.RunningBalance),
		}
		amount := money.Format(row.Amount)
		if row.Direction == domain.Debit {
			r.Debit = &amount
		} else {
			r.Credit = &amount
		}
		rows[i] = r
	}
	return GeneralLedgerResponse{
		Account:        ToAccountResponse(&report.Account),
		StartDate:      report.StartDate.Format(DateLayout),
		EndDate:        report.EndDate.Format(DateLayout),
		OpeningBalance: money.Format(report.OpeningBalance),
		Transactions:   rows,
		ClosingBalance: money.Format(report.ClosingBalance),
	}
}

// TrialBalanceRowResponse is one account row of the trial balance.
type TrialBalanceRowResponse struct {
	AccountID      string `json:"accountID"`
	AccountCode    string `json:"accountCode"`
	AccountName    string `json:"accountName"`
	CategoryName   string `json:"categoryName"`
	OpeningBalance string `json:"openingBalance"`
	DebitMutation  string `json:"debitMutation"`
	CreditMutation string `json:"creditMutation"`
	ClosingBalance string `json:"closingBalance"`
}

// TrialBalanceResponse is the trial balance report.
type TrialBalanceResponse struct {
	StartDate string                    `json:"startDate"`
	EndDate   string                    `json:"endDate"`
	Rows      []TrialBalanceRowResponse `json:"rows"`
}

// ToTrialBalanceResponse converts a domain report to its DTO.
func ToTrialBalanceResponse(report *domain.TrialBalanceReport) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(report.Rows))
	for i, row := range report.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID:      row.AccountID,
			AccountCode:    row.AccountCode,
			AccountName:    row.AccountName,
			CategoryName:   row.CategoryName,
			OpeningBalance: money.Format(row.OpeningBalance),
			DebitMutation:  money.Format(row.DebitMutation),
			CreditMutation: money.Format(row.CreditMutation),
			ClosingBalance: money.Format(row.ClosingBalance),
		}
	}
	return TrialBalanceResponse{
		StartDate: report.StartDate.Format(DateLayout),
		EndDate:   report.EndDate.Format(DateLayout),
		Rows:      rows,
	}
}

// IncomeStatementAccountResponse is one account's net movement.
type IncomeStatementAccountResponse struct {
	AccountID   string `json:"accountID"`
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	Amount      string `json:"amount"`
}

// IncomeStatementCategoryResponse groups account rows under a category.
type IncomeStatementCategoryResponse struct {
	CategoryID  string                           `json:"categoryID"`
	Name        string                           `json:"name"`
	AccountType domain.AccountType               `json:"accountType"`
	Accounts    []IncomeStatementAccountResponse `json:"accounts"`
	Total       string                           `json:"total"`
}

// IncomeStatementResponse is the income statement report.
type IncomeStatementResponse struct {
	StartDate    string                            `json:"startDate"`
	EndDate      string                            `json:"endDate"`
	Categories   []IncomeStatementCategoryResponse `json:"categories"`
	TotalRevenue string                            `json:"totalRevenue"`
	TotalExpense string                            `json:"totalExpense"`
	NetSurplus   string                            `json:"netSurplus"`
}

// ToIncomeStatementResponse converts a domain report to its DTO.
func ToIncomeStatementResponse(report *domain.IncomeStatementReport) IncomeStatementResponse {
	categories := make([]IncomeStatementCategoryResponse, len(report.Categories))
	for i, cat := range report.Categories {
		accounts := make([]IncomeStatementAccountResponse, len(cat.Accounts))
		for j, acc := range cat.Accounts {
			accounts[j] = IncomeStatementAccountResponse{
				AccountID:   acc.AccountID,
				AccountCode: acc.AccountCode,
				AccountName: acc.AccountName,
				Amount:      money.Format(acc.Amount),
			}
		}
		categories[i] = IncomeStatementCategoryResponse{
			CategoryID:  cat.CategoryID,
			Name:        cat.Name,
			AccountType: cat.AccountType,
			Accounts:    accounts,
			Total:       money.Format(cat.Total),
		}
	}
	return IncomeStatementResponse{
		StartDate:    report.StartDate.Format(DateLayout),
		EndDate:      report.EndDate.Format(DateLayout),
		Categories:   categories,
		TotalRevenue: money.Format(report.TotalRevenue),
		TotalExpense: money.Format(report.TotalExpense),
		NetSurplus:   money.Format(report.NetSurplus),
	}
}

// CashFlowRowResponse is one transaction type's net cash movement.
type CashFlowRowResponse struct {
	TransactionTypeID   string `json:"transactionTypeID"`
	TransactionTypeName string `json:"transactionTypeName"`
	NetCashFlow         string `json:"netCashFlow"`
}

// CashFlowResponse is the cash flow statement report.
type CashFlowResponse struct {
	StartDate            string                `json:"startDate"`
	EndDate              string                `json:"endDate"`
	BeginningCashBalance string                `json:"beginningCashBalance"`
	Operating            []CashFlowRowResponse `json:"operating"`
	Investing            []CashFlowRowResponse `json:"investing"`
	Financing            []CashFlowRowResponse `json:"financing"`
	OperatingTotal       string                `json:"operatingTotal"`
	InvestingTotal       string                `json:"investingTotal"`
	FinancingTotal       string                `json:"financingTotal"`
	NetChangeInCash      string                `json:"netChangeInCash"`
	EndingCashBalance    string                `json:"endingCashBalance"`
}

func toCashFlowRows(rows []domain.CashFlowRow) []CashFlowRowResponse {
	res := make([]CashFlowRowResponse, len(rows))
	for i, row := range rows {
		res[i] = CashFlowRowResponse{
			TransactionTypeID:   row.TransactionTypeID,
			TransactionTypeName: row.TransactionTypeName,
			NetCashFlow:         money.Format(row.NetCashFlow),
		}
	}
	return res
}

// ToCashFlowResponse converts a domain report to its DTO.
func ToCashFlowResponse(report *domain.CashFlowReport) CashFlowResponse {
	return CashFlowResponse{
		StartDate:            report.StartDate.Format(DateLayout),
		EndDate:              report.EndDate.Format(DateLayout),
		BeginningCashBalance: money.Format(report.BeginningCashBalance),
		Operating:            toCashFlowRows(report.Operating),
		Investing:            toCashFlowRows(report.Investing),
		Financing:            toCashFlowRows(report.Financing),
		OperatingTotal:       money.Format(report.OperatingTotal),
		InvestingTotal:       money.Format(report.InvestingTotal),
		FinancingTotal:       money.Format(report.FinancingTotal),
		NetChangeInCash:      money.Format(report.NetChangeInCash),
		EndingCashBalance:    money.Format(report.EndingCashBalance),
	}
}
