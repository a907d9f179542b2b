package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/schoolbooks/school_finance_app/internal/core/domain"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string, includeDeleted bool) (*domain.Account, error) {
	args := m.Called(ctx, accountID, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListRootAccountCodes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccountRepository) ListChildAccountCodes(ctx context.Context, parentID string) ([]string, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SoftDeleteAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) HasChildren(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

// MockCategoryRepository is a mock type for the CategoryRepositoryFacade interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.AccountCategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountCategory), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]domain.AccountCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountCategory), args.Error(1)
}

// MockTransactionTypeRepository is a mock type for the TransactionTypeRepositoryFacade interface
type MockTransactionTypeRepository struct {
	mock.Mock
}

func (m *MockTransactionTypeRepository) SaveTransactionType(ctx context.Context, tt domain.TransactionType) error {
	args := m.Called(ctx, tt)
	return args.Error(0)
}

func (m *MockTransactionTypeRepository) FindTransactionTypeByID(ctx context.Context, transactionTypeID string) (*domain.TransactionType, error) {
	args := m.Called(ctx, transactionTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionType), args.Error(1)
}

func (m *MockTransactionTypeRepository) FindTransactionTypeByCode(ctx context.Context, code string) (*domain.TransactionType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionType), args.Error(1)
}

func (m *MockTransactionTypeRepository) ListTransactionTypes(ctx context.Context) ([]domain.TransactionType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionType), args.Error(1)
}

func (m *MockTransactionTypeRepository) UpdateTransactionType(ctx context.Context, tt domain.TransactionType, replaceAccounts bool) error {
	args := m.Called(ctx, tt, replaceAccounts)
	return args.Error(0)
}

func (m *MockTransactionTypeRepository) DeleteTransactionType(ctx context.Context, transactionTypeID string) error {
	args := m.Called(ctx, transactionTypeID)
	return args.Error(0)
}

// MockJournalRepository is a mock type for the JournalRepositoryFacade interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalEntryID(ctx context.Context, journalEntryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockJournalRepository) MarkJournalEntryVoid(ctx context.Context, journalEntryID string, userID string, now time.Time) (bool, error) {
	args := m.Called(ctx, journalEntryID, userID, now)
	return args.Bool(0), args.Error(1)
}

// MockStudentRepository is a mock type for the StudentRepositoryFacade interface
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetAccountMovementSums(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, before)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) ListAccountLines(ctx context.Context, accountID string, start, end time.Time) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, accountID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, start, end time.Time) ([]domain.TrialBalanceData, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceData), args.Error(1)
}

func (m *MockReportingRepository) GetIncomeStatementData(ctx context.Context, start, end time.Time) ([]domain.IncomeStatementData, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncomeStatementData), args.Error(1)
}

func (m *MockReportingRepository) CountCashAccounts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockReportingRepository) GetCashMovementSums(ctx context.Context, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetCashFlowGroups(ctx context.Context, start, end time.Time) ([]domain.CashFlowGroupData, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashFlowGroupData), args.Error(1)
}
