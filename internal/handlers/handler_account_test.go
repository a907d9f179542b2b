package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/schoolbooks/school_finance_app/internal/apperrors"
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	portssvc "github.com/schoolbooks/school_finance_app/internal/core/ports/services"
	"github.com/schoolbooks/school_finance_app/internal/dto"
	"github.com/schoolbooks/school_finance_app/internal/middleware"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, deleterUserID string) error {
	args := m.Called(ctx, accountID, deleterUserID)
	return args.Error(0)
}
func (m *MockAccountService) SuggestNextCode(ctx context.Context, parentID *string) (string, error) {
	args := m.Called(ctx, parentID)
	return args.String(0), args.Error(1)
}
func (m *MockAccountService) GetAncestors(ctx context.Context, accountID string) ([]domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) GetDescendants(ctx context.Context, accountID string) ([]domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) GetFullAccountCode(ctx context.Context, accountID string) (string, error) {
	args := m.Called(ctx, accountID)
	return args.String(0), args.Error(1)
}
func (m *MockAccountService) ListCategories(ctx context.Context) ([]domain.AccountCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountCategory), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockAccountService = new(MockAccountService)

	v1 := suite.router.Group("/api/v1", middleware.ActorMiddleware())
	registerAccountRoutes(v1, suite.mockAccountService)
	registerCategoryRoutes(v1, suite.mockAccountService)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	reqBody := dto.CreateAccountRequest{
		Code:          "1-1100",
		Name:          "Petty Cash",
		AccountType:   "ASSET",
		NormalBalance: "DEBIT",
	}
	created := &domain.Account{
		AccountID:     "acc-1",
		Code:          "1-1100",
		Name:          "Petty Cash",
		AccountType:   domain.Asset,
		NormalBalance: domain.NormalDebit,
		IsPosting:     true,
		IsActive:      true,
	}
	suite.mockAccountService.On("CreateAccount", mock.Anything, reqBody, "system").Return(created, nil).Once()

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("acc-1", resp.AccountID)
	suite.Equal("1-1100", resp.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidAccountType() {
	// oneof binding tag rejects the value before the service is reached.
	body := []byte(`{"code":"1-1100","name":"Petty Cash","accountType":"WEIRD","normalBalance":"DEBIT"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateCode() {
	reqBody := dto.CreateAccountRequest{
		Code:          "1-1100",
		Name:          "Petty Cash",
		AccountType:   "ASSET",
		NormalBalance: "DEBIT",
	}
	suite.mockAccountService.On("CreateAccount", mock.Anything, reqBody, "system").
		Return(nil, apperrors.ErrDuplicate).Once()

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountService.On("GetAccountByID", mock.Anything, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/missing", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestSuggestCode_Root() {
	suite.mockAccountService.On("SuggestNextCode", mock.Anything, (*string)(nil)).
		Return("7-0000", nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/suggest-code", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SuggestCodeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("7-0000", resp.Code)
}

func (suite *AccountHandlerTestSuite) TestSuggestCode_WithParent() {
	suite.mockAccountService.On("SuggestNextCode", mock.Anything, mock.MatchedBy(func(p *string) bool {
		return p != nil && *p == "acc-parent"
	})).Return("1-1100", nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/suggest-code?parentID=acc-parent", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SuggestCodeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("1-1100", resp.Code)
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_HasChildren() {
	suite.mockAccountService.On("DeactivateAccount", mock.Anything, "acc-1", "system").
		Return(apperrors.NewValidationError("account has child accounts")).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/accounts/acc-1", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetFullCode_Success() {
	suite.mockAccountService.On("GetFullAccountCode", mock.Anything, "acc-leaf").
		Return("1-0000.1-1000.1-1100", nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/acc-leaf/full-code", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.FullPathResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("1-0000.1-1000.1-1100", resp.FullCode)
}

func (suite *AccountHandlerTestSuite) TestListCategories_Success() {
	categories := []domain.AccountCategory{
		{CategoryID: "cat-1", Name: "Tuition Income", ReportType: domain.ReportIncomeStatement, Sequence: 1},
	}
	suite.mockAccountService.On("ListCategories", mock.Anything).Return(categories, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.CategoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("Tuition Income", resp[0].Name)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
