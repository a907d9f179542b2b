package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/schoolbooks/school_finance_app/internal/apperrors"
	"github.com/schoolbooks/school_finance_app/internal/core/domain"
	"github.com/schoolbooks/school_finance_app/internal/core/services"
	portssvc "github.com/schoolbooks/school_finance_app/internal/core/ports/services"
	"github.com/schoolbooks/school_finance_app/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockAccountRepository
	mockCategory *MockCategoryRepository
	service      portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockCategory = new(MockCategoryRepository)
	suite.service = services.NewAccountService(suite.mockRepo, suite.mockCategory)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:          "1-1000",
		Name:          "Cash on Hand",
		AccountType:   domain.Asset,
		NormalBalance: domain.NormalDebit,
		IsCash:        true,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal(req.Code, created.Code)
	suite.Equal(req.Name, created.Name)
	suite.Equal(domain.Asset, created.AccountType)
	suite.Equal(domain.NormalDebit, created.NormalBalance)
	suite.True(created.IsPosting)
	suite.True(created.IsCash)
	suite.True(created.IsActive)
	suite.Equal(creatorUserID, created.CreatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:          "1-1000",
		Name:          "Cash on Hand",
		AccountType:   domain.Asset,
		NormalBalance: domain.NormalDebit,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:          "1-1000",
		Name:          "Broken",
		AccountType:   domain.AccountType("PROFIT"),
		NormalBalance: domain.NormalDebit,
	}

	created, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:          "1-1100",
		Name:          "Petty Cash",
		AccountType:   domain.Asset,
		NormalBalance: domain.NormalDebit,
		ParentID:      &parentID,
	}

	suite.mockRepo.On("FindAccountByID", ctx, parentID, false).Return(nil, apperrors.ErrNotFound).Once()

	created, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")
}

func (suite *AccountServiceTestSuite) TestSuggestNextCode_RootLevel() {
	ctx := context.Background()
	suite.mockRepo.On("ListRootAccountCodes", ctx).Return([]string{"1-0000", "6-0000"}, nil).Once()

	code, err := suite.service.SuggestNextCode(ctx, nil)

	suite.Require().NoError(err)
	suite.Equal("7-0000", code)
}

func (suite *AccountServiceTestSuite) TestSuggestNextCode_EmptyTable() {
	ctx := context.Background()
	suite.mockRepo.On("ListRootAccountCodes", ctx).Return([]string{}, nil).Once()

	code, err := suite.service.SuggestNextCode(ctx, nil)

	suite.Require().NoError(err)
	suite.Equal("1-0000", code)
}

func (suite *AccountServiceTestSuite) TestSuggestNextCode_ChildlessParent() {
	ctx := context.Background()
	parent := &domain.Account{AccountID: uuid.NewString(), Code: "1-1000"}

	suite.mockRepo.On("FindAccountByID", ctx, parent.AccountID, false).Return(parent, nil).Once()
	suite.mockRepo.On("ListChildAccountCodes", ctx, parent.AccountID).Return([]string{}, nil).Once()

	code, err := suite.service.SuggestNextCode(ctx, &parent.AccountID)

	suite.Require().NoError(err)
	suite.Equal("1-1100", code)
}

func (suite *AccountServiceTestSuite) TestSuggestNextCode_ChildlessTopLevelParent() {
	ctx := context.Background()
	parent := &domain.Account{AccountID: uuid.NewString(), Code: "1-0000"}

	suite.mockRepo.On("FindAccountByID", ctx, parent.AccountID, false).Return(parent, nil).Once()
	suite.mockRepo.On("ListChildAccountCodes", ctx, parent.AccountID).Return([]string{}, nil).Once()

	code, err := suite.service.SuggestNextCode(ctx, &parent.AccountID)

	suite.Require().NoError(err)
	suite.Equal("1-1000", code)
}

func (suite *AccountServiceTestSuite) TestSuggestNextCode_DeepParentAppends() {
	ctx := context.Background()
	parent := &domain.Account{AccountID: uuid.NewString(), Code: "1-1110"}

	suite.mockRepo.On("FindAccountByID", ctx, parent.AccountID, false).Return(parent, nil).Once()
	suite.mockRepo.On("ListChildAccountCodes", ctx, parent.AccountID).Return([]string{}, nil).Once()

	code, err := suite.service.SuggestNextCode(ctx, &parent.AccountID)

	suite.Require().NoError(err)
	suite.Equal("1-111001", code)
}

func (suite *AccountServiceTestSuite) TestSuggestNextCode_WithChildren() {
	ctx := context.Background()
	parent := &domain.Account{AccountID: uuid.NewString(), Code: "1-1000"}

	suite.mockRepo.On("FindAccountByID", ctx, parent.AccountID, false).Return(parent, nil).Once()
	suite.mockRepo.On("ListChildAccountCodes", ctx, parent.AccountID).Return([]string{"1-1101", "1-1105"}, nil).Once()

	code, err := suite.service.SuggestNextCode(ctx, &parent.AccountID)

	suite.Require().NoError(err)
	suite.Equal("1-1106", code)
}

func (suite *AccountServiceTestSuite) TestSuggestNextCode_Idempotent() {
	ctx := context.Background()
	parent := &domain.Account{AccountID: uuid.NewString(), Code: "1-1000"}

	suite.mockRepo.On("FindAccountByID", ctx, parent.AccountID, false).Return(parent, nil).Twice()
	suite.mockRepo.On("ListChildAccountCodes", ctx, parent.AccountID).Return([]string{"1-1101"}, nil).Twice()

	first, err := suite.service.SuggestNextCode(ctx, &parent.AccountID)
	suite.Require().NoError(err)
	second, err := suite.service.SuggestNextCode(ctx, &parent.AccountID)
	suite.Require().NoError(err)

	suite.Equal(first, second)
}

func (suite *AccountServiceTestSuite) TestSuggestNextCode_ParentNotFound() {
	ctx := context.Background()
	parentID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, parentID, false).Return(nil, apperrors.ErrNotFound).Once()

	code, err := suite.service.SuggestNextCode(ctx, &parentID)

	suite.Empty(code)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_WithChildren() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Code: "1-0000"}

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID, false).Return(account, nil).Once()
	suite.mockRepo.On("HasChildren", ctx, account.AccountID).Return(true, nil).Once()

	err := suite.service.DeactivateAccount(ctx, account.AccountID, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SoftDeleteAccount")
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), Code: "1-1000"}

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID, false).Return(account, nil).Once()
	suite.mockRepo.On("HasChildren", ctx, account.AccountID).Return(false, nil).Once()
	suite.mockRepo.On("SoftDeleteAccount", ctx, account.AccountID, "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, account.AccountID, "user-1")

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// hierarchy fixture: root -> mid -> leaf, plus an unrelated sibling.
func (suite *AccountServiceTestSuite) hierarchyFixture() (root, mid, leaf domain.Account) {
	root = domain.Account{AccountID: "acc-root", Code: "1-0000"}
	mid = domain.Account{AccountID: "acc-mid", Code: "1-1000", ParentID: &root.AccountID}
	leaf = domain.Account{AccountID: "acc-leaf", Code: "1-1100", ParentID: &mid.AccountID}
	return root, mid, leaf
}

func (suite *AccountServiceTestSuite) TestGetAncestors_RootFirst() {
	ctx := context.Background()
	root, mid, leaf := suite.hierarchyFixture()
	sibling := domain.Account{AccountID: "acc-sibling", Code: "2-0000"}

	suite.mockRepo.On("ListAccounts", ctx).Return([]domain.Account{leaf, sibling, mid, root}, nil).Once()

	ancestors, err := suite.service.GetAncestors(ctx, leaf.AccountID)

	suite.Require().NoError(err)
	suite.Require().Len(ancestors, 2)
	suite.Equal(root.AccountID, ancestors[0].AccountID)
	suite.Equal(mid.AccountID, ancestors[1].AccountID)
}

func (suite *AccountServiceTestSuite) TestGetAncestors_DanglingParent() {
	ctx := context.Background()
	missingParent := "acc-gone"
	orphan := domain.Account{AccountID: "acc-orphan", Code: "9-0000", ParentID: &missingParent}

	suite.mockRepo.On("ListAccounts", ctx).Return([]domain.Account{orphan}, nil).Once()

	ancestors, err := suite.service.GetAncestors(ctx, orphan.AccountID)

	suite.Nil(ancestors)
	suite.ErrorIs(err, apperrors.ErrInternal)
}

func (suite *AccountServiceTestSuite) TestGetDescendants_DepthFirst() {
	ctx := context.Background()
	root, mid, leaf := suite.hierarchyFixture()
	mid2 := domain.Account{AccountID: "acc-mid2", Code: "1-2000", ParentID: &root.AccountID}

	suite.mockRepo.On("ListAccounts", ctx).Return([]domain.Account{mid2, leaf, root, mid}, nil).Once()

	descendants, err := suite.service.GetDescendants(ctx, root.AccountID)

	suite.Require().NoError(err)
	suite.Require().Len(descendants, 3)
	suite.Equal(mid.AccountID, descendants[0].AccountID)
	suite.Equal(leaf.AccountID, descendants[1].AccountID)
	suite.Equal(mid2.AccountID, descendants[2].AccountID)
}

func (suite *AccountServiceTestSuite) TestGetFullAccountCode() {
	ctx := context.Background()
	root, mid, leaf := suite.hierarchyFixture()

	suite.mockRepo.On("ListAccounts", ctx).Return([]domain.Account{root, mid, leaf}, nil).Once()

	fullCode, err := suite.service.GetFullAccountCode(ctx, leaf.AccountID)

	suite.Require().NoError(err)
	suite.Equal("1-0000.1-1000.1-1100", fullCode)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ReparentUnderDescendant() {
	ctx := context.Background()
	root, mid, leaf := suite.hierarchyFixture()

	suite.mockRepo.On("FindAccountByID", ctx, root.AccountID, false).Return(&root, nil).Once()
	suite.mockRepo.On("FindAccountByID", ctx, leaf.AccountID, false).Return(&leaf, nil).Once()
	suite.mockRepo.On("ListAccounts", ctx).Return([]domain.Account{root, mid, leaf}, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, root.AccountID, dto.UpdateAccountRequest{ParentID: &leaf.AccountID}, "user-1")

	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount")
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
