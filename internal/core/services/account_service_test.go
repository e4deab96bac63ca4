package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	portssvc "github.com/PropLedger/prop_ledger_app/internal/core/ports/services"
	"github.com/PropLedger/prop_ledger_app/internal/core/services"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, orgID string, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, orgID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, orgID string, accountType *domain.AccountType, includeInactive bool, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, orgID, accountType, includeInactive, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, orgID string, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, accountID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	orgID    string
	userID   string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountServiceImpl(suite.mockRepo)
	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountNumber: "4000",
		Name:          "Rental Income",
		AccountType:   domain.Revenue,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.AccountID)
	suite.Equal(suite.orgID, created.OrgID)
	suite.Equal(req.AccountNumber, created.AccountNumber)
	suite.Equal(req.Name, created.Name)
	suite.Equal(req.AccountType, created.AccountType)
	suite.True(created.IsActive)
	suite.False(created.Lifecycle.Deleted())
	suite.Equal(suite.userID, created.CreatedBy)
	suite.Equal(suite.userID, created.LastUpdatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_WithParent() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		AccountNumber:   "4010",
		Name:            "Laundry Income",
		AccountType:     domain.Revenue,
		ParentAccountID: &parentID,
	}

	parent := &domain.Account{AccountID: parentID, OrgID: suite.orgID, AccountType: domain.Revenue}
	suite.mockRepo.On("FindAccountByID", ctx, suite.orgID, parentID).Return(parent, nil).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(parentID, created.ParentAccountID)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		AccountNumber:   "4010",
		Name:            "Laundry Income",
		AccountType:     domain.Revenue,
		ParentAccountID: &parentID,
	}

	suite.mockRepo.On("FindAccountByID", ctx, suite.orgID, parentID).Return(nil, apperrors.ErrNotFound).Once()

	created, err := suite.service.CreateAccount(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount")

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateNumber() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		AccountNumber: "4000",
		Name:          "Rental Income",
		AccountType:   domain.Revenue,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateAccount(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_Success() {
	ctx := context.Background()
	testID := uuid.NewString()
	expected := &domain.Account{
		AccountID:     testID,
		OrgID:         suite.orgID,
		AccountNumber: "1000",
		Name:          "Operating Cash",
		AccountType:   domain.Asset,
		IsActive:      true,
	}

	suite.mockRepo.On("FindAccountByID", ctx, suite.orgID, testID).Return(expected, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, suite.orgID, testID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(expected, account)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, suite.orgID, testID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, suite.orgID, testID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_TypeFilter() {
	ctx := context.Background()
	typeStr := "EXPENSE"
	params := dto.ListAccountsParams{Limit: 100, AccountType: &typeStr}
	expected := []domain.Account{
		{AccountID: uuid.NewString(), AccountType: domain.Expense, Name: "Repairs"},
		{AccountID: uuid.NewString(), AccountType: domain.Expense, Name: "Utilities"},
	}

	expenseType := domain.Expense
	suite.mockRepo.On("ListAccounts", ctx, suite.orgID, &expenseType, false, 100, 0).Return(expected, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.orgID, params)

	suite.Require().NoError(err)
	suite.Len(accounts, 2)
	suite.Equal(expected, accounts)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyResult() {
	ctx := context.Background()
	params := dto.ListAccountsParams{Limit: 100}

	suite.mockRepo.On("ListAccounts", ctx, suite.orgID, (*domain.AccountType)(nil), false, 100, 0).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.orgID, params)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Success() {
	ctx := context.Background()
	testID := uuid.NewString()
	existing := &domain.Account{
		AccountID:     testID,
		OrgID:         suite.orgID,
		AccountNumber: "6100",
		Name:          "Repairs",
		AccountType:   domain.Expense,
		IsActive:      true,
	}
	newName := "Repairs and Maintenance"
	req := dto.UpdateAccountRequest{Name: &newName}

	suite.mockRepo.On("FindAccountByID", ctx, suite.orgID, testID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.AccountID == testID && acc.Name == newName && acc.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.orgID, testID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoFields() {
	ctx := context.Background()
	testID := uuid.NewString()
	existing := &domain.Account{
		AccountID: testID,
		OrgID:     suite.orgID,
		Name:      "Repairs",
		IsActive:  true,
	}

	suite.mockRepo.On("FindAccountByID", ctx, suite.orgID, testID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.orgID, testID, dto.UpdateAccountRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(existing.Name, updated.Name)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount")

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	testID := uuid.NewString()
	existing := &domain.Account{AccountID: testID, OrgID: suite.orgID, IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, suite.orgID, testID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteAccount", ctx, suite.orgID, testID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.orgID, testID, suite.userID)

	suite.Require().NoError(err)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_NotFound() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, suite.orgID, testID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteAccount(ctx, suite.orgID, testID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount")

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountsByIDs_RepoError() {
	ctx := context.Background()
	ids := []string{uuid.NewString()}

	suite.mockRepo.On("FindAccountsByIDs", ctx, suite.orgID, ids).Return(nil, assert.AnError).Once()

	accounts, err := suite.service.GetAccountsByIDs(ctx, suite.orgID, ids, suite.userID)

	suite.Require().Error(err)
	suite.Nil(accounts)

	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
