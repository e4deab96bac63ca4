package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	portssvc "github.com/PropLedger/prop_ledger_app/internal/core/ports/services"
	"github.com/PropLedger/prop_ledger_app/internal/core/services"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

// MockBankAccountRepository is a mock type for the BankAccountRepositoryFacade interface
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) FindBankAccountByID(ctx context.Context, orgID string, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, orgID, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) ListBankAccounts(ctx context.Context, orgID string, includeInactive bool) ([]domain.BankAccount, error) {
	args := m.Called(ctx, orgID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) DeleteBankAccount(ctx context.Context, orgID string, bankAccountID string, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, bankAccountID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type BankAccountServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockBankAccountRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.BankAccountSvcFacade
	orgID           string
	userID          string
}

func (suite *BankAccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBankAccountRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewBankAccountServiceImpl(suite.mockRepo, suite.mockAccountRepo)
	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *BankAccountServiceTestSuite) TestCreateBankAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateBankAccountRequest{
		AccountID:      accountID,
		BankName:       "First National",
		AccountNumber:  "000123456789",
		RoutingNumber:  "021000021",
		AccountType:    "checking",
		CurrentBalance: decimal.NewFromInt(25000),
	}

	ledgerAccount := &domain.Account{AccountID: accountID, OrgID: suite.orgID, AccountType: domain.Asset}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.orgID, accountID).Return(ledgerAccount, nil).Once()
	suite.mockRepo.On("SaveBankAccount", ctx, mock.MatchedBy(func(a domain.BankAccount) bool {
		return a.OrgID == suite.orgID && a.AccountID == accountID && a.IsActive
	})).Return(nil).Once()

	account, err := suite.service.CreateBankAccount(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.BankAccountID)
	suite.True(account.CurrentBalance.Equal(decimal.NewFromInt(25000)))

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestCreateBankAccount_LedgerAccountMissing() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateBankAccountRequest{
		AccountID:     accountID,
		BankName:      "First National",
		AccountNumber: "000123456789",
		AccountType:   "checking",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.orgID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.CreateBankAccount(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBankAccount")
}

func (suite *BankAccountServiceTestSuite) TestListBankAccounts_EmptyResult() {
	ctx := context.Background()

	suite.mockRepo.On("ListBankAccounts", ctx, suite.orgID, false).Return([]domain.BankAccount(nil), nil).Once()

	accounts, err := suite.service.ListBankAccounts(ctx, suite.orgID, false)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func (suite *BankAccountServiceTestSuite) TestUpdateBankAccount_Balance() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()
	existing := &domain.BankAccount{
		BankAccountID:  bankAccountID,
		OrgID:          suite.orgID,
		BankName:       "First National",
		CurrentBalance: decimal.NewFromInt(25000),
	}
	newBalance := decimal.NewFromInt(23150)
	req := dto.UpdateBankAccountRequest{CurrentBalance: &newBalance}

	suite.mockRepo.On("FindBankAccountByID", ctx, suite.orgID, bankAccountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateBankAccount", ctx, mock.MatchedBy(func(a domain.BankAccount) bool {
		return a.BankAccountID == bankAccountID && a.CurrentBalance.Equal(newBalance)
	})).Return(nil).Once()

	account, err := suite.service.UpdateBankAccount(ctx, suite.orgID, bankAccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(account.CurrentBalance.Equal(newBalance))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BankAccountServiceTestSuite) TestDeleteBankAccount_NotFound() {
	ctx := context.Background()
	bankAccountID := uuid.NewString()

	suite.mockRepo.On("FindBankAccountByID", ctx, suite.orgID, bankAccountID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteBankAccount(ctx, suite.orgID, bankAccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteBankAccount")
}

func TestBankAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankAccountServiceTestSuite))
}
