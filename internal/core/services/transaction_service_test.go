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
	portsrepo "github.com/PropLedger/prop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/PropLedger/prop_ledger_app/internal/core/ports/services"
	"github.com/PropLedger/prop_ledger_app/internal/core/services"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
	"github.com/PropLedger/prop_ledger_app/internal/utils/pagination"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, orgID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, orgID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, orgID string, filters portsrepo.TransactionFilters, limit int, afterDate *time.Time, afterCreatedAt *time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, orgID, filters, limit, afterDate, afterCreatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, orgID string, transactionID string, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, transactionID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.TransactionSvcFacade
	orgID           string
	userID          string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewTransactionServiceImpl(suite.mockRepo, suite.mockAccountRepo)
	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) makeTransactions(n int) []domain.Transaction {
	base := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	txns := make([]domain.Transaction, n)
	for i := range txns {
		txns[i] = domain.Transaction{
			TransactionID:   uuid.NewString(),
			OrgID:           suite.orgID,
			AccountID:       uuid.NewString(),
			TransactionDate: base.AddDate(0, 0, -i),
			TransactionType: domain.Debit,
			Amount:          decimal.NewFromInt(100),
			AuditFields: domain.AuditFields{
				CreatedAt: base.AddDate(0, 0, -i).Add(time.Hour),
			},
		}
	}
	return txns
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		PropertyID:      uuid.NewString(),
		AccountID:       accountID,
		TransactionDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		TransactionType: domain.Debit,
		Amount:          decimal.NewFromFloat(450.75),
		Description:     "June plumbing repair",
	}

	account := &domain.Account{AccountID: accountID, OrgID: suite.orgID, AccountType: domain.Expense}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.orgID, accountID).Return(account, nil).Once()
	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(suite.orgID, txn.OrgID)
	suite.Equal(accountID, txn.AccountID)
	suite.Equal(domain.Debit, txn.TransactionType)
	suite.True(txn.Amount.Equal(decimal.NewFromFloat(450.75)))
	suite.Equal(suite.userID, txn.CreatedBy)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		AccountID:       uuid.NewString(),
		TransactionDate: time.Now(),
		TransactionType: domain.Credit,
		Amount:          decimal.Zero,
		Description:     "bad entry",
	}

	txn, err := suite.service.CreateTransaction(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_AccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		AccountID:       accountID,
		TransactionDate: time.Now(),
		TransactionType: domain.Debit,
		Amount:          decimal.NewFromInt(50),
		Description:     "orphan entry",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.orgID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_FirstPageFull() {
	ctx := context.Background()
	params := dto.ListTransactionsParams{Limit: 3}

	// Repo returns limit+1 rows, signalling another page exists.
	txns := suite.makeTransactions(4)
	suite.mockRepo.On("ListTransactions", ctx, suite.orgID, mock.AnythingOfType("repositories.TransactionFilters"), 4, (*time.Time)(nil), (*time.Time)(nil)).Return(txns, nil).Once()

	page, nextToken, err := suite.service.ListTransactions(ctx, suite.orgID, params)

	suite.Require().NoError(err)
	suite.Len(page, 3)
	suite.Require().NotNil(nextToken)

	// The token must resume from the last returned row.
	date, createdAt, err := pagination.DecodeToken(*nextToken)
	suite.Require().NoError(err)
	suite.True(page[2].TransactionDate.Equal(date))
	suite.True(page[2].CreatedAt.Equal(createdAt))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_LastPage() {
	ctx := context.Background()
	params := dto.ListTransactionsParams{Limit: 10}

	txns := suite.makeTransactions(2)
	suite.mockRepo.On("ListTransactions", ctx, suite.orgID, mock.AnythingOfType("repositories.TransactionFilters"), 11, (*time.Time)(nil), (*time.Time)(nil)).Return(txns, nil).Once()

	page, nextToken, err := suite.service.ListTransactions(ctx, suite.orgID, params)

	suite.Require().NoError(err)
	suite.Len(page, 2)
	suite.Nil(nextToken)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_ResumeFromToken() {
	ctx := context.Background()
	lastDate := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	lastCreated := lastDate.Add(2 * time.Hour)
	token := pagination.EncodeToken(lastDate, lastCreated)
	params := dto.ListTransactionsParams{Limit: 5, NextToken: &token}

	suite.mockRepo.On("ListTransactions", ctx, suite.orgID, mock.AnythingOfType("repositories.TransactionFilters"), 6,
		mock.MatchedBy(func(d *time.Time) bool { return d != nil && d.Equal(lastDate) }),
		mock.MatchedBy(func(c *time.Time) bool { return c != nil && c.Equal(lastCreated) }),
	).Return(suite.makeTransactions(1), nil).Once()

	page, nextToken, err := suite.service.ListTransactions(ctx, suite.orgID, params)

	suite.Require().NoError(err)
	suite.Len(page, 1)
	suite.Nil(nextToken)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_BadToken() {
	ctx := context.Background()
	badToken := "not-a-token"
	params := dto.ListTransactionsParams{NextToken: &badToken}

	page, nextToken, err := suite.service.ListTransactions(ctx, suite.orgID, params)

	suite.Require().Error(err)
	suite.Nil(page)
	suite.Nil(nextToken)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NegativeAmount() {
	ctx := context.Background()
	testID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: testID,
		OrgID:         suite.orgID,
		Amount:        decimal.NewFromInt(100),
	}
	negative := decimal.NewFromInt(-5)
	req := dto.UpdateTransactionRequest{Amount: &negative}

	suite.mockRepo.On("FindTransactionByID", ctx, suite.orgID, testID).Return(existing, nil).Once()

	txn, err := suite.service.UpdateTransaction(ctx, suite.orgID, testID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransaction")

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_Success() {
	ctx := context.Background()
	testID := uuid.NewString()
	existing := &domain.Transaction{TransactionID: testID, OrgID: suite.orgID}

	suite.mockRepo.On("FindTransactionByID", ctx, suite.orgID, testID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteTransaction", ctx, suite.orgID, testID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.orgID, testID, suite.userID)

	suite.Require().NoError(err)

	suite.mockRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
