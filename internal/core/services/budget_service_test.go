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

// MockBudgetRepository is a mock type for the BudgetRepositoryFacade interface
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, orgID string, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, orgID, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, orgID string, propertyID *string, year *int, month *int) ([]domain.Budget, error) {
	args := m.Called(ctx, orgID, propertyID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) GetActualTotals(ctx context.Context, orgID string, propertyID *string, year int, month *int) ([]domain.ActualTotal, error) {
	args := m.Called(ctx, orgID, propertyID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActualTotal), args.Error(1)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, orgID string, budgetID string, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, budgetID, userID, now)
	return args.Error(0)
}

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetReportEntries(ctx context.Context, orgID string, propertyID *string, from, to time.Time) ([]domain.ReportEntry, error) {
	args := m.Called(ctx, orgID, propertyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportEntry), args.Error(1)
}

func (m *MockReportingRepository) GetAccountNames(ctx context.Context, orgID string) (map[string]string, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// --- Test Suite Setup ---

type BudgetServiceTestSuite struct {
	suite.Suite
	mockRepo          *MockBudgetRepository
	mockAccountRepo   *MockAccountRepository
	mockReportingRepo *MockReportingRepository
	service           portssvc.BudgetSvcFacade
	orgID             string
	userID            string
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBudgetRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewBudgetServiceImpl(suite.mockRepo, suite.mockAccountRepo, suite.mockReportingRepo)
	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *BudgetServiceTestSuite) TestCreateBudget_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateBudgetRequest{
		PropertyID:     uuid.NewString(),
		AccountID:      accountID,
		Year:           2025,
		Month:          7,
		BudgetedAmount: decimal.NewFromInt(2500),
	}

	account := &domain.Account{AccountID: accountID, OrgID: suite.orgID, AccountType: domain.Expense}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.orgID, accountID).Return(account, nil).Once()
	suite.mockRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(budget)
	suite.NotEmpty(budget.BudgetID)
	suite.Equal(2025, budget.Year)
	suite.Equal(7, budget.Month)
	suite.True(budget.BudgetedAmount.Equal(decimal.NewFromInt(2500)))

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_AccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateBudgetRequest{
		AccountID:      accountID,
		Year:           2025,
		Month:          7,
		BudgetedAmount: decimal.NewFromInt(2500),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.orgID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	budget, err := suite.service.CreateBudget(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBudget")
}

func (suite *BudgetServiceTestSuite) TestBudgetVsActual_MatchesByPeriod() {
	ctx := context.Background()
	propertyID := uuid.NewString()
	repairsID := uuid.NewString()
	rentID := uuid.NewString()
	params := dto.BudgetVsActualParams{PropertyID: &propertyID, Year: 2025}

	budgets := []domain.Budget{
		{BudgetID: uuid.NewString(), AccountID: repairsID, Year: 2025, Month: 6, BudgetedAmount: decimal.NewFromInt(1000)},
		{BudgetID: uuid.NewString(), AccountID: rentID, Year: 2025, Month: 6, BudgetedAmount: decimal.NewFromInt(9000)},
		{BudgetID: uuid.NewString(), AccountID: repairsID, Year: 2025, Month: 7, BudgetedAmount: decimal.NewFromInt(1200)},
	}
	// Raw sums as stored, for expense and revenue accounts alike.
	actuals := []domain.ActualTotal{
		{AccountID: repairsID, Year: 2025, Month: 6, Total: decimal.NewFromInt(1400)},
		{AccountID: rentID, Year: 2025, Month: 6, Total: decimal.NewFromInt(9500)},
	}
	names := map[string]string{repairsID: "Repairs", rentID: "Rental Income"}

	suite.mockRepo.On("ListBudgets", ctx, suite.orgID, &propertyID, mock.AnythingOfType("*int"), (*int)(nil)).Return(budgets, nil).Once()
	suite.mockRepo.On("GetActualTotals", ctx, suite.orgID, &propertyID, 2025, (*int)(nil)).Return(actuals, nil).Once()
	suite.mockReportingRepo.On("GetAccountNames", ctx, suite.orgID).Return(names, nil).Once()

	report, err := suite.service.BudgetVsActual(ctx, suite.orgID, params, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(report)
	suite.Require().Len(report.Rows, 3)

	suite.Equal("Repairs", report.Rows[0].AccountName)
	suite.True(report.Rows[0].ActualAmount.Equal(decimal.NewFromInt(1400)))
	suite.True(report.Rows[0].Variance.Equal(decimal.NewFromInt(-400)))
	suite.True(report.Rows[0].VariancePercentage.Equal(decimal.NewFromInt(-40)))

	// Revenue account on budget: credit totals are not sign-flipped, so a
	// 9500 actual against a 9000 budget is a 500 overage, not an 18500 miss.
	suite.Equal("Rental Income", report.Rows[1].AccountName)
	suite.True(report.Rows[1].ActualAmount.Equal(decimal.NewFromInt(9500)))
	suite.True(report.Rows[1].Variance.Equal(decimal.NewFromInt(-500)))

	// July repairs have a budget but no recorded actuals.
	suite.True(report.Rows[2].ActualAmount.IsZero())
	suite.True(report.Rows[2].Variance.Equal(decimal.NewFromInt(1200)))

	suite.True(report.TotalBudgeted.Equal(decimal.NewFromInt(11200)))
	suite.True(report.TotalActual.Equal(decimal.NewFromInt(10900)))
	suite.True(report.TotalVariance.Equal(decimal.NewFromInt(300)))

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestBudgetVsActual_OrgWideScope() {
	ctx := context.Background()
	landscapingID := uuid.NewString()
	params := dto.BudgetVsActualParams{Year: 2025}

	budgets := []domain.Budget{
		{BudgetID: uuid.NewString(), AccountID: landscapingID, Year: 2025, Month: 4, BudgetedAmount: decimal.NewFromInt(600)},
	}
	actuals := []domain.ActualTotal{
		{AccountID: landscapingID, Year: 2025, Month: 4, Total: decimal.NewFromInt(450)},
	}

	suite.mockRepo.On("ListBudgets", ctx, suite.orgID, (*string)(nil), mock.AnythingOfType("*int"), (*int)(nil)).Return(budgets, nil).Once()
	suite.mockRepo.On("GetActualTotals", ctx, suite.orgID, (*string)(nil), 2025, (*int)(nil)).Return(actuals, nil).Once()
	suite.mockReportingRepo.On("GetAccountNames", ctx, suite.orgID).Return(map[string]string{landscapingID: "Landscaping"}, nil).Once()

	report, err := suite.service.BudgetVsActual(ctx, suite.orgID, params, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)
	suite.True(report.Rows[0].Variance.Equal(decimal.NewFromInt(150)))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestBudgetVsActual_SingleGroupedQuery() {
	ctx := context.Background()
	propertyID := uuid.NewString()
	params := dto.BudgetVsActualParams{PropertyID: &propertyID, Year: 2025}

	suite.mockRepo.On("ListBudgets", ctx, suite.orgID, &propertyID, mock.AnythingOfType("*int"), (*int)(nil)).Return([]domain.Budget{}, nil).Once()
	suite.mockRepo.On("GetActualTotals", ctx, suite.orgID, &propertyID, 2025, (*int)(nil)).Return([]domain.ActualTotal{}, nil).Once()
	suite.mockReportingRepo.On("GetAccountNames", ctx, suite.orgID).Return(map[string]string{}, nil).Once()

	report, err := suite.service.BudgetVsActual(ctx, suite.orgID, params, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(report.Rows)

	// Actuals must be fetched exactly once regardless of budget row count.
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "GetActualTotals", 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_Success() {
	ctx := context.Background()
	testID := uuid.NewString()
	existing := &domain.Budget{
		BudgetID:       testID,
		OrgID:          suite.orgID,
		Year:           2025,
		Month:          7,
		BudgetedAmount: decimal.NewFromInt(1000),
	}
	newAmount := decimal.NewFromInt(1250)
	req := dto.UpdateBudgetRequest{BudgetedAmount: &newAmount}

	suite.mockRepo.On("FindBudgetByID", ctx, suite.orgID, testID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.BudgetID == testID && b.BudgetedAmount.Equal(newAmount)
	})).Return(nil).Once()

	budget, err := suite.service.UpdateBudget(ctx, suite.orgID, testID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(budget.BudgetedAmount.Equal(newAmount))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestDeleteBudget_NotFound() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockRepo.On("FindBudgetByID", ctx, suite.orgID, testID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteBudget(ctx, suite.orgID, testID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteBudget")
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
