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
)

// MockHUDRepository is a mock type for the HUDRepositoryFacade interface
type MockHUDRepository struct {
	mock.Mock
}

func (m *MockHUDRepository) SaveCertification(ctx context.Context, cert domain.TenantIncomeCertification) error {
	args := m.Called(ctx, cert)
	return args.Error(0)
}

func (m *MockHUDRepository) FindCertificationByID(ctx context.Context, orgID string, certificationID string) (*domain.TenantIncomeCertification, error) {
	args := m.Called(ctx, orgID, certificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantIncomeCertification), args.Error(1)
}

func (m *MockHUDRepository) ListCertifications(ctx context.Context, orgID string, filters portsrepo.CertificationFilters, limit int, offset int) ([]domain.TenantIncomeCertification, error) {
	args := m.Called(ctx, orgID, filters, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TenantIncomeCertification), args.Error(1)
}

func (m *MockHUDRepository) ListExpiringCertifications(ctx context.Context, orgID string, cutoff time.Time) ([]domain.TenantIncomeCertification, error) {
	args := m.Called(ctx, orgID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TenantIncomeCertification), args.Error(1)
}

func (m *MockHUDRepository) UpdateCertification(ctx context.Context, cert domain.TenantIncomeCertification) error {
	args := m.Called(ctx, cert)
	return args.Error(0)
}

func (m *MockHUDRepository) MarkHUD50059Submitted(ctx context.Context, orgID string, certificationID string, submittedAt time.Time, userID string) error {
	args := m.Called(ctx, orgID, certificationID, submittedAt, userID)
	return args.Error(0)
}

func (m *MockHUDRepository) DeleteCertification(ctx context.Context, orgID string, certificationID string, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, certificationID, userID, now)
	return args.Error(0)
}

func (m *MockHUDRepository) SaveAllowance(ctx context.Context, allowance domain.UtilityAllowance) error {
	args := m.Called(ctx, allowance)
	return args.Error(0)
}

func (m *MockHUDRepository) FindLatestAllowance(ctx context.Context, orgID string, propertyID string, bedroomCount int) (*domain.UtilityAllowance, error) {
	args := m.Called(ctx, orgID, propertyID, bedroomCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UtilityAllowance), args.Error(1)
}

func (m *MockHUDRepository) ListAllowances(ctx context.Context, orgID string, propertyID string) ([]domain.UtilityAllowance, error) {
	args := m.Called(ctx, orgID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UtilityAllowance), args.Error(1)
}

func (m *MockHUDRepository) DeleteAllowance(ctx context.Context, orgID string, allowanceID string, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, allowanceID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type HUDServiceTestSuite struct {
	suite.Suite
	mockRepo *MockHUDRepository
	service  portssvc.HUDSvcFacade
	orgID    string
	userID   string
}

func (suite *HUDServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockHUDRepository)
	suite.service = services.NewHUDServiceImpl(suite.mockRepo)
	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *HUDServiceTestSuite) TestCalculateTenantRent_StandardCase() {
	ctx := context.Background()
	req := dto.CalculateRentRequest{
		AnnualIncome:     decimal.NewFromInt(12000), // 1000/month
		UtilityAllowance: decimal.NewFromInt(50),
		ContractRent:     decimal.NewFromInt(800),
	}

	calc := suite.service.CalculateTenantRent(ctx, req)

	// 30% of 1000 monthly income less the 50 allowance.
	suite.True(calc.TenantRent.Equal(decimal.NewFromInt(250)), "tenant rent was %s", calc.TenantRent)
	suite.True(calc.SubsidyAmount.Equal(decimal.NewFromInt(550)), "subsidy was %s", calc.SubsidyAmount)
	suite.True(calc.MonthlyIncome.Equal(decimal.NewFromInt(1000)))
}

func (suite *HUDServiceTestSuite) TestCalculateTenantRent_HouseholdSizeDoesNotChangeFormula() {
	ctx := context.Background()
	base := dto.CalculateRentRequest{
		AnnualIncome:     decimal.NewFromInt(12000),
		UtilityAllowance: decimal.NewFromInt(50),
		ContractRent:     decimal.NewFromInt(800),
	}
	sized := base
	sized.HouseholdSize = 4

	plain := suite.service.CalculateTenantRent(ctx, base)
	withSize := suite.service.CalculateTenantRent(ctx, sized)

	suite.True(plain.TenantRent.Equal(withSize.TenantRent))
	suite.True(plain.SubsidyAmount.Equal(withSize.SubsidyAmount))
}

func (suite *HUDServiceTestSuite) TestCalculateTenantRent_FlooredAtZero() {
	ctx := context.Background()
	req := dto.CalculateRentRequest{
		AnnualIncome:     decimal.NewFromInt(1200), // 100/month, 30% = 30
		UtilityAllowance: decimal.NewFromInt(75),
		ContractRent:     decimal.NewFromInt(600),
	}

	calc := suite.service.CalculateTenantRent(ctx, req)

	suite.True(calc.TenantRent.IsZero(), "tenant rent was %s", calc.TenantRent)
	suite.True(calc.SubsidyAmount.Equal(decimal.NewFromInt(600)))
}

func (suite *HUDServiceTestSuite) TestCreateCertification_ComputesRentSplit() {
	ctx := context.Background()
	req := dto.CreateCertificationRequest{
		TenantID:          uuid.NewString(),
		PropertyID:        uuid.NewString(),
		CertificationDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		EffectiveDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CertType:          domain.CertAnnual,
		HouseholdSize:     2,
		AnnualIncome:      decimal.NewFromInt(12000),
		UtilityAllowance:  decimal.NewFromInt(50),
		ContractRent:      decimal.NewFromInt(800),
	}

	suite.mockRepo.On("SaveCertification", ctx, mock.MatchedBy(func(c domain.TenantIncomeCertification) bool {
		return c.TenantRentPortion.Equal(decimal.NewFromInt(250)) &&
			c.SubsidyAmount.Equal(decimal.NewFromInt(550)) &&
			c.Status == domain.CertPending
	})).Return(nil).Once()

	cert, err := suite.service.CreateCertification(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(cert)
	suite.Equal(domain.CertPending, cert.Status)
	suite.False(cert.HUD50059Submitted)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HUDServiceTestSuite) TestUpdateCertification_IncomeChangeRecomputesSplit() {
	ctx := context.Background()
	certID := uuid.NewString()
	existing := &domain.TenantIncomeCertification{
		CertificationID:   certID,
		OrgID:             suite.orgID,
		AnnualIncome:      decimal.NewFromInt(12000),
		TenantRentPortion: decimal.NewFromInt(250),
		UtilityAllowance:  decimal.NewFromInt(50),
		SubsidyAmount:     decimal.NewFromInt(550),
		Status:            domain.CertApproved,
	}
	newIncome := decimal.NewFromInt(24000) // 2000/month, 30% = 600, less 50 = 550
	req := dto.UpdateCertificationRequest{AnnualIncome: &newIncome}

	suite.mockRepo.On("FindCertificationByID", ctx, suite.orgID, certID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCertification", ctx, mock.MatchedBy(func(c domain.TenantIncomeCertification) bool {
		return c.TenantRentPortion.Equal(decimal.NewFromInt(550)) &&
			c.SubsidyAmount.Equal(decimal.NewFromInt(250))
	})).Return(nil).Once()

	cert, err := suite.service.UpdateCertification(ctx, suite.orgID, certID, req, suite.userID)

	suite.Require().NoError(err)
	// The contract rent total is unchanged; only the split moved.
	suite.True(cert.TenantRentPortion.Add(cert.SubsidyAmount).Equal(decimal.NewFromInt(800)))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HUDServiceTestSuite) TestSubmitHUD50059_Approved() {
	ctx := context.Background()
	certID := uuid.NewString()
	existing := &domain.TenantIncomeCertification{
		CertificationID: certID,
		OrgID:           suite.orgID,
		Status:          domain.CertApproved,
	}

	suite.mockRepo.On("FindCertificationByID", ctx, suite.orgID, certID).Return(existing, nil).Once()
	suite.mockRepo.On("MarkHUD50059Submitted", ctx, suite.orgID, certID, mock.AnythingOfType("time.Time"), suite.userID).Return(nil).Once()

	cert, err := suite.service.SubmitHUD50059(ctx, suite.orgID, certID, suite.userID)

	suite.Require().NoError(err)
	suite.True(cert.HUD50059Submitted)
	suite.Require().NotNil(cert.HUD50059Date)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HUDServiceTestSuite) TestSubmitHUD50059_NotApproved() {
	ctx := context.Background()
	certID := uuid.NewString()
	existing := &domain.TenantIncomeCertification{
		CertificationID: certID,
		OrgID:           suite.orgID,
		Status:          domain.CertPending,
	}

	suite.mockRepo.On("FindCertificationByID", ctx, suite.orgID, certID).Return(existing, nil).Once()

	cert, err := suite.service.SubmitHUD50059(ctx, suite.orgID, certID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(cert)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkHUD50059Submitted")

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HUDServiceTestSuite) TestSubmitHUD50059_AlreadySubmitted() {
	ctx := context.Background()
	certID := uuid.NewString()
	submitted := time.Now().AddDate(0, -1, 0)
	existing := &domain.TenantIncomeCertification{
		CertificationID:   certID,
		OrgID:             suite.orgID,
		Status:            domain.CertApproved,
		HUD50059Submitted: true,
		HUD50059Date:      &submitted,
	}

	suite.mockRepo.On("FindCertificationByID", ctx, suite.orgID, certID).Return(existing, nil).Once()

	cert, err := suite.service.SubmitHUD50059(ctx, suite.orgID, certID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(cert)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkHUD50059Submitted")
}

func (suite *HUDServiceTestSuite) TestListExpiringCertifications_CutoffWindow() {
	ctx := context.Background()
	expected := []domain.TenantIncomeCertification{
		{CertificationID: uuid.NewString(), Status: domain.CertApproved, CertType: domain.CertAnnual},
	}

	suite.mockRepo.On("ListExpiringCertifications", ctx, suite.orgID, mock.MatchedBy(func(cutoff time.Time) bool {
		expectedCutoff := time.Now().AddDate(0, 0, 90)
		return cutoff.Sub(expectedCutoff).Abs() < time.Minute
	})).Return(expected, nil).Once()

	certs, err := suite.service.ListExpiringCertifications(ctx, suite.orgID, 90)

	suite.Require().NoError(err)
	suite.Len(certs, 1)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HUDServiceTestSuite) TestCreateUtilityAllowance_ComputesTotal() {
	ctx := context.Background()
	req := dto.CreateUtilityAllowanceRequest{
		PropertyID:    uuid.NewString(),
		BedroomCount:  2,
		Heating:       decimal.NewFromInt(25),
		Cooking:       decimal.NewFromInt(10),
		Lighting:      decimal.NewFromInt(15),
		WaterSewer:    decimal.NewFromInt(20),
		Trash:         decimal.NewFromInt(5),
		EffectiveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("SaveAllowance", ctx, mock.MatchedBy(func(a domain.UtilityAllowance) bool {
		return a.TotalAllowance.Equal(decimal.NewFromInt(75))
	})).Return(nil).Once()

	allowance, err := suite.service.CreateUtilityAllowance(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(allowance.TotalAllowance.Equal(decimal.NewFromInt(75)))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HUDServiceTestSuite) TestGetCurrentAllowance_LatestEffective() {
	ctx := context.Background()
	propertyID := uuid.NewString()
	latest := &domain.UtilityAllowance{
		AllowanceID:    uuid.NewString(),
		OrgID:          suite.orgID,
		PropertyID:     propertyID,
		BedroomCount:   2,
		TotalAllowance: decimal.NewFromInt(85),
		EffectiveDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("FindLatestAllowance", ctx, suite.orgID, propertyID, 2).Return(latest, nil).Once()

	allowance, err := suite.service.GetCurrentAllowance(ctx, suite.orgID, propertyID, 2)

	suite.Require().NoError(err)
	suite.Require().NotNil(allowance)
	suite.True(allowance.TotalAllowance.Equal(decimal.NewFromInt(85)))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HUDServiceTestSuite) TestGetCurrentAllowance_NoneOnRecord() {
	ctx := context.Background()
	propertyID := uuid.NewString()

	suite.mockRepo.On("FindLatestAllowance", ctx, suite.orgID, propertyID, 1).Return(nil, apperrors.ErrNotFound).Once()

	allowance, err := suite.service.GetCurrentAllowance(ctx, suite.orgID, propertyID, 1)

	suite.Require().Error(err)
	suite.Nil(allowance)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *HUDServiceTestSuite) TestDeleteUtilityAllowance_NotFound() {
	ctx := context.Background()
	allowanceID := uuid.NewString()

	suite.mockRepo.On("DeleteAllowance", ctx, suite.orgID, allowanceID, suite.userID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteUtilityAllowance(ctx, suite.orgID, allowanceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
}

func TestHUDServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HUDServiceTestSuite))
}
