package services_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

func (m *MockHUDRepository) SaveHouseholdMember(ctx context.Context, member domain.HouseholdMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockHUDRepository) FindHouseholdMemberByID(ctx context.Context, orgID string, memberID string) (*domain.HouseholdMember, error) {
	args := m.Called(ctx, orgID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HouseholdMember), args.Error(1)
}

func (m *MockHUDRepository) ListHouseholdMembers(ctx context.Context, orgID string, certificationID string) ([]domain.HouseholdMember, error) {
	args := m.Called(ctx, orgID, certificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HouseholdMember), args.Error(1)
}

func (m *MockHUDRepository) UpdateHouseholdMember(ctx context.Context, orgID string, member domain.HouseholdMember) error {
	args := m.Called(ctx, orgID, member)
	return args.Error(0)
}

func (m *MockHUDRepository) DeleteHouseholdMember(ctx context.Context, orgID string, memberID string, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, memberID, userID, now)
	return args.Error(0)
}

func (m *MockHUDRepository) SaveIncomeSource(ctx context.Context, source domain.IncomeSource) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockHUDRepository) FindIncomeSourceByID(ctx context.Context, orgID string, sourceID string) (*domain.IncomeSource, error) {
	args := m.Called(ctx, orgID, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeSource), args.Error(1)
}

func (m *MockHUDRepository) ListIncomeSources(ctx context.Context, orgID string, memberID string) ([]domain.IncomeSource, error) {
	args := m.Called(ctx, orgID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncomeSource), args.Error(1)
}

func (m *MockHUDRepository) UpdateIncomeSource(ctx context.Context, orgID string, source domain.IncomeSource) error {
	args := m.Called(ctx, orgID, source)
	return args.Error(0)
}

func (m *MockHUDRepository) DeleteIncomeSource(ctx context.Context, orgID string, sourceID string, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, sourceID, userID, now)
	return args.Error(0)
}

func (m *MockHUDRepository) SaveInspection(ctx context.Context, inspection domain.REACInspection) error {
	args := m.Called(ctx, inspection)
	return args.Error(0)
}

func (m *MockHUDRepository) FindInspectionByID(ctx context.Context, orgID string, inspectionID string) (*domain.REACInspection, error) {
	args := m.Called(ctx, orgID, inspectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.REACInspection), args.Error(1)
}

func (m *MockHUDRepository) ListInspections(ctx context.Context, orgID string, propertyID *string) ([]domain.REACInspection, error) {
	args := m.Called(ctx, orgID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.REACInspection), args.Error(1)
}

func (m *MockHUDRepository) ListUpcomingInspections(ctx context.Context, orgID string, from time.Time, cutoff time.Time) ([]domain.REACInspection, error) {
	args := m.Called(ctx, orgID, from, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.REACInspection), args.Error(1)
}

func (m *MockHUDRepository) UpdateInspection(ctx context.Context, inspection domain.REACInspection) error {
	args := m.Called(ctx, inspection)
	return args.Error(0)
}

// --- Test Cases ---

func (suite *HUDServiceTestSuite) TestAddHouseholdMember_Success() {
	ctx := context.Background()
	certificationID := uuid.NewString()
	req := dto.CreateHouseholdMemberRequest{
		FullName:         "Maria Gonzalez",
		SSNLast4:         "1234",
		DateOfBirth:      time.Date(1960, 7, 4, 0, 0, 0, 0, time.UTC),
		RelationshipType: "head",
		AnnualIncome:     decimal.NewFromInt(14000),
	}

	suite.mockRepo.On("FindCertificationByID", ctx, suite.orgID, certificationID).
		Return(&domain.TenantIncomeCertification{CertificationID: certificationID, OrgID: suite.orgID}, nil).Once()
	suite.mockRepo.On("SaveHouseholdMember", ctx, mock.MatchedBy(func(m domain.HouseholdMember) bool {
		return m.CertificationID == certificationID &&
			m.FullName == "Maria Gonzalez" &&
			m.AnnualIncome.Equal(decimal.NewFromInt(14000)) &&
			m.CreatedBy == suite.userID
	})).Return(nil).Once()

	member, err := suite.service.AddHouseholdMember(ctx, suite.orgID, certificationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(member)
	suite.NotEmpty(member.MemberID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HUDServiceTestSuite) TestAddHouseholdMember_CertificationMissing() {
	ctx := context.Background()
	certificationID := uuid.NewString()

	suite.mockRepo.On("FindCertificationByID", ctx, suite.orgID, certificationID).
		Return(nil, apperrors.ErrNotFound).Once()

	member, err := suite.service.AddHouseholdMember(ctx, suite.orgID, certificationID, dto.CreateHouseholdMemberRequest{
		FullName:         "Orphan Member",
		DateOfBirth:      time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		RelationshipType: "spouse",
	}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(member)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveHouseholdMember", mock.Anything, mock.Anything)
}

func (suite *HUDServiceTestSuite) TestUpdateHouseholdMember_IncomeChange() {
	ctx := context.Background()
	memberID := uuid.NewString()
	existing := &domain.HouseholdMember{
		MemberID:         memberID,
		CertificationID:  uuid.NewString(),
		FullName:         "James Park",
		RelationshipType: "head",
		AnnualIncome:     decimal.NewFromInt(11000),
		Lifecycle:        domain.ActiveLifecycle(),
	}
	newIncome := decimal.NewFromInt(12500)

	suite.mockRepo.On("FindHouseholdMemberByID", ctx, suite.orgID, memberID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateHouseholdMember", ctx, suite.orgID, mock.MatchedBy(func(m domain.HouseholdMember) bool {
		return m.MemberID == memberID &&
			m.AnnualIncome.Equal(newIncome) &&
			m.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	member, err := suite.service.UpdateHouseholdMember(ctx, suite.orgID, memberID, dto.UpdateHouseholdMemberRequest{
		AnnualIncome: &newIncome,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(member.AnnualIncome.Equal(newIncome))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HUDServiceTestSuite) TestRemoveHouseholdMember_NotFound() {
	ctx := context.Background()
	memberID := uuid.NewString()

	suite.mockRepo.On("DeleteHouseholdMember", ctx, suite.orgID, memberID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrNotFound).Once()

	err := suite.service.RemoveHouseholdMember(ctx, suite.orgID, memberID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *HUDServiceTestSuite) TestAddIncomeSource_Success() {
	ctx := context.Background()
	memberID := uuid.NewString()
	req := dto.CreateIncomeSourceRequest{
		IncomeType:       "social_security",
		MonthlyAmount:    decimal.NewFromInt(1200),
		AnnualAmount:     decimal.NewFromInt(14400),
		VerificationType: "award_letter",
		VerificationDate: time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("FindHouseholdMemberByID", ctx, suite.orgID, memberID).
		Return(&domain.HouseholdMember{MemberID: memberID}, nil).Once()
	suite.mockRepo.On("SaveIncomeSource", ctx, mock.MatchedBy(func(s domain.IncomeSource) bool {
		return s.MemberID == memberID &&
			s.IncomeType == "social_security" &&
			s.AnnualAmount.Equal(decimal.NewFromInt(14400))
	})).Return(nil).Once()

	source, err := suite.service.AddIncomeSource(ctx, suite.orgID, memberID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(source.SourceID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HUDServiceTestSuite) TestAddIncomeSource_MemberMissing() {
	ctx := context.Background()
	memberID := uuid.NewString()

	suite.mockRepo.On("FindHouseholdMemberByID", ctx, suite.orgID, memberID).
		Return(nil, apperrors.ErrNotFound).Once()

	source, err := suite.service.AddIncomeSource(ctx, suite.orgID, memberID, dto.CreateIncomeSourceRequest{
		IncomeType:       "wages",
		MonthlyAmount:    decimal.NewFromInt(900),
		AnnualAmount:     decimal.NewFromInt(10800),
		VerificationType: "paystub",
		VerificationDate: time.Now(),
	}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(source)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveIncomeSource", mock.Anything, mock.Anything)
}

func (suite *HUDServiceTestSuite) TestUpdateIncomeSource_NoFields() {
	ctx := context.Background()
	sourceID := uuid.NewString()
	existing := &domain.IncomeSource{
		SourceID:      sourceID,
		MemberID:      uuid.NewString(),
		IncomeType:    "pension",
		MonthlyAmount: decimal.NewFromInt(800),
		AnnualAmount:  decimal.NewFromInt(9600),
		Lifecycle:     domain.ActiveLifecycle(),
	}

	suite.mockRepo.On("FindIncomeSourceByID", ctx, suite.orgID, sourceID).Return(existing, nil).Once()

	source, err := suite.service.UpdateIncomeSource(ctx, suite.orgID, sourceID, dto.UpdateIncomeSourceRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("pension", source.IncomeType)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateIncomeSource", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HUDServiceTestSuite) TestCreateInspection_Success() {
	ctx := context.Background()
	score := 87
	next := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateInspectionRequest{
		PropertyID:         uuid.NewString(),
		InspectionDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		InspectionType:     "annual",
		OverallScore:       &score,
		InspectionStatus:   "passed",
		DeficienciesCount:  3,
		NextInspectionDate: &next,
	}

	suite.mockRepo.On("SaveInspection", ctx, mock.MatchedBy(func(i domain.REACInspection) bool {
		return i.OrgID == suite.orgID &&
			i.PropertyID == req.PropertyID &&
			i.OverallScore != nil && *i.OverallScore == 87 &&
			i.NextInspectionDate != nil && i.NextInspectionDate.Equal(next)
	})).Return(nil).Once()

	inspection, err := suite.service.CreateInspection(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(inspection.InspectionID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HUDServiceTestSuite) TestListUpcomingInspections_Window() {
	ctx := context.Background()
	withinDays := 60
	before := time.Now()

	suite.mockRepo.On("ListUpcomingInspections", ctx, suite.orgID,
		mock.MatchedBy(func(from time.Time) bool {
			return !from.Before(before)
		}),
		mock.MatchedBy(func(cutoff time.Time) bool {
			// The cutoff lands the window length past the call time.
			return cutoff.After(before.AddDate(0, 0, withinDays-1))
		}),
	).Return([]domain.REACInspection{
		{InspectionID: uuid.NewString(), OrgID: suite.orgID},
	}, nil).Once()

	inspections, err := suite.service.ListUpcomingInspections(ctx, suite.orgID, withinDays)

	suite.Require().NoError(err)
	suite.Len(inspections, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HUDServiceTestSuite) TestUpdateInspection_NotFound() {
	ctx := context.Background()
	inspectionID := uuid.NewString()
	status := "failed"

	suite.mockRepo.On("FindInspectionByID", ctx, suite.orgID, inspectionID).
		Return(nil, apperrors.ErrNotFound).Once()

	inspection, err := suite.service.UpdateInspection(ctx, suite.orgID, inspectionID, dto.UpdateInspectionRequest{
		InspectionStatus: &status,
	}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(inspection)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateInspection", mock.Anything, mock.Anything)
}
