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

// MockVendorRepository is a mock type for the VendorRepositoryFacade interface
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) FindVendorByID(ctx context.Context, orgID string, vendorID string) (*domain.Vendor, error) {
	args := m.Called(ctx, orgID, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) ListVendors(ctx context.Context, orgID string, includeInactive bool, limit int, offset int) ([]domain.Vendor, error) {
	args := m.Called(ctx, orgID, includeInactive, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) UpdateVendor(ctx context.Context, vendor domain.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) DeleteVendor(ctx context.Context, orgID string, vendorID string, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, vendorID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type VendorServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockVendorRepository
	mockInvoiceRepo *MockInvoiceRepository
	service         portssvc.VendorSvcFacade
	orgID           string
	userID          string
}

func (suite *VendorServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockVendorRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.service = services.NewVendorServiceImpl(suite.mockRepo, suite.mockInvoiceRepo)
	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *VendorServiceTestSuite) TestCreateVendor_Success() {
	ctx := context.Background()
	req := dto.CreateVendorRequest{
		VendorName:    "Ace Plumbing LLC",
		ContactPerson: "Sam Rivera",
		Email:         "billing@aceplumbing.example",
		TaxID:         "12-3456789",
		PaymentTerms:  "NET30",
	}

	suite.mockRepo.On("SaveVendor", ctx, mock.MatchedBy(func(v domain.Vendor) bool {
		return v.OrgID == suite.orgID && v.VendorName == req.VendorName && v.IsActive && !v.Lifecycle.Deleted()
	})).Return(nil).Once()

	vendor, err := suite.service.CreateVendor(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(vendor)
	suite.NotEmpty(vendor.VendorID)
	suite.Equal(req.TaxID, vendor.TaxID)
	suite.Equal(suite.userID, vendor.CreatedBy)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *VendorServiceTestSuite) TestGet1099Data_SummarizesYear() {
	ctx := context.Background()
	vendorID := uuid.NewString()
	vendor := &domain.Vendor{
		VendorID:   vendorID,
		OrgID:      suite.orgID,
		VendorName: "Ace Plumbing LLC",
		TaxID:      "12-3456789",
	}
	invoices := []domain.Invoice{
		{
			InvoiceID:     uuid.NewString(),
			InvoiceNumber: "INV-2001",
			InvoiceDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			TotalAmount:   decimal.NewFromInt(1200),
			AmountPaid:    decimal.NewFromInt(1200),
			Status:        domain.InvoicePaid,
		},
		{
			InvoiceID:     uuid.NewString(),
			InvoiceNumber: "INV-2002",
			InvoiceDate:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			TotalAmount:   decimal.NewFromInt(800),
			AmountPaid:    decimal.NewFromInt(300),
			Status:        domain.InvoicePartiallyPaid,
		},
	}

	suite.mockRepo.On("FindVendorByID", ctx, suite.orgID, vendorID).Return(vendor, nil).Once()
	suite.mockInvoiceRepo.On("ListVendorInvoicesForYear", ctx, suite.orgID, vendorID, 2025).Return(invoices, nil).Once()

	data, err := suite.service.Get1099Data(ctx, suite.orgID, vendorID, 2025, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(data)
	suite.Equal("Ace Plumbing LLC", data.VendorName)
	suite.Equal("12-3456789", data.TaxID)
	suite.Equal(2025, data.Year)
	suite.Equal(2, data.TotalInvoices)
	suite.True(data.TotalAmount.Equal(decimal.NewFromInt(2000)))
	suite.True(data.PaidAmount.Equal(decimal.NewFromInt(1500)))
	suite.True(data.OutstandingAmount.Equal(decimal.NewFromInt(500)))

	suite.Require().Len(data.Invoices, 2)
	suite.Equal("INV-2001", data.Invoices[0].InvoiceNumber)
	suite.Equal("2025-03-10", data.Invoices[0].InvoiceDate)
	suite.Equal(domain.InvoicePartiallyPaid, data.Invoices[1].Status)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *VendorServiceTestSuite) TestGet1099Data_VendorNotFound() {
	ctx := context.Background()
	vendorID := uuid.NewString()

	suite.mockRepo.On("FindVendorByID", ctx, suite.orgID, vendorID).Return(nil, apperrors.ErrNotFound).Once()

	data, err := suite.service.Get1099Data(ctx, suite.orgID, vendorID, 2025, suite.userID)

	suite.Require().Error(err)
	suite.Nil(data)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "ListVendorInvoicesForYear")
}

func (suite *VendorServiceTestSuite) TestListVendors_EmptyResult() {
	ctx := context.Background()
	params := dto.ListVendorsParams{Limit: 100}

	suite.mockRepo.On("ListVendors", ctx, suite.orgID, false, 100, 0).Return([]domain.Vendor(nil), nil).Once()

	vendors, err := suite.service.ListVendors(ctx, suite.orgID, params)

	suite.Require().NoError(err)
	suite.NotNil(vendors)
	suite.Empty(vendors)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *VendorServiceTestSuite) TestUpdateVendor_Deactivate() {
	ctx := context.Background()
	vendorID := uuid.NewString()
	existing := &domain.Vendor{
		VendorID:   vendorID,
		OrgID:      suite.orgID,
		VendorName: "Ace Plumbing LLC",
		IsActive:   true,
	}
	inactive := false
	req := dto.UpdateVendorRequest{IsActive: &inactive}

	suite.mockRepo.On("FindVendorByID", ctx, suite.orgID, vendorID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateVendor", ctx, mock.MatchedBy(func(v domain.Vendor) bool {
		return v.VendorID == vendorID && !v.IsActive && v.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	vendor, err := suite.service.UpdateVendor(ctx, suite.orgID, vendorID, req, suite.userID)

	suite.Require().NoError(err)
	suite.False(vendor.IsActive)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *VendorServiceTestSuite) TestUpdateVendor_NoFields() {
	ctx := context.Background()
	vendorID := uuid.NewString()
	existing := &domain.Vendor{VendorID: vendorID, OrgID: suite.orgID, VendorName: "Ace Plumbing LLC"}

	suite.mockRepo.On("FindVendorByID", ctx, suite.orgID, vendorID).Return(existing, nil).Once()

	vendor, err := suite.service.UpdateVendor(ctx, suite.orgID, vendorID, dto.UpdateVendorRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Ace Plumbing LLC", vendor.VendorName)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateVendor")
}

func (suite *VendorServiceTestSuite) TestDeleteVendor_Success() {
	ctx := context.Background()
	vendorID := uuid.NewString()
	existing := &domain.Vendor{VendorID: vendorID, OrgID: suite.orgID}

	suite.mockRepo.On("FindVendorByID", ctx, suite.orgID, vendorID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteVendor", ctx, suite.orgID, vendorID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteVendor(ctx, suite.orgID, vendorID, suite.userID)

	suite.Require().NoError(err)

	suite.mockRepo.AssertExpectations(suite.T())
}

func TestVendorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VendorServiceTestSuite))
}
