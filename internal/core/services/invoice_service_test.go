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

// MockInvoiceRepository is a mock type for the InvoiceRepositoryFacade interface
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, orgID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, orgID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, orgID string, filters portsrepo.InvoiceFilters, limit int, offset int) ([]domain.Invoice, error) {
	args := m.Called(ctx, orgID, filters, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListVendorInvoicesForYear(ctx context.Context, orgID string, vendorID string, year int) ([]domain.Invoice, error) {
	args := m.Called(ctx, orgID, vendorID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) RecordPayment(ctx context.Context, orgID string, invoiceID string, amountPaid decimal.Decimal, status string, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, invoiceID, amountPaid, status, userID, now)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, orgID string, invoiceID string, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, invoiceID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockInvoiceRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.InvoiceSvcFacade
	orgID           string
	userID          string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInvoiceRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewInvoiceServiceImpl(suite.mockRepo, suite.mockAccountRepo)
	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_WithLineItems() {
	ctx := context.Background()
	repairsID := uuid.NewString()
	suppliesID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-1042",
		InvoiceDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Subtotal:      decimal.NewFromInt(900),
		TaxAmount:     decimal.NewFromInt(72),
		TotalAmount:   decimal.NewFromInt(972),
		LineItems: []dto.CreateInvoiceLineItemRequest{
			{AccountID: repairsID, Description: "Labor", Quantity: decimal.NewFromInt(6), UnitPrice: decimal.NewFromInt(100), Amount: decimal.NewFromInt(600)},
			{AccountID: suppliesID, Description: "Parts", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(300), Amount: decimal.NewFromInt(300)},
		},
	}

	accounts := map[string]domain.Account{
		repairsID:  {AccountID: repairsID},
		suppliesID: {AccountID: suppliesID},
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.orgID, []string{repairsID, suppliesID}).Return(accounts, nil).Once()
	suite.mockRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return len(inv.LineItems) == 2 &&
			inv.LineItems[0].InvoiceID == inv.InvoiceID &&
			inv.LineItems[1].InvoiceID == inv.InvoiceID &&
			inv.Status == domain.InvoiceUnpaid
	})).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.NotEmpty(invoice.InvoiceID)
	suite.Equal(domain.InvoiceUnpaid, invoice.Status)
	suite.Len(invoice.LineItems, 2)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_LineItemAccountMissing() {
	ctx := context.Background()
	knownID := uuid.NewString()
	missingID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-1043",
		InvoiceDate:   time.Now(),
		DueDate:       time.Now(),
		Subtotal:      decimal.NewFromInt(100),
		TotalAmount:   decimal.NewFromInt(100),
		LineItems: []dto.CreateInvoiceLineItemRequest{
			{AccountID: knownID, Description: "ok", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50), Amount: decimal.NewFromInt(50)},
			{AccountID: missingID, Description: "bad", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50), Amount: decimal.NewFromInt(50)},
		},
	}

	accounts := map[string]domain.Account{knownID: {AccountID: knownID}}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.orgID, []string{knownID, missingID}).Return(accounts, nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.orgID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveInvoice")

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_FullAmount() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{
		InvoiceID:   invoiceID,
		OrgID:       suite.orgID,
		TotalAmount: decimal.NewFromInt(500),
		Status:      domain.InvoiceUnpaid,
	}
	req := dto.RecordPaymentRequest{AmountPaid: decimal.NewFromInt(500)}

	suite.mockRepo.On("FindInvoiceByID", ctx, suite.orgID, invoiceID).Return(existing, nil).Once()
	suite.mockRepo.On("RecordPayment", ctx, suite.orgID, invoiceID, req.AmountPaid, domain.InvoicePaid, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	invoice, err := suite.service.RecordPayment(ctx, suite.orgID, invoiceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, invoice.Status)
	suite.True(invoice.AmountPaid.Equal(decimal.NewFromInt(500)))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_PartialAmount() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{
		InvoiceID:   invoiceID,
		OrgID:       suite.orgID,
		TotalAmount: decimal.NewFromInt(500),
		Status:      domain.InvoiceUnpaid,
	}
	req := dto.RecordPaymentRequest{AmountPaid: decimal.NewFromInt(200)}

	suite.mockRepo.On("FindInvoiceByID", ctx, suite.orgID, invoiceID).Return(existing, nil).Once()
	suite.mockRepo.On("RecordPayment", ctx, suite.orgID, invoiceID, req.AmountPaid, domain.InvoicePartiallyPaid, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	invoice, err := suite.service.RecordPayment(ctx, suite.orgID, invoiceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePartiallyPaid, invoice.Status)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestRecordPayment_NegativeAmount() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	req := dto.RecordPaymentRequest{AmountPaid: decimal.NewFromInt(-10)}

	invoice, err := suite.service.RecordPayment(ctx, suite.orgID, invoiceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "RecordPayment")
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_NotFound() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	newNumber := "INV-2000"
	req := dto.UpdateInvoiceRequest{InvoiceNumber: &newNumber}

	suite.mockRepo.On("FindInvoiceByID", ctx, suite.orgID, invoiceID).Return(nil, apperrors.ErrNotFound).Once()

	invoice, err := suite.service.UpdateInvoice(ctx, suite.orgID, invoiceID, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_Success() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{InvoiceID: invoiceID, OrgID: suite.orgID}

	suite.mockRepo.On("FindInvoiceByID", ctx, suite.orgID, invoiceID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteInvoice", ctx, suite.orgID, invoiceID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteInvoice(ctx, suite.orgID, invoiceID, suite.userID)

	suite.Require().NoError(err)

	suite.mockRepo.AssertExpectations(suite.T())
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
