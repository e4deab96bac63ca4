package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	portsrepo "github.com/PropLedger/prop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/PropLedger/prop_ledger_app/internal/core/ports/services"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

// vendorServiceImpl implements the VendorSvcFacade interface
type vendorServiceImpl struct {
	BaseService
	vendorRepo  portsrepo.VendorRepositoryFacade
	invoiceRepo portsrepo.InvoiceReader
}

// NewVendorServiceImpl creates a new vendor service
func NewVendorServiceImpl(repo portsrepo.VendorRepositoryFacade, invoiceRepo portsrepo.InvoiceReader) portssvc.VendorSvcFacade {
	return &vendorServiceImpl{
		vendorRepo:  repo,
		invoiceRepo: invoiceRepo,
	}
}

// Ensure vendorServiceImpl implements the VendorSvcFacade interface
var _ portssvc.VendorSvcFacade = (*vendorServiceImpl)(nil)

func (s *vendorServiceImpl) CreateVendor(ctx context.Context, orgID string, req dto.CreateVendorRequest, userID string) (*domain.Vendor, error) {
	now := time.Now()
	vendor := domain.Vendor{
		VendorID:      uuid.NewString(),
		OrgID:         orgID,
		VendorName:    req.VendorName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		TaxID:         req.TaxID,
		PaymentTerms:  req.PaymentTerms,
		IsActive:      true,
		Lifecycle:     domain.ActiveLifecycle(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.vendorRepo.SaveVendor(ctx, vendor); err != nil {
		s.LogError(ctx, err, "Failed to save vendor",
			slog.String("vendor_id", vendor.VendorID),
			slog.String("org_id", orgID))
		return nil, err
	}

	s.LogInfo(ctx, "Vendor created successfully",
		slog.String("vendor_id", vendor.VendorID),
		slog.String("org_id", orgID))
	return &vendor, nil
}

func (s *vendorServiceImpl) GetVendorByID(ctx context.Context, orgID string, vendorID string, userID string) (*domain.Vendor, error) {
	vendor, err := s.vendorRepo.FindVendorByID(ctx, orgID, vendorID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find vendor by ID",
				slog.String("vendor_id", vendorID))
		}
		return nil, err
	}
	return vendor, nil
}

func (s *vendorServiceImpl) ListVendors(ctx context.Context, orgID string, params dto.ListVendorsParams) ([]domain.Vendor, error) {
	vendors, err := s.vendorRepo.ListVendors(ctx, orgID, params.IncludeInactive, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list vendors",
			slog.String("org_id", orgID))
		return nil, fmt.Errorf("failed to list vendors for org %s: %w", orgID, err)
	}
	if vendors == nil {
		return []domain.Vendor{}, nil
	}
	return vendors, nil
}

// Get1099Data summarizes a vendor's invoiced and paid totals for a calendar
// year, with the per-invoice breakdown used to prepare Form 1099 filings.
func (s *vendorServiceImpl) Get1099Data(ctx context.Context, orgID string, vendorID string, year int, userID string) (*domain.Vendor1099Data, error) {
	vendor, err := s.GetVendorByID(ctx, orgID, vendorID, userID)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.ListVendorInvoicesForYear(ctx, orgID, vendorID, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to list vendor invoices for 1099",
			slog.String("vendor_id", vendorID),
			slog.Int("year", year))
		return nil, err
	}

	data := domain.Vendor1099Data{
		VendorID:      vendor.VendorID,
		VendorName:    vendor.VendorName,
		TaxID:         vendor.TaxID,
		Year:          year,
		TotalInvoices: len(invoices),
		Invoices:      make([]domain.Vendor1099Invoice, len(invoices)),
	}

	totalAmount := decimal.Zero
	paidAmount := decimal.Zero
	for i, inv := range invoices {
		totalAmount = totalAmount.Add(inv.TotalAmount)
		paidAmount = paidAmount.Add(inv.AmountPaid)
		data.Invoices[i] = domain.Vendor1099Invoice{
			InvoiceID:     inv.InvoiceID,
			InvoiceNumber: inv.InvoiceNumber,
			InvoiceDate:   inv.InvoiceDate.Format("2006-01-02"),
			TotalAmount:   inv.TotalAmount,
			AmountPaid:    inv.AmountPaid,
			Status:        inv.Status,
		}
	}
	data.TotalAmount = totalAmount
	data.PaidAmount = paidAmount
	data.OutstandingAmount = totalAmount.Sub(paidAmount)

	s.LogDebug(ctx, "1099 data generated",
		slog.String("vendor_id", vendorID),
		slog.Int("invoices", len(invoices)))
	return &data, nil
}

func (s *vendorServiceImpl) UpdateVendor(ctx context.Context, orgID string, vendorID string, req dto.UpdateVendorRequest, userID string) (*domain.Vendor, error) {
	vendor, err := s.GetVendorByID(ctx, orgID, vendorID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.VendorName != nil {
		vendor.VendorName = *req.VendorName
		updated = true
	}
	if req.ContactPerson != nil {
		vendor.ContactPerson = *req.ContactPerson
		updated = true
	}
	if req.Email != nil {
		vendor.Email = *req.Email
		updated = true
	}
	if req.Phone != nil {
		vendor.Phone = *req.Phone
		updated = true
	}
	if req.Address != nil {
		vendor.Address = *req.Address
		updated = true
	}
	if req.TaxID != nil {
		vendor.TaxID = *req.TaxID
		updated = true
	}
	if req.PaymentTerms != nil {
		vendor.PaymentTerms = *req.PaymentTerms
		updated = true
	}
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for vendor update",
			slog.String("vendor_id", vendorID))
		return vendor, nil
	}

	now := time.Now()
	vendor.LastUpdatedAt = now
	vendor.LastUpdatedBy = userID

	if err := s.vendorRepo.UpdateVendor(ctx, *vendor); err != nil {
		s.LogError(ctx, err, "Failed to update vendor",
			slog.String("vendor_id", vendorID))
		return nil, err
	}

	s.LogInfo(ctx, "Vendor updated successfully",
		slog.String("vendor_id", vendorID),
		slog.String("org_id", orgID))
	return vendor, nil
}

func (s *vendorServiceImpl) DeleteVendor(ctx context.Context, orgID string, vendorID string, userID string) error {
	_, err := s.GetVendorByID(ctx, orgID, vendorID, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.vendorRepo.DeleteVendor(ctx, orgID, vendorID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to delete vendor",
			slog.String("vendor_id", vendorID))
		return err
	}

	s.LogInfo(ctx, "Vendor deleted successfully",
		slog.String("vendor_id", vendorID),
		slog.String("org_id", orgID))
	return nil
}
