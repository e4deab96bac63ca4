package services

import (
	"context"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

// VendorReaderSvc defines read operations for vendor data
type VendorReaderSvc interface {
	// GetVendorByID retrieves a specific vendor by its unique identifier.
	GetVendorByID(ctx context.Context, orgID string, vendorID string, userID string) (*domain.Vendor, error)

	// ListVendors retrieves vendors for an org.
	ListVendors(ctx context.Context, orgID string, params dto.ListVendorsParams) ([]domain.Vendor, error)

	// Get1099Data summarizes a vendor's invoiced and paid totals for a year.
	Get1099Data(ctx context.Context, orgID string, vendorID string, year int, userID string) (*domain.Vendor1099Data, error)
}

// VendorWriterSvc defines write operations for vendor data
type VendorWriterSvc interface {
	// CreateVendor persists a new vendor.
	CreateVendor(ctx context.Context, orgID string, req dto.CreateVendorRequest, userID string) (*domain.Vendor, error)

	// UpdateVendor updates an existing vendor's details.
	UpdateVendor(ctx context.Context, orgID string, vendorID string, req dto.UpdateVendorRequest, userID string) (*domain.Vendor, error)

	// DeleteVendor soft deletes a vendor.
	DeleteVendor(ctx context.Context, orgID string, vendorID string, userID string) error
}

// VendorSvcFacade combines all vendor-related service interfaces
type VendorSvcFacade interface {
	VendorReaderSvc
	VendorWriterSvc
}
