package repositories

import (
	"context"
	"time"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// VendorReader defines read operations for vendor data
type VendorReader interface {
	// FindVendorByID retrieves a specific vendor by its unique identifier.
	FindVendorByID(ctx context.Context, orgID string, vendorID string) (*domain.Vendor, error)

	// ListVendors retrieves vendors for an org.
	ListVendors(ctx context.Context, orgID string, includeInactive bool, limit int, offset int) ([]domain.Vendor, error)
}

// VendorWriter defines write operations for vendor data
type VendorWriter interface {
	// SaveVendor persists a new vendor.
	SaveVendor(ctx context.Context, vendor domain.Vendor) error

	// UpdateVendor updates an existing vendor's details.
	UpdateVendor(ctx context.Context, vendor domain.Vendor) error

	// DeleteVendor soft deletes a vendor.
	DeleteVendor(ctx context.Context, orgID string, vendorID string, userID string, now time.Time) error
}

// VendorRepositoryFacade combines all vendor-related repository interfaces
type VendorRepositoryFacade interface {
	VendorReader
	VendorWriter
}
