package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// InvoiceFilters narrows an invoice listing.
type InvoiceFilters struct {
	PropertyID *string
	VendorID   *string
	Status     *string
}

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice and its line items.
	FindInvoiceByID(ctx context.Context, orgID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoice headers for an org.
	ListInvoices(ctx context.Context, orgID string, filters InvoiceFilters, limit int, offset int) ([]domain.Invoice, error)

	// ListVendorInvoicesForYear retrieves a vendor's invoices dated within a
	// calendar year, for 1099 reporting.
	ListVendorInvoicesForYear(ctx context.Context, orgID string, vendorID string, year int) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists an invoice header and its line items atomically.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice updates an existing invoice header.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// RecordPayment sets the paid amount and derived status on an invoice.
	RecordPayment(ctx context.Context, orgID string, invoiceID string, amountPaid decimal.Decimal, status string, userID string, now time.Time) error

	// DeleteInvoice soft deletes an invoice.
	DeleteInvoice(ctx context.Context, orgID string, invoiceID string, userID string, now time.Time) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
