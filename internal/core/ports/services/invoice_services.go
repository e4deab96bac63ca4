package services

import (
	"context"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice and its line items.
	GetInvoiceByID(ctx context.Context, orgID string, invoiceID string, userID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoice headers for an org.
	ListInvoices(ctx context.Context, orgID string, params dto.ListInvoicesParams) ([]domain.Invoice, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice persists an invoice header and its line items atomically.
	CreateInvoice(ctx context.Context, orgID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// UpdateInvoice updates an existing invoice header.
	UpdateInvoice(ctx context.Context, orgID string, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error)

	// RecordPayment records a payment and derives the resulting status:
	// paid when the amount covers the total, partially paid otherwise.
	RecordPayment(ctx context.Context, orgID string, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.Invoice, error)

	// DeleteInvoice soft deletes an invoice.
	DeleteInvoice(ctx context.Context, orgID string, invoiceID string, userID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
