package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	portsrepo "github.com/PropLedger/prop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/PropLedger/prop_ledger_app/internal/core/ports/services"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

// invoiceServiceImpl implements the InvoiceSvcFacade interface
type invoiceServiceImpl struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewInvoiceServiceImpl creates a new invoice service
func NewInvoiceServiceImpl(repo portsrepo.InvoiceRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.InvoiceSvcFacade {
	return &invoiceServiceImpl{
		invoiceRepo: repo,
		accountRepo: accountRepo,
	}
}

// Ensure invoiceServiceImpl implements the InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceServiceImpl)(nil)

func (s *invoiceServiceImpl) CreateInvoice(ctx context.Context, orgID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	// Line item accounts must exist in the org before writing anything.
	if len(req.LineItems) > 0 {
		accountIDs := make([]string, 0, len(req.LineItems))
		for _, li := range req.LineItems {
			accountIDs = append(accountIDs, li.AccountID)
		}
		accounts, err := s.accountRepo.FindAccountsByIDs(ctx, orgID, accountIDs)
		if err != nil {
			s.LogError(ctx, err, "Failed to find line item accounts")
			return nil, err
		}
		for _, id := range accountIDs {
			if _, ok := accounts[id]; !ok {
				return nil, fmt.Errorf("line item account %s not found: %w", id, apperrors.ErrNotFound)
			}
		}
	}

	now := time.Now()
	invoiceID := uuid.NewString()

	status := req.Status
	if status == "" {
		status = domain.InvoiceUnpaid
	}

	invoice := domain.Invoice{
		InvoiceID:     invoiceID,
		OrgID:         orgID,
		InvoiceNumber: req.InvoiceNumber,
		InvoiceDate:   req.InvoiceDate,
		DueDate:       req.DueDate,
		Subtotal:      req.Subtotal,
		TaxAmount:     req.TaxAmount,
		TotalAmount:   req.TotalAmount,
		Status:        status,
		Notes:         req.Notes,
		Lifecycle:     domain.ActiveLifecycle(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.PropertyID != nil {
		invoice.PropertyID = *req.PropertyID
	}
	if req.VendorID != nil {
		invoice.VendorID = *req.VendorID
	}
	if req.TenantID != nil {
		invoice.TenantID = *req.TenantID
	}

	invoice.LineItems = make([]domain.InvoiceLineItem, len(req.LineItems))
	for i, li := range req.LineItems {
		invoice.LineItems[i] = domain.InvoiceLineItem{
			LineItemID:  uuid.NewString(),
			InvoiceID:   invoiceID,
			AccountID:   li.AccountID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
			CreatedAt:   now,
		}
	}

	// Header and line items are written in one database transaction.
	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("invoice number %s already exists: %w", req.InvoiceNumber, err)
		}
		s.LogError(ctx, err, "Failed to save invoice",
			slog.String("invoice_id", invoiceID),
			slog.String("org_id", orgID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice created successfully",
		slog.String("invoice_id", invoiceID),
		slog.Int("line_items", len(invoice.LineItems)),
		slog.String("org_id", orgID))
	return &invoice, nil
}

func (s *invoiceServiceImpl) GetInvoiceByID(ctx context.Context, orgID string, invoiceID string, userID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, orgID, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invoice by ID",
				slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceServiceImpl) ListInvoices(ctx context.Context, orgID string, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	filters := portsrepo.InvoiceFilters{
		PropertyID: params.PropertyID,
		VendorID:   params.VendorID,
		Status:     params.Status,
	}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, orgID, filters, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices",
			slog.String("org_id", orgID))
		return nil, fmt.Errorf("failed to list invoices for org %s: %w", orgID, err)
	}
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

func (s *invoiceServiceImpl) UpdateInvoice(ctx context.Context, orgID string, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error) {
	invoice, err := s.GetInvoiceByID(ctx, orgID, invoiceID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.InvoiceNumber != nil {
		invoice.InvoiceNumber = *req.InvoiceNumber
		updated = true
	}
	if req.InvoiceDate != nil {
		invoice.InvoiceDate = *req.InvoiceDate
		updated = true
	}
	if req.DueDate != nil {
		invoice.DueDate = *req.DueDate
		updated = true
	}
	if req.Subtotal != nil {
		invoice.Subtotal = *req.Subtotal
		updated = true
	}
	if req.TaxAmount != nil {
		invoice.TaxAmount = *req.TaxAmount
		updated = true
	}
	if req.TotalAmount != nil {
		invoice.TotalAmount = *req.TotalAmount
		updated = true
	}
	if req.Status != nil {
		invoice.Status = *req.Status
		updated = true
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for invoice update",
			slog.String("invoice_id", invoiceID))
		return invoice, nil
	}

	now := time.Now()
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update invoice",
			slog.String("invoice_id", invoiceID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice updated successfully",
		slog.String("invoice_id", invoiceID),
		slog.String("org_id", orgID))
	return invoice, nil
}

// RecordPayment records a payment against an invoice. The stored status
// becomes paid when the amount covers the total, partially paid otherwise.
func (s *invoiceServiceImpl) RecordPayment(ctx context.Context, orgID string, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.Invoice, error) {
	if req.AmountPaid.IsNegative() {
		return nil, fmt.Errorf("amount paid cannot be negative: %w", apperrors.ErrValidation)
	}

	invoice, err := s.GetInvoiceByID(ctx, orgID, invoiceID, userID)
	if err != nil {
		return nil, err
	}

	status := invoice.StatusForPayment(req.AmountPaid)
	now := time.Now()

	if err := s.invoiceRepo.RecordPayment(ctx, orgID, invoiceID, req.AmountPaid, status, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to record payment",
			slog.String("invoice_id", invoiceID),
			slog.String("amount_paid", req.AmountPaid.String()))
		return nil, err
	}

	invoice.AmountPaid = req.AmountPaid
	invoice.Status = status
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID

	s.LogInfo(ctx, "Payment recorded successfully",
		slog.String("invoice_id", invoiceID),
		slog.String("status", status),
		slog.String("org_id", orgID))
	return invoice, nil
}

func (s *invoiceServiceImpl) DeleteInvoice(ctx context.Context, orgID string, invoiceID string, userID string) error {
	_, err := s.GetInvoiceByID(ctx, orgID, invoiceID, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.invoiceRepo.DeleteInvoice(ctx, orgID, invoiceID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to delete invoice",
			slog.String("invoice_id", invoiceID))
		return err
	}

	s.LogInfo(ctx, "Invoice deleted successfully",
		slog.String("invoice_id", invoiceID),
		slog.String("org_id", orgID))
	return nil
}
