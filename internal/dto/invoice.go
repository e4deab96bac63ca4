package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// CreateInvoiceLineItemRequest defines one billed line on a new invoice.
type CreateInvoiceLineItemRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// CreateInvoiceRequest defines the data needed to create an invoice with its
// line items. The header and items are written atomically.
type CreateInvoiceRequest struct {
	PropertyID    *string                        `json:"propertyID"`
	VendorID      *string                        `json:"vendorID"`
	TenantID      *string                        `json:"tenantID"`
	InvoiceNumber string                         `json:"invoiceNumber" binding:"required"`
	InvoiceDate   time.Time                      `json:"invoiceDate" binding:"required" time_format:"2006-01-02"`
	DueDate       time.Time                      `json:"dueDate" binding:"required" time_format:"2006-01-02"`
	Subtotal      decimal.Decimal                `json:"subtotal" binding:"required"`
	TaxAmount     decimal.Decimal                `json:"taxAmount"`
	TotalAmount   decimal.Decimal                `json:"totalAmount" binding:"required"`
	Status        string                         `json:"status"`
	Notes         string                         `json:"notes"`
	LineItems     []CreateInvoiceLineItemRequest `json:"lineItems" binding:"omitempty,dive"`
}

// UpdateInvoiceRequest defines the data allowed for updating an invoice header.
type UpdateInvoiceRequest struct {
	InvoiceNumber *string          `json:"invoiceNumber"`
	InvoiceDate   *time.Time       `json:"invoiceDate"`
	DueDate       *time.Time       `json:"dueDate"`
	Subtotal      *decimal.Decimal `json:"subtotal"`
	TaxAmount     *decimal.Decimal `json:"taxAmount"`
	TotalAmount   *decimal.Decimal `json:"totalAmount"`
	Status        *string          `json:"status"`
	Notes         *string          `json:"notes"`
}

// RecordPaymentRequest defines the data needed to record a payment against an invoice.
type RecordPaymentRequest struct {
	AmountPaid decimal.Decimal `json:"amountPaid" binding:"required"`
}

// InvoiceLineItemResponse defines the data returned for an invoice line item.
type InvoiceLineItemResponse struct {
	LineItemID  string          `json:"lineItemID"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string                    `json:"invoiceID"`
	PropertyID    string                    `json:"propertyID"`
	VendorID      string                    `json:"vendorID"`
	TenantID      string                    `json:"tenantID"`
	InvoiceNumber string                    `json:"invoiceNumber"`
	InvoiceDate   time.Time                 `json:"invoiceDate"`
	DueDate       time.Time                 `json:"dueDate"`
	Subtotal      decimal.Decimal           `json:"subtotal"`
	TaxAmount     decimal.Decimal           `json:"taxAmount"`
	TotalAmount   decimal.Decimal           `json:"totalAmount"`
	AmountPaid    decimal.Decimal           `json:"amountPaid"`
	Status        string                    `json:"status"`
	Notes         string                    `json:"notes"`
	LineItems     []InvoiceLineItemResponse `json:"lineItems,omitempty"`
	CreatedAt     time.Time                 `json:"createdAt"`
	CreatedBy     string                    `json:"createdBy"`
	LastUpdatedAt time.Time                 `json:"lastUpdatedAt"`
	LastUpdatedBy string                    `json:"lastUpdatedBy"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceLineItemResponse, len(inv.LineItems))
	for i, li := range inv.LineItems {
		items[i] = InvoiceLineItemResponse{
			LineItemID:  li.LineItemID,
			AccountID:   li.AccountID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
		}
	}
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		PropertyID:    inv.PropertyID,
		VendorID:      inv.VendorID,
		TenantID:      inv.TenantID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		TotalAmount:   inv.TotalAmount,
		AmountPaid:    inv.AmountPaid,
		Status:        inv.Status,
		Notes:         inv.Notes,
		LineItems:     items,
		CreatedAt:     inv.CreatedAt,
		CreatedBy:     inv.CreatedBy,
		LastUpdatedAt: inv.LastUpdatedAt,
		LastUpdatedBy: inv.LastUpdatedBy,
	}
}

// ToListInvoiceResponse converts a slice of domain.Invoice to a slice of InvoiceResponse DTOs
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(&inv)
	}
	return res
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	PropertyID *string `form:"propertyID"`
	VendorID   *string `form:"vendorID"`
	Status     *string `form:"status"`
	Limit      int     `form:"limit,default=50"`
	Offset     int     `form:"offset,default=0"`
}
