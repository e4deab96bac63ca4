package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus values used by payment recording. Status is stored as a free
// string; callers may set other values (e.g. "overdue") directly and no
// transition table is enforced.
const (
	InvoiceUnpaid        = "unpaid"
	InvoicePartiallyPaid = "partially_paid"
	InvoicePaid          = "paid"
)

// Invoice is a vendor bill. Subtotal/tax/total aggregates are caller-supplied
// and trusted; line items are owned by the header and written with it.
type Invoice struct {
	InvoiceID     string            `json:"invoiceID"` // Primary key (UUID)
	OrgID         string            `json:"orgID"`
	PropertyID    string            `json:"propertyID"` // Nullable
	VendorID      string            `json:"vendorID"`   // Nullable
	TenantID      string            `json:"tenantID"`   // Nullable
	InvoiceNumber string            `json:"invoiceNumber"`
	InvoiceDate   time.Time         `json:"invoiceDate"`
	DueDate       time.Time         `json:"dueDate"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	TaxAmount     decimal.Decimal   `json:"taxAmount"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	AmountPaid    decimal.Decimal   `json:"amountPaid"`
	Status        string            `json:"status"`
	Notes         string            `json:"notes"` // Nullable
	LineItems     []InvoiceLineItem `json:"lineItems,omitempty"`
	Lifecycle     Lifecycle         `json:"lifecycle"`
	AuditFields
}

// InvoiceLineItem is one billed line on an invoice, coded to a ledger account.
type InvoiceLineItem struct {
	LineItemID  string          `json:"lineItemID"` // Primary key (UUID)
	InvoiceID   string          `json:"invoiceID"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// StatusForPayment derives the status string for a recorded payment amount.
func (i *Invoice) StatusForPayment(amountPaid decimal.Decimal) string {
	if amountPaid.GreaterThanOrEqual(i.TotalAmount) {
		return InvoicePaid
	}
	return InvoicePartiallyPaid
}
