package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction is a single-sided ledger entry against one account.
//
// The store is single-entry: there is no journal grouping and no requirement
// that a transaction has a balancing counter-entry. Reports derive sign from
// TransactionType at aggregation time; Amount is always stored positive.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`   // Primary key (UUID)
	OrgID           string          `json:"orgID"`           // FK -> organizations (NOT NULL)
	PropertyID      string          `json:"propertyID"`      // Nullable FK -> properties
	AccountID       string          `json:"accountID"`       // FK -> accounts (NOT NULL)
	TransactionDate time.Time       `json:"transactionDate"` // Date the event occurred
	TransactionType TransactionType `json:"transactionType"` // DEBIT or CREDIT
	Amount          decimal.Decimal `json:"amount"`          // Positive value
	ReferenceNumber string          `json:"referenceNumber"` // Nullable check/ACH/etc. reference
	Description     string          `json:"description"`     // Nullable
	Memo            string          `json:"memo"`            // Nullable
	TenantID        string          `json:"tenantID"`        // Nullable
	VendorID        string          `json:"vendorID"`        // Nullable FK -> vendors
	InvoiceID       string          `json:"invoiceID"`       // Nullable FK -> invoices
	Lifecycle       Lifecycle       `json:"lifecycle"`
	AuditFields
}
