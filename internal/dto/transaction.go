package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to record a ledger entry.
type CreateTransactionRequest struct {
	PropertyID      string                 `json:"propertyID" binding:"required"`
	AccountID       string                 `json:"accountID" binding:"required"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required" time_format:"2006-01-02"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=DEBIT CREDIT"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	ReferenceNumber string                 `json:"referenceNumber"`
	Description     string                 `json:"description" binding:"required"`
	Memo            string                 `json:"memo"`
	TenantID        *string                `json:"tenantID"`
	VendorID        *string                `json:"vendorID"`
	InvoiceID       *string                `json:"invoiceID"`
}

// UpdateTransactionRequest defines the data allowed for updating a ledger entry.
type UpdateTransactionRequest struct {
	TransactionDate *time.Time       `json:"transactionDate"`
	Amount          *decimal.Decimal `json:"amount"`
	ReferenceNumber *string          `json:"referenceNumber"`
	Description     *string          `json:"description"`
	Memo            *string          `json:"memo"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	PropertyID      string          `json:"propertyID"`
	AccountID       string          `json:"accountID"`
	TransactionDate time.Time       `json:"transactionDate"`
	TransactionType string          `json:"transactionType"` // DEBIT or CREDIT
	Amount          decimal.Decimal `json:"amount"`
	ReferenceNumber string          `json:"referenceNumber"`
	Description     string          `json:"description"`
	Memo            string          `json:"memo"`
	TenantID        string          `json:"tenantID"`
	VendorID        string          `json:"vendorID"`
	InvoiceID       string          `json:"invoiceID"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		PropertyID:      txn.PropertyID,
		AccountID:       txn.AccountID,
		TransactionDate: txn.TransactionDate,
		TransactionType: string(txn.TransactionType),
		Amount:          txn.Amount,
		ReferenceNumber: txn.ReferenceNumber,
		Description:     txn.Description,
		Memo:            txn.Memo,
		TenantID:        txn.TenantID,
		VendorID:        txn.VendorID,
		InvoiceID:       txn.InvoiceID,
		CreatedAt:       txn.CreatedAt,
		CreatedBy:       txn.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ListTransactionsParams defines query parameters for listing ledger entries.
// Pagination is keyset based: nextToken carries the last seen sort key.
type ListTransactionsParams struct {
	PropertyID *string    `form:"propertyID"`
	AccountID  *string    `form:"accountID"`
	FromDate   *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"toDate" time_format:"2006-01-02"`
	Limit      int        `form:"limit,default=50"`
	NextToken  *string    `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
