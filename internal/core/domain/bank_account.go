package domain

import "github.com/shopspring/decimal"

// BankAccount wraps one ledger account and tracks a manually maintained cash
// position. The balance is set by callers; it is never reconciled against
// transactions.
type BankAccount struct {
	BankAccountID  string          `json:"bankAccountID"` // Primary key (UUID)
	OrgID          string          `json:"orgID"`
	AccountID      string          `json:"accountID"` // FK -> accounts (NOT NULL)
	BankName       string          `json:"bankName"`
	AccountNumber  string          `json:"accountNumber"` // Bank-side number
	RoutingNumber  string          `json:"routingNumber"` // Nullable
	AccountType    string          `json:"accountType"`   // e.g. "checking", "savings"
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	Lifecycle      Lifecycle       `json:"lifecycle"`
	AuditFields
}
