package domain

import "github.com/shopspring/decimal"

// Budget is a planned amount for one account in one (year, month) period.
// Nothing prevents duplicate rows for the same (org, account, year, month);
// budget-vs-actual simply reports each row against the same actuals.
type Budget struct {
	BudgetID       string          `json:"budgetID"` // Primary key (UUID)
	OrgID          string          `json:"orgID"`
	PropertyID     string          `json:"propertyID"` // Nullable FK -> properties
	AccountID      string          `json:"accountID"`  // FK -> accounts (NOT NULL)
	Year           int             `json:"year"`
	Month          int             `json:"month"` // 1..12
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
	Notes          string          `json:"notes"` // Nullable
	Lifecycle      Lifecycle       `json:"lifecycle"`
	AuditFields
}
