package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a node in an org's chart of accounts.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary key (UUID)
	OrgID           string      `json:"orgID"`           // FK -> organizations (NOT NULL)
	AccountNumber   string      `json:"accountNumber"`   // Human-facing number, unique per org
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string      `json:"parentAccountID"` // Nullable FK -> accounts (self-referencing)
	Description     string      `json:"description"`     // Nullable user description
	IsActive        bool        `json:"isActive"`
	Lifecycle       Lifecycle   `json:"lifecycle"`
	AuditFields
}
