package repositories

import (
	"context"
	"time"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for ledger account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its account number within an org.
	FindAccountByNumber(ctx context.Context, orgID string, accountNumber string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts for an org, optionally filtered by type.
	ListAccounts(ctx context.Context, orgID string, accountType *domain.AccountType, includeInactive bool, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for ledger account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount soft deletes an account.
	DeleteAccount(ctx context.Context, orgID string, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
