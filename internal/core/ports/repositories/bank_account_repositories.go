package repositories

import (
	"context"
	"time"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// BankAccountReader defines read operations for bank account data
type BankAccountReader interface {
	// FindBankAccountByID retrieves a specific bank account by its unique identifier.
	FindBankAccountByID(ctx context.Context, orgID string, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves bank accounts for an org.
	ListBankAccounts(ctx context.Context, orgID string, includeInactive bool) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank account data
type BankAccountWriter interface {
	// SaveBankAccount persists a new bank account.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// UpdateBankAccount updates an existing bank account's details.
	UpdateBankAccount(ctx context.Context, account domain.BankAccount) error

	// DeleteBankAccount soft deletes a bank account.
	DeleteBankAccount(ctx context.Context, orgID string, bankAccountID string, userID string, now time.Time) error
}

// BankAccountRepositoryFacade combines all bank account repository interfaces
type BankAccountRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
}
