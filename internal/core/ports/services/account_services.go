package services

import (
	"context"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

// AccountReaderSvc defines read operations for ledger account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, orgID string, accountID string, userID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts by their IDs.
	GetAccountsByIDs(ctx context.Context, orgID string, accountIDs []string, userID string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts for an org.
	ListAccounts(ctx context.Context, orgID string, params dto.ListAccountsParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for ledger account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, orgID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, orgID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeleteAccount soft deletes an account.
	DeleteAccount(ctx context.Context, orgID string, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
