package services

import (
	"context"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

// BankAccountReaderSvc defines read operations for bank account data
type BankAccountReaderSvc interface {
	// GetBankAccountByID retrieves a specific bank account by its unique identifier.
	GetBankAccountByID(ctx context.Context, orgID string, bankAccountID string, userID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves bank accounts for an org.
	ListBankAccounts(ctx context.Context, orgID string, includeInactive bool) ([]domain.BankAccount, error)
}

// BankAccountWriterSvc defines write operations for bank account data
type BankAccountWriterSvc interface {
	// CreateBankAccount registers a new bank account against a ledger account.
	CreateBankAccount(ctx context.Context, orgID string, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error)

	// UpdateBankAccount updates an existing bank account's details.
	UpdateBankAccount(ctx context.Context, orgID string, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*domain.BankAccount, error)

	// DeleteBankAccount soft deletes a bank account.
	DeleteBankAccount(ctx context.Context, orgID string, bankAccountID string, userID string) error
}

// BankAccountSvcFacade combines all bank account service interfaces
type BankAccountSvcFacade interface {
	BankAccountReaderSvc
	BankAccountWriterSvc
}
