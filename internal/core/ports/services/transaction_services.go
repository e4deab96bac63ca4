package services

import (
	"context"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

// TransactionReaderSvc defines read operations for ledger entries
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific ledger entry by its unique identifier.
	GetTransactionByID(ctx context.Context, orgID string, transactionID string, userID string) (*domain.Transaction, error)

	// ListTransactions retrieves a keyset-paginated page of ledger entries.
	ListTransactions(ctx context.Context, orgID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
}

// TransactionWriterSvc defines write operations for ledger entries
type TransactionWriterSvc interface {
	// CreateTransaction records a new ledger entry.
	CreateTransaction(ctx context.Context, orgID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// UpdateTransaction updates an existing ledger entry.
	UpdateTransaction(ctx context.Context, orgID string, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction soft deletes a ledger entry.
	DeleteTransaction(ctx context.Context, orgID string, transactionID string, userID string) error
}

// TransactionSvcFacade combines all ledger entry service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
