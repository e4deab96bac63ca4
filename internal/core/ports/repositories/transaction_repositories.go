package repositories

import (
	"context"
	"time"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// TransactionFilters narrows a ledger entry listing.
type TransactionFilters struct {
	PropertyID *string
	AccountID  *string
	FromDate   *time.Time
	ToDate     *time.Time
}

// TransactionReader defines read operations for ledger entries
type TransactionReader interface {
	// FindTransactionByID retrieves a specific ledger entry by its unique identifier.
	FindTransactionByID(ctx context.Context, orgID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of ledger entries ordered by
	// (transaction_date, created_at) descending. The after* keys, when set,
	// resume the listing past the last seen row.
	ListTransactions(ctx context.Context, orgID string, filters TransactionFilters, limit int, afterDate *time.Time, afterCreatedAt *time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger entries
type TransactionWriter interface {
	// SaveTransaction persists a new ledger entry.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates an existing ledger entry.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction soft deletes a ledger entry.
	DeleteTransaction(ctx context.Context, orgID string, transactionID string, userID string, now time.Time) error
}

// TransactionRepositoryFacade combines all ledger entry repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
