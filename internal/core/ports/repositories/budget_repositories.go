package repositories

import (
	"context"
	"time"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	// FindBudgetByID retrieves a specific budget row by its unique identifier.
	FindBudgetByID(ctx context.Context, orgID string, budgetID string) (*domain.Budget, error)

	// ListBudgets retrieves budget rows filtered by property and period.
	ListBudgets(ctx context.Context, orgID string, propertyID *string, year *int, month *int) ([]domain.Budget, error)

	// GetActualTotals retrieves raw transaction totals grouped by
	// (account, year, month) in a single query, for comparison against
	// budget rows. A nil propertyID aggregates org-wide.
	GetActualTotals(ctx context.Context, orgID string, propertyID *string, year int, month *int) ([]domain.ActualTotal, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	// SaveBudget persists a new budget row.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget updates an existing budget row.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudget soft deletes a budget row.
	DeleteBudget(ctx context.Context, orgID string, budgetID string, userID string, now time.Time) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
