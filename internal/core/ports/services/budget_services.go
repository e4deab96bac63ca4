package services

import (
	"context"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

// BudgetReaderSvc defines read operations for budget data
type BudgetReaderSvc interface {
	// GetBudgetByID retrieves a specific budget row by its unique identifier.
	GetBudgetByID(ctx context.Context, orgID string, budgetID string, userID string) (*domain.Budget, error)

	// ListBudgets retrieves budget rows filtered by property and period.
	ListBudgets(ctx context.Context, orgID string, params dto.ListBudgetsParams) ([]domain.Budget, error)

	// BudgetVsActual compares budget rows against recorded actuals. Actuals
	// are fetched in one grouped query rather than per budget row.
	BudgetVsActual(ctx context.Context, orgID string, params dto.BudgetVsActualParams, userID string) (*domain.BudgetActualReport, error)
}

// BudgetWriterSvc defines write operations for budget data
type BudgetWriterSvc interface {
	// CreateBudget persists a new budget row.
	CreateBudget(ctx context.Context, orgID string, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error)

	// UpdateBudget updates an existing budget row.
	UpdateBudget(ctx context.Context, orgID string, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error)

	// DeleteBudget soft deletes a budget row.
	DeleteBudget(ctx context.Context, orgID string, budgetID string, userID string) error
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
