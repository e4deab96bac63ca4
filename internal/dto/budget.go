package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// CreateBudgetRequest defines the data needed to create a budget row. An
// empty PropertyID creates an org-wide budget.
type CreateBudgetRequest struct {
	PropertyID     string          `json:"propertyID"`
	AccountID      string          `json:"accountID" binding:"required"`
	Year           int             `json:"year" binding:"required,min=1900,max=2200"`
	Month          int             `json:"month" binding:"required,min=1,max=12"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount" binding:"required"`
	Notes          string          `json:"notes"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget row.
type UpdateBudgetRequest struct {
	BudgetedAmount *decimal.Decimal `json:"budgetedAmount"`
	Notes          *string          `json:"notes"`
}

// BudgetResponse defines the data returned for a budget row.
type BudgetResponse struct {
	BudgetID       string          `json:"budgetID"`
	PropertyID     string          `json:"propertyID"`
	AccountID      string          `json:"accountID"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:       b.BudgetID,
		PropertyID:     b.PropertyID,
		AccountID:      b.AccountID,
		Year:           b.Year,
		Month:          b.Month,
		BudgetedAmount: b.BudgetedAmount,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
		CreatedBy:      b.CreatedBy,
		LastUpdatedAt:  b.LastUpdatedAt,
		LastUpdatedBy:  b.LastUpdatedBy,
	}
}

// ToListBudgetResponse converts a slice of domain.Budget to a slice of BudgetResponse DTOs
func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		res[i] = ToBudgetResponse(&b)
	}
	return res
}

// ListBudgetsParams defines query parameters for listing budget rows.
type ListBudgetsParams struct {
	PropertyID *string `form:"propertyID"`
	Year       *int    `form:"year"`
	Month      *int    `form:"month"`
}

// BudgetVsActualParams defines query parameters for the budget-vs-actual
// comparison. Omitting propertyID compares org-wide.
type BudgetVsActualParams struct {
	PropertyID *string `form:"propertyID"`
	Year       int     `form:"year" binding:"required,min=1900,max=2200"`
	Month      *int    `form:"month" binding:"omitempty,min=1,max=12"`
}
