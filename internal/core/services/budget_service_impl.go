package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	portsrepo "github.com/PropLedger/prop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/PropLedger/prop_ledger_app/internal/core/ports/services"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
	"github.com/PropLedger/prop_ledger_app/internal/utils/accounting"
)

// budgetServiceImpl implements the BudgetSvcFacade interface
type budgetServiceImpl struct {
	BaseService
	budgetRepo    portsrepo.BudgetRepositoryFacade
	accountRepo   portsrepo.AccountReader
	reportingRepo portsrepo.ReportingRepository
}

// NewBudgetServiceImpl creates a new budget service
func NewBudgetServiceImpl(repo portsrepo.BudgetRepositoryFacade, accountRepo portsrepo.AccountReader, reportingRepo portsrepo.ReportingRepository) portssvc.BudgetSvcFacade {
	return &budgetServiceImpl{
		budgetRepo:    repo,
		accountRepo:   accountRepo,
		reportingRepo: reportingRepo,
	}
}

// Ensure budgetServiceImpl implements the BudgetSvcFacade interface
var _ portssvc.BudgetSvcFacade = (*budgetServiceImpl)(nil)

func (s *budgetServiceImpl) CreateBudget(ctx context.Context, orgID string, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error) {
	// The budgeted account must exist in the org. Duplicate rows for the
	// same (account, year, month) are permitted.
	if _, err := s.accountRepo.FindAccountByID(ctx, orgID, req.AccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("account %s not found: %w", req.AccountID, err)
		}
		s.LogError(ctx, err, "Failed to find account for budget",
			slog.String("account_id", req.AccountID))
		return nil, err
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:       uuid.NewString(),
		OrgID:          orgID,
		PropertyID:     req.PropertyID,
		AccountID:      req.AccountID,
		Year:           req.Year,
		Month:          req.Month,
		BudgetedAmount: req.BudgetedAmount,
		Notes:          req.Notes,
		Lifecycle:      domain.ActiveLifecycle(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget",
			slog.String("budget_id", budget.BudgetID),
			slog.String("org_id", orgID))
		return nil, err
	}

	s.LogInfo(ctx, "Budget created successfully",
		slog.String("budget_id", budget.BudgetID),
		slog.String("org_id", orgID))
	return &budget, nil
}

func (s *budgetServiceImpl) GetBudgetByID(ctx context.Context, orgID string, budgetID string, userID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, orgID, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find budget by ID",
				slog.String("budget_id", budgetID))
		}
		return nil, err
	}
	return budget, nil
}

func (s *budgetServiceImpl) ListBudgets(ctx context.Context, orgID string, params dto.ListBudgetsParams) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, orgID, params.PropertyID, params.Year, params.Month)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets",
			slog.String("org_id", orgID))
		return nil, fmt.Errorf("failed to list budgets for org %s: %w", orgID, err)
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

// BudgetVsActual compares budget rows against recorded actuals. The actuals
// come back from one grouped query; matching happens in memory.
func (s *budgetServiceImpl) BudgetVsActual(ctx context.Context, orgID string, params dto.BudgetVsActualParams, userID string) (*domain.BudgetActualReport, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, orgID, params.PropertyID, &params.Year, params.Month)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets for comparison",
			slog.String("org_id", orgID),
			slog.Any("property_id", params.PropertyID))
		return nil, err
	}

	actuals, err := s.budgetRepo.GetActualTotals(ctx, orgID, params.PropertyID, params.Year, params.Month)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch actual totals",
			slog.String("org_id", orgID),
			slog.Any("property_id", params.PropertyID))
		return nil, err
	}

	accountNames, err := s.reportingRepo.GetAccountNames(ctx, orgID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch account names",
			slog.String("org_id", orgID))
		return nil, err
	}

	report := accounting.BuildBudgetActual(budgets, accountNames, actuals)

	s.LogDebug(ctx, "Budget vs actual generated",
		slog.Int("rows", len(report.Rows)),
		slog.String("org_id", orgID))
	return &report, nil
}

func (s *budgetServiceImpl) UpdateBudget(ctx context.Context, orgID string, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error) {
	budget, err := s.GetBudgetByID(ctx, orgID, budgetID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.BudgetedAmount != nil {
		budget.BudgetedAmount = *req.BudgetedAmount
		updated = true
	}
	if req.Notes != nil {
		budget.Notes = *req.Notes
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for budget update",
			slog.String("budget_id", budgetID))
		return budget, nil
	}

	now := time.Now()
	budget.LastUpdatedAt = now
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget",
			slog.String("budget_id", budgetID))
		return nil, err
	}

	s.LogInfo(ctx, "Budget updated successfully",
		slog.String("budget_id", budgetID),
		slog.String("org_id", orgID))
	return budget, nil
}

func (s *budgetServiceImpl) DeleteBudget(ctx context.Context, orgID string, budgetID string, userID string) error {
	_, err := s.GetBudgetByID(ctx, orgID, budgetID, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.budgetRepo.DeleteBudget(ctx, orgID, budgetID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to delete budget",
			slog.String("budget_id", budgetID))
		return err
	}

	s.LogInfo(ctx, "Budget deleted successfully",
		slog.String("budget_id", budgetID),
		slog.String("org_id", orgID))
	return nil
}
