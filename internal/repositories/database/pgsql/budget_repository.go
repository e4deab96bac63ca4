package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	portsrepo "github.com/PropLedger/prop_ledger_app/internal/core/ports/repositories"
)

type PgxBudgetRepository struct {
	pool *pgxpool.Pool
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{pool: pool}
}

// Ensure PgxBudgetRepository implements portsrepo.BudgetRepositoryFacade
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

const budgetColumns = `budget_id, org_id, property_id, account_id, year, month, budgeted_amount, notes, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.Row) (domain.Budget, error) {
	var b domain.Budget
	var propertyID, notes sql.NullString
	var deletedAt *time.Time

	err := row.Scan(
		&b.BudgetID,
		&b.OrgID,
		&propertyID,
		&b.AccountID,
		&b.Year,
		&b.Month,
		&b.BudgetedAmount,
		&notes,
		&deletedAt,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		return domain.Budget{}, err
	}

	b.PropertyID = fromNullString(propertyID)
	b.Notes = fromNullString(notes)
	b.Lifecycle = domain.LifecycleFromDeletedAt(deletedAt)
	return b, nil
}

// SaveBudget inserts a new budget row.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		INSERT INTO budgets (budget_id, org_id, property_id, account_id, year, month, budgeted_amount, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	_, err := r.pool.Exec(ctx, query,
		budget.BudgetID,
		budget.OrgID,
		nullString(budget.PropertyID),
		budget.AccountID,
		budget.Year,
		budget.Month,
		budget.BudgetedAmount,
		nullString(budget.Notes),
		budget.CreatedAt,
		budget.CreatedBy,
		budget.LastUpdatedAt,
		budget.CreatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: budget with ID %s already exists", apperrors.ErrDuplicate, budget.BudgetID)
		}
		return fmt.Errorf("failed to save budget %s: %w", budget.BudgetID, err)
	}
	return nil
}

// FindBudgetByID retrieves a budget row by its ID within an org.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, orgID string, budgetID string) (*domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE budget_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	b, err := scanBudget(r.pool.QueryRow(ctx, query, budgetID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", budgetID, err)
	}
	return &b, nil
}

// ListBudgets retrieves budget rows filtered by property and period.
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, orgID string, propertyID *string, year *int, month *int) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE org_id = $1 AND deleted_at IS NULL
	`
	args := []interface{}{orgID}

	if propertyID != nil {
		args = append(args, *propertyID)
		query += fmt.Sprintf(" AND property_id = $%d", len(args))
	}
	if year != nil {
		args = append(args, *year)
		query += fmt.Sprintf(" AND year = $%d", len(args))
	}
	if month != nil {
		args = append(args, *month)
		query += fmt.Sprintf(" AND month = $%d", len(args))
	}

	query += " ORDER BY year, month, account_id;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets for org %s: %w", orgID, err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row for org %s: %w", orgID, err)
		}
		budgets = append(budgets, b)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating budget rows for org %s: %w", orgID, rows.Err())
	}

	return budgets, nil
}

// GetActualTotals aggregates actuals for every (account, year, month) bucket
// in one query. Amounts are summed as stored, with no debit/credit sign
// normalization, so actuals for both expense and revenue accounts compare
// directly against their positive budgeted amounts.
func (r *PgxBudgetRepository) GetActualTotals(ctx context.Context, orgID string, propertyID *string, year int, month *int) ([]domain.ActualTotal, error) {
	query := `
		SELECT t.account_id,
		       EXTRACT(YEAR FROM t.transaction_date)::int AS year,
		       EXTRACT(MONTH FROM t.transaction_date)::int AS month,
		       SUM(t.amount) AS total
		FROM transactions t
		WHERE t.org_id = $1 AND t.deleted_at IS NULL
		  AND EXTRACT(YEAR FROM t.transaction_date) = $2
	`
	args := []interface{}{orgID, year}

	if propertyID != nil {
		args = append(args, *propertyID)
		query += fmt.Sprintf(" AND t.property_id = $%d", len(args))
	}
	if month != nil {
		args = append(args, *month)
		query += fmt.Sprintf(" AND EXTRACT(MONTH FROM t.transaction_date) = $%d", len(args))
	}

	query += `
		GROUP BY t.account_id, year, month;
	`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query actual totals for org %s: %w", orgID, err)
	}
	defer rows.Close()

	totals := []domain.ActualTotal{}
	for rows.Next() {
		var t domain.ActualTotal
		if err := rows.Scan(&t.AccountID, &t.Year, &t.Month, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan actual total row for org %s: %w", orgID, err)
		}
		totals = append(totals, t)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating actual total rows for org %s: %w", orgID, rows.Err())
	}

	return totals, nil
}

// UpdateBudget updates an existing budget row.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		UPDATE budgets
		SET budgeted_amount = $3, notes = $4, last_updated_at = $5, last_updated_by = $6
		WHERE budget_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query,
		budget.BudgetID,
		budget.OrgID,
		budget.BudgetedAmount,
		nullString(budget.Notes),
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update budget %s: %w", budget.BudgetID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteBudget soft deletes a budget row.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, orgID string, budgetID string, userID string, now time.Time) error {
	query := `
		UPDATE budgets
		SET deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE budget_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query, budgetID, orgID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute delete budget %s: %w", budgetID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
