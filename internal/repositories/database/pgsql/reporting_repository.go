package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	portsrepo "github.com/PropLedger/prop_ledger_app/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// newPgxReportingRepository creates a new repository for financial report data.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetReportEntries retrieves non-deleted ledger entries joined with their
// account type for a date range. The same rows feed the P&L, balance sheet,
// and cash flow aggregations; bucketing and sign handling happen in memory.
func (r *PgxReportingRepository) GetReportEntries(ctx context.Context, orgID string, propertyID *string, from, to time.Time) ([]domain.ReportEntry, error) {
	query := `
		SELECT t.account_id, a.account_type, t.transaction_type, t.amount
		FROM transactions t
		JOIN accounts a ON a.account_id = t.account_id
		WHERE t.org_id = $1
		  AND t.deleted_at IS NULL
		  AND a.deleted_at IS NULL
		  AND t.transaction_date >= $2
		  AND t.transaction_date <= $3
	`
	args := []interface{}{orgID, from, to}

	if propertyID != nil {
		args = append(args, *propertyID)
		query += fmt.Sprintf(" AND t.property_id = $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query report entries for org %s: %w", orgID, err)
	}
	defer rows.Close()

	entries := []domain.ReportEntry{}
	for rows.Next() {
		var e domain.ReportEntry
		if err := rows.Scan(&e.AccountID, &e.AccountType, &e.TransactionType, &e.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan report entry row for org %s: %w", orgID, err)
		}
		e.Lifecycle = domain.ActiveLifecycle()
		entries = append(entries, e)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating report entry rows for org %s: %w", orgID, rows.Err())
	}

	return entries, nil
}

// GetAccountNames retrieves a map of account ID to account name for an org.
func (r *PgxReportingRepository) GetAccountNames(ctx context.Context, orgID string) (map[string]string, error) {
	query := `
		SELECT account_id, name
		FROM accounts
		WHERE org_id = $1 AND deleted_at IS NULL;
	`

	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account names for org %s: %w", orgID, err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan account name row for org %s: %w", orgID, err)
		}
		names[id] = name
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account name rows for org %s: %w", orgID, rows.Err())
	}

	return names, nil
}
