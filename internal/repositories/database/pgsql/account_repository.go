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

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, org_id, account_number, name, account_type, parent_account_id, description, is_active, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var acc domain.Account
	var parentID, description sql.NullString
	var deletedAt *time.Time

	err := row.Scan(
		&acc.AccountID,
		&acc.OrgID,
		&acc.AccountNumber,
		&acc.Name,
		&acc.AccountType,
		&parentID,
		&description,
		&acc.IsActive,
		&deletedAt,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}

	acc.ParentAccountID = fromNullString(parentID)
	acc.Description = fromNullString(description)
	acc.Lifecycle = domain.LifecycleFromDeletedAt(deletedAt)
	return acc, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, org_id, account_number, name, account_type, parent_account_id, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	_, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.OrgID,
		account.AccountNumber,
		account.Name,
		account.AccountType,
		nullString(account.ParentAccountID),
		nullString(account.Description),
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.CreatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account number %s already exists in org %s", apperrors.ErrDuplicate, account.AccountNumber, account.OrgID)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID within an org.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	acc, err := scanAccount(r.pool.QueryRow(ctx, query, accountID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &acc, nil
}

// FindAccountByNumber retrieves an account by its human-facing number within an org.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, orgID string, accountNumber string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE org_id = $1 AND account_number = $2 AND deleted_at IS NULL;
	`

	acc, err := scanAccount(r.pool.QueryRow(ctx, query, orgID, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by number %s: %w", accountNumber, err)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1) AND org_id = $2 AND deleted_at IS NULL;
	`

	rows, err := r.pool.Query(ctx, query, accountIDs, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[acc.AccountID] = acc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}

	// Missing IDs simply aren't in the map; the caller decides whether
	// that's an error.
	return accountsMap, nil
}

// ListAccounts retrieves a paginated list of accounts for an org, optionally
// filtered by account type.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, orgID string, accountType *domain.AccountType, includeInactive bool, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE org_id = $1 AND deleted_at IS NULL
	`
	args := []interface{}{orgID}

	if accountType != nil {
		args = append(args, *accountType)
		query += fmt.Sprintf(" AND account_type = $%d", len(args))
	}
	if !includeInactive {
		query += " AND is_active = TRUE"
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY account_number LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for org %s: %w", orgID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for org %s: %w", orgID, err)
		}
		accounts = append(accounts, acc)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows for org %s: %w", orgID, rows.Err())
	}

	return accounts, nil
}

// UpdateAccount updates an existing account in the database.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $3, description = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`
	// account_number, account_type and parent_account_id are immutable here.

	cmdTag, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.OrgID,
		account.Name,
		nullString(account.Description),
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update account %s: %w", account.AccountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteAccount soft deletes an account by setting its deleted_at timestamp.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, orgID string, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query, accountID, orgID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute delete account %s: %w", accountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
