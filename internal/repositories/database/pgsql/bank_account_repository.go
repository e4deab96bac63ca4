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

type PgxBankAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxBankAccountRepository creates a new repository for bank account data.
func newPgxBankAccountRepository(pool *pgxpool.Pool) portsrepo.BankAccountRepositoryFacade {
	return &PgxBankAccountRepository{pool: pool}
}

// Ensure PgxBankAccountRepository implements portsrepo.BankAccountRepositoryFacade
var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

const bankAccountColumns = `bank_account_id, org_id, account_id, bank_name, account_number, routing_number, account_type, current_balance, is_active, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanBankAccount(row pgx.Row) (domain.BankAccount, error) {
	var ba domain.BankAccount
	var routingNumber sql.NullString
	var deletedAt *time.Time

	err := row.Scan(
		&ba.BankAccountID,
		&ba.OrgID,
		&ba.AccountID,
		&ba.BankName,
		&ba.AccountNumber,
		&routingNumber,
		&ba.AccountType,
		&ba.CurrentBalance,
		&ba.IsActive,
		&deletedAt,
		&ba.CreatedAt,
		&ba.CreatedBy,
		&ba.LastUpdatedAt,
		&ba.LastUpdatedBy,
	)
	if err != nil {
		return domain.BankAccount{}, err
	}

	ba.RoutingNumber = fromNullString(routingNumber)
	ba.Lifecycle = domain.LifecycleFromDeletedAt(deletedAt)
	return ba, nil
}

// SaveBankAccount inserts a new bank account.
func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (bank_account_id, org_id, account_id, bank_name, account_number, routing_number, account_type, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`

	_, err := r.pool.Exec(ctx, query,
		account.BankAccountID,
		account.OrgID,
		account.AccountID,
		account.BankName,
		account.AccountNumber,
		nullString(account.RoutingNumber),
		account.AccountType,
		account.CurrentBalance,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.CreatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: bank account with ID %s already exists", apperrors.ErrDuplicate, account.BankAccountID)
		}
		return fmt.Errorf("failed to save bank account %s: %w", account.BankAccountID, err)
	}
	return nil
}

// FindBankAccountByID retrieves a bank account by its ID within an org.
func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, orgID string, bankAccountID string) (*domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE bank_account_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	ba, err := scanBankAccount(r.pool.QueryRow(ctx, query, bankAccountID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank account by ID %s: %w", bankAccountID, err)
	}
	return &ba, nil
}

// ListBankAccounts retrieves bank accounts for an org.
func (r *PgxBankAccountRepository) ListBankAccounts(ctx context.Context, orgID string, includeInactive bool) ([]domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE org_id = $1 AND deleted_at IS NULL
	`
	if !includeInactive {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY bank_name, account_number;"

	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts for org %s: %w", orgID, err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		ba, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account row for org %s: %w", orgID, err)
		}
		accounts = append(accounts, ba)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating bank account rows for org %s: %w", orgID, rows.Err())
	}

	return accounts, nil
}

// UpdateBankAccount updates an existing bank account.
func (r *PgxBankAccountRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		UPDATE bank_accounts
		SET bank_name = $3, account_number = $4, routing_number = $5, account_type = $6, current_balance = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE bank_account_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query,
		account.BankAccountID,
		account.OrgID,
		account.BankName,
		account.AccountNumber,
		nullString(account.RoutingNumber),
		account.AccountType,
		account.CurrentBalance,
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update bank account %s: %w", account.BankAccountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteBankAccount soft deletes a bank account.
func (r *PgxBankAccountRepository) DeleteBankAccount(ctx context.Context, orgID string, bankAccountID string, userID string, now time.Time) error {
	query := `
		UPDATE bank_accounts
		SET deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE bank_account_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query, bankAccountID, orgID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute delete bank account %s: %w", bankAccountID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
