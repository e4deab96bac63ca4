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

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// newPgxTransactionRepository creates a new repository for ledger entry data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, org_id, property_id, account_id, transaction_date, transaction_type, amount, reference_number, description, memo, tenant_id, vendor_id, invoice_id, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var txn domain.Transaction
	var propertyID, referenceNumber, description, memo, tenantID, vendorID, invoiceID sql.NullString
	var deletedAt *time.Time

	err := row.Scan(
		&txn.TransactionID,
		&txn.OrgID,
		&propertyID,
		&txn.AccountID,
		&txn.TransactionDate,
		&txn.TransactionType,
		&txn.Amount,
		&referenceNumber,
		&description,
		&memo,
		&tenantID,
		&vendorID,
		&invoiceID,
		&deletedAt,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	if err != nil {
		return domain.Transaction{}, err
	}

	txn.PropertyID = fromNullString(propertyID)
	txn.ReferenceNumber = fromNullString(referenceNumber)
	txn.Description = fromNullString(description)
	txn.Memo = fromNullString(memo)
	txn.TenantID = fromNullString(tenantID)
	txn.VendorID = fromNullString(vendorID)
	txn.InvoiceID = fromNullString(invoiceID)
	txn.Lifecycle = domain.LifecycleFromDeletedAt(deletedAt)
	return txn, nil
}

// SaveTransaction inserts a new ledger entry.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, org_id, property_id, account_id, transaction_date, transaction_type, amount, reference_number, description, memo, tenant_id, vendor_id, invoice_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`

	_, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.OrgID,
		nullString(txn.PropertyID),
		txn.AccountID,
		txn.TransactionDate,
		txn.TransactionType,
		txn.Amount,
		nullString(txn.ReferenceNumber),
		nullString(txn.Description),
		nullString(txn.Memo),
		nullString(txn.TenantID),
		nullString(txn.VendorID),
		nullString(txn.InvoiceID),
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.CreatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, txn.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a ledger entry by its ID within an org.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, orgID string, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return &txn, nil
}

// ListTransactions retrieves a page of ledger entries ordered newest first.
// Keyset pagination compares (transaction_date, created_at) against the
// caller's resume keys so a stable total count is never needed.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, orgID string, filters portsrepo.TransactionFilters, limit int, afterDate *time.Time, afterCreatedAt *time.Time) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE org_id = $1 AND deleted_at IS NULL
	`
	args := []interface{}{orgID}

	if filters.PropertyID != nil {
		args = append(args, *filters.PropertyID)
		query += fmt.Sprintf(" AND property_id = $%d", len(args))
	}
	if filters.AccountID != nil {
		args = append(args, *filters.AccountID)
		query += fmt.Sprintf(" AND account_id = $%d", len(args))
	}
	if filters.FromDate != nil {
		args = append(args, *filters.FromDate)
		query += fmt.Sprintf(" AND transaction_date >= $%d", len(args))
	}
	if filters.ToDate != nil {
		args = append(args, *filters.ToDate)
		query += fmt.Sprintf(" AND transaction_date <= $%d", len(args))
	}
	if afterDate != nil && afterCreatedAt != nil {
		args = append(args, *afterDate, *afterCreatedAt)
		query += fmt.Sprintf(" AND (transaction_date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY transaction_date DESC, created_at DESC LIMIT $%d;", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for org %s: %w", orgID, err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for org %s: %w", orgID, err)
		}
		transactions = append(transactions, txn)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows for org %s: %w", orgID, rows.Err())
	}

	return transactions, nil
}

// UpdateTransaction updates an existing ledger entry.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions
		SET property_id = $3, account_id = $4, transaction_date = $5, transaction_type = $6, amount = $7, reference_number = $8, description = $9, memo = $10, last_updated_at = $11, last_updated_by = $12
		WHERE transaction_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.OrgID,
		nullString(txn.PropertyID),
		txn.AccountID,
		txn.TransactionDate,
		txn.TransactionType,
		txn.Amount,
		nullString(txn.ReferenceNumber),
		nullString(txn.Description),
		nullString(txn.Memo),
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update transaction %s: %w", txn.TransactionID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteTransaction soft deletes a ledger entry.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, orgID string, transactionID string, userID string, now time.Time) error {
	query := `
		UPDATE transactions
		SET deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query, transactionID, orgID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute delete transaction %s: %w", transactionID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
