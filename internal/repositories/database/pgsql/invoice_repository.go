package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	portsrepo "github.com/PropLedger/prop_ledger_app/internal/core/ports/repositories"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, org_id, property_id, vendor_id, tenant_id, invoice_number, invoice_date, due_date, subtotal, tax_amount, total_amount, amount_paid, status, notes, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var inv domain.Invoice
	var propertyID, vendorID, tenantID, notes sql.NullString
	var deletedAt *time.Time

	err := row.Scan(
		&inv.InvoiceID,
		&inv.OrgID,
		&propertyID,
		&vendorID,
		&tenantID,
		&inv.InvoiceNumber,
		&inv.InvoiceDate,
		&inv.DueDate,
		&inv.Subtotal,
		&inv.TaxAmount,
		&inv.TotalAmount,
		&inv.AmountPaid,
		&inv.Status,
		&notes,
		&deletedAt,
		&inv.CreatedAt,
		&inv.CreatedBy,
		&inv.LastUpdatedAt,
		&inv.LastUpdatedBy,
	)
	if err != nil {
		return domain.Invoice{}, err
	}

	inv.PropertyID = fromNullString(propertyID)
	inv.VendorID = fromNullString(vendorID)
	inv.TenantID = fromNullString(tenantID)
	inv.Notes = fromNullString(notes)
	inv.Lifecycle = domain.LifecycleFromDeletedAt(deletedAt)
	return inv, nil
}

// SaveInvoice inserts an invoice header and its line items in one transaction.
// A failure on any line item rolls back the header insert.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	headerQuery := `
		INSERT INTO invoices (invoice_id, org_id, property_id, vendor_id, tenant_id, invoice_number, invoice_date, due_date, subtotal, tax_amount, total_amount, amount_paid, status, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`

	_, err = tx.Exec(ctx, headerQuery,
		invoice.InvoiceID,
		invoice.OrgID,
		nullString(invoice.PropertyID),
		nullString(invoice.VendorID),
		nullString(invoice.TenantID),
		invoice.InvoiceNumber,
		invoice.InvoiceDate,
		invoice.DueDate,
		invoice.Subtotal,
		invoice.TaxAmount,
		invoice.TotalAmount,
		invoice.AmountPaid,
		invoice.Status,
		nullString(invoice.Notes),
		invoice.CreatedAt,
		invoice.CreatedBy,
		invoice.LastUpdatedAt,
		invoice.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice with ID %s already exists", apperrors.ErrDuplicate, invoice.InvoiceID)
		}
		return fmt.Errorf("failed to save invoice %s: %w", invoice.InvoiceID, err)
	}

	if len(invoice.LineItems) > 0 {
		itemQuery := `
			INSERT INTO invoice_line_items (line_item_id, invoice_id, account_id, description, quantity, unit_price, amount, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		batch := &pgx.Batch{}
		for _, item := range invoice.LineItems {
			batch.Queue(itemQuery,
				item.LineItemID,
				item.InvoiceID,
				item.AccountID,
				item.Description,
				item.Quantity,
				item.UnitPrice,
				item.Amount,
				item.CreatedAt,
			)
		}

		br := tx.SendBatch(ctx, batch)
		var batchErr error
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil && batchErr == nil {
				batchErr = fmt.Errorf("failed to save line item %s for invoice %s: %w", invoice.LineItems[i].LineItemID, invoice.InvoiceID, err)
			}
		}
		if err := br.Close(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to close line item batch for invoice %s: %w", invoice.InvoiceID, err)
		}
		if batchErr != nil {
			return batchErr
		}
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice and its line items.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, orgID string, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE invoice_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	inv, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}

	itemQuery := `
		SELECT line_item_id, invoice_id, account_id, description, quantity, unit_price, amount, created_at
		FROM invoice_line_items
		WHERE invoice_id = $1
		ORDER BY created_at;
	`

	rows, err := r.Pool.Query(ctx, itemQuery, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.InvoiceLineItem
		err := rows.Scan(
			&item.LineItemID,
			&item.InvoiceID,
			&item.AccountID,
			&item.Description,
			&item.Quantity,
			&item.UnitPrice,
			&item.Amount,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item row for invoice %s: %w", invoiceID, err)
		}
		inv.LineItems = append(inv.LineItems, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating line item rows for invoice %s: %w", invoiceID, rows.Err())
	}

	return &inv, nil
}

// ListInvoices retrieves a paginated list of invoice headers for an org.
// Line items are not loaded here; fetch a single invoice for those.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, orgID string, filters portsrepo.InvoiceFilters, limit int, offset int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE org_id = $1 AND deleted_at IS NULL
	`
	args := []interface{}{orgID}

	if filters.PropertyID != nil {
		args = append(args, *filters.PropertyID)
		query += fmt.Sprintf(" AND property_id = $%d", len(args))
	}
	if filters.VendorID != nil {
		args = append(args, *filters.VendorID)
		query += fmt.Sprintf(" AND vendor_id = $%d", len(args))
	}
	if filters.Status != nil {
		args = append(args, *filters.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY invoice_date DESC, created_at DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices for org %s: %w", orgID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row for org %s: %w", orgID, err)
		}
		invoices = append(invoices, inv)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoice rows for org %s: %w", orgID, rows.Err())
	}

	return invoices, nil
}

// ListVendorInvoicesForYear retrieves a vendor's invoices dated within a
// calendar year, oldest first, for 1099 reporting.
func (r *PgxInvoiceRepository) ListVendorInvoicesForYear(ctx context.Context, orgID string, vendorID string, year int) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE org_id = $1 AND vendor_id = $2 AND deleted_at IS NULL
		  AND EXTRACT(YEAR FROM invoice_date) = $3
		ORDER BY invoice_date;
	`

	rows, err := r.Pool.Query(ctx, query, orgID, vendorID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices for vendor %s year %d: %w", vendorID, year, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row for vendor %s: %w", vendorID, err)
		}
		invoices = append(invoices, inv)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoice rows for vendor %s: %w", vendorID, rows.Err())
	}

	return invoices, nil
}

// UpdateInvoice updates an existing invoice header.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	query := `
		UPDATE invoices
		SET invoice_number = $3, invoice_date = $4, due_date = $5, subtotal = $6, tax_amount = $7, total_amount = $8, status = $9, notes = $10, last_updated_at = $11, last_updated_by = $12
		WHERE invoice_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.OrgID,
		invoice.InvoiceNumber,
		invoice.InvoiceDate,
		invoice.DueDate,
		invoice.Subtotal,
		invoice.TaxAmount,
		invoice.TotalAmount,
		invoice.Status,
		nullString(invoice.Notes),
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update invoice %s: %w", invoice.InvoiceID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// RecordPayment sets the paid amount and derived status on an invoice.
func (r *PgxInvoiceRepository) RecordPayment(ctx context.Context, orgID string, invoiceID string, amountPaid decimal.Decimal, status string, userID string, now time.Time) error {
	query := `
		UPDATE invoices
		SET amount_paid = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE invoice_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, invoiceID, orgID, amountPaid, status, now, userID)
	if err != nil {
		return fmt.Errorf("failed to record payment on invoice %s: %w", invoiceID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteInvoice soft deletes an invoice. Line items stay in place; they are
// unreachable once the header is deleted.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, orgID string, invoiceID string, userID string, now time.Time) error {
	query := `
		UPDATE invoices
		SET deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, invoiceID, orgID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute delete invoice %s: %w", invoiceID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
