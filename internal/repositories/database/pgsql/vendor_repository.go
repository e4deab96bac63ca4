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

type PgxVendorRepository struct {
	pool *pgxpool.Pool
}

// newPgxVendorRepository creates a new repository for vendor data.
func newPgxVendorRepository(pool *pgxpool.Pool) portsrepo.VendorRepositoryFacade {
	return &PgxVendorRepository{pool: pool}
}

// Ensure PgxVendorRepository implements portsrepo.VendorRepositoryFacade
var _ portsrepo.VendorRepositoryFacade = (*PgxVendorRepository)(nil)

const vendorColumns = `vendor_id, org_id, vendor_name, contact_person, email, phone, address, tax_id, payment_terms, is_active, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanVendor(row pgx.Row) (domain.Vendor, error) {
	var v domain.Vendor
	var contactPerson, email, phone, address, taxID, paymentTerms sql.NullString
	var deletedAt *time.Time

	err := row.Scan(
		&v.VendorID,
		&v.OrgID,
		&v.VendorName,
		&contactPerson,
		&email,
		&phone,
		&address,
		&taxID,
		&paymentTerms,
		&v.IsActive,
		&deletedAt,
		&v.CreatedAt,
		&v.CreatedBy,
		&v.LastUpdatedAt,
		&v.LastUpdatedBy,
	)
	if err != nil {
		return domain.Vendor{}, err
	}

	v.ContactPerson = fromNullString(contactPerson)
	v.Email = fromNullString(email)
	v.Phone = fromNullString(phone)
	v.Address = fromNullString(address)
	v.TaxID = fromNullString(taxID)
	v.PaymentTerms = fromNullString(paymentTerms)
	v.Lifecycle = domain.LifecycleFromDeletedAt(deletedAt)
	return v, nil
}

// SaveVendor inserts a new vendor.
func (r *PgxVendorRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) error {
	query := `
		INSERT INTO vendors (vendor_id, org_id, vendor_name, contact_person, email, phone, address, tax_id, payment_terms, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`

	_, err := r.pool.Exec(ctx, query,
		vendor.VendorID,
		vendor.OrgID,
		vendor.VendorName,
		nullString(vendor.ContactPerson),
		nullString(vendor.Email),
		nullString(vendor.Phone),
		nullString(vendor.Address),
		nullString(vendor.TaxID),
		nullString(vendor.PaymentTerms),
		vendor.IsActive,
		vendor.CreatedAt,
		vendor.CreatedBy,
		vendor.LastUpdatedAt,
		vendor.CreatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: vendor with ID %s already exists", apperrors.ErrDuplicate, vendor.VendorID)
		}
		return fmt.Errorf("failed to save vendor %s: %w", vendor.VendorID, err)
	}
	return nil
}

// FindVendorByID retrieves a vendor by its ID within an org.
func (r *PgxVendorRepository) FindVendorByID(ctx context.Context, orgID string, vendorID string) (*domain.Vendor, error) {
	query := `
		SELECT ` + vendorColumns + `
		FROM vendors
		WHERE vendor_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	v, err := scanVendor(r.pool.QueryRow(ctx, query, vendorID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vendor by ID %s: %w", vendorID, err)
	}
	return &v, nil
}

// ListVendors retrieves a paginated list of vendors for an org.
func (r *PgxVendorRepository) ListVendors(ctx context.Context, orgID string, includeInactive bool, limit int, offset int) ([]domain.Vendor, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + vendorColumns + `
		FROM vendors
		WHERE org_id = $1 AND deleted_at IS NULL
	`
	if !includeInactive {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY vendor_name LIMIT $2 OFFSET $3;"

	rows, err := r.pool.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors for org %s: %w", orgID, err)
	}
	defer rows.Close()

	vendors := []domain.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor row for org %s: %w", orgID, err)
		}
		vendors = append(vendors, v)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating vendor rows for org %s: %w", orgID, rows.Err())
	}

	return vendors, nil
}

// UpdateVendor updates an existing vendor.
func (r *PgxVendorRepository) UpdateVendor(ctx context.Context, vendor domain.Vendor) error {
	query := `
		UPDATE vendors
		SET vendor_name = $3, contact_person = $4, email = $5, phone = $6, address = $7, tax_id = $8, payment_terms = $9, is_active = $10, last_updated_at = $11, last_updated_by = $12
		WHERE vendor_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query,
		vendor.VendorID,
		vendor.OrgID,
		vendor.VendorName,
		nullString(vendor.ContactPerson),
		nullString(vendor.Email),
		nullString(vendor.Phone),
		nullString(vendor.Address),
		nullString(vendor.TaxID),
		nullString(vendor.PaymentTerms),
		vendor.IsActive,
		vendor.LastUpdatedAt,
		vendor.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update vendor %s: %w", vendor.VendorID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteVendor soft deletes a vendor.
func (r *PgxVendorRepository) DeleteVendor(ctx context.Context, orgID string, vendorID string, userID string, now time.Time) error {
	query := `
		UPDATE vendors
		SET deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE vendor_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query, vendorID, orgID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute delete vendor %s: %w", vendorID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
