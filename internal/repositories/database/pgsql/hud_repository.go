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

type PgxHUDRepository struct {
	pool *pgxpool.Pool
}

// newPgxHUDRepository creates a new repository for HUD compliance data,
// covering income certifications and utility allowance schedules.
func newPgxHUDRepository(pool *pgxpool.Pool) portsrepo.HUDRepositoryFacade {
	return &PgxHUDRepository{pool: pool}
}

// Ensure PgxHUDRepository implements portsrepo.HUDRepositoryFacade
var _ portsrepo.HUDRepositoryFacade = (*PgxHUDRepository)(nil)

const certificationColumns = `certification_id, org_id, tenant_id, property_id, unit_id, certification_date, effective_date, cert_type, household_size, annual_income, adjusted_income, tenant_rent_portion, utility_allowance, subsidy_amount, status, hud_50059_submitted, hud_50059_date, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanCertification(row pgx.Row) (domain.TenantIncomeCertification, error) {
	var cert domain.TenantIncomeCertification
	var unitID sql.NullString
	var hud50059Date, deletedAt *time.Time

	err := row.Scan(
		&cert.CertificationID,
		&cert.OrgID,
		&cert.TenantID,
		&cert.PropertyID,
		&unitID,
		&cert.CertificationDate,
		&cert.EffectiveDate,
		&cert.CertType,
		&cert.HouseholdSize,
		&cert.AnnualIncome,
		&cert.AdjustedIncome,
		&cert.TenantRentPortion,
		&cert.UtilityAllowance,
		&cert.SubsidyAmount,
		&cert.Status,
		&cert.HUD50059Submitted,
		&hud50059Date,
		&deletedAt,
		&cert.CreatedAt,
		&cert.CreatedBy,
		&cert.LastUpdatedAt,
		&cert.LastUpdatedBy,
	)
	if err != nil {
		return domain.TenantIncomeCertification{}, err
	}

	cert.UnitID = fromNullString(unitID)
	cert.HUD50059Date = hud50059Date
	cert.Lifecycle = domain.LifecycleFromDeletedAt(deletedAt)
	return cert, nil
}

// SaveCertification inserts a new income certification.
func (r *PgxHUDRepository) SaveCertification(ctx context.Context, cert domain.TenantIncomeCertification) error {
	query := `
		INSERT INTO tenant_income_certifications (certification_id, org_id, tenant_id, property_id, unit_id, certification_date, effective_date, cert_type, household_size, annual_income, adjusted_income, tenant_rent_portion, utility_allowance, subsidy_amount, status, hud_50059_submitted, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`

	_, err := r.pool.Exec(ctx, query,
		cert.CertificationID,
		cert.OrgID,
		cert.TenantID,
		cert.PropertyID,
		nullString(cert.UnitID),
		cert.CertificationDate,
		cert.EffectiveDate,
		cert.CertType,
		cert.HouseholdSize,
		cert.AnnualIncome,
		cert.AdjustedIncome,
		cert.TenantRentPortion,
		cert.UtilityAllowance,
		cert.SubsidyAmount,
		cert.Status,
		cert.HUD50059Submitted,
		cert.CreatedAt,
		cert.CreatedBy,
		cert.LastUpdatedAt,
		cert.CreatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: certification with ID %s already exists", apperrors.ErrDuplicate, cert.CertificationID)
		}
		return fmt.Errorf("failed to save certification %s: %w", cert.CertificationID, err)
	}
	return nil
}

// FindCertificationByID retrieves a certification by its ID within an org.
func (r *PgxHUDRepository) FindCertificationByID(ctx context.Context, orgID string, certificationID string) (*domain.TenantIncomeCertification, error) {
	query := `
		SELECT ` + certificationColumns + `
		FROM tenant_income_certifications
		WHERE certification_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cert, err := scanCertification(r.pool.QueryRow(ctx, query, certificationID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find certification by ID %s: %w", certificationID, err)
	}
	return &cert, nil
}

// ListCertifications retrieves a paginated list of certifications for an org.
func (r *PgxHUDRepository) ListCertifications(ctx context.Context, orgID string, filters portsrepo.CertificationFilters, limit int, offset int) ([]domain.TenantIncomeCertification, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + certificationColumns + `
		FROM tenant_income_certifications
		WHERE org_id = $1 AND deleted_at IS NULL
	`
	args := []interface{}{orgID}

	if filters.TenantID != nil {
		args = append(args, *filters.TenantID)
		query += fmt.Sprintf(" AND tenant_id = $%d", len(args))
	}
	if filters.PropertyID != nil {
		args = append(args, *filters.PropertyID)
		query += fmt.Sprintf(" AND property_id = $%d", len(args))
	}
	if filters.Status != nil {
		args = append(args, *filters.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY effective_date DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query certifications for org %s: %w", orgID, err)
	}
	defer rows.Close()

	certs := []domain.TenantIncomeCertification{}
	for rows.Next() {
		cert, err := scanCertification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan certification row for org %s: %w", orgID, err)
		}
		certs = append(certs, cert)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating certification rows for org %s: %w", orgID, rows.Err())
	}

	return certs, nil
}

// ListExpiringCertifications retrieves approved annual certifications whose
// one-year anniversary falls on or before the cutoff date.
func (r *PgxHUDRepository) ListExpiringCertifications(ctx context.Context, orgID string, cutoff time.Time) ([]domain.TenantIncomeCertification, error) {
	query := `
		SELECT ` + certificationColumns + `
		FROM tenant_income_certifications
		WHERE org_id = $1 AND deleted_at IS NULL
		  AND status = $2
		  AND cert_type IN ($3, $4)
		  AND effective_date + INTERVAL '1 year' <= $5
		ORDER BY effective_date;
	`

	rows, err := r.pool.Query(ctx, query, orgID, domain.CertApproved, domain.CertAnnual, domain.CertMoveIn, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query expiring certifications for org %s: %w", orgID, err)
	}
	defer rows.Close()

	certs := []domain.TenantIncomeCertification{}
	for rows.Next() {
		cert, err := scanCertification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expiring certification row for org %s: %w", orgID, err)
		}
		certs = append(certs, cert)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expiring certification rows for org %s: %w", orgID, rows.Err())
	}

	return certs, nil
}

// UpdateCertification updates an existing certification.
func (r *PgxHUDRepository) UpdateCertification(ctx context.Context, cert domain.TenantIncomeCertification) error {
	query := `
		UPDATE tenant_income_certifications
		SET household_size = $3, annual_income = $4, adjusted_income = $5, tenant_rent_portion = $6, utility_allowance = $7, subsidy_amount = $8, status = $9, effective_date = $10, last_updated_at = $11, last_updated_by = $12
		WHERE certification_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query,
		cert.CertificationID,
		cert.OrgID,
		cert.HouseholdSize,
		cert.AnnualIncome,
		cert.AdjustedIncome,
		cert.TenantRentPortion,
		cert.UtilityAllowance,
		cert.SubsidyAmount,
		cert.Status,
		cert.EffectiveDate,
		cert.LastUpdatedAt,
		cert.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update certification %s: %w", cert.CertificationID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// MarkHUD50059Submitted records a HUD-50059 submission timestamp.
func (r *PgxHUDRepository) MarkHUD50059Submitted(ctx context.Context, orgID string, certificationID string, submittedAt time.Time, userID string) error {
	query := `
		UPDATE tenant_income_certifications
		SET hud_50059_submitted = TRUE, hud_50059_date = $3, last_updated_at = $3, last_updated_by = $4
		WHERE certification_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query, certificationID, orgID, submittedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to mark HUD-50059 submitted for certification %s: %w", certificationID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteCertification soft deletes a certification.
func (r *PgxHUDRepository) DeleteCertification(ctx context.Context, orgID string, certificationID string, userID string, now time.Time) error {
	query := `
		UPDATE tenant_income_certifications
		SET deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE certification_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query, certificationID, orgID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute delete certification %s: %w", certificationID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

const allowanceColumns = `allowance_id, org_id, property_id, bedroom_count, heating, cooking, lighting, water_sewer, trash, total_allowance, effective_date, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanAllowance(row pgx.Row) (domain.UtilityAllowance, error) {
	var a domain.UtilityAllowance
	var deletedAt *time.Time

	err := row.Scan(
		&a.AllowanceID,
		&a.OrgID,
		&a.PropertyID,
		&a.BedroomCount,
		&a.Heating,
		&a.Cooking,
		&a.Lighting,
		&a.WaterSewer,
		&a.Trash,
		&a.TotalAllowance,
		&a.EffectiveDate,
		&deletedAt,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		return domain.UtilityAllowance{}, err
	}

	a.Lifecycle = domain.LifecycleFromDeletedAt(deletedAt)
	return a, nil
}

// SaveAllowance inserts a new utility allowance row.
func (r *PgxHUDRepository) SaveAllowance(ctx context.Context, allowance domain.UtilityAllowance) error {
	query := `
		INSERT INTO utility_allowances (allowance_id, org_id, property_id, bedroom_count, heating, cooking, lighting, water_sewer, trash, total_allowance, effective_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`

	_, err := r.pool.Exec(ctx, query,
		allowance.AllowanceID,
		allowance.OrgID,
		allowance.PropertyID,
		allowance.BedroomCount,
		allowance.Heating,
		allowance.Cooking,
		allowance.Lighting,
		allowance.WaterSewer,
		allowance.Trash,
		allowance.TotalAllowance,
		allowance.EffectiveDate,
		allowance.CreatedAt,
		allowance.CreatedBy,
		allowance.LastUpdatedAt,
		allowance.CreatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: allowance with ID %s already exists", apperrors.ErrDuplicate, allowance.AllowanceID)
		}
		return fmt.Errorf("failed to save allowance %s: %w", allowance.AllowanceID, err)
	}
	return nil
}

// FindLatestAllowance retrieves the most recent effective allowance row for a
// property and bedroom count.
func (r *PgxHUDRepository) FindLatestAllowance(ctx context.Context, orgID string, propertyID string, bedroomCount int) (*domain.UtilityAllowance, error) {
	query := `
		SELECT ` + allowanceColumns + `
		FROM utility_allowances
		WHERE org_id = $1 AND property_id = $2 AND bedroom_count = $3 AND deleted_at IS NULL
		ORDER BY effective_date DESC
		LIMIT 1;
	`

	a, err := scanAllowance(r.pool.QueryRow(ctx, query, orgID, propertyID, bedroomCount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find allowance for property %s: %w", propertyID, err)
	}
	return &a, nil
}

// ListAllowances retrieves allowance rows for a property.
func (r *PgxHUDRepository) ListAllowances(ctx context.Context, orgID string, propertyID string) ([]domain.UtilityAllowance, error) {
	query := `
		SELECT ` + allowanceColumns + `
		FROM utility_allowances
		WHERE org_id = $1 AND property_id = $2 AND deleted_at IS NULL
		ORDER BY bedroom_count, effective_date DESC;
	`

	rows, err := r.pool.Query(ctx, query, orgID, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allowances for property %s: %w", propertyID, err)
	}
	defer rows.Close()

	allowances := []domain.UtilityAllowance{}
	for rows.Next() {
		a, err := scanAllowance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allowance row for property %s: %w", propertyID, err)
		}
		allowances = append(allowances, a)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating allowance rows for property %s: %w", propertyID, rows.Err())
	}

	return allowances, nil
}

// DeleteAllowance soft deletes an allowance row.
func (r *PgxHUDRepository) DeleteAllowance(ctx context.Context, orgID string, allowanceID string, userID string, now time.Time) error {
	query := `
		UPDATE utility_allowances
		SET deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE allowance_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query, allowanceID, orgID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute delete allowance %s: %w", allowanceID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
