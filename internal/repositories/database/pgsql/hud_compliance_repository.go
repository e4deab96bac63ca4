package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// Household roster, income source, and REAC inspection persistence for the
// HUD facade. Members and income sources carry no org column; queries join
// through tenant_income_certifications to keep lookups org-scoped.

const householdMemberColumns = `m.member_id, m.certification_id, m.full_name, m.ssn_last_4, m.date_of_birth, m.relationship_type, m.is_student, m.is_disabled, m.annual_income, m.deleted_at, m.created_at, m.created_by, m.last_updated_at, m.last_updated_by`

func scanHouseholdMember(row pgx.Row) (domain.HouseholdMember, error) {
	var m domain.HouseholdMember
	var ssnLast4 sql.NullString
	var deletedAt *time.Time

	err := row.Scan(
		&m.MemberID,
		&m.CertificationID,
		&m.FullName,
		&ssnLast4,
		&m.DateOfBirth,
		&m.RelationshipType,
		&m.IsStudent,
		&m.IsDisabled,
		&m.AnnualIncome,
		&deletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.HouseholdMember{}, err
	}

	m.SSNLast4 = fromNullString(ssnLast4)
	m.Lifecycle = domain.LifecycleFromDeletedAt(deletedAt)
	return m, nil
}

// SaveHouseholdMember inserts a new household member.
func (r *PgxHUDRepository) SaveHouseholdMember(ctx context.Context, member domain.HouseholdMember) error {
	query := `
		INSERT INTO household_members (member_id, certification_id, full_name, ssn_last_4, date_of_birth, relationship_type, is_student, is_disabled, annual_income, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`

	_, err := r.pool.Exec(ctx, query,
		member.MemberID,
		member.CertificationID,
		member.FullName,
		nullString(member.SSNLast4),
		member.DateOfBirth,
		member.RelationshipType,
		member.IsStudent,
		member.IsDisabled,
		member.AnnualIncome,
		member.CreatedAt,
		member.CreatedBy,
		member.LastUpdatedAt,
		member.CreatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: household member with ID %s already exists", apperrors.ErrDuplicate, member.MemberID)
		}
		return fmt.Errorf("failed to save household member %s: %w", member.MemberID, err)
	}
	return nil
}

// FindHouseholdMemberByID retrieves a member whose certification belongs to the org.
func (r *PgxHUDRepository) FindHouseholdMemberByID(ctx context.Context, orgID string, memberID string) (*domain.HouseholdMember, error) {
	query := `
		SELECT ` + householdMemberColumns + `
		FROM household_members m
		JOIN tenant_income_certifications c ON c.certification_id = m.certification_id
		WHERE m.member_id = $1 AND c.org_id = $2 AND m.deleted_at IS NULL;
	`

	m, err := scanHouseholdMember(r.pool.QueryRow(ctx, query, memberID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find household member by ID %s: %w", memberID, err)
	}
	return &m, nil
}

// ListHouseholdMembers retrieves the roster of one certification.
func (r *PgxHUDRepository) ListHouseholdMembers(ctx context.Context, orgID string, certificationID string) ([]domain.HouseholdMember, error) {
	query := `
		SELECT ` + householdMemberColumns + `
		FROM household_members m
		JOIN tenant_income_certifications c ON c.certification_id = m.certification_id
		WHERE m.certification_id = $1 AND c.org_id = $2 AND m.deleted_at IS NULL
		ORDER BY m.date_of_birth;
	`

	rows, err := r.pool.Query(ctx, query, certificationID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query household members for certification %s: %w", certificationID, err)
	}
	defer rows.Close()

	members := []domain.HouseholdMember{}
	for rows.Next() {
		m, err := scanHouseholdMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan household member row for certification %s: %w", certificationID, err)
		}
		members = append(members, m)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating household member rows for certification %s: %w", certificationID, rows.Err())
	}

	return members, nil
}

// UpdateHouseholdMember updates an existing household member, scoped to the org
// through the owning certification.
func (r *PgxHUDRepository) UpdateHouseholdMember(ctx context.Context, orgID string, member domain.HouseholdMember) error {
	query := `
		UPDATE household_members m
		SET full_name = $3, ssn_last_4 = $4, relationship_type = $5, is_student = $6, is_disabled = $7, annual_income = $8, last_updated_at = $9, last_updated_by = $10
		FROM tenant_income_certifications c
		WHERE c.certification_id = m.certification_id
		  AND m.member_id = $1 AND c.org_id = $2 AND m.deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query,
		member.MemberID,
		orgID,
		member.FullName,
		nullString(member.SSNLast4),
		member.RelationshipType,
		member.IsStudent,
		member.IsDisabled,
		member.AnnualIncome,
		member.LastUpdatedAt,
		member.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update household member %s: %w", member.MemberID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteHouseholdMember soft deletes a household member.
func (r *PgxHUDRepository) DeleteHouseholdMember(ctx context.Context, orgID string, memberID string, userID string, now time.Time) error {
	query := `
		UPDATE household_members m
		SET deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		FROM tenant_income_certifications c
		WHERE c.certification_id = m.certification_id
		  AND m.member_id = $1 AND c.org_id = $2 AND m.deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query, memberID, orgID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute delete household member %s: %w", memberID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

const incomeSourceColumns = `s.source_id, s.member_id, s.income_type, s.employer_name, s.monthly_amount, s.annual_amount, s.verification_type, s.verification_date, s.deleted_at, s.created_at, s.created_by, s.last_updated_at, s.last_updated_by`

func scanIncomeSource(row pgx.Row) (domain.IncomeSource, error) {
	var s domain.IncomeSource
	var employerName sql.NullString
	var deletedAt *time.Time

	err := row.Scan(
		&s.SourceID,
		&s.MemberID,
		&s.IncomeType,
		&employerName,
		&s.MonthlyAmount,
		&s.AnnualAmount,
		&s.VerificationType,
		&s.VerificationDate,
		&deletedAt,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	if err != nil {
		return domain.IncomeSource{}, err
	}

	s.EmployerName = fromNullString(employerName)
	s.Lifecycle = domain.LifecycleFromDeletedAt(deletedAt)
	return s, nil
}

// SaveIncomeSource inserts a new income source.
func (r *PgxHUDRepository) SaveIncomeSource(ctx context.Context, source domain.IncomeSource) error {
	query := `
		INSERT INTO income_sources (source_id, member_id, income_type, employer_name, monthly_amount, annual_amount, verification_type, verification_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	_, err := r.pool.Exec(ctx, query,
		source.SourceID,
		source.MemberID,
		source.IncomeType,
		nullString(source.EmployerName),
		source.MonthlyAmount,
		source.AnnualAmount,
		source.VerificationType,
		source.VerificationDate,
		source.CreatedAt,
		source.CreatedBy,
		source.LastUpdatedAt,
		source.CreatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: income source with ID %s already exists", apperrors.ErrDuplicate, source.SourceID)
		}
		return fmt.Errorf("failed to save income source %s: %w", source.SourceID, err)
	}
	return nil
}

// FindIncomeSourceByID retrieves a source whose certification belongs to the org.
func (r *PgxHUDRepository) FindIncomeSourceByID(ctx context.Context, orgID string, sourceID string) (*domain.IncomeSource, error) {
	query := `
		SELECT ` + incomeSourceColumns + `
		FROM income_sources s
		JOIN household_members m ON m.member_id = s.member_id
		JOIN tenant_income_certifications c ON c.certification_id = m.certification_id
		WHERE s.source_id = $1 AND c.org_id = $2 AND s.deleted_at IS NULL;
	`

	src, err := scanIncomeSource(r.pool.QueryRow(ctx, query, sourceID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find income source by ID %s: %w", sourceID, err)
	}
	return &src, nil
}

// ListIncomeSources retrieves the income sources of one household member.
func (r *PgxHUDRepository) ListIncomeSources(ctx context.Context, orgID string, memberID string) ([]domain.IncomeSource, error) {
	query := `
		SELECT ` + incomeSourceColumns + `
		FROM income_sources s
		JOIN household_members m ON m.member_id = s.member_id
		JOIN tenant_income_certifications c ON c.certification_id = m.certification_id
		WHERE s.member_id = $1 AND c.org_id = $2 AND s.deleted_at IS NULL
		ORDER BY s.verification_date DESC;
	`

	rows, err := r.pool.Query(ctx, query, memberID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query income sources for member %s: %w", memberID, err)
	}
	defer rows.Close()

	sources := []domain.IncomeSource{}
	for rows.Next() {
		s, err := scanIncomeSource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income source row for member %s: %w", memberID, err)
		}
		sources = append(sources, s)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating income source rows for member %s: %w", memberID, rows.Err())
	}

	return sources, nil
}

// UpdateIncomeSource updates an existing income source, scoped to the org
// through the member's certification.
func (r *PgxHUDRepository) UpdateIncomeSource(ctx context.Context, orgID string, source domain.IncomeSource) error {
	query := `
		UPDATE income_sources s
		SET income_type = $3, employer_name = $4, monthly_amount = $5, annual_amount = $6, verification_type = $7, last_updated_at = $8, last_updated_by = $9
		FROM household_members m
		JOIN tenant_income_certifications c ON c.certification_id = m.certification_id
		WHERE m.member_id = s.member_id
		  AND s.source_id = $1 AND c.org_id = $2 AND s.deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query,
		source.SourceID,
		orgID,
		source.IncomeType,
		nullString(source.EmployerName),
		source.MonthlyAmount,
		source.AnnualAmount,
		source.VerificationType,
		source.LastUpdatedAt,
		source.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update income source %s: %w", source.SourceID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteIncomeSource soft deletes an income source.
func (r *PgxHUDRepository) DeleteIncomeSource(ctx context.Context, orgID string, sourceID string, userID string, now time.Time) error {
	query := `
		UPDATE income_sources s
		SET deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		FROM household_members m
		JOIN tenant_income_certifications c ON c.certification_id = m.certification_id
		WHERE m.member_id = s.member_id
		  AND s.source_id = $1 AND c.org_id = $2 AND s.deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query, sourceID, orgID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute delete income source %s: %w", sourceID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

const inspectionColumns = `inspection_id, org_id, property_id, inspection_date, inspection_type, overall_score, inspection_status, deficiencies_count, critical_deficiencies, report_url, next_inspection_date, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanInspection(row pgx.Row) (domain.REACInspection, error) {
	var i domain.REACInspection
	var reportURL sql.NullString
	var deletedAt *time.Time

	err := row.Scan(
		&i.InspectionID,
		&i.OrgID,
		&i.PropertyID,
		&i.InspectionDate,
		&i.InspectionType,
		&i.OverallScore,
		&i.InspectionStatus,
		&i.DeficienciesCount,
		&i.CriticalDeficiencies,
		&reportURL,
		&i.NextInspectionDate,
		&deletedAt,
		&i.CreatedAt,
		&i.CreatedBy,
		&i.LastUpdatedAt,
		&i.LastUpdatedBy,
	)
	if err != nil {
		return domain.REACInspection{}, err
	}

	i.ReportURL = fromNullString(reportURL)
	i.Lifecycle = domain.LifecycleFromDeletedAt(deletedAt)
	return i, nil
}

// SaveInspection inserts a new REAC inspection record.
func (r *PgxHUDRepository) SaveInspection(ctx context.Context, inspection domain.REACInspection) error {
	query := `
		INSERT INTO reac_inspections (inspection_id, org_id, property_id, inspection_date, inspection_type, overall_score, inspection_status, deficiencies_count, critical_deficiencies, report_url, next_inspection_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`

	_, err := r.pool.Exec(ctx, query,
		inspection.InspectionID,
		inspection.OrgID,
		inspection.PropertyID,
		inspection.InspectionDate,
		inspection.InspectionType,
		inspection.OverallScore,
		inspection.InspectionStatus,
		inspection.DeficienciesCount,
		inspection.CriticalDeficiencies,
		nullString(inspection.ReportURL),
		inspection.NextInspectionDate,
		inspection.CreatedAt,
		inspection.CreatedBy,
		inspection.LastUpdatedAt,
		inspection.CreatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: inspection with ID %s already exists", apperrors.ErrDuplicate, inspection.InspectionID)
		}
		return fmt.Errorf("failed to save inspection %s: %w", inspection.InspectionID, err)
	}
	return nil
}

// FindInspectionByID retrieves an inspection by its ID within an org.
func (r *PgxHUDRepository) FindInspectionByID(ctx context.Context, orgID string, inspectionID string) (*domain.REACInspection, error) {
	query := `
		SELECT ` + inspectionColumns + `
		FROM reac_inspections
		WHERE inspection_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	i, err := scanInspection(r.pool.QueryRow(ctx, query, inspectionID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inspection by ID %s: %w", inspectionID, err)
	}
	return &i, nil
}

// ListInspections retrieves inspections ordered newest first.
func (r *PgxHUDRepository) ListInspections(ctx context.Context, orgID string, propertyID *string) ([]domain.REACInspection, error) {
	query := `
		SELECT ` + inspectionColumns + `
		FROM reac_inspections
		WHERE org_id = $1 AND deleted_at IS NULL
	`
	args := []interface{}{orgID}

	if propertyID != nil {
		args = append(args, *propertyID)
		query += fmt.Sprintf(" AND property_id = $%d", len(args))
	}

	query += " ORDER BY inspection_date DESC;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inspections for org %s: %w", orgID, err)
	}
	defer rows.Close()

	inspections := []domain.REACInspection{}
	for rows.Next() {
		i, err := scanInspection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inspection row for org %s: %w", orgID, err)
		}
		inspections = append(inspections, i)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating inspection rows for org %s: %w", orgID, rows.Err())
	}

	return inspections, nil
}

// ListUpcomingInspections retrieves inspections whose next scheduled date
// falls between from and cutoff, soonest first.
func (r *PgxHUDRepository) ListUpcomingInspections(ctx context.Context, orgID string, from time.Time, cutoff time.Time) ([]domain.REACInspection, error) {
	query := `
		SELECT ` + inspectionColumns + `
		FROM reac_inspections
		WHERE org_id = $1 AND deleted_at IS NULL
		  AND next_inspection_date >= $2
		  AND next_inspection_date <= $3
		ORDER BY next_inspection_date;
	`

	rows, err := r.pool.Query(ctx, query, orgID, from, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming inspections for org %s: %w", orgID, err)
	}
	defer rows.Close()

	inspections := []domain.REACInspection{}
	for rows.Next() {
		i, err := scanInspection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan upcoming inspection row for org %s: %w", orgID, err)
		}
		inspections = append(inspections, i)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating upcoming inspection rows for org %s: %w", orgID, rows.Err())
	}

	return inspections, nil
}

// UpdateInspection updates an existing inspection record.
func (r *PgxHUDRepository) UpdateInspection(ctx context.Context, inspection domain.REACInspection) error {
	query := `
		UPDATE reac_inspections
		SET overall_score = $3, inspection_status = $4, deficiencies_count = $5, critical_deficiencies = $6, report_url = $7, next_inspection_date = $8, last_updated_at = $9, last_updated_by = $10
		WHERE inspection_id = $1 AND org_id = $2 AND deleted_at IS NULL;
	`

	cmdTag, err := r.pool.Exec(ctx, query,
		inspection.InspectionID,
		inspection.OrgID,
		inspection.OverallScore,
		inspection.InspectionStatus,
		inspection.DeficienciesCount,
		inspection.CriticalDeficiencies,
		nullString(inspection.ReportURL),
		inspection.NextInspectionDate,
		inspection.LastUpdatedAt,
		inspection.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to execute update inspection %s: %w", inspection.InspectionID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
