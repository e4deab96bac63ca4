package repositories

import (
	"context"
	"time"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// CertificationFilters narrows a certification listing.
type CertificationFilters struct {
	TenantID   *string
	PropertyID *string
	Status     *string
}

// CertificationReader defines read operations for tenant income certifications
type CertificationReader interface {
	// FindCertificationByID retrieves a specific certification by its unique identifier.
	FindCertificationByID(ctx context.Context, orgID string, certificationID string) (*domain.TenantIncomeCertification, error)

	// ListCertifications retrieves certifications for an org.
	ListCertifications(ctx context.Context, orgID string, filters CertificationFilters, limit int, offset int) ([]domain.TenantIncomeCertification, error)

	// ListExpiringCertifications retrieves approved annual certifications
	// whose anniversary falls on or before the cutoff date.
	ListExpiringCertifications(ctx context.Context, orgID string, cutoff time.Time) ([]domain.TenantIncomeCertification, error)
}

// CertificationWriter defines write operations for tenant income certifications
type CertificationWriter interface {
	// SaveCertification persists a new certification.
	SaveCertification(ctx context.Context, cert domain.TenantIncomeCertification) error

	// UpdateCertification updates an existing certification.
	UpdateCertification(ctx context.Context, cert domain.TenantIncomeCertification) error

	// MarkHUD50059Submitted records a HUD-50059 submission timestamp.
	MarkHUD50059Submitted(ctx context.Context, orgID string, certificationID string, submittedAt time.Time, userID string) error

	// DeleteCertification soft deletes a certification.
	DeleteCertification(ctx context.Context, orgID string, certificationID string, userID string, now time.Time) error
}

// HouseholdMemberRepository defines operations for certification household
// rosters. Members carry no org column, so every lookup joins through the
// owning certification to enforce org scope.
type HouseholdMemberRepository interface {
	// SaveHouseholdMember persists a new household member.
	SaveHouseholdMember(ctx context.Context, member domain.HouseholdMember) error

	// FindHouseholdMemberByID retrieves a member whose certification belongs to the org.
	FindHouseholdMemberByID(ctx context.Context, orgID string, memberID string) (*domain.HouseholdMember, error)

	// ListHouseholdMembers retrieves the roster of one certification.
	ListHouseholdMembers(ctx context.Context, orgID string, certificationID string) ([]domain.HouseholdMember, error)

	// UpdateHouseholdMember updates an existing household member.
	UpdateHouseholdMember(ctx context.Context, orgID string, member domain.HouseholdMember) error

	// DeleteHouseholdMember soft deletes a household member.
	DeleteHouseholdMember(ctx context.Context, orgID string, memberID string, userID string, now time.Time) error
}

// IncomeSourceRepository defines operations for household member income
// sources. Org scope is enforced through the member's certification.
type IncomeSourceRepository interface {
	// SaveIncomeSource persists a new income source.
	SaveIncomeSource(ctx context.Context, source domain.IncomeSource) error

	// FindIncomeSourceByID retrieves a source whose certification belongs to the org.
	FindIncomeSourceByID(ctx context.Context, orgID string, sourceID string) (*domain.IncomeSource, error)

	// ListIncomeSources retrieves the income sources of one household member.
	ListIncomeSources(ctx context.Context, orgID string, memberID string) ([]domain.IncomeSource, error)

	// UpdateIncomeSource updates an existing income source.
	UpdateIncomeSource(ctx context.Context, orgID string, source domain.IncomeSource) error

	// DeleteIncomeSource soft deletes an income source.
	DeleteIncomeSource(ctx context.Context, orgID string, sourceID string, userID string, now time.Time) error
}

// InspectionRepository defines operations for REAC inspection records
type InspectionRepository interface {
	// SaveInspection persists a new inspection record.
	SaveInspection(ctx context.Context, inspection domain.REACInspection) error

	// FindInspectionByID retrieves an inspection by its unique identifier.
	FindInspectionByID(ctx context.Context, orgID string, inspectionID string) (*domain.REACInspection, error)

	// ListInspections retrieves inspections ordered newest first, optionally
	// restricted to one property.
	ListInspections(ctx context.Context, orgID string, propertyID *string) ([]domain.REACInspection, error)

	// ListUpcomingInspections retrieves inspections whose next scheduled date
	// falls between from and cutoff, soonest first.
	ListUpcomingInspections(ctx context.Context, orgID string, from time.Time, cutoff time.Time) ([]domain.REACInspection, error)

	// UpdateInspection updates an existing inspection record.
	UpdateInspection(ctx context.Context, inspection domain.REACInspection) error
}

// UtilityAllowanceReader defines read operations for utility allowance schedules
type UtilityAllowanceReader interface {
	// FindLatestAllowance retrieves the most recent effective allowance row
	// for a property and bedroom count.
	FindLatestAllowance(ctx context.Context, orgID string, propertyID string, bedroomCount int) (*domain.UtilityAllowance, error)

	// ListAllowances retrieves allowance rows for a property.
	ListAllowances(ctx context.Context, orgID string, propertyID string) ([]domain.UtilityAllowance, error)
}

// UtilityAllowanceWriter defines write operations for utility allowance schedules
type UtilityAllowanceWriter interface {
	// SaveAllowance persists a new allowance row.
	SaveAllowance(ctx context.Context, allowance domain.UtilityAllowance) error

	// DeleteAllowance soft deletes an allowance row.
	DeleteAllowance(ctx context.Context, orgID string, allowanceID string, userID string, now time.Time) error
}

// HUDRepositoryFacade combines all HUD-related repository interfaces
type HUDRepositoryFacade interface {
	CertificationReader
	CertificationWriter
	HouseholdMemberRepository
	IncomeSourceRepository
	InspectionRepository
	UtilityAllowanceReader
	UtilityAllowanceWriter
}
