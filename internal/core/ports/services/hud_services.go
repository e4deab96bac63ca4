package services

import (
	"context"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

// HUDCalculatorSvc defines the HUD rent calculation operations
type HUDCalculatorSvc interface {
	// CalculateTenantRent applies the HUD PRAC rent formula.
	CalculateTenantRent(ctx context.Context, req dto.CalculateRentRequest) domain.RentCalculation
}

// CertificationReaderSvc defines read operations for income certifications
type CertificationReaderSvc interface {
	// GetCertificationByID retrieves a specific certification by its unique identifier.
	GetCertificationByID(ctx context.Context, orgID string, certificationID string, userID string) (*domain.TenantIncomeCertification, error)

	// ListCertifications retrieves certifications for an org.
	ListCertifications(ctx context.Context, orgID string, params dto.ListCertificationsParams) ([]domain.TenantIncomeCertification, error)

	// ListExpiringCertifications retrieves approved annual certifications due
	// for renewal within the given number of days.
	ListExpiringCertifications(ctx context.Context, orgID string, withinDays int) ([]domain.TenantIncomeCertification, error)
}

// CertificationWriterSvc defines write operations for income certifications
type CertificationWriterSvc interface {
	// CreateCertification persists a new certification with server-computed
	// rent and subsidy figures.
	CreateCertification(ctx context.Context, orgID string, req dto.CreateCertificationRequest, userID string) (*domain.TenantIncomeCertification, error)

	// UpdateCertification updates an existing certification.
	UpdateCertification(ctx context.Context, orgID string, certificationID string, req dto.UpdateCertificationRequest, userID string) (*domain.TenantIncomeCertification, error)

	// SubmitHUD50059 records a HUD-50059 submission for an approved certification.
	SubmitHUD50059(ctx context.Context, orgID string, certificationID string, userID string) (*domain.TenantIncomeCertification, error)

	// DeleteCertification soft deletes a certification.
	DeleteCertification(ctx context.Context, orgID string, certificationID string, userID string) error
}

// HouseholdSvc defines operations for certification household rosters and
// their income sources
type HouseholdSvc interface {
	// AddHouseholdMember adds a member to an existing certification's roster.
	AddHouseholdMember(ctx context.Context, orgID string, certificationID string, req dto.CreateHouseholdMemberRequest, userID string) (*domain.HouseholdMember, error)

	// ListHouseholdMembers retrieves the roster of one certification.
	ListHouseholdMembers(ctx context.Context, orgID string, certificationID string) ([]domain.HouseholdMember, error)

	// UpdateHouseholdMember updates an existing household member.
	UpdateHouseholdMember(ctx context.Context, orgID string, memberID string, req dto.UpdateHouseholdMemberRequest, userID string) (*domain.HouseholdMember, error)

	// RemoveHouseholdMember soft deletes a household member.
	RemoveHouseholdMember(ctx context.Context, orgID string, memberID string, userID string) error

	// AddIncomeSource adds a verified income stream to a household member.
	AddIncomeSource(ctx context.Context, orgID string, memberID string, req dto.CreateIncomeSourceRequest, userID string) (*domain.IncomeSource, error)

	// ListIncomeSources retrieves the income sources of one household member.
	ListIncomeSources(ctx context.Context, orgID string, memberID string) ([]domain.IncomeSource, error)

	// UpdateIncomeSource updates an existing income source.
	UpdateIncomeSource(ctx context.Context, orgID string, sourceID string, req dto.UpdateIncomeSourceRequest, userID string) (*domain.IncomeSource, error)

	// RemoveIncomeSource soft deletes an income source.
	RemoveIncomeSource(ctx context.Context, orgID string, sourceID string, userID string) error
}

// InspectionSvc defines operations for REAC inspection records
type InspectionSvc interface {
	// CreateInspection records a new REAC inspection.
	CreateInspection(ctx context.Context, orgID string, req dto.CreateInspectionRequest, userID string) (*domain.REACInspection, error)

	// ListInspections retrieves inspection history, newest first.
	ListInspections(ctx context.Context, orgID string, params dto.ListInspectionsParams) ([]domain.REACInspection, error)

	// ListUpcomingInspections retrieves inspections scheduled within the
	// given number of days from today.
	ListUpcomingInspections(ctx context.Context, orgID string, withinDays int) ([]domain.REACInspection, error)

	// UpdateInspection updates an existing inspection record.
	UpdateInspection(ctx context.Context, orgID string, inspectionID string, req dto.UpdateInspectionRequest, userID string) (*domain.REACInspection, error)
}

// UtilityAllowanceSvc defines operations for utility allowance schedules
type UtilityAllowanceSvc interface {
	// CreateUtilityAllowance records a new allowance schedule row. The total
	// is computed from the component amounts.
	CreateUtilityAllowance(ctx context.Context, orgID string, req dto.CreateUtilityAllowanceRequest, userID string) (*domain.UtilityAllowance, error)

	// ListUtilityAllowances retrieves allowance rows for a property.
	ListUtilityAllowances(ctx context.Context, orgID string, propertyID string) ([]domain.UtilityAllowance, error)

	// GetCurrentAllowance retrieves the allowance row in effect for a
	// property and bedroom count, chosen by latest effective date.
	GetCurrentAllowance(ctx context.Context, orgID string, propertyID string, bedroomCount int) (*domain.UtilityAllowance, error)

	// DeleteUtilityAllowance soft deletes an allowance row.
	DeleteUtilityAllowance(ctx context.Context, orgID string, allowanceID string, userID string) error
}

// HUDSvcFacade combines all HUD-related service interfaces
type HUDSvcFacade interface {
	HUDCalculatorSvc
	CertificationReaderSvc
	CertificationWriterSvc
	HouseholdSvc
	InspectionSvc
	UtilityAllowanceSvc
}
