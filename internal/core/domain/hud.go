package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CertificationType distinguishes move-in, annual, and interim recerts.
type CertificationType string

const (
	CertMoveIn  CertificationType = "MOVE_IN"
	CertAnnual  CertificationType = "ANNUAL"
	CertInterim CertificationType = "INTERIM"
)

// CertificationStatus is the review state of a certification.
type CertificationStatus string

const (
	CertPending  CertificationStatus = "pending"
	CertApproved CertificationStatus = "approved"
	CertRejected CertificationStatus = "rejected"
)

// TenantIncomeCertification is a HUD PRAC income certification (TIC) for one
// tenant household.
type TenantIncomeCertification struct {
	CertificationID   string              `json:"certificationID"` // Primary key (UUID)
	OrgID             string              `json:"orgID"`
	TenantID          string              `json:"tenantID"`
	PropertyID        string              `json:"propertyID"`
	UnitID            string              `json:"unitID"` // Nullable
	CertificationDate time.Time           `json:"certificationDate"`
	EffectiveDate     time.Time           `json:"effectiveDate"`
	CertType          CertificationType   `json:"certType"`
	HouseholdSize     int                 `json:"householdSize"`
	AnnualIncome      decimal.Decimal     `json:"annualIncome"`
	AdjustedIncome    decimal.Decimal     `json:"adjustedIncome"`
	TenantRentPortion decimal.Decimal     `json:"tenantRentPortion"`
	UtilityAllowance  decimal.Decimal     `json:"utilityAllowance"`
	SubsidyAmount     decimal.Decimal     `json:"subsidyAmount"`
	Status            CertificationStatus `json:"status"`
	HUD50059Submitted bool                `json:"hud50059Submitted"`
	HUD50059Date      *time.Time          `json:"hud50059Date,omitempty"`
	Lifecycle         Lifecycle           `json:"lifecycle"`
	AuditFields
}

// HouseholdMember is one person on the household roster of an income
// certification. Org scoping goes through the owning certification.
type HouseholdMember struct {
	MemberID         string          `json:"memberID"` // Primary key (UUID)
	CertificationID  string          `json:"certificationID"`
	FullName         string          `json:"fullName"`
	SSNLast4         string          `json:"ssnLast4"` // Nullable
	DateOfBirth      time.Time       `json:"dateOfBirth"`
	RelationshipType string          `json:"relationshipType"`
	IsStudent        bool            `json:"isStudent"`
	IsDisabled       bool            `json:"isDisabled"`
	AnnualIncome     decimal.Decimal `json:"annualIncome"`
	Lifecycle        Lifecycle       `json:"lifecycle"`
	AuditFields
}

// IncomeSource is one verified income stream belonging to a household member.
type IncomeSource struct {
	SourceID         string          `json:"sourceID"` // Primary key (UUID)
	MemberID         string          `json:"memberID"`
	IncomeType       string          `json:"incomeType"`
	EmployerName     string          `json:"employerName"` // Nullable
	MonthlyAmount    decimal.Decimal `json:"monthlyAmount"`
	AnnualAmount     decimal.Decimal `json:"annualAmount"`
	VerificationType string          `json:"verificationType"`
	VerificationDate time.Time       `json:"verificationDate"`
	Lifecycle        Lifecycle       `json:"lifecycle"`
	AuditFields
}

// REACInspection is a HUD Real Estate Assessment Center inspection record for
// a property.
type REACInspection struct {
	InspectionID         string     `json:"inspectionID"` // Primary key (UUID)
	OrgID                string     `json:"orgID"`
	PropertyID           string     `json:"propertyID"`
	InspectionDate       time.Time  `json:"inspectionDate"`
	InspectionType       string     `json:"inspectionType"`
	OverallScore         *int       `json:"overallScore,omitempty"`
	InspectionStatus     string     `json:"inspectionStatus"`
	DeficienciesCount    int        `json:"deficienciesCount"`
	CriticalDeficiencies int        `json:"criticalDeficiencies"`
	ReportURL            string     `json:"reportURL"` // Nullable
	NextInspectionDate   *time.Time `json:"nextInspectionDate,omitempty"`
	Lifecycle            Lifecycle  `json:"lifecycle"`
	AuditFields
}

// UtilityAllowance is the HUD-published allowance for a property and unit
// size, effective from a given date.
type UtilityAllowance struct {
	AllowanceID    string          `json:"allowanceID"` // Primary key (UUID)
	OrgID          string          `json:"orgID"`
	PropertyID     string          `json:"propertyID"`
	BedroomCount   int             `json:"bedroomCount"`
	Heating        decimal.Decimal `json:"heating"`
	Cooking        decimal.Decimal `json:"cooking"`
	Lighting       decimal.Decimal `json:"lighting"`
	WaterSewer     decimal.Decimal `json:"waterSewer"`
	Trash          decimal.Decimal `json:"trash"`
	TotalAllowance decimal.Decimal `json:"totalAllowance"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	Lifecycle      Lifecycle       `json:"lifecycle"`
	AuditFields
}
