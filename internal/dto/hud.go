package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// CalculateRentRequest defines the inputs to the HUD tenant rent formula.
// HouseholdSize is accepted alongside the monetary inputs but does not enter
// the formula itself.
type CalculateRentRequest struct {
	AnnualIncome     decimal.Decimal `json:"annualIncome" binding:"required"`
	HouseholdSize    int             `json:"householdSize" binding:"omitempty,min=1"`
	UtilityAllowance decimal.Decimal `json:"utilityAllowance"`
	ContractRent     decimal.Decimal `json:"contractRent" binding:"required"`
}

// RentCalculationResponse defines the output of the HUD tenant rent formula.
type RentCalculationResponse struct {
	TenantRent        decimal.Decimal `json:"tenantRent"`
	SubsidyAmount     decimal.Decimal `json:"subsidyAmount"`
	TotalContractRent decimal.Decimal `json:"totalContractRent"`
	UtilityAllowance  decimal.Decimal `json:"utilityAllowance"`
	MonthlyIncome     decimal.Decimal `json:"monthlyIncome"`
	RentToIncomeRatio decimal.Decimal `json:"rentToIncomeRatio"`
}

// ToRentCalculationResponse converts a domain.RentCalculation to its DTO.
func ToRentCalculationResponse(calc domain.RentCalculation) RentCalculationResponse {
	return RentCalculationResponse{
		TenantRent:        calc.TenantRent,
		SubsidyAmount:     calc.SubsidyAmount,
		TotalContractRent: calc.TotalContractRent,
		UtilityAllowance:  calc.UtilityAllowance,
		MonthlyIncome:     calc.MonthlyIncome,
		RentToIncomeRatio: calc.RentToIncomeRatio,
	}
}

// CreateCertificationRequest defines the data needed to create a tenant
// income certification. Rent and subsidy figures are computed server side
// from the income, allowance, and contract rent supplied here.
type CreateCertificationRequest struct {
	TenantID          string                   `json:"tenantID" binding:"required"`
	PropertyID        string                   `json:"propertyID" binding:"required"`
	UnitID            *string                  `json:"unitID"`
	CertificationDate time.Time                `json:"certificationDate" binding:"required" time_format:"2006-01-02"`
	EffectiveDate     time.Time                `json:"effectiveDate" binding:"required" time_format:"2006-01-02"`
	CertType          domain.CertificationType `json:"certType" binding:"required,oneof=MOVE_IN ANNUAL INTERIM"`
	HouseholdSize     int                      `json:"householdSize" binding:"required,min=1"`
	AnnualIncome      decimal.Decimal          `json:"annualIncome" binding:"required"`
	AdjustedIncome    decimal.Decimal          `json:"adjustedIncome"`
	UtilityAllowance  decimal.Decimal          `json:"utilityAllowance"`
	ContractRent      decimal.Decimal          `json:"contractRent" binding:"required"`
}

// UpdateCertificationRequest defines the data allowed for updating a certification.
type UpdateCertificationRequest struct {
	HouseholdSize  *int                        `json:"householdSize" binding:"omitempty,min=1"`
	AnnualIncome   *decimal.Decimal            `json:"annualIncome"`
	AdjustedIncome *decimal.Decimal            `json:"adjustedIncome"`
	Status         *domain.CertificationStatus `json:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// CertificationResponse defines the data returned for a certification.
type CertificationResponse struct {
	CertificationID   string          `json:"certificationID"`
	TenantID          string          `json:"tenantID"`
	PropertyID        string          `json:"propertyID"`
	UnitID            string          `json:"unitID"`
	CertificationDate time.Time       `json:"certificationDate"`
	EffectiveDate     time.Time       `json:"effectiveDate"`
	CertType          string          `json:"certType"`
	HouseholdSize     int             `json:"householdSize"`
	AnnualIncome      decimal.Decimal `json:"annualIncome"`
	AdjustedIncome    decimal.Decimal `json:"adjustedIncome"`
	TenantRentPortion decimal.Decimal `json:"tenantRentPortion"`
	UtilityAllowance  decimal.Decimal `json:"utilityAllowance"`
	SubsidyAmount     decimal.Decimal `json:"subsidyAmount"`
	Status            string          `json:"status"`
	HUD50059Submitted bool            `json:"hud50059Submitted"`
	HUD50059Date      *time.Time      `json:"hud50059Date,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy     string          `json:"lastUpdatedBy"`
}

// ToCertificationResponse converts a domain.TenantIncomeCertification to its DTO.
func ToCertificationResponse(cert *domain.TenantIncomeCertification) CertificationResponse {
	return CertificationResponse{
		CertificationID:   cert.CertificationID,
		TenantID:          cert.TenantID,
		PropertyID:        cert.PropertyID,
		UnitID:            cert.UnitID,
		CertificationDate: cert.CertificationDate,
		EffectiveDate:     cert.EffectiveDate,
		CertType:          string(cert.CertType),
		HouseholdSize:     cert.HouseholdSize,
		AnnualIncome:      cert.AnnualIncome,
		AdjustedIncome:    cert.AdjustedIncome,
		TenantRentPortion: cert.TenantRentPortion,
		UtilityAllowance:  cert.UtilityAllowance,
		SubsidyAmount:     cert.SubsidyAmount,
		Status:            string(cert.Status),
		HUD50059Submitted: cert.HUD50059Submitted,
		HUD50059Date:      cert.HUD50059Date,
		CreatedAt:         cert.CreatedAt,
		CreatedBy:         cert.CreatedBy,
		LastUpdatedAt:     cert.LastUpdatedAt,
		LastUpdatedBy:     cert.LastUpdatedBy,
	}
}

// ToListCertificationResponse converts a slice of certifications to DTOs.
func ToListCertificationResponse(certs []domain.TenantIncomeCertification) []CertificationResponse {
	res := make([]CertificationResponse, len(certs))
	for i, c := range certs {
		res[i] = ToCertificationResponse(&c)
	}
	return res
}

// ListCertificationsParams defines query parameters for listing certifications.
type ListCertificationsParams struct {
	TenantID   *string `form:"tenantID"`
	PropertyID *string `form:"propertyID"`
	Status     *string `form:"status"`
	Limit      int     `form:"limit,default=50"`
	Offset     int     `form:"offset,default=0"`
}

// ExpiringCertificationsParams defines query parameters for the expiring
// certifications lookup. Annual certifications are due one year after their
// effective date.
type ExpiringCertificationsParams struct {
	WithinDays int `form:"withinDays,default=90" binding:"min=1,max=365"`
}

// CreateHouseholdMemberRequest defines the data needed to add a member to a
// certification's household roster.
type CreateHouseholdMemberRequest struct {
	FullName         string          `json:"fullName" binding:"required"`
	SSNLast4         string          `json:"ssnLast4" binding:"omitempty,len=4"`
	DateOfBirth      time.Time       `json:"dateOfBirth" binding:"required" time_format:"2006-01-02"`
	RelationshipType string          `json:"relationshipType" binding:"required"`
	IsStudent        bool            `json:"isStudent"`
	IsDisabled       bool            `json:"isDisabled"`
	AnnualIncome     decimal.Decimal `json:"annualIncome"`
}

// UpdateHouseholdMemberRequest defines the data allowed for updating a
// household member.
type UpdateHouseholdMemberRequest struct {
	FullName         *string          `json:"fullName"`
	SSNLast4         *string          `json:"ssnLast4" binding:"omitempty,len=4"`
	RelationshipType *string          `json:"relationshipType"`
	IsStudent        *bool            `json:"isStudent"`
	IsDisabled       *bool            `json:"isDisabled"`
	AnnualIncome     *decimal.Decimal `json:"annualIncome"`
}

// HouseholdMemberResponse defines the data returned for a household member.
type HouseholdMemberResponse struct {
	MemberID         string          `json:"memberID"`
	CertificationID  string          `json:"certificationID"`
	FullName         string          `json:"fullName"`
	SSNLast4         string          `json:"ssnLast4"`
	DateOfBirth      time.Time       `json:"dateOfBirth"`
	RelationshipType string          `json:"relationshipType"`
	IsStudent        bool            `json:"isStudent"`
	IsDisabled       bool            `json:"isDisabled"`
	AnnualIncome     decimal.Decimal `json:"annualIncome"`
	CreatedAt        time.Time       `json:"createdAt"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// ToHouseholdMemberResponse converts a domain.HouseholdMember to its DTO.
func ToHouseholdMemberResponse(m *domain.HouseholdMember) HouseholdMemberResponse {
	return HouseholdMemberResponse{
		MemberID:         m.MemberID,
		CertificationID:  m.CertificationID,
		FullName:         m.FullName,
		SSNLast4:         m.SSNLast4,
		DateOfBirth:      m.DateOfBirth,
		RelationshipType: m.RelationshipType,
		IsStudent:        m.IsStudent,
		IsDisabled:       m.IsDisabled,
		AnnualIncome:     m.AnnualIncome,
		CreatedAt:        m.CreatedAt,
		LastUpdatedAt:    m.LastUpdatedAt,
	}
}

// ToListHouseholdMemberResponse converts a slice of members to DTOs.
func ToListHouseholdMemberResponse(members []domain.HouseholdMember) []HouseholdMemberResponse {
	res := make([]HouseholdMemberResponse, len(members))
	for i, m := range members {
		res[i] = ToHouseholdMemberResponse(&m)
	}
	return res
}

// CreateIncomeSourceRequest defines the data needed to record a verified
// income stream for a household member.
type CreateIncomeSourceRequest struct {
	IncomeType       string          `json:"incomeType" binding:"required"`
	EmployerName     string          `json:"employerName"`
	MonthlyAmount    decimal.Decimal `json:"monthlyAmount" binding:"required"`
	AnnualAmount     decimal.Decimal `json:"annualAmount" binding:"required"`
	VerificationType string          `json:"verificationType" binding:"required"`
	VerificationDate time.Time       `json:"verificationDate" binding:"required" time_format:"2006-01-02"`
}

// UpdateIncomeSourceRequest defines the data allowed for updating an income source.
type UpdateIncomeSourceRequest struct {
	IncomeType       *string          `json:"incomeType"`
	EmployerName     *string          `json:"employerName"`
	MonthlyAmount    *decimal.Decimal `json:"monthlyAmount"`
	AnnualAmount     *decimal.Decimal `json:"annualAmount"`
	VerificationType *string          `json:"verificationType"`
}

// IncomeSourceResponse defines the data returned for an income source.
type IncomeSourceResponse struct {
	SourceID         string          `json:"sourceID"`
	MemberID         string          `json:"memberID"`
	IncomeType       string          `json:"incomeType"`
	EmployerName     string          `json:"employerName"`
	MonthlyAmount    decimal.Decimal `json:"monthlyAmount"`
	AnnualAmount     decimal.Decimal `json:"annualAmount"`
	VerificationType string          `json:"verificationType"`
	VerificationDate time.Time       `json:"verificationDate"`
	CreatedAt        time.Time       `json:"createdAt"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// ToIncomeSourceResponse converts a domain.IncomeSource to its DTO.
func ToIncomeSourceResponse(s *domain.IncomeSource) IncomeSourceResponse {
	return IncomeSourceResponse{
		SourceID:         s.SourceID,
		MemberID:         s.MemberID,
		IncomeType:       s.IncomeType,
		EmployerName:     s.EmployerName,
		MonthlyAmount:    s.MonthlyAmount,
		AnnualAmount:     s.AnnualAmount,
		VerificationType: s.VerificationType,
		VerificationDate: s.VerificationDate,
		CreatedAt:        s.CreatedAt,
		LastUpdatedAt:    s.LastUpdatedAt,
	}
}

// ToListIncomeSourceResponse converts a slice of income sources to DTOs.
func ToListIncomeSourceResponse(sources []domain.IncomeSource) []IncomeSourceResponse {
	res := make([]IncomeSourceResponse, len(sources))
	for i, s := range sources {
		res[i] = ToIncomeSourceResponse(&s)
	}
	return res
}

// CreateInspectionRequest defines the data needed to record a REAC inspection.
type CreateInspectionRequest struct {
	PropertyID           string     `json:"propertyID" binding:"required"`
	InspectionDate       time.Time  `json:"inspectionDate" binding:"required" time_format:"2006-01-02"`
	InspectionType       string     `json:"inspectionType" binding:"required"`
	OverallScore         *int       `json:"overallScore" binding:"omitempty,min=0,max=100"`
	InspectionStatus     string     `json:"inspectionStatus" binding:"required"`
	DeficienciesCount    int        `json:"deficienciesCount" binding:"min=0"`
	CriticalDeficiencies int        `json:"criticalDeficiencies" binding:"min=0"`
	ReportURL            string     `json:"reportURL"`
	NextInspectionDate   *time.Time `json:"nextInspectionDate" time_format:"2006-01-02"`
}

// UpdateInspectionRequest defines the data allowed for updating an inspection.
type UpdateInspectionRequest struct {
	OverallScore         *int       `json:"overallScore" binding:"omitempty,min=0,max=100"`
	InspectionStatus     *string    `json:"inspectionStatus"`
	DeficienciesCount    *int       `json:"deficienciesCount" binding:"omitempty,min=0"`
	CriticalDeficiencies *int       `json:"criticalDeficiencies" binding:"omitempty,min=0"`
	ReportURL            *string    `json:"reportURL"`
	NextInspectionDate   *time.Time `json:"nextInspectionDate" time_format:"2006-01-02"`
}

// InspectionResponse defines the data returned for a REAC inspection.
type InspectionResponse struct {
	InspectionID         string     `json:"inspectionID"`
	PropertyID           string     `json:"propertyID"`
	InspectionDate       time.Time  `json:"inspectionDate"`
	InspectionType       string     `json:"inspectionType"`
	OverallScore         *int       `json:"overallScore,omitempty"`
	InspectionStatus     string     `json:"inspectionStatus"`
	DeficienciesCount    int        `json:"deficienciesCount"`
	CriticalDeficiencies int        `json:"criticalDeficiencies"`
	ReportURL            string     `json:"reportURL"`
	NextInspectionDate   *time.Time `json:"nextInspectionDate,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	LastUpdatedAt        time.Time  `json:"lastUpdatedAt"`
}

// ToInspectionResponse converts a domain.REACInspection to its DTO.
func ToInspectionResponse(i *domain.REACInspection) InspectionResponse {
	return InspectionResponse{
		InspectionID:         i.InspectionID,
		PropertyID:           i.PropertyID,
		InspectionDate:       i.InspectionDate,
		InspectionType:       i.InspectionType,
		OverallScore:         i.OverallScore,
		InspectionStatus:     i.InspectionStatus,
		DeficienciesCount:    i.DeficienciesCount,
		CriticalDeficiencies: i.CriticalDeficiencies,
		ReportURL:            i.ReportURL,
		NextInspectionDate:   i.NextInspectionDate,
		CreatedAt:            i.CreatedAt,
		LastUpdatedAt:        i.LastUpdatedAt,
	}
}

// ToListInspectionResponse converts a slice of inspections to DTOs.
func ToListInspectionResponse(inspections []domain.REACInspection) []InspectionResponse {
	res := make([]InspectionResponse, len(inspections))
	for i := range inspections {
		res[i] = ToInspectionResponse(&inspections[i])
	}
	return res
}

// ListInspectionsParams defines query parameters for listing inspections.
type ListInspectionsParams struct {
	PropertyID *string `form:"propertyID"`
}

// UpcomingInspectionsParams defines query parameters for the upcoming
// inspections lookup.
type UpcomingInspectionsParams struct {
	WithinDays int `form:"withinDays,default=60" binding:"min=1,max=365"`
}

// CreateUtilityAllowanceRequest defines the data needed to record a HUD
// utility allowance schedule row.
type CreateUtilityAllowanceRequest struct {
	PropertyID    string          `json:"propertyID" binding:"required"`
	BedroomCount  int             `json:"bedroomCount" binding:"min=0,max=10"`
	Heating       decimal.Decimal `json:"heating"`
	Cooking       decimal.Decimal `json:"cooking"`
	Lighting      decimal.Decimal `json:"lighting"`
	WaterSewer    decimal.Decimal `json:"waterSewer"`
	Trash         decimal.Decimal `json:"trash"`
	EffectiveDate time.Time       `json:"effectiveDate" binding:"required" time_format:"2006-01-02"`
}

// CurrentAllowanceParams defines query parameters for the current allowance
// lookup.
type CurrentAllowanceParams struct {
	PropertyID   string `form:"propertyID" binding:"required"`
	BedroomCount int    `form:"bedroomCount" binding:"min=0,max=10"`
}

// UtilityAllowanceResponse defines the data returned for a utility allowance row.
type UtilityAllowanceResponse struct {
	AllowanceID    string          `json:"allowanceID"`
	PropertyID     string          `json:"propertyID"`
	BedroomCount   int             `json:"bedroomCount"`
	Heating        decimal.Decimal `json:"heating"`
	Cooking        decimal.Decimal `json:"cooking"`
	Lighting       decimal.Decimal `json:"lighting"`
	WaterSewer     decimal.Decimal `json:"waterSewer"`
	Trash          decimal.Decimal `json:"trash"`
	TotalAllowance decimal.Decimal `json:"totalAllowance"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ToUtilityAllowanceResponse converts a domain.UtilityAllowance to its DTO.
func ToUtilityAllowanceResponse(ua *domain.UtilityAllowance) UtilityAllowanceResponse {
	return UtilityAllowanceResponse{
		AllowanceID:    ua.AllowanceID,
		PropertyID:     ua.PropertyID,
		BedroomCount:   ua.BedroomCount,
		Heating:        ua.Heating,
		Cooking:        ua.Cooking,
		Lighting:       ua.Lighting,
		WaterSewer:     ua.WaterSewer,
		Trash:          ua.Trash,
		TotalAllowance: ua.TotalAllowance,
		EffectiveDate:  ua.EffectiveDate,
		CreatedAt:      ua.CreatedAt,
		CreatedBy:      ua.CreatedBy,
	}
}

// ToListUtilityAllowanceResponse converts a slice of allowances to DTOs.
func ToListUtilityAllowanceResponse(allowances []domain.UtilityAllowance) []UtilityAllowanceResponse {
	res := make([]UtilityAllowanceResponse, len(allowances))
	for i, ua := range allowances {
		res[i] = ToUtilityAllowanceResponse(&ua)
	}
	return res
}
