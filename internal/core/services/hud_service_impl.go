package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/PropLedger/prop_ledger_app/internal/apperrors"
	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	portsrepo "github.com/PropLedger/prop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/PropLedger/prop_ledger_app/internal/core/ports/services"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
	"github.com/PropLedger/prop_ledger_app/internal/utils/accounting"
)

// hudServiceImpl implements the HUDSvcFacade interface
type hudServiceImpl struct {
	BaseService
	hudRepo portsrepo.HUDRepositoryFacade
}

// NewHUDServiceImpl creates a new HUD compliance service
func NewHUDServiceImpl(repo portsrepo.HUDRepositoryFacade) portssvc.HUDSvcFacade {
	return &hudServiceImpl{
		hudRepo: repo,
	}
}

// Ensure hudServiceImpl implements the HUDSvcFacade interface
var _ portssvc.HUDSvcFacade = (*hudServiceImpl)(nil)

// CalculateTenantRent applies the HUD PRAC rent formula to the request inputs.
func (s *hudServiceImpl) CalculateTenantRent(ctx context.Context, req dto.CalculateRentRequest) domain.RentCalculation {
	return accounting.CalculateTenantRent(req.AnnualIncome, req.UtilityAllowance, req.ContractRent)
}

func (s *hudServiceImpl) CreateCertification(ctx context.Context, orgID string, req dto.CreateCertificationRequest, userID string) (*domain.TenantIncomeCertification, error) {
	// Rent and subsidy figures come from the rent formula, not the caller.
	income := req.AdjustedIncome
	if income.IsZero() {
		income = req.AnnualIncome
	}
	calc := accounting.CalculateTenantRent(income, req.UtilityAllowance, req.ContractRent)

	now := time.Now()
	cert := domain.TenantIncomeCertification{
		CertificationID:   uuid.NewString(),
		OrgID:             orgID,
		TenantID:          req.TenantID,
		PropertyID:        req.PropertyID,
		CertificationDate: req.CertificationDate,
		EffectiveDate:     req.EffectiveDate,
		CertType:          req.CertType,
		HouseholdSize:     req.HouseholdSize,
		AnnualIncome:      req.AnnualIncome,
		AdjustedIncome:    income,
		TenantRentPortion: calc.TenantRent,
		UtilityAllowance:  req.UtilityAllowance,
		SubsidyAmount:     calc.SubsidyAmount,
		Status:            domain.CertPending,
		Lifecycle:         domain.ActiveLifecycle(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.UnitID != nil {
		cert.UnitID = *req.UnitID
	}

	if err := s.hudRepo.SaveCertification(ctx, cert); err != nil {
		s.LogError(ctx, err, "Failed to save certification",
			slog.String("certification_id", cert.CertificationID),
			slog.String("org_id", orgID))
		return nil, err
	}

	s.LogInfo(ctx, "Certification created successfully",
		slog.String("certification_id", cert.CertificationID),
		slog.String("tenant_id", cert.TenantID),
		slog.String("org_id", orgID))
	return &cert, nil
}

func (s *hudServiceImpl) GetCertificationByID(ctx context.Context, orgID string, certificationID string, userID string) (*domain.TenantIncomeCertification, error) {
	cert, err := s.hudRepo.FindCertificationByID(ctx, orgID, certificationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find certification by ID",
				slog.String("certification_id", certificationID))
		}
		return nil, err
	}
	return cert, nil
}

func (s *hudServiceImpl) ListCertifications(ctx context.Context, orgID string, params dto.ListCertificationsParams) ([]domain.TenantIncomeCertification, error) {
	filters := portsrepo.CertificationFilters{
		TenantID:   params.TenantID,
		PropertyID: params.PropertyID,
		Status:     params.Status,
	}
	certs, err := s.hudRepo.ListCertifications(ctx, orgID, filters, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list certifications",
			slog.String("org_id", orgID))
		return nil, fmt.Errorf("failed to list certifications for org %s: %w", orgID, err)
	}
	if certs == nil {
		return []domain.TenantIncomeCertification{}, nil
	}
	return certs, nil
}

// ListExpiringCertifications finds approved annual certifications whose
// one-year anniversary falls within the window.
func (s *hudServiceImpl) ListExpiringCertifications(ctx context.Context, orgID string, withinDays int) ([]domain.TenantIncomeCertification, error) {
	cutoff := time.Now().AddDate(0, 0, withinDays)
	certs, err := s.hudRepo.ListExpiringCertifications(ctx, orgID, cutoff)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expiring certifications",
			slog.String("org_id", orgID),
			slog.Int("within_days", withinDays))
		return nil, err
	}
	if certs == nil {
		return []domain.TenantIncomeCertification{}, nil
	}
	return certs, nil
}

func (s *hudServiceImpl) UpdateCertification(ctx context.Context, orgID string, certificationID string, req dto.UpdateCertificationRequest, userID string) (*domain.TenantIncomeCertification, error) {
	cert, err := s.GetCertificationByID(ctx, orgID, certificationID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	recalc := false
	if req.HouseholdSize != nil {
		cert.HouseholdSize = *req.HouseholdSize
		updated = true
	}
	if req.AnnualIncome != nil {
		cert.AnnualIncome = *req.AnnualIncome
		updated = true
		recalc = true
	}
	if req.AdjustedIncome != nil {
		cert.AdjustedIncome = *req.AdjustedIncome
		updated = true
		recalc = true
	}
	if req.Status != nil {
		cert.Status = *req.Status
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for certification update",
			slog.String("certification_id", certificationID))
		return cert, nil
	}

	// Income changed: re-derive the rent split. The contract rent is the
	// prior tenant portion plus subsidy; the split moves, the total doesn't.
	if recalc {
		contractRent := cert.TenantRentPortion.Add(cert.SubsidyAmount)
		income := cert.AdjustedIncome
		if income.IsZero() {
			income = cert.AnnualIncome
		}
		calc := accounting.CalculateTenantRent(income, cert.UtilityAllowance, contractRent)
		cert.TenantRentPortion = calc.TenantRent
		cert.SubsidyAmount = calc.SubsidyAmount
	}

	now := time.Now()
	cert.LastUpdatedAt = now
	cert.LastUpdatedBy = userID

	if err := s.hudRepo.UpdateCertification(ctx, *cert); err != nil {
		s.LogError(ctx, err, "Failed to update certification",
			slog.String("certification_id", certificationID))
		return nil, err
	}

	s.LogInfo(ctx, "Certification updated successfully",
		slog.String("certification_id", certificationID),
		slog.String("org_id", orgID))
	return cert, nil
}

// SubmitHUD50059 records a HUD-50059 submission. Only approved
// certifications can be submitted, and only once.
func (s *hudServiceImpl) SubmitHUD50059(ctx context.Context, orgID string, certificationID string, userID string) (*domain.TenantIncomeCertification, error) {
	cert, err := s.GetCertificationByID(ctx, orgID, certificationID, userID)
	if err != nil {
		return nil, err
	}

	if cert.Status != domain.CertApproved {
		return nil, fmt.Errorf("certification must be approved before HUD-50059 submission: %w", apperrors.ErrValidation)
	}
	if cert.HUD50059Submitted {
		return nil, fmt.Errorf("HUD-50059 already submitted for certification %s: %w", certificationID, apperrors.ErrValidation)
	}

	now := time.Now()
	if err := s.hudRepo.MarkHUD50059Submitted(ctx, orgID, certificationID, now, userID); err != nil {
		s.LogError(ctx, err, "Failed to mark HUD-50059 submitted",
			slog.String("certification_id", certificationID))
		return nil, err
	}

	cert.HUD50059Submitted = true
	cert.HUD50059Date = &now
	cert.LastUpdatedAt = now
	cert.LastUpdatedBy = userID

	s.LogInfo(ctx, "HUD-50059 submission recorded",
		slog.String("certification_id", certificationID),
		slog.String("org_id", orgID))
	return cert, nil
}

func (s *hudServiceImpl) DeleteCertification(ctx context.Context, orgID string, certificationID string, userID string) error {
	_, err := s.GetCertificationByID(ctx, orgID, certificationID, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.hudRepo.DeleteCertification(ctx, orgID, certificationID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to delete certification",
			slog.String("certification_id", certificationID))
		return err
	}

	s.LogInfo(ctx, "Certification deleted successfully",
		slog.String("certification_id", certificationID),
		slog.String("org_id", orgID))
	return nil
}

func (s *hudServiceImpl) CreateUtilityAllowance(ctx context.Context, orgID string, req dto.CreateUtilityAllowanceRequest, userID string) (*domain.UtilityAllowance, error) {
	total := req.Heating.Add(req.Cooking).Add(req.Lighting).Add(req.WaterSewer).Add(req.Trash)

	now := time.Now()
	allowance := domain.UtilityAllowance{
		AllowanceID:    uuid.NewString(),
		OrgID:          orgID,
		PropertyID:     req.PropertyID,
		BedroomCount:   req.BedroomCount,
		Heating:        req.Heating,
		Cooking:        req.Cooking,
		Lighting:       req.Lighting,
		WaterSewer:     req.WaterSewer,
		Trash:          req.Trash,
		TotalAllowance: total,
		EffectiveDate:  req.EffectiveDate,
		Lifecycle:      domain.ActiveLifecycle(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.hudRepo.SaveAllowance(ctx, allowance); err != nil {
		s.LogError(ctx, err, "Failed to save utility allowance",
			slog.String("allowance_id", allowance.AllowanceID),
			slog.String("org_id", orgID))
		return nil, err
	}

	s.LogInfo(ctx, "Utility allowance created successfully",
		slog.String("allowance_id", allowance.AllowanceID),
		slog.String("property_id", allowance.PropertyID),
		slog.String("org_id", orgID))
	return &allowance, nil
}

func (s *hudServiceImpl) ListUtilityAllowances(ctx context.Context, orgID string, propertyID string) ([]domain.UtilityAllowance, error) {
	allowances, err := s.hudRepo.ListAllowances(ctx, orgID, propertyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list utility allowances",
			slog.String("org_id", orgID),
			slog.String("property_id", propertyID))
		return nil, err
	}
	if allowances == nil {
		return []domain.UtilityAllowance{}, nil
	}
	return allowances, nil
}

func (s *hudServiceImpl) GetCurrentAllowance(ctx context.Context, orgID string, propertyID string, bedroomCount int) (*domain.UtilityAllowance, error) {
	allowance, err := s.hudRepo.FindLatestAllowance(ctx, orgID, propertyID, bedroomCount)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find current utility allowance",
				slog.String("property_id", propertyID),
				slog.Int("bedroom_count", bedroomCount))
		}
		return nil, err
	}
	return allowance, nil
}

func (s *hudServiceImpl) DeleteUtilityAllowance(ctx context.Context, orgID string, allowanceID string, userID string) error {
	now := time.Now()
	if err := s.hudRepo.DeleteAllowance(ctx, orgID, allowanceID, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete utility allowance",
				slog.String("allowance_id", allowanceID))
		}
		return err
	}

	s.LogInfo(ctx, "Utility allowance deleted successfully",
		slog.String("allowance_id", allowanceID),
		slog.String("org_id", orgID))
	return nil
}
