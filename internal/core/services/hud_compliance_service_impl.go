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
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

// Household roster and REAC inspection operations of the HUD compliance
// service. Rosters hang off certifications, income sources hang off roster
// members; org scope is checked through those parents.

func (s *hudServiceImpl) AddHouseholdMember(ctx context.Context, orgID string, certificationID string, req dto.CreateHouseholdMemberRequest, userID string) (*domain.HouseholdMember, error) {
	// The owning certification must exist in the org.
	if _, err := s.hudRepo.FindCertificationByID(ctx, orgID, certificationID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("certification %s not found: %w", certificationID, err)
		}
		s.LogError(ctx, err, "Failed to find certification for household member",
			slog.String("certification_id", certificationID))
		return nil, err
	}

	now := time.Now()
	member := domain.HouseholdMember{
		MemberID:         uuid.NewString(),
		CertificationID:  certificationID,
		FullName:         req.FullName,
		SSNLast4:         req.SSNLast4,
		DateOfBirth:      req.DateOfBirth,
		RelationshipType: req.RelationshipType,
		IsStudent:        req.IsStudent,
		IsDisabled:       req.IsDisabled,
		AnnualIncome:     req.AnnualIncome,
		Lifecycle:        domain.ActiveLifecycle(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.hudRepo.SaveHouseholdMember(ctx, member); err != nil {
		s.LogError(ctx, err, "Failed to save household member",
			slog.String("member_id", member.MemberID),
			slog.String("certification_id", certificationID))
		return nil, err
	}

	s.LogInfo(ctx, "Household member added successfully",
		slog.String("member_id", member.MemberID),
		slog.String("certification_id", certificationID),
		slog.String("org_id", orgID))
	return &member, nil
}

func (s *hudServiceImpl) ListHouseholdMembers(ctx context.Context, orgID string, certificationID string) ([]domain.HouseholdMember, error) {
	if _, err := s.hudRepo.FindCertificationByID(ctx, orgID, certificationID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find certification for roster listing",
				slog.String("certification_id", certificationID))
		}
		return nil, err
	}

	members, err := s.hudRepo.ListHouseholdMembers(ctx, orgID, certificationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list household members",
			slog.String("certification_id", certificationID))
		return nil, err
	}
	if members == nil {
		return []domain.HouseholdMember{}, nil
	}
	return members, nil
}

func (s *hudServiceImpl) UpdateHouseholdMember(ctx context.Context, orgID string, memberID string, req dto.UpdateHouseholdMemberRequest, userID string) (*domain.HouseholdMember, error) {
	member, err := s.hudRepo.FindHouseholdMemberByID(ctx, orgID, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find household member by ID",
				slog.String("member_id", memberID))
		}
		return nil, err
	}

	updated := false
	if req.FullName != nil {
		member.FullName = *req.FullName
		updated = true
	}
	if req.SSNLast4 != nil {
		member.SSNLast4 = *req.SSNLast4
		updated = true
	}
	if req.RelationshipType != nil {
		member.RelationshipType = *req.RelationshipType
		updated = true
	}
	if req.IsStudent != nil {
		member.IsStudent = *req.IsStudent
		updated = true
	}
	if req.IsDisabled != nil {
		member.IsDisabled = *req.IsDisabled
		updated = true
	}
	if req.AnnualIncome != nil {
		member.AnnualIncome = *req.AnnualIncome
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for household member update",
			slog.String("member_id", memberID))
		return member, nil
	}

	now := time.Now()
	member.LastUpdatedAt = now
	member.LastUpdatedBy = userID

	if err := s.hudRepo.UpdateHouseholdMember(ctx, orgID, *member); err != nil {
		s.LogError(ctx, err, "Failed to update household member",
			slog.String("member_id", memberID))
		return nil, err
	}

	s.LogInfo(ctx, "Household member updated successfully",
		slog.String("member_id", memberID),
		slog.String("org_id", orgID))
	return member, nil
}

func (s *hudServiceImpl) RemoveHouseholdMember(ctx context.Context, orgID string, memberID string, userID string) error {
	now := time.Now()
	if err := s.hudRepo.DeleteHouseholdMember(ctx, orgID, memberID, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete household member",
				slog.String("member_id", memberID))
		}
		return err
	}

	s.LogInfo(ctx, "Household member removed successfully",
		slog.String("member_id", memberID),
		slog.String("org_id", orgID))
	return nil
}

func (s *hudServiceImpl) AddIncomeSource(ctx context.Context, orgID string, memberID string, req dto.CreateIncomeSourceRequest, userID string) (*domain.IncomeSource, error) {
	// The owning member must belong to a certification in the org.
	if _, err := s.hudRepo.FindHouseholdMemberByID(ctx, orgID, memberID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("household member %s not found: %w", memberID, err)
		}
		s.LogError(ctx, err, "Failed to find household member for income source",
			slog.String("member_id", memberID))
		return nil, err
	}

	now := time.Now()
	source := domain.IncomeSource{
		SourceID:         uuid.NewString(),
		MemberID:         memberID,
		IncomeType:       req.IncomeType,
		EmployerName:     req.EmployerName,
		MonthlyAmount:    req.MonthlyAmount,
		AnnualAmount:     req.AnnualAmount,
		VerificationType: req.VerificationType,
		VerificationDate: req.VerificationDate,
		Lifecycle:        domain.ActiveLifecycle(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.hudRepo.SaveIncomeSource(ctx, source); err != nil {
		s.LogError(ctx, err, "Failed to save income source",
			slog.String("source_id", source.SourceID),
			slog.String("member_id", memberID))
		return nil, err
	}

	s.LogInfo(ctx, "Income source added successfully",
		slog.String("source_id", source.SourceID),
		slog.String("member_id", memberID),
		slog.String("org_id", orgID))
	return &source, nil
}

func (s *hudServiceImpl) ListIncomeSources(ctx context.Context, orgID string, memberID string) ([]domain.IncomeSource, error) {
	if _, err := s.hudRepo.FindHouseholdMemberByID(ctx, orgID, memberID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find household member for income listing",
				slog.String("member_id", memberID))
		}
		return nil, err
	}

	sources, err := s.hudRepo.ListIncomeSources(ctx, orgID, memberID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list income sources",
			slog.String("member_id", memberID))
		return nil, err
	}
	if sources == nil {
		return []domain.IncomeSource{}, nil
	}
	return sources, nil
}

func (s *hudServiceImpl) UpdateIncomeSource(ctx context.Context, orgID string, sourceID string, req dto.UpdateIncomeSourceRequest, userID string) (*domain.IncomeSource, error) {
	source, err := s.hudRepo.FindIncomeSourceByID(ctx, orgID, sourceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find income source by ID",
				slog.String("source_id", sourceID))
		}
		return nil, err
	}

	updated := false
	if req.IncomeType != nil {
		source.IncomeType = *req.IncomeType
		updated = true
	}
	if req.EmployerName != nil {
		source.EmployerName = *req.EmployerName
		updated = true
	}
	if req.MonthlyAmount != nil {
		source.MonthlyAmount = *req.MonthlyAmount
		updated = true
	}
	if req.AnnualAmount != nil {
		source.AnnualAmount = *req.AnnualAmount
		updated = true
	}
	if req.VerificationType != nil {
		source.VerificationType = *req.VerificationType
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for income source update",
			slog.String("source_id", sourceID))
		return source, nil
	}

	now := time.Now()
	source.LastUpdatedAt = now
	source.LastUpdatedBy = userID

	if err := s.hudRepo.UpdateIncomeSource(ctx, orgID, *source); err != nil {
		s.LogError(ctx, err, "Failed to update income source",
			slog.String("source_id", sourceID))
		return nil, err
	}

	s.LogInfo(ctx, "Income source updated successfully",
		slog.String("source_id", sourceID),
		slog.String("org_id", orgID))
	return source, nil
}

func (s *hudServiceImpl) RemoveIncomeSource(ctx context.Context, orgID string, sourceID string, userID string) error {
	now := time.Now()
	if err := s.hudRepo.DeleteIncomeSource(ctx, orgID, sourceID, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete income source",
				slog.String("source_id", sourceID))
		}
		return err
	}

	s.LogInfo(ctx, "Income source removed successfully",
		slog.String("source_id", sourceID),
		slog.String("org_id", orgID))
	return nil
}

func (s *hudServiceImpl) CreateInspection(ctx context.Context, orgID string, req dto.CreateInspectionRequest, userID string) (*domain.REACInspection, error) {
	now := time.Now()
	inspection := domain.REACInspection{
		InspectionID:         uuid.NewString(),
		OrgID:                orgID,
		PropertyID:           req.PropertyID,
		InspectionDate:       req.InspectionDate,
		InspectionType:       req.InspectionType,
		OverallScore:         req.OverallScore,
		InspectionStatus:     req.InspectionStatus,
		DeficienciesCount:    req.DeficienciesCount,
		CriticalDeficiencies: req.CriticalDeficiencies,
		ReportURL:            req.ReportURL,
		NextInspectionDate:   req.NextInspectionDate,
		Lifecycle:            domain.ActiveLifecycle(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.hudRepo.SaveInspection(ctx, inspection); err != nil {
		s.LogError(ctx, err, "Failed to save inspection",
			slog.String("inspection_id", inspection.InspectionID),
			slog.String("org_id", orgID))
		return nil, err
	}

	s.LogInfo(ctx, "Inspection recorded successfully",
		slog.String("inspection_id", inspection.InspectionID),
		slog.String("property_id", inspection.PropertyID),
		slog.String("org_id", orgID))
	return &inspection, nil
}

func (s *hudServiceImpl) ListInspections(ctx context.Context, orgID string, params dto.ListInspectionsParams) ([]domain.REACInspection, error) {
	inspections, err := s.hudRepo.ListInspections(ctx, orgID, params.PropertyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list inspections",
			slog.String("org_id", orgID))
		return nil, err
	}
	if inspections == nil {
		return []domain.REACInspection{}, nil
	}
	return inspections, nil
}

// ListUpcomingInspections finds inspections whose next scheduled date falls
// between today and today plus the window.
func (s *hudServiceImpl) ListUpcomingInspections(ctx context.Context, orgID string, withinDays int) ([]domain.REACInspection, error) {
	from := time.Now()
	cutoff := from.AddDate(0, 0, withinDays)
	inspections, err := s.hudRepo.ListUpcomingInspections(ctx, orgID, from, cutoff)
	if err != nil {
		s.LogError(ctx, err, "Failed to list upcoming inspections",
			slog.String("org_id", orgID),
			slog.Int("within_days", withinDays))
		return nil, err
	}
	if inspections == nil {
		return []domain.REACInspection{}, nil
	}
	return inspections, nil
}

func (s *hudServiceImpl) UpdateInspection(ctx context.Context, orgID string, inspectionID string, req dto.UpdateInspectionRequest, userID string) (*domain.REACInspection, error) {
	inspection, err := s.hudRepo.FindInspectionByID(ctx, orgID, inspectionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find inspection by ID",
				slog.String("inspection_id", inspectionID))
		}
		return nil, err
	}

	updated := false
	if req.OverallScore != nil {
		inspection.OverallScore = req.OverallScore
		updated = true
	}
	if req.InspectionStatus != nil {
		inspection.InspectionStatus = *req.InspectionStatus
		updated = true
	}
	if req.DeficienciesCount != nil {
		inspection.DeficienciesCount = *req.DeficienciesCount
		updated = true
	}
	if req.CriticalDeficiencies != nil {
		inspection.CriticalDeficiencies = *req.CriticalDeficiencies
		updated = true
	}
	if req.ReportURL != nil {
		inspection.ReportURL = *req.ReportURL
		updated = true
	}
	if req.NextInspectionDate != nil {
		inspection.NextInspectionDate = req.NextInspectionDate
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for inspection update",
			slog.String("inspection_id", inspectionID))
		return inspection, nil
	}

	now := time.Now()
	inspection.LastUpdatedAt = now
	inspection.LastUpdatedBy = userID

	if err := s.hudRepo.UpdateInspection(ctx, *inspection); err != nil {
		s.LogError(ctx, err, "Failed to update inspection",
			slog.String("inspection_id", inspectionID))
		return nil, err
	}

	s.LogInfo(ctx, "Inspection updated successfully",
		slog.String("inspection_id", inspectionID),
		slog.String("org_id", orgID))
	return inspection, nil
}
