package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	portsrepo "github.com/PropLedger/prop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/PropLedger/prop_ledger_app/internal/core/ports/services"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
	"github.com/PropLedger/prop_ledger_app/internal/reports"
	"github.com/PropLedger/prop_ledger_app/internal/utils/accounting"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingServiceImpl creates a new reporting service
func NewReportingServiceImpl(repo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingServiceImpl{
		reportingRepo: repo,
	}
}

// Ensure reportingServiceImpl implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingServiceImpl)(nil)

// balanceSheetEpoch is the lower bound for as-of aggregations. Balance sheet
// figures accumulate over all history, not a reporting period.
var balanceSheetEpoch = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

func (s *reportingServiceImpl) ProfitAndLoss(ctx context.Context, orgID string, propertyID *string, from, to time.Time, userID string) (*domain.ProfitLossReport, error) {
	entries, err := s.reportingRepo.GetReportEntries(ctx, orgID, propertyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch P&L entries",
			slog.String("org_id", orgID))
		return nil, fmt.Errorf("failed to generate profit and loss report: %w", err)
	}

	report := accounting.BuildProfitLoss(accounting.SummarizeEntries(entries))

	s.LogDebug(ctx, "P&L report generated",
		slog.String("org_id", orgID),
		slog.Int("entries", len(entries)))
	return &report, nil
}

func (s *reportingServiceImpl) BalanceSheet(ctx context.Context, orgID string, propertyID *string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error) {
	entries, err := s.reportingRepo.GetReportEntries(ctx, orgID, propertyID, balanceSheetEpoch, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch balance sheet entries",
			slog.String("org_id", orgID))
		return nil, fmt.Errorf("failed to generate balance sheet report: %w", err)
	}

	report := accounting.BuildBalanceSheet(accounting.SummarizeEntries(entries))

	s.LogDebug(ctx, "Balance sheet generated",
		slog.String("org_id", orgID),
		slog.Int("entries", len(entries)))
	return &report, nil
}

func (s *reportingServiceImpl) CashFlow(ctx context.Context, orgID string, propertyID *string, from, to time.Time, userID string) (*domain.CashFlowReport, error) {
	entries, err := s.reportingRepo.GetReportEntries(ctx, orgID, propertyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch cash flow entries",
			slog.String("org_id", orgID))
		return nil, fmt.Errorf("failed to generate cash flow report: %w", err)
	}

	report := accounting.BuildCashFlow(accounting.SummarizeEntries(entries))

	s.LogDebug(ctx, "Cash flow report generated",
		slog.String("org_id", orgID),
		slog.Int("entries", len(entries)))
	return &report, nil
}

func (s *reportingServiceImpl) ExportProfitAndLoss(ctx context.Context, orgID string, params dto.ReportExportParams, userID string) (*dto.ReportFile, error) {
	report, err := s.ProfitAndLoss(ctx, orgID, params.PropertyID, params.FromDate, params.ToDate, userID)
	if err != nil {
		return nil, err
	}

	subtitle := periodSubtitle(params.FromDate, params.ToDate)
	switch params.Format {
	case "pdf":
		return renderFile(reports.ProfitLossDocument(report, subtitle), "profit_loss", params, "pdf")
	case "xlsx":
		return renderFile(reports.ProfitLossDocument(report, subtitle), "profit_loss", params, "xlsx")
	default:
		return jsonFile(dto.ToProfitLossResponse(report, params.FromDate, params.ToDate), "profit_loss", params)
	}
}

func (s *reportingServiceImpl) ExportBalanceSheet(ctx context.Context, orgID string, params dto.ReportExportParams, userID string) (*dto.ReportFile, error) {
	report, err := s.BalanceSheet(ctx, orgID, params.PropertyID, params.ToDate, userID)
	if err != nil {
		return nil, err
	}

	subtitle := "As of " + params.ToDate.Format("2006-01-02")
	switch params.Format {
	case "pdf":
		return renderFile(reports.BalanceSheetDocument(report, subtitle), "balance_sheet", params, "pdf")
	case "xlsx":
		return renderFile(reports.BalanceSheetDocument(report, subtitle), "balance_sheet", params, "xlsx")
	default:
		return jsonFile(dto.ToBalanceSheetResponse(report, params.ToDate), "balance_sheet", params)
	}
}

func (s *reportingServiceImpl) ExportCashFlow(ctx context.Context, orgID string, params dto.ReportExportParams, userID string) (*dto.ReportFile, error) {
	report, err := s.CashFlow(ctx, orgID, params.PropertyID, params.FromDate, params.ToDate, userID)
	if err != nil {
		return nil, err
	}

	subtitle := periodSubtitle(params.FromDate, params.ToDate)
	switch params.Format {
	case "pdf":
		return renderFile(reports.CashFlowDocument(report, subtitle), "cash_flow", params, "pdf")
	case "xlsx":
		return renderFile(reports.CashFlowDocument(report, subtitle), "cash_flow", params, "xlsx")
	default:
		return jsonFile(dto.ToCashFlowResponse(report, params.FromDate, params.ToDate), "cash_flow", params)
	}
}

func periodSubtitle(from, to time.Time) string {
	return from.Format("2006-01-02") + " to " + to.Format("2006-01-02")
}

func exportFilename(base string, params dto.ReportExportParams, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", base, params.FromDate.Format("20060102"), params.ToDate.Format("20060102"), ext)
}

func renderFile(doc reports.Document, base string, params dto.ReportExportParams, format string) (*dto.ReportFile, error) {
	switch format {
	case "pdf":
		content, err := reports.RenderPDF(doc)
		if err != nil {
			return nil, err
		}
		return &dto.ReportFile{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    exportFilename(base, params, "pdf"),
		}, nil
	default:
		content, err := reports.RenderXLSX(doc)
		if err != nil {
			return nil, err
		}
		return &dto.ReportFile{
			Content:     content,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    exportFilename(base, params, "xlsx"),
		}, nil
	}
}

func jsonFile(payload any, base string, params dto.ReportExportParams) (*dto.ReportFile, error) {
	content, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return &dto.ReportFile{
		Content:     content,
		ContentType: "application/json",
		Filename:    exportFilename(base, params, "json"),
	}, nil
}
