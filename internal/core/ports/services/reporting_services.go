package services

import (
	"context"
	"time"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	"github.com/PropLedger/prop_ledger_app/internal/dto"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// ProfitAndLoss generates a profit and loss report for a period.
	ProfitAndLoss(ctx context.Context, orgID string, propertyID *string, from, to time.Time, userID string) (*domain.ProfitLossReport, error)

	// BalanceSheet generates a balance sheet report as of a specific date.
	BalanceSheet(ctx context.Context, orgID string, propertyID *string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error)

	// CashFlow generates a cash flow report for a period.
	CashFlow(ctx context.Context, orgID string, propertyID *string, from, to time.Time, userID string) (*domain.CashFlowReport, error)

	// ExportProfitAndLoss renders a P&L report as a downloadable file.
	ExportProfitAndLoss(ctx context.Context, orgID string, params dto.ReportExportParams, userID string) (*dto.ReportFile, error)

	// ExportBalanceSheet renders a balance sheet as a downloadable file.
	// The report is taken as of the params' to-date.
	ExportBalanceSheet(ctx context.Context, orgID string, params dto.ReportExportParams, userID string) (*dto.ReportFile, error)

	// ExportCashFlow renders a cash flow report as a downloadable file.
	ExportCashFlow(ctx context.Context, orgID string, params dto.ReportExportParams, userID string) (*dto.ReportFile, error)
}
