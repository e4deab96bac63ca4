package repositories

import (
	"context"
	"time"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetReportEntries retrieves non-deleted ledger entries joined with their
	// account type for a date range, optionally filtered by property. The
	// same rows feed the P&L, balance sheet, and cash flow aggregations.
	GetReportEntries(ctx context.Context, orgID string, propertyID *string, from, to time.Time) ([]domain.ReportEntry, error)

	// GetAccountNames retrieves a map of account ID to account name for an org.
	GetAccountNames(ctx context.Context, orgID string) (map[string]string, error)
}
