package reports

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

func sampleProfitLoss() *domain.ProfitLossReport {
	return &domain.ProfitLossReport{
		Revenue:           decimal.NewFromInt(9500),
		Expenses:          decimal.NewFromInt(4000),
		NetIncome:         decimal.NewFromInt(5500),
		GrossProfitMargin: decimal.RequireFromString("57.89"),
	}
}

func TestProfitLossDocument(t *testing.T) {
	doc := ProfitLossDocument(sampleProfitLoss(), "2025-01-01 to 2025-12-31")

	assert.Equal(t, "Profit & Loss Statement", doc.Title)
	require.Len(t, doc.Rows, 4)
	assert.Equal(t, "Revenue", doc.Rows[0].Label)
	assert.Equal(t, "$9,500.00", doc.Rows[0].Value)
	assert.True(t, doc.Rows[2].Emphasize, "net income line should be emphasized")
	assert.Equal(t, "57.89%", doc.Rows[3].Value)
}

func TestBalanceSheetDocument(t *testing.T) {
	report := &domain.BalanceSheetReport{
		Assets:                    decimal.NewFromInt(12000),
		Liabilities:               decimal.NewFromInt(7000),
		Equity:                    decimal.NewFromInt(4000),
		TotalLiabilitiesAndEquity: decimal.NewFromInt(11000),
		BalanceCheck:              decimal.NewFromInt(1000),
	}
	doc := BalanceSheetDocument(report, "As of 2025-12-31")

	require.Len(t, doc.Rows, 5)
	assert.Equal(t, "Balance Check", doc.Rows[4].Label)
	assert.Equal(t, "$1,000.00", doc.Rows[4].Value)
}

func TestRenderPDF(t *testing.T) {
	doc := ProfitLossDocument(sampleProfitLoss(), "2025-01-01 to 2025-12-31")

	out, err := RenderPDF(doc)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "output should be a PDF document")
}

func TestRenderXLSX(t *testing.T) {
	doc := CashFlowDocument(&domain.CashFlowReport{
		OperatingCashFlow: decimal.NewFromInt(7000),
		InvestingCashFlow: decimal.NewFromInt(-2000),
		FinancingCashFlow: decimal.NewFromInt(2000),
		NetCashFlow:       decimal.NewFromInt(7000),
	}, "2025-01-01 to 2025-12-31")

	out, err := RenderXLSX(doc)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "PK", string(out[:2]), "output should be a zip-based workbook")
}
