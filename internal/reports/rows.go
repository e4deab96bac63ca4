// Package reports renders financial reports into downloadable documents.
package reports

import (
	"github.com/shopspring/decimal"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
	"github.com/PropLedger/prop_ledger_app/internal/utils"
)

// Row is one labelled line of a rendered report.
type Row struct {
	Label string
	Value string
	// Emphasize marks total lines for bold rendering.
	Emphasize bool
}

// Document is a renderer-neutral report layout.
type Document struct {
	Title    string
	Subtitle string
	Rows     []Row
}

func moneyRow(label string, amount decimal.Decimal, emphasize bool) Row {
	return Row{Label: label, Value: utils.FormatMoneyUSD(amount), Emphasize: emphasize}
}

// ProfitLossDocument lays out a P&L report for rendering.
func ProfitLossDocument(report *domain.ProfitLossReport, subtitle string) Document {
	return Document{
		Title:    "Profit & Loss Statement",
		Subtitle: subtitle,
		Rows: []Row{
			moneyRow("Revenue", report.Revenue, false),
			moneyRow("Expenses", report.Expenses, false),
			moneyRow("Net Income", report.NetIncome, true),
			{Label: "Gross Profit Margin", Value: report.GrossProfitMargin.Round(2).String() + "%"},
		},
	}
}

// BalanceSheetDocument lays out a balance sheet for rendering.
func BalanceSheetDocument(report *domain.BalanceSheetReport, subtitle string) Document {
	return Document{
		Title:    "Balance Sheet",
		Subtitle: subtitle,
		Rows: []Row{
			moneyRow("Assets", report.Assets, false),
			moneyRow("Liabilities", report.Liabilities, false),
			moneyRow("Equity", report.Equity, false),
			moneyRow("Total Liabilities & Equity", report.TotalLiabilitiesAndEquity, true),
			moneyRow("Balance Check", report.BalanceCheck, false),
		},
	}
}

// CashFlowDocument lays out a cash flow statement for rendering.
func CashFlowDocument(report *domain.CashFlowReport, subtitle string) Document {
	return Document{
		Title:    "Cash Flow Statement",
		Subtitle: subtitle,
		Rows: []Row{
			moneyRow("Operating Cash Flow", report.OperatingCashFlow, false),
			moneyRow("Investing Cash Flow", report.InvestingCashFlow, false),
			moneyRow("Financing Cash Flow", report.FinancingCashFlow, false),
			moneyRow("Net Cash Flow", report.NetCashFlow, true),
		},
	}
}
