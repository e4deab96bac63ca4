package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

// ReportPeriodParams defines query parameters for period-based reports.
type ReportPeriodParams struct {
	PropertyID *string   `form:"propertyID"`
	FromDate   time.Time `form:"fromDate" binding:"required" time_format:"2006-01-02"`
	ToDate     time.Time `form:"toDate" binding:"required" time_format:"2006-01-02"`
}

// ReportAsOfParams defines query parameters for point-in-time reports.
type ReportAsOfParams struct {
	PropertyID *string   `form:"propertyID"`
	AsOf       time.Time `form:"asOf" binding:"required" time_format:"2006-01-02"`
}

// ReportExportParams defines query parameters for exported report downloads.
type ReportExportParams struct {
	PropertyID *string   `form:"propertyID"`
	FromDate   time.Time `form:"fromDate" binding:"required" time_format:"2006-01-02"`
	ToDate     time.Time `form:"toDate" binding:"required" time_format:"2006-01-02"`
	Format     string    `form:"format,default=json" binding:"oneof=json pdf xlsx"`
}

// ProfitLossResponse represents the profit and loss report response.
type ProfitLossResponse struct {
	FromDate          string          `json:"fromDate"`
	ToDate            string          `json:"toDate"`
	Revenue           decimal.Decimal `json:"revenue"`
	Expenses          decimal.Decimal `json:"expenses"`
	NetIncome         decimal.Decimal `json:"netIncome"`
	GrossProfitMargin decimal.Decimal `json:"grossProfitMargin"`
}

// BalanceSheetResponse represents the balance sheet report response.
type BalanceSheetResponse struct {
	AsOf                      string          `json:"asOf"`
	Assets                    decimal.Decimal `json:"assets"`
	Liabilities               decimal.Decimal `json:"liabilities"`
	Equity                    decimal.Decimal `json:"equity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
	BalanceCheck              decimal.Decimal `json:"balanceCheck"`
}

// CashFlowResponse represents the cash flow report response.
type CashFlowResponse struct {
	FromDate          string          `json:"fromDate"`
	ToDate            string          `json:"toDate"`
	OperatingCashFlow decimal.Decimal `json:"operatingCashFlow"`
	InvestingCashFlow decimal.Decimal `json:"investingCashFlow"`
	FinancingCashFlow decimal.Decimal `json:"financingCashFlow"`
	NetCashFlow       decimal.Decimal `json:"netCashFlow"`
}

// BudgetVsActualRowResponse represents one row of the budget-vs-actual report.
type BudgetVsActualRowResponse struct {
	BudgetID           string          `json:"budgetID"`
	AccountID          string          `json:"accountID"`
	AccountName        string          `json:"accountName"`
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	BudgetedAmount     decimal.Decimal `json:"budgetedAmount"`
	ActualAmount       decimal.Decimal `json:"actualAmount"`
	Variance           decimal.Decimal `json:"variance"`
	VariancePercentage decimal.Decimal `json:"variancePercentage"`
}

// BudgetVsActualResponse represents the budget-vs-actual report response.
type BudgetVsActualResponse struct {
	Rows          []BudgetVsActualRowResponse `json:"rows"`
	TotalBudgeted decimal.Decimal             `json:"totalBudgeted"`
	TotalActual   decimal.Decimal             `json:"totalActual"`
	TotalVariance decimal.Decimal             `json:"totalVariance"`
}

// Vendor1099InvoiceResponse is one invoice line in a vendor 1099 summary.
type Vendor1099InvoiceResponse struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceDate   string          `json:"invoiceDate"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Status        string          `json:"status"`
}

// Vendor1099Response represents a vendor's 1099 summary response.
type Vendor1099Response struct {
	VendorID          string                      `json:"vendorID"`
	VendorName        string                      `json:"vendorName"`
	TaxID             string                      `json:"taxID"`
	Year              int                         `json:"year"`
	TotalInvoices     int                         `json:"totalInvoices"`
	TotalAmount       decimal.Decimal             `json:"totalAmount"`
	PaidAmount        decimal.Decimal             `json:"paidAmount"`
	OutstandingAmount decimal.Decimal             `json:"outstandingAmount"`
	Invoices          []Vendor1099InvoiceResponse `json:"invoices"`
}

// ReportFile is a rendered report ready for download.
type ReportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ToProfitLossResponse converts a domain P&L report to a DTO response
func ToProfitLossResponse(report *domain.ProfitLossReport, from, to time.Time) ProfitLossResponse {
	return ProfitLossResponse{
		FromDate:          from.Format("2006-01-02"),
		ToDate:            to.Format("2006-01-02"),
		Revenue:           report.Revenue,
		Expenses:          report.Expenses,
		NetIncome:         report.NetIncome,
		GrossProfitMargin: report.GrossProfitMargin,
	}
}

// ToBalanceSheetResponse converts a domain balance sheet report to a DTO response
func ToBalanceSheetResponse(report *domain.BalanceSheetReport, asOf time.Time) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOf:                      asOf.Format("2006-01-02"),
		Assets:                    report.Assets,
		Liabilities:               report.Liabilities,
		Equity:                    report.Equity,
		TotalLiabilitiesAndEquity: report.TotalLiabilitiesAndEquity,
		BalanceCheck:              report.BalanceCheck,
	}
}

// ToCashFlowResponse converts a domain cash flow report to a DTO response
func ToCashFlowResponse(report *domain.CashFlowReport, from, to time.Time) CashFlowResponse {
	return CashFlowResponse{
		FromDate:          from.Format("2006-01-02"),
		ToDate:            to.Format("2006-01-02"),
		OperatingCashFlow: report.OperatingCashFlow,
		InvestingCashFlow: report.InvestingCashFlow,
		FinancingCashFlow: report.FinancingCashFlow,
		NetCashFlow:       report.NetCashFlow,
	}
}

// ToBudgetVsActualResponse converts a domain budget-vs-actual report to a DTO response
func ToBudgetVsActualResponse(report *domain.BudgetActualReport) BudgetVsActualResponse {
	rows := make([]BudgetVsActualRowResponse, len(report.Rows))
	for i, row := range report.Rows {
		rows[i] = BudgetVsActualRowResponse{
			BudgetID:           row.BudgetID,
			AccountID:          row.AccountID,
			AccountName:        row.AccountName,
			Year:               row.Year,
			Month:              row.Month,
			BudgetedAmount:     row.BudgetedAmount,
			ActualAmount:       row.ActualAmount,
			Variance:           row.Variance,
			VariancePercentage: row.VariancePercentage,
		}
	}
	return BudgetVsActualResponse{
		Rows:          rows,
		TotalBudgeted: report.TotalBudgeted,
		TotalActual:   report.TotalActual,
		TotalVariance: report.TotalVariance,
	}
}

// ToVendor1099Response converts domain 1099 data to a DTO response
func ToVendor1099Response(data *domain.Vendor1099Data) Vendor1099Response {
	invoices := make([]Vendor1099InvoiceResponse, len(data.Invoices))
	for i, inv := range data.Invoices {
		invoices[i] = Vendor1099InvoiceResponse{
			InvoiceID:     inv.InvoiceID,
			InvoiceNumber: inv.InvoiceNumber,
			InvoiceDate:   inv.InvoiceDate,
			TotalAmount:   inv.TotalAmount,
			AmountPaid:    inv.AmountPaid,
			Status:        inv.Status,
		}
	}
	return Vendor1099Response{
		VendorID:          data.VendorID,
		VendorName:        data.VendorName,
		TaxID:             data.TaxID,
		Year:              data.Year,
		TotalInvoices:     data.TotalInvoices,
		TotalAmount:       data.TotalAmount,
		PaidAmount:        data.PaidAmount,
		OutstandingAmount: data.OutstandingAmount,
		Invoices:          invoices,
	}
}
