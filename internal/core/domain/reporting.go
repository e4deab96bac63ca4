package domain

import (
	"github.com/shopspring/decimal"
)

// ReportEntry is a ledger transaction joined with its account's type, the
// unit the report aggregation consumes. Lifecycle is carried so the
// aggregation can refuse soft-deleted rows even if a repository forgets the
// filter.
type ReportEntry struct {
	AccountID       string
	AccountType     AccountType
	TransactionType TransactionType
	Amount          decimal.Decimal
	Lifecycle       Lifecycle
}

// TypeTotals holds one signed total per account type.
type TypeTotals struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	Equity      decimal.Decimal
	Revenue     decimal.Decimal
	Expenses    decimal.Decimal
}

// ProfitLossReport is a profit-and-loss snapshot for a period.
type ProfitLossReport struct {
	Revenue           decimal.Decimal `json:"revenue"`
	Expenses          decimal.Decimal `json:"expenses"`
	NetIncome         decimal.Decimal `json:"netIncome"`
	GrossProfitMargin decimal.Decimal `json:"grossProfitMargin"` // Percent; zero when revenue is zero
}

// BalanceSheetReport is a balance-sheet snapshot as of a date. BalanceCheck
// is assets minus (liabilities + equity); the store is single-entry so it may be
// nonzero, and it is surfaced to the caller rather than asserted.
type BalanceSheetReport struct {
	Assets                    decimal.Decimal `json:"assets"`
	Liabilities               decimal.Decimal `json:"liabilities"`
	Equity                    decimal.Decimal `json:"equity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
	BalanceCheck              decimal.Decimal `json:"balanceCheck"`
}

// CashFlowReport partitions the period's activity into operating
// (revenue+expense accounts), investing (asset accounts), and financing
// (liability+equity accounts) buckets.
type CashFlowReport struct {
	OperatingCashFlow decimal.Decimal `json:"operatingCashFlow"`
	InvestingCashFlow decimal.Decimal `json:"investingCashFlow"`
	FinancingCashFlow decimal.Decimal `json:"financingCashFlow"`
	NetCashFlow       decimal.Decimal `json:"netCashFlow"`
}

// BudgetActualRow is one budget row compared against recorded actuals for
// its (account, year, month) window.
type BudgetActualRow struct {
	BudgetID           string          `json:"budgetID"`
	AccountID          string          `json:"accountID"`
	AccountName        string          `json:"accountName"`
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	BudgetedAmount     decimal.Decimal `json:"budgetedAmount"`
	ActualAmount       decimal.Decimal `json:"actualAmount"`
	Variance           decimal.Decimal `json:"variance"`
	VariancePercentage decimal.Decimal `json:"variancePercentage"` // Percent; zero when budgeted is zero
}

// BudgetActualReport is the full budget-vs-actual comparison.
type BudgetActualReport struct {
	Rows          []BudgetActualRow `json:"rows"`
	TotalBudgeted decimal.Decimal   `json:"totalBudgeted"`
	TotalActual   decimal.Decimal   `json:"totalActual"`
	TotalVariance decimal.Decimal   `json:"totalVariance"`
}

// ActualTotal is a batched actuals aggregate keyed by account and period.
type ActualTotal struct {
	AccountID string
	Year      int
	Month     int
	Total     decimal.Decimal
}

// RentCalculation is the output of the HUD tenant rent formula.
type RentCalculation struct {
	TenantRent        decimal.Decimal `json:"tenantRent"`
	SubsidyAmount     decimal.Decimal `json:"subsidyAmount"`
	TotalContractRent decimal.Decimal `json:"totalContractRent"`
	UtilityAllowance  decimal.Decimal `json:"utilityAllowance"`
	MonthlyIncome     decimal.Decimal `json:"monthlyIncome"`
	RentToIncomeRatio decimal.Decimal `json:"rentToIncomeRatio"` // Percent; zero when income is zero
}

// Vendor1099Invoice is one invoice line in a vendor's 1099 summary.
type Vendor1099Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceDate   string          `json:"invoiceDate"` // YYYY-MM-DD
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Status        string          `json:"status"`
}

// Vendor1099Data summarizes a vendor's invoiced and paid totals for a year.
type Vendor1099Data struct {
	VendorID          string              `json:"vendorID"`
	VendorName        string              `json:"vendorName"`
	TaxID             string              `json:"taxID"`
	Year              int                 `json:"year"`
	TotalInvoices     int                 `json:"totalInvoices"`
	TotalAmount       decimal.Decimal     `json:"totalAmount"`
	PaidAmount        decimal.Decimal     `json:"paidAmount"`
	OutstandingAmount decimal.Decimal     `json:"outstandingAmount"`
	Invoices          []Vendor1099Invoice `json:"invoices"`
}
