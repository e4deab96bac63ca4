package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

var hundred = decimal.NewFromInt(100)

// SignedAmount converts a stored (type, amount) pair into a signed value:
// debits keep their sign, credits are negated.
func SignedAmount(txnType domain.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if txnType == domain.Credit {
		return amount.Neg()
	}
	return amount
}

// SummarizeEntries buckets ledger entries into per-account-type signed totals.
// Soft-deleted entries are skipped regardless of how they were fetched.
func SummarizeEntries(entries []domain.ReportEntry) domain.TypeTotals {
	var totals domain.TypeTotals
	for _, e := range entries {
		if e.Lifecycle.Deleted() {
			continue
		}
		signed := SignedAmount(e.TransactionType, e.Amount)
		switch e.AccountType {
		case domain.Asset:
			totals.Assets = totals.Assets.Add(signed)
		case domain.Liability:
			totals.Liabilities = totals.Liabilities.Add(signed)
		case domain.Equity:
			totals.Equity = totals.Equity.Add(signed)
		case domain.Revenue:
			totals.Revenue = totals.Revenue.Add(signed)
		case domain.Expense:
			totals.Expenses = totals.Expenses.Add(signed)
		}
	}
	return totals
}

// BuildProfitLoss assembles a P&L from bucketed totals. Revenue accounts
// accumulate credits, so the signed revenue total is negated back to a
// positive figure before reporting.
func BuildProfitLoss(totals domain.TypeTotals) domain.ProfitLossReport {
	revenue := totals.Revenue.Neg()
	expenses := totals.Expenses
	netIncome := revenue.Sub(expenses)

	margin := decimal.Zero
	if !revenue.IsZero() {
		margin = netIncome.Div(revenue).Mul(hundred)
	}

	return domain.ProfitLossReport{
		Revenue:           revenue,
		Expenses:          expenses,
		NetIncome:         netIncome,
		GrossProfitMargin: margin,
	}
}

// BuildBalanceSheet assembles a balance sheet from bucketed totals.
// Liability and equity accounts accumulate credits, so their signed totals
// are negated back to positive figures. BalanceCheck carries any single-entry
// imbalance to the caller.
func BuildBalanceSheet(totals domain.TypeTotals) domain.BalanceSheetReport {
	assets := totals.Assets
	liabilities := totals.Liabilities.Neg()
	equity := totals.Equity.Neg()
	liabilitiesAndEquity := liabilities.Add(equity)

	return domain.BalanceSheetReport{
		Assets:                    assets,
		Liabilities:               liabilities,
		Equity:                    equity,
		TotalLiabilitiesAndEquity: liabilitiesAndEquity,
		BalanceCheck:              assets.Sub(liabilitiesAndEquity),
	}
}

// BuildCashFlow assembles a cash-flow statement from bucketed totals.
// Operating activity is net income (revenue less expenses), investing is
// asset movement inverted (asset growth consumes cash), financing is
// liability plus equity movement.
func BuildCashFlow(totals domain.TypeTotals) domain.CashFlowReport {
	operating := totals.Revenue.Neg().Sub(totals.Expenses)
	investing := totals.Assets.Neg()
	financing := totals.Liabilities.Neg().Add(totals.Equity.Neg())

	return domain.CashFlowReport{
		OperatingCashFlow: operating,
		InvestingCashFlow: investing,
		FinancingCashFlow: financing,
		NetCashFlow:       operating.Add(investing).Add(financing),
	}
}

// BuildBudgetActual compares budget rows against batched actual totals keyed
// by (account, year, month). Rows with no matching actuals compare against
// zero. Variance is budgeted minus actual; the percentage is zero-guarded.
func BuildBudgetActual(budgets []domain.Budget, accountNames map[string]string, actuals []domain.ActualTotal) domain.BudgetActualReport {
	type periodKey struct {
		accountID string
		year      int
		month     int
	}
	actualByKey := make(map[periodKey]decimal.Decimal, len(actuals))
	for _, a := range actuals {
		actualByKey[periodKey{a.AccountID, a.Year, a.Month}] = a.Total
	}

	report := domain.BudgetActualReport{Rows: make([]domain.BudgetActualRow, 0, len(budgets))}
	for _, b := range budgets {
		actual := actualByKey[periodKey{b.AccountID, b.Year, b.Month}]
		variance := b.BudgetedAmount.Sub(actual)

		pct := decimal.Zero
		if !b.BudgetedAmount.IsZero() {
			pct = variance.Div(b.BudgetedAmount).Mul(hundred)
		}

		report.Rows = append(report.Rows, domain.BudgetActualRow{
			BudgetID:           b.BudgetID,
			AccountID:          b.AccountID,
			AccountName:        accountNames[b.AccountID],
			Year:               b.Year,
			Month:              b.Month,
			BudgetedAmount:     b.BudgetedAmount,
			ActualAmount:       actual,
			Variance:           variance,
			VariancePercentage: pct,
		})
		report.TotalBudgeted = report.TotalBudgeted.Add(b.BudgetedAmount)
		report.TotalActual = report.TotalActual.Add(actual)
	}
	report.TotalVariance = report.TotalBudgeted.Sub(report.TotalActual)
	return report
}
