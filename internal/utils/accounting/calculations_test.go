package accounting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

func entry(acctType domain.AccountType, txnType domain.TransactionType, amount string) domain.ReportEntry {
	return domain.ReportEntry{
		AccountType:     acctType,
		TransactionType: txnType,
		Amount:          decimal.RequireFromString(amount),
		Lifecycle:       domain.ActiveLifecycle(),
	}
}

func TestSignedAmount(t *testing.T) {
	amt := decimal.NewFromInt(100)
	assert.True(t, SignedAmount(domain.Debit, amt).Equal(decimal.NewFromInt(100)))
	assert.True(t, SignedAmount(domain.Credit, amt).Equal(decimal.NewFromInt(-100)))
}

func TestSummarizeEntries_SkipsDeleted(t *testing.T) {
	deletedAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	deleted := entry(domain.Revenue, domain.Credit, "5000")
	deleted.Lifecycle = domain.DeletedLifecycle(deletedAt)

	totals := SummarizeEntries([]domain.ReportEntry{
		entry(domain.Revenue, domain.Credit, "1000"),
		deleted,
	})

	assert.True(t, totals.Revenue.Equal(decimal.NewFromInt(-1000)), "deleted entries must not contribute to totals")
}

func TestBuildProfitLoss(t *testing.T) {
	totals := SummarizeEntries([]domain.ReportEntry{
		entry(domain.Revenue, domain.Credit, "10000"),
		entry(domain.Revenue, domain.Debit, "500"), // refund reduces revenue
		entry(domain.Expense, domain.Debit, "4000"),
	})
	report := BuildProfitLoss(totals)

	assert.True(t, report.Revenue.Equal(decimal.NewFromInt(9500)))
	assert.True(t, report.Expenses.Equal(decimal.NewFromInt(4000)))
	assert.True(t, report.NetIncome.Equal(decimal.NewFromInt(5500)))

	// 5500 / 9500 * 100
	expectedMargin := decimal.NewFromInt(5500).Div(decimal.NewFromInt(9500)).Mul(decimal.NewFromInt(100))
	assert.True(t, report.GrossProfitMargin.Equal(expectedMargin))
}

func TestBuildProfitLoss_ZeroRevenue(t *testing.T) {
	totals := SummarizeEntries([]domain.ReportEntry{
		entry(domain.Expense, domain.Debit, "4000"),
	})
	report := BuildProfitLoss(totals)

	assert.True(t, report.Revenue.IsZero())
	assert.True(t, report.NetIncome.Equal(decimal.NewFromInt(-4000)))
	assert.True(t, report.GrossProfitMargin.IsZero(), "margin must be zero when revenue is zero")
}

func TestBuildBalanceSheet(t *testing.T) {
	totals := SummarizeEntries([]domain.ReportEntry{
		entry(domain.Asset, domain.Debit, "12000"),
		entry(domain.Liability, domain.Credit, "7000"),
		entry(domain.Equity, domain.Credit, "4000"),
	})
	report := BuildBalanceSheet(totals)

	assert.True(t, report.Assets.Equal(decimal.NewFromInt(12000)))
	assert.True(t, report.Liabilities.Equal(decimal.NewFromInt(7000)))
	assert.True(t, report.Equity.Equal(decimal.NewFromInt(4000)))
	assert.True(t, report.TotalLiabilitiesAndEquity.Equal(decimal.NewFromInt(11000)))
	assert.True(t, report.BalanceCheck.Equal(decimal.NewFromInt(1000)), "single-entry imbalance is surfaced, not hidden")
}

func TestBuildCashFlow_Partition(t *testing.T) {
	totals := SummarizeEntries([]domain.ReportEntry{
		entry(domain.Revenue, domain.Credit, "10000"),
		entry(domain.Expense, domain.Debit, "3000"),
		entry(domain.Asset, domain.Debit, "2000"),
		entry(domain.Liability, domain.Credit, "1500"),
		entry(domain.Equity, domain.Credit, "500"),
	})
	report := BuildCashFlow(totals)

	assert.True(t, report.OperatingCashFlow.Equal(decimal.NewFromInt(7000)))
	assert.True(t, report.InvestingCashFlow.Equal(decimal.NewFromInt(-2000)), "asset growth consumes cash")
	assert.True(t, report.FinancingCashFlow.Equal(decimal.NewFromInt(2000)))
	assert.True(t, report.NetCashFlow.Equal(decimal.NewFromInt(7000)))
}

func TestBuildBudgetActual(t *testing.T) {
	budgets := []domain.Budget{
		{BudgetID: "b1", AccountID: "acc1", Year: 2025, Month: 1, BudgetedAmount: decimal.NewFromInt(1000)},
		{BudgetID: "b2", AccountID: "acc2", Year: 2025, Month: 1, BudgetedAmount: decimal.Zero},
		{BudgetID: "b3", AccountID: "acc1", Year: 2025, Month: 2, BudgetedAmount: decimal.NewFromInt(500)},
		{BudgetID: "b4", AccountID: "acc3", Year: 2025, Month: 1, BudgetedAmount: decimal.NewFromInt(9000)},
	}
	names := map[string]string{"acc1": "Repairs", "acc2": "Landscaping", "acc3": "Rental Income"}
	actuals := []domain.ActualTotal{
		{AccountID: "acc1", Year: 2025, Month: 1, Total: decimal.NewFromInt(1200)},
		{AccountID: "acc2", Year: 2025, Month: 1, Total: decimal.NewFromInt(300)},
		{AccountID: "acc3", Year: 2025, Month: 1, Total: decimal.NewFromInt(9000)},
	}

	report := BuildBudgetActual(budgets, names, actuals)

	assert.Len(t, report.Rows, 4)

	assert.Equal(t, "Repairs", report.Rows[0].AccountName)
	assert.True(t, report.Rows[0].Variance.Equal(decimal.NewFromInt(-200)))
	assert.True(t, report.Rows[0].VariancePercentage.Equal(decimal.NewFromInt(-20)))

	// Zero budgeted amount: variance reported, percentage guarded.
	assert.True(t, report.Rows[1].Variance.Equal(decimal.NewFromInt(-300)))
	assert.True(t, report.Rows[1].VariancePercentage.IsZero())

	// No actuals recorded for the period.
	assert.True(t, report.Rows[2].ActualAmount.IsZero())
	assert.True(t, report.Rows[2].Variance.Equal(decimal.NewFromInt(500)))

	// Revenue account fully collected: actuals arrive as raw sums, so a
	// budget met exactly yields zero variance.
	assert.Equal(t, "Rental Income", report.Rows[3].AccountName)
	assert.True(t, report.Rows[3].Variance.IsZero())
	assert.True(t, report.Rows[3].VariancePercentage.IsZero())

	assert.True(t, report.TotalBudgeted.Equal(decimal.NewFromInt(10500)))
	assert.True(t, report.TotalActual.Equal(decimal.NewFromInt(10500)))
	assert.True(t, report.TotalVariance.IsZero())
}
