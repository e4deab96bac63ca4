package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/PropLedger/prop_ledger_app/internal/core/domain"
)

var (
	twelve       = decimal.NewFromInt(12)
	incomeFactor = decimal.RequireFromString("0.30")
)

// CalculateTenantRent applies the HUD PRAC rent formula: the tenant pays 30%
// of monthly adjusted income less the utility allowance, floored at zero; the
// subsidy covers the remainder of the contract rent, also floored at zero.
func CalculateTenantRent(annualIncome, utilityAllowance, contractRent decimal.Decimal) domain.RentCalculation {
	monthlyIncome := annualIncome.Div(twelve)

	tenantRent := monthlyIncome.Mul(incomeFactor).Sub(utilityAllowance)
	if tenantRent.IsNegative() {
		tenantRent = decimal.Zero
	}

	subsidy := contractRent.Sub(tenantRent)
	if subsidy.IsNegative() {
		subsidy = decimal.Zero
	}

	ratio := decimal.Zero
	if !monthlyIncome.IsZero() {
		ratio = tenantRent.Div(monthlyIncome).Mul(hundred)
	}

	return domain.RentCalculation{
		TenantRent:        tenantRent,
		SubsidyAmount:     subsidy,
		TotalContractRent: contractRent,
		UtilityAllowance:  utilityAllowance,
		MonthlyIncome:     monthlyIncome,
		RentToIncomeRatio: ratio,
	}
}
