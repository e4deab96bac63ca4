package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTenantRent(t *testing.T) {
	// $24,000/yr income, $50 utility allowance, $1,200 contract rent:
	// monthly income 2000, 30% is 600, less allowance leaves 550; subsidy 650.
	calc := CalculateTenantRent(
		decimal.NewFromInt(24000),
		decimal.NewFromInt(50),
		decimal.NewFromInt(1200),
	)

	assert.True(t, calc.TenantRent.Equal(decimal.NewFromInt(550)), "tenant rent should be 550, got %s", calc.TenantRent)
	assert.True(t, calc.SubsidyAmount.Equal(decimal.NewFromInt(650)), "subsidy should be 650, got %s", calc.SubsidyAmount)
	assert.True(t, calc.MonthlyIncome.Equal(decimal.NewFromInt(2000)))
	assert.True(t, calc.TotalContractRent.Equal(decimal.NewFromInt(1200)))
	assert.True(t, calc.RentToIncomeRatio.Equal(decimal.RequireFromString("27.5")))
}

func TestCalculateTenantRent_FloorsAtZero(t *testing.T) {
	// Allowance exceeds 30% of monthly income: tenant pays nothing.
	calc := CalculateTenantRent(
		decimal.NewFromInt(1200), // monthly income 100, 30% is 30
		decimal.NewFromInt(75),
		decimal.NewFromInt(800),
	)

	assert.True(t, calc.TenantRent.IsZero(), "tenant rent must not go negative")
	assert.True(t, calc.SubsidyAmount.Equal(decimal.NewFromInt(800)))
}

func TestCalculateTenantRent_SubsidyFloorsAtZero(t *testing.T) {
	// High income household: tenant portion exceeds the contract rent.
	calc := CalculateTenantRent(
		decimal.NewFromInt(120000), // monthly income 10000, 30% is 3000
		decimal.Zero,
		decimal.NewFromInt(1200),
	)

	assert.True(t, calc.TenantRent.Equal(decimal.NewFromInt(3000)))
	assert.True(t, calc.SubsidyAmount.IsZero(), "subsidy must not go negative")
}

func TestCalculateTenantRent_ZeroIncome(t *testing.T) {
	calc := CalculateTenantRent(decimal.Zero, decimal.NewFromInt(50), decimal.NewFromInt(1000))

	assert.True(t, calc.TenantRent.IsZero())
	assert.True(t, calc.SubsidyAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, calc.RentToIncomeRatio.IsZero(), "ratio must be zero when income is zero")
}
