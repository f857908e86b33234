package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(decimal.Zero))
	assert.NoError(t, ValidateAmount(decimal.NewFromInt(5000)))
	assert.Error(t, ValidateAmount(decimal.NewFromInt(-1)))

	assert.Error(t, ValidatePositiveAmount(decimal.Zero))
	assert.NoError(t, ValidatePositiveAmount(decimal.RequireFromString("0.01")))
}

func TestValidateQuarter(t *testing.T) {
	for _, q := range []string{"Q1", "q2", "Q4"} {
		assert.NoError(t, ValidateQuarter(q), q)
	}
	for _, q := range []string{"", "Q5", "Q1-2025", "1"} {
		assert.Error(t, ValidateQuarter(q), q)
	}
}

func TestValidateFinancialYear(t *testing.T) {
	for _, fy := range []string{"FY25", "fy25", "FY2025", "2025", "2024-25"} {
		assert.NoError(t, ValidateFinancialYear(fy), fy)
	}
	for _, fy := range []string{"", "F25", "year 2025", "FY"} {
		assert.Error(t, ValidateFinancialYear(fy), fy)
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Q1-2025", SanitizeString("  Q1-2025\x00\n"))
}
