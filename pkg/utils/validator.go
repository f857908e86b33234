package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	quarterPattern       = regexp.MustCompile(`^[Qq][1-4]$`)
	financialYearPattern = regexp.MustCompile(`^([A-Za-z]{2})?\d{2}(\d{2})?(-\d{2,4})?$`)
	controlChars         = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// ValidateAmount rejects negative amounts
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("amount must not be negative: %s", amount.StringFixed(2))
	}
	return nil
}

// ValidatePositiveAmount rejects zero and negative amounts
func ValidatePositiveAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive: %s", amount.StringFixed(2))
	}
	return nil
}

// ValidateQuarter accepts Q1..Q4 in either case
func ValidateQuarter(q string) error {
	if !quarterPattern.MatchString(q) {
		return fmt.Errorf("invalid quarter label: %q", q)
	}
	return nil
}

// ValidateFinancialYear accepts forms like FY25, FY2025, 2025 and 2024-25
func ValidateFinancialYear(fy string) error {
	if !financialYearPattern.MatchString(fy) {
		return fmt.Errorf("invalid financial year label: %q", fy)
	}
	return nil
}

// SanitizeString trims whitespace and removes control characters
func SanitizeString(s string) string {
	return strings.TrimSpace(controlChars.ReplaceAllString(s, ""))
}
