package reconcile

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// FineResult is the expected amount for a payment made on a given date
type FineResult struct {
	// Determined is false when there is no payment date to compare
	Determined bool
	OnTime     bool
	Late       bool
	DaysLate   int
	Fine       decimal.Decimal
	Amount     decimal.Decimal
}

// ExpectedAmount computes base plus a linear day-late fine. One day past the
// due date already accrues one day's fine. A nil payment date or a zero due
// date leaves timeliness undetermined and the amount at base.
func ExpectedAmount(base, dailyFine decimal.Decimal, dueDate time.Time, paymentDate *time.Time) FineResult {
	if paymentDate == nil || paymentDate.IsZero() || dueDate.IsZero() {
		return FineResult{Fine: decimal.Zero, Amount: base}
	}

	days := DaysLate(dueDate, *paymentDate)
	if days <= 0 {
		return FineResult{Determined: true, OnTime: true, Fine: decimal.Zero, Amount: base}
	}

	// negative rates would break monotonicity
	if dailyFine.IsNegative() {
		dailyFine = decimal.Zero
	}
	fine := dailyFine.Mul(decimal.NewFromInt(int64(days)))
	return FineResult{
		Determined: true,
		Late:       true,
		DaysLate:   days,
		Fine:       fine,
		Amount:     base.Add(fine),
	}
}

// DaysLate is floor(paymentDate - dueDate) in whole days
func DaysLate(dueDate, paymentDate time.Time) int {
	return int(math.Floor(paymentDate.Sub(dueDate).Hours() / 24))
}
