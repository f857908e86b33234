package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpectedAmount(t *testing.T) {
	due := mustDate("2025-04-10")
	base := dec("5000")
	rate := dec("50")

	tests := []struct {
		name       string
		paid       *time.Time
		determined bool
		onTime     bool
		late       bool
		days       int
		amount     string
	}{
		{"no payment date", nil, false, false, false, 0, "5000"},
		{"early", datePtr("2025-04-05"), true, true, false, 0, "5000"},
		{"on due date", datePtr("2025-04-10"), true, true, false, 0, "5000"},
		{"one day late", datePtr("2025-04-11"), true, false, true, 1, "5050"},
		{"five days late", datePtr("2025-04-15"), true, false, true, 5, "5250"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpectedAmount(base, rate, due, tt.paid)
			assert.Equal(t, tt.determined, got.Determined)
			assert.Equal(t, tt.onTime, got.OnTime)
			assert.Equal(t, tt.late, got.Late)
			assert.Equal(t, tt.days, got.DaysLate)
			assert.True(t, dec(tt.amount).Equal(got.Amount), "amount = %s, want %s", got.Amount, tt.amount)
		})
	}
}

func TestExpectedAmount_PartialDayRoundsDown(t *testing.T) {
	due := mustDate("2025-04-10")
	paid := due.Add(36 * time.Hour)

	got := ExpectedAmount(dec("100"), dec("10"), due, &paid)
	assert.Equal(t, 1, got.DaysLate)
	assert.True(t, dec("110").Equal(got.Amount))

	sameDay := due.Add(5 * time.Hour)
	got = ExpectedAmount(dec("100"), dec("10"), due, &sameDay)
	assert.True(t, got.OnTime)
}

func TestExpectedAmount_Monotonic(t *testing.T) {
	due := mustDate("2025-04-10")
	prev := dec("0")
	for d := -3; d < 60; d++ {
		paid := due.AddDate(0, 0, d)
		got := ExpectedAmount(dec("5000"), dec("12.5"), due, &paid)
		assert.True(t, got.Amount.GreaterThanOrEqual(prev), "day %d: %s < %s", d, got.Amount, prev)
		prev = got.Amount
	}
}

func TestExpectedAmount_NegativeRateTreatedAsZero(t *testing.T) {
	got := ExpectedAmount(dec("5000"), dec("-10"), mustDate("2025-04-10"), datePtr("2025-04-20"))
	assert.True(t, got.Late)
	assert.True(t, dec("5000").Equal(got.Amount))
}

func TestExpectedAmount_ZeroDueDate(t *testing.T) {
	got := ExpectedAmount(dec("5000"), dec("50"), time.Time{}, datePtr("2025-04-20"))
	assert.False(t, got.Determined)
	assert.True(t, dec("5000").Equal(got.Amount))
}
