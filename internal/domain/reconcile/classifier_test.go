package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flatfundpro/dues-portal/internal/domain/entity"
)

func classify(records ...*entity.PaymentRecord) FlatStatus {
	return NewClassifier(nil).Classify("flat-1", q1Collection(), records)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "got %s, want %s", got, want)
}

func TestClassify_NoRecordsIsPending(t *testing.T) {
	st := classify()

	assert.Equal(t, StatusPending, st.Status)
	assert.Equal(t, RuleNoPayments, st.Rule)
	assertDec(t, "0", st.PaidAmount)
	assertDec(t, "5000", st.ExpectedAmount)
	assert.Nil(t, st.LastPaymentDate)
}

func TestClassify_OnlyNullAmountsIsPending(t *testing.T) {
	rec := linkedRecord("p1", "flat-1", decimal.NullDecimal{}, datePtr("2025-04-05"), entity.ApprovalApproved)
	st := classify(rec)

	assert.Equal(t, StatusPending, st.Status)
	assertDec(t, "0", st.PaidAmount)
	assert.Equal(t, 1, st.MatchedRecords)
	assert.Equal(t, entity.ApprovalApproved, st.LastPaymentStatus)
}

func TestClassify_OtherFlatsIgnored(t *testing.T) {
	rec := linkedRecord("p1", "flat-2", amount("5000"), datePtr("2025-04-05"), entity.ApprovalApproved)
	st := classify(rec)

	assert.Equal(t, StatusPending, st.Status)
	assert.Equal(t, 0, st.MatchedRecords)
}

func TestClassify_OnTimeApprovedExactIsPaid(t *testing.T) {
	st := classify(linkedRecord("p1", "flat-1", amount("5000.00"), datePtr("2025-04-05"), entity.ApprovalApproved))

	assert.Equal(t, StatusPaid, st.Status)
	assert.Equal(t, RulePaidOnTime, st.Rule)
	assertDec(t, "5000", st.PaidAmount)
	assertDec(t, "5000", st.ExpectedAmount)
}

func TestClassify_WithinTolerance(t *testing.T) {
	st := classify(linkedRecord("p1", "flat-1", amount("4999.995"), datePtr("2025-04-05"), entity.ApprovalApproved))
	assert.Equal(t, StatusPaid, st.Status)

	st = classify(linkedRecord("p1", "flat-1", amount("4999.99"), datePtr("2025-04-05"), entity.ApprovalApproved))
	assert.Equal(t, StatusPartial, st.Status)
}

func TestClassify_ScenarioA_LateExactIsPaid(t *testing.T) {
	st := classify(linkedRecord("p1", "flat-1", amount("5250"), datePtr("2025-04-15"), entity.ApprovalApproved))

	assert.Equal(t, StatusPaid, st.Status)
	assert.Equal(t, RulePaidLate, st.Rule)
	assertDec(t, "5250", st.PaidAmount)
	assertDec(t, "5000", st.ExpectedAmount)
}

func TestClassify_ScenarioB_LateShortIsPartial(t *testing.T) {
	st := classify(linkedRecord("p1", "flat-1", amount("5200"), datePtr("2025-04-15"), entity.ApprovalApproved))

	assert.Equal(t, StatusPartial, st.Status)
	assert.Equal(t, RulePartialLateMismatch, st.Rule)
	assertDec(t, "5200", st.PaidAmount)
	assertDec(t, "5250", st.ExpectedAmount)
	assert.Equal(t, 5, st.DaysLate)
}

func TestClassify_ScenarioC_UnapprovedExactIsPartial(t *testing.T) {
	st := classify(linkedRecord("p1", "flat-1", amount("5000"), datePtr("2025-04-05"), entity.ApprovalReceived))

	assert.Equal(t, StatusPartial, st.Status)
	assert.Equal(t, RulePartialUnqualified, st.Rule)
	assertDec(t, "5000", st.PaidAmount)
	assertDec(t, "5000", st.ExpectedAmount)
}

func TestClassify_ScenarioD_PartialThenLatePaid(t *testing.T) {
	first := linkedRecord("p1", "flat-1", amount("2000"), datePtr("2025-04-01"), entity.ApprovalApproved)
	second := linkedRecord("p2", "flat-1", amount("5300"), datePtr("2025-04-16"), entity.ApprovalApproved)

	st := classify(first, second)

	assert.Equal(t, StatusPaid, st.Status)
	assert.Equal(t, RulePaidLate, st.Rule)
	assertDec(t, "7300", st.PaidAmount)
	assertDec(t, "5000", st.ExpectedAmount)
}

func TestClassify_ScenarioE_CaseInsensitiveType(t *testing.T) {
	rec := &entity.PaymentRecord{
		ID:             "p1",
		FlatID:         "flat-1",
		PaymentType:    "Maintenance",
		PaymentQuarter: "Q1-2025",
		PaymentAmount:  amount("5000"),
		PaymentDate:    datePtr("2025-04-05"),
		Status:         entity.ApprovalApproved,
	}

	st := classify(rec)
	assert.Equal(t, StatusPaid, st.Status)
	assert.Equal(t, 1, st.MatchedRecords)
}

func TestClassify_UndatedRecords(t *testing.T) {
	t.Run("unapproved short is partial", func(t *testing.T) {
		st := classify(linkedRecord("p1", "flat-1", amount("3000"), nil, entity.ApprovalReviewed))
		assert.Equal(t, StatusPartial, st.Status)
		assert.Equal(t, RulePartialUndated, st.Rule)
		assertDec(t, "5000", st.ExpectedAmount)
	})

	t.Run("approved exact is never paid without a date", func(t *testing.T) {
		st := classify(linkedRecord("p1", "flat-1", amount("5000"), nil, entity.ApprovalApproved))
		assert.Equal(t, StatusPartial, st.Status)
		assert.Equal(t, RulePartialUnqualified, st.Rule)
	})
}

func TestClassify_PartialExpectedUsesLatestDate(t *testing.T) {
	// on-time short payment triggers partial, but the display figure
	// is computed from the latest payment date across records
	early := linkedRecord("p1", "flat-1", amount("1000"), datePtr("2025-04-01"), entity.ApprovalApproved)
	late := linkedRecord("p2", "flat-1", amount("1000"), datePtr("2025-04-20"), entity.ApprovalReceived)

	st := classify(early, late)

	assert.Equal(t, StatusPartial, st.Status)
	assert.Equal(t, RulePartialShort, st.Rule)
	assertDec(t, "2000", st.PaidAmount)
	assertDec(t, "5500", st.ExpectedAmount)
	assert.Equal(t, 10, st.DaysLate)
}

func TestClassify_LateApprovedMismatchDoesNotCountAsPaid(t *testing.T) {
	// exact base paid late is short of the fine
	st := classify(linkedRecord("p1", "flat-1", amount("5000"), datePtr("2025-04-12"), entity.ApprovalApproved))

	assert.Equal(t, StatusPartial, st.Status)
	assertDec(t, "5100", st.ExpectedAmount)
}

func TestClassify_OrderInsensitiveAndIdempotent(t *testing.T) {
	recs := []*entity.PaymentRecord{
		linkedRecord("p1", "flat-1", amount("2000"), datePtr("2025-04-01"), entity.ApprovalApproved),
		linkedRecord("p2", "flat-1", amount("3000"), nil, entity.ApprovalReceived),
		linkedRecord("p3", "flat-1", amount("5200"), datePtr("2025-04-15"), entity.ApprovalReviewed),
	}
	reversed := []*entity.PaymentRecord{recs[2], recs[1], recs[0]}

	c := NewClassifier(nil)
	a := c.Classify("flat-1", q1Collection(), recs)
	b := c.Classify("flat-1", q1Collection(), reversed)
	again := c.Classify("flat-1", q1Collection(), recs)

	assert.Equal(t, a, b)
	assert.Equal(t, a, again)
	assert.Equal(t, StatusPartial, a.Status)
	assert.Equal(t, RulePartialShort, a.Rule)
}

func TestClassify_MostRecentRecord(t *testing.T) {
	older := linkedRecord("p1", "flat-1", amount("2000"), datePtr("2025-04-01"), entity.ApprovalApproved)
	older.CreatedAt = mustDate("2025-04-01")
	newer := linkedRecord("p2", "flat-1", decimal.NullDecimal{}, datePtr("2025-04-12"), entity.ApprovalReceived)
	newer.CreatedAt = mustDate("2025-04-12")

	st := classify(newer, older)

	require.NotNil(t, st.LastPaymentDate)
	assert.Equal(t, mustDate("2025-04-12"), *st.LastPaymentDate)
	assert.Equal(t, entity.ApprovalReceived, st.LastPaymentStatus)
	assert.False(t, st.LastPaymentAmount.Valid)
	assert.Equal(t, 2, st.MatchedRecords)
	assertDec(t, "2000", st.PaidAmount)
}

func TestClassify_LastPaymentDateIsACopy(t *testing.T) {
	paidOn := datePtr("2025-04-05")
	record := linkedRecord("p1", "flat-1", amount("5000"), paidOn, entity.ApprovalApproved)

	st := classify(record)
	require.NotNil(t, st.LastPaymentDate)
	assert.NotSame(t, paidOn, st.LastPaymentDate)

	*st.LastPaymentDate = mustDate("2030-01-01")
	assert.Equal(t, mustDate("2025-04-05"), *record.PaymentDate)
}

func TestClassifyCollection_FlatNumbersInNumericOrder(t *testing.T) {
	snap := &Snapshot{
		Blocks: []entity.Block{{ID: "blk-a", ApartmentID: "apt-1", Name: "A"}},
		Flats: []entity.Flat{
			{ID: "f-1001", BlockID: "blk-a", FlatNumber: "1001"},
			{ID: "f-201", BlockID: "blk-a", FlatNumber: "201"},
			{ID: "f-g2", BlockID: "blk-a", FlatNumber: "G-2"},
			{ID: "f-g10", BlockID: "blk-a", FlatNumber: "G-10"},
			{ID: "f-99", BlockID: "blk-a", FlatNumber: "99"},
		},
	}

	out := NewClassifier(nil).ClassifyCollection(snap, q1Collection())

	var numbers []string
	for _, st := range out {
		numbers = append(numbers, st.FlatNumber)
	}
	assert.Equal(t, []string{"99", "201", "1001", "G-2", "G-10"}, numbers)
}
