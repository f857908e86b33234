package reconcile

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flatfundpro/dues-portal/internal/domain/entity"
)

// Classifier resolves paid/partial/pending for (flat, collection) pairs.
// It holds no state besides its matching strategy and is safe to share.
type Classifier struct {
	matcher Matcher
}

// NewClassifier creates a classifier; a nil matcher selects DefaultMatcher.
func NewClassifier(matcher Matcher) *Classifier {
	if matcher == nil {
		matcher = DefaultMatcher()
	}
	return &Classifier{matcher: matcher}
}

// ClassifyCollection classifies every flat in the snapshot against one collection.
// Results are ordered by block name, then flat number with digit runs
// compared numerically, so "201" precedes "1001".
func (c *Classifier) ClassifyCollection(snap *Snapshot, collection *entity.ExpectedCollection) []FlatStatus {
	byFlat := snap.paymentsByFlat()
	blockNames := snap.blockNames()

	out := make([]FlatStatus, 0, len(snap.Flats))
	for _, flat := range snap.Flats {
		st := c.Classify(flat.ID, collection, byFlat[flat.ID])
		st.FlatNumber = flat.FlatNumber
		st.BlockID = flat.BlockID
		st.BlockName = blockNames[flat.BlockID]
		out = append(out, st)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].BlockName != out[j].BlockName {
			return out[i].BlockName < out[j].BlockName
		}
		if out[i].FlatNumber != out[j].FlatNumber {
			return naturalLess(out[i].FlatNumber, out[j].FlatNumber)
		}
		return out[i].FlatID < out[j].FlatID
	})
	return out
}

// Classify decides the status of one flat for one collection. Records belonging
// to other flats are ignored. It never fails: missing data degrades toward
// pending or partial, never toward paid.
func (c *Classifier) Classify(flatID string, collection *entity.ExpectedCollection, records []*entity.PaymentRecord) FlatStatus {
	base := collection.AmountDue
	st := FlatStatus{
		FlatID:         flatID,
		CollectionID:   collection.ID,
		Status:         StatusPending,
		Rule:           RuleNoPayments,
		PaidAmount:     decimal.Zero,
		ExpectedAmount: base,
	}

	var matched, valued []*entity.PaymentRecord
	for _, r := range records {
		if r == nil || r.FlatID != flatID || !c.matcher.Matches(r, collection) {
			continue
		}
		matched = append(matched, r)
		if r.PaymentAmount.Valid {
			valued = append(valued, r)
		}
	}
	st.MatchedRecords = len(matched)
	if last := mostRecent(matched); last != nil {
		if last.PaymentDate != nil {
			d := *last.PaymentDate
			st.LastPaymentDate = &d
		}
		st.LastPaymentStatus = last.Status
		st.LastPaymentAmount = last.PaymentAmount
	}

	if len(valued) == 0 {
		return st
	}

	var latest *time.Time
	for _, r := range valued {
		st.PaidAmount = st.PaidAmount.Add(r.PaymentAmount.Decimal)
		if r.PaymentDate != nil && (latest == nil || r.PaymentDate.After(*latest)) {
			latest = r.PaymentDate
		}
	}

	st.Status, st.Rule = decide(collection, valued)
	if st.Status == StatusPartial {
		// display figure uses the latest date across all records,
		// not the date of the record that made the flat partial
		f := ExpectedAmount(base, collection.DailyFine, collection.DueDate, latest)
		st.ExpectedAmount = f.Amount
		st.DaysLate = f.DaysLate
	}
	return st
}

// rulePriority orders rules so the reported rule does not depend on scan order
var rulePriority = map[Rule]int{
	RulePaidOnTime:          6,
	RulePaidLate:            5,
	RulePartialShort:        4,
	RulePartialLateMismatch: 3,
	RulePartialUndated:      2,
	RulePartialUnqualified:  1,
}

// decide evaluates every record with an amount against its own payment date.
// A non-empty record set that qualifies for nothing still resolves to partial.
func decide(collection *entity.ExpectedCollection, valued []*entity.PaymentRecord) (Status, Rule) {
	base := collection.AmountDue
	best := RulePartialUnqualified

	raise := func(r Rule) {
		if rulePriority[r] > rulePriority[best] {
			best = r
		}
	}

	for _, r := range valued {
		amount := r.PaymentAmount.Decimal
		f := ExpectedAmount(base, collection.DailyFine, collection.DueDate, r.PaymentDate)

		switch {
		case f.OnTime:
			if r.IsApproved() && amountsEqual(amount, base) {
				return StatusPaid, RulePaidOnTime
			}
			if amount.LessThan(base) {
				raise(RulePartialShort)
			}
		case f.Late:
			if r.IsApproved() && amountsEqual(amount, f.Amount) {
				raise(RulePaidLate)
			} else if !amountsEqual(amount, f.Amount) {
				raise(RulePartialLateMismatch)
			}
		default:
			if !r.IsApproved() && !amountsEqual(amount, base) {
				raise(RulePartialUndated)
			}
		}
	}

	if best == RulePaidLate {
		return StatusPaid, best
	}
	return StatusPartial, best
}

func amountsEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}

// mostRecent picks the latest submission by creation time, breaking ties on
// payment date and then id so the choice is independent of input order.
func mostRecent(records []*entity.PaymentRecord) *entity.PaymentRecord {
	var best *entity.PaymentRecord
	for _, r := range records {
		if best == nil || newer(r, best) {
			best = r
		}
	}
	return best
}

func newer(a, b *entity.PaymentRecord) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	ad, bd := a.PaymentDate, b.PaymentDate
	switch {
	case ad != nil && bd != nil && !ad.Equal(*bd):
		return ad.After(*bd)
	case ad != nil && bd == nil:
		return true
	case ad == nil && bd != nil:
		return false
	}
	return a.ID > b.ID
}
