package reconcile

import (
	"regexp"
	"strings"

	"github.com/flatfundpro/dues-portal/internal/domain/entity"
)

// Matcher decides whether a payment record is meant to satisfy a collection.
type Matcher interface {
	Matches(record *entity.PaymentRecord, collection *entity.ExpectedCollection) bool
}

// MatcherFunc adapts a plain function to Matcher
type MatcherFunc func(record *entity.PaymentRecord, collection *entity.ExpectedCollection) bool

// Matches calls f(record, collection)
func (f MatcherFunc) Matches(record *entity.PaymentRecord, collection *entity.ExpectedCollection) bool {
	return f(record, collection)
}

// ExplicitLinkMatcher matches records that reference the collection by id.
// It is the only strategy that cannot produce a false match.
type ExplicitLinkMatcher struct{}

// Matches implements Matcher
func (ExplicitLinkMatcher) Matches(record *entity.PaymentRecord, collection *entity.ExpectedCollection) bool {
	return record.ExpectedCollectionID != "" && record.ExpectedCollectionID == collection.ID
}

// PeriodTokenMatcher matches on payment type plus a loose containment test of
// the record's free-text quarter tag against the collection's quarter and year.
// Overlapping tokens can false-match; this is accepted.
type PeriodTokenMatcher struct{}

// Matches implements Matcher
func (PeriodTokenMatcher) Matches(record *entity.PaymentRecord, collection *entity.ExpectedCollection) bool {
	if !strings.EqualFold(record.PaymentType, collection.PaymentType) {
		return false
	}
	if record.PaymentQuarter == "" || collection.Quarter == "" || collection.FinancialYear == "" {
		return false
	}

	tag := strings.ToLower(record.PaymentQuarter)
	quarter := strings.ToLower(collection.Quarter)
	year := strings.ToLower(CanonicalYear(collection.FinancialYear))

	return strings.Contains(tag, quarter) && strings.Contains(tag, year)
}

// ChainMatcher tries each strategy in order and matches on the first hit
type ChainMatcher []Matcher

// Matches implements Matcher
func (c ChainMatcher) Matches(record *entity.PaymentRecord, collection *entity.ExpectedCollection) bool {
	for _, m := range c {
		if m.Matches(record, collection) {
			return true
		}
	}
	return false
}

// DefaultMatcher links explicitly first and falls back to period tokens
func DefaultMatcher() Matcher {
	return ChainMatcher{ExplicitLinkMatcher{}, PeriodTokenMatcher{}}
}

var shortFiscalYear = regexp.MustCompile(`^[A-Za-z]{2}(\d{2})$`)

// CanonicalYear turns a financial-year label into a 4-digit year: "FY25" -> "2025".
// Other forms only lose a leading 2-letter prefix ("FY2025" -> "2025").
func CanonicalYear(label string) string {
	label = strings.TrimSpace(label)
	if m := shortFiscalYear.FindStringSubmatch(label); m != nil {
		return "20" + m[1]
	}
	if len(label) > 2 && isLetter(label[0]) && isLetter(label[1]) {
		return label[2:]
	}
	return label
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
