// Package reconcile classifies each flat's dues for an expected collection as
// paid, partial or pending from an immutable snapshot of the payment ledger.
package reconcile

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the derived payment state of a flat for one collection
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPartial Status = "partial"
	StatusPending Status = "pending"
)

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// Rule names the classification rule that decided a flat's status
type Rule string

const (
	RuleNoPayments          Rule = "no_payments"
	RulePaidOnTime          Rule = "paid_on_time"
	RulePaidLate            Rule = "paid_late"
	RulePartialShort        Rule = "partial_short"
	RulePartialLateMismatch Rule = "partial_late_mismatch"
	RulePartialUndated      Rule = "partial_undated"
	RulePartialUnqualified  Rule = "partial_unqualified"
)

// Tolerance is the absolute difference under which two amounts are equal
var Tolerance = decimal.New(1, -2)

// FlatStatus is the derived, never persisted, status of one flat for one collection.
type FlatStatus struct {
	FlatID         string          `json:"flat_id"`
	FlatNumber     string          `json:"flat_number"`
	BlockID        string          `json:"block_id"`
	BlockName      string          `json:"block_name"`
	CollectionID   string          `json:"collection_id"`
	Status         Status          `json:"status"`
	Rule           Rule            `json:"rule"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	DaysLate       int             `json:"days_late"`
	MatchedRecords int             `json:"matched_records"`

	// Most recent matching submission, for display
	LastPaymentDate   *time.Time          `json:"most_recent_payment_date,omitempty"`
	LastPaymentStatus string              `json:"most_recent_payment_status,omitempty"`
	LastPaymentAmount decimal.NullDecimal `json:"most_recent_payment_amount"`
}
