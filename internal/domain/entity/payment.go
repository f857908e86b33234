package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is one self-reported payment submission for a flat.
// Resubmissions and corrections are additional records; none are deleted.
type PaymentRecord struct {
	ID                   string              `json:"id"`
	FlatID               string              `json:"flat_id"`
	ExpectedCollectionID string              `json:"expected_collection_id,omitempty"`
	PaymentType          string              `json:"payment_type"`
	PaymentQuarter       string              `json:"payment_quarter,omitempty"`
	PaymentAmount        decimal.NullDecimal `json:"payment_amount"`
	PaymentDate          *time.Time          `json:"payment_date,omitempty"`
	Status               string              `json:"status"`
	CreatedAt            time.Time           `json:"created_at"`
}

// IsApproved reports whether the record passed committee approval
func (p *PaymentRecord) IsApproved() bool {
	return p.Status == ApprovalApproved
}
