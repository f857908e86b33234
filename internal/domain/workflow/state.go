package workflow

import "github.com/flatfundpro/dues-portal/internal/domain/entity"

// State is the review state of a payment submission
type State string

const (
	StateReceived State = State(entity.ApprovalReceived)
	StateReviewed State = State(entity.ApprovalReviewed)
	StateApproved State = State(entity.ApprovalApproved)
)

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a known review state
func (s State) IsValid() bool {
	return entity.IsValidApprovalStatus(string(s))
}
