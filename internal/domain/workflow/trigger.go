package workflow

// Trigger is a committee action on a submission
type Trigger string

const (
	TriggerReview   Trigger = "REVIEW"
	TriggerApprove  Trigger = "APPROVE"
	TriggerSendBack Trigger = "SEND_BACK"
	TriggerWithdraw Trigger = "WITHDRAW_APPROVAL"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
