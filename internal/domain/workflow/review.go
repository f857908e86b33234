package workflow

import (
	"context"
	"fmt"
)

// ReviewWorkflow holds the committee's review rules for payment submissions.
//
//	Received --REVIEW--> Reviewed --APPROVE--> Approved
//	Received --APPROVE--> Approved
//	Reviewed --SEND_BACK--> Received
//	Approved --WITHDRAW_APPROVAL--> Reviewed
type ReviewWorkflow struct {
	builder StateMachineBuilder
}

// NewReviewWorkflow configures the review transitions
func NewReviewWorkflow() *ReviewWorkflow {
	b := NewBuilder()
	b.Configure(StateReceived).
		Permit(TriggerReview, StateReviewed).
		Permit(TriggerApprove, StateApproved)
	b.Configure(StateReviewed).
		Permit(TriggerApprove, StateApproved).
		Permit(TriggerSendBack, StateReceived)
	b.Configure(StateApproved).
		Permit(TriggerWithdraw, StateReviewed)
	return &ReviewWorkflow{builder: b}
}

// Machine returns a state machine positioned at current
func (w *ReviewWorkflow) Machine(current State) (StateMachine, error) {
	return w.builder.Build(current)
}

// Transition moves a submission from one status to another and returns the
// trigger that did it. Staying in the same status is not a transition.
func (w *ReviewWorkflow) Transition(ctx context.Context, from, to State) (Trigger, error) {
	if !to.IsValid() {
		return "", fmt.Errorf("%w: unknown state %q", ErrInvalidTransition, to)
	}
	m, err := w.Machine(from)
	if err != nil {
		return "", err
	}
	if from == to {
		return "", fmt.Errorf("%w: already %s", ErrInvalidTransition, to)
	}

	for _, trigger := range m.PermittedTriggers() {
		if target, err := m.Target(trigger); err == nil && target == to {
			return trigger, m.Fire(ctx, trigger)
		}
	}
	return "", fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
}
