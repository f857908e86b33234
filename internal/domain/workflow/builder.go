package workflow

import (
	"context"
	"fmt"
	"sort"
)

// StateMachineBuilder builds a configured state machine
type StateMachineBuilder interface {
	// Configure returns the configuration of the given state
	Configure(state State) StateConfiguration

	// Build creates a machine starting in initialState
	Build(initialState State) (StateMachine, error)
}

// StateConfiguration configures the transitions leaving one state
type StateConfiguration interface {
	// Permit allows trigger to move to toState; a repeated trigger replaces the target
	Permit(trigger Trigger, toState State) StateConfiguration
}

type stateConfig struct {
	transitions map[Trigger]State
}

type stateMachineBuilder struct {
	configurations map[State]*stateConfig
}

type stateMachine struct {
	currentState   State
	configurations map[State]*stateConfig
}

// NewBuilder creates a new state machine builder
func NewBuilder() StateMachineBuilder {
	return &stateMachineBuilder{configurations: make(map[State]*stateConfig)}
}

// Configure panics on an unknown state; configuration happens once at start up
func (b *stateMachineBuilder) Configure(state State) StateConfiguration {
	if !state.IsValid() {
		panic(fmt.Sprintf("invalid state: %s", state))
	}
	cfg, ok := b.configurations[state]
	if !ok {
		cfg = &stateConfig{transitions: make(map[Trigger]State)}
		b.configurations[state] = cfg
	}
	return cfg
}

// Build copies the configuration so later Configure calls do not leak into
// machines already built.
func (b *stateMachineBuilder) Build(initialState State) (StateMachine, error) {
	if !initialState.IsValid() {
		return nil, fmt.Errorf("%w: unknown state %q", ErrInvalidTransition, initialState)
	}

	configs := make(map[State]*stateConfig, len(b.configurations))
	for state, cfg := range b.configurations {
		transitions := make(map[Trigger]State, len(cfg.transitions))
		for trigger, to := range cfg.transitions {
			transitions[trigger] = to
		}
		configs[state] = &stateConfig{transitions: transitions}
	}

	return &stateMachine{currentState: initialState, configurations: configs}, nil
}

func (c *stateConfig) Permit(trigger Trigger, toState State) StateConfiguration {
	if !toState.IsValid() {
		panic(fmt.Sprintf("invalid target state: %s", toState))
	}
	c.transitions[trigger] = toState
	return c
}

func (m *stateMachine) State() State {
	return m.currentState
}

func (m *stateMachine) target(trigger Trigger) (State, bool) {
	cfg, ok := m.configurations[m.currentState]
	if !ok {
		return "", false
	}
	to, ok := cfg.transitions[trigger]
	return to, ok
}

func (m *stateMachine) CanFire(trigger Trigger) bool {
	_, ok := m.target(trigger)
	return ok
}

func (m *stateMachine) Target(trigger Trigger) (State, error) {
	to, ok := m.target(trigger)
	if !ok {
		return "", fmt.Errorf("%w: cannot fire %s from %s", ErrInvalidTransition, trigger, m.currentState)
	}
	return to, nil
}

func (m *stateMachine) Fire(ctx context.Context, trigger Trigger) error {
	to, err := m.Target(trigger)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.currentState = to
	return nil
}

// PermittedTriggers is sorted for stable output
func (m *stateMachine) PermittedTriggers() []Trigger {
	cfg, ok := m.configurations[m.currentState]
	if !ok {
		return []Trigger{}
	}
	triggers := make([]Trigger, 0, len(cfg.transitions))
	for trigger := range cfg.transitions {
		triggers = append(triggers, trigger)
	}
	sort.Slice(triggers, func(i, j int) bool { return triggers[i] < triggers[j] })
	return triggers
}
