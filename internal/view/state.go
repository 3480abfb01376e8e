// Package view holds the presentation state of an analysis report and renders
// it as localized text.
package view

import (
	"fmt"

	"github.com/okian/tianwen/pkg/metrics"
)

// State is the presentation state of a Screen.
type State int

// Presentation states.
const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// transitions lists the legal targets of each state. Ready and Error may be
// reloaded.
var transitions = map[State][]State{
	StateIdle:    {StateLoading},
	StateLoading: {StateReady, StateError},
	StateReady:   {StateLoading},
	StateError:   {StateLoading},
}

// CanTransition reports whether from -> to is legal.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Machine tracks the current State and rejects illegal transitions.
type Machine struct {
	state   State
	metrics *metrics.Manager
}

// NewMachine returns a Machine in StateIdle. A nil manager uses the global one.
func NewMachine(m *metrics.Manager) *Machine {
	if m == nil {
		m = metrics.Default()
	}
	return &Machine{state: StateIdle, metrics: m}
}

func (m *Machine) State() State { return m.state }

// Transition moves to the target state or returns ErrIllegalTransition.
func (m *Machine) Transition(to State) error {
	if !CanTransition(m.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, m.state, to)
	}
	m.state = to
	m.metrics.RecordViewTransition(to.String())
	return nil
}
