package app

import (
	"fmt"

	"github.com/bft-labs/frdsource/internal/domain"
	"github.com/bft-labs/frdsource/internal/ports"
)

// State represents the lifecycle state of a record source.
type State int

const (
	StateIdle State = iota
	StateReading
	StateEmitting
	StateExhausted
	StateFailed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateReading:
		return "Reading"
	case StateEmitting:
		return "Emitting"
	case StateExhausted:
		return "Exhausted"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transition is possible from s.
func (s State) Terminal() bool {
	return s == StateExhausted || s == StateFailed
}

// StateObserver is called when a source changes state.
type StateObserver interface {
	OnStateChange(previous, current State, reason string)
}

// lifecycle holds the state of a source and validates its transitions.
type lifecycle struct {
	state    State
	logger   ports.Logger
	observer StateObserver
}

func (l *lifecycle) transitionTo(newState State, reason string) error {
	oldState := l.state

	valid := false
	switch oldState {
	case StateIdle:
		valid = newState == StateReading || newState == StateFailed
	case StateReading:
		valid = newState == StateEmitting || newState == StateExhausted || newState == StateFailed
	case StateEmitting:
		valid = newState == StateReading || newState == StateFailed
	}
	if !valid {
		return fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, oldState, newState)
	}

	l.state = newState
	if l.observer != nil {
		l.observer.OnStateChange(oldState, newState, reason)
	}
	if newState.Terminal() {
		l.logger.Info("state transition",
			ports.String("from", oldState.String()),
			ports.String("to", newState.String()),
			ports.String("reason", reason),
		)
	}
	return nil
}
