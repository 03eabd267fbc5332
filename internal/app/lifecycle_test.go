package app

import (
	"errors"
	"testing"

	"github.com/bft-labs/frdsource/internal/domain"
	"github.com/bft-labs/frdsource/pkg/log"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StateReading, "Reading"},
		{StateEmitting, "Emitting"},
		{StateExhausted, "Exhausted"},
		{StateFailed, "Failed"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		got := tt.state.String()
		if got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}

func TestLifecycle_TransitionTo(t *testing.T) {
	all := []State{StateIdle, StateReading, StateEmitting, StateExhausted, StateFailed}
	valid := map[State][]State{
		StateIdle:     {StateReading, StateFailed},
		StateReading:  {StateEmitting, StateExhausted, StateFailed},
		StateEmitting: {StateReading, StateFailed},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, v := range valid[from] {
				want = want || v == to
			}

			obs := &recordingObserver{}
			l := lifecycle{state: from, logger: log.NewNoopLogger(), observer: obs}
			err := l.transitionTo(to, "test")
			if want {
				if err != nil {
					t.Errorf("%s -> %s: unexpected error %v", from, to, err)
				}
				if l.state != to || len(obs.events) != 1 {
					t.Errorf("%s -> %s: state = %s, events = %d", from, to, l.state, len(obs.events))
				}
				continue
			}
			if !errors.Is(err, domain.ErrInvalidTransition) {
				t.Errorf("%s -> %s: err = %v, want ErrInvalidTransition", from, to, err)
			}
			if l.state != from || len(obs.events) != 0 {
				t.Errorf("%s -> %s: state changed on invalid transition", from, to)
			}
		}
	}
}

func TestState_Terminal(t *testing.T) {
	if !StateExhausted.Terminal() || !StateFailed.Terminal() {
		t.Error("Exhausted and Failed must be terminal")
	}
	if StateIdle.Terminal() || StateReading.Terminal() || StateEmitting.Terminal() {
		t.Error("Idle, Reading and Emitting must not be terminal")
	}
}
